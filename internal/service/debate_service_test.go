package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// streamingAIServer speaks just enough of the completions SSE protocol
// to feed ChatStream the given chunks.
func streamingAIServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newDebateService(db *gorm.DB, ai *AIService) *DebateService {
	return NewDebateService(repository.NewDebateRepository(db), ai)
}

func seedDebate(t *testing.T, db *gorm.DB, published bool) *model.Debate {
	t.Helper()
	debate := &model.Debate{
		Topic:       "Should homework exist?",
		SideFor:     "homework helps learning",
		SideAgainst: "homework steals playtime",
		Language:    "en",
		IsPublished: published,
	}
	require.NoError(t, db.Create(debate).Error)
	return debate
}

func TestTurnStreamDeliversChunksAndRecordsExchange(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	debate := seedDebate(t, db, true)

	srv := streamingAIServer(t, []string{"Play ", "matters ", "too!"})
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test-model"})
	svc := newDebateService(db, ai)

	var got []string
	err := svc.TurnStream(user.ID, debate.ID, &DebateTurnRequest{Side: "for", Message: "Homework is useful"}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Play matters too!", strings.Join(got, ""))

	history, err := svc.History(user.ID, debate.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "Homework is useful", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "Play matters too!", history[1].Content)
}

func TestTurnStreamRejectsUnpublishedDebate(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	debate := seedDebate(t, db, false)

	svc := newDebateService(db, NewAIService(config.AIConfig{}))
	err := svc.TurnStream(user.ID, debate.ID, &DebateTurnRequest{Side: "for", Message: "hello"}, func(string) error {
		t.Fatal("no chunks expected")
		return nil
	})
	assert.ErrorIs(t, err, util.ErrDebateNotFound)
}

func TestTurnStreamKeepsNothingOnBrokenStream(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	debate := seedDebate(t, db, true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	svc := newDebateService(db, NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test-model"}))
	err := svc.TurnStream(user.ID, debate.ID, &DebateTurnRequest{Side: "against", Message: "hello"}, func(string) error {
		return nil
	})
	require.Error(t, err)

	history, err := svc.History(user.ID, debate.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
