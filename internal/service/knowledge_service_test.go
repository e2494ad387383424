package service

import (
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedKnowledgeSet(t *testing.T, db *gorm.DB) *model.KnowledgeSet {
	t.Helper()
	set := &model.KnowledgeSet{
		Title: "Space",
		Questions: []model.KnowledgeQuestion{
			{Content: "Closest star?", Order: 1, Options: []model.KnowledgeOption{
				{Text: "Sun", IsCorrect: true},
				{Text: "Moon"},
			}},
			{Content: "Red planet?", Order: 2, Options: []model.KnowledgeOption{
				{Text: "Mars", IsCorrect: true},
				{Text: "Venus"},
			}},
			{Content: "Largest planet?", Order: 3, Options: []model.KnowledgeOption{
				{Text: "Jupiter", IsCorrect: true},
				{Text: "Saturn"},
			}},
		},
	}
	require.NoError(t, db.Create(set).Error)
	return set
}

func newKnowledgeService(db *gorm.DB) *KnowledgeService {
	return NewKnowledgeService(repository.NewKnowledgeRepository(db), newUserService(db))
}

func TestKnowledgeSetCountsCorrectAnswers(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-10, 0, 0))
	set := seedKnowledgeSet(t, db)
	svc := newKnowledgeService(db)

	// Two right, one wrong.
	picks := []int{0, 0, 1}
	var last *KnowledgeAnswerResult
	for i, q := range set.Questions {
		result, err := svc.RecordAnswer(user.ID, set.ID, &KnowledgeAnswerRequest{
			ChildID:    child.ID,
			QuestionID: q.ID,
			OptionID:   q.Options[picks[i]].ID,
		})
		require.NoError(t, err)
		last = result
	}
	assert.True(t, last.Completed)
	assert.False(t, last.IsCorrect)

	results, err := svc.Results(user.ID, child.ID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, results.Total)
	assert.Equal(t, 3, results.Answered)
	assert.Equal(t, 2, results.CorrectCount)
	assert.Equal(t, "yes", results.Completed)
}

func TestKnowledgeDuplicateAnswer(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-10, 0, 0))
	set := seedKnowledgeSet(t, db)
	svc := newKnowledgeService(db)

	req := &KnowledgeAnswerRequest{
		ChildID:    child.ID,
		QuestionID: set.Questions[0].ID,
		OptionID:   set.Questions[0].Options[0].ID,
	}
	_, err := svc.RecordAnswer(user.ID, set.ID, req)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(user.ID, set.ID, req)
	assert.ErrorIs(t, err, util.ErrAnswerAlreadyRecorded)
}

func TestKnowledgeRejectsForeignOption(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-10, 0, 0))
	set := seedKnowledgeSet(t, db)
	svc := newKnowledgeService(db)

	_, err := svc.RecordAnswer(user.ID, set.ID, &KnowledgeAnswerRequest{
		ChildID:    child.ID,
		QuestionID: set.Questions[0].ID,
		OptionID:   set.Questions[1].Options[0].ID,
	})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestKnowledgeResultsForUntouchedSet(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-10, 0, 0))
	set := seedKnowledgeSet(t, db)
	svc := newKnowledgeService(db)

	results, err := svc.Results(user.ID, child.ID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, results.Answered)
	assert.Equal(t, "no", results.Completed)
}
