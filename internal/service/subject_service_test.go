package service

import (
	"fmt"
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSubject(t *testing.T, db *gorm.DB, questions int) *model.Subject {
	t.Helper()
	subject := &model.Subject{Name: "Motor skills"}
	for i := 0; i < questions; i++ {
		subject.Questions = append(subject.Questions, model.SubjectQuestion{
			Content: fmt.Sprintf("skill %d", i+1),
			Order:   i + 1,
		})
	}
	require.NoError(t, db.Create(subject).Error)
	return subject
}

func TestSkilledAgeBuckets(t *testing.T) {
	assert.Equal(t, 7, SkilledAge(8, 0))
	assert.Equal(t, 7, SkilledAge(8, 2))
	assert.Equal(t, 7, SkilledAge(8, 3))
	assert.Equal(t, 8, SkilledAge(8, 4))
	assert.Equal(t, 8, SkilledAge(8, 5))
	assert.Equal(t, 8, SkilledAge(8, 6))
	assert.Equal(t, 9, SkilledAge(8, 7))
	assert.Equal(t, 9, SkilledAge(8, 8))
	assert.Equal(t, 9, SkilledAge(8, 9))
}

func runChecklist(t *testing.T, db *gorm.DB, yesAnswers int) *SubjectResult {
	t.Helper()
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	subject := seedSubject(t, db, 9)
	svc := NewSubjectService(repository.NewSubjectRepository(db), newUserService(db))

	for i, q := range subject.Questions {
		answer := "no"
		if i < yesAnswers {
			answer = "yes"
		}
		_, err := svc.RecordAnswer(user.ID, subject.ID, &SubjectAnswerRequest{
			ChildID:    child.ID,
			QuestionID: q.ID,
			Answer:     answer,
		})
		require.NoError(t, err)
	}

	result, err := svc.Result(user.ID, child.ID, subject.ID)
	require.NoError(t, err)
	return result
}

func TestChecklistDerivesSkilledAge(t *testing.T) {
	tests := []struct {
		yes        int
		skilledAge int
	}{
		{2, 7},
		{5, 8},
		{8, 9},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d yes answers", tt.yes), func(t *testing.T) {
			db := newTestDB(t)
			result := runChecklist(t, db, tt.yes)
			assert.Equal(t, "yes", result.Completed)
			assert.Equal(t, tt.yes, result.YesCount)
			assert.Equal(t, tt.skilledAge, result.SkilledAge)
		})
	}
}

func TestChecklistResultBeforeCompletion(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	subject := seedSubject(t, db, 9)
	svc := NewSubjectService(repository.NewSubjectRepository(db), newUserService(db))

	_, err := svc.RecordAnswer(user.ID, subject.ID, &SubjectAnswerRequest{
		ChildID:    child.ID,
		QuestionID: subject.Questions[0].ID,
		Answer:     "yes",
	})
	require.NoError(t, err)

	result, err := svc.Result(user.ID, child.ID, subject.ID)
	require.NoError(t, err)
	assert.Equal(t, "no", result.Completed)
}
