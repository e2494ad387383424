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

func seedGradedTest(t *testing.T, db *gorm.DB, optionMarks []int) *model.Test {
	t.Helper()
	test := &model.Test{Title: "Maths"}
	for i, marks := range optionMarks {
		test.Questions = append(test.Questions, model.TestQuestion{
			Content: "q",
			Order:   i + 1,
			Options: []model.TestOption{
				{Text: "best", Marks: marks},
				{Text: "worst", Marks: 0},
			},
		})
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 70.0, Percentage(3500, 5))
	assert.Equal(t, 100.0, Percentage(5000, 5))
	assert.Equal(t, 0.0, Percentage(0, 5))
	assert.Equal(t, 0.0, Percentage(1000, 0))
}

func TestStarsFor(t *testing.T) {
	thresholds := []model.StarPercent{
		{MinPercentage: 95, Stars: 5},
		{MinPercentage: 80, Stars: 4},
		{MinPercentage: 60, Stars: 3},
		{MinPercentage: 40, Stars: 2},
		{MinPercentage: 20, Stars: 1},
		{MinPercentage: 0, Stars: 0},
	}

	assert.Equal(t, 3, StarsFor(70, thresholds))
	assert.Equal(t, 3, StarsFor(60, thresholds))
	assert.Equal(t, 2, StarsFor(59.99, thresholds))
	assert.Equal(t, 5, StarsFor(100, thresholds))
	assert.Equal(t, 0, StarsFor(19.99, thresholds))
	assert.Equal(t, 0, StarsFor(0, []model.StarPercent{}))
}

func TestGradedTestScoring(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-9, 0, 0))
	// Best options are worth 1000, 1000, 1000, 500, 0.
	test := seedGradedTest(t, db, []int{1000, 1000, 1000, 500, 0})
	svc := NewTestService(repository.NewTestRepository(db))

	var completed bool
	for _, q := range test.Questions {
		result, err := svc.RecordAnswer(user.ID, test.ID, &TestAnswerRequest{
			QuestionID: q.ID,
			AnswerID:   q.Options[0].ID,
		})
		require.NoError(t, err)
		completed = result.Completed
	}
	assert.True(t, completed)

	result, err := svc.Result(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 3500, result.Score)
	assert.Equal(t, 70.0, result.Percentage)
	assert.Equal(t, 3, result.Stars) // seeded thresholds: 60 <= 70 < 80
	assert.Equal(t, "yes", result.Completed)
}

func TestGradedTestDuplicateAnswer(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-9, 0, 0))
	test := seedGradedTest(t, db, []int{1000, 1000})
	svc := NewTestService(repository.NewTestRepository(db))

	req := &TestAnswerRequest{
		QuestionID: test.Questions[0].ID,
		AnswerID:   test.Questions[0].Options[0].ID,
	}
	_, err := svc.RecordAnswer(user.ID, test.ID, req)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(user.ID, test.ID, req)
	assert.ErrorIs(t, err, util.ErrAnswerAlreadyRecorded)
}

func TestResultBeforeCompletion(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-9, 0, 0))
	test := seedGradedTest(t, db, []int{1000, 1000})
	svc := NewTestService(repository.NewTestRepository(db))

	result, err := svc.Result(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "no", result.Completed)
	assert.Equal(t, 0, result.Score)
}
