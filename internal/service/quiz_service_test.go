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

func seedQuiz(t *testing.T, db *gorm.DB) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title: "Animals",
		Questions: []model.QuizQuestion{
			{Content: "Which animal barks?", Order: 1, Options: []model.QuizOption{
				{Text: "Dog", IsCorrect: true},
				{Text: "Cat"},
			}},
			{Content: "Which animal meows?", Order: 2, Options: []model.QuizOption{
				{Text: "Dog"},
				{Text: "Cat", IsCorrect: true},
			}},
		},
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(repository.NewQuizRepository(db), newUserService(db))
}

func TestStartQuizIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	first, err := svc.StartQuiz(user.ID, child.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, first.IsStarted)
	assert.False(t, first.IsCompleted)

	second, err := svc.StartQuiz(user.ID, child.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&model.QuizSequence{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordAnswerRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	req := &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[0].ID,
		OptionID:   quiz.Questions[0].Options[0].ID,
	}

	result, err := svc.RecordAnswer(user.ID, quiz.ID, req)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, result.Answered)

	// Same question again, even with a different option.
	req.OptionID = quiz.Questions[0].Options[1].ID
	_, err = svc.RecordAnswer(user.ID, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrAnswerAlreadyRecorded)
}

func TestRecordAnswerCompletesSequence(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	_, err := svc.RecordAnswer(user.ID, quiz.ID, &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[0].ID,
		OptionID:   quiz.Questions[0].Options[0].ID,
	})
	require.NoError(t, err)

	last, err := svc.RecordAnswer(user.ID, quiz.ID, &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[1].ID,
		OptionID:   quiz.Questions[1].Options[0].ID, // wrong on purpose
	})
	require.NoError(t, err)
	assert.True(t, last.Completed)

	results, err := svc.Results(user.ID, child.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, results.Total)
	assert.Equal(t, 2, results.Answered)
	assert.Equal(t, 1, results.Correct)
	assert.True(t, results.Completed)
}

func TestSequenceSurvivesBirthday(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	_, err := svc.RecordAnswer(user.ID, quiz.ID, &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[0].ID,
		OptionID:   quiz.Questions[0].Options[0].ID,
	})
	require.NoError(t, err)

	// The child turns nine mid-quiz.
	require.NoError(t, db.Model(child).Update("dob", child.DOB.AddDate(-1, 0, 0)).Error)

	last, err := svc.RecordAnswer(user.ID, quiz.ID, &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[1].ID,
		OptionID:   quiz.Questions[1].Options[1].ID,
	})
	require.NoError(t, err)
	assert.True(t, last.Completed)

	results, err := svc.Results(user.ID, child.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, results.Completed)

	var count int64
	db.Model(&model.QuizSequence{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordAnswerRejectsForeignOption(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	// Option from question 2 submitted against question 1.
	_, err := svc.RecordAnswer(user.ID, quiz.ID, &QuizAnswerRequest{
		ChildID:    child.ID,
		QuestionID: quiz.Questions[0].ID,
		OptionID:   quiz.Questions[1].Options[0].ID,
	})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestResultsForUntouchedQuiz(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, -30))
	quiz := seedQuiz(t, db)
	svc := newQuizService(db)

	results, err := svc.Results(user.ID, child.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, results.Answered)
	assert.False(t, results.Completed)
}
