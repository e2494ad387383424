package service

import (
	"errors"
	"math"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type TestService struct {
	TestRepo *repository.TestRepository
}

func NewTestService(testRepo *repository.TestRepository) *TestService {
	return &TestService{TestRepo: testRepo}
}

type TestAnswerRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	AnswerID   uint `json:"answerId" binding:"required"`
}

type TestAnswerResult struct {
	Marks     int  `json:"marks"`
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type TestResult struct {
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
	Stars      int     `json:"stars"`
	Completed  string  `json:"completed"`
}

func (s *TestService) ListTests(language string, page, limit int) ([]model.Test, int64, error) {
	return s.TestRepo.List(language, page, limit)
}

func (s *TestService) GetTest(id uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return test, err
}

// RecordAnswer stores one answer with the marks of the chosen option
// (copied server-side) and finalizes the test when the last question
// lands.
func (s *TestService) RecordAnswer(userID, testID uint, req *TestAnswerRequest) (*TestAnswerResult, error) {
	if _, err := s.GetTest(testID); err != nil {
		return nil, err
	}

	question, err := s.TestRepo.FindQuestion(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && question.TestID != testID) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	option, err := s.TestRepo.FindOption(req.AnswerID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && option.QuestionID != question.ID) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	userTest, err := s.TestRepo.EnsureUserTest(&model.UserTest{
		UserID: userID,
		TestID: testID,
	})
	if err != nil {
		return nil, err
	}

	inserted, err := s.TestRepo.InsertProgress(&model.TestProgress{
		UserID:     userID,
		TestID:     testID,
		QuestionID: question.ID,
		AnswerID:   option.ID,
		Marks:      option.Marks,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, util.ErrAnswerAlreadyRecorded
	}

	total, err := s.TestRepo.CountQuestions(testID)
	if err != nil {
		return nil, err
	}
	answered, err := s.TestRepo.CountProgress(userID, testID)
	if err != nil {
		return nil, err
	}

	result := &TestAnswerResult{
		Marks:    option.Marks,
		Answered: int(answered),
		Total:    int(total),
	}

	if answered >= total && userTest.Completed != "yes" {
		if err := s.finalize(userID, testID, userTest.ID, total); err != nil {
			return nil, err
		}
		result.Completed = true
	}
	return result, nil
}

// finalize computes score, percentage and stars once all questions are
// answered and writes the completion record.
func (s *TestService) finalize(userID, testID, userTestID uint, questionCount int64) error {
	score, err := s.TestRepo.SumMarks(userID, testID)
	if err != nil {
		return err
	}

	percentage := Percentage(score, int(questionCount))

	thresholds, err := s.TestRepo.StarThresholds()
	if err != nil {
		return err
	}
	stars := StarsFor(percentage, thresholds)

	return s.TestRepo.FinalizeUserTest(userTestID, score, percentage, stars)
}

// Percentage converts earned marks to a percentage of the maximum
// possible. Zero questions yields zero, not a division error.
func Percentage(totalMarks, questionCount int) float64 {
	if questionCount == 0 {
		return 0
	}
	pct := float64(totalMarks) / float64(questionCount*util.MarksPerQuestion) * 100
	return math.Round(pct*100) / 100
}

// StarsFor picks the star count from thresholds ordered by
// min_percentage descending: the first row at or below wins.
func StarsFor(percentage float64, thresholds []model.StarPercent) int {
	for _, t := range thresholds {
		if t.MinPercentage <= percentage {
			return t.Stars
		}
	}
	return 0
}

// Result reads the completion record. A test never finished reads as
// not completed with zero score.
func (s *TestService) Result(userID, testID uint) (*TestResult, error) {
	if _, err := s.GetTest(testID); err != nil {
		return nil, err
	}

	userTest, err := s.TestRepo.FindUserTest(userID, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &TestResult{Completed: "no"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &TestResult{
		Score:      userTest.Score,
		Percentage: userTest.Percentage,
		Stars:      userTest.Stars,
		Completed:  userTest.Completed,
	}, nil
}

type TestCreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Category  string `json:"category"`
	Language  string `json:"language"`
	Questions []struct {
		Content string `json:"content" binding:"required"`
		Order   int    `json:"order"`
		Options []struct {
			Text  string `json:"text" binding:"required"`
			Marks int    `json:"marks"`
		} `json:"options" binding:"required,min=2"`
	} `json:"questions" binding:"required,min=1"`
}

func (s *TestService) CreateTest(req *TestCreateRequest) (*model.Test, error) {
	test := &model.Test{
		Title:    req.Title,
		Category: req.Category,
		Language: req.Language,
	}
	if test.Language == "" {
		test.Language = "en"
	}
	for _, q := range req.Questions {
		question := model.TestQuestion{Content: q.Content, Order: q.Order}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.TestOption{
				Text:  o.Text,
				Marks: o.Marks,
			})
		}
		test.Questions = append(test.Questions, question)
	}

	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}
