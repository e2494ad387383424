package service

import (
	"errors"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	Users    *UserService
}

func NewQuizService(quizRepo *repository.QuizRepository, users *UserService) *QuizService {
	return &QuizService{
		QuizRepo: quizRepo,
		Users:    users,
	}
}

type QuizAnswerRequest struct {
	ChildID    uint `json:"childId"`
	QuestionID uint `json:"questionId" binding:"required"`
	OptionID   uint `json:"optionId" binding:"required"`
}

type QuizAnswerResult struct {
	IsCorrect bool `json:"isCorrect"`
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type QuizResults struct {
	Total     int  `json:"total"`
	Answered  int  `json:"answered"`
	Correct   int  `json:"correct"`
	Completed bool `json:"completed"`
}

func (s *QuizService) ListQuizzes(category, language string, page, limit int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(category, language, page, limit)
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// StartQuiz opens (or re-enters) the sequence for this child. Calling
// it again, even after a birthday, returns the same row.
func (s *QuizService) StartQuiz(userID, childID, quizID uint) (*model.QuizSequence, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}
	return s.ensureSequence(userID, child, quizID)
}

func (s *QuizService) ensureSequence(userID uint, child *model.Child, quizID uint) (*model.QuizSequence, error) {
	years, weeks := util.AgeParts(child.DOB, time.Now())
	return s.QuizRepo.EnsureSequence(&model.QuizSequence{
		UserID:   userID,
		ChildID:  child.ID,
		QuizType: model.QuizTypeLearning,
		QuizID:   quizID,
		Age:      years,
		Weeks:    weeks,
	})
}

// RecordAnswer stores one answer and finalizes the sequence when the
// last question lands. A repeated (child, question) pair is rejected.
func (s *QuizService) RecordAnswer(userID, quizID uint, req *QuizAnswerRequest) (*QuizAnswerResult, error) {
	child, err := s.Users.ResolveChild(userID, req.ChildID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}

	question, err := s.QuizRepo.FindQuestion(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && question.QuizID != quizID) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	option, err := s.QuizRepo.FindOption(req.OptionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && option.QuestionID != question.ID) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	seq, err := s.ensureSequence(userID, child, quizID)
	if err != nil {
		return nil, err
	}

	inserted, err := s.QuizRepo.InsertProgress(&model.QuizProgress{
		UserID:     userID,
		ChildID:    child.ID,
		QuizID:     quizID,
		QuestionID: question.ID,
		OptionID:   option.ID,
		IsCorrect:  option.IsCorrect,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, util.ErrAnswerAlreadyRecorded
	}

	total, err := s.QuizRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}
	progress, err := s.QuizRepo.ListProgress(child.ID, quizID)
	if err != nil {
		return nil, err
	}

	result := &QuizAnswerResult{
		IsCorrect: option.IsCorrect,
		Answered:  len(progress),
		Total:     int(total),
	}

	if int64(len(progress)) >= total && !seq.IsCompleted {
		if err := s.QuizRepo.CompleteSequence(seq.ID, ""); err != nil {
			return nil, err
		}
		result.Completed = true
	}
	return result, nil
}

// Results summarizes a child's run. A quiz never touched reads as zero
// progress, not an error.
func (s *QuizService) Results(userID, childID, quizID uint) (*QuizResults, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}

	total, err := s.QuizRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}
	progress, err := s.QuizRepo.ListProgress(child.ID, quizID)
	if err != nil {
		return nil, err
	}
	correct, err := s.QuizRepo.CountCorrect(child.ID, quizID)
	if err != nil {
		return nil, err
	}

	results := &QuizResults{
		Total:    int(total),
		Answered: len(progress),
		Correct:  int(correct),
	}
	seq, err := s.QuizRepo.FindSequence(userID, child.ID, model.QuizTypeLearning, quizID)
	if err == nil {
		results.Completed = seq.IsCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return results, nil
}

type QuizCreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Category  string `json:"category"`
	Language  string `json:"language"`
	AgeMin    int    `json:"ageMin"`
	AgeMax    int    `json:"ageMax"`
	Questions []struct {
		Content string `json:"content" binding:"required"`
		Order   int    `json:"order"`
		Options []struct {
			Text      string `json:"text" binding:"required"`
			IsCorrect bool   `json:"isCorrect"`
		} `json:"options" binding:"required,min=2"`
	} `json:"questions" binding:"required,min=1"`
}

func (s *QuizService) CreateQuiz(req *QuizCreateRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:    req.Title,
		Category: req.Category,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
	}
	if quiz.Language == "" {
		quiz.Language = "en"
	}
	for _, q := range req.Questions {
		question := model.QuizQuestion{Content: q.Content, Order: q.Order}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.QuizOption{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	if _, err := s.GetQuiz(id); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}
