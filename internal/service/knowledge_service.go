package service

import (
	"errors"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type KnowledgeService struct {
	KnowledgeRepo *repository.KnowledgeRepository
	Users         *UserService
}

func NewKnowledgeService(knowledgeRepo *repository.KnowledgeRepository, users *UserService) *KnowledgeService {
	return &KnowledgeService{
		KnowledgeRepo: knowledgeRepo,
		Users:         users,
	}
}

type KnowledgeAnswerRequest struct {
	ChildID    uint `json:"childId"`
	QuestionID uint `json:"questionId" binding:"required"`
	OptionID   uint `json:"optionId" binding:"required"`
}

type KnowledgeAnswerResult struct {
	IsCorrect bool `json:"isCorrect"`
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type KnowledgeSetResult struct {
	Total        int    `json:"total"`
	Answered     int    `json:"answered"`
	CorrectCount int    `json:"correctCount"`
	Completed    string `json:"completed"`
}

func (s *KnowledgeService) ListSets(language string, page, limit int) ([]model.KnowledgeSet, int64, error) {
	return s.KnowledgeRepo.ListSets(language, page, limit)
}

func (s *KnowledgeService) GetSet(id uint) (*model.KnowledgeSet, error) {
	set, err := s.KnowledgeRepo.FindSetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return set, err
}

// RecordAnswer stores one answer; the lazy UserTask row is created on
// the first answer and finalized with the correct-count when the last
// question lands.
func (s *KnowledgeService) RecordAnswer(userID, setID uint, req *KnowledgeAnswerRequest) (*KnowledgeAnswerResult, error) {
	child, err := s.Users.ResolveChild(userID, req.ChildID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetSet(setID); err != nil {
		return nil, err
	}

	question, err := s.KnowledgeRepo.FindQuestion(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && question.SetID != setID) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	option, err := s.KnowledgeRepo.FindOption(req.OptionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && option.QuestionID != question.ID) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	task, err := s.KnowledgeRepo.EnsureUserTask(&model.UserTask{
		UserID:  userID,
		ChildID: child.ID,
		SetID:   setID,
	})
	if err != nil {
		return nil, err
	}

	inserted, err := s.KnowledgeRepo.InsertProgress(&model.KnowledgeProgress{
		UserID:     userID,
		ChildID:    child.ID,
		SetID:      setID,
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

	total, err := s.KnowledgeRepo.CountQuestions(setID)
	if err != nil {
		return nil, err
	}
	progress, err := s.KnowledgeRepo.ListProgress(child.ID, setID)
	if err != nil {
		return nil, err
	}

	result := &KnowledgeAnswerResult{
		IsCorrect: option.IsCorrect,
		Answered:  len(progress),
		Total:     int(total),
	}

	if int64(len(progress)) >= total && task.Completed != "yes" {
		correct := 0
		for _, p := range progress {
			if p.IsCorrect {
				correct++
			}
		}
		if err := s.KnowledgeRepo.FinalizeUserTask(task.ID, correct); err != nil {
			return nil, err
		}
		result.Completed = true
	}
	return result, nil
}

// Results reads the task record. A set never touched reads as zero
// progress, not an error.
func (s *KnowledgeService) Results(userID, childID, setID uint) (*KnowledgeSetResult, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetSet(setID); err != nil {
		return nil, err
	}

	total, err := s.KnowledgeRepo.CountQuestions(setID)
	if err != nil {
		return nil, err
	}
	progress, err := s.KnowledgeRepo.ListProgress(child.ID, setID)
	if err != nil {
		return nil, err
	}

	result := &KnowledgeSetResult{
		Total:     int(total),
		Answered:  len(progress),
		Completed: "no",
	}
	task, err := s.KnowledgeRepo.FindUserTask(userID, child.ID, setID)
	if err == nil {
		result.CorrectCount = task.CorrectCount
		result.Completed = task.Completed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return result, nil
}

type KnowledgeSetRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	NewsGroupID uint   `json:"newsGroupId"`
	Questions   []struct {
		Content string `json:"content" binding:"required"`
		Order   int    `json:"order"`
		Options []struct {
			Text      string `json:"text" binding:"required"`
			IsCorrect bool   `json:"isCorrect"`
		} `json:"options" binding:"required,min=2"`
	} `json:"questions" binding:"required,min=1"`
}

func (s *KnowledgeService) CreateSet(req *KnowledgeSetRequest) (*model.KnowledgeSet, error) {
	set := &model.KnowledgeSet{
		Title:       req.Title,
		Category:    req.Category,
		Language:    req.Language,
		NewsGroupID: req.NewsGroupID,
	}
	if set.Language == "" {
		set.Language = "en"
	}
	for _, q := range req.Questions {
		question := model.KnowledgeQuestion{Content: q.Content, Order: q.Order}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.KnowledgeOption{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		set.Questions = append(set.Questions, question)
	}

	if err := s.KnowledgeRepo.CreateSet(set); err != nil {
		return nil, err
	}
	return set, nil
}
