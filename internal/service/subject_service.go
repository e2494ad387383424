package service

import (
	"errors"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	Users       *UserService
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, users *UserService) *SubjectService {
	return &SubjectService{
		SubjectRepo: subjectRepo,
		Users:       users,
	}
}

type SubjectAnswerRequest struct {
	ChildID    uint   `json:"childId"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=yes no"`
}

type SubjectAnswerResult struct {
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type SubjectResult struct {
	YesCount   int    `json:"yesCount"`
	SkilledAge int    `json:"skilledAge"`
	Completed  string `json:"completed"`
}

func (s *SubjectService) ListSubjects(language string, page, limit int) ([]model.Subject, int64, error) {
	return s.SubjectRepo.List(language, page, limit)
}

func (s *SubjectService) GetSubject(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubjectNotFound
	}
	return subject, err
}

// RecordAnswer stores one yes/no answer and derives the skilled age when
// the checklist is complete.
func (s *SubjectService) RecordAnswer(userID, subjectID uint, req *SubjectAnswerRequest) (*SubjectAnswerResult, error) {
	child, err := s.Users.ResolveChild(userID, req.ChildID)
	if err != nil {
		return nil, err
	}

	subject, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}

	valid := false
	for _, q := range subject.Questions {
		if q.ID == req.QuestionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, util.ErrSubjectNotFound
	}

	completion, err := s.SubjectRepo.EnsureCompletion(&model.SubjectCompletion{
		UserID:    userID,
		ChildID:   child.ID,
		SubjectID: subjectID,
	})
	if err != nil {
		return nil, err
	}

	inserted, err := s.SubjectRepo.InsertProgress(&model.SubjectProgress{
		UserID:     userID,
		ChildID:    child.ID,
		SubjectID:  subjectID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, util.ErrAnswerAlreadyRecorded
	}

	total := int64(len(subject.Questions))
	answered, err := s.SubjectRepo.CountAnswers(child.ID, subjectID)
	if err != nil {
		return nil, err
	}

	result := &SubjectAnswerResult{
		Answered: int(answered),
		Total:    int(total),
	}

	if answered >= total && completion.Completed != "yes" {
		yes, err := s.SubjectRepo.CountYes(child.ID, subjectID)
		if err != nil {
			return nil, err
		}
		age := util.AgeYears(child.DOB, time.Now())
		skilled := SkilledAge(age, int(yes))
		if err := s.SubjectRepo.FinalizeCompletion(completion.ID, int(yes), skilled); err != nil {
			return nil, err
		}
		result.Completed = true
	}
	return result, nil
}

// SkilledAge buckets the yes-count into a skill age relative to the
// child's actual age: 0-3 one year behind, 4-6 on age, 7+ a year ahead.
func SkilledAge(age, yesCount int) int {
	switch {
	case yesCount <= 3:
		return age - 1
	case yesCount <= 6:
		return age
	default:
		return age + 1
	}
}

// Result reads the completion record. A checklist never finished reads
// as not completed.
func (s *SubjectService) Result(userID, childID, subjectID uint) (*SubjectResult, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetSubject(subjectID); err != nil {
		return nil, err
	}

	completion, err := s.SubjectRepo.FindCompletion(userID, child.ID, subjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SubjectResult{Completed: "no"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &SubjectResult{
		YesCount:   completion.YesCount,
		SkilledAge: completion.SkilledAge,
		Completed:  completion.Completed,
	}, nil
}

type SubjectCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Language  string `json:"language"`
	AgeMin    int    `json:"ageMin"`
	AgeMax    int    `json:"ageMax"`
	Questions []struct {
		Content string `json:"content" binding:"required"`
		Order   int    `json:"order"`
	} `json:"questions" binding:"required,min=1"`
}

func (s *SubjectService) CreateSubject(req *SubjectCreateRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Name:     req.Name,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
	}
	if subject.Language == "" {
		subject.Language = "en"
	}
	for _, q := range req.Questions {
		subject.Questions = append(subject.Questions, model.SubjectQuestion{
			Content: q.Content,
			Order:   q.Order,
		})
	}

	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}
