package service

import (
	"errors"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	Users         *UserService
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, users *UserService) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo: challengeRepo,
		Users:         users,
	}
}

type TaskResult struct {
	TasksDone    int          `json:"tasksDone"`
	TaskCount    int          `json:"taskCount"`
	Completed    bool         `json:"completed"`
	BadgeAwarded bool         `json:"badgeAwarded"`
	Badge        *model.Badge `json:"badge,omitempty"`
}

type ChallengeStatus struct {
	Challenge model.Challenge `json:"challenge"`
	TasksDone int             `json:"tasksDone"`
	Completed bool            `json:"completed"`
}

func (s *ChallengeService) ListChallenges(language string) ([]model.Challenge, error) {
	return s.ChallengeRepo.ListChallenges(language)
}

func (s *ChallengeService) ListBadges() ([]model.Badge, error) {
	return s.ChallengeRepo.ListBadges()
}

func (s *ChallengeService) GetChallenge(id uint) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindChallengeByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChallengeNotFound
	}
	return challenge, err
}

// RecordTask advances a child's challenge by one task. The badge is
// awarded exactly once, on the call that reaches the task count; extra
// tasks after completion are accepted but change nothing.
func (s *ChallengeService) RecordTask(userID, childID, challengeID uint) (*TaskResult, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	challenge, err := s.GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}

	progress, err := s.ChallengeRepo.EnsureProgress(&model.ChallengeProgress{
		UserID:      userID,
		ChildID:     child.ID,
		ChallengeID: challengeID,
	})
	if err != nil {
		return nil, err
	}

	result := &TaskResult{
		TasksDone: progress.TasksDone,
		TaskCount: challenge.TaskCount,
		Completed: progress.Completed,
	}
	if progress.Completed {
		return result, nil
	}

	if err := s.ChallengeRepo.IncrementTasks(progress.ID); err != nil {
		return nil, err
	}
	result.TasksDone = progress.TasksDone + 1

	if result.TasksDone >= challenge.TaskCount {
		awarded, err := s.ChallengeRepo.MarkCompleted(progress.ID)
		if err != nil {
			return nil, err
		}
		result.Completed = true
		result.BadgeAwarded = awarded
		if awarded {
			badge, err := s.ChallengeRepo.FindBadgeByID(challenge.BadgeID)
			if err == nil {
				result.Badge = badge
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	return result, nil
}

// Status lists every challenge with the child's progress; untouched
// challenges read as zero tasks done.
func (s *ChallengeService) Status(userID, childID uint, language string) ([]ChallengeStatus, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}

	challenges, err := s.ChallengeRepo.ListChallenges(language)
	if err != nil {
		return nil, err
	}
	rows, err := s.ChallengeRepo.ListProgress(userID, child.ID)
	if err != nil {
		return nil, err
	}

	byChallenge := make(map[uint]model.ChallengeProgress, len(rows))
	for _, p := range rows {
		byChallenge[p.ChallengeID] = p
	}

	statuses := make([]ChallengeStatus, 0, len(challenges))
	for _, c := range challenges {
		status := ChallengeStatus{Challenge: c}
		if p, ok := byChallenge[c.ID]; ok {
			status.TasksDone = p.TasksDone
			status.Completed = p.Completed
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

type ChallengeCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	BadgeCode   string `json:"badgeCode" binding:"required"`
	TaskCount   int    `json:"taskCount" binding:"required,min=1"`
	Language    string `json:"language"`
}

func (s *ChallengeService) CreateChallenge(req *ChallengeCreateRequest) (*model.Challenge, error) {
	badge, err := s.ChallengeRepo.FindBadgeByCode(req.BadgeCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}

	challenge := &model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		BadgeID:     badge.ID,
		TaskCount:   req.TaskCount,
		Language:    req.Language,
	}
	if challenge.Language == "" {
		challenge.Language = "en"
	}
	if err := s.ChallengeRepo.CreateChallenge(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}
