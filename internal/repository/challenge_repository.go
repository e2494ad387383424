package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) CreateChallenge(c *model.Challenge) error {
	return r.DB.Create(c).Error
}

func (r *ChallengeRepository) FindChallengeByID(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *ChallengeRepository) ListChallenges(language string) ([]model.Challenge, error) {
	var challenges []model.Challenge
	query := r.DB.Model(&model.Challenge{})
	if language != "" {
		query = query.Where("language = ?", language)
	}
	err := query.Order("id asc").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindBadgeByID(id uint) (*model.Badge, error) {
	var b model.Badge
	err := r.DB.First(&b, id).Error
	return &b, err
}

func (r *ChallengeRepository) FindBadgeByCode(code string) (*model.Badge, error) {
	var b model.Badge
	err := r.DB.Where("code = ?", code).First(&b).Error
	return &b, err
}

func (r *ChallengeRepository) ListBadges() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("id asc").Find(&badges).Error
	return badges, err
}

// EnsureProgress creates the per-(user, child, challenge) row on first
// contact and returns it either way.
func (r *ChallengeRepository) EnsureProgress(cp *model.ChallengeProgress) (*model.ChallengeProgress, error) {
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(cp).Error; err != nil {
		return nil, err
	}

	var existing model.ChallengeProgress
	err := r.DB.Where("user_id = ? AND child_id = ? AND challenge_id = ?",
		cp.UserID, cp.ChildID, cp.ChallengeID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// IncrementTasks bumps the task counter atomically and reports the new
// value, capped at the challenge's task count by the caller.
func (r *ChallengeRepository) IncrementTasks(id uint) error {
	return r.DB.Model(&model.ChallengeProgress{}).
		Where("id = ?", id).
		UpdateColumn("tasks_done", gorm.Expr("tasks_done + 1")).Error
}

// MarkCompleted flips completed and badge_awarded in one guarded update.
// The status filter keeps the badge from being awarded twice under
// concurrent completion calls.
func (r *ChallengeRepository) MarkCompleted(id uint) (bool, error) {
	res := r.DB.Model(&model.ChallengeProgress{}).
		Where("id = ? AND badge_awarded = ?", id, false).
		Updates(map[string]interface{}{
			"completed":     true,
			"badge_awarded": true,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ChallengeRepository) FindProgress(userID, childID, challengeID uint) (*model.ChallengeProgress, error) {
	var cp model.ChallengeProgress
	err := r.DB.Where("user_id = ? AND child_id = ? AND challenge_id = ?",
		userID, childID, challengeID).First(&cp).Error
	return &cp, err
}

func (r *ChallengeRepository) ListProgress(userID, childID uint) ([]model.ChallengeProgress, error) {
	var rows []model.ChallengeProgress
	err := r.DB.Where("user_id = ? AND child_id = ?", userID, childID).Find(&rows).Error
	return rows, err
}
