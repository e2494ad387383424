package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
)

type DebateRepository struct {
	DB *gorm.DB
}

func NewDebateRepository(db *gorm.DB) *DebateRepository {
	return &DebateRepository{DB: db}
}

func (r *DebateRepository) Create(debate *model.Debate) error {
	return r.DB.Create(debate).Error
}

func (r *DebateRepository) FindByID(id uint) (*model.Debate, error) {
	var d model.Debate
	err := r.DB.First(&d, id).Error
	return &d, err
}

func (r *DebateRepository) Update(debate *model.Debate) error {
	return r.DB.Save(debate).Error
}

func (r *DebateRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Debate{}, id).Error
}

func (r *DebateRepository) ListPublished(language string, page, limit int) ([]model.Debate, int64, error) {
	var debates []model.Debate
	var total int64

	query := r.DB.Model(&model.Debate{}).Where("is_published = ?", true)
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&debates).Error
	return debates, total, err
}

func (r *DebateRepository) ListAll(page, limit int) ([]model.Debate, int64, error) {
	var debates []model.Debate
	var total int64

	if err := r.DB.Model(&model.Debate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&debates).Error
	return debates, total, err
}

func (r *DebateRepository) CreateMessage(msg *model.DebateMessage) error {
	return r.DB.Create(msg).Error
}

// ListMessages returns a user's conversation for one debate in turn order.
func (r *DebateRepository) ListMessages(userID, debateID uint) ([]model.DebateMessage, error) {
	var msgs []model.DebateMessage
	err := r.DB.Where("user_id = ? AND debate_id = ?", userID, debateID).
		Order("id asc").Find(&msgs).Error
	return msgs, err
}
