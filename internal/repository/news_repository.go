package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) Create(news *model.News) error {
	return r.DB.Create(news).Error
}

func (r *NewsRepository) FindByID(id uint) (*model.News, error) {
	var n model.News
	err := r.DB.First(&n, id).Error
	return &n, err
}

func (r *NewsRepository) Update(news *model.News) error {
	return r.DB.Save(news).Error
}

func (r *NewsRepository) Delete(id uint) error {
	return r.DB.Delete(&model.News{}, id).Error
}

// ListPublished returns published articles, newest first, optionally
// filtered by category and language.
func (r *NewsRepository) ListPublished(category, language string, page, limit int) ([]model.News, int64, error) {
	var items []model.News
	var total int64

	query := r.DB.Model(&model.News{}).Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("published_at desc, id desc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// FindGroupMembers returns all published articles in a news group.
func (r *NewsRepository) FindGroupMembers(groupID uint) ([]model.News, error) {
	var items []model.News
	err := r.DB.Where("news_group_id = ? AND is_published = ?", groupID, true).
		Order("id asc").Find(&items).Error
	return items, err
}

func (r *NewsRepository) ListAll(page, limit int) ([]model.News, int64, error) {
	var items []model.News
	var total int64
	query := r.DB.Model(&model.News{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}
