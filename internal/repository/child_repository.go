package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.DB.Create(child).Error
}

func (r *ChildRepository) FindByID(id uint) (*model.Child, error) {
	var child model.Child
	err := r.DB.First(&child, id).Error
	return &child, err
}

func (r *ChildRepository) FindByUser(userID uint) ([]model.Child, error) {
	var children []model.Child
	err := r.DB.Where("user_id = ?", userID).Order("id asc").Find(&children).Error
	return children, err
}

// FirstByUser returns the caller's oldest child profile; used when a
// request omits childId.
func (r *ChildRepository) FirstByUser(userID uint) (*model.Child, error) {
	var child model.Child
	err := r.DB.Where("user_id = ?", userID).Order("id asc").First(&child).Error
	return &child, err
}

func (r *ChildRepository) Update(child *model.Child) error {
	return r.DB.Save(child).Error
}

func (r *ChildRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Child{}, id).Error
}
