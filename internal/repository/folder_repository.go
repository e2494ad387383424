package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FolderRepository struct {
	DB *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{DB: db}
}

func (r *FolderRepository) Create(folder *model.Folder) error {
	return r.DB.Create(folder).Error
}

func (r *FolderRepository) FindByID(id uint) (*model.Folder, error) {
	var f model.Folder
	err := r.DB.First(&f, id).Error
	return &f, err
}

func (r *FolderRepository) FindByUser(userID uint) ([]model.Folder, error) {
	var folders []model.Folder
	err := r.DB.Where("user_id = ?", userID).Order("id asc").Find(&folders).Error
	return folders, err
}

func (r *FolderRepository) Delete(id uint) error {
	if err := r.DB.Where("folder_id = ?", id).Delete(&model.FolderItem{}).Error; err != nil {
		return err
	}
	return r.DB.Delete(&model.Folder{}, id).Error
}

// InsertItem inserts a saved item, relying on the composite unique
// index instead of a separate existence check. Returns false when the
// pair was already saved.
func (r *FolderRepository) InsertItem(item *model.FolderItem) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteItem removes a saved pair; deleting a pair that was never saved
// is a no-op, not an error.
func (r *FolderRepository) DeleteItem(folderID uint, itemType string, itemID uint) error {
	return r.DB.Where("folder_id = ? AND item_type = ? AND item_id = ?", folderID, itemType, itemID).
		Delete(&model.FolderItem{}).Error
}

func (r *FolderRepository) ListItems(folderID uint) ([]model.FolderItem, error) {
	var items []model.FolderItem
	err := r.DB.Where("folder_id = ?", folderID).Order("created_at desc").Find(&items).Error
	return items, err
}
