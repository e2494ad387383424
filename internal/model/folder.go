package model

import "time"

type Folder struct {
	BaseModel
	UserID uint   `gorm:"index;not null" json:"userId"`
	Name   string `gorm:"size:100;not null" json:"name"`
}

func (Folder) TableName() string {
	return "folders"
}

// FolderItem links saved content into a folder. The composite unique
// index backs the insert-on-conflict duplicate detection. No soft
// delete here: a removed row must free its index slot so the same item
// can be saved again.
type FolderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	FolderID  uint      `gorm:"not null;uniqueIndex:idx_folder_item" json:"folderId"`
	ItemType  string    `gorm:"size:20;not null;uniqueIndex:idx_folder_item" json:"itemType"` // news | debate
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_folder_item" json:"itemId"`
}

func (FolderItem) TableName() string {
	return "folder_items"
}
