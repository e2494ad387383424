package service

import (
	"errors"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type FolderService struct {
	FolderRepo *repository.FolderRepository
	NewsRepo   *repository.NewsRepository
	DebateRepo *repository.DebateRepository
}

func NewFolderService(folderRepo *repository.FolderRepository, newsRepo *repository.NewsRepository, debateRepo *repository.DebateRepository) *FolderService {
	return &FolderService{
		FolderRepo: folderRepo,
		NewsRepo:   newsRepo,
		DebateRepo: debateRepo,
	}
}

type FolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type SaveItemRequest struct {
	ItemType string `json:"itemType" binding:"required,oneof=news debate"`
	ItemID   uint   `json:"itemId" binding:"required"`
}

type FolderContents struct {
	Folder model.Folder       `json:"folder"`
	Items  []model.FolderItem `json:"items"`
}

func (s *FolderService) CreateFolder(userID uint, req *FolderRequest) (*model.Folder, error) {
	folder := &model.Folder{UserID: userID, Name: req.Name}
	if err := s.FolderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) ListFolders(userID uint) ([]model.Folder, error) {
	return s.FolderRepo.FindByUser(userID)
}

func (s *FolderService) DeleteFolder(userID, folderID uint) error {
	if _, err := s.ownedFolder(userID, folderID); err != nil {
		return err
	}
	return s.FolderRepo.Delete(folderID)
}

// SaveItem adds content to a folder. Saving the same pair twice is an
// error surfaced to the client, not a silent no-op.
func (s *FolderService) SaveItem(userID, folderID uint, req *SaveItemRequest) error {
	if _, err := s.ownedFolder(userID, folderID); err != nil {
		return err
	}
	if err := s.itemExists(req.ItemType, req.ItemID); err != nil {
		return err
	}

	inserted, err := s.FolderRepo.InsertItem(&model.FolderItem{
		FolderID: folderID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return util.ErrAlreadySaved
	}
	return nil
}

// RemoveItem deletes a saved pair. Removing something never saved
// succeeds quietly.
func (s *FolderService) RemoveItem(userID, folderID uint, itemType string, itemID uint) error {
	if _, err := s.ownedFolder(userID, folderID); err != nil {
		return err
	}
	return s.FolderRepo.DeleteItem(folderID, itemType, itemID)
}

func (s *FolderService) GetContents(userID, folderID uint) (*FolderContents, error) {
	folder, err := s.ownedFolder(userID, folderID)
	if err != nil {
		return nil, err
	}

	items, err := s.FolderRepo.ListItems(folderID)
	if err != nil {
		return nil, err
	}
	return &FolderContents{Folder: *folder, Items: items}, nil
}

func (s *FolderService) ownedFolder(userID, folderID uint) (*model.Folder, error) {
	folder, err := s.FolderRepo.FindByID(folderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	if folder.UserID != userID {
		return nil, util.ErrFolderNotFound
	}
	return folder, nil
}

func (s *FolderService) itemExists(itemType string, itemID uint) error {
	switch itemType {
	case util.ItemTypeNews:
		if _, err := s.NewsRepo.FindByID(itemID); errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNewsNotFound
		} else if err != nil {
			return err
		}
	case util.ItemTypeDebate:
		if _, err := s.DebateRepo.FindByID(itemID); errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrDebateNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}
