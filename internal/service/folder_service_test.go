package service

import (
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFolderService(db *gorm.DB) *FolderService {
	return NewFolderService(
		repository.NewFolderRepository(db),
		repository.NewNewsRepository(db),
		repository.NewDebateRepository(db),
	)
}

func TestSaveItemRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	news := publishedNews("Keeper", "", 0)
	require.NoError(t, db.Create(news).Error)

	folder, err := svc.CreateFolder(user.ID, &FolderRequest{Name: "Favourites"})
	require.NoError(t, err)

	req := &SaveItemRequest{ItemType: util.ItemTypeNews, ItemID: news.ID}
	require.NoError(t, svc.SaveItem(user.ID, folder.ID, req))
	assert.ErrorIs(t, svc.SaveItem(user.ID, folder.ID, req), util.ErrAlreadySaved)

	contents, err := svc.GetContents(user.ID, folder.ID)
	require.NoError(t, err)
	assert.Len(t, contents.Items, 1)
}

func TestSaveItemChecksContentExists(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	folder, err := svc.CreateFolder(user.ID, &FolderRequest{Name: "Favourites"})
	require.NoError(t, err)

	err = svc.SaveItem(user.ID, folder.ID, &SaveItemRequest{ItemType: util.ItemTypeNews, ItemID: 404})
	assert.ErrorIs(t, err, util.ErrNewsNotFound)

	err = svc.SaveItem(user.ID, folder.ID, &SaveItemRequest{ItemType: util.ItemTypeDebate, ItemID: 404})
	assert.ErrorIs(t, err, util.ErrDebateNotFound)
}

func TestRemovedItemCanBeSavedAgain(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	news := publishedNews("Keeper", "", 0)
	require.NoError(t, db.Create(news).Error)

	folder, err := svc.CreateFolder(user.ID, &FolderRequest{Name: "Favourites"})
	require.NoError(t, err)

	req := &SaveItemRequest{ItemType: util.ItemTypeNews, ItemID: news.ID}
	require.NoError(t, svc.SaveItem(user.ID, folder.ID, req))
	require.NoError(t, svc.RemoveItem(user.ID, folder.ID, util.ItemTypeNews, news.ID))

	require.NoError(t, svc.SaveItem(user.ID, folder.ID, req))

	contents, err := svc.GetContents(user.ID, folder.ID)
	require.NoError(t, err)
	assert.Len(t, contents.Items, 1)
}

func TestRemoveItemIsQuietWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	folder, err := svc.CreateFolder(user.ID, &FolderRequest{Name: "Favourites"})
	require.NoError(t, err)

	assert.NoError(t, svc.RemoveItem(user.ID, folder.ID, util.ItemTypeNews, 42))
}

func TestFolderOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	owner, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	other := &model.User{Name: "Robin", Email: "robin@example.com", Password: "x", Role: model.Member, Plan: model.PlanFree}
	require.NoError(t, db.Create(other).Error)

	folder, err := svc.CreateFolder(owner.ID, &FolderRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = svc.GetContents(other.ID, folder.ID)
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
	assert.ErrorIs(t, svc.DeleteFolder(other.ID, folder.ID), util.ErrFolderNotFound)
}

func TestDeleteFolderRemovesItems(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newFolderService(db)

	news := publishedNews("Keeper", "", 0)
	require.NoError(t, db.Create(news).Error)

	folder, err := svc.CreateFolder(user.ID, &FolderRequest{Name: "Favourites"})
	require.NoError(t, err)
	require.NoError(t, svc.SaveItem(user.ID, folder.ID, &SaveItemRequest{ItemType: util.ItemTypeNews, ItemID: news.ID}))

	require.NoError(t, svc.DeleteFolder(user.ID, folder.ID))

	var count int64
	db.Model(&model.FolderItem{}).Where("folder_id = ?", folder.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
