package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FolderController struct {
	FolderService *service.FolderService
}

func NewFolderController(folderService *service.FolderService) *FolderController {
	return &FolderController{FolderService: folderService}
}

// Create godoc
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.FolderRequest true "folder"
// @Success 201 {object} util.Response{data=model.Folder}
// @Router /api/folders [post]
func (c *FolderController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.FolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	folder, err := c.FolderService.CreateFolder(claims.UserID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, folder)
}

// List godoc
// @Summary List the caller's folders
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Folder}
// @Router /api/folders [get]
func (c *FolderController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	folders, err := c.FolderService.ListFolders(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, folders)
}

// Contents godoc
// @Summary Folder contents
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "folder id"
// @Success 200 {object} util.Response{data=service.FolderContents}
// @Failure 404 {object} util.Response
// @Router /api/folders/{id} [get]
func (c *FolderController) Contents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	folderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	contents, err := c.FolderService.GetContents(claims.UserID, folderID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// SaveItem godoc
// @Summary Save content into a folder
// @Description Saving the same item twice returns 400 "already saved".
// @Tags folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "folder id"
// @Param body body service.SaveItemRequest true "item"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/folders/{id}/items [post]
func (c *FolderController) SaveItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	folderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.SaveItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.FolderService.SaveItem(claims.UserID, folderID, &req); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, nil)
}

// RemoveItem godoc
// @Summary Remove content from a folder
// @Description Removing an item that was never saved is a no-op.
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "folder id"
// @Param itemType path string true "news or debate"
// @Param itemId path int true "item id"
// @Success 200 {object} util.Response
// @Router /api/folders/{id}/items/{itemType}/{itemId} [delete]
func (c *FolderController) RemoveItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	folderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(ctx, "itemId")
	if !ok {
		return
	}
	if err := c.FolderService.RemoveItem(claims.UserID, folderID, ctx.Param("itemType"), itemID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a folder and its saved items
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "folder id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/folders/{id} [delete]
func (c *FolderController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	folderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.FolderService.DeleteFolder(claims.UserID, folderID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
