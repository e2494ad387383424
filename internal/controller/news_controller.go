package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	NewsService    *service.NewsService
	StorageService *service.StorageService
}

func NewNewsController(newsService *service.NewsService, storageService *service.StorageService) *NewsController {
	return &NewsController{
		NewsService:    newsService,
		StorageService: storageService,
	}
}

// Feed godoc
// @Summary Grouped news feed
// @Description Published articles, newest first. Articles sharing a news
// @Description group collapse into one entry with the union of viewpoints.
// @Tags news
// @Produce json
// @Param category query string false "category filter"
// @Param language query string false "language filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=service.NewsFeed}
// @Router /api/news [get]
func (c *NewsController) Feed(ctx *gin.Context) {
	page, limit := pagination(ctx)
	feed, err := c.NewsService.ListFeed(ctx.Request.Context(), ctx.Query("category"), ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, feed)
}

// Get godoc
// @Summary One article with its alternate viewpoints
// @Tags news
// @Produce json
// @Param id path int true "news id"
// @Success 200 {object} util.Response{data=service.NewsDetail}
// @Failure 404 {object} util.Response
// @Router /api/news/{id} [get]
func (c *NewsController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.NewsService.GetNews(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// Create godoc
// @Summary Create an article (editor)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.NewsRequest true "article"
// @Success 201 {object} util.Response{data=model.News}
// @Router /api/admin/news [post]
func (c *NewsController) Create(ctx *gin.Context) {
	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	news, err := c.NewsService.CreateNews(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, news)
}

// Update godoc
// @Summary Update an article (editor)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "news id"
// @Param body body service.NewsRequest true "article"
// @Success 200 {object} util.Response{data=model.News}
// @Router /api/admin/news/{id} [put]
func (c *NewsController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	news, err := c.NewsService.UpdateNews(id, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, news)
}

type publishRequest struct {
	Publish bool `json:"publish"`
}

// Publish godoc
// @Summary Publish or unpublish an article (editor)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "news id"
// @Success 200 {object} util.Response{data=model.News}
// @Router /api/admin/news/{id}/publish [put]
func (c *NewsController) Publish(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req publishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	news, err := c.NewsService.PublishNews(id, req.Publish)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, news)
}

// Delete godoc
// @Summary Delete an article (editor)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path int true "news id"
// @Success 200 {object} util.Response
// @Router /api/admin/news/{id} [delete]
func (c *NewsController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.NewsService.DeleteNews(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListAll godoc
// @Summary All articles including drafts (editor)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/news [get]
func (c *NewsController) ListAll(ctx *gin.Context) {
	page, limit := pagination(ctx)
	items, total, err := c.NewsService.ListAll(page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// UploadImage godoc
// @Summary Upload a news image (editor)
// @Tags news
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/admin/news/upload [post]
func (c *NewsController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadMedia(
		ctx.Request.Context(),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
