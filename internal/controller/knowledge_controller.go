package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KnowledgeController struct {
	KnowledgeService *service.KnowledgeService
}

func NewKnowledgeController(knowledgeService *service.KnowledgeService) *KnowledgeController {
	return &KnowledgeController{KnowledgeService: knowledgeService}
}

// List godoc
// @Summary List knowledge sets
// @Tags knowledge
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/knowledge [get]
func (c *KnowledgeController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	sets, total, err := c.KnowledgeService.ListSets(ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: sets, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One knowledge set with questions
// @Tags knowledge
// @Produce json
// @Param id path int true "set id"
// @Success 200 {object} util.Response{data=model.KnowledgeSet}
// @Failure 404 {object} util.Response
// @Router /api/knowledge/{id} [get]
func (c *KnowledgeController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	set, err := c.KnowledgeService.GetSet(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, set)
}

// Answer godoc
// @Summary Record one answer in a knowledge set
// @Tags knowledge
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "set id"
// @Param body body service.KnowledgeAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.KnowledgeAnswerResult}
// @Failure 400 {object} util.Response
// @Router /api/knowledge/{id}/answers [post]
func (c *KnowledgeController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	setID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.KnowledgeAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.KnowledgeService.RecordAnswer(claims.UserID, setID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Results godoc
// @Summary Knowledge set summary for a child
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Param id path int true "set id"
// @Param childId query int false "child id"
// @Success 200 {object} util.Response{data=service.KnowledgeSetResult}
// @Router /api/knowledge/{id}/results [get]
func (c *KnowledgeController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	setID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.KnowledgeService.Results(claims.UserID, queryUint(ctx, "childId"), setID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Create godoc
// @Summary Create a knowledge set (editor)
// @Tags knowledge
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.KnowledgeSetRequest true "knowledge set"
// @Success 201 {object} util.Response{data=model.KnowledgeSet}
// @Router /api/admin/knowledge [post]
func (c *KnowledgeController) Create(ctx *gin.Context) {
	var req service.KnowledgeSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	set, err := c.KnowledgeService.CreateSet(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, set)
}
