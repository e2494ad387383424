package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// List godoc
// @Summary List skill checklists
// @Tags subjects
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/subjects [get]
func (c *SubjectController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	subjects, total, err := c.SubjectService.ListSubjects(ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: subjects, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One checklist with questions
// @Tags subjects
// @Produce json
// @Param id path int true "subject id"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id} [get]
func (c *SubjectController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	subject, err := c.SubjectService.GetSubject(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// Answer godoc
// @Summary Record one yes/no answer
// @Description The skilled age is derived when the checklist completes.
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "subject id"
// @Param body body service.SubjectAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.SubjectAnswerResult}
// @Failure 400 {object} util.Response
// @Router /api/subjects/{id}/answers [post]
func (c *SubjectController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	subjectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.SubjectAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.SubjectService.RecordAnswer(claims.UserID, subjectID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Result godoc
// @Summary Skilled age for a child on a checklist
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "subject id"
// @Param childId query int false "child id"
// @Success 200 {object} util.Response{data=service.SubjectResult}
// @Router /api/subjects/{id}/result [get]
func (c *SubjectController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	subjectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.SubjectService.Result(claims.UserID, queryUint(ctx, "childId"), subjectID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Create godoc
// @Summary Create a checklist (editor)
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubjectCreateRequest true "subject"
// @Success 201 {object} util.Response{data=model.Subject}
// @Router /api/admin/subjects [post]
func (c *SubjectController) Create(ctx *gin.Context) {
	var req service.SubjectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	subject, err := c.SubjectService.CreateSubject(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}
