package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CareerController struct {
	CareerService *service.CareerService
}

func NewCareerController(careerService *service.CareerService) *CareerController {
	return &CareerController{CareerService: careerService}
}

// List godoc
// @Summary List career assessments
// @Tags careers
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/careers [get]
func (c *CareerController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	tests, total, err := c.CareerService.ListTests(ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One assessment with questions
// @Tags careers
// @Produce json
// @Param id path int true "test id"
// @Success 200 {object} util.Response{data=model.CareerTest}
// @Failure 404 {object} util.Response
// @Router /api/careers/{id} [get]
func (c *CareerController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	test, err := c.CareerService.GetTest(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// Answer godoc
// @Summary Record one Likert answer
// @Tags careers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Param body body service.CareerAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.CareerAnswerResult}
// @Failure 400 {object} util.Response
// @Router /api/careers/{id}/answers [post]
func (c *CareerController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	testID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CareerAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.CareerService.RecordAnswer(claims.UserID, testID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Report godoc
// @Summary Personality code, catalog entry and AI compatibility
// @Description Requires a completed assessment. The AI text is generated
// @Description once and returned verbatim on later reads.
// @Tags careers
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Param childId query int false "child id"
// @Param language query string false "result language"
// @Success 200 {object} util.Response{data=service.CareerReport}
// @Failure 400 {object} util.Response
// @Router /api/careers/{id}/report [get]
func (c *CareerController) Report(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	testID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	language := ctx.DefaultQuery("language", "en")
	report, err := c.CareerService.Report(ctx.Request.Context(), claims.UserID, queryUint(ctx, "childId"), testID, language)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Create godoc
// @Summary Create an assessment (editor)
// @Tags careers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CareerTestCreateRequest true "assessment"
// @Success 201 {object} util.Response{data=model.CareerTest}
// @Router /api/admin/careers [post]
func (c *CareerController) Create(ctx *gin.Context) {
	var req service.CareerTestCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.CareerService.CreateTest(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}
