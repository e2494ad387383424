package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// List godoc
// @Summary List graded tests
// @Tags tests
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tests [get]
func (c *TestController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	tests, total, err := c.TestService.ListTests(ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One test with questions and options
// @Tags tests
// @Produce json
// @Param id path int true "test id"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	test, err := c.TestService.GetTest(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// Answer godoc
// @Summary Record one test answer
// @Description Marks come from the chosen option; the score, percentage
// @Description and stars are computed when the last question is answered.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Param body body service.TestAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.TestAnswerResult}
// @Failure 400 {object} util.Response
// @Router /api/tests/{id}/answers [post]
func (c *TestController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	testID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.TestAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.TestService.RecordAnswer(claims.UserID, testID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Result godoc
// @Summary Final score, percentage and stars
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Router /api/tests/{id}/result [get]
func (c *TestController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	testID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.TestService.Result(claims.UserID, testID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Create godoc
// @Summary Create a test (editor)
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TestCreateRequest true "test"
// @Success 201 {object} util.Response{data=model.Test}
// @Router /api/admin/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	var req service.TestCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.TestService.CreateTest(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}
