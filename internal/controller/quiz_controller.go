package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// List godoc
// @Summary List learning quizzes
// @Tags quizzes
// @Produce json
// @Param category query string false "category filter"
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	quizzes, total, err := c.QuizService.ListQuizzes(ctx.Query("category"), ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One quiz with questions and options
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetQuiz(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Start godoc
// @Summary Start (or re-enter) a quiz attempt for a child
// @Description Idempotent: calling again returns the same attempt.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param childId query int false "child id (defaults to first child)"
// @Success 200 {object} util.Response{data=model.QuizSequence}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	seq, err := c.QuizService.StartQuiz(claims.UserID, queryUint(ctx, "childId"), quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, seq)
}

// Answer godoc
// @Summary Record one answer
// @Description A second answer to the same question returns 400.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param body body service.QuizAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.QuizAnswerResult}
// @Failure 400 {object} util.Response
// @Router /api/quizzes/{id}/answers [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.RecordAnswer(claims.UserID, quizID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Results godoc
// @Summary Quiz run summary for a child
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param childId query int false "child id"
// @Success 200 {object} util.Response{data=service.QuizResults}
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	results, err := c.QuizService.Results(claims.UserID, queryUint(ctx, "childId"), quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Create godoc
// @Summary Create a quiz (editor)
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuizCreateRequest true "quiz"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/admin/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.CreateQuiz(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz (editor)
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
