package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// List godoc
// @Summary List challenges
// @Tags challenges
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	challenges, err := c.ChallengeService.ListChallenges(ctx.Query("language"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// Badges godoc
// @Summary List all badges
// @Tags challenges
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (c *ChallengeController) Badges(ctx *gin.Context) {
	badges, err := c.ChallengeService.ListBadges()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// RecordTask godoc
// @Summary Record one completed task toward a challenge
// @Description The badge is awarded exactly once, when the task count is
// @Description reached.
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param id path int true "challenge id"
// @Param childId query int false "child id"
// @Success 200 {object} util.Response{data=service.TaskResult}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id}/tasks [post]
func (c *ChallengeController) RecordTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	challengeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.ChallengeService.RecordTask(claims.UserID, queryUint(ctx, "childId"), challengeID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Status godoc
// @Summary Challenge progress for a child
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param childId query int false "child id"
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=[]service.ChallengeStatus}
// @Router /api/challenges/status [get]
func (c *ChallengeController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	statuses, err := c.ChallengeService.Status(claims.UserID, queryUint(ctx, "childId"), ctx.Query("language"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}

// Create godoc
// @Summary Create a challenge (admin)
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChallengeCreateRequest true "challenge"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Router /api/admin/challenges [post]
func (c *ChallengeController) Create(ctx *gin.Context) {
	var req service.ChallengeCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	challenge, err := c.ChallengeService.CreateChallenge(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}
