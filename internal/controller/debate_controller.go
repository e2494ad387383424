package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"
	"kidsphere_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DebateController struct {
	DebateService *service.DebateService
}

func NewDebateController(debateService *service.DebateService) *DebateController {
	return &DebateController{DebateService: debateService}
}

// List godoc
// @Summary List published debate topics
// @Tags debates
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/debates [get]
func (c *DebateController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	debates, total, err := c.DebateService.ListDebates(ctx.Query("language"), page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: debates, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One debate topic
// @Tags debates
// @Produce json
// @Param id path int true "debate id"
// @Success 200 {object} util.Response{data=model.Debate}
// @Failure 404 {object} util.Response
// @Router /api/debates/{id} [get]
func (c *DebateController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	debate, err := c.DebateService.GetDebate(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, debate)
}

// Turn godoc
// @Summary Send a debate argument and get the AI's counter
// @Tags debates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "debate id"
// @Param body body service.DebateTurnRequest true "argument"
// @Success 200 {object} util.Response{data=service.DebateTurnResponse}
// @Failure 404 {object} util.Response
// @Router /api/debates/{id}/turns [post]
func (c *DebateController) Turn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	debateID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.DebateTurnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resp, err := c.DebateService.Turn(claims.UserID, debateID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// TurnStream godoc
// @Summary Send a debate argument and stream the AI's counter (SSE)
// @Tags debates
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path int true "debate id"
// @Param body body service.DebateTurnRequest true "argument"
// @Failure 404 {object} util.Response
// @Router /api/debates/{id}/turns/stream [post]
func (c *DebateController) TurnStream(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	debateID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.DebateTurnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	streaming := false
	err := c.DebateService.TurnStream(claims.UserID, debateID, &req, func(chunk string) error {
		if !streaming {
			streaming = true
			ctx.Writer.Header().Set("Content-Type", "text/event-stream")
			ctx.Writer.Header().Set("Cache-Control", "no-cache")
			ctx.Writer.Header().Set("Connection", "keep-alive")
		}
		ctx.SSEvent("message", chunk)
		ctx.Writer.Flush()
		return nil
	})
	if err != nil {
		// Once chunks have gone out a JSON error is no longer possible.
		if streaming {
			logger.Log.Warn("debate stream interrupted", zap.Error(err))
			ctx.SSEvent("error", "stream interrupted")
			ctx.Writer.Flush()
			return
		}
		handleServiceError(ctx, err)
		return
	}
	ctx.SSEvent("done", "")
	ctx.Writer.Flush()
}

// History godoc
// @Summary The caller's conversation in a debate
// @Tags debates
// @Produce json
// @Security BearerAuth
// @Param id path int true "debate id"
// @Success 200 {object} util.Response{data=[]model.DebateMessage}
// @Router /api/debates/{id}/history [get]
func (c *DebateController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	debateID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	history, err := c.DebateService.History(claims.UserID, debateID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// ListAll godoc
// @Summary List every debate topic including drafts (editor)
// @Tags debates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/debates [get]
func (c *DebateController) ListAll(ctx *gin.Context) {
	page, limit := pagination(ctx)
	debates, total, err := c.DebateService.ListAllDebates(page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: debates, Total: total, Page: page, Limit: limit})
}

// Create godoc
// @Summary Create a debate topic (editor)
// @Tags debates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.DebateRequest true "debate"
// @Success 201 {object} util.Response{data=model.Debate}
// @Router /api/admin/debates [post]
func (c *DebateController) Create(ctx *gin.Context) {
	var req service.DebateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	debate, err := c.DebateService.CreateDebate(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, debate)
}

// Update godoc
// @Summary Update a debate topic (editor)
// @Tags debates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "debate id"
// @Param body body service.DebateRequest true "debate"
// @Success 200 {object} util.Response{data=model.Debate}
// @Router /api/admin/debates/{id} [put]
func (c *DebateController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.DebateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	debate, err := c.DebateService.UpdateDebate(id, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, debate)
}

// Delete godoc
// @Summary Delete a debate topic (editor)
// @Tags debates
// @Produce json
// @Security BearerAuth
// @Param id path int true "debate id"
// @Success 200 {object} util.Response
// @Router /api/admin/debates/{id} [delete]
func (c *DebateController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.DebateService.DeleteDebate(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
