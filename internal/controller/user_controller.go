package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// AddChild godoc
// @Summary Add a child profile
// @Tags children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChildRequest true "child profile"
// @Success 201 {object} util.Response{data=model.Child}
// @Router /api/children [post]
func (c *UserController) AddChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.UserService.AddChild(claims.UserID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, child)
}

// ListChildren godoc
// @Summary List the caller's children
// @Tags children
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Child}
// @Router /api/children [get]
func (c *UserController) ListChildren(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	children, err := c.UserService.ListChildren(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, children)
}

// UpdateChild godoc
// @Summary Update a child profile
// @Tags children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "child id"
// @Param body body service.ChildRequest true "child profile"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [put]
func (c *UserController) UpdateChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	childID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.UserService.UpdateChild(claims.UserID, childID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, child)
}

// DeleteChild godoc
// @Summary Delete a child profile
// @Tags children
// @Produce json
// @Security BearerAuth
// @Param id path int true "child id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [delete]
func (c *UserController) DeleteChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	childID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.UserService.DeleteChild(claims.UserID, childID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListUsers godoc
// @Summary List accounts (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := pagination(ctx)
	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type disableRequest struct {
	Disabled bool `json:"disabled"`
}

// DisableUser godoc
// @Summary Disable or re-enable an account (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) DisableUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req disableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DisableUser(userID, req.Disabled); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
