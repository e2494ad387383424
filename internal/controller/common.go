package controller

import (
	"strconv"

	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps sentinel service errors to their HTTP status;
// anything unrecognized is logged and returned as a 500.
func handleServiceError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrUserNotFound, util.ErrChildNotFound, util.ErrQuizNotFound,
		util.ErrTestNotFound, util.ErrSubjectNotFound, util.ErrNewsNotFound,
		util.ErrFolderNotFound, util.ErrDebateNotFound, util.ErrChallengeNotFound,
		util.ErrOrderNotFound:
		util.NotFound(ctx, err.Error())
	case util.ErrAnswerAlreadyRecorded, util.ErrAlreadySaved,
		util.ErrQuizNotCompleted, util.ErrInvalidCredentials, util.ErrInvalidDate:
		util.BadRequest(ctx, err.Error())
	case util.ErrEmailRegistered:
		util.Error(ctx, 409, err.Error())
	case util.ErrBadSignature, util.ErrPremiumRequired:
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryUint(ctx *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(ctx.Query(name), 10, 32)
	return uint(v)
}

func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
