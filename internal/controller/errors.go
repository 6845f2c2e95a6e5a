package controller

import (
	"errors"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误映射为 HTTP 状态码，未知错误记录日志并返回 500
func respondError(ctx *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		util.ErrorWithData(ctx, http.StatusBadRequest, util.ErrInvalidQuiz.Error(), verr.Report)
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrNoResults),
		errors.Is(err, util.ErrExportNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}
