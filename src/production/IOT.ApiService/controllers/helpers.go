package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
)

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidCredentials, apperrors.CodeAlreadyClaimed, apperrors.CodeEmailExists, apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps an application error to a status-coded body. Internal
// failures get a fixed message so no store or driver detail leaks out.
func respondError(ctx *gin.Context, err error) {
	status := statusForCode(apperrors.CodeOf(err))
	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
