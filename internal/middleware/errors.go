package middleware

import (
	"net/http"

	"go-vms/internal/shared/apperror"
	"go-vms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenMissing = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrMissingIdentity = apperror.New(
		"INVALID_TOKEN",
		"User identity not found in token",
		http.StatusUnauthorized,
	)
	ErrTooManyRequests = apperror.New(
		apperror.CodeTooMany,
		"Too many requests",
		http.StatusTooManyRequests,
	)
	ErrRequestInProgress = apperror.New(
		"PROCESSING",
		"Your request is still being processed, please wait.",
		http.StatusConflict,
	)
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
