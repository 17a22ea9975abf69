package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// messageOf returns the message of an application error, or fallback
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// ErrorStatus maps an error to its HTTP status code
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrPermissionDenied), errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials, apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var detail *dto.ErrorDetail

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrIdentityMismatch):
		detail = dto.NewErrorDetail(dto.ErrorCodeIdentityMismatch, messageOf(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		detail = dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		detail = dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		detail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		detail = dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(messageOf(err, ""))
	case errors.Is(err, apperrors.ErrBadRequest):
		detail = dto.NewErrorDetail(dto.ErrorCodeBadRequest, messageOf(err, "Bad request"))
	case errors.Is(err, apperrors.ErrConflict):
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Conflict"))
	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	c.AbortWithStatusJSON(ErrorStatus(err), dto.NewErrorResponse(detail))
}
