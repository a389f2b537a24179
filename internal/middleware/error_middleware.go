package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call it
// for every error a service returns, so status codes stay consistent across
// the API surface.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrScholarshipNotFound),
		errors.Is(err, apperrors.ErrBatchNotFound),
		errors.Is(err, apperrors.ErrUniversityNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Resource not found"))

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, message("Permission denied"))
	case errors.Is(err, apperrors.ErrSignUpClosed):
		respond(c, http.StatusForbidden, dto.ErrorCodeWindowClosed, "Sign-up window is closed")
	case errors.Is(err, apperrors.ErrApplicationsClosed):
		respond(c, http.StatusForbidden, dto.ErrorCodeWindowClosed, "Application window is closed")
	case errors.Is(err, apperrors.ErrEditingClosed):
		respond(c, http.StatusForbidden, dto.ErrorCodeWindowClosed, "Editing window is closed")
	case errors.Is(err, apperrors.ErrNoActiveBatch):
		respond(c, http.StatusForbidden, dto.ErrorCodeWindowClosed, "No active batch")
	case errors.Is(err, apperrors.ErrApplicationLocked),
		errors.Is(err, apperrors.ErrScholarshipLocked):
		respond(c, http.StatusForbidden, dto.ErrorCodeResourceLocked, message("Resource can no longer be changed"))

	case errors.Is(err, apperrors.ErrActiveApplication):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "An application already exists for this batch")
	case errors.Is(err, apperrors.ErrVersionConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeVersionConflict, "The resource was changed by another request")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Resource already exists"))

	case errors.Is(err, apperrors.ErrInvalidGPA):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidGPA, message("GPA is out of range"))
	case errors.Is(err, apperrors.ErrInvalidIBAN):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidIBAN, "IBAN failed validation")
	case errors.Is(err, apperrors.ErrDocumentMissing):
		respond(c, http.StatusBadRequest, dto.ErrorCodeDocumentMissing, message("A required document is missing"))
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Validation failed"))

	case errors.Is(err, apperrors.ErrUploadFailed):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeUploadFailed, "Document upload failed")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
