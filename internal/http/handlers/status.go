package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

// statusFor maps domain errors to HTTP status codes. Every handler goes
// through this single table so the taxonomy stays consistent across the
// surface.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPhoneTaken),
		errors.Is(err, domain.ErrCapabilityNameTaken),
		errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCapabilityNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrAccountPending):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountSuspended):
		return http.StatusLocked
	case errors.Is(err, domain.ErrIncorrectPassword),
		errors.Is(err, domain.ErrOTPIncorrect),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrOTPFormatInvalid),
		errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOTPTooManyAttempts),
		errors.Is(err, domain.ErrOTPResendThrottled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the envelope for a failed operation. Internal
// failures are logged with their detail and collapsed to a generic
// message so nothing about the store or notifier leaks to clients.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"message": "server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// respondBindError handles malformed or incomplete request bodies
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
}
