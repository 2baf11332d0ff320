package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

// CapabilityMW authorizes requests against the capability catalog
type CapabilityMW struct {
	capabilitySvc domain.CapabilityService
	logger        *zap.Logger
}

// NewCapabilityMW creates new capability middleware wrapper
func NewCapabilityMW(capabilitySvc domain.CapabilityService, logger *zap.Logger) *CapabilityMW {
	return &CapabilityMW{
		capabilitySvc: capabilitySvc,
		logger:        logger,
	}
}

// Require matches the request path against the capability catalog and
// checks the caller's grants. Runs after RequireAuth. Unknown paths are
// denied; superadmins pass unconditionally.
func (mw *CapabilityMW) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		if err := mw.capabilitySvc.Authorize(c.Request.Context(), claims, c.Request.URL.Path); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				mw.audit(domain.NewAuditEvent(domain.AccessDeniedEvent).WithAccount(0, claims.Email).WithPath(c.Request.URL.Path).WithError(err))
				c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			} else {
				mw.logger.Error("authorization check failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			}
			c.Abort()
			return
		}

		mw.audit(domain.NewAuditEvent(domain.AccessGrantedEvent).WithAccount(0, claims.Email).WithPath(c.Request.URL.Path))
		c.Next()
	}
}

func (mw *CapabilityMW) audit(event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event", string(event.EventType)),
		zap.String("email", event.Email),
		zap.String("path", event.Path),
		zap.Bool("success", event.Success),
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	mw.logger.Info("authz event", fields...)
}
