package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

// DashboardHandlers handles dashboard account provisioning
type DashboardHandlers struct {
	authSvc domain.AuthService
	logger  *zap.Logger
}

// NewDashboardHandlers creates new dashboard handlers
func NewDashboardHandlers(authSvc domain.AuthService, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		authSvc: authSvc,
		logger:  logger,
	}
}

// InviteRequest represents a dashboard user invitation
type InviteRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Role           string `json:"role" binding:"required"`
	CapabilityIDs  []uint `json:"capability_ids" binding:"required"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Invite provisions an admin account with capability grants and mails
// the generated password
func (h *DashboardHandlers) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.authSvc.InviteDashboardUser(c.Request.Context(), domain.DashboardInvite{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           req.Role,
		CapabilityIDs:  req.CapabilityIDs,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent.",
		"account_id": account.ID,
	})
}
