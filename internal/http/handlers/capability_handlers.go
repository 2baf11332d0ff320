package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

// CapabilityHandlers handles the capability catalog management surface
type CapabilityHandlers struct {
	capabilitySvc domain.CapabilityService
	logger        *zap.Logger
}

// NewCapabilityHandlers creates new capability handlers
func NewCapabilityHandlers(capabilitySvc domain.CapabilityService, logger *zap.Logger) *CapabilityHandlers {
	return &CapabilityHandlers{
		capabilitySvc: capabilitySvc,
		logger:        logger,
	}
}

// CapabilityRequest represents a create or update submission
type CapabilityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create registers a new capability
func (h *CapabilityHandlers) Create(c *gin.Context) {
	var req CapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	capability, err := h.capabilitySvc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, capabilityPayload(capability))
}

// List returns the full capability catalog
func (h *CapabilityHandlers) List(c *gin.Context) {
	capabilities, err := h.capabilitySvc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payload := make([]gin.H, 0, len(capabilities))
	for i := range capabilities {
		payload = append(payload, capabilityPayload(&capabilities[i]))
	}
	c.JSON(http.StatusOK, gin.H{"capabilities": payload})
}

// Get returns a single capability by its numeric id
func (h *CapabilityHandlers) Get(c *gin.Context) {
	id, ok := capabilityID(c)
	if !ok {
		return
	}

	capability, err := h.capabilitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, capabilityPayload(capability))
}

// Update renames or re-describes a capability
func (h *CapabilityHandlers) Update(c *gin.Context) {
	id, ok := capabilityID(c)
	if !ok {
		return
	}

	var req CapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	capability, err := h.capabilitySvc.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, capabilityPayload(capability))
}

// Delete removes a capability from the catalog
func (h *CapabilityHandlers) Delete(c *gin.Context) {
	id, ok := capabilityID(c)
	if !ok {
		return
	}

	if err := h.capabilitySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Capability deleted."})
}

func capabilityID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid capability id"})
		return 0, false
	}
	return uint(id), true
}

func capabilityPayload(capability *domain.Capability) gin.H {
	return gin.H{
		"capability_id": capability.CapabilityID,
		"name":          capability.Name,
		"description":   capability.Description,
	}
}
