package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartjanseva/janseva-api/internal/service"
)

// ApplicationHandler exposes government service applications.
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplyRequest is the application submission body.
type ApplyRequest struct {
	ServiceType string `json:"service_type" binding:"required"`
	Details     string `json:"details" binding:"omitempty,max=2000"`
}

// UpdateApplicationStatusRequest is the admin status-change body.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted under_review approved rejected"`
	Remark string `json:"remark" binding:"omitempty,max=500"`
}

// Apply submits a new service application for the authenticated citizen.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	application, err := h.applicationService.Apply(service.ApplyInput{
		UserID:      userID,
		ServiceType: req.ServiceType,
		Details:     req.Details,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "application": application})
}

// ListMine returns the caller's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	applications, err := h.applicationService.ListMine(userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// Track looks up an application by its public reference number.
func (h *ApplicationHandler) Track(c *gin.Context) {
	application, err := h.applicationService.Track(c.Param("reference"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateStatus applies an admin status transition.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	applicationID := c.MustGet("application_id").(uint)

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	application, err := h.applicationService.UpdateStatus(applicationID, req.Status, req.Remark)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": application})
}
