package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartjanseva/janseva-api/internal/service"
)

// ComplaintHandler exposes complaint filing, tracking and admin management.
type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler.
func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// FileComplaintRequest is the complaint filing body.
type FileComplaintRequest struct {
	Department  string `json:"department" binding:"required"`
	Subject     string `json:"subject" binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"required,min=10"`
	Location    string `json:"location" binding:"omitempty,max=255"`
}

// UpdateComplaintStatusRequest is the admin status-change body.
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=registered in_progress resolved rejected"`
	Remark string `json:"remark" binding:"omitempty,max=500"`
}

// File registers a new complaint for the authenticated citizen.
func (h *ComplaintHandler) File(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	complaint, err := h.complaintService.File(service.FileComplaintInput{
		UserID:      userID,
		Department:  req.Department,
		Subject:     req.Subject,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "complaint": complaint})
}

// ListMine returns the caller's complaints.
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	complaints, err := h.complaintService.ListMine(userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// Track looks up a complaint by its public reference number.
func (h *ComplaintHandler) Track(c *gin.Context) {
	complaint, err := h.complaintService.Track(c.Param("reference"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// List returns complaints for the admin dashboard, optionally filtered
// by status.
func (h *ComplaintHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	complaints, err := h.complaintService.List(c.Query("status"), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// UpdateStatus applies an admin status transition.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	complaintID := c.MustGet("complaint_id").(uint)

	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	complaint, err := h.complaintService.UpdateStatus(complaintID, req.Status, req.Remark)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": complaint})
}

// Stats returns complaint counts by status for the admin dashboard.
func (h *ComplaintHandler) Stats(c *gin.Context) {
	stats, err := h.complaintService.Stats()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// paginationParams reads limit/offset query parameters with sane defaults.
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
