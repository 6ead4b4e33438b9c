package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartjanseva/janseva-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler streams admin Excel exports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Complaints exports complaints (optionally filtered by ?status=) as xlsx.
func (h *ReportHandler) Complaints(c *gin.Context) {
	filename := fmt.Sprintf("complaints_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	if err := h.reportService.WriteComplaintsReport(c.Writer, c.Query("status")); err != nil {
		log.Printf("[ReportHandler] Complaints export failed: %v", err)
		// Headers may already be out; status is best effort.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
}

// Payments exports all bill payments as xlsx.
func (h *ReportHandler) Payments(c *gin.Context) {
	filename := fmt.Sprintf("payments_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	if err := h.reportService.WritePaymentsReport(c.Writer); err != nil {
		log.Printf("[ReportHandler] Payments export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
}
