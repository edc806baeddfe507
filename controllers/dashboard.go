package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// DashboardController serves admin statistics, the quality report and
// the training data export.
type DashboardController struct {
	dashboard *services.DashboardService
	quality   *services.QualityService
	export    *services.ExportService
	audit     *services.AuditService
}

// NewDashboardController wires the admin reporting endpoints.
func NewDashboardController(dashboard *services.DashboardService, quality *services.QualityService, export *services.ExportService, audit *services.AuditService) *DashboardController {
	return &DashboardController{dashboard: dashboard, quality: quality, export: export, audit: audit}
}

// Stats returns the dashboard summary
func (ctrl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctrl.dashboard.Stats()
	if err != nil {
		respondStoreError(c, err, "Failed to compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// QualityStats returns the data-quality report over all submissions
func (ctrl *DashboardController) QualityStats(c *gin.Context) {
	stats, err := ctrl.quality.GenerateStats()
	if err != nil {
		respondStoreError(c, err, "Failed to compute quality stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export serializes approved submissions; ?format defaults to json.
// ?limit caps the record count and ?anonymize=true masks identifiers.
func (ctrl *DashboardController) Export(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	records, err := ctrl.export.ExportTrainingData(services.ExportOptions{
		Format:    c.DefaultQuery("format", "json"),
		Limit:     limit,
		Anonymize: c.Query("anonymize") == "true",
	})
	if err != nil {
		if errors.Is(err, services.ErrCSVNotSupported) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// Logs returns the audit trail, newest first
func (ctrl *DashboardController) Logs(c *gin.Context) {
	entries, err := ctrl.audit.AllLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": entries})
}
