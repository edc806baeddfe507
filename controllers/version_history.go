package controllers

import (
	"net/http"

	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// VersionHistoryController exposes archived submission versions.
type VersionHistoryController struct {
	versions *services.VersionService
}

// NewVersionHistoryController wires the version history endpoints.
func NewVersionHistoryController(versions *services.VersionService) *VersionHistoryController {
	return &VersionHistoryController{versions: versions}
}

// History lists archived versions of a submission, newest first. Pass
// ?include_data=true to include the full snapshots.
func (ctrl *VersionHistoryController) History(c *gin.Context) {
	includeData := c.Query("include_data") == "true"

	records, err := ctrl.versions.History(c.Param("id"), includeData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load version history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": records})
}

// Compare diffs two archived version records identified by
// ?v1=...&v2=...
func (ctrl *VersionHistoryController) Compare(c *gin.Context) {
	v1 := c.Query("v1")
	v2 := c.Query("v2")
	if v1 == "" || v2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "v1 and v2 version record ids are required"})
		return
	}

	diff, err := ctrl.versions.Compare(v1, v2)
	if err != nil {
		respondStoreError(c, err, "Failed to compare versions")
		return
	}
	c.JSON(http.StatusOK, diff)
}
