package controllers

import (
	"net/http"
	"time"

	"exam-data-api/models"
	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// AssignmentController manages assignment CRUD and status transitions.
type AssignmentController struct {
	assignments *services.AssignmentService
	submissions *services.SubmissionService
}

// NewAssignmentController wires the assignment endpoints.
func NewAssignmentController(assignments *services.AssignmentService, submissions *services.SubmissionService) *AssignmentController {
	return &AssignmentController{assignments: assignments, submissions: submissions}
}

type AssignWorkRequest struct {
	MainExamID string    `json:"mainExamId" binding:"required"`
	SubExamID  *string   `json:"subExamId"`
	InternIDs  []string  `json:"internIds" binding:"required"`
	DueDate    time.Time `json:"dueDate" binding:"required"`
	Notes      string    `json:"notes"`
}

// Create assigns an exam to one or more interns
func (ctrl *AssignmentController) Create(c *gin.Context) {
	var req AssignWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids, err := ctrl.assignments.AssignWork(services.AssignWorkInput{
		MainExamID: req.MainExamID,
		SubExamID:  req.SubExamID,
		InternIDs:  req.InternIDs,
		DueDate:    req.DueDate,
		AssignedBy: contextString(c, "userID"),
		Notes:      req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ids": ids, "message": "Assignments created successfully"})
}

// List returns assignments. Interns always see their own; admins can
// filter with ?intern_id= or omit it to list everything.
func (ctrl *AssignmentController) List(c *gin.Context) {
	internID := c.Query("intern_id")
	if contextString(c, "role") == models.RoleIntern {
		internID = contextString(c, "userID")
	}

	assignments, err := ctrl.assignments.AssignmentsForIntern(internID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assignments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// Get returns a single assignment
func (ctrl *AssignmentController) Get(c *gin.Context) {
	assignment, err := ctrl.assignments.Assignment(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Failed to load assignment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

type UpdateAssignmentStatusRequest struct {
	Status  string                 `json:"status" binding:"required"`
	Details map[string]interface{} `json:"details"`
}

// UpdateStatus transitions an assignment, appending to its history
func (ctrl *AssignmentController) UpdateStatus(c *gin.Context) {
	var req UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ctrl.assignments.UpdateStatus(c.Param("id"), req.Status, contextString(c, "userID"), req.Details)
	if err != nil {
		respondStoreError(c, err, "Failed to update assignment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment updated successfully"})
}

// Delete removes an assignment entirely
func (ctrl *AssignmentController) Delete(c *gin.Context) {
	if err := ctrl.assignments.Delete(c.Param("id"), contextString(c, "userID")); err != nil {
		respondStoreError(c, err, "Failed to delete assignment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}

// Submissions lists submissions made for one assignment
func (ctrl *AssignmentController) Submissions(c *gin.Context) {
	submissions, err := ctrl.submissions.SubmissionsForAssignment(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
