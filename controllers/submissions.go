package controllers

import (
	"net/http"

	"exam-data-api/models"
	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// SubmissionController handles intern submissions and admin review.
type SubmissionController struct {
	submissions *services.SubmissionService
}

// NewSubmissionController wires the submission endpoints.
func NewSubmissionController(submissions *services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissions: submissions}
}

type SubmitRequest struct {
	AssignmentID string                 `json:"assignmentId" binding:"required"`
	FormData     map[string]interface{} `json:"formData" binding:"required"`
	InternNotes  string                 `json:"internNotes"`
	Device       *models.DeviceInfo     `json:"device"`
}

// Submit accepts an intern's completed exam form
func (ctrl *SubmissionController) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := ctrl.submissions.Submit(services.SubmitInput{
		AssignmentID: req.AssignmentID,
		FormData:     req.FormData,
		InternNotes:  req.InternNotes,
		InternID:     contextString(c, "userID"),
		Device:       req.Device,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Submission stored successfully"})
}

// Get returns a single submission
func (ctrl *SubmissionController) Get(c *gin.Context) {
	submission, err := ctrl.submissions.Submission(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Failed to load submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// List returns all submissions for review
func (ctrl *SubmissionController) List(c *gin.Context) {
	submissions, err := ctrl.submissions.AllSubmissions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

type UpdateSubmissionRequest struct {
	Status        string  `json:"status" binding:"required"`
	AdminNotes    *string `json:"adminNotes"`
	FeedbackNotes *string `json:"feedbackNotes"`
	ChangeReason  string  `json:"changeReason"`
}

// Update applies a generic status change, archiving the prior state
func (ctrl *SubmissionController) Update(c *gin.Context) {
	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ctrl.submissions.Update(services.UpdateInput{
		SubmissionID:  c.Param("id"),
		Status:        req.Status,
		ActorID:       contextString(c, "userID"),
		AdminNotes:    req.AdminNotes,
		FeedbackNotes: req.FeedbackNotes,
		ChangeReason:  req.ChangeReason,
	})
	if err != nil {
		respondStoreError(c, err, "Failed to update submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission updated successfully"})
}

type ApproveRequest struct {
	AssignmentID  string   `json:"assignmentId" binding:"required"`
	FeedbackNotes string   `json:"feedbackNotes"`
	QualityScore  *float64 `json:"qualityScore"`
	ReviewNotes   string   `json:"reviewNotes"`
}

// Approve promotes a submission into the training dataset
func (ctrl *SubmissionController) Approve(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	finalID, err := ctrl.submissions.Approve(services.ApproveInput{
		SubmissionID:  c.Param("id"),
		AssignmentID:  req.AssignmentID,
		ActorID:       contextString(c, "userID"),
		FeedbackNotes: req.FeedbackNotes,
		QualityScore:  req.QualityScore,
		ReviewNotes:   req.ReviewNotes,
	})
	if err != nil {
		respondStoreError(c, err, "Failed to approve submission")
		return
	}

	c.JSON(http.StatusOK, gin.H{"finalSubmissionId": finalID, "message": "Submission approved"})
}

type RejectRequest struct {
	FeedbackNotes string `json:"feedbackNotes"`
}

// Reject routes a rejection through the generic status updater
func (ctrl *SubmissionController) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.submissions.Reject(c.Param("id"), contextString(c, "userID"), req.FeedbackNotes); err != nil {
		respondStoreError(c, err, "Failed to reject submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission rejected"})
}
