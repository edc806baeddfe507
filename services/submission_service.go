package services

import (
	"fmt"
	"log"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
	"exam-data-api/utils"
)

// SubmissionService runs the submission pipeline: intake with metadata
// stamping, the generic archive-then-update status flow, and approval
// into the finalSubmissions collection.
//
// The generic updater accepts any status value; approved is terminal by
// convention only and a further status write is not prevented.
type SubmissionService struct {
	store       store.Store
	audit       *AuditService
	versions    *VersionService
	assignments *AssignmentService
	notify      *NotificationService
}

// NewSubmissionService wires the submission pipeline.
func NewSubmissionService(st store.Store, audit *AuditService, versions *VersionService, assignments *AssignmentService, notify *NotificationService) *SubmissionService {
	return &SubmissionService{store: st, audit: audit, versions: versions, assignments: assignments, notify: notify}
}

// SubmitInput is an intern's form submission.
type SubmitInput struct {
	AssignmentID string
	FormData     map[string]interface{}
	InternNotes  string
	InternID     string
	Device       *models.DeviceInfo
}

// Submit normalizes the form payload, stamps the version-1 metadata
// block, persists the submission and writes an audit entry. The audit
// write is best-effort: the submission is durable even if logging fails.
func (s *SubmissionService) Submit(input SubmitInput) (string, error) {
	now := time.Now()
	internID := input.InternID
	if internID == "" {
		internID = "unknown"
	}

	formData := utils.NormalizeFormData(input.FormData)
	if formData == nil {
		formData = map[string]interface{}{}
	}
	formData["metadata"] = buildSubmissionMetadata(internID, input.Device, now)

	device := "unknown"
	if input.Device != nil && input.Device.Device != "" {
		device = input.Device.Device
	}

	submission := models.Submission{
		AssignmentID:  input.AssignmentID,
		FormData:      formData,
		Status:        models.SubmissionStatusSubmitted,
		InternNotes:   input.InternNotes,
		AdminNotes:    "",
		FeedbackNotes: "",
		AdminApproved: false,
		CreatedAt:     now,
		UpdatedAt:     now,
		History: []models.HistoryEntry{{
			Action:    models.SubmissionStatusSubmitted,
			ActorID:   internID,
			Timestamp: now,
			Details: map[string]interface{}{
				"internNotes": input.InternNotes,
				"source":      "intern_submission",
				"device":      device,
			},
		}},
	}

	id, err := s.store.Insert(store.CollectionSubmissions, submission)
	if err != nil {
		return "", fmt.Errorf("failed to store submission: %w", err)
	}

	s.audit.LogBestEffort("exam_submission", internID, "submission", id, map[string]interface{}{
		"assignmentId": input.AssignmentID,
		"status":       models.SubmissionStatusSubmitted,
		"device":       device,
	})
	return id, nil
}

// buildSubmissionMetadata assembles the version-1 metadata block with
// the environment snapshot and the initial data-quality markers.
func buildSubmissionMetadata(internID string, device *models.DeviceInfo, now time.Time) map[string]interface{} {
	iso := now.UTC().Format(time.RFC3339)
	environment := map[string]interface{}{
		"timestamp": iso,
		"date":      now.UTC().Format("2006-01-02"),
		"time":      now.UTC().Format("15:04:05"),
		"browser":   "unknown",
		"os":        "unknown",
		"device":    "unknown",
	}
	if device != nil {
		if device.Browser != "" {
			environment["browser"] = device.Browser
		}
		if device.OS != "" {
			environment["os"] = device.OS
		}
		if device.Device != "" {
			environment["device"] = device.Device
		}
		if device.ScreenWidth != nil {
			environment["screen_width"] = *device.ScreenWidth
		}
		if device.ScreenHeight != nil {
			environment["screen_height"] = *device.ScreenHeight
		}
		if device.ViewportWidth != nil {
			environment["viewport_width"] = *device.ViewportWidth
		}
		if device.ViewportHeight != nil {
			environment["viewport_height"] = *device.ViewportHeight
		}
	}

	return map[string]interface{}{
		"created_at":             iso,
		"updated_at":             iso,
		"intern_id":              internID,
		"admin_approved":         false,
		"version":                1,
		"source":                 "intern_submission",
		"submission_environment": environment,
		"data_quality": map[string]interface{}{
			"completeness": nil,
			"verified":     false,
			"needs_review": true,
		},
		"training_data_status": models.TrainingDataPendingReview,
	}
}

// Submission loads a single submission.
func (s *SubmissionService) Submission(id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.store.GetByID(store.CollectionSubmissions, id, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

// SubmissionsForAssignment lists all submissions made for an assignment.
func (s *SubmissionService) SubmissionsForAssignment(assignmentID string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.store.QueryByField(store.CollectionSubmissions, "assignmentId", assignmentID, &submissions); err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}

// AllSubmissions lists every submission, pending and reviewed.
func (s *SubmissionService) AllSubmissions() ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.store.QueryAll(store.CollectionSubmissions, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateInput drives the generic status update.
type UpdateInput struct {
	SubmissionID  string
	Status        string
	ActorID       string
	AdminNotes    *string
	FeedbackNotes *string
	ChangeReason  string
}

// Update applies a status change: the current state is archived first,
// then the submission is rewritten with an incremented metadata version
// and appended history. An archive failure is logged and the update
// proceeds; this is a documented risk, not a silent one.
func (s *SubmissionService) Update(input UpdateInput) error {
	prev, err := s.Submission(input.SubmissionID)
	if err != nil {
		return err
	}

	now := time.Now()
	reason := input.ChangeReason
	if reason == "" {
		reason = fmt.Sprintf("Status updated to %s", input.Status)
	}

	if _, err := s.versions.Archive(input.SubmissionID, input.ActorID, reason); err != nil {
		log.Printf("Error archiving submission version for %s: %v", input.SubmissionID, err)
	}

	newVersion := prev.MetadataVersion() + 1
	adminNotes := prev.AdminNotes
	if input.AdminNotes != nil {
		adminNotes = *input.AdminNotes
	}
	feedbackNotes := prev.FeedbackNotes
	if input.FeedbackNotes != nil {
		feedbackNotes = *input.FeedbackNotes
	}

	formData := prev.FormData
	if formData != nil {
		meta := prev.Metadata()
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["updated_at"] = now.UTC().Format(time.RFC3339)
		meta["admin_approved"] = input.Status == models.SubmissionStatusApproved
		meta["version"] = newVersion
		meta["last_update_by"] = input.ActorID
		meta["update_reason"] = input.Status
		if input.FeedbackNotes != nil {
			meta["feedback"] = *input.FeedbackNotes
		}
		meta["change_history"] = appendChangeHistory(meta, map[string]interface{}{
			"version":   newVersion,
			"timestamp": now.UTC().Format(time.RFC3339),
			"actor":     input.ActorID,
			"status":    input.Status,
			"reason":    reason,
		})
		formData["metadata"] = meta
	}

	history := append(prev.History, models.HistoryEntry{
		Action:    input.Status,
		ActorID:   input.ActorID,
		Timestamp: now,
		Details: map[string]interface{}{
			"adminNotes":    adminNotes,
			"feedbackNotes": feedbackNotes,
			"changeReason":  reason,
		},
	})

	return s.store.UpdateFields(store.CollectionSubmissions, input.SubmissionID, map[string]interface{}{
		"status":        input.Status,
		"formData":      formData,
		"adminNotes":    adminNotes,
		"feedbackNotes": feedbackNotes,
		"adminApproved": input.Status == models.SubmissionStatusApproved,
		"updatedAt":     now,
		"history":       history,
	})
}

// appendChangeHistory appends one entry to metadata.change_history.
func appendChangeHistory(meta map[string]interface{}, entry map[string]interface{}) []interface{} {
	history, _ := meta["change_history"].([]interface{})
	return append(history, entry)
}

// ApproveInput drives the approval flow.
type ApproveInput struct {
	SubmissionID  string
	AssignmentID  string
	ActorID       string
	FeedbackNotes string
	QualityScore  *float64
	ReviewNotes   string
}

// Approve promotes a submission into the finalSubmissions collection as
// an enhanced, training-data-ready copy; the original submission is then
// updated to approved through the generic updater, which re-archives.
// That second archive is an accepted redundancy.
func (s *SubmissionService) Approve(input ApproveInput) (string, error) {
	submission, err := s.Submission(input.SubmissionID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	const approvalReason = "Submission approved for training data"

	if _, err := s.versions.Archive(input.SubmissionID, input.ActorID, approvalReason); err != nil {
		log.Printf("Error archiving submission version for %s: %v", input.SubmissionID, err)
	}

	newVersion := submission.MetadataVersion() + 1
	iso := now.UTC().Format(time.RFC3339)

	meta := submission.Metadata()
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["admin_approved"] = true
	meta["updated_at"] = iso
	meta["approved_at"] = iso
	meta["approved_by"] = input.ActorID
	meta["version"] = newVersion
	meta["training_data_status"] = models.TrainingDataApproved
	if input.ReviewNotes != "" {
		meta["review_notes"] = input.ReviewNotes
	} else {
		meta["review_notes"] = nil
	}
	if input.QualityScore != nil {
		meta["quality_score"] = *input.QualityScore
	} else {
		meta["quality_score"] = nil
	}
	var completeness interface{}
	if input.QualityScore != nil {
		completeness = *input.QualityScore >= 8
	}
	meta["data_quality"] = map[string]interface{}{
		"completeness":      completeness,
		"verified":          true,
		"verification_date": iso,
	}
	meta["change_history"] = appendChangeHistory(meta, map[string]interface{}{
		"version":   newVersion,
		"timestamp": iso,
		"actor":     input.ActorID,
		"status":    models.SubmissionStatusApproved,
		"reason":    approvalReason,
	})

	enhanced := models.FinalSubmission{Submission: *submission, SourceSubmissionID: input.SubmissionID}
	enhanced.ID = ""
	if enhanced.FormData == nil {
		enhanced.FormData = map[string]interface{}{}
	}
	enhanced.FormData["metadata"] = meta
	enhanced.ApprovedAt = &now
	enhanced.ApprovedBy = input.ActorID
	enhanced.AdminApproved = true
	enhanced.QualityScore = input.QualityScore
	enhanced.ReviewNotes = input.ReviewNotes
	if input.FeedbackNotes != "" {
		enhanced.FeedbackNotes = input.FeedbackNotes
	}

	finalID, err := s.store.Insert(store.CollectionFinalSubmissions, enhanced)
	if err != nil {
		return "", fmt.Errorf("failed to store final submission: %w", err)
	}

	if err := s.assignments.UpdateStatus(input.AssignmentID, models.AssignmentStatusApproved, input.ActorID, nil); err != nil {
		return "", fmt.Errorf("failed to update assignment %s: %w", input.AssignmentID, err)
	}

	feedback := input.FeedbackNotes
	update := UpdateInput{
		SubmissionID: input.SubmissionID,
		Status:       models.SubmissionStatusApproved,
		ActorID:      input.ActorID,
		ChangeReason: approvalReason,
	}
	if feedback != "" {
		update.FeedbackNotes = &feedback
	}
	if err := s.Update(update); err != nil {
		return "", fmt.Errorf("failed to update submission %s: %w", input.SubmissionID, err)
	}

	s.audit.LogBestEffort("submission_approved", input.ActorID, "submission", input.SubmissionID, map[string]interface{}{
		"assignmentId":      input.AssignmentID,
		"finalSubmissionId": finalID,
	})
	s.notifySubmitter(meta, models.SubmissionStatusApproved, input.FeedbackNotes)

	return finalID, nil
}

// Reject routes a rejection through the generic updater and notifies
// the intern.
func (s *SubmissionService) Reject(submissionID, actorID, feedbackNotes string) error {
	submission, err := s.Submission(submissionID)
	if err != nil {
		return err
	}

	update := UpdateInput{
		SubmissionID: submissionID,
		Status:       models.SubmissionStatusRejected,
		ActorID:      actorID,
		ChangeReason: "Submission rejected during review",
	}
	if feedbackNotes != "" {
		update.FeedbackNotes = &feedbackNotes
	}
	if err := s.Update(update); err != nil {
		return err
	}

	s.audit.LogBestEffort("submission_rejected", actorID, "submission", submissionID, map[string]interface{}{
		"assignmentId": submission.AssignmentID,
	})
	s.notifySubmitter(submission.Metadata(), models.SubmissionStatusRejected, feedbackNotes)
	return nil
}

// notifySubmitter emails the submitting intern about a review decision
// when their account resolves. Best effort only.
func (s *SubmissionService) notifySubmitter(meta map[string]interface{}, status, feedbackNotes string) {
	internID, _ := meta["intern_id"].(string)
	if internID == "" || internID == "unknown" {
		return
	}
	var user models.User
	if err := s.store.GetByID(store.CollectionUsers, internID, &user); err != nil {
		return
	}
	s.notify.SubmissionReviewed(user.Email, status, feedbackNotes)
}
