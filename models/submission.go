package models

import "time"

// Submission status values. The generic status updater accepts other
// values too; this is not a closed enum, and approved is terminal only by
// convention.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusApproved  = "approved"
	SubmissionStatusRejected  = "rejected"
	SubmissionStatusInReview  = "in-review"
)

// Training data lifecycle markers stored in formData metadata.
const (
	TrainingDataPendingReview = "pending_review"
	TrainingDataApproved      = "approved"
)

// Submission is the form payload an intern produces for an assignment.
// FormData is the nested form record; its "metadata" key carries the
// version counter, environment snapshot and data-quality block.
type Submission struct {
	ID            string                 `json:"id"`
	AssignmentID  string                 `json:"assignmentId"`
	FormData      map[string]interface{} `json:"formData"`
	Status        string                 `json:"status"`
	InternNotes   string                 `json:"internNotes"`
	AdminNotes    string                 `json:"adminNotes"`
	FeedbackNotes string                 `json:"feedbackNotes"`
	AdminApproved bool                   `json:"adminApproved"`
	ApprovedAt    *time.Time             `json:"approvedAt,omitempty"`
	ApprovedBy    string                 `json:"approvedBy,omitempty"`
	QualityScore  *float64               `json:"qualityScore,omitempty"`
	ReviewNotes   string                 `json:"reviewNotes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	History       []HistoryEntry         `json:"history"`
}

// Metadata returns the formData metadata block, or nil when absent.
func (s *Submission) Metadata() map[string]interface{} {
	if s == nil || s.FormData == nil {
		return nil
	}
	meta, _ := s.FormData["metadata"].(map[string]interface{})
	return meta
}

// MetadataVersion returns formData.metadata.version, defaulting to 1.
func (s *Submission) MetadataVersion() int {
	meta := s.Metadata()
	if meta == nil {
		return 1
	}
	switch v := meta["version"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 1
}

// FinalSubmission is an approved, training-data-ready copy of a
// Submission stored in its own append-only collection. The original
// submission remains in place with status approved.
type FinalSubmission struct {
	Submission
	SourceSubmissionID string `json:"sourceSubmissionId"`
}

// DeviceInfo is the optional environment snapshot captured at submit
// time. Missing values default to "unknown".
type DeviceInfo struct {
	Browser        string `json:"browser,omitempty"`
	OS             string `json:"os,omitempty"`
	Device         string `json:"device,omitempty"`
	ScreenWidth    *int   `json:"screenWidth,omitempty"`
	ScreenHeight   *int   `json:"screenHeight,omitempty"`
	ViewportWidth  *int   `json:"viewportWidth,omitempty"`
	ViewportHeight *int   `json:"viewportHeight,omitempty"`
}
