package models

import "time"

// Assignment status values.
const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in-progress"
	AssignmentStatusCompleted  = "completed"
	AssignmentStatusApproved   = "approved"
	AssignmentStatusOverdue    = "overdue"
)

// HistoryEntry records a single action taken on an assignment or
// submission. History lists are append-only and ordered by occurrence.
type HistoryEntry struct {
	Action    string                 `json:"action"`
	ActorID   string                 `json:"actorId"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// AssignmentNotes is the optional structured form of an assignment's
// notes; free-form notes are kept in Text.
type AssignmentNotes struct {
	Text         string `json:"text,omitempty"`
	MainExamName string `json:"mainExamName,omitempty"`
	SubExamName  string `json:"subExamName,omitempty"`
	SubExamCode  string `json:"subExamCode,omitempty"`
}

// Assignment links an intern to a (main exam, optional sub-exam) pair
// with a due date. Mutations append to History, never rewriting prior
// entries.
type Assignment struct {
	ID         string          `json:"id"`
	MainExamID string          `json:"mainExamId"`
	SubExamID  *string         `json:"subExamId"`
	InternID   string          `json:"internId"`
	AssignedBy string          `json:"assignedBy"`
	DueDate    time.Time       `json:"dueDate"`
	Status     string          `json:"status"`
	Notes      AssignmentNotes `json:"notes"`
	History    []HistoryEntry  `json:"history"`
}

// IsOverdue reports whether the assignment is past due and still open.
func (a Assignment) IsOverdue(now time.Time) bool {
	switch a.Status {
	case AssignmentStatusCompleted, AssignmentStatusApproved:
		return false
	}
	return now.After(a.DueDate)
}
