package models

import "time"

// SubmissionVersionRecord is an immutable snapshot of a submission taken
// strictly before a status-changing update is committed. Records are
// write-once; they are never updated or deleted.
type SubmissionVersionRecord struct {
	ID            string      `json:"id"`
	SubmissionID  string      `json:"submissionId"`
	VersionNumber int         `json:"versionNumber"`
	VersionData   *Submission `json:"versionData,omitempty"`
	ArchivedAt    time.Time   `json:"archivedAt"`
	ArchivedBy    string      `json:"archivedBy"`
	ChangeReason  string      `json:"changeReason"`
}
