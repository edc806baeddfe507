package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// VersionService archives submission snapshots and computes diffs
// between archived versions. Archives are write-once and must complete
// before the corresponding submission mutation is committed.
type VersionService struct {
	store store.Store
}

// NewVersionService returns a version history engine over the store.
func NewVersionService(st store.Store) *VersionService {
	return &VersionService{store: st}
}

// Archive snapshots the current state of a submission into the
// submissionHistory collection. A missing submission is a fatal error
// for the calling operation.
func (s *VersionService) Archive(submissionID, actorID, changeReason string) (string, error) {
	var submission models.Submission
	if err := s.store.GetByID(store.CollectionSubmissions, submissionID, &submission); err != nil {
		return "", fmt.Errorf("cannot archive submission %s: %w", submissionID, err)
	}

	record := models.SubmissionVersionRecord{
		SubmissionID:  submissionID,
		VersionNumber: submission.MetadataVersion(),
		VersionData:   &submission,
		ArchivedAt:    time.Now(),
		ArchivedBy:    actorID,
		ChangeReason:  changeReason,
	}
	return s.store.Insert(store.CollectionSubmissionHistory, record)
}

// History returns the archived versions of a submission, newest first.
// With includeFullData false the snapshot payload is omitted to reduce
// transfer size.
func (s *VersionService) History(submissionID string, includeFullData bool) ([]models.SubmissionVersionRecord, error) {
	var records []models.SubmissionVersionRecord
	if err := s.store.QueryByField(store.CollectionSubmissionHistory, "submissionId", submissionID, &records); err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ArchivedAt.After(records[j].ArchivedAt)
	})
	if !includeFullData {
		for i := range records {
			records[i].VersionData = nil
		}
	}
	if records == nil {
		records = []models.SubmissionVersionRecord{}
	}
	return records, nil
}

// FieldChange describes one key-level difference between two snapshots.
type FieldChange struct {
	Added    bool        `json:"added,omitempty"`
	Removed  bool        `json:"removed,omitempty"`
	Changed  bool        `json:"changed,omitempty"`
	OldValue interface{} `json:"oldValue,omitempty"`
	NewValue interface{} `json:"newValue,omitempty"`
}

// ChangeSet is the shallow key-level diff of two snapshots. FullChange
// marks the degenerate case where one side is missing entirely.
type ChangeSet struct {
	FullChange bool                   `json:"fullChange,omitempty"`
	Fields     map[string]FieldChange `json:"fields,omitempty"`
}

// Empty reports whether the change set carries no differences.
func (c *ChangeSet) Empty() bool {
	return c == nil || (!c.FullChange && len(c.Fields) == 0)
}

// VersionSummary identifies one side of a comparison.
type VersionSummary struct {
	VersionNumber int       `json:"versionNumber"`
	ArchivedAt    time.Time `json:"archivedAt"`
	ArchivedBy    string    `json:"archivedBy"`
	ChangeReason  string    `json:"changeReason"`
}

// NotesChanges flags per-field note differences between two versions.
type NotesChanges struct {
	InternNotes   bool `json:"internNotes"`
	AdminNotes    bool `json:"adminNotes"`
	FeedbackNotes bool `json:"feedbackNotes"`
}

// VersionDiff is the full comparison of two archived versions.
type VersionDiff struct {
	VersionInfo struct {
		V1 VersionSummary `json:"v1"`
		V2 VersionSummary `json:"v2"`
	} `json:"versionInfo"`
	Changes         *ChangeSet   `json:"changes"`
	MetadataChanges *ChangeSet   `json:"metadataChanges"`
	StatusChanges   bool         `json:"statusChanges"`
	NotesChanges    NotesChanges `json:"notesChanges"`
}

// Compare diffs two archived version records. Both must exist.
func (s *VersionService) Compare(versionID1, versionID2 string) (*VersionDiff, error) {
	var v1, v2 models.SubmissionVersionRecord
	if err := s.store.GetByID(store.CollectionSubmissionHistory, versionID1, &v1); err != nil {
		return nil, fmt.Errorf("version record %s: %w", versionID1, err)
	}
	if err := s.store.GetByID(store.CollectionSubmissionHistory, versionID2, &v2); err != nil {
		return nil, fmt.Errorf("version record %s: %w", versionID2, err)
	}

	diff := &VersionDiff{}
	diff.VersionInfo.V1 = VersionSummary{
		VersionNumber: v1.VersionNumber,
		ArchivedAt:    v1.ArchivedAt,
		ArchivedBy:    v1.ArchivedBy,
		ChangeReason:  v1.ChangeReason,
	}
	diff.VersionInfo.V2 = VersionSummary{
		VersionNumber: v2.VersionNumber,
		ArchivedAt:    v2.ArchivedAt,
		ArchivedBy:    v2.ArchivedBy,
		ChangeReason:  v2.ChangeReason,
	}

	var form1, form2, meta1, meta2 map[string]interface{}
	var status1, status2 string
	var notes1, notes2 [3]string
	if v1.VersionData != nil {
		form1 = v1.VersionData.FormData
		meta1 = v1.VersionData.Metadata()
		status1 = v1.VersionData.Status
		notes1 = [3]string{v1.VersionData.InternNotes, v1.VersionData.AdminNotes, v1.VersionData.FeedbackNotes}
	}
	if v2.VersionData != nil {
		form2 = v2.VersionData.FormData
		meta2 = v2.VersionData.Metadata()
		status2 = v2.VersionData.Status
		notes2 = [3]string{v2.VersionData.InternNotes, v2.VersionData.AdminNotes, v2.VersionData.FeedbackNotes}
	}

	diff.Changes = findChanges(form1, form2)
	diff.MetadataChanges = findChanges(meta1, meta2)
	diff.StatusChanges = status1 != status2
	diff.NotesChanges = NotesChanges{
		InternNotes:   notes1[0] != notes2[0],
		AdminNotes:    notes1[1] != notes2[1],
		FeedbackNotes: notes1[2] != notes2[2],
	}
	return diff, nil
}

// findChanges computes a shallow key-level diff. Nested values compare
// by JSON-serialized equality; a whole nested object or array counts as
// a single value. Returns nil when nothing differs.
func findChanges(a, b map[string]interface{}) *ChangeSet {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil
		}
		return &ChangeSet{FullChange: true}
	}

	fields := make(map[string]FieldChange)
	keys := make(map[string]bool, len(a)+len(b))
	for key := range a {
		keys[key] = true
	}
	for key := range b {
		keys[key] = true
	}

	for key := range keys {
		valueA, inA := a[key]
		valueB, inB := b[key]

		if !inA || !inB {
			fields[key] = FieldChange{
				Added:    !inA && inB,
				Removed:  inA && !inB,
				OldValue: valueA,
				NewValue: valueB,
			}
			continue
		}

		if !jsonEqual(valueA, valueB) {
			fields[key] = FieldChange{Changed: true, OldValue: valueA, NewValue: valueB}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ChangeSet{Fields: fields}
}

// jsonEqual compares two values by their JSON serialization.
func jsonEqual(a, b interface{}) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ja) == string(jb)
}
