package services

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// ErrCSVNotSupported marks the explicitly unsupported CSV export path.
// The exporter fails clearly rather than emitting malformed output.
var ErrCSVNotSupported = errors.New("CSV export not yet implemented")

// TrainingMetadata is the training-relevant metadata subset attached to
// each exported record.
type TrainingMetadata struct {
	CreatedAt     interface{} `json:"created_at,omitempty"`
	UpdatedAt     interface{} `json:"updated_at,omitempty"`
	InternID      string      `json:"intern_id,omitempty"`
	ApprovedAt    *time.Time  `json:"approved_at,omitempty"`
	ApprovedBy    string      `json:"approved_by,omitempty"`
	QualityScore  *float64    `json:"quality_score,omitempty"`
	AdminNotes    string      `json:"admin_notes,omitempty"`
	FeedbackNotes string      `json:"feedback_notes,omitempty"`
	ReviewNotes   string      `json:"review_notes,omitempty"`
	Version       int         `json:"version"`
	DataQuality   interface{} `json:"data_quality,omitempty"`
}

// TrainingExportRecord is one approved submission serialized for
// external training consumption.
type TrainingExportRecord struct {
	ID       string                 `json:"id"`
	FormData map[string]interface{} `json:"form_data"`
	Metadata TrainingMetadata       `json:"metadata"`
	Quality  interface{}            `json:"quality"`
	// Timestamp is the ISO approval time, or the export time when the
	// approval stamp is unavailable.
	Timestamp string `json:"timestamp"`
}

// ExportService serializes approved submissions for external
// consumption.
type ExportService struct {
	store store.Store
}

// NewExportService returns an exporter over the store.
func NewExportService(st store.Store) *ExportService {
	return &ExportService{store: st}
}

// ExportOptions controls the training data export. A zero Limit means
// no cap; Anonymize replaces personal identifiers with stable tokens
// and drops free-form notes.
type ExportOptions struct {
	Format    string
	Limit     int
	Anonymize bool
}

// ExportTrainingData serializes approved final submissions. Only the
// json format is implemented; csv fails with ErrCSVNotSupported.
func (s *ExportService) ExportTrainingData(opts ExportOptions) ([]TrainingExportRecord, error) {
	switch opts.Format {
	case "json":
	case "csv":
		return nil, ErrCSVNotSupported
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	var finals []models.FinalSubmission
	if err := s.store.QueryAll(store.CollectionFinalSubmissions, &finals); err != nil {
		return nil, fmt.Errorf("failed to load final submissions: %w", err)
	}
	if opts.Limit > 0 && len(finals) > opts.Limit {
		finals = finals[:opts.Limit]
	}

	records := make([]TrainingExportRecord, 0, len(finals))
	for _, final := range finals {
		records = append(records, buildExportRecord(final, opts.Anonymize))
	}
	return records, nil
}

// anonymizeID replaces an identifier with a stable anonymous token.
func anonymizeID(id string) string {
	if id == "" {
		return "anonymous"
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return fmt.Sprintf("anon_%x", h.Sum32())
}

func buildExportRecord(final models.FinalSubmission, anonymize bool) TrainingExportRecord {
	meta := final.Metadata()

	timestamp := time.Now().UTC().Format(time.RFC3339)
	if final.ApprovedAt != nil {
		timestamp = final.ApprovedAt.UTC().Format(time.RFC3339)
	}

	record := TrainingExportRecord{
		ID:       final.ID,
		FormData: cleanFormData(final.Submission),
		Metadata: TrainingMetadata{
			ApprovedAt:    final.ApprovedAt,
			ApprovedBy:    final.ApprovedBy,
			QualityScore:  final.QualityScore,
			AdminNotes:    final.AdminNotes,
			FeedbackNotes: final.FeedbackNotes,
			ReviewNotes:   final.ReviewNotes,
			Version:       final.MetadataVersion(),
		},
		Timestamp: timestamp,
	}
	if meta != nil {
		record.Metadata.CreatedAt = meta["created_at"]
		record.Metadata.UpdatedAt = meta["updated_at"]
		record.Metadata.InternID, _ = meta["intern_id"].(string)
		record.Metadata.DataQuality = meta["data_quality"]
		record.Quality = meta["data_quality"]
	}
	if record.Quality == nil {
		record.Quality = map[string]interface{}{}
	}

	if anonymize {
		record.Metadata.InternID = anonymizeID(record.Metadata.InternID)
		if record.Metadata.ApprovedBy != "" {
			record.Metadata.ApprovedBy = anonymizeID(record.Metadata.ApprovedBy)
		}
		record.Metadata.AdminNotes = ""
		record.Metadata.FeedbackNotes = ""
		record.Metadata.ReviewNotes = ""
	}
	return record
}
