package services

import (
	"fmt"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
	"exam-data-api/utils"
)

// FieldStat summarizes one field path across all submissions.
type FieldStat struct {
	FillRate     float64 `json:"fillRate"`
	NullRate     float64 `json:"nullRate"`
	UniqueValues int     `json:"uniqueValues"`
}

// VersionStats summarizes submission version counters.
type VersionStats struct {
	AverageVersions float64 `json:"averageVersions"`
	MaxVersions     int     `json:"maxVersions"`
}

// SubmissionTrends buckets submission counts by day and by a simplified
// week-of-month key.
type SubmissionTrends struct {
	ByDay  map[string]int `json:"byDay"`
	ByWeek map[string]int `json:"byWeek"`
}

// DataQualityStats is the aggregate quality report over all stored
// submissions, approved and pending.
type DataQualityStats struct {
	TotalSubmissions    int                  `json:"totalSubmissions"`
	ApprovedSubmissions int                  `json:"approvedSubmissions"`
	PendingSubmissions  int                  `json:"pendingSubmissions"`
	AverageQualityScore *float64             `json:"averageQualityScore"`
	CompletenessRate    float64              `json:"completenessRate"`
	VersionStats        VersionStats         `json:"versionStats"`
	FieldStats          map[string]FieldStat `json:"fieldStats"`
	SubmissionTrends    SubmissionTrends     `json:"submissionTrends"`
}

// QualityService computes data-quality statistics for the collected
// dataset.
type QualityService struct {
	store store.Store
}

// NewQualityService returns a quality aggregator over the store.
func NewQualityService(st store.Store) *QualityService {
	return &QualityService{store: st}
}

// isApproved detects the approval signal: an approval stamp in the
// metadata or the admin_approved flag.
func isApproved(sub models.Submission) bool {
	if sub.AdminApproved || sub.ApprovedAt != nil || sub.ApprovedBy != "" {
		return true
	}
	meta := sub.Metadata()
	if meta == nil {
		return false
	}
	if approved, _ := meta["admin_approved"].(bool); approved {
		return true
	}
	if meta["approved_at"] != nil || meta["approved_by"] != nil {
		return true
	}
	return false
}

// qualityScore extracts the quality score from the submission record or
// its metadata, nil when absent.
func qualityScore(sub models.Submission) *float64 {
	if sub.QualityScore != nil {
		return sub.QualityScore
	}
	meta := sub.Metadata()
	if meta == nil {
		return nil
	}
	if score, ok := meta["quality_score"].(float64); ok {
		return &score
	}
	return nil
}

// cleanFormData returns the form data without its metadata subtree.
func cleanFormData(sub models.Submission) map[string]interface{} {
	if sub.FormData == nil {
		return nil
	}
	clean := make(map[string]interface{}, len(sub.FormData))
	for key, value := range sub.FormData {
		if key == "metadata" {
			continue
		}
		clean[key] = value
	}
	return clean
}

// isFilled reports whether a leaf value counts as filled: anything that
// is not nil and not an empty string.
func isFilled(value interface{}) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok && s == "" {
		return false
	}
	return true
}

// Completeness computes filled-leaf-count over total-leaf-count for a
// submission's form data, metadata excluded. Returns nil when there is
// no form data to measure.
func Completeness(sub models.Submission) *float64 {
	clean := cleanFormData(sub)
	if clean == nil {
		return nil
	}

	total, filled := 0, 0
	utils.WalkLeaves(clean, func(_ utils.FieldPath, value interface{}) {
		total++
		if isFilled(value) {
			filled++
		}
	})
	if total == 0 {
		zero := 0.0
		return &zero
	}
	ratio := float64(filled) / float64(total)
	return &ratio
}

// GenerateStats computes the full data-quality report.
func (s *QualityService) GenerateStats() (*DataQualityStats, error) {
	var submissions []models.Submission
	if err := s.store.QueryAll(store.CollectionSubmissions, &submissions); err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	stats := &DataQualityStats{
		TotalSubmissions: len(submissions),
		FieldStats:       map[string]FieldStat{},
		SubmissionTrends: SubmissionTrends{ByDay: map[string]int{}, ByWeek: map[string]int{}},
	}

	var scoreSum float64
	var scoreCount int
	var completenessSum float64
	var completenessCount int
	var versionSum int

	for _, sub := range submissions {
		if isApproved(sub) {
			stats.ApprovedSubmissions++
		}

		if score := qualityScore(sub); score != nil {
			scoreSum += *score
			scoreCount++
		}

		if ratio := Completeness(sub); ratio != nil {
			completenessSum += *ratio
			completenessCount++
		}

		version := sub.MetadataVersion()
		versionSum += version
		if version > stats.VersionStats.MaxVersions {
			stats.VersionStats.MaxVersions = version
		}

		bucketTrends(&stats.SubmissionTrends, submissionCreatedAt(sub))
	}

	stats.PendingSubmissions = stats.TotalSubmissions - stats.ApprovedSubmissions
	if scoreCount > 0 {
		average := scoreSum / float64(scoreCount)
		stats.AverageQualityScore = &average
	}
	if completenessCount > 0 {
		stats.CompletenessRate = completenessSum / float64(completenessCount)
	}
	if len(submissions) > 0 {
		stats.VersionStats.AverageVersions = float64(versionSum) / float64(len(submissions))
	}

	stats.FieldStats = calculateFieldStats(submissions)
	return stats, nil
}

// calculateFieldStats measures fill/null rates and value cardinality per
// structural field path over all submissions.
func calculateFieldStats(submissions []models.Submission) map[string]FieldStat {
	type counts struct {
		total  int
		nulls  int
		values map[string]bool
	}
	fieldCounts := map[string]*counts{}

	for _, sub := range submissions {
		clean := cleanFormData(sub)
		if clean == nil {
			continue
		}
		utils.WalkLeaves(clean, func(path utils.FieldPath, value interface{}) {
			key := path.String()
			c := fieldCounts[key]
			if c == nil {
				c = &counts{values: map[string]bool{}}
				fieldCounts[key] = c
			}
			c.total++
			if !isFilled(value) {
				c.nulls++
			} else {
				c.values[fmt.Sprintf("%v", value)] = true
			}
		})
	}

	fieldStats := make(map[string]FieldStat, len(fieldCounts))
	for key, c := range fieldCounts {
		stat := FieldStat{UniqueValues: len(c.values)}
		if c.total > 0 {
			stat.FillRate = float64(c.total-c.nulls) / float64(c.total)
			stat.NullRate = float64(c.nulls) / float64(c.total)
		}
		fieldStats[key] = stat
	}
	return fieldStats
}

// submissionCreatedAt resolves a submission's creation time, falling
// back to the metadata created_at stamp when the record field is unset.
func submissionCreatedAt(sub models.Submission) time.Time {
	if !sub.CreatedAt.IsZero() {
		return sub.CreatedAt
	}
	meta := sub.Metadata()
	if meta == nil {
		return time.Time{}
	}
	if iso, ok := meta["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			return t
		}
	}
	return time.Time{}
}

// bucketTrends counts a submission into its day bucket and a simplified
// week-of-month bucket.
func bucketTrends(trends *SubmissionTrends, createdAt time.Time) {
	if createdAt.IsZero() {
		return
	}
	utc := createdAt.UTC()
	dayKey := utc.Format("2006-01-02")
	trends.ByDay[dayKey]++

	weekNum := utc.Day() / 7
	weekKey := fmt.Sprintf("%04d-%02d-W%d", utc.Year(), int(utc.Month()), weekNum)
	trends.ByWeek[weekKey]++
}
