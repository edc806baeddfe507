package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-data-api/models"
	"exam-data-api/store"
)

func TestCompleteness(t *testing.T) {
	t.Run("all filled", func(t *testing.T) {
		ratio := Completeness(models.Submission{FormData: map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"fee":            float64(100),
			"subExams": []interface{}{
				map[string]interface{}{"short_code": "SSC-GDC"},
			},
		}})
		require.NotNil(t, ratio)
		assert.Equal(t, 1.0, *ratio)
	})

	t.Run("all blank", func(t *testing.T) {
		ratio := Completeness(models.Submission{FormData: map[string]interface{}{
			"main_exam_name": nil,
			"exam_code":      "",
		}})
		require.NotNil(t, ratio)
		assert.Equal(t, 0.0, *ratio)
	})

	t.Run("half filled", func(t *testing.T) {
		ratio := Completeness(models.Submission{FormData: map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"fee":            nil,
		}})
		require.NotNil(t, ratio)
		assert.Equal(t, 0.5, *ratio)
	})

	t.Run("metadata is excluded", func(t *testing.T) {
		ratio := Completeness(models.Submission{FormData: map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"metadata":       map[string]interface{}{"version": float64(1), "intern_id": nil},
		}})
		require.NotNil(t, ratio)
		assert.Equal(t, 1.0, *ratio)
	})

	t.Run("no form data", func(t *testing.T) {
		assert.Nil(t, Completeness(models.Submission{}))
	})

	t.Run("no measurable leaves", func(t *testing.T) {
		ratio := Completeness(models.Submission{FormData: map[string]interface{}{
			"metadata": map[string]interface{}{"version": float64(1)},
		}})
		require.NotNil(t, ratio)
		assert.Equal(t, 0.0, *ratio)
	})
}

func TestGenerateStats(t *testing.T) {
	env := newTestEnv()

	day1 := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 20, 15, 30, 0, 0, time.UTC)
	score := 8.5

	insertSubmission(t, env, models.Submission{
		Status:    models.SubmissionStatusSubmitted,
		CreatedAt: day1,
		FormData: map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"exam_code":      "SSC",
			"metadata":       map[string]interface{}{"version": float64(1)},
		},
	})
	insertSubmission(t, env, models.Submission{
		Status:        models.SubmissionStatusApproved,
		AdminApproved: true,
		QualityScore:  &score,
		CreatedAt:     day2,
		FormData: map[string]interface{}{
			"main_exam_name": "Banking Exams",
			"exam_code":      nil,
			"metadata":       map[string]interface{}{"version": float64(3)},
		},
	})

	stats, err := env.quality.GenerateStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.ApprovedSubmissions)
	assert.Equal(t, 1, stats.PendingSubmissions)

	// Score averages run over scored submissions only.
	require.NotNil(t, stats.AverageQualityScore)
	assert.Equal(t, 8.5, *stats.AverageQualityScore)

	// Completeness 1.0 and 0.5 average to 0.75.
	assert.InDelta(t, 0.75, stats.CompletenessRate, 1e-9)

	assert.Equal(t, 2.0, stats.VersionStats.AverageVersions)
	assert.Equal(t, 3, stats.VersionStats.MaxVersions)

	mainName := stats.FieldStats["main_exam_name"]
	assert.Equal(t, 1.0, mainName.FillRate)
	assert.Equal(t, 0.0, mainName.NullRate)
	assert.Equal(t, 2, mainName.UniqueValues)

	examCode := stats.FieldStats["exam_code"]
	assert.Equal(t, 0.5, examCode.FillRate)
	assert.Equal(t, 0.5, examCode.NullRate)
	assert.Equal(t, 1, examCode.UniqueValues)

	assert.Equal(t, 1, stats.SubmissionTrends.ByDay["2026-03-03"])
	assert.Equal(t, 1, stats.SubmissionTrends.ByDay["2026-03-20"])
	assert.Equal(t, 1, stats.SubmissionTrends.ByWeek["2026-03-W0"])
	assert.Equal(t, 1, stats.SubmissionTrends.ByWeek["2026-03-W2"])
}

func TestGenerateStatsEmptyDataset(t *testing.T) {
	env := newTestEnv()
	stats, err := env.quality.GenerateStats()
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalSubmissions)
	assert.Nil(t, stats.AverageQualityScore)
	assert.Equal(t, 0.0, stats.CompletenessRate)
	assert.Empty(t, stats.FieldStats)
	assert.Empty(t, stats.SubmissionTrends.ByDay)
}

func TestTrendsFallBackToMetadataCreatedAt(t *testing.T) {
	env := newTestEnv()

	// No record-level createdAt; only the metadata stamp carries the
	// creation time.
	insertSubmission(t, env, models.Submission{
		Status: models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{
			"exam_code": "SSC",
			"metadata":  map[string]interface{}{"created_at": "2026-05-09T12:00:00Z"},
		},
	})
	insertSubmission(t, env, models.Submission{
		Status:   models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{"exam_code": "SSC"},
	})

	stats, err := env.quality.GenerateStats()
	require.NoError(t, err)

	assert.Equal(t, 1, stats.SubmissionTrends.ByDay["2026-05-09"])
	assert.Equal(t, 1, stats.SubmissionTrends.ByWeek["2026-05-W1"])
	// A submission with no resolvable timestamp stays out of the trends.
	total := 0
	for _, n := range stats.SubmissionTrends.ByDay {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestApprovalSignalFromMetadata(t *testing.T) {
	env := newTestEnv()
	insertSubmission(t, env, models.Submission{
		Status: models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{
			"exam_code": "SSC",
			"metadata":  map[string]interface{}{"admin_approved": true},
		},
	})

	stats, err := env.quality.GenerateStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ApprovedSubmissions)
}

func insertSubmission(t *testing.T, env *testEnv, sub models.Submission) string {
	t.Helper()
	id, err := env.store.Insert(store.CollectionSubmissions, sub)
	require.NoError(t, err)
	return id
}
