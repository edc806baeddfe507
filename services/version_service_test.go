package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-data-api/models"
	"exam-data-api/store"
)

func TestArchiveThenUpdateCycles(t *testing.T) {
	env := newTestEnv()
	assignmentID, err := env.createAssignment("intern-1")
	require.NoError(t, err)

	submissionID, err := env.submissions.Submit(SubmitInput{
		AssignmentID: assignmentID,
		FormData:     map[string]interface{}{"main_exam_name": "SSC Exams"},
		InternID:     "intern-1",
	})
	require.NoError(t, err)

	const cycles = 3
	for i := 0; i < cycles; i++ {
		err := env.submissions.Update(UpdateInput{
			SubmissionID: submissionID,
			Status:       models.SubmissionStatusInReview,
			ActorID:      "admin-1",
		})
		require.NoError(t, err)
	}

	records, err := env.versions.History(submissionID, false)
	require.NoError(t, err)
	require.Len(t, records, cycles)

	// Each cycle archives the state it replaces, so the stored version
	// numbers are exactly 1..N with no gaps or duplicates.
	seen := map[int]bool{}
	for _, record := range records {
		assert.Equal(t, submissionID, record.SubmissionID)
		assert.Equal(t, "admin-1", record.ArchivedBy)
		assert.Nil(t, record.VersionData)
		seen[record.VersionNumber] = true
	}
	for v := 1; v <= cycles; v++ {
		assert.True(t, seen[v], "missing archived version %d", v)
	}

	live, err := env.submissions.Submission(submissionID)
	require.NoError(t, err)
	assert.Equal(t, cycles+1, live.MetadataVersion())
}

func TestHistoryIncludesFullDataOnRequest(t *testing.T) {
	env := newTestEnv()
	assignmentID, err := env.createAssignment("intern-1")
	require.NoError(t, err)

	submissionID, err := env.submissions.Submit(SubmitInput{
		AssignmentID: assignmentID,
		FormData:     map[string]interface{}{"exam_code": "SSC"},
		InternID:     "intern-1",
	})
	require.NoError(t, err)

	_, err = env.versions.Archive(submissionID, "admin-1", "manual snapshot")
	require.NoError(t, err)

	records, err := env.versions.History(submissionID, true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].VersionData)
	assert.Equal(t, "SSC", records[0].VersionData.FormData["exam_code"])
	assert.Equal(t, "manual snapshot", records[0].ChangeReason)
}

func TestHistoryEmptyForUnknownSubmission(t *testing.T) {
	env := newTestEnv()
	records, err := env.versions.History("missing", false)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestArchiveMissingSubmissionFails(t *testing.T) {
	env := newTestEnv()
	_, err := env.versions.Archive("missing", "admin-1", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompareIdenticalVersions(t *testing.T) {
	env := newTestEnv()
	id := archiveSnapshot(t, env, models.Submission{
		Status:   models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{"exam_code": "SSC"},
	}, 1)

	diff, err := env.versions.Compare(id, id)
	require.NoError(t, err)
	assert.True(t, diff.Changes.Empty())
	assert.True(t, diff.MetadataChanges.Empty())
	assert.False(t, diff.StatusChanges)
	assert.False(t, diff.NotesChanges.InternNotes)
	assert.False(t, diff.NotesChanges.AdminNotes)
	assert.False(t, diff.NotesChanges.FeedbackNotes)
}

func TestCompareDetectsFieldChanges(t *testing.T) {
	env := newTestEnv()
	id1 := archiveSnapshot(t, env, models.Submission{
		Status: models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{
			"exam_code": "SSC",
			"fee":       float64(100),
			"metadata":  map[string]interface{}{"version": float64(1)},
		},
	}, 1)
	id2 := archiveSnapshot(t, env, models.Submission{
		Status:     models.SubmissionStatusApproved,
		AdminNotes: "looks good",
		FormData: map[string]interface{}{
			"exam_code": "SSC-CGL",
			"eligibility": map[string]interface{}{
				"gender": "any",
			},
			"metadata": map[string]interface{}{"version": float64(2)},
		},
	}, 2)

	diff, err := env.versions.Compare(id1, id2)
	require.NoError(t, err)

	assert.Equal(t, 1, diff.VersionInfo.V1.VersionNumber)
	assert.Equal(t, 2, diff.VersionInfo.V2.VersionNumber)

	require.NotNil(t, diff.Changes)
	assert.False(t, diff.Changes.FullChange)
	changed := diff.Changes.Fields["exam_code"]
	assert.True(t, changed.Changed)
	assert.Equal(t, "SSC", changed.OldValue)
	assert.Equal(t, "SSC-CGL", changed.NewValue)
	assert.True(t, diff.Changes.Fields["fee"].Removed)
	assert.True(t, diff.Changes.Fields["eligibility"].Added)

	require.NotNil(t, diff.MetadataChanges)
	assert.True(t, diff.MetadataChanges.Fields["version"].Changed)

	assert.True(t, diff.StatusChanges)
	assert.True(t, diff.NotesChanges.AdminNotes)
	assert.False(t, diff.NotesChanges.InternNotes)
}

func TestCompareWithMissingSnapshotIsFullChange(t *testing.T) {
	env := newTestEnv()
	id1 := archiveSnapshot(t, env, models.Submission{
		Status:   models.SubmissionStatusSubmitted,
		FormData: map[string]interface{}{"exam_code": "SSC"},
	}, 1)

	bare := models.SubmissionVersionRecord{
		SubmissionID:  "sub-1",
		VersionNumber: 2,
		ArchivedAt:    time.Now(),
		ArchivedBy:    "admin-1",
	}
	id2, err := env.store.Insert(store.CollectionSubmissionHistory, bare)
	require.NoError(t, err)

	diff, err := env.versions.Compare(id1, id2)
	require.NoError(t, err)
	require.NotNil(t, diff.Changes)
	assert.True(t, diff.Changes.FullChange)
}

func TestCompareUnknownVersionFails(t *testing.T) {
	env := newTestEnv()
	_, err := env.versions.Compare("missing-1", "missing-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// archiveSnapshot stores a crafted version record directly and returns
// its id.
func archiveSnapshot(t *testing.T, env *testEnv, snapshot models.Submission, version int) string {
	t.Helper()
	record := models.SubmissionVersionRecord{
		SubmissionID:  "sub-1",
		VersionNumber: version,
		VersionData:   &snapshot,
		ArchivedAt:    time.Now(),
		ArchivedBy:    "admin-1",
		ChangeReason:  "test snapshot",
	}
	id, err := env.store.Insert(store.CollectionSubmissionHistory, record)
	require.NoError(t, err)
	return id
}
