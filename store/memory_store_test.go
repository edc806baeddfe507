package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

func TestMemoryStoreCRUD(t *testing.T) {
	st := NewMemoryStore()

	id, err := st.Insert(CollectionUsers, testDoc{Name: "Asha", Role: "intern", Score: 7})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var got testDoc
	require.NoError(t, st.GetByID(CollectionUsers, id, &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 7.0, got.Score)

	// SetByID replaces the whole document.
	require.NoError(t, st.SetByID(CollectionUsers, id, testDoc{Name: "Asha K", Role: "admin"}))
	require.NoError(t, st.GetByID(CollectionUsers, id, &got))
	assert.Equal(t, "Asha K", got.Name)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, 0.0, got.Score)

	require.NoError(t, st.DeleteByID(CollectionUsers, id))
	err = st.GetByID(CollectionUsers, id, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing document is not an error.
	assert.NoError(t, st.DeleteByID(CollectionUsers, "missing"))
}

func TestMemoryStoreIDNotStoredInBody(t *testing.T) {
	st := NewMemoryStore()

	// A caller-supplied id field is stripped on write and re-injected
	// from the document key on read.
	id, err := st.Insert(CollectionUsers, testDoc{ID: "bogus", Name: "Asha"})
	require.NoError(t, err)
	assert.NotEqual(t, "bogus", id)

	var got testDoc
	require.NoError(t, st.GetByID(CollectionUsers, id, &got))
	assert.Equal(t, id, got.ID)
}

func TestMemoryStoreUpdateFields(t *testing.T) {
	st := NewMemoryStore()
	id, err := st.Insert(CollectionUsers, testDoc{Name: "Asha", Role: "intern", Score: 7})
	require.NoError(t, err)

	require.NoError(t, st.UpdateFields(CollectionUsers, id, map[string]interface{}{
		"role":  "admin",
		"score": 9,
	}))

	var got testDoc
	require.NoError(t, st.GetByID(CollectionUsers, id, &got))
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, 9.0, got.Score)
	// Untouched fields survive the merge.
	assert.Equal(t, "Asha", got.Name)

	err = st.UpdateFields(CollectionUsers, "missing", map[string]interface{}{"role": "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreQueryByField(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Insert(CollectionUsers, testDoc{Name: "Asha", Role: "intern"})
	require.NoError(t, err)
	_, err = st.Insert(CollectionUsers, testDoc{Name: "Ben", Role: "admin"})
	require.NoError(t, err)
	_, err = st.Insert(CollectionUsers, testDoc{Name: "Chitra", Role: "intern"})
	require.NoError(t, err)

	var interns []testDoc
	require.NoError(t, st.QueryByField(CollectionUsers, "role", "intern", &interns))
	require.Len(t, interns, 2)
	assert.Equal(t, "Asha", interns[0].Name)
	assert.Equal(t, "Chitra", interns[1].Name)
	for _, doc := range interns {
		assert.NotEmpty(t, doc.ID)
	}

	var none []testDoc
	require.NoError(t, st.QueryByField(CollectionUsers, "role", "guest", &none))
	assert.Empty(t, none)
}

func TestMemoryStoreQueryAllInsertionOrder(t *testing.T) {
	st := NewMemoryStore()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := st.Insert(CollectionLogs, testDoc{Name: name})
		require.NoError(t, err)
	}

	var all []testDoc
	require.NoError(t, st.QueryAll(CollectionLogs, &all))
	require.Len(t, all, 3)
	for i, name := range names {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestMemoryStoreSetByIDKeepsCreationOrder(t *testing.T) {
	st := NewMemoryStore()
	first, err := st.Insert(CollectionLogs, testDoc{Name: "first"})
	require.NoError(t, err)
	_, err = st.Insert(CollectionLogs, testDoc{Name: "second"})
	require.NoError(t, err)

	// Overwriting a document must not move it to the end of the
	// collection; its creation position is preserved.
	require.NoError(t, st.SetByID(CollectionLogs, first, testDoc{Name: "first v2"}))

	var all []testDoc
	require.NoError(t, st.QueryAll(CollectionLogs, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "first v2", all[0].Name)
	assert.Equal(t, "second", all[1].Name)
}

func TestMemoryStoreQueryOrderedBy(t *testing.T) {
	st := NewMemoryStore()
	for _, score := range []float64{5, 9, 1} {
		_, err := st.Insert(CollectionSubmissions, testDoc{Name: "doc", Score: score})
		require.NoError(t, err)
	}

	var asc []testDoc
	require.NoError(t, st.QueryOrderedBy(CollectionSubmissions, "score", "asc", &asc))
	require.Len(t, asc, 3)
	assert.Equal(t, 1.0, asc[0].Score)
	assert.Equal(t, 5.0, asc[1].Score)
	assert.Equal(t, 9.0, asc[2].Score)

	var desc []testDoc
	require.NoError(t, st.QueryOrderedBy(CollectionSubmissions, "score", "DESC", &desc))
	require.Len(t, desc, 3)
	assert.Equal(t, 9.0, desc[0].Score)
	assert.Equal(t, 1.0, desc[2].Score)
}

func TestMemoryStoreCollectionsAreIsolated(t *testing.T) {
	st := NewMemoryStore()
	id, err := st.Insert(CollectionUsers, testDoc{Name: "Asha"})
	require.NoError(t, err)

	var got testDoc
	err = st.GetByID(CollectionAssignments, id, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreClosed(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.Close())

	_, err := st.Insert(CollectionUsers, testDoc{Name: "Asha"})
	assert.ErrorIs(t, err, ErrNotInitialized)

	var got testDoc
	assert.ErrorIs(t, st.GetByID(CollectionUsers, "x", &got), ErrNotInitialized)
	assert.ErrorIs(t, st.QueryAll(CollectionUsers, &got), ErrNotInitialized)
}
