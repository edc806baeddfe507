package store

import "errors"

// Collection names used by the application.
const (
	CollectionUsers             = "users"
	CollectionExams             = "exams"
	CollectionAssignments       = "assignments"
	CollectionSubmissions       = "submissions"
	CollectionFinalSubmissions  = "finalSubmissions"
	CollectionLogs              = "logs"
	CollectionSubmissionHistory = "submissionHistory"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNotInitialized indicates the store was used before Open succeeded.
	ErrNotInitialized = errors.New("document store is not initialized")
)

// Store is the document persistence boundary. Each call is a single
// atomic operation against the backing database; there is no
// version-check-and-set, so concurrent read-modify-write sequences on the
// same document resolve last-write-wins.
type Store interface {
	// GetByID loads the document with the given id into out. Returns
	// ErrNotFound if no such document exists.
	GetByID(collection, id string, out interface{}) error

	// SetByID writes the document under the given id, creating or
	// replacing it (upsert).
	SetByID(collection, id string, value interface{}) error

	// Insert stores a new document under a generated id and returns it.
	Insert(collection string, value interface{}) (string, error)

	// UpdateFields merges the given top-level fields into an existing
	// document. Returns ErrNotFound if the document does not exist.
	UpdateFields(collection, id string, fields map[string]interface{}) error

	// DeleteByID removes the document entirely. Deleting a missing
	// document is not an error.
	DeleteByID(collection, id string) error

	// QueryByField loads every document whose top-level field equals
	// value into out, which must be a pointer to a slice.
	QueryByField(collection, field string, value interface{}, out interface{}) error

	// QueryAll loads every document in the collection into out.
	QueryAll(collection string, out interface{}) error

	// QueryOrderedBy loads every document ordered by a top-level field,
	// direction "asc" or "desc".
	QueryOrderedBy(collection, field, direction string, out interface{}) error

	// Close releases the underlying connection.
	Close() error
}
