package services

import (
	"log"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// AuditService writes and reads the append-only audit trail.
type AuditService struct {
	store store.Store
}

// NewAuditService returns an audit trail over the given store.
func NewAuditService(st store.Store) *AuditService {
	return &AuditService{store: st}
}

// AddLog appends an audit entry and returns its id.
func (s *AuditService) AddLog(action, actorID, entityType, entityID string, details map[string]interface{}) (string, error) {
	entry := models.LogEntry{
		Action:     action,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  time.Now(),
	}
	return s.store.Insert(store.CollectionLogs, entry)
}

// LogBestEffort appends an audit entry after a successful primary write.
// A logging failure is reported to the application log and swallowed;
// the primary operation is durable regardless.
func (s *AuditService) LogBestEffort(action, actorID, entityType, entityID string, details map[string]interface{}) {
	if _, err := s.AddLog(action, actorID, entityType, entityID, details); err != nil {
		log.Printf("Error writing audit log for %s %s/%s: %v", action, entityType, entityID, err)
	}
}

// AllLogs returns every audit entry, newest first.
func (s *AuditService) AllLogs() ([]models.LogEntry, error) {
	var entries []models.LogEntry
	if err := s.store.QueryOrderedBy(store.CollectionLogs, "timestamp", "desc", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
