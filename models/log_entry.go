package models

import "time"

// LogEntry is an append-only audit record. Entries are never updated.
type LogEntry struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	ActorID    string                 `json:"actorId"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
