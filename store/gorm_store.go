package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the single backing table for all collections. Each row holds
// one JSON document keyed by (collection, doc_id).
type Document struct {
	Collection string    `gorm:"primaryKey;column:collection;type:varchar(64)"`
	DocID      string    `gorm:"primaryKey;column:doc_id;type:varchar(64)"`
	Body       []byte    `gorm:"column:body;type:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name for Document.
func (Document) TableName() string {
	return "documents"
}

// GormStore implements Store on top of a MySQL documents table, using
// JSON_EXTRACT for field-level queries.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection and ensures the documents
// table exists.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) ready() error {
	if s == nil || s.db == nil {
		return ErrNotInitialized
	}
	return nil
}

// decodeDocument merges the row id into the stored body and decodes the
// result into out, so callers see the id as a regular field.
func decodeDocument(id string, body []byte, out interface{}) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("corrupt document %s: %w", id, err)
	}
	raw["id"] = id
	merged, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, out)
}

// encodeDocument marshals a value, dropping any id field so the id lives
// only in the row key.
func encodeDocument(value interface{}) ([]byte, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	delete(raw, "id")
	return json.Marshal(raw)
}

func decodeDocumentList(docs []Document, out interface{}) error {
	items := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		var raw map[string]interface{}
		if err := json.Unmarshal(doc.Body, &raw); err != nil {
			return fmt.Errorf("corrupt document %s: %w", doc.DocID, err)
		}
		raw["id"] = doc.DocID
		merged, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		items = append(items, merged)
	}
	list, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return json.Unmarshal(list, out)
}

// GetByID implements Store.
func (s *GormStore) GetByID(collection, id string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	var doc Document
	err := s.db.Where("collection = ? AND doc_id = ?", collection, id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return decodeDocument(doc.DocID, doc.Body, out)
}

// SetByID implements Store.
func (s *GormStore) SetByID(collection, id string, value interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	body, err := encodeDocument(value)
	if err != nil {
		return err
	}
	now := time.Now()
	doc := Document{Collection: collection, DocID: id, Body: body, CreatedAt: now, UpdatedAt: now}
	// Upserting an existing row must keep its original created_at.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
}

// Insert implements Store.
func (s *GormStore) Insert(collection string, value interface{}) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.SetByID(collection, id, value); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateFields implements Store.
func (s *GormStore) UpdateFields(collection, id string, fields map[string]interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	var doc Document
	err := s.db.Where("collection = ? AND doc_id = ?", collection, id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(doc.Body, &raw); err != nil {
		return fmt.Errorf("corrupt document %s: %w", id, err)
	}
	for key, value := range fields {
		raw[key] = value
	}
	delete(raw, "id")
	body, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	return s.db.Model(&Document{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Updates(map[string]interface{}{"body": body, "updated_at": time.Now()}).Error
}

// DeleteByID implements Store.
func (s *GormStore) DeleteByID(collection, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.Where("collection = ? AND doc_id = ?", collection, id).Delete(&Document{}).Error
}

// QueryByField implements Store.
func (s *GormStore) QueryByField(collection, field string, value interface{}, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	var docs []Document
	err := s.db.
		Where("collection = ?", collection).
		Where("JSON_UNQUOTE(JSON_EXTRACT(body, ?)) = ?", "$."+field, fmt.Sprintf("%v", value)).
		Find(&docs).Error
	if err != nil {
		return err
	}
	return decodeDocumentList(docs, out)
}

// QueryAll implements Store.
func (s *GormStore) QueryAll(collection string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	var docs []Document
	if err := s.db.Where("collection = ?", collection).Find(&docs).Error; err != nil {
		return err
	}
	return decodeDocumentList(docs, out)
}

// QueryOrderedBy implements Store.
func (s *GormStore) QueryOrderedBy(collection, field, direction string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}
	var docs []Document
	err := s.db.
		Where("collection = ?", collection).
		Order(fmt.Sprintf("JSON_EXTRACT(body, '$.%s') %s", field, dir)).
		Find(&docs).Error
	if err != nil {
		return err
	}
	return decodeDocumentList(docs, out)
}

// Close implements Store.
func (s *GormStore) Close() error {
	if err := s.ready(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
