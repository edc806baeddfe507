package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryDoc struct {
	id   string
	body []byte
	seq  uint64
}

// MemoryStore is an in-memory Store used by tests and local development.
// It mirrors the GORM store's semantics, including last-write-wins on
// concurrent read-modify-write sequences.
type MemoryStore struct {
	mu     sync.RWMutex
	seq    uint64
	docs   map[string]map[string]*memoryDoc
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]*memoryDoc)}
}

func (s *MemoryStore) ready() error {
	if s == nil || s.docs == nil || s.closed {
		return ErrNotInitialized
	}
	return nil
}

// GetByID implements Store.
func (s *MemoryStore) GetByID(collection, id string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.RLock()
	doc, ok := s.docs[collection][id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return decodeDocument(id, doc.body, out)
}

// SetByID implements Store.
func (s *MemoryStore) SetByID(collection, id string, value interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	body, err := encodeDocument(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]*memoryDoc)
	}
	if existing, ok := s.docs[collection][id]; ok {
		existing.body = body
		return nil
	}
	s.seq++
	s.docs[collection][id] = &memoryDoc{id: id, body: body, seq: s.seq}
	return nil
}

// Insert implements Store.
func (s *MemoryStore) Insert(collection string, value interface{}) (string, error) {
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
func (s *MemoryStore) UpdateFields(collection, id string, fields map[string]interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(doc.body, &raw); err != nil {
		return fmt.Errorf("corrupt document %s: %w", id, err)
	}
	for key, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		var plain interface{}
		if err := json.Unmarshal(encoded, &plain); err != nil {
			return err
		}
		raw[key] = plain
	}
	delete(raw, "id")
	body, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	doc.body = body
	return nil
}

// DeleteByID implements Store.
func (s *MemoryStore) DeleteByID(collection, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[collection], id)
	return nil
}

func (s *MemoryStore) snapshot(collection string) []*memoryDoc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*memoryDoc, 0, len(s.docs[collection]))
	for _, doc := range s.docs[collection] {
		docs = append(docs, &memoryDoc{id: doc.id, body: doc.body, seq: doc.seq})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].seq < docs[j].seq })
	return docs
}

// QueryByField implements Store.
func (s *MemoryStore) QueryByField(collection, field string, value interface{}, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	want := fmt.Sprintf("%v", value)
	var matched []Document
	for _, doc := range s.snapshot(collection) {
		var raw map[string]interface{}
		if err := json.Unmarshal(doc.body, &raw); err != nil {
			return fmt.Errorf("corrupt document %s: %w", doc.id, err)
		}
		got, ok := raw[field]
		if !ok {
			continue
		}
		if fmt.Sprintf("%v", got) == want {
			matched = append(matched, Document{DocID: doc.id, Body: doc.body})
		}
	}
	return decodeDocumentList(matched, out)
}

// QueryAll implements Store.
func (s *MemoryStore) QueryAll(collection string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	var docs []Document
	for _, doc := range s.snapshot(collection) {
		docs = append(docs, Document{DocID: doc.id, Body: doc.body})
	}
	return decodeDocumentList(docs, out)
}

// QueryOrderedBy implements Store.
func (s *MemoryStore) QueryOrderedBy(collection, field, direction string, out interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	type keyed struct {
		doc Document
		key interface{}
	}
	var items []keyed
	for _, doc := range s.snapshot(collection) {
		var raw map[string]interface{}
		if err := json.Unmarshal(doc.body, &raw); err != nil {
			return fmt.Errorf("corrupt document %s: %w", doc.id, err)
		}
		items = append(items, keyed{doc: Document{DocID: doc.id, Body: doc.body}, key: raw[field]})
	}
	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		less := lessValue(items[i].key, items[j].key)
		if desc {
			return lessValue(items[j].key, items[i].key)
		}
		return less
	})
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, item.doc)
	}
	return decodeDocumentList(docs, out)
}

// lessValue orders JSON scalar values: numbers numerically, everything
// else by string form.
func lessValue(a, b interface{}) bool {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if aok && bok {
		return an < bn
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
