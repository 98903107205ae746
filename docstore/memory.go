package docstore

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fieldgate/fieldgate/schema"
)

// ErrEmptyID is returned by mutating calls addressed by an empty id.
var ErrEmptyID = errors.New("document id cannot be empty")

// Memory is an in-process document store backed by a mutex-guarded map.
// Intended for tests and examples; it has no durability.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]schema.Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]schema.Document),
	}
}

// FindOne returns a copy of the document under id, or (nil, nil) when
// absent.
func (s *Memory) FindOne(_ context.Context, id string) (schema.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return doc.Clone(), nil
}

// Insert stores a copy of doc under a freshly generated id and returns the
// id.
func (s *Memory) Insert(_ context.Context, doc schema.Document) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[id] = doc.Clone()
	return id, nil
}

// Update applies set then unset to the document under id. Updating an
// absent id creates the document from the set fields, matching upsert-free
// Mongo update semantics loosely enough for the gateway's needs: the
// gateway always reads before writing, so the absent case only arises in a
// read/write race.
func (s *Memory) Update(_ context.Context, id string, set schema.Document, unset []string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		doc = schema.Document{}
	}
	for name, value := range set {
		doc[name] = value
	}
	for _, name := range unset {
		delete(doc, name)
	}
	s.docs[id] = doc

	return nil
}

// Remove deletes the document under id. Removing an absent id is a no-op.
func (s *Memory) Remove(_ context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	return nil
}

// Len returns the number of stored documents.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
