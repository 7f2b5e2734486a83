// Package memory is an in-process vectorstore.Store used in tests and for
// dry runs without a remote database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/vectorstore"
)

// Store keeps records in maps keyed by collection and record ID.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
}

type collection struct {
	dimension int
	records   map[string]*core.Record
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
// Note: Returns concrete type to allow test assertions.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// EnsureCollection creates the collection if missing.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if name == "" {
		return vectorstore.ErrCollectionRequired
	}
	if dimension <= 0 {
		return vectorstore.ErrInvalidDimension
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if col, ok := s.collections[name]; ok {
		if col.dimension != dimension {
			return fmt.Errorf("%w: collection %s has dimension %d, got %d",
				vectorstore.ErrDimensionMismatch, name, col.dimension, dimension)
		}
		return nil
	}
	s.collections[name] = &collection{
		dimension: dimension,
		records:   make(map[string]*core.Record),
	}
	return nil
}

// Upsert writes records one at a time, replacing records with the same ID.
func (s *Store) Upsert(ctx context.Context, name string, records []*core.Record) (int, error) {
	if name == "" {
		return 0, vectorstore.ErrCollectionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown collection %s", vectorstore.ErrWriteFailed, name)
	}

	written := 0
	for _, record := range records {
		if len(record.Vector) != col.dimension {
			return written, fmt.Errorf("%w: record %s has %d dimensions, collection %s expects %d",
				vectorstore.ErrDimensionMismatch, record.ID, len(record.Vector), name, col.dimension)
		}
		col.records[record.ID] = record
		written++
	}
	return written, nil
}

// Close releases resources. The in-memory store has none to release.
func (s *Store) Close() error {
	return nil
}

// Records returns a snapshot of the records in a collection, for tests.
func (s *Store) Records(name string) []*core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		return nil
	}
	out := make([]*core.Record, 0, len(col.records))
	for _, r := range col.records {
		out = append(out, r)
	}
	return out
}

// Dimension returns the dimensionality of a collection, or 0 if missing.
func (s *Store) Dimension(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if col, ok := s.collections[name]; ok {
		return col.dimension
	}
	return 0
}
