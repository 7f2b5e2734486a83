package vectorstore

import (
	"context"
	"strings"

	"github.com/poiesic/docvec/core"
)

// Store persists embedded chunks into named collections.
// Implementations must be safe for concurrent use.
type Store interface {
	// EnsureCollection creates the collection with the given vector
	// dimensionality if it does not already exist.
	EnsureCollection(ctx context.Context, collection string, dimension int) error

	// Upsert writes records into the collection one item at a time and
	// returns the number written. There is no cross-item transaction: a
	// failure aborts the remaining writes but records already written
	// stay in place (at-least-once semantics, by contract).
	Upsert(ctx context.Context, collection string, records []*core.Record) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// CollectionForUseCase derives a collection name from a free-form use case
// label: "Technical Docs" becomes "rag_technical_docs".
func CollectionForUseCase(useCase string) string {
	name := strings.ToLower(strings.TrimSpace(useCase))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "default"
	}
	return "rag_" + name
}
