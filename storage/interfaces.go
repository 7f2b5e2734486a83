package storage

import (
	"context"

	"github.com/poiesic/docvec/core"
)

// IngestionLedger records which content fingerprints have already been
// stored in which collections. It is the duplicate filter's source of
// truth: lookup is always an exact fingerprint match, never a similarity
// search.
//
// Implementations must be thread-safe and support concurrent access.
type IngestionLedger interface {
	// Seen reports whether the fingerprint has been recorded for the
	// target collection. Read-only; recording happens separately, after
	// a successful store.
	Seen(ctx context.Context, fp core.Fingerprint, collection string) (bool, error)

	// Record persists an ingestion record. Sets IngestedAt if unset.
	// Recording the same fingerprint twice overwrites the prior entry.
	Record(ctx context.Context, record *core.IngestionRecord) error

	// List returns all ingestion records ordered by ingestion time.
	List(ctx context.Context) ([]*core.IngestionRecord, error)

	// Close closes the ledger and releases resources.
	Close() error
}
