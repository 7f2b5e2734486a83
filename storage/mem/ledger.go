// Package mem provides a batch-local, in-memory ingestion ledger.
//
// Duplicate detection scoped to a single run: the ledger starts empty and
// is discarded with the process, so the same file re-ingested in a later
// session is not treated as a duplicate. Also used in tests.
package mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/storage"
)

// Ledger implements storage.IngestionLedger in process memory.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]*core.IngestionRecord
}

var _ storage.IngestionLedger = (*Ledger)(nil)

// NewLedger creates an empty in-memory ledger.
//
// Returns storage.IngestionLedger to enforce abstraction.
func NewLedger() storage.IngestionLedger {
	return &Ledger{records: make(map[string]*core.IngestionRecord)}
}

func key(collection string, fp core.Fingerprint) string {
	return collection + ":" + string(fp)
}

// Seen reports whether the fingerprint has been recorded for the collection.
func (l *Ledger) Seen(ctx context.Context, fp core.Fingerprint, collection string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.records[key(collection, fp)]
	return ok, nil
}

// Record stores an ingestion record, overwriting any prior entry.
func (l *Ledger) Record(ctx context.Context, record *core.IngestionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.IngestedAt.IsZero() {
		record.IngestedAt = time.Now().UTC()
	}
	l.records[key(record.Collection, record.Fingerprint)] = record
	return nil
}

// List returns all ingestion records ordered by ingestion time.
func (l *Ledger) List(ctx context.Context) ([]*core.IngestionRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]*core.IngestionRecord, 0, len(l.records))
	for _, r := range l.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].IngestedAt.Before(records[j].IngestedAt)
	})
	return records, nil
}

// Close releases resources. The in-memory ledger has none to release.
func (l *Ledger) Close() error {
	return nil
}
