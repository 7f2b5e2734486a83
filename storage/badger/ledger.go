package badger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/storage"
)

// Ledger implements storage.IngestionLedger for BadgerDB.
// It provides durable, cross-session duplicate detection.
type Ledger struct {
	backend *Backend
}

var _ storage.IngestionLedger = (*Ledger)(nil)

// NewLedger creates a ledger backed by the given backend.
//
// Returns storage.IngestionLedger to enforce abstraction.
func NewLedger(backend *Backend) (storage.IngestionLedger, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &Ledger{backend: backend}, nil
}

// Seen reports whether the fingerprint has been recorded for the collection.
func (l *Ledger) Seen(ctx context.Context, fp core.Fingerprint, collection string) (bool, error) {
	if l.backend.IsClosed() {
		return false, storage.ErrStorageClosed
	}

	seen := false
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeLedgerKey(collection, fp))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		seen = true
		return nil
	}, false)
	return seen, err
}

// Record persists an ingestion record, overwriting any prior entry for the
// same (collection, fingerprint) pair.
func (l *Ledger) Record(ctx context.Context, record *core.IngestionRecord) error {
	if l.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	if record.IngestedAt.IsZero() {
		record.IngestedAt = time.Now().UTC()
	}

	return l.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLedgerKey(record.Collection, record.Fingerprint)
		if err := tx.Set(key, storage.MarshalIngestionRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// List returns all ingestion records ordered by ingestion time.
func (l *Ledger) List(ctx context.Context) ([]*core.IngestionRecord, error) {
	if l.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var records []*core.IngestionRecord
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = ledgerScanPrefix()
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalIngestionRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].IngestedAt.Before(records[j].IngestedAt)
	})
	return records, nil
}

// Close releases resources. The ledger has none of its own; the backend is
// closed separately by its owner.
func (l *Ledger) Close() error {
	return nil
}
