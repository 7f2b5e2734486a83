package ingest

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrLedgerRequired is returned when an ingestion ledger is not provided.
	ErrLedgerRequired = errors.New("ingestion ledger required")

	// ErrCollectionRequired is returned when no target collection is named.
	ErrCollectionRequired = errors.New("collection name required")

	// ErrEmbeddingService wraps embedding failures. It is fatal to the
	// whole batch: processing halts and no further store writes happen.
	ErrEmbeddingService = errors.New("embedding service error")
)
