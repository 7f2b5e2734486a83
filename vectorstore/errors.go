package vectorstore

import "errors"

var (
	// ErrCollectionRequired indicates an empty collection name.
	ErrCollectionRequired = errors.New("collection name required")

	// ErrInvalidDimension indicates a non-positive vector dimensionality.
	ErrInvalidDimension = errors.New("vector dimension must be positive")

	// ErrDimensionMismatch indicates a record vector whose length differs
	// from the collection's dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrWriteFailed indicates the store rejected an upsert.
	ErrWriteFailed = errors.New("vector store write failed")
)
