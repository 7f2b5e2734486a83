package loader

import (
	"errors"
	"fmt"

	"github.com/poiesic/docvec/core"
)

var (
	// ErrUnsupportedType indicates the declared MIME type matches no
	// registered handler.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyDocument indicates parsing succeeded but produced no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// TypeError reports a declared MIME type with no registered handler.
type TypeError struct {
	MediaType core.MediaType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q", e.MediaType)
}

func (e *TypeError) Unwrap() error {
	return ErrUnsupportedType
}

// LoadError reports a parse failure for a single file. It is a per-file
// condition; the batch continues with the remaining files.
type LoadError struct {
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
