package chunker

import (
	"errors"
	"strconv"
	"strings"

	"github.com/poiesic/docvec/core"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// Default window geometry. Chunks never exceed DefaultChunkSize characters
// and consecutive chunks share exactly DefaultChunkOverlap characters.
const (
	DefaultChunkSize    = 2500
	DefaultChunkOverlap = 250
)

const segmentSeparator = "\n\n"

var (
	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidOverlap indicates an overlap that is negative or not
	// smaller than the chunk size.
	ErrInvalidOverlap = errors.New("overlap must be non-negative and smaller than chunk size")
)

// Window splits text into fixed-size overlapping character windows.
//
// Unlike separator-aware splitters, Window guarantees exact geometry: every
// chunk except the last is exactly chunkSize runes, and the last overlap
// runes of a chunk equal the first overlap runes of its successor. That
// exactness is what makes chunk positions and record IDs deterministic.
type Window struct {
	chunkSize int
	overlap   int
}

var _ textsplitter.TextSplitter = (*Window)(nil)

// NewWindow creates a window splitter with the given geometry.
func NewWindow(chunkSize, overlap int) (*Window, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidOverlap
	}
	return &Window{chunkSize: chunkSize, overlap: overlap}, nil
}

// NewDefaultWindow creates a window splitter with the default geometry.
func NewDefaultWindow() *Window {
	w, _ := NewWindow(DefaultChunkSize, DefaultChunkOverlap)
	return w
}

// SplitText splits text into overlapping windows. Empty input yields no
// chunks. Boundaries are measured in runes, not bytes.
func (w *Window) SplitText(text string) ([]string, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := w.chunkSize - w.overlap
	var parts []string
	for start := 0; ; start += step {
		end := start + w.chunkSize
		if end >= len(runes) {
			parts = append(parts, string(runes[start:]))
			break
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts, nil
}

// SplitSegments concatenates a document's segments and splits the result
// into chunks, each carrying a copy of the document metadata plus its
// position. Empty input yields an empty chunk sequence.
func (w *Window) SplitSegments(segments []schema.Document, metadata map[string]string) ([]core.Chunk, error) {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.PageContent == "" {
			continue
		}
		texts = append(texts, seg.PageContent)
	}

	parts, err := w.SplitText(strings.Join(texts, segmentSeparator))
	if err != nil {
		return nil, err
	}

	chunks := make([]core.Chunk, 0, len(parts))
	for i, part := range parts {
		meta := make(map[string]string, len(metadata)+1)
		for k, v := range metadata {
			meta[k] = v
		}
		meta[core.MetaChunkIndex] = strconv.Itoa(i)
		chunks = append(chunks, core.Chunk{
			Text:     part,
			Index:    i,
			Metadata: meta,
		})
	}
	return chunks, nil
}
