package loader

import (
	"context"
	"os"
	"strings"

	"github.com/poiesic/docvec/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// loadText handles plain text and markdown uploads as a single segment.
// Markdown is deliberately not rendered; the raw source is what gets
// chunked and embedded.
func (l *Loader) loadText(ctx context.Context, path string, file *core.UploadedFile) ([]schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	segments, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(segments) == 0 || strings.TrimSpace(segments[0].PageContent) == "" {
		return nil, ErrEmptyDocument
	}

	return segments, nil
}
