package loader

import (
	"context"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/poiesic/docvec/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// loadPDF extracts one text segment per page.
//
// The file is validated with pdfcpu before extraction so malformed uploads
// fail with a parse error instead of partially-extracted garbage.
func (l *Loader) loadPDF(ctx context.Context, path string, file *core.UploadedFile) ([]schema.Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return nil, err
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	segments, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, err
	}

	empty := true
	for i := range segments {
		if segments[i].Metadata == nil {
			segments[i].Metadata = map[string]any{}
		}
		segments[i].Metadata[core.MetaPage] = i + 1
		segments[i].Metadata[core.MetaTotalPages] = pageCount
		if strings.TrimSpace(segments[i].PageContent) != "" {
			empty = false
		}
	}
	if len(segments) == 0 || empty {
		return nil, ErrEmptyDocument
	}

	l.logger.Debug("loaded pdf", "filename", file.Name, "pages", pageCount)
	return segments, nil
}
