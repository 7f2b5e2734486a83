package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/docvec/core"
	"github.com/tmc/langchaingo/schema"
)

// handler parses one uploaded file, already spooled to path, into segments.
type handler func(ctx context.Context, path string, file *core.UploadedFile) ([]schema.Document, error)

// Loader dispatches uploaded files to a format handler by declared MIME type.
// The handler table is fixed at construction; adding a format is a table edit.
type Loader struct {
	handlers map[core.MediaType]handler
	tempDir  string
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTempDir sets the directory used for spooling uploaded bytes during
// parsing. Default is the system temp directory.
func WithTempDir(dir string) Option {
	return func(l *Loader) {
		l.tempDir = dir
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// New creates a Loader with handlers for PDF, plain text, markdown and JSON.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger: slog.Default(),
	}
	l.handlers = map[core.MediaType]handler{
		core.MediaTypePDF:      l.loadPDF,
		core.MediaTypeText:     l.loadText,
		core.MediaTypeMarkdown: l.loadText,
		core.MediaTypeJSON:     l.loadJSON,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "loader")
	return l
}

// Supported reports whether the declared MIME type has a registered handler.
func (l *Loader) Supported(mediaType core.MediaType) bool {
	_, ok := l.handlers[mediaType]
	return ok
}

// Load parses an uploaded file into text segments.
//
// The file's bytes are spooled to a temporary file for the duration of
// parsing and removed on every exit path, including handler failure.
// An unrecognized MIME type returns a *TypeError; a parse failure returns
// a *LoadError.
func (l *Loader) Load(ctx context.Context, file *core.UploadedFile) ([]schema.Document, error) {
	if err := core.ValidateUploadedFile(file); err != nil {
		return nil, &LoadError{Filename: fileName(file), Err: err}
	}

	h, ok := l.handlers[file.MediaType]
	if !ok {
		return nil, &TypeError{MediaType: file.MediaType}
	}

	path, err := l.spool(file)
	if err != nil {
		return nil, &LoadError{Filename: file.Name, Err: err}
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			l.logger.Warn("failed to remove temp file", "path", path, "err", err)
		}
	}()

	l.logger.Debug("loading document", "filename", file.Name, "type", file.MediaType)

	segments, err := h(ctx, path, file)
	if err != nil {
		return nil, &LoadError{Filename: file.Name, Err: err}
	}

	return segments, nil
}

// spool writes the uploaded bytes to a temporary file, keeping the original
// extension so format-sniffing parsers behave.
func (l *Loader) spool(file *core.UploadedFile) (string, error) {
	tmp, err := os.CreateTemp(l.tempDir, "docvec-*"+filepath.Ext(file.Name))
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(file.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func fileName(file *core.UploadedFile) string {
	if file == nil {
		return ""
	}
	return file.Name
}

// DetectMediaType infers a declared MIME type from a path's extension.
// Returns an empty MediaType for unrecognized extensions.
func DetectMediaType(path string) core.MediaType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return core.MediaTypePDF
	case ".txt", ".text":
		return core.MediaTypeText
	case ".md", ".markdown":
		return core.MediaTypeMarkdown
	case ".json":
		return core.MediaTypeJSON
	default:
		return ""
	}
}
