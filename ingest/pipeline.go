package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/docvec/ai"
	"github.com/poiesic/docvec/chunker"
	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/loader"
	"github.com/poiesic/docvec/storage"
	"github.com/poiesic/docvec/vectorstore"
	"github.com/tmc/langchaingo/schema"
)

// Pipeline orchestrates one ingestion batch: fingerprint, duplicate check,
// load, chunk, embed, upsert, report. Files are processed strictly one at
// a time in upload order.
type Pipeline struct {
	loader   *loader.Loader
	splitter *chunker.Window
	embedder ai.Embedder
	store    vectorstore.Store
	ledger   storage.IngestionLedger
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLoader sets a custom document loader.
// Default is loader.New().
func WithLoader(l *loader.Loader) Option {
	return func(p *Pipeline) error {
		if l == nil {
			return errors.New("loader cannot be nil")
		}
		p.loader = l
		return nil
	}
}

// WithChunking sets the chunk window geometry.
// Default is chunker.DefaultChunkSize / chunker.DefaultChunkOverlap.
func WithChunking(chunkSize, overlap int) Option {
	return func(p *Pipeline) error {
		w, err := chunker.NewWindow(chunkSize, overlap)
		if err != nil {
			return err
		}
		p.splitter = w
		return nil
	}
}

// WithProgress sets a writer for incremental per-file progress output.
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	embedder ai.Embedder,
	store vectorstore.Store,
	ledger storage.IngestionLedger,
	opts ...Option,
) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if ledger == nil {
		return nil, ErrLedgerRequired
	}

	p := &Pipeline{
		loader:   loader.New(),
		splitter: chunker.NewDefaultWindow(),
		embedder: embedder,
		store:    store,
		ledger:   ledger,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	return p, nil
}

// Run ingests a batch of uploaded files into the target collection.
//
// Per-file failures (unsupported type, parse errors, store write errors)
// are recorded in the report and do not stop the batch. An embedding
// service failure is fatal: Run stops immediately and returns the partial
// report together with an error wrapping ErrEmbeddingService; no store
// writes happen for the failing file or any file after it.
func (p *Pipeline) Run(ctx context.Context, files []core.UploadedFile, collection string) (*core.BatchReport, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	report := &core.BatchReport{Collection: collection}
	tracker := NewProgressTracker(p.progress, len(files))
	tracker.Start()

	collectionReady := false

	for i := range files {
		file := &files[i]
		p.logger.Info("processing file", "filename", file.Name, "type", file.MediaType)

		result, err := p.processFile(ctx, file, collection, &collectionReady)
		if err != nil {
			// Fatal: remaining files are not processed.
			report.Add(result)
			tracker.Finish()
			return report, err
		}

		report.Add(result)
		if p.progress != nil {
			fmt.Fprintln(p.progress, result.Message())
		}
		tracker.Increment()
	}

	tracker.Finish()
	p.logger.Info("batch complete",
		"stored", report.Stored, "skipped", report.Skipped, "failed", report.Failed,
		"records", report.Records, "elapsed", tracker.Elapsed().Round(time.Millisecond))

	return report, nil
}

// processFile runs the per-file state machine. The returned error is
// non-nil only for batch-fatal conditions; everything else is folded into
// the FileResult.
func (p *Pipeline) processFile(ctx context.Context, file *core.UploadedFile, collection string, collectionReady *bool) (core.FileResult, error) {
	result := core.FileResult{Filename: file.Name}

	// received -> hashed
	fp := core.FingerprintBytes(file.Data)

	// hashed -> duplicate-skip | type-check
	seen, err := p.ledger.Seen(ctx, fp, collection)
	if err != nil {
		result.Status = core.StatusFailed
		result.Err = fmt.Errorf("duplicate check: %w", err)
		return result, nil
	}
	if seen {
		p.logger.Info("skipping duplicate", "filename", file.Name, "fingerprint", fp)
		result.Status = core.StatusSkippedDuplicate
		return result, nil
	}

	// type-check -> unsupported | loaded
	segments, err := p.loader.Load(ctx, file)
	if err != nil {
		if errors.Is(err, loader.ErrUnsupportedType) {
			result.Status = core.StatusUnsupportedType
			result.Err = err
			return result, nil
		}
		// loaded -> load-error
		result.Status = core.StatusFailed
		result.Err = err
		return result, nil
	}

	// loaded -> chunked
	chunks, err := p.splitter.SplitSegments(segments, p.chunkMetadata(file, fp, segments))
	if err != nil {
		result.Status = core.StatusFailed
		result.Err = err
		return result, nil
	}

	if len(chunks) == 0 {
		result.Status = core.StatusFailed
		result.Err = loader.ErrEmptyDocument
		return result, nil
	}

	// chunked -> embedded
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		result.Status = core.StatusFailed
		result.Err = fmt.Errorf("%w: %w", ErrEmbeddingService, err)
		return result, result.Err
	}
	if len(vectors) != len(chunks) {
		result.Status = core.StatusFailed
		result.Err = fmt.Errorf("%w: expected %d embeddings, received %d", ErrEmbeddingService, len(chunks), len(vectors))
		return result, result.Err
	}

	// embedded -> store-error | stored
	if !*collectionReady {
		if err := p.store.EnsureCollection(ctx, collection, len(vectors[0])); err != nil {
			result.Status = core.StatusFailed
			result.Err = fmt.Errorf("preparing collection: %w", err)
			return result, nil
		}
		*collectionReady = true
	}

	records := make([]*core.Record, len(chunks))
	for i := range chunks {
		records[i] = &core.Record{
			ID:       core.RecordID(fp, chunks[i].Index),
			Text:     chunks[i].Text,
			Vector:   vectors[i],
			Metadata: chunks[i].Metadata,
		}
	}

	written, err := p.store.Upsert(ctx, collection, records)
	if err != nil {
		// Records written before the failure stay in place; there is no
		// cross-item rollback.
		p.logger.Error("store write failed", "filename", file.Name, "written", written, "err", err)
		result.Status = core.StatusFailed
		result.Err = err
		return result, nil
	}

	// The fingerprint is recorded only after a successful store, so a
	// failed file can be retried in a later run.
	if err := p.ledger.Record(ctx, &core.IngestionRecord{
		Fingerprint: fp,
		Filename:    file.Name,
		MediaType:   file.MediaType,
		Collection:  collection,
		Chunks:      len(chunks),
	}); err != nil {
		p.logger.Error("failed to record ingestion", "filename", file.Name, "err", err)
	}

	result.Status = core.StatusStored
	result.Chunks = written
	return result, nil
}

// chunkMetadata builds the metadata every chunk of this file inherits.
func (p *Pipeline) chunkMetadata(file *core.UploadedFile, fp core.Fingerprint, segments []schema.Document) map[string]string {
	meta := map[string]string{
		core.MetaFilename:    file.Name,
		core.MetaUploadDate:  time.Now().UTC().Format(time.RFC3339),
		core.MetaFileType:    string(file.MediaType),
		core.MetaFingerprint: string(fp),
	}
	if len(segments) > 0 {
		if pages, ok := segments[0].Metadata[core.MetaTotalPages].(int); ok {
			meta[core.MetaTotalPages] = fmt.Sprintf("%d", pages)
		}
	}
	return meta
}
