package ingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/docvec/ai/mock"
	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/storage/mem"
	"github.com/poiesic/docvec/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textFile(name, content string) core.UploadedFile {
	return core.UploadedFile{
		Name:      name,
		MediaType: core.MediaTypeText,
		Data:      []byte(content),
	}
}

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *mock.MockEmbedder, *memory.Store) {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	store := memory.NewStore()
	p, err := NewPipeline(embedder, store, mem.NewLedger(), opts...)
	require.NoError(t, err)
	return p, embedder, store
}

func TestNewPipeline_RequiresDependencies(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	store := memory.NewStore()
	ledger := mem.NewLedger()

	_, err := NewPipeline(nil, store, ledger)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewPipeline(embedder, nil, ledger)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewPipeline(embedder, store, nil)
	assert.ErrorIs(t, err, ErrLedgerRequired)
}

func TestRun_RequiresCollection(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	_, err := p.Run(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrCollectionRequired)
}

func TestRun_SingleSmallFile(t *testing.T) {
	p, _, store := newTestPipeline(t)

	content := strings.Repeat("a", 100)
	report, err := p.Run(context.Background(), []core.UploadedFile{
		textFile("notes.txt", content),
	}, "rag_default")
	require.NoError(t, err)

	// A file below the chunk size produces exactly one chunk and one record.
	assert.Equal(t, "1 of 1 stored", report.Summary())
	require.Len(t, report.Results, 1)
	assert.Equal(t, core.StatusStored, report.Results[0].Status)
	assert.Equal(t, 1, report.Results[0].Chunks)

	records := store.Records("rag_default")
	require.Len(t, records, 1)
	assert.Equal(t, content, records[0].Text)
	assert.Equal(t, 384, store.Dimension("rag_default"))

	fp := core.FingerprintBytes([]byte(content))
	assert.Equal(t, core.RecordID(fp, 0), records[0].ID)
}

func TestRun_DuplicateSkipped(t *testing.T) {
	p, _, store := newTestPipeline(t)

	files := []core.UploadedFile{
		textFile("report.txt", "identical content"),
		textFile("report-copy.txt", "identical content"),
	}
	report, err := p.Run(context.Background(), files, "rag_default")
	require.NoError(t, err)

	assert.Equal(t, "1 stored, 1 skipped", report.Summary())
	require.Len(t, report.Results, 2)
	assert.Equal(t, core.StatusStored, report.Results[0].Status)
	assert.Equal(t, core.StatusSkippedDuplicate, report.Results[1].Status)

	// The duplicate wrote nothing new.
	assert.Len(t, store.Records("rag_default"), 1)
}

func TestRun_UnsupportedTypeContinues(t *testing.T) {
	p, _, store := newTestPipeline(t)

	files := []core.UploadedFile{
		{Name: "archive.zip", MediaType: "application/zip", Data: []byte("PK")},
		textFile("notes.txt", "real content"),
	}
	report, err := p.Run(context.Background(), files, "rag_default")
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, core.StatusUnsupportedType, report.Results[0].Status)
	assert.Equal(t, core.StatusStored, report.Results[1].Status)
	assert.Equal(t, "1 stored, 1 failed", report.Summary())

	assert.Len(t, store.Records("rag_default"), 1)
}

func TestRun_EmbedderFailureHaltsBatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}
	store := memory.NewStore()
	p, err := NewPipeline(embedder, store, mem.NewLedger())
	require.NoError(t, err)

	files := []core.UploadedFile{
		textFile("first.txt", "first"),
		textFile("second.txt", "second"),
	}
	report, err := p.Run(context.Background(), files, "rag_default")
	require.ErrorIs(t, err, ErrEmbeddingService)

	// The failing file is reported; the rest of the batch never runs.
	require.NotNil(t, report)
	require.Len(t, report.Results, 1)
	assert.Equal(t, core.StatusFailed, report.Results[0].Status)
	assert.Equal(t, "no documents processed", report.Summary())

	// No store writes happen when embedding fails.
	assert.Len(t, store.Records("rag_default"), 0)
	assert.Equal(t, 0, store.Dimension("rag_default"))
}

func TestRun_EmbeddingCountMismatchIsFatal(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{}, nil
	}
	store := memory.NewStore()
	p, err := NewPipeline(embedder, store, mem.NewLedger())
	require.NoError(t, err)

	_, err = p.Run(context.Background(), []core.UploadedFile{
		textFile("a.txt", "content"),
	}, "rag_default")
	assert.ErrorIs(t, err, ErrEmbeddingService)
	assert.Len(t, store.Records("rag_default"), 0)
}

func TestRun_FailedFileCanBeRetried(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	ledger := mem.NewLedger()
	store := memory.NewStore()

	failing := true
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if failing {
			return nil, errors.New("temporary outage")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1, 2, 3}
		}
		return vectors, nil
	}

	p, err := NewPipeline(embedder, store, ledger)
	require.NoError(t, err)

	files := []core.UploadedFile{textFile("a.txt", "retry me")}
	_, err = p.Run(context.Background(), files, "rag_default")
	require.ErrorIs(t, err, ErrEmbeddingService)

	// The fingerprint was never recorded, so a second run ingests the file.
	failing = false
	report, err := p.Run(context.Background(), files, "rag_default")
	require.NoError(t, err)
	assert.Equal(t, "1 of 1 stored", report.Summary())
}

func TestRun_ChunkMetadata(t *testing.T) {
	p, _, store := newTestPipeline(t)

	file := textFile("Guide v2.txt", "some document content")
	_, err := p.Run(context.Background(), []core.UploadedFile{file}, "rag_default")
	require.NoError(t, err)

	records := store.Records("rag_default")
	require.Len(t, records, 1)

	meta := records[0].Metadata
	assert.Equal(t, "Guide v2.txt", meta[core.MetaFilename])
	assert.Equal(t, string(core.MediaTypeText), meta[core.MetaFileType])
	assert.Equal(t, string(core.FingerprintBytes(file.Data)), meta[core.MetaFingerprint])
	assert.Equal(t, "0", meta[core.MetaChunkIndex])
	assert.NotEmpty(t, meta[core.MetaUploadDate])
}

func TestRun_LargeFileChunkCount(t *testing.T) {
	p, _, store := newTestPipeline(t)

	// 4750 characters with the default 2500/250 window is exactly two chunks.
	content := strings.Repeat("x", 4750)
	report, err := p.Run(context.Background(), []core.UploadedFile{
		textFile("big.txt", content),
	}, "rag_default")
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, 2, report.Results[0].Chunks)
	assert.Equal(t, 2, report.Records)
	assert.Len(t, store.Records("rag_default"), 2)
}

func TestRun_ProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	p, _, _ := newTestPipeline(t, WithProgress(&buf))

	_, err := p.Run(context.Background(), []core.UploadedFile{
		textFile("a.txt", "alpha"),
		textFile("b.txt", "beta"),
	}, "rag_default")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a.txt: stored 1 chunks")
	assert.Contains(t, out, "b.txt: stored 1 chunks")
	assert.Contains(t, out, "2/2 files (100%)")
}

func TestWriteReport(t *testing.T) {
	report := &core.BatchReport{Collection: "rag_default"}
	report.Add(core.FileResult{Filename: "a.txt", Status: core.StatusStored, Chunks: 3})
	report.Add(core.FileResult{Filename: "b.txt", Status: core.StatusSkippedDuplicate})

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "a.txt: stored 3 chunks")
	assert.Contains(t, out, "b.txt: skipped, already ingested")
	assert.Contains(t, out, "1 stored, 1 skipped")
}
