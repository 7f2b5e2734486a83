package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// MediaType is the declared MIME type of an uploaded file.
type MediaType string

// Supported media types. Dispatching on anything else yields an
// unsupported-type outcome.
const (
	MediaTypePDF      MediaType = "application/pdf"
	MediaTypeText     MediaType = "text/plain"
	MediaTypeMarkdown MediaType = "text/markdown"
	MediaTypeJSON     MediaType = "application/json"
)

// UploadedFile is a single user-supplied file within an ingestion batch.
// It exists only for the duration of one ingestion run.
type UploadedFile struct {
	Name      string
	MediaType MediaType
	Data      []byte
}

// Fingerprint is a deterministic content digest used as the deduplication key.
// Identical bytes always produce an identical fingerprint.
type Fingerprint string

// FingerprintBytes computes the BLAKE2b-256 fingerprint of raw file bytes,
// hex encoded.
func FingerprintBytes(data []byte) Fingerprint {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Metadata keys attached to every segment, chunk and stored record.
const (
	MetaFilename    = "filename"
	MetaUploadDate  = "upload_date"
	MetaFileType    = "file_type"
	MetaFingerprint = "fingerprint"
	MetaChunkIndex  = "chunk_index"
	MetaPage        = "page"
	MetaTotalPages  = "total_pages"
)

// Chunk is a bounded-length window of a document's extracted text.
// Consecutive chunks from the same document overlap by a fixed number of
// characters, except possibly the final chunk.
type Chunk struct {
	Text     string
	Index    int
	Metadata map[string]string
}

// Record is the persisted unit in the vector store: chunk text, its
// embedding vector and the inherited metadata mapping. Records are never
// mutated after a successful upsert.
type Record struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata map[string]string
}

// RecordID derives a deterministic record identifier from the source
// document's fingerprint and the chunk position, so re-ingesting the same
// content upserts rather than duplicates.
func RecordID(fp Fingerprint, chunkIndex int) string {
	return fmt.Sprintf("%s:%d", fp, chunkIndex)
}

// IngestionRecord is the ledger entry recording that a file was stored in a
// collection. It is written only after a successful upsert and is what the
// duplicate filter consults.
type IngestionRecord struct {
	Fingerprint Fingerprint
	Filename    string
	MediaType   MediaType
	Collection  string
	Chunks      int
	IngestedAt  time.Time
}
