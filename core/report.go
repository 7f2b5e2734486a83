package core

import (
	"fmt"
	"strings"
)

// Status is the terminal outcome of processing one uploaded file.
type Status int

const (
	// StatusStored means the file's chunks were embedded and upserted.
	StatusStored Status = iota + 1
	// StatusSkippedDuplicate means the file's fingerprint was already
	// recorded for the target collection and nothing was re-stored.
	StatusSkippedDuplicate
	// StatusUnsupportedType means the declared MIME type matched no
	// registered loader.
	StatusUnsupportedType
	// StatusFailed means loading or storing the file failed.
	StatusFailed
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusStored:
		return "stored"
	case StatusSkippedDuplicate:
		return "skipped (duplicate)"
	case StatusUnsupportedType:
		return "unsupported type"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult is the per-file ingestion outcome. Err is set only for
// StatusFailed and StatusUnsupportedType.
type FileResult struct {
	Filename string
	Status   Status
	Chunks   int
	Err      error
}

// Message renders the result as a single human-readable line identifying
// the affected file and, on failure, the reason.
func (r *FileResult) Message() string {
	switch r.Status {
	case StatusStored:
		return fmt.Sprintf("%s: stored %d chunks", r.Filename, r.Chunks)
	case StatusSkippedDuplicate:
		return fmt.Sprintf("%s: skipped, already ingested", r.Filename)
	case StatusUnsupportedType:
		return fmt.Sprintf("%s: unsupported file type", r.Filename)
	case StatusFailed:
		return fmt.Sprintf("%s: failed: %v", r.Filename, r.Err)
	default:
		return r.Filename
	}
}

// BatchReport aggregates per-file outcomes for one ingestion run.
type BatchReport struct {
	Collection string
	Results    []FileResult
	Stored     int
	Skipped    int
	Failed     int
	Records    int
}

// Add appends a file result and updates the batch counters.
func (b *BatchReport) Add(result FileResult) {
	b.Results = append(b.Results, result)
	switch result.Status {
	case StatusStored:
		b.Stored++
		b.Records += result.Chunks
	case StatusSkippedDuplicate:
		b.Skipped++
	default:
		b.Failed++
	}
}

// Summary renders the batch outcome as a single line.
//
// A batch where every file was stored reads "N of N stored". A batch with
// zero successes always reads "no documents processed" so the run never
// finishes silently. Mixed batches enumerate the non-zero counters, e.g.
// "1 stored, 1 skipped".
func (b *BatchReport) Summary() string {
	total := len(b.Results)
	if b.Stored == total && total > 0 {
		return fmt.Sprintf("%d of %d stored", b.Stored, total)
	}
	if b.Stored == 0 {
		return "no documents processed"
	}

	parts := []string{fmt.Sprintf("%d stored", b.Stored)}
	if b.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", b.Skipped))
	}
	if b.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", b.Failed))
	}
	return strings.Join(parts, ", ")
}
