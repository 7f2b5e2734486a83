package core

import (
	"errors"
	"testing"
)

func TestBatchReport_Summary(t *testing.T) {
	tests := []struct {
		name    string
		results []FileResult
		want    string
	}{
		{
			name: "single file stored",
			results: []FileResult{
				{Filename: "a.txt", Status: StatusStored, Chunks: 1},
			},
			want: "1 of 1 stored",
		},
		{
			name: "all files stored",
			results: []FileResult{
				{Filename: "a.txt", Status: StatusStored, Chunks: 2},
				{Filename: "b.txt", Status: StatusStored, Chunks: 3},
			},
			want: "2 of 2 stored",
		},
		{
			name: "one stored one duplicate",
			results: []FileResult{
				{Filename: "a.txt", Status: StatusStored, Chunks: 1},
				{Filename: "a.txt", Status: StatusSkippedDuplicate},
			},
			want: "1 stored, 1 skipped",
		},
		{
			name: "stored skipped and failed",
			results: []FileResult{
				{Filename: "a.txt", Status: StatusStored, Chunks: 1},
				{Filename: "b.zip", Status: StatusUnsupportedType, Err: errors.New("unsupported")},
				{Filename: "a.txt", Status: StatusSkippedDuplicate},
			},
			want: "1 stored, 1 skipped, 1 failed",
		},
		{
			name:    "empty batch",
			results: nil,
			want:    "no documents processed",
		},
		{
			name: "zero successes",
			results: []FileResult{
				{Filename: "b.zip", Status: StatusUnsupportedType, Err: errors.New("unsupported")},
				{Filename: "c.pdf", Status: StatusFailed, Err: errors.New("broken")},
			},
			want: "no documents processed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report BatchReport
			for _, r := range tt.results {
				report.Add(r)
			}
			if got := report.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBatchReport_Counters(t *testing.T) {
	var report BatchReport
	report.Add(FileResult{Filename: "a.txt", Status: StatusStored, Chunks: 4})
	report.Add(FileResult{Filename: "b.txt", Status: StatusStored, Chunks: 2})
	report.Add(FileResult{Filename: "a.txt", Status: StatusSkippedDuplicate})
	report.Add(FileResult{Filename: "c.bin", Status: StatusFailed, Err: errors.New("boom")})

	if report.Stored != 2 || report.Skipped != 1 || report.Failed != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1", report.Stored, report.Skipped, report.Failed)
	}
	if report.Records != 6 {
		t.Errorf("Records = %d, want 6", report.Records)
	}
}

func TestFileResult_Message(t *testing.T) {
	r := FileResult{Filename: "a.pdf", Status: StatusFailed, Err: errors.New("malformed xref")}
	want := "a.pdf: failed: malformed xref"
	if got := r.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
