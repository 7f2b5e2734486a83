package ingest

import (
	"fmt"
	"io"

	"github.com/poiesic/docvec/core"
)

// WriteReport renders a batch report as one line per file followed by the
// batch summary.
func WriteReport(w io.Writer, report *core.BatchReport) error {
	for i := range report.Results {
		if _, err := fmt.Fprintln(w, report.Results[i].Message()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, report.Summary())
	return err
}
