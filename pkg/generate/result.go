package generate

import (
	"fmt"
	"strings"
	"time"
)

// maxReportedErrors caps the per-article error messages included in a
// run summary; the remainder is reported as a count.
const maxReportedErrors = 5

// Result contains statistics from an orchestrator run.
type Result struct {
	Total      int
	Successful int
	Skipped    int
	Failed     int

	// Errors holds one message per failed article, input order not
	// guaranteed (workers complete non-deterministically).
	Errors []string

	Elapsed time.Duration
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generation complete: %d successful, %d skipped, %d failed (of %d articles) in %s",
		r.Successful, r.Skipped, r.Failed, r.Total, r.Elapsed.Round(time.Second))

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors (%d):", len(r.Errors))
		for i, e := range r.Errors {
			if i == maxReportedErrors {
				fmt.Fprintf(&b, "\n  ... and %d more", len(r.Errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(&b, "\n  %s", e)
		}
	}

	return b.String()
}
