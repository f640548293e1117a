package engine

import (
	"time"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

// BatchReport aggregates the outcome of one batch validation pass.
type BatchReport struct {
	// BatchID uniquely identifies this validation pass.
	BatchID string `json:"batchId"`

	// Results holds one result per input record, in input order.
	Results []*bv.Result `json:"results"`

	// Total is the batch size; Completed counts records whose validation
	// actually ran. The two differ only when the batch was cancelled.
	Total     int `json:"total"`
	Completed int `json:"completed"`

	// Subjects and Samples count the record kinds seen in the batch.
	Subjects int `json:"subjects"`
	Samples  int `json:"samples"`

	Elapsed time.Duration `json:"elapsed"`
}

// Valid reports whether every record in the batch validated cleanly.
func (r *BatchReport) Valid() bool {
	for _, result := range r.Results {
		if result == nil || !result.Valid {
			return false
		}
	}
	return true
}

// InvalidCount returns the number of records excluded from normalized output.
func (r *BatchReport) InvalidCount() int {
	n := 0
	for _, result := range r.Results {
		if result == nil || !result.Valid {
			n++
		}
	}
	return n
}

// IssueCount returns the total number of issues across the batch.
func (r *BatchReport) IssueCount() int {
	n := 0
	for _, result := range r.Results {
		if result != nil {
			n += len(result.Issues)
		}
	}
	return n
}

// Normalized returns the normalized copies of all valid records, in input
// order. Records with any error-severity issue are absent.
func (r *BatchReport) Normalized() []record.Record {
	out := make([]record.Record, 0, len(r.Results))
	for _, result := range r.Results {
		if result == nil || !result.Valid || result.Normalized == nil {
			continue
		}
		if rec, ok := result.Normalized.(record.Record); ok {
			out = append(out, rec)
		}
	}
	return out
}
