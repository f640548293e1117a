package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/temporal"
)

// TimestampCheck validates the created and updated timestamps. Absent
// timestamps are permitted unless the batch runs with RequireTimestamps; a
// present value must be a calendar-valid ISO-8601 date or date-time.
type TimestampCheck struct{}

// NewTimestampCheck creates the timestamp check.
func NewTimestampCheck() *TimestampCheck {
	return &TimestampCheck{}
}

// Name implements pipeline.Check.
func (c *TimestampCheck) Name() string {
	return "timestamps"
}

// Check implements pipeline.Check.
func (c *TimestampCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}

	require := rctx.Options != nil && rctx.Options.RequireTimestamps

	var issues []bv.Issue
	issues = append(issues, c.checkField(rctx, rec.CreatedAt(), "created", require)...)
	issues = append(issues, c.checkField(rctx, rec.UpdatedAt(), "updated", require)...)
	return issues
}

func (c *TimestampCheck) checkField(rctx *pipeline.Context, value record.Temporal, field string, require bool) []bv.Issue {
	raw, present := value.Value()
	if !present {
		if !require {
			return nil
		}
		return []bv.Issue{bv.Error(bv.KindMissingRequiredField).
			Record(rctx.RecordID).
			At(field).
			Check(c.Name()).
			Diagnostics(field + " timestamp is required for this batch").
			Build()}
	}

	if !temporal.IsTimestamp(raw) {
		return []bv.Issue{bv.Error(bv.KindMalformedTemporalValue).
			Record(rctx.RecordID).
			At(field).
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("%q is not an ISO-8601 date or date-time", raw)).
			Build()}
	}
	return nil
}
