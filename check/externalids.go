package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
)

// ExternalIDCheck deduplicates a record's external identifier list.
// Uniqueness is the (namespace, value) pair; a repeated pair warns by
// default, collapses to its first occurrence in the normalized output, and
// first-seen order is preserved. StrictDuplicates promotes the warning to
// an error.
type ExternalIDCheck struct{}

// NewExternalIDCheck creates the external identifier check.
func NewExternalIDCheck() *ExternalIDCheck {
	return &ExternalIDCheck{}
}

// Name implements pipeline.Check.
func (c *ExternalIDCheck) Name() string {
	return "external-ids"
}

// Check implements pipeline.Check.
func (c *ExternalIDCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}

	ids := rec.ExternalIDs()
	if len(ids) < 2 {
		return nil
	}

	strict := rctx.Options != nil && rctx.Options.StrictDuplicates

	var issues []bv.Issue
	seen := make(map[string]struct{}, len(ids))
	deduped := make([]record.ExternalIdentifier, 0, len(ids))
	for _, id := range ids {
		key := id.Key()
		if _, dup := seen[key]; dup {
			builder := bv.Warning(bv.KindDuplicateExternalIdentifier)
			if strict {
				builder = bv.Error(bv.KindDuplicateExternalIdentifier)
			}
			issues = append(issues, builder.
				Record(rctx.RecordID).
				At("external_identifiers").
				Check(c.Name()).
				Diagnostics(fmt.Sprintf("external identifier %s appears more than once", id)).
				Build())
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, id)
	}

	if len(deduped) != len(ids) {
		rec.SetExternalIDs(deduped)
	}
	return issues
}
