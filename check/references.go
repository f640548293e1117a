package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
)

// ReferenceCheck validates identifier presence and cross-record references.
// Every record must carry its own identifier and a dataset identifier. A
// sample's subject reference may be empty (not yet linked), but a non-empty
// reference must resolve to a subject in the batch index.
type ReferenceCheck struct{}

// NewReferenceCheck creates the reference check.
func NewReferenceCheck() *ReferenceCheck {
	return &ReferenceCheck{}
}

// Name implements pipeline.Check.
func (c *ReferenceCheck) Name() string {
	return "references"
}

// Check implements pipeline.Check.
func (c *ReferenceCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}

	var issues []bv.Issue

	if rec.RecordID() == "" {
		issues = append(issues, bv.Error(bv.KindMissingRequiredField).
			Record(rctx.RecordID).
			At("id").
			Check(c.Name()).
			Diagnostics("record has no identifier").
			Build())
	}

	if rec.Dataset() == "" {
		issues = append(issues, bv.Error(bv.KindMissingRequiredField).
			Record(rctx.RecordID).
			At("dataset_id").
			Check(c.Name()).
			Diagnostics("record does not belong to a dataset").
			Build())
	}

	if sample := rctx.Sample(); sample != nil && sample.SubjectID != "" {
		issues = append(issues, c.checkSubjectRef(rctx, sample.SubjectID)...)
	}

	return issues
}

// checkSubjectRef resolves a sample's subject reference against the batch
// index. An index is only available during batch validation; a record
// validated in isolation skips reference resolution.
func (c *ReferenceCheck) checkSubjectRef(rctx *pipeline.Context, subjectID string) []bv.Issue {
	idx := rctx.Index
	if idx == nil {
		return nil
	}

	if idx.IsDuplicate(subjectID) {
		return []bv.Issue{bv.Error(bv.KindInvalidIdentifierReference).
			Record(rctx.RecordID).
			At("subject_id").
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("subject reference %q is ambiguous: the identifier is claimed by multiple records", subjectID)).
			Build()}
	}

	target, ok := idx.Resolve(subjectID)
	if !ok {
		return []bv.Issue{bv.Error(bv.KindInvalidIdentifierReference).
			Record(rctx.RecordID).
			At("subject_id").
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("subject %q is not present in this batch", subjectID)).
			Build()}
	}

	if target.RecordKind() != record.KindSubject {
		return []bv.Issue{bv.Error(bv.KindInvalidIdentifierReference).
			Record(rctx.RecordID).
			At("subject_id").
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("identifier %q resolves to a %s, not a subject", subjectID, target.RecordKind())).
			Build()}
	}

	return nil
}
