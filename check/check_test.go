package check

import (
	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/registry"
)

// newTestContext builds a pipeline context around a working clone of rec,
// the way the engine does before running checks.
func newTestContext(rec record.Record, idx *registry.Index, opts *pipeline.ContextOptions) *pipeline.Context {
	rctx := pipeline.NewContext()
	rctx.Input = rec
	rctx.Record = rec.Clone()
	rctx.RecordID = rec.RecordID()
	rctx.Kind = rec.RecordKind()
	rctx.Index = idx
	rctx.Result = bv.NewResult()
	rctx.Options = opts
	return rctx
}

// indexOf builds a frozen index over the given records.
func indexOf(recs ...record.Record) *registry.Index {
	b := registry.NewBuilder()
	for i, rec := range recs {
		b.Add(i, rec)
	}
	idx, _ := b.Build()
	return idx
}

func countKind(issues []bv.Issue, kind bv.IssueKind) int {
	n := 0
	for _, issue := range issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

func hasSeverity(issues []bv.Issue, severity bv.IssueSeverity) bool {
	for _, issue := range issues {
		if issue.Severity == severity {
			return true
		}
	}
	return false
}
