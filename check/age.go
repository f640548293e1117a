package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/temporal"
)

// AgeKind identifies which encoding an age resolved to.
type AgeKind int

const (
	// AgeNone means neither encoding was present.
	AgeNone AgeKind = iota
	// AgeQuantitative means the temporal string is the resolved age.
	AgeQuantitative
	// AgeQualitative means resolution fell back to the age-class term.
	AgeQualitative
)

// AgeResolution is the outcome of resolving one AgeEncoding.
type AgeResolution struct {
	Kind AgeKind

	// Quantitative is the parsed temporal value, set for AgeQuantitative.
	Quantitative temporal.Value

	// Qualitative is the age-class term: the resolved age for
	// AgeQualitative, retained metadata for AgeQuantitative.
	Qualitative *record.OntologyTerm
}

// ResolveAge resolves the effective age of an encoding that carries a
// quantitative temporal string and/or a qualitative age-class term.
//
// A present and well-formed quantitative string is always authoritative;
// the age-class term is then metadata only, and even a malformed term only
// warns. When the quantitative string is absent, a valid age-class term
// becomes the resolved age with an advisory noting the downgrade. A present
// but malformed quantitative string is an error, never a silent fallback to
// the qualitative term; if the term is also present the encoding as a whole
// is additionally flagged as ambiguous.
//
// fieldPrefix locates the encoding within the record, e.g. "collection_age".
func ResolveAge(enc *record.AgeEncoding, recordID, fieldPrefix, checkName string) (AgeResolution, []bv.Issue) {
	if enc.IsZero() {
		return AgeResolution{Kind: AgeNone}, nil
	}

	ageField := fieldPrefix + ".age"
	classField := fieldPrefix + ".age_class"

	if enc.Age.IsPresent() {
		raw, _ := enc.Age.Value()
		if !temporal.IsAge(raw) {
			issues := []bv.Issue{bv.Error(bv.KindMalformedTemporalValue).
				Record(recordID).
				At(ageField).
				Check(checkName).
				Diagnostics(fmt.Sprintf("%q is not an ISO-8601 duration or start-anchored interval", raw)).
				Build()}
			if enc.AgeClass != nil {
				issues = append(issues, bv.Error(bv.KindAmbiguousAgeEncoding).
					Record(recordID).
					At(fieldPrefix).
					Check(checkName).
					Diagnostics("quantitative age is malformed while a qualitative age class is also present; refusing to pick one").
					Build())
			}
			return AgeResolution{Kind: AgeNone}, issues
		}

		value, _ := temporal.Parse(raw)
		res := AgeResolution{
			Kind:         AgeQuantitative,
			Quantitative: value,
			Qualitative:  enc.AgeClass,
		}

		// The term is advisory-only here, so shape problems cannot fail
		// the record.
		var issues []bv.Issue
		if enc.AgeClass != nil && !termWellFormed(*enc.AgeClass) {
			issues = append(issues, bv.Warning(bv.KindMalformedOntologyTerm).
				Record(recordID).
				At(classField).
				Check(checkName).
				Diagnostics(fmt.Sprintf("age class %s is malformed but unused; the quantitative age is authoritative", enc.AgeClass)).
				Build())
		}
		return res, issues
	}

	// Quantitative absent; the term carries the age.
	if issues := termIssues(enc.AgeClass, recordID, classField, checkName); len(issues) > 0 {
		return AgeResolution{Kind: AgeNone}, issues
	}

	return AgeResolution{Kind: AgeQualitative, Qualitative: enc.AgeClass},
		[]bv.Issue{bv.Advisory(bv.KindAgeDowngraded).
			Record(recordID).
			At(fieldPrefix).
			Check(checkName).
			Diagnostics(fmt.Sprintf("no quantitative age; resolved to age class %s", enc.AgeClass)).
			Build()}
}

// AgeCheck resolves the collection age of sample records. Subjects carry no
// age encoding and pass through untouched.
type AgeCheck struct{}

// NewAgeCheck creates the age check.
func NewAgeCheck() *AgeCheck {
	return &AgeCheck{}
}

// Name implements pipeline.Check.
func (c *AgeCheck) Name() string {
	return "age"
}

// Check implements pipeline.Check.
func (c *AgeCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	sample := rctx.Sample()
	if sample == nil || sample.CollectionAge.IsZero() {
		return nil
	}

	_, issues := ResolveAge(sample.CollectionAge, rctx.RecordID, "collection_age", c.Name())
	return issues
}
