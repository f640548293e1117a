package check

import (
	"context"
	"fmt"
	"time"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/vocab"
)

// defaultVocabularyTimeout bounds a single lookup when the context options
// carry no timeout of their own.
const defaultVocabularyTimeout = 500 * time.Millisecond

// OntologyCheck validates every ontology term site on a record: the
// subject's species and sex terms and the characteristic term lists of both
// record kinds. The age-class term inside a sample's collection age is owned
// by AgeCheck and skipped here.
//
// Structural validation is always local. When a vocabulary service is
// configured, structurally valid terms are additionally resolved against it;
// an unknown term or a timed-out lookup is a warning, never an error, and
// a known term's label is upgraded to the vocabulary's canonical form.
type OntologyCheck struct {
	vocabulary vocab.Service
}

// NewOntologyCheck creates the ontology check. The service may be nil, in
// which case only structural validation runs.
func NewOntologyCheck(svc vocab.Service) *OntologyCheck {
	return &OntologyCheck{vocabulary: svc}
}

// Name implements pipeline.Check.
func (c *OntologyCheck) Name() string {
	return "ontology"
}

// Check implements pipeline.Check.
func (c *OntologyCheck) Check(ctx context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}

	var issues []bv.Issue

	if subject := rctx.Subject(); subject != nil {
		issues = append(issues, c.checkTermSite(ctx, rctx, subject.Species, "species")...)
		issues = append(issues, c.checkTermSite(ctx, rctx, subject.Sex, "sex")...)
	}

	chars := rec.Characteristics()
	for i := range chars {
		char := &chars[i]
		for j := range char.Terms {
			field := fmt.Sprintf("bio_characteristics[%d].ontology_terms[%d]", i, j)
			issues = append(issues, c.checkListedTerm(ctx, rctx, &char.Terms[j], field)...)
		}
		for j := range char.NegatedTerms {
			field := fmt.Sprintf("bio_characteristics[%d].negated_ontology_terms[%d]", i, j)
			issues = append(issues, c.checkListedTerm(ctx, rctx, &char.NegatedTerms[j], field)...)
		}
	}

	return issues
}

// checkTermSite validates an optional term pointer.
func (c *OntologyCheck) checkTermSite(ctx context.Context, rctx *pipeline.Context, term *record.OntologyTerm, field string) []bv.Issue {
	if term == nil {
		return nil
	}
	return c.checkListedTerm(ctx, rctx, term, field)
}

// checkListedTerm validates one present term in place. The term pointer
// aims into the working copy, so a canonical-label upgrade lands in the
// normalized output.
func (c *OntologyCheck) checkListedTerm(ctx context.Context, rctx *pipeline.Context, term *record.OntologyTerm, field string) []bv.Issue {
	if issues := termValueIssues(*term, rctx.RecordID, field, c.Name()); len(issues) > 0 {
		return issues
	}
	return c.resolveTerm(ctx, rctx, term, field)
}

// resolveTerm looks a structurally valid term up in the configured
// vocabulary. Lookups are bounded by the configured timeout; existence
// unknown (timeout or service error) and term unknown both warn.
func (c *OntologyCheck) resolveTerm(ctx context.Context, rctx *pipeline.Context, term *record.OntologyTerm, field string) []bv.Issue {
	if c.vocabulary == nil || rctx.Options == nil || !rctx.Options.CheckVocabulary {
		return nil
	}

	timeout := rctx.Options.VocabularyTimeout
	if timeout <= 0 {
		timeout = defaultVocabularyTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.vocabulary.Resolve(lookupCtx, term.ID)
	if err != nil {
		return []bv.Issue{bv.Warning(bv.KindUnknownVocabularyTerm).
			Record(rctx.RecordID).
			At(field).
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("existence of term %q is unknown: %v", term.ID, err)).
			Build()}
	}

	if !res.Known {
		return []bv.Issue{bv.Warning(bv.KindUnknownVocabularyTerm).
			Record(rctx.RecordID).
			At(field).
			Check(c.Name()).
			Diagnostics(fmt.Sprintf("term %q is not recognized by the configured vocabulary", term.ID)).
			Build()}
	}

	if res.CanonicalLabel != "" && res.CanonicalLabel != term.Label {
		term.Label = res.CanonicalLabel
	}
	return nil
}
