package check

import (
	"context"
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
)

// CharacteristicCheck detects internally contradictory bio-characteristics:
// a term pair that appears in both the asserted and the negated list of one
// characteristic simultaneously claims presence and absence of the same
// phenotype.
//
// Matching is exact on the (identifier, label) pair. Detecting semantic
// contradictions between synonymous terms would need vocabulary reasoning
// and is out of scope here.
type CharacteristicCheck struct{}

// NewCharacteristicCheck creates the characteristic check.
func NewCharacteristicCheck() *CharacteristicCheck {
	return &CharacteristicCheck{}
}

// Name implements pipeline.Check.
func (c *CharacteristicCheck) Name() string {
	return "characteristics"
}

// Check implements pipeline.Check.
func (c *CharacteristicCheck) Check(_ context.Context, rctx *pipeline.Context) []bv.Issue {
	rec := rctx.Record
	if rec == nil {
		return nil
	}

	var issues []bv.Issue
	for i, char := range rec.Characteristics() {
		for _, negated := range char.NegatedTerms {
			for _, asserted := range char.Terms {
				if negated.SameAs(asserted) {
					issues = append(issues, bv.Error(bv.KindContradictoryCharacteristic).
						Record(rctx.RecordID).
						At(fmt.Sprintf("bio_characteristics[%d]", i)).
						Check(c.Name()).
						Diagnostics(fmt.Sprintf("term %s is both asserted and negated", negated)).
						Build())
					break
				}
			}
		}
	}
	return issues
}
