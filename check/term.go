package check

import (
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

// termIssues reports the structural problems of one present term pair.
// An absent term (nil) is valid and yields nothing; presence of either
// half of the pair makes the whole pair mandatory.
func termIssues(term *record.OntologyTerm, recordID, field, checkName string) []bv.Issue {
	if term == nil {
		return nil
	}
	return termValueIssues(*term, recordID, field, checkName)
}

func termValueIssues(term record.OntologyTerm, recordID, field, checkName string) []bv.Issue {
	var issues []bv.Issue

	if term.ID == "" {
		issues = append(issues, bv.Error(bv.KindMalformedOntologyTerm).
			Record(recordID).
			At(field).
			Check(checkName).
			Diagnostics("term identifier is empty").
			Build())
	} else if _, _, ok := term.Namespace(); !ok {
		issues = append(issues, bv.Error(bv.KindMalformedOntologyTerm).
			Record(recordID).
			At(field).
			Check(checkName).
			Diagnostics(fmt.Sprintf("term identifier %q is not NAMESPACE:local-id shaped", term.ID)).
			Build())
	}

	if term.Label == "" {
		issues = append(issues, bv.Error(bv.KindMalformedOntologyTerm).
			Record(recordID).
			At(field).
			Check(checkName).
			Diagnostics(fmt.Sprintf("term %q has no label", term.ID)).
			Build())
	}

	return issues
}

// termWellFormed reports whether the pair passes structural validation.
func termWellFormed(term record.OntologyTerm) bool {
	if term.ID == "" || term.Label == "" {
		return false
	}
	_, _, ok := term.Namespace()
	return ok
}
