// Package vocab provides the optional vocabulary-lookup capability used to
// check whether structurally valid ontology terms exist in a controlled
// vocabulary. Absence of this capability never degrades structural
// validation; lookups only upgrade or confirm term labels.
package vocab

import "context"

// Resolution is the outcome of one vocabulary lookup.
type Resolution struct {
	// Known reports whether the term identifier exists in the vocabulary.
	Known bool

	// CanonicalLabel is the vocabulary's preferred label for the term,
	// set only when Known is true.
	CanonicalLabel string
}

// Service resolves ontology term identifiers against a vocabulary.
// Implementations may block (remote lookups); callers bound them with a
// context deadline and treat a timeout as existence-unknown.
type Service interface {
	Resolve(ctx context.Context, termID string) (Resolution, error)
}
