package record

import "strings"

// OntologyTerm is a controlled-vocabulary identifier plus a human-readable
// label. A present term must carry both; an identifier without a label, or
// vice versa, is malformed.
type OntologyTerm struct {
	ID    string `json:"term_id"`
	Label string `json:"term"`
}

// Namespace splits the identifier on its first colon into the namespace and
// local tokens. ok is false when either token is empty or the colon is missing.
func (t OntologyTerm) Namespace() (namespace, local string, ok bool) {
	idx := strings.IndexByte(t.ID, ':')
	if idx <= 0 || idx == len(t.ID)-1 {
		return "", "", false
	}
	return t.ID[:idx], t.ID[idx+1:], true
}

// SameAs reports whether two term pairs are identical in both identifier
// and label.
func (t OntologyTerm) SameAs(other OntologyTerm) bool {
	return t.ID == other.ID && t.Label == other.Label
}

// String returns "ID (Label)".
func (t OntologyTerm) String() string {
	if t.Label == "" {
		return t.ID
	}
	return t.ID + " (" + t.Label + ")"
}

// ExternalIdentifier is a cross-reference to the same entity in an external
// system. Uniqueness within one record's list is defined by the
// (namespace, value) pair.
type ExternalIdentifier struct {
	Namespace string `json:"namespace"`
	Value     string `json:"value"`
}

// Key returns the dedup key for this identifier.
func (e ExternalIdentifier) Key() string {
	return e.Namespace + "\x00" + e.Value
}

// String returns "namespace:value".
func (e ExternalIdentifier) String() string {
	return e.Namespace + ":" + e.Value
}
