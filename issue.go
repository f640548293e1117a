package biovalidator

// IssueSeverity represents the severity of a validation issue.
type IssueSeverity string

const (
	// SeverityError indicates a validation error that excludes the record
	// from normalized output.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a potential problem that should be reviewed
	// but does not invalidate the record.
	SeverityWarning IssueSeverity = "warning"
	// SeverityAdvisory indicates informational feedback, such as an age
	// resolution falling back to the qualitative term.
	SeverityAdvisory IssueSeverity = "advisory"
)

// IssueKind identifies the category of a validation issue.
type IssueKind string

const (
	// KindMissingRequiredField indicates a mandatory field is absent.
	KindMissingRequiredField IssueKind = "missing-required-field"
	// KindDuplicateIdentifier indicates two records in the batch share an identifier.
	KindDuplicateIdentifier IssueKind = "duplicate-identifier"
	// KindInvalidIdentifierReference indicates a cross-record reference that
	// does not resolve in the batch's identifier index.
	KindInvalidIdentifierReference IssueKind = "invalid-identifier-reference"
	// KindMalformedTemporalValue indicates a string matching neither the
	// ISO-8601 timestamp, duration, nor interval grammar.
	KindMalformedTemporalValue IssueKind = "malformed-temporal-value"
	// KindMalformedOntologyTerm indicates a term pair with an empty identifier
	// or label, or an identifier that is not NAMESPACE:local-id shaped.
	KindMalformedOntologyTerm IssueKind = "malformed-ontology-term"
	// KindAmbiguousAgeEncoding indicates both age encodings are present and
	// the authoritative quantitative one is malformed.
	KindAmbiguousAgeEncoding IssueKind = "ambiguous-age-encoding"
	// KindDuplicateExternalIdentifier indicates a repeated (namespace, value)
	// pair in a record's external identifier list.
	KindDuplicateExternalIdentifier IssueKind = "duplicate-external-identifier"
	// KindUnsupportedAttributeValue indicates an attribute value outside the
	// recognized {string, number, boolean, list, map} union.
	KindUnsupportedAttributeValue IssueKind = "unsupported-attribute-value"
	// KindContradictoryCharacteristic indicates a term pair present in both
	// the asserted and negated lists of one characteristic.
	KindContradictoryCharacteristic IssueKind = "contradictory-characteristic"
	// KindAgeDowngraded indicates age resolution fell back to the qualitative
	// age-class term because no quantitative value was present.
	KindAgeDowngraded IssueKind = "age-downgraded"
	// KindUnknownVocabularyTerm indicates a structurally valid term that the
	// configured vocabulary service does not recognize, or whose lookup
	// timed out.
	KindUnknownVocabularyTerm IssueKind = "unknown-vocabulary-term"
	// KindUnknownRecordKind indicates input that is neither a subject nor a sample.
	KindUnknownRecordKind IssueKind = "unknown-record-kind"
	// KindCancelled indicates validation of the record was cut short by
	// context cancellation.
	KindCancelled IssueKind = "cancelled"
)

// Issue represents a single validation issue attached to one record.
type Issue struct {
	// Severity of the issue (error, warning, advisory)
	Severity IssueSeverity `json:"severity"`

	// Kind identifying the category of issue
	Kind IssueKind `json:"kind"`

	// RecordID is the identifier of the offending record
	RecordID string `json:"recordId,omitempty"`

	// Field is the dotted path to the offending field (e.g. "collection_age.age")
	Field string `json:"field,omitempty"`

	// Diagnostics contains human-readable details about the issue
	Diagnostics string `json:"diagnostics,omitempty"`

	// Check is the validation check that produced this issue
	Check string `json:"check,omitempty"`
}

// IsError returns true if this issue excludes the record from normalized output.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// IsWarning returns true if this is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	s := string(i.Severity) + " [" + string(i.Kind) + "]: " + i.Diagnostics
	if i.Field != "" {
		s += " at " + i.Field
	}
	if i.RecordID != "" {
		s += " (record " + i.RecordID + ")"
	}
	return s
}

// IssueBuilder provides a fluent API for building issues.
type IssueBuilder struct {
	issue Issue
}

// NewIssue creates a new IssueBuilder.
func NewIssue(severity IssueSeverity, kind IssueKind) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			Severity: severity,
			Kind:     kind,
		},
	}
}

// Error creates an error issue.
func Error(kind IssueKind) *IssueBuilder {
	return NewIssue(SeverityError, kind)
}

// Warning creates a warning issue.
func Warning(kind IssueKind) *IssueBuilder {
	return NewIssue(SeverityWarning, kind)
}

// Advisory creates an advisory issue.
func Advisory(kind IssueKind) *IssueBuilder {
	return NewIssue(SeverityAdvisory, kind)
}

// Diagnostics sets the diagnostic message.
func (b *IssueBuilder) Diagnostics(msg string) *IssueBuilder {
	b.issue.Diagnostics = msg
	return b
}

// At sets the field path.
func (b *IssueBuilder) At(field string) *IssueBuilder {
	b.issue.Field = field
	return b
}

// Record sets the offending record identifier.
func (b *IssueBuilder) Record(id string) *IssueBuilder {
	b.issue.RecordID = id
	return b
}

// Check sets the originating validation check.
func (b *IssueBuilder) Check(name string) *IssueBuilder {
	b.issue.Check = name
	return b
}

// Build returns the constructed issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
