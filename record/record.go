// Package record defines the biomedical metadata record types the engine
// validates: subjects, biological samples, and their shared building blocks.
//
// The types here are semantic, not wire-level. The wire convention of
// "empty string means absent" for optional scalars is resolved once at
// decode time (package codec); within this package absence is explicit,
// either as a nil pointer or as an unset Temporal.
package record

// Kind identifies the record type.
type Kind string

const (
	// KindSubject is an organism-level metadata record.
	KindSubject Kind = "subject"
	// KindSample is a biological-material record derived from a subject.
	KindSample Kind = "sample"
)

// Record is implemented by Subject and Sample. It exposes the fields shared
// by both so validation checks can operate uniformly; kind-specific fields
// are reached by type assertion.
type Record interface {
	// RecordID returns the record's unique identifier.
	RecordID() string

	// RecordKind returns the record type.
	RecordKind() Kind

	// Dataset returns the owning dataset identifier.
	Dataset() string

	// Characteristics returns the ordered bio-characteristic list.
	Characteristics() []BioCharacteristic

	// Attrs returns the open attribute map.
	Attrs() Attributes

	// ExternalIDs returns the ordered external identifier list.
	ExternalIDs() []ExternalIdentifier

	// CreatedAt and UpdatedAt return the record timestamps.
	CreatedAt() Temporal
	UpdatedAt() Temporal

	// Clone returns a deep copy. Validation never mutates its input; all
	// normalization happens on a clone.
	Clone() Record

	// SetExternalIDs and SetAttrs replace collections on a normalized copy.
	SetExternalIDs([]ExternalIdentifier)
	SetAttrs(Attributes)
}

// BioCharacteristic is a described phenotype, disease, or observation
// attached to a subject or sample.
type BioCharacteristic struct {
	Description string `json:"description,omitempty"`

	// Terms asserts the characteristic; NegatedTerms asserts its absence.
	// An identical term pair in both lists is a contradiction.
	Terms        []OntologyTerm `json:"ontology_terms,omitempty"`
	NegatedTerms []OntologyTerm `json:"negated_ontology_terms,omitempty"`

	Scope string `json:"scope,omitempty"`
}

// Clone returns a deep copy.
func (c BioCharacteristic) Clone() BioCharacteristic {
	out := c
	if c.Terms != nil {
		out.Terms = make([]OntologyTerm, len(c.Terms))
		copy(out.Terms, c.Terms)
	}
	if c.NegatedTerms != nil {
		out.NegatedTerms = make([]OntologyTerm, len(c.NegatedTerms))
		copy(out.NegatedTerms, c.NegatedTerms)
	}
	return out
}

// AgeEncoding carries a quantitative temporal age and/or a qualitative
// age-class term. When both are present the quantitative value is
// authoritative and the qualitative term is advisory only.
type AgeEncoding struct {
	// Age is an ISO-8601 duration (P12Y0M) or start-anchored interval.
	Age Temporal `json:"age,omitempty"`

	// AgeClass is a qualitative age-class ontology term.
	AgeClass *OntologyTerm `json:"age_class,omitempty"`
}

// Clone returns a deep copy.
func (a *AgeEncoding) Clone() *AgeEncoding {
	if a == nil {
		return nil
	}
	out := *a
	if a.AgeClass != nil {
		term := *a.AgeClass
		out.AgeClass = &term
	}
	return &out
}

// IsZero reports whether neither encoding is present.
func (a *AgeEncoding) IsZero() bool {
	return a == nil || (!a.Age.IsPresent() && a.AgeClass == nil)
}

// Subject is an organism-level metadata record.
type Subject struct {
	// ID is unique within the validation scope and immutable once assigned.
	ID        string `json:"id"`
	DatasetID string `json:"dataset_id"`

	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	BioCharacteristics []BioCharacteristic `json:"bio_characteristics,omitempty"`

	Created Temporal `json:"created,omitempty"`
	Updated Temporal `json:"updated,omitempty"`

	// Species and Sex, if present, must be structurally valid term pairs.
	Species *OntologyTerm `json:"species,omitempty"`
	Sex     *OntologyTerm `json:"sex,omitempty"`

	Location string `json:"origin_location,omitempty"`

	Attributes          Attributes           `json:"attributes,omitempty"`
	ExternalIdentifiers []ExternalIdentifier `json:"external_identifiers,omitempty"`
}

// RecordID implements Record.
func (s *Subject) RecordID() string { return s.ID }

// RecordKind implements Record.
func (s *Subject) RecordKind() Kind { return KindSubject }

// Dataset implements Record.
func (s *Subject) Dataset() string { return s.DatasetID }

// Characteristics implements Record.
func (s *Subject) Characteristics() []BioCharacteristic { return s.BioCharacteristics }

// Attrs implements Record.
func (s *Subject) Attrs() Attributes { return s.Attributes }

// ExternalIDs implements Record.
func (s *Subject) ExternalIDs() []ExternalIdentifier { return s.ExternalIdentifiers }

// CreatedAt implements Record.
func (s *Subject) CreatedAt() Temporal { return s.Created }

// UpdatedAt implements Record.
func (s *Subject) UpdatedAt() Temporal { return s.Updated }

// SetExternalIDs implements Record.
func (s *Subject) SetExternalIDs(ids []ExternalIdentifier) { s.ExternalIdentifiers = ids }

// SetAttrs implements Record.
func (s *Subject) SetAttrs(a Attributes) { s.Attributes = a }

// Clone implements Record.
func (s *Subject) Clone() Record {
	out := *s
	if s.BioCharacteristics != nil {
		out.BioCharacteristics = make([]BioCharacteristic, len(s.BioCharacteristics))
		for i := range s.BioCharacteristics {
			out.BioCharacteristics[i] = s.BioCharacteristics[i].Clone()
		}
	}
	if s.Species != nil {
		term := *s.Species
		out.Species = &term
	}
	if s.Sex != nil {
		term := *s.Sex
		out.Sex = &term
	}
	out.Attributes = s.Attributes.Clone()
	if s.ExternalIdentifiers != nil {
		out.ExternalIdentifiers = make([]ExternalIdentifier, len(s.ExternalIdentifiers))
		copy(out.ExternalIdentifiers, s.ExternalIdentifiers)
	}
	return &out
}

// Sample is a biological-material metadata record derived from a subject.
// It references its subject by identifier only; an empty SubjectID means the
// sample is not yet linked to a subject, which is permitted.
type Sample struct {
	ID        string `json:"id"`
	DatasetID string `json:"dataset_id"`
	SubjectID string `json:"subject_id,omitempty"`

	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	BioCharacteristics []BioCharacteristic `json:"bio_characteristics,omitempty"`

	Created Temporal `json:"created,omitempty"`
	Updated Temporal `json:"updated,omitempty"`

	CollectionAge *AgeEncoding `json:"collection_age,omitempty"`

	Location string `json:"collection_location,omitempty"`

	Attributes          Attributes           `json:"attributes,omitempty"`
	ExternalIdentifiers []ExternalIdentifier `json:"external_identifiers,omitempty"`
}

// RecordID implements Record.
func (s *Sample) RecordID() string { return s.ID }

// RecordKind implements Record.
func (s *Sample) RecordKind() Kind { return KindSample }

// Dataset implements Record.
func (s *Sample) Dataset() string { return s.DatasetID }

// Characteristics implements Record.
func (s *Sample) Characteristics() []BioCharacteristic { return s.BioCharacteristics }

// Attrs implements Record.
func (s *Sample) Attrs() Attributes { return s.Attributes }

// ExternalIDs implements Record.
func (s *Sample) ExternalIDs() []ExternalIdentifier { return s.ExternalIdentifiers }

// CreatedAt implements Record.
func (s *Sample) CreatedAt() Temporal { return s.Created }

// UpdatedAt implements Record.
func (s *Sample) UpdatedAt() Temporal { return s.Updated }

// SetExternalIDs implements Record.
func (s *Sample) SetExternalIDs(ids []ExternalIdentifier) { s.ExternalIdentifiers = ids }

// SetAttrs implements Record.
func (s *Sample) SetAttrs(a Attributes) { s.Attributes = a }

// Clone implements Record.
func (s *Sample) Clone() Record {
	out := *s
	if s.BioCharacteristics != nil {
		out.BioCharacteristics = make([]BioCharacteristic, len(s.BioCharacteristics))
		for i := range s.BioCharacteristics {
			out.BioCharacteristics[i] = s.BioCharacteristics[i].Clone()
		}
	}
	out.CollectionAge = s.CollectionAge.Clone()
	out.Attributes = s.Attributes.Clone()
	if s.ExternalIdentifiers != nil {
		out.ExternalIdentifiers = make([]ExternalIdentifier, len(s.ExternalIdentifiers))
		copy(out.ExternalIdentifiers, s.ExternalIdentifiers)
	}
	return &out
}
