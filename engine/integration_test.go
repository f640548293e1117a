package engine

import (
	"context"
	"reflect"
	"testing"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/vocab"
)

func TestIntegration_ReferentialIntegrity(t *testing.T) {
	v := newValidator(t)
	batch := []record.Record{
		&record.Subject{ID: "IND01", DatasetID: "DS1"},
		&record.Sample{ID: "SMP01", DatasetID: "DS1", SubjectID: "IND01"},
		&record.Sample{ID: "SMP02", DatasetID: "DS1", SubjectID: "GHOST"},
	}

	report := v.ValidateBatch(context.Background(), batch)

	if report.Results[1].Valid != true {
		t.Errorf("linked sample issues = %v, want valid", report.Results[1].Issues)
	}

	dangling := report.Results[2]
	if dangling.Valid {
		t.Fatal("dangling reference should invalidate the sample")
	}
	if got := dangling.IssuesOfKind(bv.KindInvalidIdentifierReference); len(got) != 1 {
		t.Errorf("issues = %v, want exactly one invalid reference", dangling.Issues)
	}

	normalized := report.Normalized()
	if len(normalized) != 2 {
		t.Errorf("normalized = %d records, want 2", len(normalized))
	}
	for _, rec := range normalized {
		if rec.RecordID() == "SMP02" {
			t.Error("invalid record leaked into normalized output")
		}
	}
}

func TestIntegration_DuplicateIdentifiers(t *testing.T) {
	v := newValidator(t)
	batch := []record.Record{
		&record.Subject{ID: "S1", DatasetID: "DS1"},
		&record.Subject{ID: "S1", DatasetID: "DS1"},
		&record.Subject{ID: "S2", DatasetID: "DS1"},
	}

	report := v.ValidateBatch(context.Background(), batch)

	// both colliding records are marked invalid, never resolved by ordering
	for _, i := range []int{0, 1} {
		result := report.Results[i]
		if result.Valid {
			t.Errorf("record %d with duplicate identifier should be invalid", i)
		}
		if len(result.IssuesOfKind(bv.KindDuplicateIdentifier)) != 1 {
			t.Errorf("record %d issues = %v, want one duplicate identifier", i, result.Issues)
		}
	}
	if !report.Results[2].Valid {
		t.Errorf("unique record issues = %v, want valid", report.Results[2].Issues)
	}
	if len(report.Normalized()) != 1 {
		t.Errorf("normalized = %d records, want 1", len(report.Normalized()))
	}
}

func TestIntegration_AgePrecedence(t *testing.T) {
	v := newValidator(t)
	sample := &record.Sample{
		ID: "SMP01", DatasetID: "DS1",
		CollectionAge: &record.AgeEncoding{
			Age:      record.SomeTemporal("P5Y"),
			AgeClass: &record.OntologyTerm{ID: "HP:9999999", Label: ""},
		},
	}

	report := v.ValidateBatch(context.Background(), []record.Record{sample})

	result := report.Results[0]
	if !result.Valid {
		t.Fatalf("issues = %v, want zero fatal issues", result.Issues)
	}
	normalized := result.Normalized.(*record.Sample)
	if got, _ := normalized.CollectionAge.Age.Value(); got != "P5Y" {
		t.Errorf("resolved age = %q, want the quantitative P5Y", got)
	}
}

func TestIntegration_AgeAmbiguity(t *testing.T) {
	v := newValidator(t)
	sample := &record.Sample{
		ID: "SMP01", DatasetID: "DS1",
		CollectionAge: &record.AgeEncoding{Age: record.SomeTemporal("not-a-duration")},
	}

	report := v.ValidateBatch(context.Background(), []record.Record{sample})

	result := report.Results[0]
	if result.Valid {
		t.Fatal("malformed quantitative age should invalidate the record")
	}
	if len(result.IssuesOfKind(bv.KindMalformedTemporalValue)) != 1 {
		t.Errorf("issues = %v, want a malformed temporal value", result.Issues)
	}
}

func TestIntegration_ExternalIdentifierDedup(t *testing.T) {
	v := newValidator(t)
	subject := &record.Subject{
		ID: "IND01", DatasetID: "DS1",
		ExternalIdentifiers: []record.ExternalIdentifier{
			{Namespace: "HGNC", Value: "1"},
			{Namespace: "HGNC", Value: "1"},
			{Namespace: "NCBI", Value: "1"},
		},
	}

	report := v.ValidateBatch(context.Background(), []record.Record{subject})

	result := report.Results[0]
	if !result.Valid {
		t.Fatalf("issues = %v, want valid (duplicate is a warning)", result.Issues)
	}
	if len(result.IssuesOfKind(bv.KindDuplicateExternalIdentifier)) != 1 {
		t.Errorf("issues = %v, want one duplicate warning", result.Issues)
	}

	normalized := result.Normalized.(*record.Subject)
	want := []record.ExternalIdentifier{
		{Namespace: "HGNC", Value: "1"},
		{Namespace: "NCBI", Value: "1"},
	}
	if !reflect.DeepEqual(normalized.ExternalIdentifiers, want) {
		t.Errorf("normalized identifiers = %v, want %v", normalized.ExternalIdentifiers, want)
	}
}

func TestIntegration_ContradictionDetection(t *testing.T) {
	v := newValidator(t)
	fever := record.OntologyTerm{ID: "HP:0001945", Label: "Fever"}
	subject := &record.Subject{
		ID: "IND01", DatasetID: "DS1",
		BioCharacteristics: []record.BioCharacteristic{{
			Terms:        []record.OntologyTerm{fever},
			NegatedTerms: []record.OntologyTerm{fever},
		}},
	}

	report := v.ValidateBatch(context.Background(), []record.Record{subject})

	result := report.Results[0]
	if result.Valid {
		t.Fatal("contradictory characteristic should fail validation")
	}
	if len(result.IssuesOfKind(bv.KindContradictoryCharacteristic)) != 1 {
		t.Errorf("issues = %v, want one contradiction", result.Issues)
	}
}

func TestIntegration_Idempotence(t *testing.T) {
	v := newValidator(t)
	batch := []record.Record{
		&record.Subject{
			ID: "IND01", DatasetID: "DS1",
			Species: &record.OntologyTerm{ID: "NCBITaxon:9606", Label: "Homo sapiens"},
			ExternalIdentifiers: []record.ExternalIdentifier{
				{Namespace: "HGNC", Value: "1"},
				{Namespace: "HGNC", Value: "1"},
			},
		},
		&record.Sample{
			ID: "SMP01", DatasetID: "DS1", SubjectID: "IND01",
			CollectionAge: &record.AgeEncoding{Age: record.SomeTemporal("P5Y")},
		},
	}

	first := v.ValidateBatch(context.Background(), batch)
	normalized := first.Normalized()
	if len(normalized) != 2 {
		t.Fatalf("first pass normalized %d records, want 2", len(normalized))
	}

	second := v.ValidateBatch(context.Background(), normalized)
	for i, result := range second.Results {
		if len(result.Issues) != 0 {
			t.Errorf("second pass record %d issues = %v, want none", i, result.Issues)
		}
	}
	if !reflect.DeepEqual(second.Normalized(), normalized) {
		t.Error("renormalizing a normalized batch must be a no-op")
	}
}

// A qualitative-only age is a property of the encoding, not of a single
// pass: the downgrade advisory recurs on every validation, while the record
// stays valid and its normalized copy is unchanged.
func TestIntegration_IdempotenceQualitativeAge(t *testing.T) {
	v := newValidator(t)
	batch := []record.Record{
		&record.Sample{
			ID: "SMP01", DatasetID: "DS1",
			CollectionAge: &record.AgeEncoding{
				AgeClass: &record.OntologyTerm{ID: "HsapDv:0000087", Label: "adult"},
			},
		},
	}

	first := v.ValidateBatch(context.Background(), batch)
	normalized := first.Normalized()
	if len(normalized) != 1 {
		t.Fatalf("first pass normalized %d records, want 1", len(normalized))
	}
	if got := len(first.Results[0].IssuesOfKind(bv.KindAgeDowngraded)); got != 1 {
		t.Fatalf("first pass advisories = %d, want 1", got)
	}

	second := v.ValidateBatch(context.Background(), normalized)
	if !second.Results[0].Valid {
		t.Errorf("second pass issues = %v, want valid", second.Results[0].Issues)
	}
	if got := len(second.Results[0].IssuesOfKind(bv.KindAgeDowngraded)); got != 1 {
		t.Errorf("second pass advisories = %d, want the advisory to recur", got)
	}
	if !reflect.DeepEqual(second.Normalized(), normalized) {
		t.Error("renormalizing a normalized record must be a no-op")
	}
}

func TestIntegration_WithVocabulary(t *testing.T) {
	mem := vocab.NewInMemory()
	mem.Add("NCBITaxon:9606", "Homo sapiens")

	v := newValidator(t, bv.WithVocabulary(true))
	v.SetVocabulary(mem)

	batch := []record.Record{
		&record.Subject{
			ID: "IND01", DatasetID: "DS1",
			Species: &record.OntologyTerm{ID: "NCBITaxon:9606", Label: "human"},
		},
		&record.Subject{
			ID: "IND02", DatasetID: "DS1",
			Species: &record.OntologyTerm{ID: "NCBITaxon:0000", Label: "martian"},
		},
	}

	report := v.ValidateBatch(context.Background(), batch)

	known := report.Results[0]
	if !known.Valid || len(known.Issues) != 0 {
		t.Fatalf("known term issues = %v, want none", known.Issues)
	}
	if got := known.Normalized.(*record.Subject).Species.Label; got != "Homo sapiens" {
		t.Errorf("label = %q, want the canonical form", got)
	}

	unknown := report.Results[1]
	if !unknown.Valid {
		t.Fatal("unknown term must stay a warning")
	}
	if len(unknown.IssuesOfKind(bv.KindUnknownVocabularyTerm)) != 1 {
		t.Errorf("issues = %v, want one unknown-term warning", unknown.Issues)
	}
}

func TestIntegration_Cancellation(t *testing.T) {
	v := newValidator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := []record.Record{
		&record.Subject{ID: "IND01", DatasetID: "DS1"},
		&record.Subject{ID: "IND02", DatasetID: "DS1"},
		&record.Subject{ID: "IND03", DatasetID: "DS1"},
		&record.Subject{ID: "IND04", DatasetID: "DS1"},
	}

	report := v.ValidateBatch(ctx, batch)

	if len(report.Results) != 4 {
		t.Fatalf("results = %d, want one per input", len(report.Results))
	}
	for i, result := range report.Results {
		if result == nil {
			t.Fatalf("result %d is nil", i)
		}
		if result.Valid && len(result.IssuesOfKind(bv.KindCancelled)) == 0 {
			t.Errorf("result %d was neither validated nor marked cancelled", i)
		}
		if len(result.IssuesOfKind(bv.KindCancelled)) > 0 {
			if result.Valid {
				t.Errorf("result %d is cancelled but reported valid", i)
			}
			if result.Normalized != nil {
				t.Errorf("result %d is cancelled but has normalized output", i)
			}
		}
	}
}

func TestIntegration_NilRecord(t *testing.T) {
	v := newValidator(t)
	batch := []record.Record{
		&record.Subject{ID: "IND01", DatasetID: "DS1"},
		nil,
	}

	report := v.ValidateBatch(context.Background(), batch)

	if !report.Results[0].Valid {
		t.Errorf("issues = %v, want valid", report.Results[0].Issues)
	}
	bad := report.Results[1]
	if bad.Valid {
		t.Fatal("nil input should be invalid")
	}
	if len(bad.IssuesOfKind(bv.KindUnknownRecordKind)) != 1 {
		t.Errorf("issues = %v, want unknown record kind", bad.Issues)
	}
	if report.BatchID == "" {
		t.Error("batch id should be assigned")
	}
}
