package registry

import (
	"testing"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

func TestBuilderUniqueIdentifiers(t *testing.T) {
	b := NewBuilder()
	b.Add(0, &record.Subject{ID: "IND01", DatasetID: "DS1"})
	b.Add(1, &record.Sample{ID: "SMP01", DatasetID: "DS1", SubjectID: "IND01"})

	idx, issues := b.Build()

	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if !idx.Contains("IND01") || !idx.Contains("SMP01") {
		t.Error("both identifiers should resolve")
	}
	if idx.Subjects() != 1 || idx.Samples() != 1 {
		t.Errorf("counts = %d subjects, %d samples", idx.Subjects(), idx.Samples())
	}

	rec, ok := idx.Resolve("IND01")
	if !ok {
		t.Fatal("Resolve(IND01) failed")
	}
	if rec.RecordKind() != record.KindSubject {
		t.Errorf("resolved kind = %q, want subject", rec.RecordKind())
	}
}

func TestBuilderDuplicateIdentifierFlagsAllClaimants(t *testing.T) {
	b := NewBuilder()
	b.Add(0, &record.Subject{ID: "IND01"})
	b.Add(1, &record.Subject{ID: "IND02"})
	b.Add(2, &record.Subject{ID: "IND01"})
	b.Add(3, &record.Subject{ID: "IND01"})

	idx, issues := b.Build()

	// every claimant of the shared identifier is flagged
	for _, pos := range []int{0, 2, 3} {
		got := issues[pos]
		if len(got) != 1 {
			t.Fatalf("position %d: %d issues, want 1", pos, len(got))
		}
		if got[0].Kind != bv.KindDuplicateIdentifier {
			t.Errorf("position %d: kind = %q", pos, got[0].Kind)
		}
		if got[0].Severity != bv.SeverityError {
			t.Errorf("position %d: severity = %q", pos, got[0].Severity)
		}
	}
	if _, flagged := issues[1]; flagged {
		t.Error("position 1 has a unique identifier and should not be flagged")
	}

	// the contested identifier is withdrawn, never resolved by ordering
	if idx.Contains("IND01") {
		t.Error("duplicate identifier must not resolve")
	}
	if !idx.IsDuplicate("IND01") {
		t.Error("IsDuplicate(IND01) = false, want true")
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestBuilderCrossKindDuplicate(t *testing.T) {
	b := NewBuilder()
	b.Add(0, &record.Subject{ID: "X1"})
	b.Add(1, &record.Sample{ID: "X1"})

	idx, issues := b.Build()

	if len(issues[0]) != 1 || len(issues[1]) != 1 {
		t.Fatal("identifiers collide across record kinds too")
	}
	if idx.Contains("X1") {
		t.Error("contested identifier must be withdrawn")
	}
}

func TestBuilderEmptyIdentifierNotIndexed(t *testing.T) {
	b := NewBuilder()
	b.Add(0, &record.Subject{ID: ""})
	b.Add(1, &record.Subject{ID: ""})

	idx, issues := b.Build()

	// missing identifiers are not duplicates of each other
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none from the index pass", issues)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if idx.Subjects() != 2 {
		t.Errorf("Subjects() = %d, want 2", idx.Subjects())
	}
}
