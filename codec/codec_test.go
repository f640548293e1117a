package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/ga4gh-metadata/validator/record"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want record.Kind
	}{
		{"explicit subject", `{"kind":"subject","id":"IND01"}`, record.KindSubject},
		{"explicit sample", `{"kind":"sample","id":"SMP01"}`, record.KindSample},
		{"explicit unknown", `{"kind":"plasmid","id":"X"}`, ""},
		{"subject_id implies sample", `{"id":"SMP01","subject_id":"IND01"}`, record.KindSample},
		{"collection_age implies sample", `{"id":"SMP01","collection_age":{"age":"P5Y"}}`, record.KindSample},
		{"species implies subject", `{"id":"IND01","species":{"term_id":"NCBITaxon:9606","term":"Homo sapiens"}}`, record.KindSubject},
		{"sex implies subject", `{"id":"IND01","sex":{"term_id":"PATO:0000384","term":"male"}}`, record.KindSubject},
		{"bare document", `{"id":"X1","dataset_id":"DS1"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff([]byte(tt.doc)); got != tt.want {
				t.Errorf("Sniff() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	doc := `{
		"kind": "sample",
		"id": "SMP01",
		"dataset_id": "DS1",
		"subject_id": "IND01",
		"collection_age": {"age": "P5Y"},
		"created": "2021-01-01",
		"attributes": {"passage": 12}
	}`

	rec, err := DecodeRecord([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}

	sample, ok := rec.(*record.Sample)
	if !ok {
		t.Fatalf("decoded %T, want *record.Sample", rec)
	}
	if sample.SubjectID != "IND01" {
		t.Errorf("subject_id = %q", sample.SubjectID)
	}
	if age, _ := sample.CollectionAge.Age.Value(); age != "P5Y" {
		t.Errorf("age = %q, want P5Y", age)
	}
	if !sample.Created.IsPresent() {
		t.Error("created should be present")
	}
	if v, ok := sample.Attributes["passage"]; !ok || v.Kind() != record.ValueNumber {
		t.Error("numeric attribute lost in decoding")
	}
}

func TestDecodeRecordEmptyStringsAreAbsent(t *testing.T) {
	doc := `{"kind":"subject","id":"IND01","dataset_id":"DS1","created":"","updated":""}`

	rec, err := DecodeRecord([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	subject := rec.(*record.Subject)
	if subject.Created.IsPresent() || subject.Updated.IsPresent() {
		t.Error("empty wire strings must decode as absent")
	}
}

func TestDecodeRecordUnknownKind(t *testing.T) {
	if _, err := DecodeRecord([]byte(`{"id":"X1"}`)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestDecodeBatch(t *testing.T) {
	doc := `[
		{"kind":"subject","id":"IND01","dataset_id":"DS1"},
		{"kind":"sample","id":"SMP01","dataset_id":"DS1","subject_id":"IND01"},
		{"id":"mystery"},
		42
	]`

	records, issues, err := DecodeBatch([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("records = %d, want one slot per element", len(records))
	}
	if records[0] == nil || records[0].RecordKind() != record.KindSubject {
		t.Error("element 0 should decode as a subject")
	}
	if records[1] == nil || records[1].RecordKind() != record.KindSample {
		t.Error("element 1 should decode as a sample")
	}
	if records[2] != nil || records[3] != nil {
		t.Error("undecodable elements should leave nil slots")
	}
	if len(issues) != 2 {
		t.Errorf("issues = %v, want 2", issues)
	}
}

func TestDecodeBatchMalformedJSON(t *testing.T) {
	if _, _, err := DecodeBatch([]byte(`{not json`)); err == nil {
		t.Error("malformed input collection should be the one fatal error")
	}
}

func TestDecodeStream(t *testing.T) {
	input := `{"kind":"subject","id":"IND01","dataset_id":"DS1"}

{"kind":"sample","id":"SMP01","dataset_id":"DS1","subject_id":"IND01"}
{"id":"mystery"}
`

	records, issues, err := DecodeStream(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (blank line skipped)", len(records))
	}
	if records[0] == nil || records[1] == nil {
		t.Error("well-formed lines should decode")
	}
	if records[2] != nil {
		t.Error("unclassifiable line should leave a nil slot")
	}
	if len(issues) != 1 {
		t.Errorf("issues = %v, want 1", issues)
	}
}

func TestEncodeRecordRoundTrip(t *testing.T) {
	subject := &record.Subject{
		ID: "IND01", DatasetID: "DS1",
		Species: &record.OntologyTerm{ID: "NCBITaxon:9606", Label: "Homo sapiens"},
	}

	data, err := EncodeRecord(subject)
	if err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	back, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if back.RecordKind() != record.KindSubject || back.RecordID() != "IND01" {
		t.Errorf("round trip lost identity: %v", back)
	}
}
