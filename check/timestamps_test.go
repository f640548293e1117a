package check

import (
	"context"
	"testing"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
)

func TestTimestampCheck(t *testing.T) {
	tests := []struct {
		name     string
		created  string
		updated  string
		require  bool
		wantKind []bv.IssueKind
	}{
		{
			name: "absent timestamps are fine",
		},
		{
			name:    "valid date and date-time",
			created: "2021-03-01",
			updated: "2021-03-02T10:15:00Z",
		},
		{
			name:     "malformed created",
			created:  "yesterday",
			wantKind: []bv.IssueKind{bv.KindMalformedTemporalValue},
		},
		{
			// a valid duration is still not a timestamp
			name:     "duration in a timestamp slot",
			updated:  "P1Y",
			wantKind: []bv.IssueKind{bv.KindMalformedTemporalValue},
		},
		{
			name:     "calendar-invalid date",
			created:  "2021-02-30",
			wantKind: []bv.IssueKind{bv.KindMalformedTemporalValue},
		},
		{
			name:    "required timestamps missing",
			require: true,
			wantKind: []bv.IssueKind{
				bv.KindMissingRequiredField,
				bv.KindMissingRequiredField,
			},
		},
		{
			name:     "required timestamps present",
			created:  "2021-03-01",
			updated:  "2021-03-01",
			require:  true,
			wantKind: nil,
		},
	}

	check := NewTimestampCheck()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := &record.Subject{
				ID: "IND01", DatasetID: "DS1",
				Created: record.SomeTemporal(tt.created),
				Updated: record.SomeTemporal(tt.updated),
			}
			rctx := newTestContext(subject, nil, &pipeline.ContextOptions{RequireTimestamps: tt.require})

			issues := check.Check(context.Background(), rctx)
			if len(issues) != len(tt.wantKind) {
				t.Fatalf("issues = %v, want %d", issues, len(tt.wantKind))
			}
			for i, kind := range tt.wantKind {
				if issues[i].Kind != kind {
					t.Errorf("issue %d kind = %q, want %q", i, issues[i].Kind, kind)
				}
			}
		})
	}
}
