package engine

import (
	"context"
	"fmt"
	"testing"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

func benchmarkSubject(i int) *record.Subject {
	return &record.Subject{
		ID:        fmt.Sprintf("IND%04d", i),
		DatasetID: "DS1",
		Species:   &record.OntologyTerm{ID: "NCBITaxon:9606", Label: "Homo sapiens"},
		Sex:       &record.OntologyTerm{ID: "PATO:0000384", Label: "male"},
		Created:   record.SomeTemporal("2021-01-01"),
		BioCharacteristics: []record.BioCharacteristic{{
			Description: "febrile episode",
			Terms:       []record.OntologyTerm{{ID: "HP:0001945", Label: "Fever"}},
		}},
		ExternalIdentifiers: []record.ExternalIdentifier{
			{Namespace: "HGNC", Value: fmt.Sprintf("%d", i)},
		},
	}
}

func BenchmarkValidateRecord(b *testing.B) {
	v, _ := New(context.Background(), bv.V1)
	subject := benchmarkSubject(0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ValidateRecord(ctx, subject, nil)
	}
}

func BenchmarkValidateRecord_NoPooling(b *testing.B) {
	v, _ := New(context.Background(), bv.V1, bv.WithPooling(false))
	subject := benchmarkSubject(0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ValidateRecord(ctx, subject, nil)
	}
}

func BenchmarkValidateBatch(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			v, _ := New(context.Background(), bv.V1)
			batch := make([]record.Record, size)
			for i := range batch {
				batch[i] = benchmarkSubject(i)
			}
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v.ValidateBatch(ctx, batch)
			}
		})
	}
}

func BenchmarkValidateBatch_Sequential(b *testing.B) {
	v, _ := New(context.Background(), bv.V1, bv.WithParallelRecords(false))
	batch := make([]record.Record, 100)
	for i := range batch {
		batch[i] = benchmarkSubject(i)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ValidateBatch(ctx, batch)
	}
}
