// Package registry builds and holds the identifier index for one validation
// batch. The index is constructed in a single sequential pass (phase one)
// and is immutable afterwards, so phase-two validation tasks can share it
// without locking.
package registry

import (
	"fmt"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

// Index is the immutable identifier index for one batch. It maps record
// identifiers to the records that claimed them. Identifiers claimed by more
// than one record are excluded; ambiguous identity is never resolved by
// last-write-wins.
type Index struct {
	byID       map[string]record.Record
	duplicates map[string]struct{}
	subjects   int
	samples    int
}

// Resolve returns the record registered under id.
func (x *Index) Resolve(id string) (record.Record, bool) {
	rec, ok := x.byID[id]
	return rec, ok
}

// Contains reports whether id resolves in the index.
func (x *Index) Contains(id string) bool {
	_, ok := x.byID[id]
	return ok
}

// IsDuplicate reports whether id was claimed by more than one record.
func (x *Index) IsDuplicate(id string) bool {
	_, ok := x.duplicates[id]
	return ok
}

// Len returns the number of uniquely identified records.
func (x *Index) Len() int {
	return len(x.byID)
}

// Subjects returns the number of subject records seen during the build,
// including ones later excluded as duplicates.
func (x *Index) Subjects() int { return x.subjects }

// Samples returns the number of sample records seen during the build.
func (x *Index) Samples() int { return x.samples }

// Builder accumulates records for one batch and produces the frozen Index.
type Builder struct {
	byID     map[string]record.Record
	claims   map[string][]int // id -> input positions that claimed it
	order    []string
	subjects int
	samples  int
}

// NewBuilder creates an empty index builder.
func NewBuilder() *Builder {
	return &Builder{
		byID:   make(map[string]record.Record),
		claims: make(map[string][]int),
	}
}

// Add registers one record under its input position. Records with an empty
// identifier are counted but not indexed; the reference check reports them.
func (b *Builder) Add(pos int, rec record.Record) {
	switch rec.RecordKind() {
	case record.KindSubject:
		b.subjects++
	case record.KindSample:
		b.samples++
	}

	id := rec.RecordID()
	if id == "" {
		return
	}
	if _, seen := b.claims[id]; !seen {
		b.order = append(b.order, id)
		b.byID[id] = rec
	}
	b.claims[id] = append(b.claims[id], pos)
}

// Build freezes the index and returns, per input position, the issues found
// during the pass. Every record that shares its identifier with another gets
// a DuplicateIdentifier error, and the identifier is withdrawn from the
// index entirely.
func (b *Builder) Build() (*Index, map[int][]bv.Issue) {
	idx := &Index{
		byID:       b.byID,
		duplicates: make(map[string]struct{}),
		subjects:   b.subjects,
		samples:    b.samples,
	}

	issues := make(map[int][]bv.Issue)
	for _, id := range b.order {
		positions := b.claims[id]
		if len(positions) < 2 {
			continue
		}

		delete(idx.byID, id)
		idx.duplicates[id] = struct{}{}

		for _, pos := range positions {
			issues[pos] = append(issues[pos], bv.Error(bv.KindDuplicateIdentifier).
				Record(id).
				At("id").
				Diagnostics(fmt.Sprintf("identifier %q is claimed by %d records in this batch", id, len(positions))).
				Build())
		}
	}

	return idx, issues
}
