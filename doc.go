// Package biovalidator provides validation and normalization for biomedical
// metadata records (subjects and biological samples).
//
// The schema these records travel in carries no enforcement of its own:
// identifiers, cross-references, temporal strings, and ontology term pairs
// are declared but never checked at the wire level. This module is the
// engine that makes such data trustworthy: referential integrity between
// records, structural well-formedness of ISO-8601 temporal values,
// precedence resolution between quantitative and qualitative age encodings,
// ontology-term consistency, and identifier deduplication.
//
// # Quick Start
//
//	import (
//	    bv "github.com/ga4gh-metadata/validator"
//	    "github.com/ga4gh-metadata/validator/engine"
//	)
//
//	v, err := engine.New(ctx, bv.V1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report := v.ValidateBatch(ctx, records)
//	for _, res := range report.Results {
//	    if res.HasErrors() {
//	        for _, issue := range res.Errors() {
//	            fmt.Println(issue.Diagnostics)
//	        }
//	    }
//	}
//
// # Two-Phase Validation
//
// A batch pass runs in two phases. Phase one walks every record once and
// builds an immutable identifier index, flagging duplicate identifiers on
// both colliding records. Phase two validates each record against that
// frozen index and the leaf checks; records are independent at this point,
// so phase two fans out across workers with no locking beyond the read-only
// index handle.
//
// Input records are never mutated. For every record that carries no
// error-severity issue, the engine emits a normalized copy: external
// identifiers deduplicated in first-seen order, attribute values
// canonicalized, optional fields resolved once at ingestion. Normalizing an
// already-normalized record is a no-op.
//
// # Validation Checks
//
// Validation runs as independent checks, each covering one aspect:
//
//   - References: dataset scope and subject cross-references
//   - Ontology: structural shape of term pairs, optional vocabulary lookup
//   - Characteristics: asserted/negated term contradiction detection
//   - Age: quantitative/qualitative age precedence
//   - Timestamps: created/updated temporal strings
//   - Attributes: the open key/value map against the closed value union
//   - ExternalIDs: (namespace, value) deduplication
//
// # Functional Options
//
//	v, err := engine.New(ctx, bv.V1,
//	    bv.WithStrictDuplicates(true),
//	    bv.WithRequireTimestamps(true),
//	    bv.WithVocabularyTimeout(200*time.Millisecond),
//	    bv.WithWorkerCount(runtime.NumCPU()),
//	)
package biovalidator
