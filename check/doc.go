// Package check implements the leaf validation checks the pipeline runs
// over each record: reference integrity, ontology-term shape, characteristic
// consistency, age resolution, timestamp shape, attribute normalization, and
// external-identifier deduplication.
//
// Every check is stateless and safe for concurrent use. A check mutates only
// the working copy in the pipeline context, and only the fields it owns, so
// same-priority checks can run in parallel.
package check
