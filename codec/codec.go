// Package codec decodes wire-format JSON documents into records. It is the
// ingestion boundary: the "empty string means absent" wire convention for
// optional scalars is resolved here, once, so the engine never re-interprets
// empty strings.
package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/buger/jsonparser"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
)

// ErrUnknownKind is returned for a document that is neither a subject nor
// a sample.
var ErrUnknownKind = errors.New("unknown record kind")

// Sniff determines the record kind of a raw JSON document without decoding
// it. An explicit "kind" field wins; otherwise the kind is inferred from
// fields only one record type carries. Returns "" when the document cannot
// be classified.
func Sniff(data []byte) record.Kind {
	if kind, err := jsonparser.GetString(data, "kind"); err == nil {
		switch record.Kind(kind) {
		case record.KindSubject, record.KindSample:
			return record.Kind(kind)
		default:
			return ""
		}
	}

	for _, field := range []string{"subject_id", "collection_age", "collection_location"} {
		if _, _, _, err := jsonparser.Get(data, field); err == nil {
			return record.KindSample
		}
	}
	for _, field := range []string{"species", "sex", "origin_location"} {
		if _, _, _, err := jsonparser.Get(data, field); err == nil {
			return record.KindSubject
		}
	}
	return ""
}

// DecodeRecord decodes one raw JSON document into a subject or sample.
func DecodeRecord(data []byte) (record.Record, error) {
	switch Sniff(data) {
	case record.KindSubject:
		var s record.Subject
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode subject: %w", err)
		}
		return &s, nil
	case record.KindSample:
		var s record.Sample
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		return &s, nil
	default:
		return nil, ErrUnknownKind
	}
}

// DecodeBatch decodes a JSON array of record documents. The returned slice
// has one entry per array element, in order; elements that could not be
// decoded are nil and carry an issue instead, so a malformed document never
// aborts ingestion of the rest of the batch.
func DecodeBatch(data []byte) ([]record.Record, []bv.Issue, error) {
	var records []record.Record
	var issues []bv.Issue

	pos := -1
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		pos++
		if dataType != jsonparser.Object {
			records = append(records, nil)
			issues = append(issues, bv.Error(bv.KindUnknownRecordKind).
				Diagnostics(fmt.Sprintf("element %d is not an object", pos)).
				Build())
			return
		}

		rec, decErr := DecodeRecord(value)
		if decErr != nil {
			records = append(records, nil)
			issues = append(issues, bv.Error(bv.KindUnknownRecordKind).
				Diagnostics(fmt.Sprintf("element %d: %v", pos, decErr)).
				Build())
			return
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("decode batch: %w", err)
	}

	return records, issues, nil
}

// DecodeStream decodes newline-delimited JSON documents from r, one record
// per line. Blank lines are skipped. Like DecodeBatch, undecodable lines
// leave a nil slot and an issue rather than aborting the stream.
func DecodeStream(r io.Reader) ([]record.Record, []bv.Issue, error) {
	var records []record.Record
	var issues []bv.Issue

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		rec, err := DecodeRecord(data)
		if err != nil {
			records = append(records, nil)
			issues = append(issues, bv.Error(bv.KindUnknownRecordKind).
				Diagnostics(fmt.Sprintf("line %d: %v", line, err)).
				Build())
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("decode stream: %w", err)
	}

	return records, issues, nil
}

// EncodeRecord encodes a record back to wire JSON with its kind tag.
func EncodeRecord(rec record.Record) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return jsonparser.Set(raw, []byte(fmt.Sprintf("%q", rec.RecordKind())), "kind")
}
