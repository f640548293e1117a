// Package engine provides the batch validation engine for biomedical
// metadata records.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/check"
	"github.com/ga4gh-metadata/validator/pipeline"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/registry"
	"github.com/ga4gh-metadata/validator/vocab"
	"github.com/ga4gh-metadata/validator/worker"
)

// Validator validates subjects and samples. One Validator instance is safe
// for concurrent use; per-record state lives in pooled pipeline contexts.
//
// Batch validation runs in two phases. Phase one builds the identifier
// index in a single sequential pass; phase two validates every record
// against the now-immutable index, in parallel when configured.
type Validator struct {
	// Configuration
	release bv.SchemaRelease
	options *bv.Options

	// Services
	vocabulary vocab.Service

	// Pipeline
	pipe *pipeline.Pipeline

	// Batch fan-out
	runner *worker.Runner

	// Metrics
	metrics *bv.Metrics

	logger *zap.Logger
}

// New creates a new Validator for the given schema release.
func New(_ context.Context, release bv.SchemaRelease, opts ...bv.Option) (*Validator, error) {
	if !release.IsValid() {
		return nil, fmt.Errorf("unsupported schema release %q", release)
	}

	options := bv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	workers := options.WorkerCount
	if !options.ParallelRecords {
		workers = 1
	}

	v := &Validator{
		release: release,
		options: options,
		metrics: bv.NewMetrics(),
		runner:  worker.NewRunner(workers),
		logger:  zap.NewNop(),
	}

	v.buildPipeline()

	return v, nil
}

// buildPipeline constructs the per-record check pipeline.
func (v *Validator) buildPipeline() {
	v.pipe = pipeline.New(&pipeline.Options{
		ParallelExecution: true,
		MaxErrors:         v.options.MaxErrors,
		CollectMetrics:    true,
	})
	v.pipe.SetMetrics(v.metrics)

	// Identifier and reference integrity first; ontology runs alongside it
	// so canonical labels are in place before later checks observe them.
	v.pipe.Register(pipeline.CheckIDReferences, &pipeline.Config{
		Check:    check.NewReferenceCheck(),
		Priority: pipeline.PriorityFirst,
		Parallel: true,
		Required: true,
		Enabled:  true,
	})
	v.pipe.Register(pipeline.CheckIDOntology, &pipeline.Config{
		Check:    check.NewOntologyCheck(v.vocabulary),
		Priority: pipeline.PriorityFirst,
		Parallel: true,
		Enabled:  true,
	})

	// Field-local checks own disjoint parts of the working copy.
	v.pipe.Register(pipeline.CheckIDTimestamps, &pipeline.Config{
		Check:    check.NewTimestampCheck(),
		Priority: pipeline.PriorityNormal,
		Parallel: true,
		Enabled:  true,
	})
	v.pipe.Register(pipeline.CheckIDAge, &pipeline.Config{
		Check:    check.NewAgeCheck(),
		Priority: pipeline.PriorityNormal,
		Parallel: true,
		Enabled:  true,
	})
	v.pipe.Register(pipeline.CheckIDAttributes, &pipeline.Config{
		Check:    check.NewAttributesCheck(),
		Priority: pipeline.PriorityNormal,
		Parallel: true,
		Enabled:  true,
	})
	v.pipe.Register(pipeline.CheckIDExternalIDs, &pipeline.Config{
		Check:    check.NewExternalIDCheck(),
		Priority: pipeline.PriorityNormal,
		Parallel: true,
		Enabled:  true,
	})

	// Contradiction detection compares canonicalized term pairs.
	v.pipe.Register(pipeline.CheckIDCharacteristics, &pipeline.Config{
		Check:    check.NewCharacteristicCheck(),
		Priority: pipeline.PriorityLast,
		Parallel: true,
		Enabled:  true,
	})
}

// SetVocabulary configures the vocabulary-lookup service used to resolve
// term existence. The service is wrapped in an LRU cache when a cache size
// is configured. A nil service disables lookups.
func (v *Validator) SetVocabulary(svc vocab.Service) {
	if svc != nil && v.options.VocabularyCacheSize > 0 {
		cached := vocab.NewCached(svc, v.options.VocabularyCacheSize)
		cached.SetRecorder(v.metrics)
		svc = cached
	}
	v.vocabulary = svc
	v.buildPipeline()
}

// SetLogger replaces the engine logger. The default is a no-op logger.
func (v *Validator) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v.logger = logger
}

// contextOptions projects the engine options onto the subset checks read.
func (v *Validator) contextOptions() *pipeline.ContextOptions {
	return &pipeline.ContextOptions{
		StrictDuplicates:  v.options.StrictDuplicates,
		RequireTimestamps: v.options.RequireTimestamps,
		CheckVocabulary:   v.options.CheckVocabulary,
		VocabularyTimeout: v.options.VocabularyTimeout,
		MaxErrors:         v.options.MaxErrors,
	}
}

// ValidateRecord validates a single record against an optional batch index.
// A nil index skips cross-record reference resolution. The caller owns the
// returned result.
func (v *Validator) ValidateRecord(ctx context.Context, rec record.Record, idx *registry.Index) *bv.Result {
	return v.validateRecord(ctx, rec, idx, nil)
}

func (v *Validator) validateRecord(ctx context.Context, rec record.Record, idx *registry.Index, seed []bv.Issue) *bv.Result {
	var rctx *pipeline.Context
	var result *bv.Result
	if v.options.EnablePooling {
		rctx = pipeline.AcquireContext()
		result = bv.AcquireResult()
		v.metrics.RecordPoolAcquire()
	} else {
		rctx = pipeline.NewContext()
		result = bv.NewResult()
	}

	rctx.Input = rec
	rctx.Record = rec.Clone()
	rctx.RecordID = rec.RecordID()
	rctx.Kind = rec.RecordKind()
	rctx.Index = idx
	rctx.Result = result
	rctx.Options = v.contextOptions()

	result.RecordID = rec.RecordID()
	result.RecordKind = string(rec.RecordKind())
	result.AddIssues(seed)

	v.pipe.Execute(ctx, rctx)

	// A record whose validation was cut short never counts as validated:
	// no normalized output, and the result is marked invalid.
	if len(result.IssuesOfKind(bv.KindCancelled)) > 0 {
		result.Valid = false
	} else if !result.HasErrors() {
		result.Normalized = rctx.Record
	}

	for _, iss := range result.Issues {
		v.metrics.RecordIssue(iss.Severity)
	}

	if v.options.EnablePooling {
		rctx.Release()
		v.metrics.RecordPoolRelease()
	}
	return result
}

// ValidateBatch validates a finite batch of records in two phases and
// returns one result per input record, in input order. The batch always
// completes; malformed records produce issues, never an engine error.
// Cancellation discards in-flight records but keeps completed results.
func (v *Validator) ValidateBatch(ctx context.Context, records []record.Record) *BatchReport {
	start := time.Now()
	batchID := uuid.NewString()

	builder := registry.NewBuilder()
	for i, rec := range records {
		if rec == nil {
			continue
		}
		builder.Add(i, rec)
	}
	idx, seed := builder.Build()

	br := v.runner.Run(ctx, len(records), func(ctx context.Context, i int) *bv.Result {
		rec := records[i]
		if rec == nil {
			result := bv.NewResult()
			result.AddIssue(bv.Error(bv.KindUnknownRecordKind).
				Diagnostics("input is neither a subject nor a sample").
				Build())
			v.metrics.RecordIssue(bv.SeverityError)
			return result
		}
		return v.validateRecord(ctx, rec, idx, seed[i])
	})

	for i, result := range br.Results {
		if result == nil {
			br.Results[i] = cancelledResult(records[i])
			v.metrics.RecordIssue(bv.SeverityWarning)
		}
	}

	v.metrics.RecordBatch()

	report := &BatchReport{
		BatchID:   batchID,
		Results:   br.Results,
		Total:     br.Total,
		Completed: br.Completed,
		Subjects:  idx.Subjects(),
		Samples:   idx.Samples(),
		Elapsed:   time.Since(start),
	}

	v.logger.Debug("batch validated",
		zap.String("batch_id", batchID),
		zap.Int("records", report.Total),
		zap.Int("completed", report.Completed),
		zap.Int("subjects", report.Subjects),
		zap.Int("samples", report.Samples),
		zap.Int("invalid", report.InvalidCount()),
		zap.Duration("elapsed", report.Elapsed),
	)

	return report
}

// cancelledResult marks a record whose validation never ran.
func cancelledResult(rec record.Record) *bv.Result {
	result := bv.NewResult()
	if rec != nil {
		result.RecordID = rec.RecordID()
		result.RecordKind = string(rec.RecordKind())
	}
	result.AddIssue(bv.Warning(bv.KindCancelled).
		Record(result.RecordID).
		Diagnostics("batch was cancelled before this record was validated").
		Build())
	// Not validated, so never part of the normalized output.
	result.Valid = false
	return result
}

// Metrics returns the engine metrics.
func (v *Validator) Metrics() *bv.Metrics {
	return v.metrics
}

// Options returns the engine configuration.
func (v *Validator) Options() *bv.Options {
	return v.options
}

// Release returns the schema release this engine validates against.
func (v *Validator) Release() bv.SchemaRelease {
	return v.release
}
