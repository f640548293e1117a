package biovalidator

import (
	"runtime"
	"time"
)

// Option configures the engine.
type Option func(*Options)

// Options holds all configuration recognized by the engine.
type Options struct {
	// Validation behavior
	StrictDuplicates  bool
	RequireTimestamps bool
	CheckVocabulary   bool
	VocabularyTimeout time.Duration

	// Performance
	ParallelRecords bool
	WorkerCount     int
	MaxErrors       int
	EnablePooling   bool

	// Cache sizes
	VocabularyCacheSize int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		// Structural validation only; existence lookups need a vocabulary service
		StrictDuplicates:  false,
		RequireTimestamps: false,
		CheckVocabulary:   false,
		VocabularyTimeout: 500 * time.Millisecond,

		ParallelRecords: true,
		WorkerCount:     runtime.NumCPU(),
		MaxErrors:       0, // unlimited
		EnablePooling:   true,

		VocabularyCacheSize: 1000,
	}
}

// --- Validation Options ---

// WithStrictDuplicates promotes duplicate-external-identifier warnings to errors.
func WithStrictDuplicates(strict bool) Option {
	return func(o *Options) {
		o.StrictDuplicates = strict
	}
}

// WithRequireTimestamps requires records to carry created/updated timestamps.
func WithRequireTimestamps(require bool) Option {
	return func(o *Options) {
		o.RequireTimestamps = require
	}
}

// WithVocabulary enables vocabulary-existence lookups for structurally valid
// ontology terms. Requires a vocab.Service to be configured on the engine;
// without one this option has no effect.
func WithVocabulary(enable bool) Option {
	return func(o *Options) {
		o.CheckVocabulary = enable
	}
}

// WithVocabularyTimeout bounds a single vocabulary lookup. On timeout the
// term is treated as existence-unknown (a warning, never an error).
func WithVocabularyTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.VocabularyTimeout = timeout
		}
	}
}

// --- Performance Options ---

// WithParallelRecords enables parallel per-record validation in phase two.
func WithParallelRecords(enable bool) Option {
	return func(o *Options) {
		o.ParallelRecords = enable
	}
}

// WithWorkerCount sets the number of workers for batch validation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithMaxErrors sets the maximum number of errors per record before its
// remaining checks are skipped. Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithPooling enables or disables object pooling.
// Pooling reduces GC pressure but requires calling Release() on results.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

// --- Cache Options ---

// WithVocabularyCache sets the vocabulary lookup cache size.
func WithVocabularyCache(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.VocabularyCacheSize = size
		}
	}
}

// --- Presets ---

// StrictOptions returns options for strict validation: duplicate external
// identifiers become errors and timestamps are mandatory.
func StrictOptions() []Option {
	return []Option{
		WithStrictDuplicates(true),
		WithRequireTimestamps(true),
		WithVocabulary(true),
	}
}

// FastOptions returns options optimized for throughput.
func FastOptions() []Option {
	return []Option{
		WithVocabulary(false),
		WithParallelRecords(true),
		WithPooling(true),
	}
}

// DebugOptions returns options useful for debugging.
// Disables pooling so results can be inspected after the pass.
func DebugOptions() []Option {
	return []Option{
		WithPooling(false),
		WithParallelRecords(false),
	}
}
