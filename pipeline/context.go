// Package pipeline provides the check execution infrastructure: the
// per-record validation context and the prioritized check pipeline.
package pipeline

import (
	"sync"
	"time"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/registry"
)

// Context holds all state needed while validating a single record. It is
// passed through every check and provides shared access to the record, the
// batch's identifier index, and the accumulated result.
//
// Context instances are pooled. Use AcquireContext() and Release() to
// manage them.
type Context struct {
	// Input is the record as ingested. Checks must never mutate it.
	Input record.Record

	// Record is the working clone of Input. Checks normalize it in place;
	// it becomes the normalized output when no errors are found.
	Record record.Record

	// RecordID is the record identifier, kept separately so issues can be
	// attributed even when the record itself is malformed.
	RecordID string

	// Kind is the record type being validated.
	Kind record.Kind

	// Index is the batch's frozen identifier index. Nil when validating a
	// record in isolation.
	Index *registry.Index

	// Result accumulates validation issues.
	Result *bv.Result

	// Options holds validation options accessible during checks.
	Options *ContextOptions

	// metadata for cross-check bookkeeping
	mu       sync.RWMutex
	metadata map[string]any
}

// ContextOptions holds the option subset checks need at run time.
type ContextOptions struct {
	StrictDuplicates  bool
	RequireTimestamps bool
	CheckVocabulary   bool
	VocabularyTimeout time.Duration
	MaxErrors         int
}

// contextPool holds reusable Context instances.
var contextPool = sync.Pool{
	New: func() any {
		return &Context{
			metadata: make(map[string]any, 4),
		}
	},
}

// AcquireContext gets a Context from the pool.
// Call Release() when done to return it to the pool.
func AcquireContext() *Context {
	rctx := contextPool.Get().(*Context)
	rctx.Reset()
	return rctx
}

// Release returns the Context to the pool.
// After calling Release, the Context should not be used.
func (c *Context) Release() {
	if c == nil {
		return
	}
	contextPool.Put(c)
}

// Reset clears the context for reuse.
func (c *Context) Reset() {
	c.Input = nil
	c.Record = nil
	c.RecordID = ""
	c.Kind = ""
	c.Index = nil
	c.Result = nil
	c.Options = nil

	for k := range c.metadata {
		delete(c.metadata, k)
	}
}

// SetMetadata stores a value in the context metadata.
// Thread-safe for use during parallel check execution.
func (c *Context) SetMetadata(key string, value any) {
	c.mu.Lock()
	c.metadata[key] = value
	c.mu.Unlock()
}

// GetMetadata retrieves a value from the context metadata.
// Thread-safe for use during parallel check execution.
func (c *Context) GetMetadata(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.metadata[key]
	c.mu.RUnlock()
	return v, ok
}

// AddIssue adds a validation issue to the result.
func (c *Context) AddIssue(issue bv.Issue) {
	if c.Result != nil {
		c.Result.AddIssue(issue)
	}
}

// ShouldStop returns true if validation should stop (max errors reached).
func (c *Context) ShouldStop() bool {
	if c.Options == nil || c.Options.MaxErrors <= 0 {
		return false
	}
	if c.Result == nil {
		return false
	}
	return c.Result.ErrorCount() >= c.Options.MaxErrors
}

// Subject returns the working record as a subject, or nil.
func (c *Context) Subject() *record.Subject {
	if s, ok := c.Record.(*record.Subject); ok {
		return s
	}
	return nil
}

// Sample returns the working record as a sample, or nil.
func (c *Context) Sample() *record.Sample {
	if s, ok := c.Record.(*record.Sample); ok {
		return s
	}
	return nil
}

// NewContext creates a new Context (non-pooled).
// Prefer AcquireContext() for better performance.
func NewContext() *Context {
	return &Context{
		metadata: make(map[string]any, 4),
	}
}

// ReleaseContext returns a Context to the pool.
// This is a convenience function equivalent to rctx.Release().
func ReleaseContext(rctx *Context) {
	if rctx != nil {
		rctx.Release()
	}
}
