package vocab

import (
	"context"

	"github.com/ga4gh-metadata/validator/cache"
)

// Recorder receives cache hit and miss events. *biovalidator.Metrics
// satisfies it.
type Recorder interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Cached wraps a Service with an LRU memoization layer. Lookup errors are
// not cached; a transient failure should not pin a term as unknown.
type Cached struct {
	inner    Service
	cache    *cache.LRU[string, Resolution]
	recorder Recorder
}

// NewCached wraps svc with a cache of the given size.
func NewCached(svc Service, size int) *Cached {
	return &Cached{
		inner: svc,
		cache: cache.New[string, Resolution](size),
	}
}

// SetRecorder registers a sink for hit and miss events. A nil recorder
// disables reporting.
func (c *Cached) SetRecorder(r Recorder) {
	c.recorder = r
}

// Resolve implements Service.
func (c *Cached) Resolve(ctx context.Context, termID string) (Resolution, error) {
	if res, ok := c.cache.Get(termID); ok {
		if c.recorder != nil {
			c.recorder.RecordCacheHit()
		}
		return res, nil
	}
	if c.recorder != nil {
		c.recorder.RecordCacheMiss()
	}

	res, err := c.inner.Resolve(ctx, termID)
	if err != nil {
		return Resolution{}, err
	}

	c.cache.Set(termID, res)
	return res, nil
}

// CacheStats returns the memoization layer's statistics.
func (c *Cached) CacheStats() cache.Stats {
	return c.cache.Stats()
}
