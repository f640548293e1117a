package biovalidator

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks validation performance metrics using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Record counts
	recordsTotal atomic.Uint64
	recordsValid atomic.Uint64

	// Batch counts
	batchesTotal atomic.Uint64

	// Timing (stored as nanoseconds)
	recordTimeTotal atomic.Uint64
	recordTimeMin   atomic.Uint64
	recordTimeMax   atomic.Uint64

	// Vocabulary cache metrics
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	// Pool metrics
	poolAcquires atomic.Uint64
	poolReleases atomic.Uint64

	// Issue counts by severity
	errorsTotal     atomic.Uint64
	warningsTotal   atomic.Uint64
	advisoriesTotal atomic.Uint64

	// Per-check timing
	checkTiming sync.Map // map[string]*checkMetrics
}

// checkMetrics tracks metrics for a single validation check.
type checkMetrics struct {
	invocations atomic.Uint64
	totalTime   atomic.Uint64 // nanoseconds
	issuesFound atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.recordTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordValidation records one completed per-record validation.
func (m *Metrics) RecordValidation(duration time.Duration, valid bool) {
	m.recordsTotal.Add(1)
	if valid {
		m.recordsValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.recordTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.recordTimeMin.Load()
		if ns >= old {
			break
		}
		if m.recordTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.recordTimeMax.Load()
		if ns <= old {
			break
		}
		if m.recordTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordBatch records one completed batch pass.
func (m *Metrics) RecordBatch() {
	m.batchesTotal.Add(1)
}

// RecordCacheHit records a vocabulary cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a vocabulary cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordPoolAcquire records a pool acquire operation.
func (m *Metrics) RecordPoolAcquire() {
	m.poolAcquires.Add(1)
}

// RecordPoolRelease records a pool release operation.
func (m *Metrics) RecordPoolRelease() {
	m.poolReleases.Add(1)
}

// RecordIssue records an issue based on severity.
func (m *Metrics) RecordIssue(severity IssueSeverity) {
	switch severity {
	case SeverityError:
		m.errorsTotal.Add(1)
	case SeverityWarning:
		m.warningsTotal.Add(1)
	case SeverityAdvisory:
		m.advisoriesTotal.Add(1)
	}
}

// RecordCheck records metrics for a validation check.
func (m *Metrics) RecordCheck(checkName string, duration time.Duration, issuesFound int) {
	cm := m.getOrCreateCheckMetrics(checkName)
	cm.invocations.Add(1)
	cm.totalTime.Add(uint64(duration.Nanoseconds()))
	cm.issuesFound.Add(uint64(issuesFound))
}

func (m *Metrics) getOrCreateCheckMetrics(name string) *checkMetrics {
	if v, ok := m.checkTiming.Load(name); ok {
		return v.(*checkMetrics)
	}
	cm := &checkMetrics{}
	actual, _ := m.checkTiming.LoadOrStore(name, cm)
	return actual.(*checkMetrics)
}

// --- Query Methods ---

// RecordsTotal returns the total number of records validated.
func (m *Metrics) RecordsTotal() uint64 {
	return m.recordsTotal.Load()
}

// RecordsValid returns the number of records that validated cleanly.
func (m *Metrics) RecordsValid() uint64 {
	return m.recordsValid.Load()
}

// BatchesTotal returns the total number of batch passes.
func (m *Metrics) BatchesTotal() uint64 {
	return m.batchesTotal.Load()
}

// ValidRate returns the fraction of valid records (0.0 to 1.0).
func (m *Metrics) ValidRate() float64 {
	total := m.recordsTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.recordsValid.Load()) / float64(total)
}

// AverageRecordTime returns the average per-record validation duration.
func (m *Metrics) AverageRecordTime() time.Duration {
	total := m.recordsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.recordTimeTotal.Load() / total)
}

// MinRecordTime returns the minimum per-record validation duration.
func (m *Metrics) MinRecordTime() time.Duration {
	minVal := m.recordTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal)
}

// MaxRecordTime returns the maximum per-record validation duration.
func (m *Metrics) MaxRecordTime() time.Duration {
	return time.Duration(m.recordTimeMax.Load())
}

// CacheHits returns the total vocabulary cache hits.
func (m *Metrics) CacheHits() uint64 {
	return m.cacheHits.Load()
}

// CacheMisses returns the total vocabulary cache misses.
func (m *Metrics) CacheMisses() uint64 {
	return m.cacheMisses.Load()
}

// CacheHitRate returns the vocabulary cache hit rate (0.0 to 1.0).
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	misses := m.cacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// PoolLeaks returns potential pool leaks (acquires - releases).
func (m *Metrics) PoolLeaks() int64 {
	return int64(m.poolAcquires.Load()) - int64(m.poolReleases.Load())
}

// ErrorsTotal returns the total error issues found.
func (m *Metrics) ErrorsTotal() uint64 {
	return m.errorsTotal.Load()
}

// WarningsTotal returns the total warning issues found.
func (m *Metrics) WarningsTotal() uint64 {
	return m.warningsTotal.Load()
}

// AdvisoriesTotal returns the total advisory issues found.
func (m *Metrics) AdvisoriesTotal() uint64 {
	return m.advisoriesTotal.Load()
}

// CheckStats holds statistics for one validation check.
type CheckStats struct {
	Name        string
	Invocations uint64
	TotalTime   time.Duration
	AvgTime     time.Duration
	IssuesFound uint64
}

// CheckStats returns statistics for a specific check.
func (m *Metrics) CheckStats(checkName string) (CheckStats, bool) {
	v, ok := m.checkTiming.Load(checkName)
	if !ok {
		return CheckStats{Name: checkName}, false
	}
	cm := v.(*checkMetrics)
	return m.statsFor(checkName, cm), true
}

// AllCheckStats returns statistics for all checks.
func (m *Metrics) AllCheckStats() []CheckStats {
	var stats []CheckStats
	m.checkTiming.Range(func(key, value any) bool {
		stats = append(stats, m.statsFor(key.(string), value.(*checkMetrics)))
		return true
	})
	return stats
}

func (m *Metrics) statsFor(name string, cm *checkMetrics) CheckStats {
	invocations := cm.invocations.Load()
	totalTime := cm.totalTime.Load()

	var avgTime time.Duration
	if invocations > 0 {
		avgTime = time.Duration(totalTime / invocations)
	}

	return CheckStats{
		Name:        name,
		Invocations: invocations,
		TotalTime:   time.Duration(totalTime),
		AvgTime:     avgTime,
		IssuesFound: cm.issuesFound.Load(),
	}
}

// --- Export Methods ---

// Snapshot represents a point-in-time snapshot of all metrics.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	RecordsTotal uint64  `json:"records_total"`
	RecordsValid uint64  `json:"records_valid"`
	BatchesTotal uint64  `json:"batches_total"`
	ValidRate    float64 `json:"valid_rate"`

	AvgRecordTimeNs uint64 `json:"avg_record_time_ns"`
	MinRecordTimeNs uint64 `json:"min_record_time_ns"`
	MaxRecordTimeNs uint64 `json:"max_record_time_ns"`

	CacheHits    uint64  `json:"cache_hits"`
	CacheMisses  uint64  `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	PoolAcquires uint64 `json:"pool_acquires"`
	PoolReleases uint64 `json:"pool_releases"`
	PoolLeaks    int64  `json:"pool_leaks"`

	ErrorsTotal     uint64 `json:"errors_total"`
	WarningsTotal   uint64 `json:"warnings_total"`
	AdvisoriesTotal uint64 `json:"advisories_total"`

	Checks []CheckStats `json:"checks,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.recordsTotal.Load()
	cacheHits := m.cacheHits.Load()
	cacheMisses := m.cacheMisses.Load()

	var avgTime, validRate, cacheHitRate float64
	if total > 0 {
		avgTime = float64(m.recordTimeTotal.Load()) / float64(total)
		validRate = float64(m.recordsValid.Load()) / float64(total)
	}
	if cacheTotal := cacheHits + cacheMisses; cacheTotal > 0 {
		cacheHitRate = float64(cacheHits) / float64(cacheTotal)
	}

	minTime := m.recordTimeMin.Load()
	if minTime == ^uint64(0) {
		minTime = 0
	}

	return Snapshot{
		Timestamp:       time.Now(),
		RecordsTotal:    total,
		RecordsValid:    m.recordsValid.Load(),
		BatchesTotal:    m.batchesTotal.Load(),
		ValidRate:       validRate,
		AvgRecordTimeNs: uint64(avgTime),
		MinRecordTimeNs: minTime,
		MaxRecordTimeNs: m.recordTimeMax.Load(),
		CacheHits:       cacheHits,
		CacheMisses:     cacheMisses,
		CacheHitRate:    cacheHitRate,
		PoolAcquires:    m.poolAcquires.Load(),
		PoolReleases:    m.poolReleases.Load(),
		PoolLeaks:       m.PoolLeaks(),
		ErrorsTotal:     m.errorsTotal.Load(),
		WarningsTotal:   m.warningsTotal.Load(),
		AdvisoriesTotal: m.advisoriesTotal.Load(),
		Checks:          m.AllCheckStats(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.recordsTotal.Store(0)
	m.recordsValid.Store(0)
	m.batchesTotal.Store(0)
	m.recordTimeTotal.Store(0)
	m.recordTimeMin.Store(^uint64(0))
	m.recordTimeMax.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.poolAcquires.Store(0)
	m.poolReleases.Store(0)
	m.errorsTotal.Store(0)
	m.warningsTotal.Store(0)
	m.advisoriesTotal.Store(0)

	m.checkTiming.Range(func(key, _ any) bool {
		m.checkTiming.Delete(key)
		return true
	})
}
