// Package prom exposes engine metrics as a Prometheus collector.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	bv "github.com/ga4gh-metadata/validator"
)

// Collector adapts bv.Metrics to the Prometheus collection model. Values
// are read from a point-in-time snapshot on every scrape.
type Collector struct {
	metrics *bv.Metrics

	recordsTotal    *prometheus.Desc
	recordsValid    *prometheus.Desc
	batchesTotal    *prometheus.Desc
	issuesTotal     *prometheus.Desc
	recordSeconds   *prometheus.Desc
	cacheHitsTotal  *prometheus.Desc
	checkRunsTotal  *prometheus.Desc
	checkIssues     *prometheus.Desc
	checkAvgSeconds *prometheus.Desc
}

// NewCollector creates a collector over the given engine metrics.
func NewCollector(m *bv.Metrics) *Collector {
	return &Collector{
		metrics: m,
		recordsTotal: prometheus.NewDesc(
			"biovalidator_records_total",
			"Records validated.",
			nil, nil),
		recordsValid: prometheus.NewDesc(
			"biovalidator_records_valid_total",
			"Records that validated without errors.",
			nil, nil),
		batchesTotal: prometheus.NewDesc(
			"biovalidator_batches_total",
			"Batch validation passes.",
			nil, nil),
		issuesTotal: prometheus.NewDesc(
			"biovalidator_issues_total",
			"Issues reported, by severity.",
			[]string{"severity"}, nil),
		recordSeconds: prometheus.NewDesc(
			"biovalidator_record_seconds_avg",
			"Average per-record validation time in seconds.",
			nil, nil),
		cacheHitsTotal: prometheus.NewDesc(
			"biovalidator_vocab_cache_hits_total",
			"Vocabulary cache hits and misses.",
			[]string{"outcome"}, nil),
		checkRunsTotal: prometheus.NewDesc(
			"biovalidator_check_runs_total",
			"Check invocations, by check.",
			[]string{"check"}, nil),
		checkIssues: prometheus.NewDesc(
			"biovalidator_check_issues_total",
			"Issues found, by check.",
			[]string{"check"}, nil),
		checkAvgSeconds: prometheus.NewDesc(
			"biovalidator_check_seconds_avg",
			"Average check execution time in seconds, by check.",
			[]string{"check"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.recordsTotal
	ch <- c.recordsValid
	ch <- c.batchesTotal
	ch <- c.issuesTotal
	ch <- c.recordSeconds
	ch <- c.cacheHitsTotal
	ch <- c.checkRunsTotal
	ch <- c.checkIssues
	ch <- c.checkAvgSeconds
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.metrics.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.recordsTotal, prometheus.CounterValue, float64(snap.RecordsTotal))
	ch <- prometheus.MustNewConstMetric(c.recordsValid, prometheus.CounterValue, float64(snap.RecordsValid))
	ch <- prometheus.MustNewConstMetric(c.batchesTotal, prometheus.CounterValue, float64(snap.BatchesTotal))
	ch <- prometheus.MustNewConstMetric(c.recordSeconds, prometheus.GaugeValue, float64(snap.AvgRecordTimeNs)/1e9)

	ch <- prometheus.MustNewConstMetric(c.issuesTotal, prometheus.CounterValue, float64(snap.ErrorsTotal), "error")
	ch <- prometheus.MustNewConstMetric(c.issuesTotal, prometheus.CounterValue, float64(snap.WarningsTotal), "warning")
	ch <- prometheus.MustNewConstMetric(c.issuesTotal, prometheus.CounterValue, float64(snap.AdvisoriesTotal), "advisory")

	ch <- prometheus.MustNewConstMetric(c.cacheHitsTotal, prometheus.CounterValue, float64(snap.CacheHits), "hit")
	ch <- prometheus.MustNewConstMetric(c.cacheHitsTotal, prometheus.CounterValue, float64(snap.CacheMisses), "miss")

	for _, check := range snap.Checks {
		ch <- prometheus.MustNewConstMetric(c.checkRunsTotal, prometheus.CounterValue, float64(check.Invocations), check.Name)
		ch <- prometheus.MustNewConstMetric(c.checkIssues, prometheus.CounterValue, float64(check.IssuesFound), check.Name)
		ch <- prometheus.MustNewConstMetric(c.checkAvgSeconds, prometheus.GaugeValue, check.AvgTime.Seconds(), check.Name)
	}
}
