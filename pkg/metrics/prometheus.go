package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchDuration     *prometheus.HistogramVec
	cacheOps          *prometheus.CounterVec
	rateLimitWait     *prometheus.HistogramVec
	scansTotal        *prometheus.CounterVec
	enrichmentFailure *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketscan_fetch_duration_seconds",
				Help:    "Duration of upstream fetch operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "source"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketscan_cache_requests_total",
				Help: "Cache lookups by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		rateLimitWait: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketscan_rate_limit_wait_seconds",
				Help:    "Time spent waiting on upstream rate limiters",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"source"},
		),
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketscan_scans_total",
				Help: "Completed scan attempts by result",
			},
			[]string{"result"},
		),
		enrichmentFailure: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketscan_enrichment_failures_total",
				Help: "Summarizer enrichment failures by stage",
			},
			[]string{"stage"},
		),
	}
}

// RecordFetch records the duration of an upstream fetch.
func (r *Recorder) RecordFetch(op, source string, seconds float64) {
	r.fetchDuration.WithLabelValues(op, source).Observe(seconds)
}

// RecordCache records a cache lookup outcome.
func (r *Recorder) RecordCache(op string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheOps.WithLabelValues(op, outcome).Inc()
}

// RecordRateLimitWait records time spent blocked on a rate limiter.
func (r *Recorder) RecordRateLimitWait(source string, seconds float64) {
	r.rateLimitWait.WithLabelValues(source).Observe(seconds)
}

// RecordScan records a completed scan attempt.
func (r *Recorder) RecordScan(result string) {
	r.scansTotal.WithLabelValues(result).Inc()
}

// RecordEnrichmentFailure records a non-fatal summarizer failure.
func (r *Recorder) RecordEnrichmentFailure(stage string) {
	r.enrichmentFailure.WithLabelValues(stage).Inc()
}
