// Package metrics exposes Prometheus counters for pipeline activity.
// Registration happens at import time; the batch command serves them
// when a metrics address is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indago_runs_total",
			Help: "Total number of research runs",
		},
		[]string{"status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "indago_run_duration_seconds",
			Help:    "End-to-end research run duration in seconds",
			Buckets: []float64{5, 10, 20, 30, 60, 120, 300},
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indago_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// Search metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indago_search_requests_total",
			Help: "Total number of meta-search requests",
		},
		[]string{"status"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "indago_search_results_per_query",
			Help:    "Number of deduplicated results per research query",
			Buckets: []float64{0, 3, 6, 12, 24, 48},
		},
	)

	// Scrape metrics
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indago_fetches_total",
			Help: "Total number of page fetch attempts",
		},
		[]string{"status"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "indago_cache_hits_total",
			Help: "Total number of page cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "indago_cache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// LLM metrics
	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indago_llm_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"kind", "status"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indago_llm_call_duration_seconds",
			Help:    "LLM call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	FactcheckRevisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "indago_factcheck_revisions_total",
			Help: "Total number of answers regenerated after a failed fact-check",
		},
	)

	// Evidence metrics
	EvidenceEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indago_evidence_entries_total",
			Help: "Total number of evidence matrix entries",
		},
		[]string{"confidence"},
	)
)

// Fetch statuses recorded by the scrape layer.
const (
	FetchOK            = "ok"
	FetchRobotsBlocked = "robots_blocked"
	FetchSkipped       = "skipped"
	FetchError         = "error"
)

// RecordRun records one finished research run.
func RecordRun(status string, durationSeconds float64) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(durationSeconds)
}

// RecordStage records the duration of one pipeline stage.
func RecordStage(stage string, durationSeconds float64) {
	StageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordSearch records one meta-search request.
func RecordSearch(status string) {
	SearchRequests.WithLabelValues(status).Inc()
}

// RecordFetch records one page fetch attempt.
func RecordFetch(status string) {
	FetchesTotal.WithLabelValues(status).Inc()
}

// RecordLLMCall records one LLM call.
func RecordLLMCall(kind, status string, durationSeconds float64) {
	LLMCalls.WithLabelValues(kind, status).Inc()
	if durationSeconds > 0 {
		LLMCallDuration.WithLabelValues(kind).Observe(durationSeconds)
	}
}

// RecordEvidence records evidence entries grouped by confidence.
func RecordEvidence(confidence string, count int) {
	if count > 0 {
		EvidenceEntries.WithLabelValues(confidence).Add(float64(count))
	}
}
