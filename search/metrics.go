package search

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics provides Prometheus-compatible metrics for search
// execution.
//
// Metrics exposed (all namespaced with "search_"):
//
//  1. expansions_total (counter): Nodes expanded. Labels: algorithm.
//  2. reopened_total (counter): Visited states reopened by a cheaper path. Labels: algorithm.
//  3. stale_discards_total (counter): Superseded frontier entries skipped. Labels: algorithm.
//  4. runs_total (counter): Finished searches. Labels: algorithm, outcome (found/exhausted).
//  5. frontier_size (gauge): Frontier entries after the last step.
//  6. visited_size (gauge): Distinct visited states after the last step.
//  7. step_latency_seconds (histogram): Duration of one Step. Labels: algorithm.
//  8. path_length (histogram): States on found paths. Labels: algorithm.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, _ := search.New(policy, search.WithMetrics(metrics))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// A nil *PrometheusMetrics is valid and records nothing.
type PrometheusMetrics struct {
	frontierSize prometheus.Gauge
	visitedSize  prometheus.Gauge

	stepLatency *prometheus.HistogramVec
	pathLength  *prometheus.HistogramVec

	expansions *prometheus.CounterVec
	reopened   *prometheus.CounterVec
	stale      *prometheus.CounterVec
	runs       *prometheus.CounterVec

	registry prometheus.Registerer

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers all search metrics with the
// provided registry. A nil registry uses prometheus.DefaultRegisterer.
//
// Registering twice on the same registry panics, as with any promauto
// collector; use one PrometheusMetrics per registry and share it between
// engines.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{
		registry: registry,
		enabled:  true,
	}

	pm.frontierSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "search",
		Name:      "frontier_size",
		Help:      "Number of entries in the search frontier after the last step",
	})

	pm.visitedSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "search",
		Name:      "visited_size",
		Help:      "Number of distinct states recorded as visited after the last step",
	})

	pm.stepLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "search",
		Name:      "step_latency_seconds",
		Help:      "Duration of a single search step",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10), // 1µs to ~260ms
	}, []string{"algorithm"})

	pm.pathLength = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "search",
		Name:      "path_length",
		Help:      "Number of states on solution paths",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
	}, []string{"algorithm"})

	pm.expansions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "expansions_total",
		Help:      "Cumulative count of expanded nodes",
	}, []string{"algorithm"})

	pm.reopened = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "reopened_total",
		Help:      "Visited states re-queued because a cheaper path was found",
	}, []string{"algorithm"})

	pm.stale = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "stale_discards_total",
		Help:      "Superseded frontier entries discarded on extraction",
	}, []string{"algorithm"})

	pm.runs = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "search",
		Name:      "runs_total",
		Help:      "Finished searches by outcome",
	}, []string{"algorithm", "outcome"}) // outcome: found, exhausted

	return pm
}

func (pm *PrometheusMetrics) on() bool {
	if pm == nil {
		return false
	}
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// IncExpansions counts one expanded node.
func (pm *PrometheusMetrics) IncExpansions(algorithm string) {
	if !pm.on() {
		return
	}
	pm.expansions.WithLabelValues(algorithm).Inc()
}

// IncReopened counts one reopened state.
func (pm *PrometheusMetrics) IncReopened(algorithm string) {
	if !pm.on() {
		return
	}
	pm.reopened.WithLabelValues(algorithm).Inc()
}

// IncStale counts one discarded stale frontier entry.
func (pm *PrometheusMetrics) IncStale(algorithm string) {
	if !pm.on() {
		return
	}
	pm.stale.WithLabelValues(algorithm).Inc()
}

// RecordRun counts a finished search. outcome is "found" or "exhausted".
func (pm *PrometheusMetrics) RecordRun(algorithm, outcome string) {
	if !pm.on() {
		return
	}
	pm.runs.WithLabelValues(algorithm, outcome).Inc()
}

// UpdateSizes sets the frontier and visited gauges.
func (pm *PrometheusMetrics) UpdateSizes(frontier, visited int) {
	if !pm.on() {
		return
	}
	pm.frontierSize.Set(float64(frontier))
	pm.visitedSize.Set(float64(visited))
}

// ObserveStep records the duration of one Step call.
func (pm *PrometheusMetrics) ObserveStep(algorithm string, d time.Duration) {
	if !pm.on() {
		return
	}
	pm.stepLatency.WithLabelValues(algorithm).Observe(d.Seconds())
}

// ObservePathLength records the number of states on a found path.
func (pm *PrometheusMetrics) ObservePathLength(algorithm string, states int) {
	if !pm.on() {
		return
	}
	pm.pathLength.WithLabelValues(algorithm).Observe(float64(states))
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable().
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}

// Reset clears the gauges. Counters and histograms are cumulative and keep
// their values.
func (pm *PrometheusMetrics) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.frontierSize.Set(0)
	pm.visitedSize.Set(0)
}
