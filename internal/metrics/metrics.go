package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check Processing Metrics
var (
	// ChecksProcessedTotal tracks submitted checks by result (ok/error/rate_limited)
	ChecksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checks_processed_total",
			Help: "Total health checks processed by result (ok/error/rate_limited)",
		},
		[]string{"result"},
	)

	// CheckProcessingDuration tracks end-to-end check submission latency
	CheckProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "check_processing_duration_seconds",
			Help:    "Check submission duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// RiskVerdictsTotal tracks computed verdicts by risk level
	RiskVerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_verdicts_total",
			Help: "Total risk verdicts by level (none/medium/high)",
		},
		[]string{"level"},
	)

	// RuleMatchesTotal tracks individual rule matches by rule name
	RuleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_matches_total",
			Help: "Total rule matches by rule (allergy/medication_interaction)",
		},
		[]string{"rule"},
	)

	// VerdictFallbacksTotal tracks verdicts replaced by the safe default after a panic
	VerdictFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verdict_fallbacks_total",
			Help: "Total verdict computations that fell back to the safe default",
		},
	)

	// RateLimitedSubmissionsTotal tracks check submissions rejected by the rate limiter
	RateLimitedSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_submissions_total",
			Help: "Total check submissions rejected by the per-profile rate limiter",
		},
	)
)

// Insight Metrics
var (
	// StackingInsightsTotal tracks emitted stacking insights by functional class
	StackingInsightsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacking_insights_total",
			Help: "Total functional stacking insights emitted by class",
		},
		[]string{"class"},
	)

	// InsightQueryDuration tracks insight detection latency
	InsightQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insight_query_duration_seconds",
			Help:    "Insight detection duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// Knowledge Base Metrics
var (
	// KnowledgeLoadsTotal tracks knowledge file loads by source and status
	KnowledgeLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_loads_total",
			Help: "Total knowledge base loads by file and source (path/env/default)",
		},
		[]string{"file", "source"},
	)

	// KnowledgeOrphanAdviceEntries tracks advice entries pointing at unknown taxonomy targets
	KnowledgeOrphanAdviceEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_orphan_advice_entries",
			Help: "Number of advice entries whose target is missing from the taxonomy",
		},
	)
)

// Redis Operations Metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
