package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Ingestion Metrics
var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequests,
			Help: HelpTextUpstreamRequests,
		},
		[]string{LabelResource, LabelOutcome},
	)

	RecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecordsUpserted,
			Help: HelpTextRecordsUpserted,
		},
		[]string{LabelResource},
	)

	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRefreshRuns,
			Help: HelpTextRefreshRuns,
		},
		[]string{LabelOutcome},
	)
)

// Enrichment Metrics
var (
	Enrichments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEnrichments,
			Help: HelpTextEnrichments,
		},
		[]string{LabelOutcome},
	)

	EnrichmentsDetached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEnrichmentDetached,
			Help: HelpTextEnrichmentDetached,
		},
	)
)

// Query Metrics
var (
	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearches,
			Help: HelpTextSearches,
		},
		[]string{LabelKind},
	)

	DepthTruncations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDepthTruncations,
			Help: HelpTextDepthTruncations,
		},
	)
)
