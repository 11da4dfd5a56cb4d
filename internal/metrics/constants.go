package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Ingestion metric names
const (
	MetricNameUpstreamRequests = "upstream_requests_total"
	MetricNameRecordsUpserted  = "codex_records_upserted_total"
	MetricNameRefreshRuns      = "codex_refresh_runs_total"
)

// Enrichment metric names
const (
	MetricNameEnrichments        = "recipe_enrichments_total"
	MetricNameEnrichmentDetached = "recipe_enrichments_detached_total"
)

// Query metric names
const (
	MetricNameSearches         = "codex_searches_total"
	MetricNameDepthTruncations = "material_resolver_depth_truncations_total"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelResource = "resource"
	LabelOutcome  = "outcome"
	LabelKind     = "kind"
)

// Outcome label values
const (
	OutcomeOK             = "ok"
	OutcomeError          = "error"
	OutcomeEnriched       = "enriched"
	OutcomeConfirmedEmpty = "confirmed_empty"
	OutcomeFailed         = "failed"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextUpstreamRequests     = "Total number of upstream codex API requests"
	HelpTextRecordsUpserted      = "Total number of codex records upserted into the cache"
	HelpTextRefreshRuns          = "Total number of full refresh runs"
	HelpTextEnrichments          = "Total number of recipe enrichment attempts"
	HelpTextEnrichmentDetached   = "Total number of on-demand enrichments detached to the background"
	HelpTextSearches             = "Total number of name searches served"
	HelpTextDepthTruncations     = "Total number of material resolutions truncated at the depth bound"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
