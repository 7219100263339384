package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Gather metric names
const (
	MetricNameGatherEvents       = "gather_events_total"
	MetricNameGatherBoundaryFail = "gather_boundary_failures_total"
	MetricNameBonusRolls         = "bonus_rolls_total"
	MetricNameBonusItemsGranted  = "bonus_items_granted_total"
	MetricNameBonusCreateFailed  = "bonus_item_create_failures_total"
)

// Config metric names
const (
	MetricNameConfigReloads = "bonus_config_reloads_total"
	MetricNameActiveRules   = "bonus_active_rules"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Gather metric help text
const (
	HelpTextGatherEvents       = "Total number of gather hook invocations"
	HelpTextGatherBoundaryFail = "Total number of gather hook failures swallowed at the boundary"
	HelpTextBonusRolls         = "Total number of bonus entry rolls by outcome"
	HelpTextBonusItemsGranted  = "Total quantity of bonus items granted"
	HelpTextBonusCreateFailed  = "Total number of bonus items the host could not create"
)

// Config metric help text
const (
	HelpTextConfigReloads = "Total number of bonus config reloads by result"
	HelpTextActiveRules   = "Number of bonus rules in the active registry"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelHook     = "hook"
	LabelResource = "resource"
	LabelOutcome  = "outcome"
	LabelItem     = "item"
	LabelResult   = "result"
)

// Roll outcomes
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

// Reload results
const (
	ResultOK        = "ok"
	ResultDefaults  = "defaults"
	ResultError     = "error"
	ResultUnchanged = "unchanged"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
