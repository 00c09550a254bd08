package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Wheel metric names
const (
	MetricNameSpinsTotal           = "wheel_spins_total"
	MetricNameSpinsRejectedTotal   = "wheel_spins_rejected_total"
	MetricNameRedemptionsTotal     = "wheel_redemptions_total"
	MetricNameRedemptionsFailed    = "wheel_redemptions_failed_total"
	MetricNameCodeValidationsTotal = "wheel_code_validations_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"
)

// Wheel metric help text
const (
	HelpTextSpinsTotal           = "Total number of completed wheel spins by section"
	HelpTextSpinsRejectedTotal   = "Total number of rejected spin attempts by reason"
	HelpTextRedemptionsTotal     = "Total number of successful discount code redemptions"
	HelpTextRedemptionsFailed    = "Total number of failed redemption attempts by reason"
	HelpTextCodeValidationsTotal = "Total number of structural code validations by verdict"
)

// Metric label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelSection = "section"
	LabelReason  = "reason"
	LabelVerdict = "verdict"
)

// HTTPLatencyBuckets covers the expected latency range of spin and
// redemption requests
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
