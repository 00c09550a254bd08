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

// Wheel Metrics
var (
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
		[]string{LabelSection},
	)

	SpinsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsRejectedTotal,
			Help: HelpTextSpinsRejectedTotal,
		},
		[]string{LabelReason},
	)

	Redemptions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRedemptionsTotal,
			Help: HelpTextRedemptionsTotal,
		},
	)

	RedemptionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRedemptionsFailed,
			Help: HelpTextRedemptionsFailed,
		},
		[]string{LabelReason},
	)

	CodeValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCodeValidationsTotal,
			Help: HelpTextCodeValidationsTotal,
		},
		[]string{LabelVerdict},
	)
)
