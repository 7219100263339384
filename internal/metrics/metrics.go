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

// Gather Metrics
var (
	GatherEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGatherEvents,
			Help: HelpTextGatherEvents,
		},
		[]string{LabelHook},
	)

	GatherBoundaryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGatherBoundaryFail,
			Help: HelpTextGatherBoundaryFail,
		},
		[]string{LabelHook},
	)

	BonusRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusRolls,
			Help: HelpTextBonusRolls,
		},
		[]string{LabelResource, LabelOutcome},
	)

	BonusItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusItemsGranted,
			Help: HelpTextBonusItemsGranted,
		},
		[]string{LabelItem},
	)

	BonusCreateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusCreateFailed,
			Help: HelpTextBonusCreateFailed,
		},
		[]string{LabelItem},
	)
)

// Config Metrics
var (
	ConfigReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigReloads,
			Help: HelpTextConfigReloads,
		},
		[]string{LabelResult},
	)

	ActiveRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveRules,
			Help: HelpTextActiveRules,
		},
	)
)
