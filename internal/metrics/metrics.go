package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Round metrics
var (
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsTotal,
			Help: HelpTextRoundsTotal,
		},
		[]string{LabelState},
	)
)

// Wallet metrics
var (
	WalletCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletCallsTotal,
			Help: HelpTextWalletCallsTotal,
		},
		[]string{LabelType, LabelOutcome},
	)

	WalletCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameWalletCallDuration,
			Help:    HelpTextWalletCallDuration,
			Buckets: WalletLatencyBuckets,
		},
		[]string{LabelType},
	)
)

// Session metrics
var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	ConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConnectionsTotal,
			Help: HelpTextConnectionsTotal,
		},
		[]string{LabelResult},
	)
)
