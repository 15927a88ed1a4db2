package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

var (
	bundleBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bundle",
		Name:      "builds_total",
		Help:      "Count of token bundle builds.",
	}, []string{"network", "status"})
	bundleBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bundle",
		Name:      "build_duration_seconds",
		Help:      "Duration of token bundle builds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	bundleTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bundle",
		Name:      "transactions",
		Help:      "Transactions per successful bundle.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
	}, []string{"network"})
	bundleFeeSatoshis = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bundle",
		Name:      "fee_satoshis_total",
		Help:      "Fees paid by successful bundles.",
	}, []string{"network"})
)

// Bundle tracks metrics for bundle builds.
type Bundle struct {
	network string
}

// NewBundle creates a Bundle metrics collector.
func NewBundle(network model.Network) *Bundle {
	return &Bundle{network: networkLabel(network)}
}

// Observe records one build. transactions and fee are only recorded on success.
func (m Bundle) Observe(err error, transactions int, fee uint64, started time.Time) {
	s := status(err)
	bundleBuildsTotal.WithLabelValues(m.network, s).Inc()
	bundleBuildDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	bundleTransactions.WithLabelValues(m.network).Observe(float64(transactions))
	bundleFeeSatoshis.WithLabelValues(m.network).Add(float64(fee))
}
