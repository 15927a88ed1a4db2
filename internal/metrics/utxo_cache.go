package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

var (
	utxoCacheOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "utxo_cache",
		Name:      "operations_total",
		Help:      "Count of UTXO cache operations.",
	}, []string{"operation", "network", "status"})
	utxoCacheOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "utxo_cache",
		Name:      "operation_duration_seconds",
		Help:      "Duration of UTXO cache operations, lock wait included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
	utxoCacheSelectedOutputs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "utxo_cache",
		Name:      "selected_outputs",
		Help:      "Number of outputs returned by a coin selection.",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
	}, []string{"network"})
	utxoCacheReservedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "utxo_cache",
		Name:      "reserved_total",
		Help:      "Outputs marked as reserved, by marker kind.",
	}, []string{"network", "kind"})
)

// UtxoCache tracks metrics for coin selection.
type UtxoCache struct {
	network string
}

// NewUtxoCache creates a UtxoCache metrics collector.
func NewUtxoCache(network model.Network) *UtxoCache {
	return &UtxoCache{network: networkLabel(network)}
}

// Observe records duration and status of a cache operation.
func (m UtxoCache) Observe(operation string, err error, started time.Time) {
	s := status(err)
	utxoCacheOperationsTotal.WithLabelValues(operation, m.network, s).Inc()
	utxoCacheOperationDuration.WithLabelValues(operation, m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveSelected records the size of a selection.
func (m UtxoCache) ObserveSelected(count int) {
	utxoCacheSelectedOutputs.WithLabelValues(m.network).Observe(float64(count))
}

// ObserveReserved counts newly reserved outputs of a marker kind.
func (m UtxoCache) ObserveReserved(kind string, count int) {
	if count <= 0 {
		return
	}
	utxoCacheReservedTotal.WithLabelValues(m.network, kind).Add(float64(count))
}
