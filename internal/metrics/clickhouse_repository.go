package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of UTXO repository operations.",
	}, []string{"operation", "network", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of UTXO repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "network", "status"})
	clickhouseRepositoryRejectedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "rejected_rows_total",
		Help:      "Rows whose stored script type disagrees with the classified locking script.",
	}, []string{"network"})
)

// ClickhouseRepository tracks metrics for ClickHouse repository operations.
type ClickhouseRepository struct {
	network string
}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository(network model.Network) *ClickhouseRepository {
	return &ClickhouseRepository{network: networkLabel(network)}
}

// Observe records duration and status of a repository operation.
func (m ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	s := status(err)
	clickhouseRepositoryRequestsTotal.WithLabelValues(operation, m.network, s).Inc()
	clickhouseRepositoryRequestDuration.WithLabelValues(operation, m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveRejected counts rows dropped because their script type did not verify.
func (m ClickhouseRepository) ObserveRejected(count int) {
	if count <= 0 {
		return
	}
	clickhouseRepositoryRejectedRows.WithLabelValues(m.network).Add(float64(count))
}
