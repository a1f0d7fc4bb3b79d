package metrics

import (
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockScanCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "cycles_total",
		Help:      "Count of block scan cycles.",
	}, []string{"network", "status"})

	blockScanCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of block scan cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	blockScanHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "heights_total",
		Help:      "Count of block heights processed.",
	}, []string{"network", "status"})

	blockScanHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "height_duration_seconds",
		Help:      "Duration of processing one block height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	blockScanMintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "mints_total",
		Help:      "Count of mint candidates found in confirmed blocks.",
	}, []string{"network"})

	blockScanLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "last_processed_height",
		Help:      "Last block height processed successfully.",
	}, []string{"network"})

	blockScanRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_scanner",
		Name:      "retries_total",
		Help:      "Count of retried ledger calls.",
	}, []string{"network", "operation"})
)

// BlockScanner tracks metrics for the confirmed block scanner.
type BlockScanner struct {
	network string
}

// NewBlockScanner constructs a BlockScanner collector.
func NewBlockScanner(network model.Network) *BlockScanner {
	return &BlockScanner{network: networkLabel(network)}
}

// ObserveCycle records one scan cycle and how many heights it processed.
func (m BlockScanner) ObserveCycle(err error, heights int, started time.Time) {
	s := status(err)
	blockScanCycleTotal.WithLabelValues(m.network, s).Inc()
	blockScanCycleDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	blockScanHeightsTotal.WithLabelValues(m.network, "success").Add(float64(heights))
}

// ObserveHeight records one height attempt.
func (m BlockScanner) ObserveHeight(err error, _ uint64, mints int, started time.Time) {
	s := status(err)
	blockScanHeightDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		blockScanHeightsTotal.WithLabelValues(m.network, s).Inc()
		return
	}
	blockScanMintsTotal.WithLabelValues(m.network).Add(float64(mints))
}

// SetLastProcessedHeight exports the scanner position.
func (m BlockScanner) SetLastProcessedHeight(height uint64) {
	blockScanLastHeight.WithLabelValues(m.network).Set(float64(height))
}

// ObserveRetry counts a retried ledger call.
func (m BlockScanner) ObserveRetry(operation string) {
	blockScanRetriesTotal.WithLabelValues(m.network, operation).Inc()
}
