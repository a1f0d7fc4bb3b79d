package metrics

import (
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mempoolScanCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "cycles_total",
		Help:      "Count of mempool scan cycles.",
	}, []string{"network", "status"})

	mempoolScanCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of mempool scan cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	mempoolScanSnapshotSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "snapshot_size",
		Help:      "Transactions in the last mempool snapshot.",
	}, []string{"network"})

	mempoolScanSelectedSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "prefilter_selected",
		Help:      "Transactions passing the prefilter in the last cycle.",
	}, []string{"network"})

	mempoolScanBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "batches_total",
		Help:      "Count of transaction batches fetched.",
	}, []string{"network", "status"})

	mempoolScanBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "batch_duration_seconds",
		Help:      "Duration of fetching one batch including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	mempoolScanBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "batch_size",
		Help:      "Transactions requested per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"network"})

	mempoolScanRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "retries_total",
		Help:      "Count of retried ledger calls.",
	}, []string{"network", "operation"})

	mempoolScanCandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_scanner",
		Name:      "candidates_total",
		Help:      "Count of new pending mint candidates.",
	}, []string{"network"})
)

// MempoolScanner tracks metrics for the mempool scanner.
type MempoolScanner struct {
	network string
}

// NewMempoolScanner constructs a MempoolScanner collector.
func NewMempoolScanner(network model.Network) *MempoolScanner {
	return &MempoolScanner{network: networkLabel(network)}
}

// ObserveCycle records one scan cycle.
func (m MempoolScanner) ObserveCycle(err error, started time.Time) {
	s := status(err)
	mempoolScanCycleTotal.WithLabelValues(m.network, s).Inc()
	mempoolScanCycleDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
}

// ObservePrefilter records the snapshot size and how many ids survived the prefilter.
func (m MempoolScanner) ObservePrefilter(snapshot, selected int) {
	mempoolScanSnapshotSize.WithLabelValues(m.network).Set(float64(snapshot))
	mempoolScanSelectedSize.WithLabelValues(m.network).Set(float64(selected))
}

// ObserveBatch records one batch fetch.
func (m MempoolScanner) ObserveBatch(err error, size int, started time.Time) {
	s := status(err)
	mempoolScanBatchTotal.WithLabelValues(m.network, s).Inc()
	mempoolScanBatchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	mempoolScanBatchSize.WithLabelValues(m.network).Observe(float64(size))
}

// ObserveRetry counts a retried ledger call.
func (m MempoolScanner) ObserveRetry(operation string) {
	mempoolScanRetriesTotal.WithLabelValues(m.network, operation).Inc()
}

// ObserveCandidates counts new pending candidates.
func (m MempoolScanner) ObserveCandidates(found int) {
	mempoolScanCandidatesTotal.WithLabelValues(m.network).Add(float64(found))
}
