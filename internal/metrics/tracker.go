package metrics

import (
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackerPending = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "competition",
		Name:      "pending_candidates",
		Help:      "Mint candidates currently pending in the mempool.",
	}, []string{"network"})

	trackerProcessed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "competition",
		Name:      "processed_transactions",
		Help:      "Mempool transactions already classified.",
	}, []string{"network"})

	trackerHighest = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "competition",
		Name:      "highest_fee_rate",
		Help:      "Highest confirmed winner fee rate in sat/vB.",
	}, []string{"network"})

	trackerWinnerFeeRate = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "competition",
		Name:      "winner_fee_rate",
		Help:      "Fee rate of block winners in sat/vB.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	trackerInvariantViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "competition",
		Name:      "invariant_violations_total",
		Help:      "Count of internal invariant violations.",
	}, []string{"network", "kind"})
)

// Tracker tracks competition state sizes and records.
type Tracker struct {
	network string
}

// NewTracker constructs a Tracker collector.
func NewTracker(network model.Network) *Tracker {
	return &Tracker{network: networkLabel(network)}
}

func (m Tracker) SetPending(count int) {
	trackerPending.WithLabelValues(m.network).Set(float64(count))
}

func (m Tracker) SetProcessed(count int) {
	trackerProcessed.WithLabelValues(m.network).Set(float64(count))
}

func (m Tracker) SetHighest(feeRate float64) {
	trackerHighest.WithLabelValues(m.network).Set(feeRate)
}

func (m Tracker) ObserveWinner(feeRate float64) {
	trackerWinnerFeeRate.WithLabelValues(m.network).Observe(feeRate)
}

// ObserveInvariantViolation counts an internal defect.
func (m Tracker) ObserveInvariantViolation(kind string) {
	trackerInvariantViolations.WithLabelValues(m.network, kind).Inc()
}
