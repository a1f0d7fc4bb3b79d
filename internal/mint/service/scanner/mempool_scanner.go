package scanner

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/clock"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/classifier"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/competition"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/feerate"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/retry"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/workerpool"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// MempoolConfig configures a MempoolScanner.
type MempoolConfig struct {
	Network model.Network
	// MinFeeRate is the approximate sat/vB rate an entry needs to be fetched.
	MinFeeRate       float64
	BatchSize        int
	BatchConcurrency int
	// BatchDelay is the minimum spacing between batch starts.
	BatchDelay  time.Duration
	EntryTTL    time.Duration
	TopK        int
	Retry       retry.Policy
	CallTimeout time.Duration
}

// MempoolScanner classifies new mempool transactions in rate-bounded batches.
type MempoolScanner struct {
	cfg        MempoolConfig
	logger     *zap.Logger
	metrics    MempoolScannerMetrics
	ledger     LedgerClient
	classifier *classifier.Classifier
	tracker    *competition.Tracker
	publisher  Publisher
	clock      clock.Clock
	call       ledgerCall
}

// NewMempoolScanner constructs a MempoolScanner.
func NewMempoolScanner(
	cfg MempoolConfig,
	logger *zap.Logger,
	metrics MempoolScannerMetrics,
	ledger LedgerClient,
	cls *classifier.Classifier,
	tracker *competition.Tracker,
	publisher Publisher,
	clk clock.Clock,
) *MempoolScanner {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}
	if cfg.TopK < 1 {
		cfg.TopK = defaultTopK
	}
	if clk == nil {
		clk = clock.System
	}
	l := logger.Named("mempool_scanner").With(zap.String("network", string(cfg.Network)))
	return &MempoolScanner{
		cfg:        cfg,
		logger:     l,
		metrics:    metrics,
		ledger:     ledger,
		classifier: cls,
		tracker:    tracker,
		publisher:  publisher,
		clock:      clk,
		call:       newLedgerCall(l, cfg.Retry, cfg.CallTimeout, metrics.ObserveRetry),
	}
}

// Scan runs one mempool cycle. A batch that still fails after its retries is
// left unmarked so its ids qualify again on the next cycle.
func (s *MempoolScanner) Scan(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCycle(err, started)
	}()

	var snapshot model.MempoolSnapshot
	err = s.call.do(ctx, opGetMempool, func(ctx context.Context) error {
		var err error
		snapshot, err = s.ledger.GetMempoolSnapshot(ctx, true)
		return err
	})
	if err != nil {
		return fmt.Errorf("get mempool snapshot: %w", err)
	}

	selected := s.prefilter(snapshot)
	s.metrics.ObservePrefilter(len(snapshot), len(selected))

	batches := chunk(selected, s.cfg.BatchSize)
	limiter := ratelimit.NewUnlimited()
	if s.cfg.BatchDelay > 0 {
		limiter = ratelimit.New(1, ratelimit.Per(s.cfg.BatchDelay), ratelimit.WithoutSlack)
	}

	var found atomic.Int64
	batchErr := workerpool.Process(ctx, s.cfg.BatchConcurrency, batches, func(ctx context.Context, ids []string) error {
		limiter.Take()
		n, err := s.processBatch(ctx, ids)
		found.Add(int64(n))
		return err
	})
	s.metrics.ObserveCandidates(int(found.Load()))

	if err := ctx.Err(); err != nil {
		return err
	}

	pendingEvicted, processedEvicted := s.tracker.EvictStale(snapshot.IDs(), s.cfg.EntryTTL)
	top := s.tracker.TopPending(s.cfg.TopK)
	stats := s.tracker.Stats()
	s.publisher.Publish(events.MempoolUpdated{Count: stats.Pending, Top: top})

	s.logger.Debug("mempool scanned",
		zap.Int("snapshot", len(snapshot)),
		zap.Int("selected", len(selected)),
		zap.Int("batches", len(batches)),
		zap.Int64("new_candidates", found.Load()),
		zap.Int("pending", stats.Pending),
		zap.Int("pending_evicted", pendingEvicted),
		zap.Int("processed_evicted", processedEvicted),
	)

	if batchErr != nil {
		return fmt.Errorf("mempool batches: %w", batchErr)
	}
	return nil
}

// prefilter keeps unprocessed ids whose approximate rate reaches MinFeeRate,
// highest approximate rate first.
func (s *MempoolScanner) prefilter(snapshot model.MempoolSnapshot) []string {
	type ranked struct {
		id   string
		rate float64
	}
	selected := make([]ranked, 0, len(snapshot))
	for id, entry := range snapshot {
		rate, ok := feerate.Approximate(entry).Value()
		if ok && rate < s.cfg.MinFeeRate {
			continue
		}
		if !ok && s.cfg.MinFeeRate > 0 {
			continue
		}
		if s.tracker.IsProcessed(id) {
			continue
		}
		selected = append(selected, ranked{id: id, rate: rate})
	}
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].rate != selected[j].rate {
			return selected[i].rate > selected[j].rate
		}
		return selected[i].id < selected[j].id
	})

	ids := make([]string, len(selected))
	for i, r := range selected {
		ids[i] = r.id
	}
	return ids
}

// processBatch fetches one batch and applies each candidate to the tracker
// as soon as it is classified.
func (s *MempoolScanner) processBatch(ctx context.Context, ids []string) (int, error) {
	started := time.Now()

	var txs map[string]model.Transaction
	err := s.call.do(ctx, opGetTransactionsBatch, func(ctx context.Context) error {
		var err error
		txs, err = s.ledger.GetTransactionsBatch(ctx, ids)
		return err
	})
	s.metrics.ObserveBatch(err, len(ids), started)
	if err != nil {
		s.logger.Warn("mempool batch deferred to next cycle", zap.Int("size", len(ids)), zap.Error(err))
		return 0, fmt.Errorf("get transactions batch: %w", err)
	}

	found := 0
	for _, id := range ids {
		tx, ok := txs[id]
		if !ok {
			continue
		}
		if outputIndex, ok := s.classifier.Classify(tx); ok {
			c := model.MintCandidate{
				TxID:         id,
				FeeRate:      feerate.Compute(tx),
				Sender:       tx.Sender(),
				Origin:       model.OriginMempool,
				Position:     -1,
				OutputIndex:  outputIndex,
				DiscoveredAt: s.clock.Now(),
			}
			if s.tracker.RecordPending(c) {
				found++
				s.logger.Info("pending mint detected",
					zap.String("txid", id),
					zap.Stringer("fee_rate", c.FeeRate),
					zap.String("sender", c.Sender),
				)
			}
		}
		s.tracker.MarkProcessed(id)
	}
	return found, nil
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
