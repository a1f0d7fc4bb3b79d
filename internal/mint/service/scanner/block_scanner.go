// Package scanner drives confirmed block and mempool ingestion into the
// competition tracker.
package scanner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/clock"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/classifier"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/competition"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/feerate"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/retry"
	"go.uber.org/zap"
)

// BlockConfig configures a BlockScanner.
type BlockConfig struct {
	Network     model.Network
	Retry       retry.Policy
	CallTimeout time.Duration
}

// BlockScanner ingests confirmed blocks sequentially. Its position only
// moves past a height once that height was fully applied to the tracker.
type BlockScanner struct {
	logger     *zap.Logger
	metrics    BlockScannerMetrics
	ledger     LedgerClient
	classifier *classifier.Classifier
	tracker    *competition.Tracker
	publisher  Publisher
	clock      clock.Clock
	call       ledgerCall

	next      atomic.Uint64
	processed atomic.Bool
}

// NewBlockScanner constructs a BlockScanner. Call SetNextHeight before the first Scan.
func NewBlockScanner(
	cfg BlockConfig,
	logger *zap.Logger,
	metrics BlockScannerMetrics,
	ledger LedgerClient,
	cls *classifier.Classifier,
	tracker *competition.Tracker,
	publisher Publisher,
	clk clock.Clock,
) *BlockScanner {
	if clk == nil {
		clk = clock.System
	}
	l := logger.Named("block_scanner").With(zap.String("network", string(cfg.Network)))
	return &BlockScanner{
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

// SetNextHeight sets the first height the next Scan processes.
func (s *BlockScanner) SetNextHeight(height uint64) {
	s.next.Store(height)
}

// NextHeight returns the height the next Scan starts from.
func (s *BlockScanner) NextHeight() uint64 {
	return s.next.Load()
}

// LastProcessedHeight returns the last fully processed height, if any.
func (s *BlockScanner) LastProcessedHeight() (uint64, bool) {
	if !s.processed.Load() {
		return 0, false
	}
	return s.next.Load() - 1, true
}

// LatestHeight asks the ledger for its tip.
func (s *BlockScanner) LatestHeight(ctx context.Context) (uint64, error) {
	var tip uint64
	err := s.call.do(ctx, opGetHeight, func(ctx context.Context) error {
		var err error
		tip, err = s.ledger.GetHeight(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("get height: %w", err)
	}
	return tip, nil
}

// Scan processes every height from the current position up to the ledger
// tip. It stops at the first height that fails; that height is retried by
// the next Scan.
func (s *BlockScanner) Scan(ctx context.Context) (err error) {
	started := time.Now()
	processed := 0
	defer func() {
		s.metrics.ObserveCycle(err, processed, started)
	}()

	tip, err := s.LatestHeight(ctx)
	if err != nil {
		return err
	}

	for h := s.next.Load(); h <= tip; h++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.processHeight(ctx, h); err != nil {
			return fmt.Errorf("process height %d: %w", h, err)
		}
		s.next.Store(h + 1)
		s.processed.Store(true)
		s.metrics.SetLastProcessedHeight(h)
		processed++
	}
	return nil
}

func (s *BlockScanner) processHeight(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	mints := 0
	defer func() {
		s.metrics.ObserveHeight(err, height, mints, started)
	}()

	var block *model.Block
	err = s.call.do(ctx, opGetBlock, func(ctx context.Context) error {
		var err error
		block, err = s.ledger.GetBlockByHeight(ctx, height)
		return err
	})
	if err != nil {
		s.logger.Warn("block deferred to next cycle", zap.Uint64("height", height), zap.Error(err))
		return fmt.Errorf("get block: %w", err)
	}

	now := s.clock.Now()
	var candidates []model.MintCandidate
	for i, tx := range block.Transactions {
		outputIndex, ok := s.classifier.Classify(tx)
		if !ok {
			continue
		}
		candidates = append(candidates, model.MintCandidate{
			TxID:         tx.TxID,
			FeeRate:      feerate.Compute(tx),
			Sender:       tx.Sender(),
			Origin:       model.OriginBlock,
			BlockHeight:  model.HeightPtr(height),
			Position:     i,
			OutputIndex:  outputIndex,
			DiscoveredAt: now,
		})
	}
	mints = len(candidates)

	res := s.tracker.RecordConfirmed(height, candidates, block.TxIDs())

	s.publisher.Publish(events.BlockProcessed{Height: height, Hash: block.Hash, MintCount: mints})
	for _, c := range candidates {
		s.publisher.Publish(events.MintDetected{Candidate: c})
	}
	if res.Winner != nil {
		s.publisher.Publish(events.BlockWinner{Candidate: *res.Winner})
	}
	if res.HighestUpdated {
		s.publisher.Publish(events.HighestFeeUpdated{Record: res.Record})
	}

	fields := []zap.Field{
		zap.Uint64("height", height),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Transactions)),
		zap.Int("mints", mints),
		zap.Int("confirmed_pending", res.Confirmed),
	}
	if res.Winner != nil {
		fields = append(fields, zap.String("winner", res.Winner.TxID), zap.Stringer("winner_fee_rate", res.Winner.FeeRate))
	}
	s.logger.Info("block processed", fields...)
	return nil
}
