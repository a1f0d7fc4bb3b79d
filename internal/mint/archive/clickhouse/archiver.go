package clickhouse

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/batcher"
	"go.uber.org/zap"
)

// DefaultBatcherConfig buffers up to one block's worth of rows per insert.
var DefaultBatcherConfig = batcher.Config{
	FlushSize:         500,
	FlushInterval:     5 * time.Second,
	FlushesPerSecond:  2,
	FinalFlushTimeout: 10 * time.Second,
}

// ArchivedKinds are the event kinds Run turns into rows. Subscribe the
// archiver losslessly to these so a large block cannot overflow its buffer.
var ArchivedKinds = []events.Kind{events.KindMintDetected, events.KindBlockWinner}

// Archiver turns confirmed candidate events into archived rows.
type Archiver struct {
	writer CandidateWriter
	cfg    batcher.Config
	logger *zap.Logger
}

// NewArchiver constructs an Archiver writing through writer.
func NewArchiver(writer CandidateWriter, cfg batcher.Config, logger *zap.Logger) *Archiver {
	return &Archiver{writer: writer, cfg: cfg, logger: logger.Named("archiver")}
}

// Run consumes sub until it is closed or ctx is done, then flushes what is
// buffered. The subscription is closed on return.
func (a *Archiver) Run(ctx context.Context, sub *events.Subscription) error {
	defer sub.Close()

	b := batcher.New(a.logger, a.cfg, a.writer.InsertCandidates)
	b.Start(ctx)
	defer func() {
		b.Stop()
		if dropped := sub.Dropped(); dropped > 0 {
			a.logger.Warn("events dropped before archiving", zap.Uint64("dropped", dropped))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-sub.Events():
			if !ok {
				return nil
			}
			row, ok := rowFor(e)
			if !ok {
				continue
			}
			if err := b.Add(ctx, row); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, batcher.ErrStopped) {
					return nil
				}
				return err
			}
		}
	}
}

func rowFor(e events.Event) (CandidateRow, bool) {
	switch ev := e.(type) {
	case events.MintDetected:
		return NewCandidateRow(RowMint, ev.Candidate)
	case events.BlockWinner:
		return NewCandidateRow(RowWinner, ev.Candidate)
	default:
		return CandidateRow{}, false
	}
}
