package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

// RowKind tells whether a row records a detected mint or a block winner.
type RowKind string

var (
	RowMint   RowKind = "mint"
	RowWinner RowKind = "winner"
)

// CandidateRow is one archived confirmed candidate.
type CandidateRow struct {
	Kind         RowKind
	TxID         string
	BlockHeight  uint64
	Position     uint32
	OutputIndex  uint32
	FeeRate      *float64
	Sender       string
	DiscoveredAt time.Time
}

// NewCandidateRow maps a confirmed candidate. It reports false for
// candidates that were never confirmed.
func NewCandidateRow(kind RowKind, c model.MintCandidate) (CandidateRow, bool) {
	if c.BlockHeight == nil || c.Position < 0 {
		return CandidateRow{}, false
	}
	return CandidateRow{
		Kind:         kind,
		TxID:         c.TxID,
		BlockHeight:  *c.BlockHeight,
		Position:     uint32(c.Position),
		OutputIndex:  c.OutputIndex,
		FeeRate:      c.FeeRate.Ptr(),
		Sender:       c.Sender,
		DiscoveredAt: c.DiscoveredAt,
	}, true
}

const insertCandidatesQuery = `
INSERT INTO mint_candidates (
	network,
	kind,
	txid,
	block_height,
	position,
	output_index,
	fee_rate,
	sender,
	discovered_at
) VALUES`

// InsertCandidates stores candidate rows in ClickHouse.
func (r *Repository) InsertCandidates(ctx context.Context, rows []CandidateRow) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_candidates", r.network, len(rows), err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertCandidatesQuery)
	if err != nil {
		return fmt.Errorf("prepare candidates batch: %w", err)
	}

	for _, row := range rows {
		if err = batch.Append(
			string(r.network),
			string(row.Kind),
			row.TxID,
			row.BlockHeight,
			row.Position,
			row.OutputIndex,
			row.FeeRate,
			row.Sender,
			row.DiscoveredAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append candidate %s: %w", row.TxID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert candidates: %w", err)
	}
	return nil
}
