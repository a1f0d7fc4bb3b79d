// Package competition owns the pending, processed, and confirmed mint state.
package competition

import (
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/clock"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"go.uber.org/zap"
)

const (
	DefaultHistoryCapacity  = 100
	DefaultWinnerMinFeeRate = 1.0
)

// Invariant violation kinds reported to metrics.
const (
	ViolationHistoryCapacity   = "history_capacity"
	ViolationConfirmedPending  = "confirmed_pending"
	ViolationRecordDecreased   = "record_decreased"
	ViolationUnavailableWinner = "unavailable_winner"
)

// Config tunes the tracker.
type Config struct {
	HistoryCapacity int
	// WinnerMinFeeRate is the floor a block candidate's rate must strictly exceed to win.
	WinnerMinFeeRate float64
}

// ConfirmResult describes the effect of one confirmed block.
type ConfirmResult struct {
	Winner         *model.MintCandidate
	HighestUpdated bool
	Record         model.CompetitionRecord
	Confirmed      int
}

// Stats are the tracker's collection sizes.
type Stats struct {
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	History   int `json:"history"`
}

// Tracker is safe for concurrent use. Entries are inserted complete, so
// readers never observe a partially built candidate.
type Tracker struct {
	cfg     Config
	metrics Metrics
	clock   clock.Clock
	logger  *zap.Logger

	mu        sync.RWMutex
	pending   map[string]model.MintCandidate
	processed map[string]time.Time
	history   []model.MintCandidate
	highest   model.CompetitionRecord
}

// New constructs a Tracker.
func New(cfg Config, metrics Metrics, clk clock.Clock, logger *zap.Logger) *Tracker {
	if cfg.HistoryCapacity < 1 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if clk == nil {
		clk = clock.System
	}
	return &Tracker{
		cfg:       cfg,
		metrics:   metrics,
		clock:     clk,
		logger:    logger.Named("competition"),
		pending:   make(map[string]model.MintCandidate),
		processed: make(map[string]time.Time),
		history:   make([]model.MintCandidate, 0, cfg.HistoryCapacity),
	}
}

// RecordPending upserts a mempool candidate and reports whether it was new.
// An update keeps the earliest DiscoveredAt.
func (t *Tracker) RecordPending(c model.MintCandidate) bool {
	if c.TxID == "" {
		return false
	}
	c.Origin = model.OriginMempool
	c.BlockHeight = nil
	if c.Sender == "" {
		c.Sender = model.SenderUnknown
	}
	if c.DiscoveredAt.IsZero() {
		c.DiscoveredAt = t.clock.Now()
	}

	t.mu.Lock()
	prev, existed := t.pending[c.TxID]
	if existed && prev.DiscoveredAt.Before(c.DiscoveredAt) {
		c.DiscoveredAt = prev.DiscoveredAt
	}
	t.pending[c.TxID] = c
	pendingCount := len(t.pending)
	t.mu.Unlock()

	t.metrics.SetPending(pendingCount)
	return !existed
}

// RecordConfirmed applies one block. candidates are the block's mint
// candidates in block order and blockTxIDs every txid of the block. The
// winner is the first candidate whose rate exceeds WinnerMinFeeRate,
// regardless of higher rates later in the block.
func (t *Tracker) RecordConfirmed(height uint64, candidates []model.MintCandidate, blockTxIDs []string) ConfirmResult {
	var res ConfirmResult

	var winner *model.MintCandidate
	for i := range candidates {
		if candidates[i].FeeRate.Above(t.cfg.WinnerMinFeeRate) {
			w := candidates[i]
			w.Origin = model.OriginBlock
			if w.BlockHeight == nil {
				w.BlockHeight = model.HeightPtr(height)
			}
			if w.Sender == "" {
				w.Sender = model.SenderUnknown
			}
			winner = &w
			break
		}
	}

	t.mu.Lock()
	previous := t.highest
	if winner != nil {
		t.history = append(t.history, *winner)
		if over := len(t.history) - t.cfg.HistoryCapacity; over > 0 {
			t.history = append(t.history[:0], t.history[over:]...)
		}
		if winner.FeeRate.Greater(t.highest.FeeRate) {
			t.highest = model.CompetitionRecord{
				TxID:        winner.TxID,
				FeeRate:     winner.FeeRate,
				BlockHeight: model.HeightPtr(height),
				Timestamp:   t.clock.Now(),
			}
			res.HighestUpdated = true
		}
	}
	for _, id := range blockTxIDs {
		if _, ok := t.pending[id]; ok {
			delete(t.pending, id)
			res.Confirmed++
		}
		delete(t.processed, id)
	}
	for _, c := range candidates {
		if _, ok := t.pending[c.TxID]; ok {
			delete(t.pending, c.TxID)
			res.Confirmed++
		}
		delete(t.processed, c.TxID)
	}
	res.Record = t.highest
	violations := t.confirmedViolationsLocked(previous, winner, blockTxIDs)
	pendingCount, processedCount := len(t.pending), len(t.processed)
	t.mu.Unlock()

	res.Winner = winner
	t.metrics.SetPending(pendingCount)
	t.metrics.SetProcessed(processedCount)
	if winner != nil {
		rate, _ := winner.FeeRate.Value()
		t.metrics.ObserveWinner(rate)
	}
	if res.HighestUpdated {
		rate, _ := res.Record.FeeRate.Value()
		t.metrics.SetHighest(rate)
	}
	t.reportViolations(height, violations)

	return res
}

func (t *Tracker) confirmedViolationsLocked(previous model.CompetitionRecord, winner *model.MintCandidate, blockTxIDs []string) []string {
	var out []string
	if len(t.history) > t.cfg.HistoryCapacity {
		out = append(out, ViolationHistoryCapacity)
	}
	for _, id := range blockTxIDs {
		if _, ok := t.pending[id]; ok {
			out = append(out, ViolationConfirmedPending)
			break
		}
	}
	if previous.FeeRate.Greater(t.highest.FeeRate) {
		out = append(out, ViolationRecordDecreased)
	}
	if winner != nil && !winner.FeeRate.Valid() {
		out = append(out, ViolationUnavailableWinner)
	}
	return out
}

func (t *Tracker) reportViolations(height uint64, kinds []string) {
	for _, kind := range kinds {
		t.logger.Error("competition invariant violated",
			zap.String("kind", kind),
			zap.Uint64("height", height),
		)
		t.metrics.ObserveInvariantViolation(kind)
	}
}

// EvictStale drops pending and processed entries absent from current, and
// processed entries first marked more than ttl ago. A non-positive ttl
// disables age eviction.
func (t *Tracker) EvictStale(current map[string]struct{}, ttl time.Duration) (pendingEvicted, processedEvicted int) {
	now := t.clock.Now()

	t.mu.Lock()
	for id := range t.pending {
		if _, ok := current[id]; !ok {
			delete(t.pending, id)
			pendingEvicted++
		}
	}
	for id, at := range t.processed {
		_, present := current[id]
		if !present || (ttl > 0 && now.Sub(at) > ttl) {
			delete(t.processed, id)
			processedEvicted++
		}
	}
	pendingCount, processedCount := len(t.pending), len(t.processed)
	t.mu.Unlock()

	t.metrics.SetPending(pendingCount)
	t.metrics.SetProcessed(processedCount)
	return pendingEvicted, processedEvicted
}

// MarkProcessed records that txid was classified. The first mark wins so the
// TTL runs from first classification.
func (t *Tracker) MarkProcessed(txid string) {
	t.mu.Lock()
	if _, ok := t.processed[txid]; !ok {
		t.processed[txid] = t.clock.Now()
	}
	t.mu.Unlock()
}

// IsProcessed reports whether txid is in the processed set.
func (t *Tracker) IsProcessed(txid string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.processed[txid]
	return ok
}

// Highest returns the current record. It is Empty until a winner is seen.
func (t *Tracker) Highest() model.CompetitionRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r := t.highest
	if r.BlockHeight != nil {
		r.BlockHeight = model.HeightPtr(*r.BlockHeight)
	}
	return r
}

// Pending returns all pending candidates, highest rate first, unavailable
// rates last, ties by txid.
func (t *Tracker) Pending() []model.MintCandidate {
	t.mu.RLock()
	out := make([]model.MintCandidate, 0, len(t.pending))
	for _, c := range t.pending {
		out = append(out, c)
	}
	t.mu.RUnlock()

	sortByRate(out)
	return out
}

// TopPending returns up to k pending candidates with an available rate,
// highest first. k <= 0 returns all of them.
func (t *Tracker) TopPending(k int) []model.MintCandidate {
	t.mu.RLock()
	out := make([]model.MintCandidate, 0, len(t.pending))
	for _, c := range t.pending {
		if c.FeeRate.Valid() {
			out = append(out, c)
		}
	}
	t.mu.RUnlock()

	sortByRate(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// RecentConfirmed returns up to limit winners, newest first. limit <= 0 returns all.
func (t *Tracker) RecentConfirmed(limit int) []model.MintCandidate {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(t.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.MintCandidate, 0, n)
	for i := len(t.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, t.history[i])
	}
	return out
}

// Stats returns the current collection sizes.
func (t *Tracker) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Stats{
		Pending:   len(t.pending),
		Processed: len(t.processed),
		History:   len(t.history),
	}
}

func sortByRate(cs []model.MintCandidate) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i].FeeRate, cs[j].FeeRate
		if a.Greater(b) {
			return true
		}
		if b.Greater(a) {
			return false
		}
		return cs[i].TxID < cs[j].TxID
	})
}
