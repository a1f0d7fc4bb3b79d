// Package monitor owns the mint competition state and schedules the block
// and mempool scanners against it.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/mintwatch-backend/internal/clock"
	"github.com/goodnatureofminers/mintwatch-backend/internal/metrics"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/classifier"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/competition"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/service/scanner"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/retry"
	"go.uber.org/zap"
)

var (
	ErrAlreadyRunning = errors.New("monitor already running")
	ErrNotRunning     = errors.New("monitor not running")
)

// State is the lifecycle state of a Service.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
)

// Metrics groups the collectors of the components the service builds.
type Metrics struct {
	Blocks  scanner.BlockScannerMetrics
	Mempool scanner.MempoolScannerMetrics
	Tracker competition.Metrics
}

// NewMetrics returns the prometheus collectors for network.
func NewMetrics(network model.Network) Metrics {
	return Metrics{
		Blocks:  metrics.NewBlockScanner(network),
		Mempool: metrics.NewMempoolScanner(network),
		Tracker: metrics.NewTracker(network),
	}
}

// Status is a point-in-time view of the service.
type Status struct {
	State               State             `json:"state"`
	Network             model.Network     `json:"network"`
	NextHeight          uint64            `json:"nextHeight"`
	LastProcessedHeight *uint64           `json:"lastProcessedHeight,omitempty"`
	Tracker             competition.Stats `json:"tracker"`
	Blocks              ActivityStatus    `json:"blocks"`
	Mempool             ActivityStatus    `json:"mempool"`
	Subscribers         int               `json:"subscribers"`
}

// Service coordinates the scanners. It is an explicit object owned by its
// caller; several may run side by side against different ledgers.
type Service struct {
	cfg     Config
	logger  *zap.Logger
	tracker *competition.Tracker
	broker  *events.Broker
	blocks  *scanner.BlockScanner
	mempool *scanner.MempoolScanner

	mu          sync.Mutex
	state       State
	cancel      context.CancelFunc
	loops       sync.WaitGroup
	blockAct    *activity
	mempoolAct  *activity
	lastBlocks  ActivityStatus
	lastMempool ActivityStatus
	// positioned is set once the start height has been resolved. It is
	// only touched while the state is StateStarting.
	positioned bool
}

// New wires a Service around ledger. The matcher decides which data-carrier
// payloads are mint signals.
func New(cfg Config, ledger scanner.LedgerClient, matcher classifier.Matcher, m Metrics, clk clock.Clock, logger *zap.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System
	}
	logger = logger.With(zap.String("network", string(cfg.Network)))

	tracker := competition.New(competition.Config{
		HistoryCapacity:  cfg.HistoryCapacity,
		WinnerMinFeeRate: cfg.WinnerMinFeeRate,
	}, m.Tracker, clk, logger)
	broker := events.NewBroker(logger)
	cls := classifier.New(matcher)
	policy := retry.Policy{
		MaxAttempts: cfg.RetryMax,
		BaseDelay:   cfg.RetryBackoffBase,
		MaxDelay:    cfg.RetryBackoffMax,
	}

	blocks := scanner.NewBlockScanner(scanner.BlockConfig{
		Network:     cfg.Network,
		Retry:       policy,
		CallTimeout: cfg.RPCTimeout,
	}, logger, m.Blocks, ledger, cls, tracker, broker, clk)

	mempool := scanner.NewMempoolScanner(scanner.MempoolConfig{
		Network:          cfg.Network,
		MinFeeRate:       cfg.MinMempoolFeeRate,
		BatchSize:        cfg.BatchSize,
		BatchConcurrency: cfg.BatchConcurrency,
		BatchDelay:       cfg.BatchDelay,
		EntryTTL:         cfg.MempoolEntryTTL,
		TopK:             cfg.TopK,
		Retry:            policy,
		CallTimeout:      cfg.RPCTimeout,
	}, logger, m.Mempool, ledger, cls, tracker, broker, clk)

	return &Service{
		cfg:     cfg,
		logger:  logger.Named("monitor"),
		tracker: tracker,
		broker:  broker,
		blocks:  blocks,
		mempool: mempool,
		state:   StateStopped,
	}, nil
}

// Start resolves the initial height and schedules both scanners. On error
// the service is left stopped. Canceling ctx also ends scheduling; Stop must
// still be called to release the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateStopped {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.state = StateStarting
	s.mu.Unlock()

	// The configured start height only positions the first run; a restart
	// resumes where the block scanner stopped.
	next := s.blocks.NextHeight()
	resumed := s.positioned
	if !resumed {
		var err error
		next, err = s.resolveStartHeight(ctx)
		if err != nil {
			s.setState(StateStopped)
			return fmt.Errorf("resolve start height: %w", err)
		}
		s.blocks.SetNextHeight(next)
		s.positioned = true
	}

	runCtx, cancel := context.WithCancel(ctx)
	blockAct := newActivity("block_scan", s.cfg.BlockPollInterval, s.blocks.Scan, s.logger)
	mempoolAct := newActivity("mempool_scan", s.cfg.MempoolPollInterval, s.mempool.Scan, s.logger)

	s.mu.Lock()
	s.cancel = cancel
	s.blockAct = blockAct
	s.mempoolAct = mempoolAct
	s.state = StateRunning
	for _, a := range []*activity{blockAct, mempoolAct} {
		s.loops.Add(1)
		go func(a *activity) {
			defer s.loops.Done()
			a.loop(runCtx)
		}(a)
	}
	s.mu.Unlock()

	s.logger.Info("monitor started",
		zap.Uint64("start_height", next),
		zap.Bool("resumed", resumed),
		zap.Stringer("configured_start", s.cfg.StartHeight),
	)
	return nil
}

func (s *Service) resolveStartHeight(ctx context.Context) (uint64, error) {
	if h, ok := s.cfg.StartHeight.Height(); ok {
		return h, nil
	}
	return s.blocks.LatestHeight(ctx)
}

// Stop cancels scheduling and waits for in-flight cycles to return.
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	cancel, blockAct, mempoolAct := s.cancel, s.blockAct, s.mempoolAct
	s.mu.Unlock()

	cancel()
	s.loops.Wait()
	blockAct.wait()
	mempoolAct.wait()

	s.mu.Lock()
	s.lastBlocks = blockAct.snapshot()
	s.lastMempool = mempoolAct.snapshot()
	s.blockAct, s.mempoolAct, s.cancel = nil, nil, nil
	s.state = StateStopped
	s.mu.Unlock()

	s.logger.Info("monitor stopped")
	return nil
}

// Close ends every event subscription and stops the service if needed.
// The broker closes first so that a cycle waiting on a lossless subscriber
// can return.
func (s *Service) Close() error {
	s.broker.Close()
	err := s.Stop()
	if errors.Is(err, ErrNotRunning) {
		return nil
	}
	return err
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State returns the lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TriggerBlockScan requests an immediate block cycle. It reports false when
// the service is not running or a request is already queued.
func (s *Service) TriggerBlockScan() bool {
	s.mu.Lock()
	a := s.blockAct
	s.mu.Unlock()
	if a == nil {
		return false
	}
	return a.requestRun()
}

// Highest returns the all-time highest winner record.
func (s *Service) Highest() model.CompetitionRecord {
	return s.tracker.Highest()
}

// Pending returns the pending candidates, highest rate first.
func (s *Service) Pending() []model.MintCandidate {
	return s.tracker.Pending()
}

// TopPending returns up to k pending candidates with a known rate.
func (s *Service) TopPending(k int) []model.MintCandidate {
	return s.tracker.TopPending(k)
}

// RecentConfirmed returns up to limit block winners, newest first.
func (s *Service) RecentConfirmed(limit int) []model.MintCandidate {
	return s.tracker.RecentConfirmed(limit)
}

// Subscribe registers an event subscriber.
func (s *Service) Subscribe() *events.Subscription {
	return s.broker.Subscribe(s.cfg.SubscriberBuffer)
}

// SubscribeLossless registers a subscriber that receives every event of the
// given kinds. Scanning waits on it while its buffer is full.
func (s *Service) SubscribeLossless(kinds ...events.Kind) *events.Subscription {
	return s.broker.SubscribeLossless(s.cfg.SubscriberBuffer, kinds...)
}

// Status returns the current state, scanner position, and activity counters.
func (s *Service) Status() Status {
	s.mu.Lock()
	st := Status{
		State:   s.state,
		Network: s.cfg.Network,
		Blocks:  s.lastBlocks,
		Mempool: s.lastMempool,
	}
	blockAct, mempoolAct := s.blockAct, s.mempoolAct
	s.mu.Unlock()

	if blockAct != nil {
		st.Blocks = blockAct.snapshot()
	}
	if mempoolAct != nil {
		st.Mempool = mempoolAct.snapshot()
	}
	st.NextHeight = s.blocks.NextHeight()
	if h, ok := s.blocks.LastProcessedHeight(); ok {
		st.LastProcessedHeight = model.HeightPtr(h)
	}
	st.Tracker = s.tracker.Stats()
	st.Subscribers = s.broker.Subscribers()
	return st
}
