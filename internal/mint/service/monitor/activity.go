package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ActivityStatus summarizes one periodic activity.
type ActivityStatus struct {
	Cycles    uint64    `json:"cycles"`
	Failures  uint64    `json:"failures"`
	Skipped   uint64    `json:"skipped"`
	LastRun   time.Time `json:"lastRun,omitempty"`
	LastError string    `json:"lastError,omitempty"`
}

// activity runs cycles on a ticker or on demand. At most one cycle runs at a
// time; a tick arriving while a cycle is in flight is dropped.
type activity struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
	logger   *zap.Logger

	trigger chan struct{}
	busy    sync.Mutex
	cycles  sync.WaitGroup

	statusMu sync.Mutex
	status   ActivityStatus
}

func newActivity(name string, interval time.Duration, run func(context.Context) error, logger *zap.Logger) *activity {
	return &activity{
		name:     name,
		interval: interval,
		run:      run,
		logger:   logger.With(zap.String("activity", name)),
		trigger:  make(chan struct{}, 1),
	}
}

// loop schedules cycles until ctx is done. The first cycle starts immediately.
func (a *activity) loop(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.tick(ctx)
		case <-a.trigger:
			a.tick(ctx)
		}
	}
}

// requestRun asks the loop for an extra cycle. It reports false when a
// request is already queued.
func (a *activity) requestRun() bool {
	select {
	case a.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (a *activity) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !a.busy.TryLock() {
		a.statusMu.Lock()
		a.status.Skipped++
		a.statusMu.Unlock()
		a.logger.Debug("previous cycle still running, tick skipped")
		return
	}

	a.cycles.Add(1)
	go func() {
		defer a.cycles.Done()
		defer a.busy.Unlock()

		started := time.Now()
		err := a.run(ctx)
		a.record(started, err)
		if err != nil && ctx.Err() == nil {
			a.logger.Warn("cycle failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		}
	}()
}

func (a *activity) record(started time.Time, err error) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.Cycles++
	a.status.LastRun = started
	if err != nil {
		a.status.Failures++
		a.status.LastError = err.Error()
		return
	}
	a.status.LastError = ""
}

// wait blocks until every started cycle has returned.
func (a *activity) wait() {
	a.cycles.Wait()
}

func (a *activity) snapshot() ActivityStatus {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.status
}
