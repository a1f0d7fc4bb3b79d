package events

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultBuffer is the subscription channel capacity used when none is given.
const DefaultBuffer = 64

// Broker fans published events out to subscribers. A regular subscriber
// whose buffer is full misses the event. A lossless subscriber instead holds
// Publish until it has room, so a stalled lossless consumer slows the
// publisher down.
type Broker struct {
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	// quit is closed before mu is taken in Close so that a Publish blocked
	// on a lossless subscriber releases its read lock.
	quit     chan struct{}
	quitOnce sync.Once
}

// NewBroker constructs a Broker.
func NewBroker(logger *zap.Logger) *Broker {
	return &Broker{
		logger: logger.Named("events"),
		subs:   make(map[*Subscription]struct{}),
		quit:   make(chan struct{}),
	}
}

// Subscription receives events until it is closed or the broker closes.
type Subscription struct {
	broker   *Broker
	ch       chan Event
	lossless bool
	kinds    map[Kind]struct{}
	dropped  atomic.Uint64
	once     sync.Once

	done     chan struct{}
	doneOnce sync.Once
}

// Subscribe registers a subscriber that misses events while its buffer is
// full. On a closed broker the returned subscription's channel is already
// closed.
func (b *Broker) Subscribe(buffer int) *Subscription {
	return b.subscribe(buffer, false, nil)
}

// SubscribeLossless registers a subscriber that receives every event of the
// given kinds, or of every kind when none are given. Publish waits for room
// in its buffer until the subscription or the broker is closed, so the
// consumer must keep reading or Close it.
func (b *Broker) SubscribeLossless(buffer int, kinds ...Kind) *Subscription {
	return b.subscribe(buffer, true, kinds)
}

func (b *Broker) subscribe(buffer int, lossless bool, kinds []Kind) *Subscription {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	s := &Subscription{
		broker:   b,
		ch:       make(chan Event, buffer),
		lossless: lossless,
		done:     make(chan struct{}),
	}
	if len(kinds) > 0 {
		s.kinds = make(map[Kind]struct{}, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = struct{}{}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Events returns the delivery channel. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Dropped is the number of events missed because the buffer was full.
// It stays zero for a lossless subscription.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) wants(k Kind) bool {
	if s.kinds == nil {
		return true
	}
	_, ok := s.kinds[k]
	return ok
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.doneOnce.Do(func() { close(s.done) })
	b := s.broker
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, s)
	s.once.Do(func() { close(s.ch) })
}

// Publish delivers e to every interested subscriber and returns how many
// received it. Only lossless subscribers can make it wait.
func (b *Broker) Publish(e Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0
	}

	delivered := 0
	for s := range b.subs {
		if !s.wants(e.Kind()) {
			continue
		}
		if s.lossless {
			select {
			case s.ch <- e:
				delivered++
			case <-s.done:
			case <-b.quit:
			}
			continue
		}
		select {
		case s.ch <- e:
			delivered++
		default:
			s.dropped.Add(1)
			b.logger.Debug("event dropped for slow subscriber", zap.String("kind", string(e.Kind())))
		}
	}
	return delivered
}

// Subscribers returns the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Later publishes are ignored.
func (b *Broker) Close() {
	b.quitOnce.Do(func() { close(b.quit) })
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.once.Do(func() { close(s.ch) })
		delete(b.subs, s)
	}
}
