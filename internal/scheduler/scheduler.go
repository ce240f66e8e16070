package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher is the single operation the scheduler drives.
type Refresher interface {
	RefreshPrices(ctx context.Context) error
}

// Scheduler fires a price refresh on a fixed period and then notifies
// registered observers so they can re-pull their snapshots. It runs
// for the lifetime of an open session and must be stopped on session
// teardown; a tick that fails to refresh still does not stop the loop.
type Scheduler struct {
	interval  time.Duration
	refresher Refresher
	onTick    []func()
	log       *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a scheduler. Observers registered via OnTick are invoked
// after every completed refresh, in registration order.
func New(interval time.Duration, refresher Refresher, log *zap.Logger) *Scheduler {
	return &Scheduler{
		interval:  interval,
		refresher: refresher,
		log:       log,
	}
}

// OnTick registers an observer callback. Not safe to call after Start.
func (s *Scheduler) OnTick(fn func()) {
	s.onTick = append(s.onTick, fn)
}

// Start launches the periodic loop. Calling Start on a running
// scheduler is a no-op; exactly one loop runs at a time.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("refresh scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			if err := s.refresher.RefreshPrices(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Error("price refresh failed", zap.Error(err))
				continue
			}
			for _, fn := range s.onTick {
				fn()
			}
		}
	}
}

// Stop cancels the loop and waits for it to exit. Idempotent; safe to
// call on a scheduler that never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}
