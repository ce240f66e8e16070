package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stoxly/stoxly/internal/scheduler"
)

// Session is one signed-in user's live context. It owns the refresh
// scheduler, which stops deterministically when the session closes.
type Session struct {
	ID        string
	Username  string
	StartedAt time.Time

	sched *scheduler.Scheduler
}

// Close stops the session's scheduler. Idempotent.
func (s *Session) Close() {
	s.sched.Stop()
}

// Manager holds at most one live session. Opening a new session tears
// down the previous one first, so two refresh timers never run against
// the same store.
type Manager struct {
	interval  time.Duration
	refresher scheduler.Refresher
	log       *zap.Logger

	mu     sync.Mutex
	onTick []func()
	active *Session
}

// NewManager creates a session manager. onTick observers are attached
// to every session's scheduler.
func NewManager(interval time.Duration, refresher scheduler.Refresher, log *zap.Logger, onTick ...func()) *Manager {
	return &Manager{
		interval:  interval,
		refresher: refresher,
		onTick:    onTick,
		log:       log,
	}
}

// OnTick registers an observer attached to every subsequently opened
// session's scheduler.
func (m *Manager) OnTick(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTick = append(m.onTick, fn)
}

// Open starts a session for username, replacing any currently open
// session. Calls arrive from concurrent HTTP handlers; the manager
// serializes them so the replaced session's scheduler is always
// stopped before the new one starts. The scheduler's lifetime is
// bounded by Close, not by any caller context.
func (m *Manager) Open(username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.log.Info("closing previous session", zap.String("username", m.active.Username))
		m.active.Close()
	}

	sched := scheduler.New(m.interval, m.refresher, m.log)
	for _, fn := range m.onTick {
		sched.OnTick(fn)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		StartedAt: time.Now(),
		sched:     sched,
	}
	sched.Start(context.Background())
	m.active = s

	m.log.Info("session opened",
		zap.String("session_id", s.ID),
		zap.String("username", username),
	)
	return s
}

// Active returns the current session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Close tears down the active session, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return
	}
	m.log.Info("session closed",
		zap.String("session_id", m.active.ID),
		zap.String("username", m.active.Username),
	)
	m.active.Close()
	m.active = nil
}
