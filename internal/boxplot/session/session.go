package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/event"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkglog"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkguid"
)

// DefaultMaxSessions is used when Config.MaxSessions is not positive.
const DefaultMaxSessions = 256

// DefaultIdleTTL is used when Config.IdleTTL is not positive.
const DefaultIdleTTL = 30 * time.Minute

const loopBuffer = 16

// Session is one browser's isolated state plus the loop that serializes its events.
type Session struct {
	ID        string
	Store     *Store
	CreatedAt time.Time

	loop     *event.Loop[*Store]
	lastSeen atomic.Int64
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// LastSeen is when the session was last started or resumed.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Dispatch runs the named event against this session's store.
func (s *Session) Dispatch(ctx context.Context, name string, payload any) (any, error) {
	return s.loop.Dispatch(pkglog.SetSessionID(ctx, s.ID), name, payload)
}

type Config struct {
	MaxSessions int
	// IdleTTL is how long a session may go without a request before it ends.
	IdleTTL time.Duration
}

type Dependency struct {
	Config   Config
	Registry *event.Registry[*Store]
	Runner   event.Runner
	ID       pkguid.StringID
	Clock    func() time.Time
}

// Manager creates, finds and ends sessions.
type Manager struct {
	registry *event.Registry[*Store]
	runner   event.Runner
	id       pkguid.StringID
	now      func() time.Time
	max      int
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(dep Dependency) *Manager {
	maxSessions := dep.Config.MaxSessions
	if maxSessions < 1 {
		maxSessions = DefaultMaxSessions
	}

	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	now := dep.Clock
	if now == nil {
		now = time.Now
	}

	ttl := dep.Config.IdleTTL
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}

	return &Manager{
		registry: dep.Registry,
		runner:   dep.Runner,
		id:       id,
		now:      now,
		max:      maxSessions,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Start creates a session with an empty store and starts its loop. At the
// session limit it first ends every idle session, or the least recently seen one.
func (m *Manager) Start(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.max {
		m.evictLocked(ctx)
	}

	now := m.now()
	store := NewStore()
	sess := &Session{
		ID:        m.id.Generate(),
		Store:     store,
		CreatedAt: now,
		loop:      event.NewLoop(m.registry, store, loopBuffer),
	}
	sess.touch(now)

	if err := sess.loop.Start(ctx, m.runner); err != nil {
		slog.ErrorContext(ctx, "failed to start session loop", "error", err)
		return nil, pkgerror.NewBusiness("session could not be started", pkgerror.CodeUnavailable)
	}

	m.sessions[sess.ID] = sess
	slog.InfoContext(pkglog.SetSessionID(ctx, sess.ID), "session started", "live_sessions", len(m.sessions))

	return sess, nil
}

func (m *Manager) evictLocked(ctx context.Context) {
	victims := m.idleLocked(m.now())
	if len(victims) == 0 {
		var oldest *Session
		for _, sess := range m.sessions {
			if oldest == nil || sess.lastSeen.Load() < oldest.lastSeen.Load() {
				oldest = sess
			}
		}
		if oldest == nil {
			return
		}
		victims = append(victims, oldest)
	}

	slog.WarnContext(ctx, "session limit reached", "max_sessions", m.max, "evicted", len(victims))
	for _, sess := range victims {
		delete(m.sessions, sess.ID)
		if err := m.stop(ctx, sess, "session evicted"); err != nil {
			slog.WarnContext(ctx, "failed to stop evicted session", "error", err)
		}
	}
}

func (m *Manager) idleLocked(now time.Time) []*Session {
	var idle []*Session
	for _, sess := range m.sessions {
		if now.Sub(sess.LastSeen()) > m.ttl {
			idle = append(idle, sess)
		}
	}
	return idle
}

// Get returns the live session with id and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if ok {
		sess.touch(m.now())
	}
	return sess, ok
}

// Resume returns the live session with id, or starts a new one.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if sess, ok := m.Get(id); ok {
		return sess, nil
	}
	return m.Start(ctx)
}

// End discards a session and its store. Unknown ids are ignored.
func (m *Manager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	return m.stop(ctx, sess, "session ended")
}

func (m *Manager) stop(ctx context.Context, sess *Session, msg string) error {
	now := m.now()
	slog.InfoContext(pkglog.SetSessionID(ctx, sess.ID), msg,
		"age", now.Sub(sess.CreatedAt).String(),
		"idle", now.Sub(sess.LastSeen()).String(),
	)
	return sess.loop.Stop(ctx)
}

// Sweep ends every session idle for longer than the TTL and returns how many ended.
func (m *Manager) Sweep(ctx context.Context) int {
	m.mu.Lock()
	idle := m.idleLocked(m.now())
	for _, sess := range idle {
		delete(m.sessions, sess.ID)
	}
	m.mu.Unlock()

	for _, sess := range idle {
		if err := m.stop(ctx, sess, "session expired"); err != nil {
			slog.WarnContext(ctx, "failed to stop expired session", "error", err)
		}
	}
	return len(idle)
}

// Run sweeps idle sessions on a ticker until ctx ends.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval(m.ttl))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				slog.InfoContext(ctx, "idle sessions swept", "ended", n, "live_sessions", m.Len())
			}
		}
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/2, time.Second), time.Minute)
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Close ends every live session.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.End(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
