package usercache

import (
	"context"
	"sync"
	"time"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task/repository"
	pkgLog "vikunja-voice-assistant/pkg/log"
)

// refreshTimeout bounds one background fetch so a stalled Vikunja cannot
// pin the refresh goroutine.
const refreshTimeout = 2 * time.Minute

// Manager owns the cached assignable-user snapshot. The snapshot is the
// one piece of state shared between the periodic refresher and request
// readers; it is swapped whole under the mutex, never mutated in place.
type Manager struct {
	repo       repository.VikunjaRepository
	store      Store
	l          pkgLog.Logger
	staleAfter time.Duration

	mu       sync.RWMutex
	snapshot Snapshot

	flightMu sync.Mutex
	inFlight bool

	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
	scheduled bool
}

// New creates a Manager. staleAfter is the age below which a non-forced
// refresh is skipped.
func New(repo repository.VikunjaRepository, store Store, l pkgLog.Logger, staleAfter time.Duration) *Manager {
	return &Manager{
		repo:       repo,
		store:      store,
		l:          l,
		staleAfter: staleAfter,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Load populates the in-memory snapshot from the durable store. It never
// fails the caller: a missing or corrupt store yields an empty snapshot.
func (m *Manager) Load(ctx context.Context) {
	snap, err := m.store.Read()
	if err != nil {
		m.l.Errorf(ctx, "usercache: failed loading stored snapshot, starting empty: %v", err)
		return
	}
	if snap == nil {
		m.l.Infof(ctx, "usercache: no stored snapshot, starting empty")
		return
	}

	m.mu.Lock()
	m.snapshot = *snap
	m.mu.Unlock()
	m.l.Infof(ctx, "usercache: loaded %d users from store", len(snap.Users))
}

// Refresh fetches the full user set and atomically replaces the snapshot.
// Returns true only when a fetch happened and succeeded. A refresh
// already in flight is never duplicated; force bypasses the staleness
// check only. On fetch failure the previous snapshot stays untouched.
func (m *Manager) Refresh(ctx context.Context, force bool) bool {
	m.flightMu.Lock()
	if m.inFlight {
		m.flightMu.Unlock()
		return false
	}
	m.inFlight = true
	m.flightMu.Unlock()

	defer func() {
		m.flightMu.Lock()
		m.inFlight = false
		m.flightMu.Unlock()
	}()

	if !force && m.age() < m.staleAfter {
		return false
	}

	users, err := m.repo.CollectUsers(ctx)
	if err != nil {
		m.l.Errorf(ctx, "usercache: refresh failed, keeping previous snapshot: %v", err)
		return false
	}

	snap := Snapshot{
		Users:       users,
		LastRefresh: time.Now().UTC().Format(time.RFC3339),
	}

	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()

	if err := m.store.Write(snap); err != nil {
		// Persistence failure is non-fatal; the in-memory snapshot is live.
		m.l.Errorf(ctx, "usercache: failed persisting snapshot: %v", err)
	}

	m.l.Infof(ctx, "usercache: refreshed, %d users", len(users))
	return true
}

// SchedulePeriodicRefresh runs Refresh(force=false) on a fixed period in
// the background until Stop is called.
func (m *Manager) SchedulePeriodicRefresh(interval time.Duration) {
	m.scheduled = true
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
				m.Refresh(ctx, false)
				cancel()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop cancels the periodic refresh and waits for it to exit. Safe to
// call even when SchedulePeriodicRefresh was never started, and safe to
// call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
	if m.scheduled {
		<-m.done
	}
}

// CurrentUsers returns the present snapshot immediately. It never blocks
// on a refresh in progress.
func (m *Manager) CurrentUsers() []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]model.User, len(m.snapshot.Users))
	copy(users, m.snapshot.Users)
	return users
}

// LastRefresh returns the RFC3339 stamp of the last successful refresh,
// or empty when none has happened.
func (m *Manager) LastRefresh() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot.LastRefresh
}

func (m *Manager) age() time.Duration {
	m.mu.RLock()
	stamp := m.snapshot.LastRefresh
	m.mu.RUnlock()

	if stamp == "" {
		return m.staleAfter // never refreshed: always stale
	}
	last, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return m.staleAfter
	}
	return time.Since(last)
}
