// Package editlock provides advisory per-record mutual exclusion for
// editing sessions. A resource has at most one holder; acquisition is
// refused, never queued, and there is no TTL. Correctness depends on
// every caller honoring the lock and releasing on every exit path.
package editlock

import (
	"context"
	"fmt"
	"time"
)

// Lock is the ephemeral record of a held lock.
type Lock struct {
	ResourceID string
	HolderID   string
	AcquiredAt time.Time
}

// Store is the backing table for locks. The in-memory implementation
// coordinates edits within one process; the sqlite implementation
// extends the same contract across sessions.
type Store interface {
	// Acquire atomically claims the resource for holder. It reports
	// true when the resource was free or already held by the same
	// holder (re-entrant).
	Acquire(ctx context.Context, resourceID, holderID string) (bool, error)

	// Release frees the resource if held by holder. Releasing a lock
	// that is not held is a no-op.
	Release(ctx context.Context, resourceID, holderID string) error

	// ForceRelease frees the resource regardless of holder.
	ForceRelease(ctx context.Context, resourceID string) error

	// Holder returns the current lock on the resource, if any.
	Holder(ctx context.Context, resourceID string) (Lock, bool, error)

	// List returns every currently held lock.
	List(ctx context.Context) ([]Lock, error)
}

// Manager serializes concurrent edits of the same record through a
// Store.
type Manager struct {
	store Store
}

// NewManager creates a Manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Acquire claims the resource for holder. On success it returns a
// Guard whose Release is safe to defer on every exit path. On
// contention it returns a nil guard and granted=false; the caller
// surfaces this as "being edited by someone else".
func (m *Manager) Acquire(ctx context.Context, resourceID, holderID string) (*Guard, bool, error) {
	granted, err := m.store.Acquire(ctx, resourceID, holderID)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock on %s: %w", resourceID, err)
	}
	if !granted {
		return nil, false, nil
	}
	return &Guard{manager: m, resourceID: resourceID, holderID: holderID}, true, nil
}

// Release frees the resource if held by holder.
func (m *Manager) Release(ctx context.Context, resourceID, holderID string) error {
	if err := m.store.Release(ctx, resourceID, holderID); err != nil {
		return fmt.Errorf("release lock on %s: %w", resourceID, err)
	}
	return nil
}

// ForceRelease frees the resource regardless of holder. Reserved for
// administrators clearing stale locks left by abandoned sessions.
func (m *Manager) ForceRelease(ctx context.Context, resourceID string) error {
	if err := m.store.ForceRelease(ctx, resourceID); err != nil {
		return fmt.Errorf("force release lock on %s: %w", resourceID, err)
	}
	return nil
}

// Holder returns the current lock on the resource, if any.
func (m *Manager) Holder(ctx context.Context, resourceID string) (Lock, bool, error) {
	return m.store.Holder(ctx, resourceID)
}

// List returns every currently held lock.
func (m *Manager) List(ctx context.Context) ([]Lock, error) {
	return m.store.List(ctx)
}

// Stale returns held locks older than the given age. There is no
// TTL enforcement; this only surfaces candidates for manual cleanup.
func (m *Manager) Stale(ctx context.Context, olderThan time.Duration, now time.Time) ([]Lock, error) {
	locks, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var stale []Lock
	for _, l := range locks {
		if now.Sub(l.AcquiredAt) > olderThan {
			stale = append(stale, l)
		}
	}
	return stale, nil
}

// ContentionMessage renders the user-facing notice for a refused
// acquisition.
func ContentionMessage(lock Lock) string {
	return fmt.Sprintf("this record is being edited by someone else (%s)", lock.HolderID)
}

// Guard ties a held lock to an editing session: acquired when the
// session opens, released unconditionally when it closes. Release is
// idempotent so it can run on every exit path.
type Guard struct {
	manager    *Manager
	resourceID string
	holderID   string
	released   bool
}

// Release frees the lock. Calling it more than once is a no-op.
func (g *Guard) Release(ctx context.Context) error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	return g.manager.Release(ctx, g.resourceID, g.holderID)
}
