// Package memory contains in-process implementations of secondary
// ports. The lock store here coordinates edit sessions within a single
// process; cross-session exclusion uses the sqlite store instead.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/example/freightdesk/internal/core/editlock"
)

// LockStore implements editlock.Store with a mutex-guarded map.
type LockStore struct {
	mu    sync.Mutex
	locks map[string]editlock.Lock
	now   func() time.Time
}

// NewLockStore creates an empty in-memory lock store.
func NewLockStore() *LockStore {
	return &LockStore{
		locks: make(map[string]editlock.Lock),
		now:   time.Now,
	}
}

// Acquire claims the resource for holder. Re-entrant for the current
// holder; refused for anyone else while held.
func (s *LockStore) Acquire(ctx context.Context, resourceID, holderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, held := s.locks[resourceID]; held {
		return existing.HolderID == holderID, nil
	}
	s.locks[resourceID] = editlock.Lock{
		ResourceID: resourceID,
		HolderID:   holderID,
		AcquiredAt: s.now(),
	}
	return true, nil
}

// Release frees the resource if held by holder.
func (s *LockStore) Release(ctx context.Context, resourceID, holderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, held := s.locks[resourceID]; held && existing.HolderID == holderID {
		delete(s.locks, resourceID)
	}
	return nil
}

// ForceRelease frees the resource regardless of holder.
func (s *LockStore) ForceRelease(ctx context.Context, resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, resourceID)
	return nil
}

// Holder returns the current lock on the resource, if any.
func (s *LockStore) Holder(ctx context.Context, resourceID string) (editlock.Lock, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, held := s.locks[resourceID]
	return lock, held, nil
}

// List returns every currently held lock.
func (s *LockStore) List(ctx context.Context) ([]editlock.Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]editlock.Lock, 0, len(s.locks))
	for _, l := range s.locks {
		out = append(out, l)
	}
	return out, nil
}
