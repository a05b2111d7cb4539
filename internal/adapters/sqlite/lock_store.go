package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/freightdesk/internal/core/editlock"
)

// LockStore implements editlock.Store on the edit_locks table, giving
// the same advisory-lock contract cross-session durability: two
// processes sharing the database observe each other's locks.
type LockStore struct {
	db *sql.DB
}

// NewLockStore creates a new SQLite lock store.
func NewLockStore(db *sql.DB) *LockStore {
	return &LockStore{db: db}
}

// Acquire claims the resource for holder. The primary-key constraint
// on resource_id makes the claim atomic; a conflicting insert means
// someone holds the lock, in which case acquisition succeeds only for
// the current holder (re-entrant).
func (s *LockStore) Acquire(ctx context.Context, resourceID, holderID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO edit_locks (resource_id, holder_id) VALUES (?, ?)",
		resourceID, holderID)
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return true, nil
	}

	var currentHolder string
	err = s.db.QueryRowContext(ctx,
		"SELECT holder_id FROM edit_locks WHERE resource_id = ?", resourceID,
	).Scan(&currentHolder)
	if err == sql.ErrNoRows {
		// Lock vanished between insert and read; retry once.
		return s.Acquire(ctx, resourceID, holderID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to read lock holder: %w", err)
	}
	return currentHolder == holderID, nil
}

// Release frees the resource if held by holder.
func (s *LockStore) Release(ctx context.Context, resourceID, holderID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM edit_locks WHERE resource_id = ? AND holder_id = ?",
		resourceID, holderID)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// ForceRelease frees the resource regardless of holder.
func (s *LockStore) ForceRelease(ctx context.Context, resourceID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM edit_locks WHERE resource_id = ?", resourceID)
	if err != nil {
		return fmt.Errorf("failed to force release lock: %w", err)
	}
	return nil
}

// Holder returns the current lock on the resource, if any.
func (s *LockStore) Holder(ctx context.Context, resourceID string) (editlock.Lock, bool, error) {
	var (
		lock       editlock.Lock
		acquiredAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT resource_id, holder_id, acquired_at FROM edit_locks WHERE resource_id = ?",
		resourceID,
	).Scan(&lock.ResourceID, &lock.HolderID, &acquiredAt)
	if err == sql.ErrNoRows {
		return editlock.Lock{}, false, nil
	}
	if err != nil {
		return editlock.Lock{}, false, fmt.Errorf("failed to read lock: %w", err)
	}
	lock.AcquiredAt = acquiredAt
	return lock, true, nil
}

// List returns every currently held lock.
func (s *LockStore) List(ctx context.Context) ([]editlock.Lock, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT resource_id, holder_id, acquired_at FROM edit_locks ORDER BY resource_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list locks: %w", err)
	}
	defer rows.Close()

	var locks []editlock.Lock
	for rows.Next() {
		var (
			lock       editlock.Lock
			acquiredAt time.Time
		)
		if err := rows.Scan(&lock.ResourceID, &lock.HolderID, &acquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan lock: %w", err)
		}
		lock.AcquiredAt = acquiredAt
		locks = append(locks, lock)
	}
	return locks, rows.Err()
}
