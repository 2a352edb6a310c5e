package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked indicates another atlas process holds the mutation lock.
var ErrLocked = errors.New("another atlas process is already running")

// Lock guards bulk mutations so that two atlas processes cannot modify the
// same catalogue concurrently.
type Lock struct {
	path  string
	flock *flock.Flock
}

// NewLock prepares a lock at the given path. The lock is not held until
// Acquire succeeds.
func NewLock(path string) *Lock {
	return &Lock{path: path, flock: flock.New(path)}
}

// Acquire attempts to take the lock without blocking.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ErrLocked, l.path)
	}
	return nil
}

// Release gives up the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
