package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrSessionLocked is returned when another process already holds a live
// questionnaire session for the same tourist.
var ErrSessionLocked = errors.New("a questionnaire session is already running for this tourist")

// SessionLock is an advisory file lock guarding one live session per tourist.
type SessionLock struct {
	fl *flock.Flock
}

// LockPath returns the lock file used for the given tourist under dir.
func LockPath(dir, touristID string) string {
	return filepath.Join(dir, "locks", sanitize(touristID)+".lock")
}

// AcquireSessionLock takes the per-tourist lock without blocking.
func AcquireSessionLock(dir, touristID string) (*SessionLock, error) {
	path := LockPath(dir, touristID)
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrSessionLocked
	}
	return &SessionLock{fl: fl}, nil
}

// Release unlocks the lock file. Safe to call more than once.
func (l *SessionLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

// sanitize maps a tourist ID to a safe file name.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}
