package server

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Lockfile is a gofrs/flock-based single-writer lock identifying the
// running server instance.
type Lockfile struct {
	fl *flock.Flock
}

// NewLockfile builds a Lockfile at path without acquiring it.
func NewLockfile(path string) *Lockfile {
	return &Lockfile{fl: flock.New(path)}
}

// TryLock attempts to acquire the lock without blocking. false means
// another instance already holds it.
func (l *Lockfile) TryLock() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("lockfile: %w", err)
	}
	return ok, nil
}

func (l *Lockfile) Unlock() error {
	return l.fl.Unlock()
}
