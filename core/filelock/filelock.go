// Package filelock provides the advisory lock that keeps two renumbering runs
// away from the same directory, across goroutines and processes.
package filelock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultName is the lock file created inside a locked directory.
const DefaultName = ".fnum.lock"

// ErrLocked is returned by TryLock when another run holds the lock.
var ErrLocked = errors.New("directory is locked by another run")

// FileLock wraps a flock file lock.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForDir creates the lock of a directory. An empty name uses DefaultName.
func ForDir(dir, name string) *FileLock {
	if name == "" {
		name = DefaultName
	}
	return NewFileLock(filepath.Join(dir, name))
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock acquires the lock without blocking. It returns ErrLocked when the
// lock is held elsewhere.
func (fl *FileLock) TryLock() error {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLocked, fl.path)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Acquire locks dir without blocking and returns the held lock.
func Acquire(dir, name string) (*FileLock, error) {
	lock := ForDir(dir, name)
	if err := lock.TryLock(); err != nil {
		return nil, err
	}
	return lock, nil
}
