// Package flock wraps whole-file advisory locks for the state directory.
// Locks are tied to the open file and vanish when the process exits.
package flock

import (
	"os"
)

// Lock blocks until f is exclusively locked.
func Lock(f *os.File) error { return lock(f, true) }

// TryLock locks f exclusively or fails at once if another process holds it.
func TryLock(f *os.File) error { return lock(f, false) }

// Unlock drops a lock taken with Lock or TryLock.
func Unlock(f *os.File) error { return unlock(f) }

// ProcessAlive reports whether pid names a running process.
func ProcessAlive(pid int) bool { return processAlive(pid) }

// With opens path, holds an exclusive lock on it while fn runs, then
// releases it.
func With(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Lock(f); err != nil {
		return err
	}
	defer Unlock(f)
	return fn()
}
