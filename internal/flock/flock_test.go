package flock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTryLockConflicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lock")

	a, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if err := TryLock(a); err != nil {
		t.Fatalf("first TryLock: %v", err)
	}
	if err := TryLock(b); err == nil {
		t.Fatal("second TryLock should fail while the first is held")
	}
	if err := Unlock(a); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := TryLock(b); err != nil {
		t.Fatalf("TryLock after Unlock: %v", err)
	}
	Unlock(b)
}

func TestWithRunsFn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "with.lock")
	ran := false
	if err := With(path, func() error { ran = true; return nil }); err != nil {
		t.Fatalf("With: %v", err)
	}
	if !ran {
		t.Error("fn did not run")
	}
}

func TestProcessAlive(t *testing.T) {
	if !ProcessAlive(os.Getpid()) {
		t.Error("current process should be alive")
	}
}
