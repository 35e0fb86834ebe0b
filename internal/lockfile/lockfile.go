// Package lockfile guards the posting phase against overlapping cron runs.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Lock is a held advisory lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes an exclusive advisory lock on path without blocking and
// writes the acquisition time into the file. A held lock means another run
// is in progress and is an error.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another run holds the lock at %s", path)
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(path, []byte(stamp), 0o644); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("write lock timestamp: %w", err)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. The file is left in place with its timestamp.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
