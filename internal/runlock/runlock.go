// Package runlock guards against two plexextras runs mutating the same
// collection at once.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "plexextras.lock"

// Acquire takes the run lock in stateDir, failing fast when another run holds
// it. The returned release function unlocks and removes the lock file.
func Acquire(stateDir string) (func(), error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	path := filepath.Join(stateDir, lockFileName)
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another plexextras run is already in progress (lock: %s)", path)
	}

	release := func() {
		_ = lock.Unlock()
		_ = os.Remove(path)
	}
	return release, nil
}
