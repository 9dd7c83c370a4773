package lock

import (
	"github.com/sharevar/sharevar/internal/errors"
)

// Strategy acquires exclusive cross-process locks for a data file path.
// Implementations must be safe for concurrent use; each Acquire returns an
// independent Handle.
type Strategy interface {
	// Acquire obtains exclusive access to the resource identified by path.
	// It blocks (Flock) or retries with backoff (LockFile) until the lock
	// is held, and returns a Handle that must be released on every exit
	// path of the caller's critical section.
	Acquire(path string) (Handle, error)
}

// Handle represents held mutual exclusion over a path. Release must be
// called exactly once; a Handle is not reusable after release.
type Handle interface {
	Release() error
}

// Strategy selector names accepted by Parse and the configuration surface.
const (
	StrategyFlock    = "flock"
	StrategyLockFile = "lockfile"
)

// Parse maps a strategy selector to its implementation with default
// settings. Unknown names are a configuration error.
func Parse(name string) (Strategy, error) {
	switch name {
	case StrategyFlock:
		return Flock{}, nil
	case StrategyLockFile:
		return LockFile{}, nil
	default:
		return nil, errors.NewConfigError("lock", name,
			errors.Wrap(errors.ErrInvalidConfiguration, "unknown lock strategy"))
	}
}
