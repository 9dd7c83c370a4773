package lock

import (
	"github.com/gofrs/flock"

	"github.com/sharevar/sharevar/internal/errors"
)

// Flock locks the data file itself with an exclusive kernel advisory lock.
// Acquire blocks until the lock is granted; the kernel releases the lock
// when the holding process closes the descriptor or exits.
type Flock struct{}

// Acquire opens path read/write (creating it if necessary) and blocks until
// the exclusive lock is held.
//
// Creation is a side effect of locking the data file itself: a data file
// deleted out from under cooperating processes is silently recreated empty
// by the next Acquire, where LockFile would leave it missing and let the
// caller report it as absent.
func (Flock) Acquire(path string) (Handle, error) {
	fl := flock.New(path)
	if err := fl.Lock(); err != nil {
		return nil, errors.NewLockError(path, 0,
			errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error()))
	}
	return &flockHandle{fl: fl}, nil
}

type flockHandle struct {
	fl *flock.Flock
}

// Release unlocks and closes the underlying descriptor.
func (h *flockHandle) Release() error {
	if err := h.fl.Unlock(); err != nil {
		return errors.NewLockError(h.fl.Path(), 0,
			errors.Wrap(errors.ErrLockReleaseFailure, err.Error()))
	}
	return nil
}
