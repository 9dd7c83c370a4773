package lock

import (
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sharevar/sharevar/internal/errors"
)

// Suffix appended to the data path to derive the lock file path.
const Suffix = ".lock"

// Defaults for the exclusive-create retry loop. Fifty attempts at 20ms
// spacing bound the worst-case wait to about one second.
const (
	DefaultMaxAttempts = 50
	DefaultRetryDelay  = 20 * time.Millisecond
)

// LockFile treats the existence of "<path>.lock" as the mutex. It is the
// portable fallback for filesystems where kernel advisory locks are
// unreliable. Acquisition is a bounded retry loop around an atomic
// exclusive-create; release deletes the lock file.
//
// The zero value uses DefaultMaxAttempts and DefaultRetryDelay.
type LockFile struct {
	// MaxAttempts caps the number of exclusive-create attempts.
	MaxAttempts int

	// RetryDelay is the sleep between failed attempts.
	RetryDelay time.Duration
}

// Acquire attempts to create the lock file exclusively, sleeping between
// attempts while another process holds it. A lock file whose recorded owner
// process no longer exists is treated as stale and reclaimed. Once the
// attempt budget is spent, Acquire fails with a LockError wrapping
// ErrLockRetriesExhausted.
func (s LockFile) Acquire(path string) (Handle, error) {
	lockPath := path + Suffix

	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := s.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
		}

		err := tryCreateLockFile(lockPath)
		if err == nil {
			return &lockFileHandle{path: lockPath}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.NewLockError(lockPath, 0,
				errors.Wrap(err, "failed to create lock file"))
		}

		// Someone holds the lock. If its recorded owner is gone, the lock
		// is stale; reclaim it and retry.
		if pid, ok := lockFileOwner(lockPath); ok && !isProcessRunning(pid) {
			reclaimStaleLockFile(lockPath, pid)
		}
	}

	pid, _ := lockFileOwner(lockPath)
	return nil, errors.NewLockError(lockPath, pid,
		errors.Wrapf(errors.ErrLockRetriesExhausted, "gave up after %d attempts", attempts))
}

// reclaimStaleLockFile removes a lock file whose recorded owner was observed
// dead. Removing it in place would race other waiters: between the staleness
// check and the removal, someone else may have reclaimed the file and
// legitimately re-acquired, and a plain remove would then delete that live
// lock. Instead the file is renamed aside first, so at most one waiter
// captures it, and the capture is verified to still name the dead owner
// before it is deleted. A capture that turned out to be a fresh, live lock
// is handed back; os.Link refuses to clobber, so a lock file created in the
// meantime stays untouched. Losing any of these races just means another
// waiter got there first, so failures are not reported; the caller's retry
// loop observes the outcome on its next attempt.
func reclaimStaleLockFile(lockPath string, deadPID int) {
	aside := lockPath + ".stale." + strconv.Itoa(os.Getpid()) +
		"." + strconv.FormatInt(time.Now().UnixNano(), 10)

	if err := os.Rename(lockPath, aside); err != nil {
		return
	}

	if pid, ok := lockFileOwner(aside); ok && pid == deadPID && !isProcessRunning(pid) {
		_ = os.Remove(aside)
		return
	}

	// The capture is not the stale file we observed; give it back.
	if err := os.Link(aside, lockPath); err == nil || os.IsExist(err) {
		_ = os.Remove(aside)
	}
}

// tryCreateLockFile atomically creates the lock file and records the owner
// PID. O_EXCL with O_CREATE guarantees exactly one winner per attempt.
func tryCreateLockFile(lockPath string) error {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	_, writeErr := f.WriteString(strconv.Itoa(os.Getpid()))
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		// The mutex exists but its owner record is unusable; give it back.
		_ = os.Remove(lockPath)
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	}
	return nil
}

// lockFileOwner reads the PID recorded in the lock file. The existence of
// the file is the lock signal; contents are only used for staleness checks,
// so unreadable or malformed contents simply report no owner.
func lockFileOwner(lockPath string) (int, bool) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// isProcessRunning checks if a process exists using signal 0
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	return err == nil
}

type lockFileHandle struct {
	path     string
	released bool
}

// Release deletes the lock file, dropping the mutex. A lock file that has
// already disappeared is not an error; the mutex is gone either way.
func (h *lockFileHandle) Release() error {
	if h.released {
		return nil
	}
	h.released = true

	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return errors.NewLockError(h.path, os.Getpid(),
			errors.Wrap(errors.ErrLockReleaseFailure, err.Error()))
	}
	return nil
}
