// Package lock provides cross-process file locking for the sharevar application.
//
// This package implements the mutual-exclusion layer that serializes access
// to a shared variable file between unrelated operating-system processes.
// Two interchangeable strategies are provided behind a common interface,
// selected at configuration time.
//
// # Core Components
//
//   - Strategy: interface with a single Acquire method, implemented by both variants
//   - Handle: the held lock, released exactly once per acquisition
//   - Flock: kernel advisory lock taken on the data file itself
//   - LockFile: exclusive-create lock file used as a mutex for filesystems
//     where advisory locks misbehave (some NFS mounts, for example)
//
// # Usage
//
// Basic usage pattern:
//
//	strategy := lock.Flock{}
//
//	handle, err := strategy.Acquire("/shared/vars.json")
//	if err != nil {
//	    // Handle acquisition failure
//	}
//	defer handle.Release()
//
//	// Read or rewrite the locked file
//	// ...
//
// # Blocking Behavior
//
// Flock.Acquire blocks indefinitely until the kernel grants the lock. There
// is no timeout and no cancellation; the lock is released by the operating
// system if the holder exits, so a crashed holder cannot deadlock other
// participants. Callers that must not block forever have to wrap the call
// themselves.
//
// LockFile.Acquire retries a bounded number of exclusive-create attempts
// with a fixed delay between attempts, and fails with a LockError wrapping
// ErrLockRetriesExhausted once the budget is spent. The lock file records
// the owner's process ID; a lock file left behind by a dead process is
// detected and reclaimed.
//
// # Error Handling
//
// All failures surface as *errors.LockError values. A missed release would
// deadlock every future caller on the path, so release failures are
// reported rather than swallowed.
//
// # Cooperative Locking
//
// Both strategies are advisory: they exclude only processes that use the
// same strategy against the same path. Mixing strategies across processes
// provides no mutual exclusion.
package lock
