package store

import (
	"io"
	"os"

	"github.com/sharevar/sharevar/internal/errors"
	"github.com/sharevar/sharevar/internal/lock"
	"github.com/sharevar/sharevar/internal/logger"
)

// Store provides shared named variables persisted as a JSON object in a
// single file, coordinated across processes by an injected lock strategy.
//
// A Store holds no open handle and no cached state between calls: every
// Read and Update performs its own acquire/load/release cycle, so the map
// a call observes is always the file state at the moment its lock was
// granted. Multiple goroutines may share one Store; exclusion reduces to
// the same file-lock discipline that serializes separate processes.
type Store struct {
	path     string
	strategy lock.Strategy
	log      logger.Logger
}

// New binds a Store to the file at path. With create true the file is
// created, truncating any existing content to the empty state; with create
// false a missing file is an ErrNotFound failure. No lock is held during
// construction beyond the create/truncate itself.
//
// A nil strategy defaults to Flock; a nil logger discards log output.
func New(path string, create bool, strategy lock.Strategy, log logger.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("file", path,
			errors.Wrap(errors.ErrInvalidConfiguration, "data file path is required"))
	}
	if strategy == nil {
		strategy = lock.Flock{}
	}
	if log == nil {
		log = logger.Nop()
	}

	if create {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.NewStoreError(path, "create", err)
		}
		if err := f.Close(); err != nil {
			return nil, errors.NewStoreError(path, "create", err)
		}
		log.Debug("created shared variable file %s", path)
	} else {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewStoreError(path, "open", errors.ErrNotFound)
			}
			return nil, errors.NewStoreError(path, "open", err)
		}
	}

	return &Store{path: path, strategy: strategy, log: log}, nil
}

// Path returns the data file path the Store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Read returns the value for key, or ok=false if the key is not present.
// The lock is held only long enough to snapshot and decode the file.
func (s *Store) Read(key string) (Value, bool, error) {
	m, err := s.List()
	if err != nil {
		return Value{}, false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// List returns a snapshot of the whole variable map taken under the lock.
func (s *Store) List() (Map, error) {
	var m Map
	err := s.withLock(func() error {
		var err error
		m, err = s.load()
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update sets key and returns the value now stored. With increment false
// the new value is value unconditionally; with increment true it is the
// existing value plus value, treating an absent or non-numeric existing
// value as 0. The full map is decoded, mutated, and rewritten inside one
// critical section, so concurrent updaters on the same path never lose
// increments to each other.
func (s *Store) Update(key string, value Value, increment bool) (Value, error) {
	var result Value
	err := s.withLock(func() error {
		f, err := os.OpenFile(s.path, os.O_RDWR, 0644)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.NewStoreError(s.path, "open", errors.ErrNotFound)
			}
			return errors.NewStoreError(s.path, "open", err)
		}
		defer func() {
			_ = f.Close()
		}()

		data, err := io.ReadAll(f)
		if err != nil {
			return errors.NewStoreError(s.path, "read", err)
		}
		m, err := Decode(data)
		if err != nil {
			return errors.NewStoreError(s.path, "decode", err)
		}

		if increment {
			result = m[key].Add(value)
		} else {
			result = value
		}
		m[key] = result

		out, err := Encode(m)
		if err != nil {
			return errors.NewStoreError(s.path, "encode", err)
		}

		// Truncate-then-write on the locked file. Readers are excluded by
		// the lock, not by write atomicity; a crash between truncate and
		// write loses the map, a limitation of the file format.
		if err := f.Truncate(0); err != nil {
			return errors.NewStoreError(s.path, "truncate", err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return errors.NewStoreError(s.path, "seek", err)
		}
		if _, err := f.Write(out); err != nil {
			return errors.NewStoreError(s.path, "write", err)
		}

		s.log.Debug("wrote %d bytes to %s (%d keys)", len(out), s.path, len(m))
		return nil
	})
	if err != nil {
		return Value{}, err
	}
	return result, nil
}

// load reads and decodes the data file. Callers must hold the lock.
func (s *Store) load() (Map, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStoreError(s.path, "open", errors.ErrNotFound)
		}
		return nil, errors.NewStoreError(s.path, "read", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, errors.NewStoreError(s.path, "decode", err)
	}
	return m, nil
}

// withLock runs fn inside an acquire/release cycle on the data path. The
// lock is released on every exit path; if both fn and the release fail,
// fn's error wins and the release failure is logged.
func (s *Store) withLock(fn func() error) error {
	handle, err := s.strategy.Acquire(s.path)
	if err != nil {
		return err
	}

	fnErr := fn()

	if relErr := handle.Release(); relErr != nil {
		if fnErr != nil {
			s.log.Error("lock release failed after operation error: %v", relErr)
			return fnErr
		}
		return relErr
	}
	return fnErr
}
