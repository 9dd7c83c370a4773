package store

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharevar/sharevar/internal/lock"
)

func TestIncrementAccumulation_Goroutines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		skipInShortMode bool
		strategy        lock.Strategy
		workers         int
		iterations      int
	}{
		"Flock": {
			skipInShortMode: false,
			strategy:        lock.Flock{},
			workers:         8,
			iterations:      25,
		},
		"LockFile": {
			skipInShortMode: true,
			strategy:        lock.LockFile{MaxAttempts: 1000, RetryDelay: 2 * time.Millisecond},
			workers:         4,
			iterations:      10,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if test.skipInShortMode && testing.Short() {
				t.Skip("Skipping contention test in short mode")
			}

			path := filepath.Join(t.TempDir(), "vars.json")
			_, err := New(path, true, test.strategy, nil)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for i := 0; i < test.workers; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()

					// Each worker gets its own Store value, modeling an
					// independent participant with no shared state.
					s, err := New(path, false, test.strategy, nil)
					if err != nil {
						t.Errorf("Worker %d: Failed to open store: %v", id, err)
						return
					}
					for j := 0; j < test.iterations; j++ {
						if _, err := s.Update("foo", IntValue(1), true); err != nil {
							t.Errorf("Worker %d: Update failed: %v", id, err)
							return
						}
					}
				}(i)
			}
			wg.Wait()

			s, err := New(path, false, test.strategy, nil)
			require.NoError(t, err)
			v, ok, err := s.Read("foo")
			require.NoError(t, err)
			require.True(t, ok)

			got, isInt := v.Int()
			require.True(t, isInt)
			assert.Equal(t, int64(test.workers*test.iterations), got,
				"lost updates under contention")
		})
	}
}

// TestHelperHammer is not a test: it is the body of the child processes
// spawned by TestIncrementAccumulation_Processes, selected via -test.run
// and armed by environment variables.
func TestHelperHammer(t *testing.T) {
	path := os.Getenv("SHAREVAR_HELPER_FILE")
	if path == "" {
		t.Skip("helper process for TestIncrementAccumulation_Processes")
	}

	strategy, err := lock.Parse(os.Getenv("SHAREVAR_HELPER_LOCK"))
	if err != nil {
		t.Fatalf("Helper: bad lock strategy: %v", err)
	}
	iterations, err := strconv.Atoi(os.Getenv("SHAREVAR_HELPER_ITERS"))
	if err != nil {
		t.Fatalf("Helper: bad iteration count: %v", err)
	}

	s, err := New(path, false, strategy, nil)
	if err != nil {
		t.Fatalf("Helper: failed to open store: %v", err)
	}
	for i := 0; i < iterations; i++ {
		if _, err := s.Update("foo", IntValue(1), true); err != nil {
			t.Fatalf("Helper: update %d failed: %v", i, err)
		}
	}
}

func TestIncrementAccumulation_Processes(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping multi-process test in short mode")
	}

	const (
		processes  = 4
		iterations = 25
	)

	for _, strategyName := range []string{lock.StrategyFlock, lock.StrategyLockFile} {
		strategyName := strategyName
		t.Run(strategyName, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vars.json")
			strategy, err := lock.Parse(strategyName)
			require.NoError(t, err)

			_, err = New(path, true, strategy, nil)
			require.NoError(t, err)

			// Real OS processes, not goroutines: re-exec this test binary
			// running only the helper, which does the increments.
			cmds := make([]*exec.Cmd, 0, processes)
			for i := 0; i < processes; i++ {
				cmd := exec.Command(os.Args[0], "-test.run=^TestHelperHammer$")
				cmd.Env = append(os.Environ(),
					"SHAREVAR_HELPER_FILE="+path,
					"SHAREVAR_HELPER_LOCK="+strategyName,
					fmt.Sprintf("SHAREVAR_HELPER_ITERS=%d", iterations),
				)
				require.NoError(t, cmd.Start(), "failed to start helper %d", i)
				cmds = append(cmds, cmd)
			}
			for i, cmd := range cmds {
				require.NoError(t, cmd.Wait(), "helper %d failed", i)
			}

			s, err := New(path, false, strategy, nil)
			require.NoError(t, err)
			v, ok, err := s.Read("foo")
			require.NoError(t, err)
			require.True(t, ok)

			got, isInt := v.Int()
			require.True(t, isInt)
			assert.Equal(t, int64(processes*iterations), got,
				"increments lost across processes")
		})
	}
}
