package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharevar/sharevar/internal/config"
	"github.com/sharevar/sharevar/internal/errors"
	"github.com/sharevar/sharevar/internal/logger"
	"github.com/sharevar/sharevar/internal/store"
)

var (
	cfg *config.Config
	log logger.Logger
)

// errKeyAbsent signals that a get found no value for the key. It maps to
// exit status 1 so shell callers can test for presence.
var errKeyAbsent = errors.New("key not set")

// NewRoot builds the sharevar command tree. Configuration is resolved in
// order: defaults, environment (including a .env file), then flags.
func NewRoot(version config.VersionInfo) *cobra.Command {
	cfg = config.New()
	cfg.LoadFromEnvironment()

	root := &cobra.Command{
		Use:           "sharevar",
		Short:         "Share named variables between processes through a locked JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			var err error
			log, err = logger.New(cfg.Verbose, cfg.LogFile)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfg.FilePath, "file", "f", cfg.FilePath, "shared variable file path")
	root.PersistentFlags().BoolVar(&cfg.Create, "create", cfg.Create, "create the file, truncating any existing content")
	root.PersistentFlags().StringVar(&cfg.LockStrategy, "lock", cfg.LockStrategy, "lock strategy: flock or lockfile")
	root.PersistentFlags().IntVar(&cfg.LockMaxAttempts, "lock-max-attempts", cfg.LockMaxAttempts, "attempt budget for the lockfile strategy")
	root.PersistentFlags().DurationVar(&cfg.LockRetryDelay, "lock-retry-delay", cfg.LockRetryDelay, "delay between lockfile attempts")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
	root.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this file")

	root.AddCommand(getCmd(), setCmd(), incrCmd(), listCmd(), hammerCmd(), versionCmd(version))
	return root
}

// Execute runs the CLI and maps the outcome to an exit status: 0 on
// success, 1 when get finds no value, 2 on any other failure.
func Execute(version config.VersionInfo) int {
	if err := NewRoot(version).Execute(); err != nil {
		if errors.Is(err, errKeyAbsent) {
			return 1
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// openStore binds a store to the configured file. Called by the data
// commands rather than a persistent hook so that version and help never
// touch the filesystem.
func openStore() (*store.Store, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	return store.New(cfg.FilePath, cfg.Create, strategy, log)
}

// parseDelta interprets an increment amount, rejecting non-numeric input.
func parseDelta(s string) (store.Value, error) {
	v := store.ParseValue(s)
	if _, ok := v.Number(); !ok {
		return store.Value{}, errors.Errorf("delta %q is not numeric", s)
	}
	return v, nil
}
