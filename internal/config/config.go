package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sharevar/sharevar/internal/errors"
	"github.com/sharevar/sharevar/internal/lock"
)

const (
	// DefaultFileName is used when no data file path is given; it is placed
	// in the system temporary directory.
	DefaultFileName = "sharevar.json"

	// DefaultLockStrategy selects the kernel advisory lock.
	DefaultLockStrategy = lock.StrategyFlock
)

// Config holds all sharevar application settings
type Config struct {
	// Shared variable file
	FilePath string
	Create   bool

	// Locking
	LockStrategy    string
	LockMaxAttempts int
	LockRetryDelay  time.Duration

	// User experience
	Verbose bool
	LogFile string

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		FilePath:        filepath.Join(os.TempDir(), DefaultFileName),
		Create:          false,
		LockStrategy:    DefaultLockStrategy,
		LockMaxAttempts: lock.DefaultMaxAttempts,
		LockRetryDelay:  lock.DefaultRetryDelay,
		Verbose:         false,
		LogFile:         "",

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates config from environment variables. A .env
// file in the working directory is read first, without overriding
// variables already present in the environment.
func (c *Config) LoadFromEnvironment() {
	_ = godotenv.Load()

	c.FilePath = getEnvString("SHAREVAR_FILE", c.FilePath)
	c.Create = getEnvBool("SHAREVAR_CREATE", c.Create)
	c.LockStrategy = getEnvString("SHAREVAR_LOCK", c.LockStrategy)
	c.LockMaxAttempts = getEnvInt("SHAREVAR_LOCK_MAX_ATTEMPTS", c.LockMaxAttempts)
	if ms := getEnvInt("SHAREVAR_LOCK_RETRY_MS", 0); ms > 0 {
		c.LockRetryDelay = time.Duration(ms) * time.Millisecond
	}
	c.Verbose = getEnvBool("SHAREVAR_VERBOSE", c.Verbose)
	c.LogFile = getEnvString("SHAREVAR_LOG_FILE", c.LogFile)
}

// Validate checks the configuration for invalid or conflicting values.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return errors.NewConfigError("file", c.FilePath,
			errors.Wrap(errors.ErrInvalidConfiguration, "data file path is required"))
	}
	if c.LockStrategy != lock.StrategyFlock && c.LockStrategy != lock.StrategyLockFile {
		return errors.NewConfigError("lock", c.LockStrategy,
			errors.Wrap(errors.ErrInvalidConfiguration, "unknown lock strategy"))
	}
	if c.LockMaxAttempts <= 0 {
		return errors.NewConfigError("lock-max-attempts", c.LockMaxAttempts,
			errors.Wrap(errors.ErrInvalidConfiguration, "must be positive"))
	}
	if c.LockRetryDelay < 0 {
		return errors.NewConfigError("lock-retry-delay", c.LockRetryDelay,
			errors.Wrap(errors.ErrInvalidConfiguration, "must not be negative"))
	}
	return nil
}

// Strategy builds the configured lock strategy.
func (c *Config) Strategy() (lock.Strategy, error) {
	switch c.LockStrategy {
	case lock.StrategyFlock:
		return lock.Flock{}, nil
	case lock.StrategyLockFile:
		return lock.LockFile{
			MaxAttempts: c.LockMaxAttempts,
			RetryDelay:  c.LockRetryDelay,
		}, nil
	default:
		return lock.Parse(c.LockStrategy)
	}
}

// getEnvString returns the environment value for key, or fallback if unset
func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvBool returns the environment value for key parsed as a bool, or
// fallback if unset or unparsable
func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvInt returns the environment value for key parsed as an int, or
// fallback if unset or unparsable
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
