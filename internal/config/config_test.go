package config

import (
	"testing"
	"time"

	"github.com/sharevar/sharevar/internal/errors"
	"github.com/sharevar/sharevar/internal/lock"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.FilePath == "" {
		t.Error("Expected a defaulted file path")
	}
	if cfg.Create {
		t.Error("Expected create to default to false")
	}
	if cfg.LockStrategy != lock.StrategyFlock {
		t.Errorf("Expected default lock strategy %q, got %q", lock.StrategyFlock, cfg.LockStrategy)
	}
	if cfg.LockMaxAttempts != lock.DefaultMaxAttempts {
		t.Errorf("Expected default max attempts %d, got %d", lock.DefaultMaxAttempts, cfg.LockMaxAttempts)
	}
	if cfg.LockRetryDelay != lock.DefaultRetryDelay {
		t.Errorf("Expected default retry delay %v, got %v", lock.DefaultRetryDelay, cfg.LockRetryDelay)
	}
	if cfg.VersionInfo.Version != "dev" {
		t.Errorf("Expected default version dev, got %q", cfg.VersionInfo.Version)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SHAREVAR_FILE", "/var/shared/counters.json")
	t.Setenv("SHAREVAR_CREATE", "true")
	t.Setenv("SHAREVAR_LOCK", "lockfile")
	t.Setenv("SHAREVAR_LOCK_MAX_ATTEMPTS", "7")
	t.Setenv("SHAREVAR_LOCK_RETRY_MS", "50")
	t.Setenv("SHAREVAR_VERBOSE", "1")
	t.Setenv("SHAREVAR_LOG_FILE", "/tmp/sharevar.log")

	cfg := New()
	cfg.LoadFromEnvironment()

	if cfg.FilePath != "/var/shared/counters.json" {
		t.Errorf("FilePath not loaded from environment, got %q", cfg.FilePath)
	}
	if !cfg.Create {
		t.Error("Create not loaded from environment")
	}
	if cfg.LockStrategy != lock.StrategyLockFile {
		t.Errorf("LockStrategy not loaded from environment, got %q", cfg.LockStrategy)
	}
	if cfg.LockMaxAttempts != 7 {
		t.Errorf("LockMaxAttempts not loaded from environment, got %d", cfg.LockMaxAttempts)
	}
	if cfg.LockRetryDelay != 50*time.Millisecond {
		t.Errorf("LockRetryDelay not loaded from environment, got %v", cfg.LockRetryDelay)
	}
	if !cfg.Verbose {
		t.Error("Verbose not loaded from environment")
	}
	if cfg.LogFile != "/tmp/sharevar.log" {
		t.Errorf("LogFile not loaded from environment, got %q", cfg.LogFile)
	}
}

func TestLoadFromEnvironmentIgnoresMalformed(t *testing.T) {
	t.Setenv("SHAREVAR_CREATE", "maybe")
	t.Setenv("SHAREVAR_LOCK_MAX_ATTEMPTS", "lots")

	cfg := New()
	cfg.LoadFromEnvironment()

	if cfg.Create {
		t.Error("Malformed bool should keep the default")
	}
	if cfg.LockMaxAttempts != lock.DefaultMaxAttempts {
		t.Errorf("Malformed int should keep the default, got %d", cfg.LockMaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(cfg *Config)
		wantErr bool
	}{
		"Defaults":         {mutate: func(cfg *Config) {}, wantErr: false},
		"LockFileStrategy": {mutate: func(cfg *Config) { cfg.LockStrategy = lock.StrategyLockFile }, wantErr: false},
		"EmptyFilePath":    {mutate: func(cfg *Config) { cfg.FilePath = "" }, wantErr: true},
		"UnknownStrategy":  {mutate: func(cfg *Config) { cfg.LockStrategy = "spinlock" }, wantErr: true},
		"ZeroAttempts":     {mutate: func(cfg *Config) { cfg.LockMaxAttempts = 0 }, wantErr: true},
		"NegativeDelay":    {mutate: func(cfg *Config) { cfg.LockRetryDelay = -time.Second }, wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			test.mutate(cfg)

			err := cfg.Validate()
			if test.wantErr {
				if err == nil {
					t.Fatal("Expected validation to fail")
				}
				if !errors.Is(err, errors.ErrInvalidConfiguration) {
					t.Errorf("Expected ErrInvalidConfiguration, got: %v", err)
				}
				var configErr *errors.ConfigError
				if !errors.As(err, &configErr) {
					t.Errorf("Expected a *ConfigError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestStrategy(t *testing.T) {
	cfg := New()
	cfg.LockStrategy = lock.StrategyLockFile
	cfg.LockMaxAttempts = 9
	cfg.LockRetryDelay = 5 * time.Millisecond

	strategy, err := cfg.Strategy()
	if err != nil {
		t.Fatalf("Strategy failed: %v", err)
	}

	lf, ok := strategy.(lock.LockFile)
	if !ok {
		t.Fatalf("Expected a lock.LockFile, got %T", strategy)
	}
	if lf.MaxAttempts != 9 || lf.RetryDelay != 5*time.Millisecond {
		t.Errorf("Strategy did not carry retry settings: %+v", lf)
	}

	cfg.LockStrategy = lock.StrategyFlock
	strategy, err = cfg.Strategy()
	if err != nil {
		t.Fatalf("Strategy failed: %v", err)
	}
	if _, ok := strategy.(lock.Flock); !ok {
		t.Fatalf("Expected a lock.Flock, got %T", strategy)
	}
}
