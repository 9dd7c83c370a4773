// Package config manages configuration for the sharevar application.
//
// Settings flow from three layers, each overriding the last: built-in
// defaults, environment variables (optionally loaded from a .env file),
// and command-line flags bound by the CLI.
//
// # Environment Variables
//
// - SHAREVAR_FILE: path of the shared variable file
// - SHAREVAR_CREATE: create/truncate the file instead of requiring it to exist
// - SHAREVAR_LOCK: lock strategy, "flock" or "lockfile"
// - SHAREVAR_LOCK_MAX_ATTEMPTS: attempt budget for the lockfile strategy
// - SHAREVAR_LOCK_RETRY_MS: delay between lockfile attempts, in milliseconds
// - SHAREVAR_VERBOSE: enable debug logging
// - SHAREVAR_LOG_FILE: also write logs to this file
//
// # Validation
//
// Validate reports invalid values as typed ConfigErrors wrapping
// ErrInvalidConfiguration, so callers can distinguish configuration
// mistakes from operational failures.
package config
