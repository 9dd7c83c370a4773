// Package logger provides logging facilities for the sharevar application.
//
// It defines the Logger interface injected throughout the application and
// a default implementation backed by zap. Output goes to stderr (so data
// printed by CLI commands on stdout stays clean) and optionally to a log
// file; verbose mode enables Debug output.
//
// # Usage
//
//	log, err := logger.New(cfg.Verbose, cfg.LogFile)
//	if err != nil {
//	    // Handle error
//	}
//	defer log.Close()
//
//	log.Debug("acquired lock on %s", path)
//
// Components that can operate silently take logger.Nop().
package logger
