package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sharevar/sharevar/internal/errors"
)

// Logger defines the common logging interface used throughout the
// application. Components receive a Logger by injection rather than
// constructing their own.
type Logger interface {
	// Debug logs a message that is only useful when tracing operations.
	// Suppressed unless verbose mode is enabled.
	//
	// The format string follows fmt.Printf style formatting.
	Debug(format string, args ...interface{})

	// Info logs an informational message.
	//
	// The format string follows fmt.Printf style formatting.
	Info(format string, args ...interface{})

	// Warning logs a warning about a potential issue that is not a failure.
	//
	// The format string follows fmt.Printf style formatting.
	Warning(format string, args ...interface{})

	// Error logs an operational failure.
	//
	// The format string follows fmt.Printf style formatting.
	Error(format string, args ...interface{})

	// Close flushes any buffered log output. It should be called before
	// the application exits.
	Close() error
}

// zapLogger implements Logger on top of a zap SugaredLogger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a Logger writing to stderr, and additionally to logFile when
// one is given. Verbose enables Debug output.
func New(verbose bool, logFile string) (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.Wrap(err, "failed to create log directory")
			}
		}
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return &zapLogger{sugar: zl.Sugar()}, nil
}

// Nop returns a Logger that discards everything. Used as the default when
// a component is constructed without a logger.
func Nop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *zapLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *zapLogger) Warning(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *zapLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close flushes buffered output. Sync errors on terminal outputs are
// expected on some platforms and are not reported.
func (l *zapLogger) Close() error {
	_ = l.sugar.Sync()
	return nil
}
