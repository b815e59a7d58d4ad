// Package logging builds the zap loggers used across folio.
//
// Development mode logs human-readable console lines; production mode logs
// JSON. The TUI must never write to the terminal it is drawing on, so
// interactive sessions log to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Taishi66/folio-tui/internal/config"
)

// Options selects where and how verbosely to log.
type Options struct {
	Dev     bool
	Level   string
	File    string // empty means stderr
	Verbose bool   // forces debug level
}

// FromConfig derives logger options from the app config.
func FromConfig(cfg *config.AppConfig, toFile, verbose bool) Options {
	opts := Options{
		Dev:     cfg.IsDev(),
		Level:   cfg.Log.Level,
		Verbose: verbose,
	}
	if toFile {
		opts.File = cfg.Log.File
	}
	return opts
}

// New builds a logger for opts.
func New(opts Options) (*zap.Logger, error) {
	var zc zap.Config
	if opts.Dev {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Dev || opts.Verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		zc.OutputPaths = []string{opts.File}
		zc.ErrorOutputPaths = []string{opts.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
