// Package logging configures the global zerolog logger. The terminal
// is owned by the UI, so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nvu/mailterm/internal/model"
)

// Setup opens the log file and installs the global logger. The returned
// close function flushes and closes the file; call it on shutdown.
func Setup(cfg model.LogConfig) (func() error, error) {
	path := cfg.File
	if path == "" {
		path = defaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	return f.Close, nil
}

// defaultLogPath places the log next to the configuration.
func defaultLogPath() string {
	return filepath.Join(model.ConfigDir(), "mailterm.log")
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
