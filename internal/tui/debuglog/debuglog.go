// ABOUTME: File-backed debug logger for the TUI
// ABOUTME: Writes structured zerolog events without touching the terminal

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  zerolog.Logger
	enabled bool
)

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	enabled = true
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Log writes a debug message to the log file
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Error().Err(err).Msg(context)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Warn().Msgf(format, args...)
}
