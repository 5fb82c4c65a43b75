package slogutil

import (
	"fmt"
	"io"
	"log/slog"

	"dbcalls/internal/config"
)

// LoggerFactory builds the CLI logger from configuration and flags.
// Precedence for the level: CLI flags > logging.level > warn.
type LoggerFactory struct {
	config      *config.Config
	cliLevel    slog.Level
	cliLevelSet bool
	closers     []io.Closer
}

// NewLoggerFactory creates a new logger factory. cfg may be nil.
func NewLoggerFactory(cfg *config.Config) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{config: cfg}
}

// WithCLILevel overrides the configured level.
func (f *LoggerFactory) WithCLILevel(level slog.Level) *LoggerFactory {
	f.cliLevel = level
	f.cliLevelSet = true
	return f
}

// CLILogger returns a logger writing to stderr, plus a file when logFile
// (or logging.file) is set. The file always logs at least at info level.
func (f *LoggerFactory) CLILogger(stderr io.Writer, logFile string) (*slog.Logger, error) {
	level := f.effectiveLevel()
	console := NewTextHandler(stderr, &slog.HandlerOptions{Level: level})

	if logFile == "" {
		logFile = f.config.Logging.File
	}
	if logFile == "" {
		return slog.New(console), nil
	}

	fileLevel := level
	if fileLevel > slog.LevelInfo {
		fileLevel = slog.LevelInfo
	}
	policy, err := ParseRotation(f.config.Logging.MaxSize, f.config.Logging.MaxBackups)
	if err != nil {
		return nil, fmt.Errorf("logging rotation: %w", err)
	}
	fileHandler, closer, err := NewFileHandler(logFile, fileLevel, policy)
	if err != nil {
		return nil, err
	}
	f.closers = append(f.closers, closer)

	return slog.New(NewTeeHandler(console, fileHandler)), nil
}

func (f *LoggerFactory) effectiveLevel() slog.Level {
	if f.cliLevelSet {
		return f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelWarn
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
