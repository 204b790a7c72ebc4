// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	mdwlog "github.com/msto63/khwarizmi/foundation/core/log"
)

var (
	globalConfig   = LoggerConfig{Level: "info", Format: "json"}
	globalConfigMu sync.RWMutex

	logFile   *os.File
	logFileMu sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs, e.g. a log file
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		level = mdwlog.LevelInfo
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// Configure sets the process-wide configuration used by New and replaces
// the Foundation default logger accordingly.
func Configure(cfg LoggerConfig) {
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()

	mdwlog.SetDefault(NewLogger(cfg))
}

// ConfigureFile adds an append-only log file under dir to the process-wide
// configuration. The file is kept open until CloseFile is called.
func ConfigureFile(cfg LoggerConfig, dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logFileMu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logFileMu.Unlock()

	cfg.AdditionalOutputs = append(cfg.AdditionalOutputs, f)
	Configure(cfg)
	return nil
}

// CloseFile closes the log file opened by ConfigureFile
func CloseFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func currentConfig(serviceName string) LoggerConfig {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()

	cfg := globalConfig
	cfg.ServiceName = serviceName
	return cfg
}
