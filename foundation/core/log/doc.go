// Package log provides structured logging for khwarizmi.
//
// Package: log
// Title: khwarizmi Structured Logging
// Description: Leveled logger with persistent context fields, request IDs,
//              JSON/text/console formatters, timers, and severity-aware logging
//              of coded errors. Loggers are immutable: every With* call returns a
//              copy, so a logger can be shared between goroutines.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	logger = logger.WithField("component", "solver")
//	logger.Info("equation solved", log.Fields{"steps": 2})
package log
