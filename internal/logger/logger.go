// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps charmbracelet/log with conversion-specific helpers.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger with the given output.
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of an export conversion.
func (l *Logger) ConversionStarted(exportDir, vaultDir string) {
	l.Info("conversion started",
		"export_dir", exportDir,
		"vault_dir", vaultDir)
}

// ConversionCompleted logs the end of an export conversion.
func (l *Logger) ConversionCompleted(converted, skipped, failed int, duration time.Duration) {
	l.Info("conversion completed",
		"converted", converted,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs one converted document.
func (l *Logger) FileConverted(source, dest string, words int) {
	l.Debug("file converted",
		"source", source,
		"dest", dest,
		"words", words)
}

// FileError logs a per-file failure that did not stop the batch.
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// AssetCopied logs one asset moved into the attachments directory.
func (l *Logger) AssetCopied(source, dest string) {
	l.Debug("asset copied",
		"source", source,
		"dest", dest)
}

// DatabaseConverted logs one CSV database rendered to notes.
func (l *Logger) DatabaseConverted(name string, rows int) {
	l.Info("database converted",
		"database", name,
		"rows", rows)
}

// CatalogError logs a catalog failure. The catalog is best-effort, these
// never abort a conversion.
func (l *Logger) CatalogError(operation string, err error) {
	l.Warn("catalog error",
		"operation", operation,
		"error", err)
}
