// Package cli implements the masonry command-line interface.
//
// The CLI computes layouts from tile files, renders them to SVG, PNG, JSON or
// a terminal preview, pages through large tile files interactively and serves
// the HTTP API. It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout.json from a tiles document or search page
//   - render: Render a layout to svg, png, json or txt
//   - preview: Print a layout to the terminal
//   - browse: Scroll through a tiles file with pagination-driven re-layout
//   - serve: Run the HTTP API
//   - profiles, layouts, cache: Inspect profiles, saved layouts and the cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so long-running commands can tag output.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logFileOptions configures rotation for serve --log-file.
type logFileOptions struct {
	path       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

// newRotatingWriter returns a size-rotated log file writer.
func newRotatingWriter(o logFileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   o.path,
		MaxSize:    o.maxSizeMB,
		MaxBackups: o.maxBackups,
		MaxAge:     o.maxAgeDays,
		Compress:   true,
	}
}

// teeLogger returns a logger writing to both w and file. Output is logfmt so
// the file stays grep-able.
func teeLogger(w io.Writer, file io.Writer, level log.Level) *log.Logger {
	l := newLogger(io.MultiWriter(w, file), level)
	l.SetFormatter(log.LogfmtFormatter)
	return l
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 240 tiles (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
