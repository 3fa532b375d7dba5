package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel maps a config level name to a log level, defaulting to info
func ParseLevel(name string) log.Level {
	if name == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

// Slog exposes the logger as a log/slog logger for libraries that want one
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.Logger)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(vaultDir, bookmarkPath string) {
	l.Debug("config loaded",
		"vault_dir", vaultDir,
		"bookmark_path", bookmarkPath)
}

// CommandStarted logs the start of a command invocation
func (l *Logger) CommandStarted(id string) {
	l.Debug("command started", "command", id)
}

// CommandFailed logs a failed command invocation
func (l *Logger) CommandFailed(id string, err error) {
	l.Error("command failed",
		"command", id,
		"error", err)
}

// BookmarkStarted logs that a URL is about to be bookmarked
func (l *Logger) BookmarkStarted(url string) {
	l.Info("bookmarking", "url", url)
}

// BookmarkCreated logs a newly written bookmark
func (l *Logger) BookmarkCreated(path string, available bool) {
	l.Info("bookmark created",
		"path", path,
		"available", available)
}

// BookmarkReused logs a bookmark that already existed
func (l *Logger) BookmarkReused(path string) {
	l.Info("bookmark exists", "path", path)
}

// FetchFailed logs a page that could not be fetched
func (l *Logger) FetchFailed(url string, err error) {
	l.Warn("page unavailable",
		"url", url,
		"error", err)
}

// BatchCompleted logs the completion of a batch
func (l *Logger) BatchCompleted(links, created, reused, unavailable int, duration time.Duration) {
	l.Info("batch completed",
		"links", links,
		"created", created,
		"reused", reused,
		"unavailable", unavailable,
		"duration", duration.Round(time.Millisecond))
}
