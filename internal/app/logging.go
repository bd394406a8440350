// Package app ties the editing engine to a terminal: documents, prompts,
// key handling and the event loop.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name, case-insensitively. An empty name is
// info; "warning" is accepted for warn.
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "":
		return LogLevelInfo, nil
	case "WARNING":
		return LogLevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), nil
		}
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// logSink is the destination shared by a logger and everything derived
// from it.
type logSink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func (s *logSink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out != nil {
		_, _ = io.WriteString(s.out, line)
	}
}

// Logger writes leveled, timestamped lines. The terminal belongs to the
// editor, so output normally goes to a file.
//
// Lines look like
//
//	2026-01-02T15:04:05.000 [INFO] gale: saved notes.txt {component=document}
type Logger struct {
	sink   *logSink
	prefix string

	// suffix is the rendered field list, fixed when the logger is derived.
	fields map[string]any
	suffix string

	mu       sync.RWMutex
	level    LogLevel
	disabled bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to io.Discard.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Clock stamps each line. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: io.Discard,
		Prefix: "gale",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Logger{
		sink:   &logSink{out: cfg.Output, now: cfg.Clock},
		prefix: cfg.Prefix,
		level:  cfg.Level,
	}
}

// OpenLogFile opens path for appending, creating parent directories.
// The caller closes the returned file.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithField returns a logger that adds key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger that adds fields to every line. The new
// logger writes to the same sink and starts at the parent's level.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	l.mu.RLock()
	level, disabled := l.level, l.disabled
	l.mu.RUnlock()

	return &Logger{
		sink:     l.sink,
		prefix:   l.prefix,
		fields:   merged,
		suffix:   formatFields(merged),
		level:    level,
		disabled: disabled,
	}
}

// WithComponent tags lines with the subsystem that wrote them.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// SetOutput redirects this logger and every logger sharing its sink.
func (l *Logger) SetOutput(w io.Writer) {
	if l.sink == nil {
		return
	}
	l.sink.mu.Lock()
	l.sink.out = w
	l.sink.mu.Unlock()
}

func (l *Logger) Disable() { l.setDisabled(true) }

func (l *Logger) Enable() { l.setDisabled(false) }

func (l *Logger) setDisabled(v bool) {
	l.mu.Lock()
	l.disabled = v
	l.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }

func (l *Logger) Info(msg string, args ...any) { l.log(LogLevelInfo, msg, args) }

func (l *Logger) Warn(msg string, args ...any) { l.log(LogLevelWarn, msg, args) }

func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return !l.disabled && level >= l.level && l.sink != nil
}

func (l *Logger) log(level LogLevel, msg string, args []any) {
	if !l.enabled(level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(l.sink.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&sb, " [%s] ", level)
	if l.prefix != "" {
		sb.WriteString(l.prefix + ": ")
	}
	sb.WriteString(msg)
	sb.WriteString(l.suffix)
	sb.WriteByte('\n')

	l.sink.write(sb.String())
}

// formatFields renders fields as " {a=1, b=2}" in key order.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return " {" + strings.Join(parts, ", ") + "}"
}

// NullLogger discards everything, including output from loggers derived
// from it.
var NullLogger = &Logger{disabled: true}

var (
	appLogger   *Logger
	appLoggerMu sync.Mutex
)

// GetLogger returns the process-wide logger, creating a discarding one on
// first use.
func GetLogger() *Logger {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	if appLogger == nil {
		appLogger = NewLogger(DefaultLoggerConfig())
	}
	return appLogger
}

// SetLogger sets the process-wide logger.
func SetLogger(l *Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}

// Logger returns the application's logger, or the process-wide one.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return GetLogger()
	}
	return app.logger
}

func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.Logger().WithComponent(component).Error("%v", err)
	}
}
