// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MaxLogValueLength is the longest log value written; longer values are cut
// and marked "...[TRUNCATED]".
const MaxLogValueLength = 1024

// Logger receives the client's diagnostics as a message plus alternating
// key-value pairs.
//
// DefaultLogger, ZerologLogger and NoOpLogger ship with the package. Any
// structured logger can be adapted:
//
//	type slogLogger struct{ l *slog.Logger }
//
//	func (s slogLogger) Warn(ctx context.Context, msg string, kv ...any) {
//	    s.l.WarnContext(ctx, msg, kv...)
//	}
//	// Debug, Info and Error likewise
//
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.WithLogger(slogLogger{l: slog.Default()}))
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// LogLevel is the lowest severity a DefaultLogger writes
type LogLevel int

// Levels in increasing severity. LogLevelNone writes nothing.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelNone
)

// String returns the upper-case level name used in log lines
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLogLevel converts a case-insensitive level name ("debug", "info",
// "warn", "warning", "error", "none") to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "NONE", "OFF":
		return LogLevelNone, nil
	default:
		return LogLevelNone, fmt.Errorf("invalid log level: %q", s)
	}
}

// DefaultLogger writes single-line records through the standard log package:
//
//	[WARN] Dinstar authentication rejected, retrying url=https://... http_code=401
//
// Records below the configured level are dropped. Output goes wherever
// log.SetOutput points.
//
// Example:
//
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.WithLogger(dinstar.NewDefaultLogger(dinstar.LogLevelDebug)))
type DefaultLogger struct {
	level LogLevel
}

// NewDefaultLogger returns a DefaultLogger writing records at level and above
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelDebug, msg, keysAndValues)
}

func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelInfo, msg, keysAndValues)
}

func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelWarn, msg, keysAndValues)
}

func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelError, msg, keysAndValues)
}

// write formats one record. Keys and values are sanitized; msg is a constant
// of this package and is written as is.
func (l *DefaultLogger) write(level LogLevel, msg string, keysAndValues []any) {
	if level < l.level {
		return
	}

	var b strings.Builder
	b.Grow(len(msg) + 8 + 24*len(keysAndValues))
	b.WriteString("[" + level.String() + "] " + msg)
	eachPair(keysAndValues, func(key, value string) {
		b.WriteString(" " + key + "=" + value)
	})
	log.Println(b.String())
}

// eachPair calls fn with every sanitized key-value pair. A trailing key
// without value is reported as "<MISSING>".
func eachPair(keysAndValues []any, fn func(key, value string)) {
	for i := 0; i < len(keysAndValues); i += 2 {
		value := "<MISSING>"
		if i+1 < len(keysAndValues) {
			value = sanitizeLogValue(keysAndValues[i+1])
		}
		fn(sanitizeLogValue(keysAndValues[i]), value)
	}
}

// sanitizeLogValue renders val for a single log line
//
// Gateway data (SMS text, USSD replies, raw bodies) ends up in log values, so
// a remote party must not be able to forge records: line breaks and tabs
// become spaces, other control bytes and invalid UTF-8 become '.', zero-width
// characters are dropped and the right-to-left override becomes a space.
//
//	"user\n[ERROR] forged" -> "user [ERROR] forged"
func sanitizeLogValue(val any) string {
	str := fmt.Sprint(val)
	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength] + "...[TRUNCATED]"
	}

	var b strings.Builder
	b.Grow(len(str))
	for _, r := range str {
		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == '\f' || r == '\u202E':
			b.WriteByte(' ')
		case r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF':
		case r == utf8.RuneError || r < 0x20 || r == 0x7F:
			b.WriteByte('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ZerologLogger forwards log records to a zerolog.Logger
//
// Key-value pairs become zerolog fields. Values are sanitized the same way as
// DefaultLogger output so that console writers stay single-line.
//
// Example:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.WithLogger(dinstar.NewZerologLogger(zl)))
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps zl as a Logger
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: zl}
}

// Debug logs at zerolog debug level
func (z *ZerologLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Debug(), msg, keysAndValues)
}

// Info logs at zerolog info level
func (z *ZerologLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Info(), msg, keysAndValues)
}

// Warn logs at zerolog warn level
func (z *ZerologLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Warn(), msg, keysAndValues)
}

// Error logs at zerolog error level
func (z *ZerologLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Error(), msg, keysAndValues)
}

func (z *ZerologLogger) emit(ctx context.Context, event *zerolog.Event, msg string, keysAndValues []any) {
	if event == nil {
		// level disabled
		return
	}
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	eachPair(keysAndValues, func(key, value string) {
		event = event.Str(key, value)
	})
	event.Msg(msg)
}

// NoOpLogger discards everything:
//
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.WithLogger(&dinstar.NoOpLogger{}))
type NoOpLogger struct{}

func (*NoOpLogger) Debug(context.Context, string, ...any) {}
func (*NoOpLogger) Info(context.Context, string, ...any)  {}
func (*NoOpLogger) Warn(context.Context, string, ...any)  {}
func (*NoOpLogger) Error(context.Context, string, ...any) {}
