// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// captureLog redirects the standard logger for the duration of the test
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

// TestCaptureLog_RestoresWriter verifies the standard logger stays usable
// after a capturing test, since httptest servers log handshake errors there
func TestCaptureLog_RestoresWriter(t *testing.T) {
	prev := log.Writer()

	t.Run("capture", func(t *testing.T) {
		buf := captureLog(t)
		NewDefaultLogger(LogLevelWarn).Warn(context.Background(), "captured")
		if !strings.Contains(buf.String(), "captured") {
			t.Errorf("expected captured record, got %q", buf.String())
		}
	})

	if log.Writer() != prev {
		t.Fatal("standard logger writer not restored")
	}
	log.Print("written after capture") // panics on a nil writer
}

// TestDefaultLogger_LogLevels verifies log level filtering
func TestDefaultLogger_LogLevels(t *testing.T) {
	tests := []struct {
		name          string
		level         LogLevel
		logFunc       func(*DefaultLogger)
		expectMessage bool
	}{
		{
			name:          "debug level logs debug",
			level:         LogLevelDebug,
			logFunc:       func(l *DefaultLogger) { l.Debug(context.Background(), "queue polled") },
			expectMessage: true,
		},
		{
			name:          "info level filters debug",
			level:         LogLevelInfo,
			logFunc:       func(l *DefaultLogger) { l.Debug(context.Background(), "queue polled") },
			expectMessage: false,
		},
		{
			name:          "warn level filters info",
			level:         LogLevelWarn,
			logFunc:       func(l *DefaultLogger) { l.Info(context.Background(), "client created") },
			expectMessage: false,
		},
		{
			name:          "warn level logs warn",
			level:         LogLevelWarn,
			logFunc:       func(l *DefaultLogger) { l.Warn(context.Background(), "auth retry") },
			expectMessage: true,
		},
		{
			name:          "error level filters warn",
			level:         LogLevelError,
			logFunc:       func(l *DefaultLogger) { l.Warn(context.Background(), "auth retry") },
			expectMessage: false,
		},
		{
			name:          "error level logs error",
			level:         LogLevelError,
			logFunc:       func(l *DefaultLogger) { l.Error(context.Background(), "transport error") },
			expectMessage: true,
		},
		{
			name:          "none level filters all",
			level:         LogLevelNone,
			logFunc:       func(l *DefaultLogger) { l.Error(context.Background(), "transport error") },
			expectMessage: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			tt.logFunc(NewDefaultLogger(tt.level))

			output := buf.String()
			if tt.expectMessage && output == "" {
				t.Errorf("expected log message but got none")
			}
			if !tt.expectMessage && output != "" {
				t.Errorf("expected no log message but got: %s", output)
			}
		})
	}
}

// TestDefaultLogger_Format verifies the [LEVEL] message key=value layout
func TestDefaultLogger_Format(t *testing.T) {
	buf := captureLog(t)

	NewDefaultLogger(LogLevelDebug).Warn(context.Background(), "Dinstar authentication failed",
		"http_code", 401, "user", "admin", "dangling")

	output := buf.String()
	for _, want := range []string{"[WARN] Dinstar authentication failed", "http_code=401", "user=admin", "dangling=<MISSING>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected log to contain %q but got: %s", want, output)
		}
	}
}

// TestSanitizeLogValue tests neutralization of log injection vectors
func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "plain", input: "+15550100", expected: "+15550100"},
		{name: "integer", input: 202, expected: "202"},
		{name: "newline in sms text", input: "balance 5\n[ERROR] forged", expected: "balance 5 [ERROR] forged"},
		{name: "carriage return", input: "a\rb", expected: "a b"},
		{name: "tab", input: "a\tb", expected: "a b"},
		{name: "form feed", input: "a\x0Cb", expected: "a b"},
		{name: "ANSI escape", input: "x\x1B[31my", expected: "x.[31my"},
		{name: "bell and backspace", input: "a\x07\x08b", expected: "a..b"},
		{name: "null byte", input: "a\x00b", expected: "a.b"},
		{name: "zero-width space", input: "a\u200Bb", expected: "ab"},
		{name: "byte order mark", input: "a\uFEFFb", expected: "ab"},
		{name: "right-to-left override", input: "a\u202Eb", expected: "a b"},
		{name: "unicode ussd reply", input: "Ваш баланс 5 руб", expected: "Ваш баланс 5 руб"},
		{name: "invalid utf-8", input: "a\xffb", expected: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeLogValue() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestSanitizeLogValue_Truncation tests value truncation
func TestSanitizeLogValue_Truncation(t *testing.T) {
	exact := sanitizeLogValue(strings.Repeat("a", MaxLogValueLength))
	if strings.Contains(exact, "[TRUNCATED]") {
		t.Error("unexpected truncation at exactly MaxLogValueLength")
	}

	long := sanitizeLogValue(strings.Repeat("a", MaxLogValueLength+100))
	if !strings.HasSuffix(long, "...[TRUNCATED]") {
		t.Errorf("expected truncation marker, got suffix %q", long[len(long)-20:])
	}
	if len(long) != MaxLogValueLength+len("...[TRUNCATED]") {
		t.Errorf("unexpected truncated length %d", len(long))
	}
}

// TestNoOpLogger verifies that NoOpLogger discards everything
func TestNoOpLogger(t *testing.T) {
	buf := captureLog(t)

	logger := &NoOpLogger{}
	logger.Debug(context.Background(), "debug", "key", "value")
	logger.Info(context.Background(), "info", "port", 1)
	logger.Warn(context.Background(), "warn")
	logger.Error(context.Background(), "error", "dangling")

	if buf.String() != "" {
		t.Errorf("NoOpLogger produced output: %s", buf.String())
	}
}

// TestLogLevel_String tests LogLevel string representation
func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelNone, "NONE"},
		{LogLevel(42), "LEVEL(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestParseLogLevel tests level name parsing
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: LogLevelDebug},
		{input: "INFO", want: LogLevelInfo},
		{input: " warn ", want: LogLevelWarn},
		{input: "warning", want: LogLevelWarn},
		{input: "Error", want: LogLevelError},
		{input: "none", want: LogLevelNone},
		{input: "off", want: LogLevelNone},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLogLevel(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLogLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	// every level round-trips through its name
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone} {
		got, err := ParseLogLevel(level.String())
		if err != nil || got != level {
			t.Errorf("round trip of %s failed: %v, %v", level, got, err)
		}
	}
}

// TestZerologLogger verifies fields, levels and sanitization of the zerolog adapter
func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug(context.Background(), "filtered", "key", "value")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got: %s", buf.String())
	}

	logger.Warn(context.Background(), "Dinstar authentication failed",
		"http_code", 401,
		"body", "line1\nline2",
		"dangling")

	line := buf.String()
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected a single log line, got: %q", line)
	}
	if got := gjson.Get(line, "level").String(); got != "warn" {
		t.Errorf("level = %q, want warn", got)
	}
	if got := gjson.Get(line, "message").String(); got != "Dinstar authentication failed" {
		t.Errorf("message = %q", got)
	}
	if got := gjson.Get(line, "http_code").String(); got != "401" {
		t.Errorf("http_code = %q, want 401", got)
	}
	if got := gjson.Get(line, "body").String(); got != "line1 line2" {
		t.Errorf("body = %q, want sanitized value", got)
	}
	if got := gjson.Get(line, "dangling").String(); got != "<MISSING>" {
		t.Errorf("dangling = %q, want <MISSING>", got)
	}
}

// TestZerologLogger_Levels verifies the mapping of each method to a zerolog level
func TestZerologLogger_Levels(t *testing.T) {
	tests := []struct {
		name string
		call func(*ZerologLogger)
		want string
	}{
		{"debug", func(l *ZerologLogger) { l.Debug(context.Background(), "m") }, "debug"},
		{"info", func(l *ZerologLogger) { l.Info(context.Background(), "m") }, "info"},
		{"warn", func(l *ZerologLogger) { l.Warn(context.Background(), "m") }, "warn"},
		{"error", func(l *ZerologLogger) { l.Error(context.Background(), "m") }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.call(NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			if got := gjson.Get(buf.String(), "level").String(); got != tt.want {
				t.Errorf("level = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSecurity_ReDoSProtection tests the size limits of log redaction
func TestSecurity_ReDoSProtection(t *testing.T) {
	client := &Client{
		prettyPrintLogs:   true,
		redactionPatterns: defaultRedactionPatterns,
		logger:            &NoOpLogger{},
	}

	t.Run("size limit exceeded", func(t *testing.T) {
		large := strings.Repeat(`{"text":"x"}`, 100000)
		if got := client.prepareJSONForLogging(large); got != JSONTooLargeMessage {
			t.Errorf("Expected JSONTooLargeMessage, got: %.40q", got)
		}
	})

	t.Run("sensitive field count limit", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("[")
		for i := 0; i <= MaxSensitiveFields; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`{"token":"t"}`)
		}
		b.WriteString("]")
		if got := client.prepareJSONForLogging(b.String()); got != JSONTooManySensitiveMsg {
			t.Errorf("Expected JSONTooManySensitiveMsg, got: %.40q", got)
		}
	})
}

// TestPrepareJSONForLogging tests redaction and pretty-printing of bodies
func TestPrepareJSONForLogging(t *testing.T) {
	tests := []struct {
		name        string
		prettyPrint bool
		input       string
		wantLines   bool
		wantRedact  string
	}{
		{
			name:        "pretty send_sms body",
			prettyPrint: true,
			input:       `{"text":"hi","param":[{"number":"+15550100","user_id":1}]}`,
			wantLines:   true,
		},
		{
			name:        "compact send_sms body",
			prettyPrint: false,
			input:       `{"text":"hi","param":[{"number":"+15550100","user_id":1}]}`,
		},
		{
			name:        "password redacted before formatting",
			prettyPrint: true,
			input:       `{"username":"admin","password":"s3cret"}`,
			wantLines:   true,
			wantRedact:  "s3cret",
		},
		{
			name:        "secret redacted with whitespace",
			prettyPrint: false,
			input:       `{"secret" :  "hunter2"}`,
			wantRedact:  "hunter2",
		},
		{
			name:        "malformed JSON falls back to raw",
			prettyPrint: true,
			input:       `{"error_code":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{
				prettyPrintLogs:   tt.prettyPrint,
				redactionPatterns: defaultRedactionPatterns,
				logger:            &NoOpLogger{},
			}

			got := client.prepareJSONForLogging(tt.input)

			if got == "" {
				t.Fatal("prepareJSONForLogging returned empty string")
			}
			if tt.wantLines && !strings.Contains(got, "\n  ") {
				t.Errorf("expected indented multiline output, got: %q", got)
			}
			if !tt.wantLines && strings.Contains(got, "\n") {
				t.Errorf("expected single-line output, got: %q", got)
			}
			if tt.wantRedact != "" {
				if strings.Contains(got, tt.wantRedact) {
					t.Errorf("expected %q to be redacted, got: %s", tt.wantRedact, got)
				}
				if !strings.Contains(got, "[REDACTED]") {
					t.Errorf("expected [REDACTED] marker, got: %s", got)
				}
			}
		})
	}
}

// BenchmarkSanitizeLogValue benchmarks log sanitization performance
func BenchmarkSanitizeLogValue(b *testing.B) {
	inputs := map[string]string{
		"short":      "+15550100",
		"sms text":   "Your code is 1234\nReply STOP to opt out",
		"unicode":    "Ваш баланс 5 руб",
		"truncation": strings.Repeat("a", MaxLogValueLength+100),
	}

	for name, input := range inputs {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = sanitizeLogValue(input)
			}
		})
	}
}
