package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test: ")
	l.SetLevel(LogLevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold messages written:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("threshold messages missing:\n%s", out)
	}
}

func TestLoggerPrefixAndLevelTag(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "osc: ")
	l.Info("listening on %d", 3819)

	out := buf.String()
	if !strings.Contains(out, "[INFO] osc: listening on 3819") {
		t.Errorf("unexpected line: %q", out)
	}
}

func TestLoggerOffLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "")
	l.SetLevel(LogLevelOff)

	l.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("LogLevelOff still wrote: %q", buf.String())
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestDefaultLoggerSwap(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	var buf bytes.Buffer
	SetDefault(New(&buf, "swap: "))
	Default().Info("hello")

	if !strings.Contains(buf.String(), "swap: hello") {
		t.Errorf("default logger not swapped: %q", buf.String())
	}
}
