package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("with default output", func(t *testing.T) {
		logger := NewLogger(Config{Level: InfoLevel})
		if logger == nil {
			t.Fatal("NewLogger returned nil")
		}
	})

	t.Run("with custom output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(Config{Level: InfoLevel, Output: buf})
		if logger.writer != buf {
			t.Error("Logger should use provided output writer")
		}
	})
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		configLvl LogLevel
		logLvl    LogLevel
		shouldLog bool
	}{
		{"debug logs debug", DebugLevel, DebugLevel, true},
		{"info skips debug", InfoLevel, DebugLevel, false},
		{"info logs warn", InfoLevel, WarnLevel, true},
		{"warn skips info", WarnLevel, InfoLevel, false},
		{"error logs error", ErrorLevel, ErrorLevel, true},
		{"error skips warn", ErrorLevel, WarnLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLogger(Config{Level: tt.configLvl, Output: buf})

			logger.log(tt.logLvl, "test message", nil)

			if tt.shouldLog && buf.Len() == 0 {
				t.Error("Expected message to be logged")
			}
			if !tt.shouldLog && buf.Len() > 0 {
				t.Errorf("Expected message to be filtered, got %q", buf.String())
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: buf})

	logger.Info("scan complete", map[string]interface{}{"files": 42})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected valid JSON, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "scan complete" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}
}

func TestHumanFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: buf})

	logger.Warn("skipping file", map[string]interface{}{"file": "pkg/a.zig"})

	out := buf.String()
	if !strings.Contains(out, "[warn]") {
		t.Errorf("Expected level tag in output: %q", out)
	}
	if !strings.Contains(out, "file=pkg/a.zig") {
		t.Errorf("Expected field in output: %q", out)
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	// Must not panic or write anywhere visible.
	logger.Error("dropped", nil)
}
