package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: "info", Format: "json", Output: &buf})
	log = WithExecutable(log, "drills")

	log.Debug("hidden")
	log.Info("visible", slog.String("kind", "prime"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log entry, got %q: %v", lines[0], err)
	}
	if entry["msg"] != "visible" {
		t.Errorf("Expected msg 'visible', got %v", entry["msg"])
	}
	if entry["executable"] != "drills" {
		t.Errorf("Expected executable 'drills', got %v", entry["executable"])
	}
	if entry["kind"] != "prime" {
		t.Errorf("Expected kind 'prime', got %v", entry["kind"])
	}
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: "debug", Format: "text", Output: &buf})
	WithService(log, "httpapi").Debug("hello")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "service=httpapi") {
		t.Errorf("Unexpected text output: %q", out)
	}
}

func TestWithLambda(t *testing.T) {
	var buf bytes.Buffer
	log := WithLambda(NewLogger(Config{Output: &buf}), "fn", "1", "req-1")
	log.Info("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log entry: %v", err)
	}
	group, ok := entry["lambda"].(map[string]any)
	if !ok {
		t.Fatalf("Expected lambda group, got %v", entry["lambda"])
	}
	if group["request_id"] != "req-1" {
		t.Errorf("Expected request_id 'req-1', got %v", group["request_id"])
	}
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_ADD_SOURCE", "true")

	cfg := DefaultConfig()
	if cfg.Level != "debug" || cfg.Format != "text" || !cfg.AddSource {
		t.Errorf("Unexpected config from environment: %+v", cfg)
	}
}
