package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/mydutch-backend/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	if logger == nil {
		t.Fatal("logger should not be nil")
	}
	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: parseLevel("warn")})
	logger := slog.New(handler)

	logger.Log(context.TODO(), slog.LevelInfo, "suppressed")
	if buf.Len() != 0 {
		t.Errorf("warn level should suppress info, got: %s", buf.String())
	}

	logger.Log(context.TODO(), slog.LevelWarn, "visible")
	if buf.Len() == 0 {
		t.Error("warn level should pass warn records")
	}
}

func TestLogger_JSONOutputIsValid(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.New(handler).Info("hello", slog.String("lemma", "fiets"))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce valid JSON: %v", err)
	}
	if m["lemma"] != "fiets" {
		t.Errorf("lemma attr = %v, want fiets", m["lemma"])
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Error("output should contain the message")
	}
}
