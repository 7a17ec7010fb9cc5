// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// captureLogs points the process logger at a buffer for the rest of the test.
func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not one JSON line: %v (%s)", err, buf.String())
	}
	return entry
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller || !cfg.Timestamp || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit(t *testing.T) {
	buf := captureLogs(t, "info")

	WithComponent("dataset").Info().Int("movies", 3).Msg("Dataset loaded")

	entry := decodeLine(t, buf)
	if entry["level"] != "info" || entry["message"] != "Dataset loaded" {
		t.Errorf("entry = %v", entry)
	}
	if entry["component"] != "dataset" || entry["movies"] != float64(3) {
		t.Errorf("fields = %v", entry)
	}
}

func TestInitFiltersBelowLevel(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info().Msg("dropped")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn message should be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" ERROR ", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithRequest(t *testing.T) {
	buf := captureLogs(t, "info")

	ctx := WithRequest(context.Background(), "req-1")
	Ctx(ctx).Info().Msg("scoped")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if id, _ := entry["correlation_id"].(string); len(id) != 8 {
		t.Errorf("correlation_id = %v, want 8 characters", entry["correlation_id"])
	}
}

func TestCtxWithoutRequest(t *testing.T) {
	buf := captureLogs(t, "info")

	Ctx(context.Background()).Info().Msg("plain")

	entry := decodeLine(t, buf)
	if _, ok := entry["request_id"]; ok {
		t.Errorf("unexpected request_id in %v", entry)
	}
	if entry["message"] != "plain" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestNewSlogLogger(t *testing.T) {
	buf := captureLogs(t, "info")

	logger := NewSlogLogger().With(slog.String("tree", "cinematch"))
	logger.WithGroup("svc").Warn("service restarted",
		slog.String("name", "http-server"),
		slog.Int("failures", 2),
		slog.Group("backoff", slog.Bool("active", true)),
	)
	logger.Debug("below level")

	entry := decodeLine(t, buf)
	if entry["level"] != "warn" || entry["message"] != "service restarted" {
		t.Errorf("entry = %v", entry)
	}
	if entry["tree"] != "cinematch" {
		t.Errorf("tree = %v", entry["tree"])
	}
	if entry["svc.name"] != "http-server" || entry["svc.failures"] != float64(2) {
		t.Errorf("svc fields = %v", entry)
	}
	if entry["svc.backoff.active"] != true {
		t.Errorf("svc.backoff.active = %v", entry["svc.backoff.active"])
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
