// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

// Init mutates globals, so these tests do not run in parallel.
func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("book_id", "ol-OL1W").Msg("book added")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["message"] != "book added" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["service"] != "bookoptimal" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["book_id"] != "ol-OL1W" {
		t.Errorf("book_id = %v", entry["book_id"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected time field")
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Logger()
	logger.Debug().Msg("hidden debug")
	Info().Msg("hidden info")
	Warn().Msg("visible warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages were written: %s", out)
	}
	if !strings.Contains(out, "visible warn") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") {
		t.Errorf("console output missing message: %s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output looks like JSON: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Component("library")
	logger.Info().Msg("opened")

	out := buf.String()
	if !strings.Contains(out, `"component":"library"`) || !strings.Contains(out, `"service":"bookoptimal"`) {
		t.Errorf("unexpected output: %s", out)
	}
	if strings.Contains(out, `"time"`) {
		t.Errorf("time field written with Timestamp off: %s", out)
	}
}

func TestNew_DoesNotReplaceProcessLogger(t *testing.T) {
	var global, local bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &global})
	t.Cleanup(func() { Init(DefaultConfig()) })

	l := New(Config{Level: "info", Format: "json", Output: &local})
	l.Info().Msg("local only")

	if global.Len() != 0 {
		t.Errorf("process logger received %q", global.String())
	}
	if !strings.Contains(local.String(), "local only") {
		t.Errorf("local logger output = %q", local.String())
	}
}
