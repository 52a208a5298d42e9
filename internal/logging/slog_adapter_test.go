// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := zerologLevel(tt.level); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn logger")
	}
}

func TestSlogLogger_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf))

	logger.Info("service restarted",
		slog.String("service", "catalog-refresh"),
		slog.Int("attempt", 3),
		slog.Bool("backoff", true),
		slog.Duration("wait", 2*time.Second),
		slog.Any("err", errors.New("upstream timeout")),
	)

	out := buf.String()
	for _, want := range []string{
		`"message":"service restarted"`,
		`"service":"catalog-refresh"`,
		`"attempt":3`,
		`"backoff":true`,
		`"err":"upstream timeout"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogLogger_GroupsAndWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf)).
		With(slog.String("tree", "root")).
		WithGroup("supervisor").
		WithGroup("event")

	logger.Warn("backoff", slog.String("name", "http"))

	out := buf.String()
	if !strings.Contains(out, `"supervisor.event.name":"http"`) {
		t.Errorf("group prefix wrong: %s", out)
	}
	if !strings.Contains(out, `tree":"root"`) {
		t.Errorf("With attribute missing: %s", out)
	}
}

func TestSlogLogger_NestedGroupAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf))

	logger.Info("nested", slog.Group("catalog", slog.Int("books", 20)))

	if !strings.Contains(buf.String(), `"catalog.books":20`) {
		t.Errorf("nested group flattened wrong: %s", buf.String())
	}
}

func TestSlogLogger_AttrsBeforeGroupStayUnqualified(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf)).
		With(slog.String("tree", "root")).
		WithGroup("event").
		With(slog.String("kind", "backoff"))

	logger.Info("tick")

	out := buf.String()
	if !strings.Contains(out, `"tree":"root"`) || !strings.Contains(out, `"event.kind":"backoff"`) {
		t.Errorf("qualification wrong: %s", out)
	}
}
