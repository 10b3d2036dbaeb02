package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-co-op/gocron/v2"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONFiltersLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", true)
	log.Info("dropped")
	log.Warn("kept", "component", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" || entry["component"] != "test" {
		t.Errorf("entry = %v, want msg kept with component test", entry)
	}
}

func TestMiddlewareCallsNext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "debug", false)

	called := false
	h := Middleware(log)(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})
	h(context.Background(), nil, &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:   3,
			Chat: models.Chat{ID: 11},
			From: &models.User{ID: 5},
			Text: strings.Repeat("é", 80),
		},
	})

	if !called {
		t.Fatal("Middleware did not call next handler")
	}
	out := buf.String()
	for _, want := range []string{"update_id=7", "chat_id=11", "user_id=5", "update_type=message", "Finished processing update"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer string", 8, "a lon..."},
		{"ééééé", 4, "é..."},
		{"abc", 2, "..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestGocronLoggerTagsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gl := NewGocronLogger(New(&buf, "debug", true))
	gl.Error("job lookup failed", "error", gocron.ErrJobNotFound, "job", "normalize_pending")
	gl.Info("odd args", "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["error_kind"] != "job_not_found" || entry["job"] != "normalize_pending" {
		t.Errorf("entry = %v, want error_kind job_not_found and job kept", entry)
	}
	if entry["component"] != "scheduler_internal" {
		t.Errorf("component = %v", entry["component"])
	}
}
