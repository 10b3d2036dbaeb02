package bot_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/edgard/texttidy/internal/bot"
	"github.com/edgard/texttidy/internal/bot/tasks"
	"github.com/edgard/texttidy/internal/config"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noop(context.Context) error { return nil }

func TestSchedulerStartSkipsUnusableTasks(t *testing.T) {
	t.Parallel()

	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"normalize_pending": {Enabled: true, Schedule: "0 */5 * * * *"},
		"sql_maintenance":   {Enabled: false, Schedule: "0 0 3 * * *"},
		"unregistered":      {Enabled: true, Schedule: "0 0 * * * *"},
		"bad_cron":          {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"normalize_pending": noop,
		"sql_maintenance":   noop,
		"bad_cron":          noop,
	}

	s, err := bot.NewScheduler(discard(), cfg, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if diff := cmp.Diff([]string{"normalize_pending"}, s.ScheduledTasks()); diff != "" {
		t.Errorf("ScheduledTasks() mismatch (-want +got):\n%s", diff)
	}
	if err := s.Start(); err == nil {
		t.Error("second Start() error = nil, want already running")
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	t.Parallel()

	s, err := bot.NewScheduler(discard(), nil, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() before Start error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	s, err := bot.NewScheduler(discard(), &config.SchedulerConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	b := bot.NewBot(discard(), nil, s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil on cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
