package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edgard/texttidy/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logger.Level != config.DefaultLogLevel {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, config.DefaultLogLevel)
	}
	if cfg.Database.Path != config.DefaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, config.DefaultDBPath)
	}
	if cfg.Worker.Concurrency != config.DefaultWorkerConcurrency {
		t.Errorf("Worker.Concurrency = %d, want %d", cfg.Worker.Concurrency, config.DefaultWorkerConcurrency)
	}
	if !cfg.TaskEnabled("normalize_pending") || !cfg.TaskEnabled("sql_maintenance") {
		t.Errorf("default tasks not enabled: %+v", cfg.Scheduler.Tasks)
	}
	if cfg.Telegram.Enabled {
		t.Error("Telegram.Enabled = true, want false by default")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", `
logger:
  level: debug
  json: true
pipeline:
  definition: ./pipeline.yaml
worker:
  concurrency: 2
  chunk_size: 10
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
telegram:
  enabled: true
  token: "123:abc"
  admin_user_id: 42
`)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("Logger = %+v, want debug/json", cfg.Logger)
	}
	if cfg.Pipeline.Definition != "./pipeline.yaml" {
		t.Errorf("Pipeline.Definition = %q", cfg.Pipeline.Definition)
	}
	if cfg.Worker.Concurrency != 2 || cfg.Worker.ChunkSize != 10 || cfg.Worker.BatchSize != config.DefaultWorkerBatchSize {
		t.Errorf("Worker = %+v", cfg.Worker)
	}
	if cfg.TaskEnabled("sql_maintenance") {
		t.Error("sql_maintenance enabled, want disabled by file")
	}
	if !cfg.TaskEnabled("normalize_pending") {
		t.Error("normalize_pending disabled, want default kept")
	}
	if !cfg.IsAdmin(42) || cfg.IsAdmin(7) {
		t.Errorf("IsAdmin mismatch for admin_user_id %d", cfg.Telegram.AdminUserID)
	}
}

func TestLoadConfigHjson(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.hjson", `{
  # comments and unquoted strings are fine here
  database: {
    path: /tmp/docs.db
  }
  worker: {
    batch_size: 25
  }
}`)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Database.Path != "/tmp/docs.db" {
		t.Errorf("Database.Path = %q, want /tmp/docs.db", cfg.Database.Path)
	}
	if cfg.Worker.BatchSize != 25 {
		t.Errorf("Worker.BatchSize = %d, want 25", cfg.Worker.BatchSize)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TEXTTIDY_DATABASE_PATH", "/var/lib/texttidy.db")
	t.Setenv("TEXTTIDY_LOGGER_LEVEL", "warn")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Database.Path != "/var/lib/texttidy.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("Logger.Level = %q, want warn", cfg.Logger.Level)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "telegram without token", file: "a.yaml", content: "telegram:\n  enabled: true\n"},
		{name: "zero concurrency", file: "b.yaml", content: "worker:\n  concurrency: 0\n"},
		{name: "bad log level", file: "c.yaml", content: "logger:\n  level: loud\n"},
		{name: "enabled task without schedule", file: "d.yaml", content: "scheduler:\n  tasks:\n    extra:\n      enabled: true\n"},
		{name: "malformed yaml", file: "e.yaml", content: "logger: [\n"},
		{name: "malformed hjson", file: "f.hjson", content: "{ logger: { level: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, tt.file, tt.content)
			if _, err := config.LoadConfig(path); err == nil {
				t.Errorf("LoadConfig(%s) error = nil, want error", tt.name)
			}
		})
	}
}

func TestIsAdminWithoutAdmin(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	if cfg.IsAdmin(0) {
		t.Error("IsAdmin(0) = true with no admin configured")
	}
}
