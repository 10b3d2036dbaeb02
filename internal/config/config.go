// Package config loads texttidy configuration from an optional file, TEXTTIDY_*
// environment variables and built-in defaults, and validates the result.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/hjson/hjson-go"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// PipelineConfig selects the pipeline definition used by every front-end.
// An empty Definition means the packaged default pipeline.
type PipelineConfig struct {
	Definition string `mapstructure:"definition"`
	Name       string `mapstructure:"name" validate:"required"`
	Verbose    bool   `mapstructure:"verbose"`
}

// ResourcesConfig optionally points at a directory replacing the packaged
// resource files.
type ResourcesConfig struct {
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig locates the document store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// WorkerConfig sizes batch normalisation.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=64"`
	BatchSize   int `mapstructure:"batch_size"  validate:"min=1"`
	ChunkSize   int `mapstructure:"chunk_size"  validate:"min=1"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task on a six-field cron schedule (seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// TelegramConfig configures the chat front-end.
type TelegramConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Token       string `mapstructure:"token"         validate:"required_if=Enabled true"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"min=0"`

	// BotInfo is filled at runtime from getMe.
	BotInfo *models.User `mapstructure:"-" validate:"-"`
}

// MessagesConfig holds user-facing chat replies.
type MessagesConfig struct {
	Welcome        string `mapstructure:"welcome"         validate:"required"`
	Help           string `mapstructure:"help"            validate:"required"`
	Unauthorized   string `mapstructure:"unauthorized"    validate:"required"`
	ProvideText    string `mapstructure:"provide_text"    validate:"required"`
	GeneralError   string `mapstructure:"general_error"   validate:"required"`
	Saved          string `mapstructure:"saved"           validate:"required"`
	StepsHeader    string `mapstructure:"steps_header"    validate:"required"`
	StatsTemplate  string `mapstructure:"stats_template"  validate:"required"`
	EmptyNormalize string `mapstructure:"empty_normalize" validate:"required"`
}

// LoadConfig reads path (when it exists), applies TEXTTIDY_* environment
// overrides on top of defaults and validates the result. A missing file is
// not an error; an unreadable or invalid one is.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			slog.Debug("Config file not found, using defaults", "path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// readConfigFile loads path into v. Hjson files are converted to JSON first,
// every other extension is handled by viper directly.
func readConfigFile(v *viper.Viper, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var tmp map[string]any
		if err := hjson.Unmarshal(buf, &tmp); err != nil {
			return fmt.Errorf("parse hjson: %w", err)
		}
		data, err := json.Marshal(tmp)
		if err != nil {
			return fmt.Errorf("convert hjson: %w", err)
		}
		v.SetConfigType("json")
		return v.ReadConfig(bytes.NewReader(data))
	}

	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	return v.ReadInConfig()
}
