package config

import "github.com/spf13/viper"

// EnvPrefix prefixes environment overrides, e.g. TEXTTIDY_DATABASE_PATH.
const EnvPrefix = "TEXTTIDY"

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "./config.yaml"

// Default values for configuration
const (
	DefaultLogLevel = "info"

	DefaultPipelineName = "default"

	DefaultDBPath = "texttidy.db"

	DefaultWorkerConcurrency = 4
	DefaultWorkerBatchSize   = 500
	DefaultWorkerChunkSize   = 50

	DefaultNormalizeSchedule   = "0 */5 * * * *"
	DefaultMaintenanceSchedule = "0 0 3 * * 0"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("pipeline.definition", "")
	v.SetDefault("pipeline.name", DefaultPipelineName)
	v.SetDefault("pipeline.verbose", false)

	v.SetDefault("resources.dir", "")

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("worker.concurrency", DefaultWorkerConcurrency)
	v.SetDefault("worker.batch_size", DefaultWorkerBatchSize)
	v.SetDefault("worker.chunk_size", DefaultWorkerChunkSize)

	v.SetDefault("scheduler.tasks", map[string]any{
		"normalize_pending": map[string]any{"enabled": true, "schedule": DefaultNormalizeSchedule},
		"sql_maintenance":   map[string]any{"enabled": true, "schedule": DefaultMaintenanceSchedule},
	})

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_user_id", 0)

	v.SetDefault("messages.welcome", "👋 Send me any text and I'll tidy it up. Try /help for commands.")
	v.SetDefault("messages.help", "/tidy <text> - normalise text\n/steps - list available steps\n/save <text> - store a document (admin)\n/stats - document counts (admin)")
	v.SetDefault("messages.unauthorized", "🚫 You are not authorized to use this command.")
	v.SetDefault("messages.provide_text", "ℹ️ Please provide some text after the command.")
	v.SetDefault("messages.general_error", "❌ An error occurred. Please try again later.")
	v.SetDefault("messages.saved", "✅ Document saved for normalisation.")
	v.SetDefault("messages.steps_header", "Available steps:")
	v.SetDefault("messages.stats_template", "Documents: %d\nNormalised: %d\nPending: %d")
	v.SetDefault("messages.empty_normalize", "(nothing left after normalisation)")
}
