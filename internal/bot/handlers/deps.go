package handlers

import (
	"log/slog"

	"github.com/edgard/texttidy/internal/config"
	"github.com/edgard/texttidy/internal/database"
	"github.com/edgard/texttidy/pkg/pipeline"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Registry   *pipeline.Registry
	Definition pipeline.Definition
}
