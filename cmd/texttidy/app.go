package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/edgard/texttidy/internal/config"
	"github.com/edgard/texttidy/internal/database"
	"github.com/edgard/texttidy/internal/logger"
	"github.com/edgard/texttidy/pkg/pipeline"
	"github.com/edgard/texttidy/pkg/resources"
)

// app holds what every subcommand shares once configuration is loaded.
type app struct {
	configPath string

	cfg *config.Config
	log *slog.Logger
	res *resources.Resources
	reg *pipeline.Registry
}

func (a *app) load() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)

	if dir := cfg.Resources.Dir; dir != "" {
		a.res, err = resources.LoadFS(os.DirFS(dir))
	} else {
		a.res, err = resources.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}

	a.reg, err = pipeline.NewRegistry(a.res)
	if err != nil {
		return fmt.Errorf("failed to build step registry: %w", err)
	}
	return nil
}

// definition returns the pipeline to run and its name. path overrides the
// configured definition; neither set means the packaged default.
func (a *app) definition(path string) (pipeline.Definition, string, error) {
	name := a.cfg.Pipeline.Name
	if path == "" {
		path = a.cfg.Pipeline.Definition
	} else {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if path == "" {
		def, err := pipeline.DefaultDefinition(a.res)
		return def, name, err
	}
	def, err := pipeline.ReadDefinitionFile(path)
	if err != nil {
		return pipeline.Definition{}, "", err
	}
	a.log.Debug("Loaded pipeline definition", "path", path, "steps", def.Len())
	return def, name, nil
}

// openStore connects to the configured database. The returned func closes it.
func (a *app) openStore() (database.Store, func(), error) {
	if a.cfg.Database.Path == "" {
		return nil, nil, errors.New("database path is not configured")
	}
	db, err := database.NewDB(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return database.NewStore(db, a.log), func() { database.CloseDB(db) }, nil
}
