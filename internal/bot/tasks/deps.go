// Package tasks implements the scheduled tasks of the texttidy service.
// It includes task definitions, dependencies, and registration.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/texttidy/internal/database"
)

// Normalizer normalises pending documents; *worker.Processor implements it.
type Normalizer interface {
	ProcessPending(ctx context.Context) (int, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger     *slog.Logger
	Store      database.Store
	Normalizer Normalizer
}
