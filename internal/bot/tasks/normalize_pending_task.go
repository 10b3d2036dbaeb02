package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// normalizeTimeout bounds a single scheduled normalisation run.
const normalizeTimeout = 5 * time.Minute

// newNormalizePendingTask creates a task normalising one batch of pending documents.
func newNormalizePendingTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", NormalizePendingTask)

	return func(ctx context.Context) error {
		if deps.Normalizer == nil {
			return errors.New("normalize task has no normalizer")
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, normalizeTimeout)
		defer cancel()

		startTime := time.Now()
		count, err := deps.Normalizer.ProcessPending(timeoutCtx)
		duration := time.Since(startTime)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.WarnContext(ctx, "Timeout normalising pending documents", "duration", duration)
				return fmt.Errorf("operation timed out while normalising documents: %w", err)
			}
			log.ErrorContext(ctx, "Failed to normalise pending documents", "error", err, "duration", duration)
			return fmt.Errorf("failed to normalise pending documents: %w", err)
		}

		if count == 0 {
			log.DebugContext(ctx, "No pending documents to normalise")
			return nil
		}
		log.InfoContext(ctx, "Normalised pending documents", "count", count, "duration", duration)
		return nil
	}
}
