package logger

import (
	"errors"
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger forwards gocron's internal logging to slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger that writes through log with a
// "scheduler_internal" component. Missing-job errors are tagged so they can
// be told apart from task failures.
//
//nolint:ireturn // gocron takes the interface
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gocronLogger{log: log.With("component", "scheduler_internal")}
}

func (l *gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, tagSchedulerErrors(args)...) }
func (l *gocronLogger) Info(msg string, args ...any)  { l.log.Info(msg, tagSchedulerErrors(args)...) }
func (l *gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, tagSchedulerErrors(args)...) }
func (l *gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, tagSchedulerErrors(args)...) }

// tagSchedulerErrors appends an error_kind attribute after each error value.
func tagSchedulerErrors(args []any) []any {
	out := make([]any, 0, len(args)+2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out = append(out, args[i])
			break
		}
		key, val := args[i], args[i+1]
		out = append(out, key, val)

		err, ok := val.(error)
		if !ok {
			continue
		}
		kind := "scheduler"
		if errors.Is(err, gocron.ErrJobNotFound) {
			kind = "job_not_found"
		}
		out = append(out, "error_kind", kind)
	}
	return out
}
