// Package bot orchestrates the long-running texttidy service: the optional
// Telegram front-end and the task scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"
)

// Bot manages the lifecycle of the service components.
type Bot struct {
	logger    *slog.Logger
	tgBot     *tgbot.Bot
	scheduler *Scheduler
}

// NewBot creates the orchestrator. tgBot may be nil when the chat front-end
// is disabled.
func NewBot(logger *slog.Logger, tgBot *tgbot.Bot, scheduler *Scheduler) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		tgBot:     tgBot,
		scheduler: scheduler,
	}
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails. Cancellation is a clean stop.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	if b.tgBot != nil {
		g.Go(func() error {
			b.logger.Info("Starting Telegram bot listener...")
			b.tgBot.Start(gCtx)
			b.logger.Info("Telegram bot listener stopped.")

			if gCtx.Err() == nil {
				return fmt.Errorf("telegram listener stopped unexpectedly")
			}
			return nil
		})
	} else {
		b.logger.Info("Telegram front-end disabled")
	}

	if b.scheduler != nil {
		g.Go(func() error {
			if err := b.scheduler.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping scheduler...")

			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
