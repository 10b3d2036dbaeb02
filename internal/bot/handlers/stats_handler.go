package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for /stats reporting document counts.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		log := deps.Logger.With("handler", "stats")
		chatID := update.Message.Chat.ID

		stats, err := deps.Store.CountDocuments(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to count documents", "error", err)
			sendText(ctx, b, log, chatID, deps.Config.Messages.GeneralError)
			return
		}
		sendText(ctx, b, log, chatID,
			fmt.Sprintf(deps.Config.Messages.StatsTemplate, stats.Total, stats.Normalized, stats.Pending))
	}
}
