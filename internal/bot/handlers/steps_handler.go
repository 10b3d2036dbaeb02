package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStepsHandler returns a handler for the /steps command listing every
// registered transform.
func NewStepsHandler(deps HandlerDeps) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		log := deps.Logger.With("handler", "steps")
		sendText(ctx, b, log, update.Message.Chat.ID, stepsReply(deps))
	}
}

func stepsReply(deps HandlerDeps) string {
	var sb strings.Builder
	sb.WriteString(deps.Config.Messages.StepsHeader)
	for _, name := range deps.Registry.Names() {
		sb.WriteString("\n• ")
		sb.WriteString(name)
	}
	return sb.String()
}
