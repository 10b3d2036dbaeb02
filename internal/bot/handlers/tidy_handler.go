package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTidyHandler returns a handler for /tidy <text>, replying with the
// normalised text.
func NewTidyHandler(deps HandlerDeps) bot.HandlerFunc {
	return tidyHandler{deps}.Handle
}

type tidyHandler struct {
	deps HandlerDeps
}

func (h tidyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "tidy")

	if update.Message == nil {
		log.WarnContext(ctx, "Tidy handler received update without message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	text := commandArgument(update.Message.Text)
	if text == "" {
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.ProvideText)
		return
	}

	sendText(ctx, b, log, chatID, h.reply(ctx, text))
}

func (h tidyHandler) reply(ctx context.Context, text string) string {
	out, err := normalize(h.deps, text)
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to normalise text", "handler", "tidy", "error", err)
		return h.deps.Config.Messages.GeneralError
	}
	return out
}
