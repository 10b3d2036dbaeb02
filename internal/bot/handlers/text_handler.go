package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTextHandler returns the default handler: plain text sent in a private
// chat is normalised and echoed back. Group messages and unknown commands
// are ignored.
func NewTextHandler(deps HandlerDeps) bot.HandlerFunc {
	h := tidyHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		msg := update.Message
		if msg == nil || msg.Chat.Type != models.ChatTypePrivate {
			return
		}
		text := strings.TrimSpace(msg.Text)
		if text == "" || strings.HasPrefix(text, "/") {
			return
		}

		log := deps.Logger.With("handler", "text")
		log.DebugContext(ctx, "Normalising private message", "chat_id", msg.Chat.ID)
		sendText(ctx, b, log, msg.Chat.ID, h.reply(ctx, text))
	}
}
