package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/texttidy/internal/database"
)

// DocumentSource labels documents stored from chat.
const DocumentSource = "telegram"

// NewSaveHandler returns a handler for /save <text>, storing the text as a
// pending document.
func NewSaveHandler(deps HandlerDeps) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		log := deps.Logger.With("handler", "save")
		chatID := update.Message.Chat.ID

		text := commandArgument(update.Message.Text)
		if text == "" {
			sendText(ctx, b, log, chatID, deps.Config.Messages.ProvideText)
			return
		}

		doc := &database.Document{Source: DocumentSource, Content: text}
		if err := deps.Store.SaveDocument(ctx, doc); err != nil {
			log.ErrorContext(ctx, "Failed to save document", "error", err, "chat_id", chatID)
			sendText(ctx, b, log, chatID, deps.Config.Messages.GeneralError)
			return
		}

		log.InfoContext(ctx, "Saved document from chat", "document_id", doc.ID, "chat_id", chatID)
		sendText(ctx, b, log, chatID, deps.Config.Messages.Saved)
	}
}
