package handlers

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-telegram/bot"

	"github.com/edgard/texttidy/pkg/pipeline"
	"github.com/edgard/texttidy/pkg/tidy"
)

// maxMessageLength is Telegram's limit for a text message, in characters.
const maxMessageLength = 4096

// sendText sends text to chatID, logging delivery failures.
func sendText(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: limitLength(text)})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// commandArgument returns the text following the leading /command token.
func commandArgument(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx:])
}

// normalize runs text through a fresh pipeline bound to the configured definition.
func normalize(deps HandlerDeps, text string) (string, error) {
	p, err := pipeline.New(deps.Definition, deps.Registry, pipeline.WithLogger(deps.Logger))
	if err != nil {
		return "", err
	}
	out, err := p.Process(tidy.Scalar(text))
	if err != nil {
		return "", err
	}
	if out.String() == "" {
		return deps.Config.Messages.EmptyNormalize, nil
	}
	return out.String(), nil
}

func limitLength(text string) string {
	if utf8.RuneCountInString(text) <= maxMessageLength {
		return text
	}
	return string([]rune(text)[:maxMessageLength])
}
