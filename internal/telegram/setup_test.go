package telegram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/texttidy/internal/bot/handlers"
)

func TestApplyMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	mark := func(name string) bot.Middleware {
		return func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, u *models.Update) {
				calls = append(calls, name)
				next(ctx, b, u)
			}
		}
	}
	h := applyMiddleware(func(context.Context, *bot.Bot, *models.Update) {
		calls = append(calls, "handler")
	}, []bot.Middleware{mark("outer"), mark("inner")})

	h(context.Background(), nil, &models.Update{})

	want := []string{"outer", "inner", "handler"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestNewTelegramBotRequiresToken(t *testing.T) {
	t.Parallel()

	if _, err := NewTelegramBot("", nil); err == nil {
		t.Error("NewTelegramBot(\"\") error = nil, want error")
	}
}

func TestRegisterHandlers(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := RegisterHandlers(nil, log, nil); err == nil {
		t.Error("RegisterHandlers(nil bot) error = nil, want error")
	}

	b, err := NewTelegramBot("123456789:test-token", log, bot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("NewTelegramBot() error = %v", err)
	}
	err = RegisterHandlers(b, log, map[string]handlers.RegisteredHandler{
		"/noop": {
			HandlerType: bot.HandlerTypeMessageText,
			Pattern:     "noop",
			Handler:     func(context.Context, *bot.Bot, *models.Update) {},
			MatchType:   bot.MatchTypeCommandStartOnly,
		},
		"/nil": {Pattern: "nil"},
	})
	if err != nil {
		t.Errorf("RegisterHandlers() error = %v", err)
	}
}

func TestTokenPrefix(t *testing.T) {
	t.Parallel()

	if got := tokenPrefix("123456789:abc"); got != "12345678..." {
		t.Errorf("tokenPrefix() = %q", got)
	}
	if got := tokenPrefix("short"); got != "..." {
		t.Errorf("tokenPrefix(short) = %q", got)
	}
}
