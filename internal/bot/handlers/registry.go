package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its middleware.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands returns every bot command keyed by its slash form.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	command := func(pattern string, h tgbot.HandlerFunc, mw ...tgbot.Middleware) {
		handlers["/"+pattern] = RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     h,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  mw,
		}
	}

	command("start", NewStartHandler(deps))
	command("help", NewHelpHandler(deps))
	command("steps", NewStepsHandler(deps))
	command("tidy", NewTidyHandler(deps))

	adminOnly := AdminOnly(deps)
	command("save", NewSaveHandler(deps), adminOnly)
	command("stats", NewStatsHandler(deps), adminOnly)

	return handlers
}
