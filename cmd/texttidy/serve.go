package main

import (
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/internal/bot"
	"github.com/edgard/texttidy/internal/bot/handlers"
	"github.com/edgard/texttidy/internal/bot/tasks"
	"github.com/edgard/texttidy/internal/logger"
	"github.com/edgard/texttidy/internal/telegram"
	"github.com/edgard/texttidy/internal/worker"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and, when enabled, the Telegram front-end until signalled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := a.log

			def, name, err := a.definition("")
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			processor, err := worker.NewProcessor(store, a.reg, def, workerOptions(a, name), log)
			if err != nil {
				return err
			}

			tDeps := tasks.TaskDeps{
				Logger:     log,
				Store:      store,
				Normalizer: processor,
			}
			sched, err := bot.NewScheduler(log, &a.cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
			if err != nil {
				return err
			}

			var tg *tgbot.Bot
			if a.cfg.Telegram.Enabled {
				hDeps := handlers.HandlerDeps{
					Logger:     log,
					Config:     a.cfg,
					Store:      store,
					Registry:   a.reg,
					Definition: def,
				}
				tg, err = telegram.NewTelegramBot(a.cfg.Telegram.Token, log,
					tgbot.WithMiddlewares(logger.Middleware(log)),
					tgbot.WithDefaultHandler(handlers.NewTextHandler(hDeps)),
				)
				if err != nil {
					return err
				}

				a.cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
				if err != nil {
					return fmt.Errorf("failed to get bot info: %w", err)
				}
				log.Info("Retrieved bot info", "bot_id", a.cfg.Telegram.BotInfo.ID, "bot_username", a.cfg.Telegram.BotInfo.Username)

				if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
					return err
				}
			}

			log.Info("Starting texttidy service...", "pipeline", name, "telegram", a.cfg.Telegram.Enabled)
			return bot.NewBot(log, tg, sched).Run(ctx)
		},
	}
}
