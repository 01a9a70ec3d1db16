// Package main contains the entrypoint for the moderation bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/bot"
	"github.com/edgard/purgebot/internal/bot/handlers"
	"github.com/edgard/purgebot/internal/bot/tasks"
	"github.com/edgard/purgebot/internal/config"
	"github.com/edgard/purgebot/internal/logger"
	"github.com/edgard/purgebot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run wires configuration, logging, the Telegram client, the dispatcher and
// the scheduler, then blocks until ctx is cancelled. It returns 1 only when
// the bot cannot start.
func run(ctx context.Context) int {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "env_file", envFile, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.JSONLogs())
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// The dispatcher needs the client and the client needs the dispatcher as
	// its default handler; updates only flow after Run starts polling.
	var dispatcher *handlers.Dispatcher
	botOpts := botOptions(log, func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		dispatcher.Handle(ctx, b, update)
	})
	tg, err := telegram.NewTelegramBot(cfg.BotToken, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	dispatcher = handlers.NewDispatcher(log, handlers.RegisterAllStages(handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Client: tg,
	})...)

	startupTasks := tasks.RegisterStartupTasks(tasks.TaskDeps{
		Logger: log,
		Config: cfg,
		Client: tg,
	})

	sched, err := bot.NewScheduler(log)
	if err != nil {
		log.Warn("Scheduler could not be created", "error", err)
	}

	app := bot.NewBot(log, cfg, tg, dispatcher, sched, startupTasks)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

// botOptions configures the client to hand every update to handler from the
// polling worker, one update at a time. Start returns only after the worker
// has finished the update in progress.
func botOptions(log *slog.Logger, handler tgbot.HandlerFunc) []tgbot.Option {
	return []tgbot.Option{
		tgbot.WithNotAsyncHandlers(),
		tgbot.WithMiddlewares(logger.Recoverer(log), logger.Middleware(log)),
		tgbot.WithDefaultHandler(handler),
		tgbot.WithErrorsHandler(logger.ErrorsHandler(log)),
	}
}
