// Package bot implements lifecycle management and component orchestration:
// Telegram long polling plus the one-shot startup tasks.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/purgebot/internal/bot/handlers"
	"github.com/edgard/purgebot/internal/bot/tasks"
	"github.com/edgard/purgebot/internal/config"
)

// Poller receives updates until ctx is cancelled. *bot.Bot from
// go-telegram/bot implements it with long polling.
type Poller interface {
	Start(ctx context.Context)
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger       *slog.Logger
	cfg          *config.Config
	tgBot        Poller
	dispatcher   *handlers.Dispatcher
	scheduler    *Scheduler
	startupTasks map[string]tasks.ScheduledTaskFunc
}

// NewBot creates a new instance of the bot. scheduler may be nil when no
// scheduler could be created; startup tasks are then skipped with a warning.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	tgBot Poller,
	dispatcher *handlers.Dispatcher,
	scheduler *Scheduler,
	startupTasks map[string]tasks.ScheduledTaskFunc,
) *Bot {
	return &Bot{
		logger:       logger.With("component", "bot_orchestrator"),
		cfg:          cfg,
		tgBot:        tgBot,
		dispatcher:   dispatcher,
		scheduler:    scheduler,
		startupTasks: startupTasks,
	}
}

// Run starts polling and the scheduler, and blocks until ctx is cancelled or
// a component fails. Before returning it waits for in-flight non-blocking
// handlers.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Bot started",
		"target_chat_id", b.cfg.TargetChatID,
		"blocked_user_id", b.cfg.BlockedUserID,
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	if b.scheduler != nil {
		g.Go(func() error {
			b.scheduleStartupTasks(gCtx)

			if err := b.scheduler.Start(); err != nil {
				b.logger.Error("Failed to start scheduler", "error", err)
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping scheduler...")

			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	} else {
		b.logger.Warn("Scheduler unavailable, startup check skipped. Run with a working scheduler to get the permission diagnostics",
			"tasks", len(b.startupTasks),
		)
	}

	err := g.Wait()
	if b.dispatcher != nil {
		b.dispatcher.Wait()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

func (b *Bot) scheduleStartupTasks(ctx context.Context) {
	if !b.cfg.StartupCheckEnabled {
		b.logger.Warn("Startup check disabled. Set STARTUP_CHECK_ENABLED=true to log bot permissions at startup")
		return
	}

	for name, task := range b.startupTasks {
		if err := b.scheduler.Schedule(ctx, name, b.cfg.StartupCheckDelay, task); err != nil {
			b.logger.Warn("Startup task skipped, could not schedule it", "task_name", name, "error", err)
		}
	}
}
