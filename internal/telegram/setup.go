// Package telegram wraps the go-telegram/bot client: construction, the
// narrow API surface the bot relies on, and helpers for reading updates and
// classifying Bot API errors.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client is the part of the Bot API the moderation handlers and startup
// diagnostics use. *bot.Bot satisfies it.
type Client interface {
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	GetMe(ctx context.Context) (*models.User, error)
	GetChat(ctx context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

var _ Client = (*bot.Bot)(nil)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
// The library authenticates the token with getMe unless bot.WithSkipGetMe is passed.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
