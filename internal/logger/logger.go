// Package logger provides structured logging functionality for the bot.
// It uses Go's slog package for logging with configurable levels and formats.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sourcegraph/conc/panics"
)

// Name is attached to every record as the "logger" attribute.
const Name = "purgebot"

// NewLogger creates a new slog Logger writing to stdout with the specified
// level and format. See New.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	return New(os.Stdout, levelStr, jsonOutput)
}

// New creates a slog Logger writing to w. Level names are case-insensitive
// and unknown names fall back to info. If jsonOutput is true, logs will be
// formatted as JSON, otherwise as text.
func New(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("logger", Name)
}

// ParseLevel maps a severity name to a slog level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "critical", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware creates a logging middleware for the Telegram bot.
// It logs information about incoming updates at debug level.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			startTime := time.Now()

			logEntry := log.With("update_id", update.ID)

			updateType := "other"
			var msg *models.Message
			switch {
			case update.Message != nil:
				updateType, msg = "message", update.Message
			case update.EditedMessage != nil:
				updateType, msg = "edited_message", update.EditedMessage
			case update.ChannelPost != nil:
				updateType, msg = "channel_post", update.ChannelPost
			case update.EditedChannelPost != nil:
				updateType, msg = "edited_channel_post", update.EditedChannelPost
			}
			logEntry = logEntry.With("update_type", updateType)

			if msg != nil {
				var userID int64
				if msg.From != nil {
					userID = msg.From.ID
				}
				logEntry = logEntry.With(
					"message_id", msg.ID,
					"chat_id", msg.Chat.ID,
					"user_id", userID,
					"text_preview", truncateString(msg.Text, 50),
				)
			}

			logEntry.DebugContext(ctx, "Processing update")

			next(ctx, b, update)

			logEntry.DebugContext(ctx, "Finished processing update", "duration", time.Since(startTime))
		}
	}
}

// Recoverer is the outermost error boundary of the update pipeline: a panic
// escaping next is logged with its stack and swallowed.
func Recoverer(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var pc panics.Catcher
			pc.Try(func() { next(ctx, b, update) })
			if r := pc.Recovered(); r != nil {
				log.ErrorContext(ctx, "Unhandled panic while processing update",
					"update_id", update.ID,
					"panic", r.Value,
					"stack", string(r.Stack),
				)
			}
		}
	}
}

// ErrorsHandler returns a callback for bot.WithErrorsHandler that logs
// transport errors reported by the polling loop.
func ErrorsHandler(log *slog.Logger) bot.ErrorsHandler {
	return func(err error) {
		log.Error("Telegram client error", "error", err)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
