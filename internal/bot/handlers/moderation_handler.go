package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/telegram"
)

// NewModerationHandler returns a handler that deletes every message the
// blocked user posts in the target chat.
func NewModerationHandler(deps HandlerDeps) bot.HandlerFunc {
	return moderationHandler{deps}.Handle
}

type moderationHandler struct {
	deps HandlerDeps
}

func (h moderationHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", StageModeration)

	msg := telegram.EffectiveMessage(update)
	if msg == nil {
		return
	}

	if msg.From == nil {
		log.WarnContext(ctx, "Message has no author, cannot filter by user id. Channel posts carry no author; target the linked discussion chat instead",
			"message_id", msg.ID,
			"chat_id", msg.Chat.ID,
		)
		return
	}

	if msg.From.ID != h.deps.Config.BlockedUserID {
		return
	}

	log.DebugContext(ctx, "Message from blocked user, deleting",
		"chat_id", msg.Chat.ID,
		"message_id", msg.ID,
		"from_user_id", msg.From.ID,
		"from_name", telegram.FullName(msg.From),
		"text", msg.Text,
	)

	ok, err := h.deps.Client.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	switch {
	case err != nil && telegram.IsPermissionError(err):
		log.ErrorContext(ctx, "Forbidden deleting message, bot lacks 'Delete messages' right or is not an admin",
			"message_id", msg.ID,
			"chat_id", msg.Chat.ID,
			"error", err,
		)
	case err != nil:
		log.ErrorContext(ctx, "Telegram error deleting message",
			"message_id", msg.ID,
			"chat_id", msg.Chat.ID,
			"error", err,
		)
	case !ok:
		log.ErrorContext(ctx, "Telegram did not delete message",
			"message_id", msg.ID,
			"chat_id", msg.Chat.ID,
		)
	default:
		log.InfoContext(ctx, "Deleted message from blocked user",
			"message_id", msg.ID,
			"from_user_id", msg.From.ID,
			"chat_id", msg.Chat.ID,
		)
	}
}
