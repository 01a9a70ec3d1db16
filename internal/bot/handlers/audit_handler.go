package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/telegram"
)

// absent is logged in place of missing message fields.
const absent = "<none>"

// NewAuditHandler returns a handler that logs every message it receives.
func NewAuditHandler(deps HandlerDeps) bot.HandlerFunc {
	return auditHandler{deps}.Handle
}

type auditHandler struct {
	deps HandlerDeps
}

func (h auditHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := telegram.EffectiveMessage(update)
	if msg == nil {
		return
	}

	var fromID, fromName any = absent, absent
	if msg.From != nil {
		fromID = msg.From.ID
		fromName = telegram.FullName(msg.From)
	}
	var text any = absent
	if msg.Text != "" {
		text = msg.Text
	}

	h.deps.Logger.InfoContext(ctx, "Message seen",
		"handler", StageAudit,
		"chat_id", msg.Chat.ID,
		"message_id", msg.ID,
		"from_user_id", fromID,
		"from_name", fromName,
		"text", text,
	)
}
