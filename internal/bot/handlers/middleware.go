package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/telegram"
)

// InChat matches updates whose effective message belongs to chatID.
func InChat(chatID int64) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		msg := telegram.EffectiveMessage(update)
		return msg != nil && msg.Chat.ID == chatID
	}
}
