package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// EffectiveMessage returns the message carried by update: a new or edited
// message, or a new or edited channel post. It returns nil for other updates.
func EffectiveMessage(update *models.Update) *models.Message {
	if update == nil {
		return nil
	}
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	default:
		return nil
	}
}

// FullName joins the first and last name of user.
func FullName(user *models.User) string {
	if user == nil {
		return ""
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
