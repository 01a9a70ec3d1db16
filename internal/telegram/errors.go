package telegram

import (
	"errors"
	"strings"

	"github.com/go-telegram/bot"
)

// permissionHints are Bot API error descriptions that report missing
// administrator rights while being returned as 400 Bad Request.
var permissionHints = []string{
	"not enough rights",
	"have no rights",
	"chat_admin_required",
}

// IsPermissionError reports whether err means the bot lacks the rights for
// the request: a 403 Forbidden, or a 400 whose description names missing
// rights.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, bot.ErrorForbidden) {
		return true
	}
	if !errors.Is(err, bot.ErrorBadRequest) {
		return false
	}
	desc := strings.ToLower(err.Error())
	for _, hint := range permissionHints {
		if strings.Contains(desc, hint) {
			return true
		}
	}
	return false
}
