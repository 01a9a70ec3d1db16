package handlers

import (
	"log/slog"

	"github.com/edgard/purgebot/internal/config"
	"github.com/edgard/purgebot/internal/telegram"
)

// HandlerDeps provides dependencies for the update handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Client telegram.Client
}
