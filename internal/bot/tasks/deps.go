// Package tasks implements the deferred tasks the bot runs through its
// scheduler, such as the startup permission check.
package tasks

import (
	"log/slog"

	"github.com/edgard/purgebot/internal/config"
	"github.com/edgard/purgebot/internal/telegram"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Client telegram.Client
}
