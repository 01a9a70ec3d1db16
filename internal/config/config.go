// Package config loads the bot configuration from the process environment,
// optionally seeded from a local env file, and validates it.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration marks every failure that must stop the process before it
// starts polling.
var ErrConfiguration = errors.New("configuration error")

// Config holds every setting of the bot. It is built once at startup and
// passed by pointer to every component; nothing mutates it afterwards.
type Config struct {
	// Telegram credentials and moderation target. Zero ids are valid
	// integers; only an unset TARGET_CHAT_ID is rejected.
	BotToken      string `mapstructure:"bot_token"       validate:"required"`
	TargetChatID  int64  `mapstructure:"target_chat_id"`
	BlockedUserID int64  `mapstructure:"blocked_user_id"`

	// Logging. Unknown values fall back to info/text instead of failing.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Startup diagnostics.
	StartupCheckEnabled bool          `mapstructure:"startup_check_enabled"`
	StartupCheckDelay   time.Duration `mapstructure:"startup_check_delay" validate:"min=0s,max=1h"`
}

// JSONLogs reports whether logs should be emitted as JSON.
func (c *Config) JSONLogs() bool {
	return c.LogFormat == "json"
}
