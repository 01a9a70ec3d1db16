package config

import "time"

// Default values for optional settings.
const (
	DefaultEnvFile           = "stack.env"
	DefaultBlockedUserID     = int64(329047005)
	DefaultLogLevel          = "INFO"
	DefaultLogFormat         = "text"
	DefaultStartupCheck      = true
	DefaultStartupCheckDelay = time.Second
)

// envBindings maps configuration keys to the environment variables they are
// read from.
var envBindings = map[string]string{
	"bot_token":             "BOT_TOKEN",
	"target_chat_id":        "TARGET_CHAT_ID",
	"blocked_user_id":       "BLOCKED_USER_ID",
	"log_level":             "LOG_LEVEL",
	"log_format":            "LOG_FORMAT",
	"startup_check_enabled": "STARTUP_CHECK_ENABLED",
	"startup_check_delay":   "STARTUP_CHECK_DELAY",
}

var defaults = map[string]any{
	"blocked_user_id":       DefaultBlockedUserID,
	"log_level":             DefaultLogLevel,
	"log_format":            DefaultLogFormat,
	"startup_check_enabled": DefaultStartupCheck,
	"startup_check_delay":   DefaultStartupCheckDelay,
}
