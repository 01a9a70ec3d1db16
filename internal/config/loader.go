package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load builds the configuration in three layers:
// 1. Default values
// 2. envFile, when it exists, for variables not already in the environment
// 3. Process environment variables
//
// Any returned error wraps ErrConfiguration.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("%w: failed to load env file %s: %v", ErrConfiguration, envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	// Unset and zero look the same after Unmarshal, so presence is checked
	// on the raw binding.
	if !v.IsSet("target_chat_id") {
		return nil, fmt.Errorf("%w: TARGET_CHAT_ID is required", ErrConfiguration)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse environment: %v", ErrConfiguration, err)
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// loadEnvFile seeds the process environment from path. godotenv never
// overrides variables that are already set, and a missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// validate checks struct tags and turns validator errors into messages that
// name the environment variable at fault.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q check", envName(fe.Field()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func envName(field string) string {
	switch field {
	case "BotToken":
		return "BOT_TOKEN"
	case "StartupCheckDelay":
		return "STARTUP_CHECK_DELAY"
	default:
		return field
	}
}
