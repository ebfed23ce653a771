// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/VictorZP/halfs-app-sub001/internal/browser"
	"github.com/VictorZP/halfs-app-sub001/internal/logger"
)

// Environment variable names.
const (
	EnvDBPath         = "FIBASCAN_DB_PATH"
	EnvHeadless       = "FIBASCAN_HEADLESS"
	EnvPageTimeout    = "FIBASCAN_PAGE_TIMEOUT"
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

const defaultDBPath = "~/.local/share/fibascan/tournaments.db"

// Config holds the settings the CLI runs with. Twitter credentials are
// read from the environment by the notifier itself.
type Config struct {
	DBPath         string
	Headless       bool
	PageTimeout    time.Duration
	TelegramToken  string
	TelegramChatID string
}

// Load reads configuration from a .env file (if present) and the
// environment. Unset values fall back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("No .env file loaded", logger.Fields{"error": err.Error()})
	}

	return &Config{
		DBPath:         getEnv(EnvDBPath, defaultDBPath),
		Headless:       getEnvBool(EnvHeadless, true),
		PageTimeout:    getEnvDuration(EnvPageTimeout, browser.PageLoadTimeout),
		TelegramToken:  os.Getenv(EnvTelegramToken),
		TelegramChatID: os.Getenv(EnvTelegramChatID),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		logger.Warn("Invalid duration environment value", logger.Fields{"key": key, "value": v})
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("Invalid boolean environment value", logger.Fields{"key": key, "value": v})
		return fallback
	}
	return parsed
}
