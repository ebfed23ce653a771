package config

import (
	"testing"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/browser"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvHeadless, "")
	t.Setenv(EnvTelegramToken, "")
	t.Setenv(EnvTelegramChatID, "")

	cfg := Load()
	if cfg.DBPath != defaultDBPath {
		t.Errorf("unexpected default db path %q", cfg.DBPath)
	}
	if !cfg.Headless {
		t.Error("headless should default to true")
	}
	if cfg.TelegramToken != "" || cfg.TelegramChatID != "" {
		t.Error("telegram credentials should default to empty")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/test.db")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvTelegramToken, "token")
	t.Setenv(EnvTelegramChatID, "42")

	cfg := Load()
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("db path not read from environment: %q", cfg.DBPath)
	}
	if cfg.Headless {
		t.Error("headless=false not honored")
	}
	if cfg.TelegramToken != "token" || cfg.TelegramChatID != "42" {
		t.Error("telegram credentials not read from environment")
	}
}

func TestLoadInvalidBoolFallsBack(t *testing.T) {
	t.Setenv(EnvHeadless, "maybe")

	cfg := Load()
	if !cfg.Headless {
		t.Error("invalid boolean should fall back to default")
	}
}

func TestLoadPageTimeout(t *testing.T) {
	t.Setenv(EnvPageTimeout, "45s")
	if cfg := Load(); cfg.PageTimeout != 45*time.Second {
		t.Errorf("page timeout not read from environment: %v", cfg.PageTimeout)
	}

	t.Setenv(EnvPageTimeout, "-3s")
	if cfg := Load(); cfg.PageTimeout != browser.PageLoadTimeout {
		t.Errorf("invalid duration should fall back to default, got %v", cfg.PageTimeout)
	}
}
