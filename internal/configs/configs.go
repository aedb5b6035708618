/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the client by reading operating system environment variables,
including the running environment, the chat server URL, the local display
name, and the log file location.
*/
package configs

import (
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"clack/internal/pkg/errs"
)

// AppConfig contains all configuration parameters required for the client to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// Environment selects development or production behavior (log level).
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// ServerURL is the ws:// or wss:// address of the chat server.
	ServerURL string `env:"CHAT_SERVER_URL" envDefault:"ws://127.0.0.1:8080/ws"`

	// Username is the local display name announced to the server.
	Username string `env:"CHAT_USERNAME"`

	// LogFile is where structured logs are written. Empty discards logs,
	// since the terminal renderer owns stdout.
	LogFile string `env:"LOG_FILE"`
}

// LoadConfig reads and parses the client configuration from environment variables.
// It provides default values where sensible and performs necessary validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Username
	cfg.Username = strings.TrimSpace(cfg.Username)
	if cfg.Username == "" {
		if cfg.Environment != "development" {
			return nil, errs.NewError(errs.ErrConfigInvalid, "CHAT_USERNAME is required in "+cfg.Environment+" environment")
		}
		cfg.Username = "guest-" + uuid.NewString()[:8]
	}

	// ServerURL
	parsed, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, errs.NewError(errs.ErrConfigInvalid, "CHAT_SERVER_URL is not a valid URL")
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return nil, errs.NewError(errs.ErrConfigInvalid, "CHAT_SERVER_URL must use the ws or wss scheme")
	}

	return cfg, nil
}
