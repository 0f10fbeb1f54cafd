// ABOUTME: Client configuration for the webhook backend connection
// ABOUTME: Env vars provide defaults, the runtime config file wins when present
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	// AppName is used for XDG config/data paths.
	AppName = "a1-client"

	// ConfigFileName is the runtime config file under the XDG config dir.
	ConfigFileName = "config.json"

	// DefaultWebhookURL is used when neither env nor file configure one.
	DefaultWebhookURL = "http://localhost:5678/webhook/a1"
)

// Poll cadence constants for the assistant console.
const (
	// IncomingPollInterval is the fixed interval of the incoming-message poll.
	IncomingPollInterval = 4 * time.Second

	// ReplyPollInterval and ReplyPollAttempts bound the wait for a deferred
	// assistant reply (~90s total).
	ReplyPollInterval = 1500 * time.Millisecond
	ReplyPollAttempts = 60
)

// Config holds webhook connection settings.
type Config struct {
	// WebhookURL is the single backend endpoint; trailing slash is stripped.
	WebhookURL string `json:"webhook_url,omitempty"`

	// Secret is the shared HMAC secret. Empty disables request signing.
	Secret string `json:"webhook_secret,omitempty"`
}

// Load resolves config: built-in defaults, then A1_WEBHOOK_URL /
// A1_WEBHOOK_SECRET env vars, then the runtime config file on top.
func Load() (*Config, error) {
	cfg := &Config{WebhookURL: DefaultWebhookURL}

	if v := os.Getenv("A1_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("A1_WEBHOOK_SECRET"); v != "" {
		cfg.Secret = v
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		var file Config
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if file.WebhookURL != "" {
			cfg.WebhookURL = file.WebhookURL
		}
		if file.Secret != "" {
			cfg.Secret = file.Secret
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.WebhookURL = strings.TrimRight(cfg.WebhookURL, "/")
	return cfg, nil
}

// Save writes the runtime config file.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Path returns the runtime config file location.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, ConfigFileName))
}

// DataPath returns the path for a file under the app data dir.
func DataPath(name string) (string, error) {
	return xdg.DataFile(filepath.Join(AppName, name))
}
