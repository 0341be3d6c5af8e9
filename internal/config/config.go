package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/jsonc"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755

	// DefaultServerURL is used when neither the config file, the environment
	// nor the --server flag provide a backend address.
	DefaultServerURL = "http://127.0.0.1:8080"

	// DefaultTriggerDelayMs is the pause a worker takes before injecting
	// text, approximating the interval between a hotkey press and the user
	// refocusing the target window.
	DefaultTriggerDelayMs = 300

	// DefaultProbeTimeoutMs bounds the reachability probe.
	DefaultProbeTimeoutMs = 3000

	// ServerEnvVar overrides the configured backend URL when set.
	ServerEnvVar = "FRASECLI_SERVER"
)

var (
	// ConfigDir is the global configuration directory (~/.frasecli)
	ConfigDir string

	// ConfigFile is the main configuration file (JSONC, comments allowed)
	ConfigFile string

	// BindingsFile is the hotkey bindings file
	BindingsFile string

	// CachePath is the SQLite database file for the offline phrase cache
	CachePath string
)

// Config holds the startup configuration. The backend base URL is the only
// value the backend contract requires; the rest tunes client behavior.
type Config struct {
	ServerURL      string `json:"server"`
	EmbeddedView   bool   `json:"embeddedView"`
	TriggerDelayMs int    `json:"triggerDelayMs"`
	ProbeTimeoutMs int    `json:"probeTimeoutMs"`
}

// TriggerDelay returns the worker trigger delay as a duration.
func (c Config) TriggerDelay() time.Duration {
	return time.Duration(c.TriggerDelayMs) * time.Millisecond
}

// ProbeTimeout returns the reachability probe timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}

// Initialize sets up the configuration directory and default files.
// It creates ~/.frasecli/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".frasecli")
	ConfigFile = filepath.Join(ConfigDir, "config.jsonc")
	BindingsFile = filepath.Join(ConfigDir, "bindings.yaml")
	CachePath = filepath.Join(ConfigDir, "frasecli.db")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		defaultConfig := []byte(`{
  // Backend base URL for the phrase server
  "server": "` + DefaultServerURL + `",
  // Host the server's rich view when the terminal allows it
  "embeddedView": true,
  // Delay in milliseconds before a background action fires
  "triggerDelayMs": 300,
  // Reachability probe timeout in milliseconds
  "probeTimeoutMs": 3000
}
`)
		if err := os.WriteFile(ConfigFile, defaultConfig, FilePermissions); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// Load reads the configuration file, applying defaults for missing fields.
// The FRASECLI_SERVER environment variable and the serverOverride argument
// (the --server flag) take precedence over the file, in that order.
func Load(serverOverride string) (Config, error) {
	cfg := Config{
		ServerURL:      DefaultServerURL,
		EmbeddedView:   true,
		TriggerDelayMs: DefaultTriggerDelayMs,
		ProbeTimeoutMs: DefaultProbeTimeoutMs,
	}

	data, err := os.ReadFile(ConfigFile)
	if err == nil {
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if env := os.Getenv(ServerEnvVar); env != "" {
		cfg.ServerURL = env
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}

	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("no backend server URL configured")
	}
	if cfg.TriggerDelayMs <= 0 {
		cfg.TriggerDelayMs = DefaultTriggerDelayMs
	}
	if cfg.ProbeTimeoutMs <= 0 {
		cfg.ProbeTimeoutMs = DefaultProbeTimeoutMs
	}

	return cfg, nil
}
