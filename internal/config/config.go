// Package config loads the runtime configuration for feedtochat.
//
// The configuration is read once at startup from a TOML file and is
// immutable afterwards. A missing file is not an error: hardcoded defaults
// apply and a warning is logged, so a fresh checkout works without any
// setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds everything a single run needs. Built once by Load and passed
// around by pointer; nothing mutates it after that.
type Config struct {
	// Provider names the AI chat destination: "claude", "chatgpt" or
	// "grok". Unknown names are rejected at dispatch time, not here.
	Provider string `toml:"provider"`

	// BrowserCmd is the command used to open the chat URL. It may carry
	// arguments ("firefox --new-tab"); the URL is appended last.
	BrowserCmd string `toml:"browser_cmd"`

	// CustomPrompt, when set, replaces the built-in summarization prompt
	// wholesale.
	CustomPrompt string `toml:"custom_prompt"`

	// History enables the local dispatch log.
	History bool `toml:"history"`

	// HistoryPath is the sqlite database the dispatch log is written to.
	HistoryPath string `toml:"history_path"`
}

const defaultConfigContent = `# feedtochat configuration
provider = "claude"        # "claude", "chatgpt" or "grok"
browser_cmd = ""           # empty means the platform open command
custom_prompt = ""         # empty means the built-in summarization prompt
history = true             # log dispatched URLs locally
`

// Dir returns the feedtochat configuration directory
// (e.g. ~/.config/feedtochat on Linux).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "feedtochat"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads and parses the TOML config at the given path. If the file does
// not exist the defaults are returned and a warning is logged. Environment
// variables override file values with highest priority.
func Load(path string) (*Config, error) {
	// toml.Decode only touches keys present in the file, so seeding the
	// struct with History=true makes an absent key default to true while
	// an explicit "history = false" still sticks.
	cfg := Config{History: true}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("config file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// WriteDefault writes the default config content to the given path, creating
// parent directories as needed. It refuses to overwrite an existing file so
// installs stay idempotent.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// DefaultBrowserCmd returns the platform open command used when browser_cmd
// is not configured.
func DefaultBrowserCmd() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "cmd /c start"
	default:
		return "xdg-open"
	}
}

// applyDefaults fills in default values for any unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = "claude"
	}
	if cfg.BrowserCmd == "" {
		cfg.BrowserCmd = DefaultBrowserCmd()
	}
	if cfg.HistoryPath == "" {
		if dir, err := Dir(); err == nil {
			cfg.HistoryPath = filepath.Join(dir, "history.db")
		}
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FEEDTOCHAT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("FEEDTOCHAT_BROWSER_CMD"); v != "" {
		cfg.BrowserCmd = v
	}
	if v := os.Getenv("FEEDTOCHAT_PROMPT"); v != "" {
		cfg.CustomPrompt = v
	}
}
