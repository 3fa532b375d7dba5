package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

// DefaultBookmarkPath is the vault folder bookmarks go to when none is configured
const DefaultBookmarkPath = "bookmarks"

// EnvPrefix prefixes environment overrides, e.g. LINKMARK_BOOKMARK_PATH
const EnvPrefix = "LINKMARK_"

// Validation errors
var (
	ErrEmptyVaultDir        = errors.New("vault_dir cannot be empty")
	ErrAbsoluteBookmarkPath = errors.New("bookmark_path must be relative to the vault")
	ErrBookmarkPathEscapes  = errors.New("bookmark_path must stay inside the vault")
	ErrInvalidLogLevel      = errors.New("log_level must be one of: debug, info, warn, error")
	ErrNegativeTimeout      = errors.New("fetch_timeout must not be negative")
)

// Config represents the linkmark settings
type Config struct {
	VaultDir     string        `json:"vault_dir" env:"VAULT_DIR"`
	BookmarkPath string        `json:"bookmark_path" env:"BOOKMARK_PATH"`
	LogFile      string        `json:"log_file" env:"LOG_FILE"`
	LogLevel     string        `json:"log_level" env:"LOG_LEVEL"`
	UserAgent    string        `json:"user_agent,omitempty" env:"USER_AGENT"`
	FetchTimeout time.Duration `json:"-" env:"FETCH_TIMEOUT"` // Custom JSON handling below
}

// rawConfig is the on-disk form, with durations as strings
type rawConfig struct {
	VaultDir     string `json:"vault_dir"`
	BookmarkPath string `json:"bookmark_path"`
	LogFile      string `json:"log_file"`
	LogLevel     string `json:"log_level"`
	UserAgent    string `json:"user_agent,omitempty"`
	FetchTimeout string `json:"fetch_timeout,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		VaultDir:     filepath.Join(home, "Documents", "obsidian-vault"),
		BookmarkPath: DefaultBookmarkPath,
		LogLevel:     "info",
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "linkmark", "config.json")
	}
	return filepath.Join(home, ".config", "linkmark", "config.json")
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file yields the defaults. Settings are never cached:
// every call reads the file again.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// LoadFile reads the config file as written, without environment overrides,
// validation or path expansion. Use it to edit and save settings.
func LoadFile() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.VaultDir != "" {
		c.VaultDir = raw.VaultDir
	}
	if raw.BookmarkPath != "" {
		c.BookmarkPath = raw.BookmarkPath
	}
	if raw.LogLevel != "" {
		c.LogLevel = raw.LogLevel
	}
	c.LogFile = raw.LogFile
	c.UserAgent = raw.UserAgent

	if raw.FetchTimeout != "" {
		timeout, err := time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout format '%s': %w", raw.FetchTimeout, err)
		}
		c.FetchTimeout = timeout
	}

	return nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		VaultDir:     c.VaultDir,
		BookmarkPath: c.BookmarkPath,
		LogFile:      c.LogFile,
		LogLevel:     c.LogLevel,
		UserAgent:    c.UserAgent,
	}
	if c.FetchTimeout > 0 {
		raw.FetchTimeout = c.FetchTimeout.String()
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.VaultDir == "" {
		return ErrEmptyVaultDir
	}

	if c.BookmarkPath != "" {
		p := filepath.ToSlash(c.BookmarkPath)
		if strings.HasPrefix(p, "/") || filepath.IsAbs(c.BookmarkPath) {
			return ErrAbsoluteBookmarkPath
		}
		if !filepath.IsLocal(filepath.FromSlash(path.Clean(p))) {
			return ErrBookmarkPathEscapes
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	if c.FetchTimeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}

// BookmarkFolder returns the vault-relative bookmark folder, falling back
// to DefaultBookmarkPath when none is set
func (c *Config) BookmarkFolder() string {
	if c == nil || strings.TrimSpace(c.BookmarkPath) == "" {
		return DefaultBookmarkPath
	}
	return path.Clean(filepath.ToSlash(c.BookmarkPath))
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.VaultDir, err = ExpandPath(c.VaultDir)
	if err != nil {
		return fmt.Errorf("failed to expand vault_dir: %w", err)
	}

	c.LogFile, err = ExpandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
