// Package config provides configuration loading and validation for the
// studio CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/registry"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// DefaultCacheFile is the local cache file name under the user's home.
const DefaultCacheFile = ".resume-studio/cache.db"

// Config represents the studio configuration that can be loaded from a JSON
// file. All fields are optional; missing values come from the environment or
// defaults.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for remote replication
	CachePath   string `json:"cache_path,omitempty"`   // bbolt file holding the local cache

	// Identity
	UserID string `json:"user_id,omitempty"` // User UUID owning the configurations (CLI only)

	// Rendering
	Template   string `json:"template,omitempty"`    // Default template variant
	ChromePath string `json:"chrome_path,omitempty"` // Chrome/Chromium binary for PDF export

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads DATABASE_URL, RESUME_CACHE_PATH, RESUME_USER_ID,
// RESUME_TEMPLATE, CHROME_PATH and PORT.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CachePath:   os.Getenv("RESUME_CACHE_PATH"),
		UserID:      os.Getenv("RESUME_USER_ID"),
		Template:    os.Getenv("RESUME_TEMPLATE"),
		ChromePath:  os.Getenv("CHROME_PATH"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	cachePath := DefaultCacheFile
	if home, err := os.UserHomeDir(); err == nil {
		cachePath = filepath.Join(home, DefaultCacheFile)
	}
	return Config{
		CachePath: cachePath,
		Template:  string(registry.Classic),
		Port:      DefaultPort,
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the
// command being run.
func (c *Config) Validate() error {
	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("config error: 'user_id' is not a valid UUID: %w", err)
		}
	}
	if c.Template != "" {
		if _, err := registry.ParseVariant(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied in layers: flags, then config file, then environment, then
// built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ParsedUserID returns the configured user id.
func (c *Config) ParsedUserID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, fmt.Errorf("user id is required (set --user-id, user_id or RESUME_USER_ID)")
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", c.UserID, err)
	}
	return id, nil
}
