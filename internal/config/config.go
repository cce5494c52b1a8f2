// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "cbook"

	// CredentialsFile is the stored token filename.
	CredentialsFile = "credentials.json"

	// BaseURLEnv is the environment variable overriding the backend URL.
	BaseURLEnv = "CBOOK_BASE_URL"

	// DefaultBaseURL is used when neither flag nor environment set one.
	DefaultBaseURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend base URL (no trailing slash).
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and base URL. Empty arguments fall back to defaults: XDG_CONFIG_HOME/cbook
// or $HOME/.config/cbook for the directory, CBOOK_BASE_URL or
// http://localhost:8000 for the URL.
func New(configDir, baseURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if baseURL == "" {
		baseURL = os.Getenv(BaseURLEnv)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Config{Dir: dir, BaseURL: baseURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// CredentialsPath returns the path to the stored token file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials checks if the credential file exists.
func (c *Config) HasCredentials() bool {
	_, err := os.Stat(c.CredentialsPath())
	return err == nil
}
