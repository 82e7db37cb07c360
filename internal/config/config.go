// Package config loads goaltrack configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all goaltrack configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// HTTP server settings
	Server ServerConfig `yaml:"server"`

	// AI generation service
	LLM LLMConfig `yaml:"llm"`

	// SQLite storage
	Database DatabaseConfig `yaml:"database"`

	// Session auth
	Auth AuthConfig `yaml:"auth"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LLMConfig configures the Gemini generation client.
type LLMConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures sessions.
type AuthConfig struct {
	CookieName string `yaml:"cookie_name"`
	SessionTTL string `yaml:"session_ttl"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "goaltrack",
		Version: "1.0.0",

		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			ShutdownTimeout: "10s",
		},

		LLM: LLMConfig{
			Model:      "gemini-2.0-flash",
			Timeout:    "60s",
			MaxRetries: 3,
		},

		Database: DatabaseConfig{
			Path: "data/goaltrack.db",
		},

		Auth: AuthConfig{
			CookieName: "goaltrack_session",
			SessionTTL: "168h", // 7 days
		},

		Logging: LoggingConfig{
			Level: "info",
			Dir:   "logs",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GOALTRACK_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if addr := os.Getenv("GOALTRACK_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("GOALTRACK_DB"); path != "" {
		c.Database.Path = path
	}
	if level := os.Getenv("GOALTRACK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// LLMTimeout parses the configured LLM timeout, falling back to 60s.
func (c *Config) LLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 60*time.Second)
}

// SessionTTL parses the configured session TTL, falling back to 7 days.
func (c *Config) SessionTTL() time.Duration {
	return parseDuration(c.Auth.SessionTTL, 7*24*time.Hour)
}

// ShutdownTimeout parses the configured shutdown timeout, falling back to 10s.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
