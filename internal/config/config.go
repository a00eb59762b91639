// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config represents settings that can be loaded from a JSON file and the environment.
// All fields are optional; missing values fall back to Defaults.
type Config struct {
	// Server
	Port        int      `json:"port,omitempty"`         // HTTP listen port
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed CORS origins

	// Storage
	StorageBackend string `json:"storage_backend,omitempty"` // file, memory, redis or postgres
	StorageDir     string `json:"storage_dir,omitempty"`     // Directory for the file backend
	RedisURL       string `json:"redis_url,omitempty"`       // redis:// URL for the redis backend
	RedisPrefix    string `json:"redis_prefix,omitempty"`    // Key prefix for the redis backend
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL

	// Rendering and export
	TemplateFile  string `json:"template_file,omitempty"`  // Custom HTML template defining "cv"
	ChromePath    string `json:"chrome_path,omitempty"`    // Browser binary used for export
	ExportTimeout string `json:"export_timeout,omitempty"` // Go duration, e.g. "60s"

	// Sharing
	ShareURL     string `json:"share_url,omitempty"`     // URL placed in share payloads
	ShareWebhook string `json:"share_webhook,omitempty"` // Endpoint that receives native shares

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogPretty bool   `json:"log_pretty,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           8080,
		CORSOrigins:    []string{"*"},
		StorageBackend: BackendFile,
		StorageDir:     defaultStorageDir(),
		RedisPrefix:    "cvbuilder:",
		ExportTimeout:  "60s",
		LogLevel:       "info",
	}
}

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cvbuilder")
	}
	return ".cvbuilder"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv reads settings from environment variables. Unset variables leave
// the corresponding field empty so MergeWithDefaults can fill it.
func FromEnv() Config {
	var cfg Config
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}
	cfg.StorageBackend = os.Getenv("STORAGE_BACKEND")
	cfg.StorageDir = os.Getenv("STORAGE_DIR")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisPrefix = os.Getenv("REDIS_PREFIX")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TemplateFile = os.Getenv("TEMPLATE_FILE")
	cfg.ChromePath = os.Getenv("CHROME_PATH")
	cfg.ExportTimeout = os.Getenv("EXPORT_TIMEOUT")
	cfg.ShareURL = os.Getenv("SHARE_URL")
	cfg.ShareWebhook = os.Getenv("SHARE_WEBHOOK")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if v, err := strconv.ParseBool(os.Getenv("LOG_PRETTY")); err == nil {
		cfg.LogPretty = v
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.StorageBackend {
	case "", BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.StorageBackend)
	}

	if c.ExportTimeout != "" {
		d, err := time.ParseDuration(c.ExportTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("config error: 'export_timeout' must be a positive duration")
		}
	}

	if c.TemplateFile != "" {
		if _, err := os.Stat(c.TemplateFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.TemplateFile)
		}
	}

	return nil
}

// ExportTimeoutDuration returns the parsed export timeout, or 60s when unset or invalid.
func (c *Config) ExportTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.ExportTimeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied in layers: flags over environment over file over Defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.StorageBackend == "" {
		result.StorageBackend = defaults.StorageBackend
	}
	if result.StorageDir == "" {
		result.StorageDir = defaults.StorageDir
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.RedisPrefix == "" {
		result.RedisPrefix = defaults.RedisPrefix
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TemplateFile == "" {
		result.TemplateFile = defaults.TemplateFile
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.ShareURL == "" {
		result.ShareURL = defaults.ShareURL
	}
	if result.ShareWebhook == "" {
		result.ShareWebhook = defaults.ShareWebhook
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bool fields: cannot distinguish unset from false, so true wins.
	result.LogPretty = result.LogPretty || defaults.LogPretty

	return result
}

// Load resolves the effective configuration: environment over the optional
// config file over Defaults. The result is validated.
func Load(path string) (Config, error) {
	merged := Defaults()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = fileCfg.MergeWithDefaults(merged)
	}
	env := FromEnv()
	merged = env.MergeWithDefaults(merged)
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
