package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Taishi66/folio-tui/internal/domain"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultBaseURL     = "http://localhost:8000"
	DefaultProjectsTTL = 5 * time.Minute
)

// AppConfig holds all configuration for folio.
type AppConfig struct {
	Env    string       `yaml:"env"`
	Locale string       `yaml:"locale"`
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Report ReportConfig `yaml:"report"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// CacheConfig holds TTL settings for cached resources.
type CacheConfig struct {
	ProjectsTTL time.Duration `yaml:"projects"`
	BlogTTL     time.Duration `yaml:"blog"`
	StatsTTL    time.Duration `yaml:"stats"`
}

// ReportConfig controls remote error reporting in production.
type ReportConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Endpoint     string `yaml:"endpoint"` // defaults to <base_url>/api/errors
	BuildVersion string `yaml:"build_version"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Env:    EnvProduction,
		Locale: string(domain.LocaleZH),
		API: APIConfig{
			BaseURL:      DefaultBaseURL,
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryBackoff: time.Second,
		},
		Cache: CacheConfig{
			ProjectsTTL: DefaultProjectsTTL,
			BlogTTL:     DefaultProjectsTTL,
			StatsTTL:    time.Minute,
		},
		Report: ReportConfig{
			Enabled:      true,
			BuildVersion: "unknown",
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

// DefaultPath returns ~/.config/folio/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "folio", "config.yaml")
}

// LoadConfig loads from the default path and applies env overrides.
func LoadConfig() (*AppConfig, error) {
	path := DefaultPath()
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom loads config from a specific file path.
// Returns defaults if the file does not exist.
func LoadConfigFrom(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects a base URL the HTTP client could never reach, such as
// "localhost:8000" where the host parses as a scheme.
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url %q: missing host", c.API.BaseURL)
	}
	return nil
}

// IsDev reports whether development behaviour (verbose logs, details) is on.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, EnvDevelopment) || strings.EqualFold(c.Env, "dev")
}

// ReportEndpoint resolves the error collector URL.
func (c *AppConfig) ReportEndpoint() string {
	if c.Report.Endpoint != "" {
		return c.Report.Endpoint
	}
	return strings.TrimRight(c.API.BaseURL, "/") + "/api/errors"
}

// LocaleValue returns the message table locale.
func (c *AppConfig) LocaleValue() domain.Locale {
	if strings.EqualFold(c.Locale, string(domain.LocaleEN)) {
		return domain.LocaleEN
	}
	return domain.LocaleZH
}

// applyDefaults fills zero values left by a partial config file.
func (c *AppConfig) applyDefaults() {
	d := DefaultConfig()
	if c.Env == "" {
		c.Env = d.Env
	}
	if c.Locale == "" {
		c.Locale = d.Locale
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.API.MaxRetries < 0 {
		c.API.MaxRetries = 0
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = d.API.RetryBackoff
	}
	if c.Cache.ProjectsTTL == 0 {
		c.Cache.ProjectsTTL = d.Cache.ProjectsTTL
	}
	if c.Cache.BlogTTL == 0 {
		c.Cache.BlogTTL = d.Cache.BlogTTL
	}
	if c.Cache.StatsTTL == 0 {
		c.Cache.StatsTTL = d.Cache.StatsTTL
	}
	if c.Report.BuildVersion == "" {
		c.Report.BuildVersion = d.Report.BuildVersion
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
}

// applyEnv lets FOLIO_* variables override the file.
func (c *AppConfig) applyEnv() {
	if v := os.Getenv("FOLIO_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FOLIO_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("FOLIO_BUILD_VERSION"); v != "" {
		c.Report.BuildVersion = v
	}
}

func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "folio", "folio.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "folio.log")
	}
	return filepath.Join(home, ".local", "state", "folio", "folio.log")
}
