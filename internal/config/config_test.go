package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FOLIO_API_URL", "")
	t.Setenv("FOLIO_ENV", "")
	t.Setenv("FOLIO_BUILD_VERSION", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	// Use a non-existent path so no file is loaded.
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false by default")
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != 3 {
		t.Errorf("API.MaxRetries = %d, want 3", cfg.API.MaxRetries)
	}
	if cfg.API.RetryBackoff != time.Second {
		t.Errorf("API.RetryBackoff = %v, want 1s", cfg.API.RetryBackoff)
	}
	if cfg.Cache.ProjectsTTL != 5*time.Minute {
		t.Errorf("Cache.ProjectsTTL = %v, want 5m", cfg.Cache.ProjectsTTL)
	}
	if cfg.ReportEndpoint() != DefaultBaseURL+"/api/errors" {
		t.Errorf("ReportEndpoint() = %q", cfg.ReportEndpoint())
	}
	if cfg.LocaleValue() != domain.LocaleZH {
		t.Errorf("LocaleValue() = %q, want zh", cfg.LocaleValue())
	}
}

func TestLoadConfig_CustomFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `env: development
locale: en
api:
  base_url: https://pulse.example.com/
  timeout: 3s
  max_retries: 1
cache:
  projects: 90s
report:
  endpoint: https://collector.example.com/errors
  build_version: 1.4.2
log:
  level: debug
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if !cfg.IsDev() {
		t.Error("IsDev() should be true for env: development")
	}
	if cfg.LocaleValue() != domain.LocaleEN {
		t.Errorf("LocaleValue() = %q, want en", cfg.LocaleValue())
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v, want 3s", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != 1 {
		t.Errorf("API.MaxRetries = %d, want 1", cfg.API.MaxRetries)
	}
	if cfg.Cache.ProjectsTTL != 90*time.Second {
		t.Errorf("Cache.ProjectsTTL = %v, want 90s", cfg.Cache.ProjectsTTL)
	}
	// Zero values fall back to defaults.
	if cfg.Cache.StatsTTL != time.Minute {
		t.Errorf("Cache.StatsTTL = %v, want 1m", cfg.Cache.StatsTTL)
	}
	if cfg.API.RetryBackoff != time.Second {
		t.Errorf("API.RetryBackoff = %v, want 1s", cfg.API.RetryBackoff)
	}
	if cfg.ReportEndpoint() != "https://collector.example.com/errors" {
		t.Errorf("ReportEndpoint() = %q", cfg.ReportEndpoint())
	}
	if cfg.Report.BuildVersion != "1.4.2" {
		t.Errorf("Report.BuildVersion = %q", cfg.Report.BuildVersion)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_API_URL", "http://10.0.0.5:8000")
	t.Setenv("FOLIO_ENV", "dev")
	t.Setenv("FOLIO_BUILD_VERSION", "abc123")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if !cfg.IsDev() {
		t.Error("FOLIO_ENV=dev should enable development mode")
	}
	if cfg.Report.BuildVersion != "abc123" {
		t.Errorf("Report.BuildVersion = %q", cfg.Report.BuildVersion)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfigFrom(cfgPath)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_RejectsBaseURLWithoutScheme(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("api:\n  base_url: localhost:8000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFrom(cfgPath); err == nil {
		t.Fatal("expected error for base_url without http scheme")
	}

	t.Setenv("FOLIO_API_URL", "ftp://pulse.example.com")
	if _, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for ftp base_url from env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://pulse.example.com/", false},
		{"localhost:8000", true},
		{"pulse.example.com", true},
		{"http://", true},
		{"://bad", true},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.BaseURL = tc.url
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tc.url, err, tc.wantErr)
			}
		})
	}
}

func TestReportEndpoint_TrimsSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://pulse.example.com/"
	if got := cfg.ReportEndpoint(); got != "https://pulse.example.com/api/errors" {
		t.Errorf("ReportEndpoint() = %q", got)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("env: production\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *AppConfig, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, cfgPath, zap.NewNop(), func(c *AppConfig) {
			select {
			case reloaded <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(cfgPath, []byte("env: development\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if !cfg.IsDev() {
			t.Errorf("reloaded Env = %q, want development", cfg.Env)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}
