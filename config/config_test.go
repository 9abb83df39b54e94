package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/lambdakit/errors"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" || !cfg.Debug {
			t.Errorf("unexpected defaults %+v", cfg)
		}
		if cfg.Response.StatusCode != 200 {
			t.Errorf("expected default status 200, got %d", cfg.Response.StatusCode)
		}
		if cfg.Logging.Format != "json" {
			t.Errorf("expected json logging, got %q", cfg.Logging.Format)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
		{"invalid status", func(c *ServiceConfig) { c.Response.StatusCode = 42 }, "status_code must be a valid HTTP status"},
		{"error without message", func(c *ServiceConfig) {
			c.Response.Errors = map[string]ErrorConfig{"err_x": {}}
		}, "errors.err_x.message is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestResponseConfigRegistry(t *testing.T) {
	var empty ResponseConfig
	if empty.Registry() != nil {
		t.Error("expected nil registry when no errors are declared")
	}

	cfg := ResponseConfig{Errors: map[string]ErrorConfig{
		"err_auth":  {Message: "Unauthorized.", Detail: "token expired"},
		"err_quota": {Code: "QUOTA", Message: "Quota exceeded."},
	}}
	reg := cfg.Registry()

	d, err := errors.NewRegistry(reg).Resolve("ERR_AUTH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code != "ERR_AUTH" || d.Message != "Unauthorized." || d.Detail != "token expired" {
		t.Errorf("unexpected descriptor %+v", d)
	}

	d, _ = reg.Resolve("ERR_QUOTA")
	if d.Code != "QUOTA" {
		t.Errorf("explicit code should win, got %s", d.Code)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: orders
environment: staging
logging:
  level: debug
response:
  status_code: 202
  errors:
    ERR_AUTH:
      message: "Unauthorized."
      detail: "missing token"
`)

	var cfg testConfig
	if err := LoadConfig("orders", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "orders" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if cfg.Response.StatusCode != 202 {
		t.Errorf("expected status 202, got %d", cfg.Response.StatusCode)
	}
	if _, ok := cfg.Response.Registry().Lookup("ERR_AUTH"); !ok {
		t.Errorf("expected ERR_AUTH from config, got %v", cfg.Response.Errors)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: orders\nresponse:\n  status_code: 200\n")
	t.Setenv("RESPONSE_STATUS_CODE", "201")

	var cfg testConfig
	if err := LoadConfig("orders", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Response.StatusCode != 201 {
		t.Errorf("env should override file, got %d", cfg.Response.StatusCode)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "ENVIRONMENT=production\n")
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	var cfg testConfig
	err := LoadConfig("orders", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	if err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unterminated\n")
	var cfg testConfig
	if err := LoadConfig("orders", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected error for malformed config")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/orders/config.yml": true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("orders", LoaderConfig{})
	if files.ConfigFile != "./cmd/orders/config.yml" {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("orders", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("explicit path should win, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("RESPONSE_STATUS_CODE")
	for _, want := range []string{"response_status_code", "response.status.code", "response.status_code", "response_status.code"} {
		found := false
		for _, v := range variants {
			if v == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected variant %q in %v", want, variants)
		}
	}

	if got := envKeyVariants("NAME"); len(got) != 1 || got[0] != "name" {
		t.Errorf("unexpected single-part variants %v", got)
	}
}
