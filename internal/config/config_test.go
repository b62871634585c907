package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "FINANCE_API_URL", "SESSION_TTL", "DISPLAY_LOCALE", "RECENT_TRANSACTIONS", "TRACING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.FinanceAPIURL != "http://localhost:3000" {
		t.Errorf("unexpected api url %q", cfg.FinanceAPIURL)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.DisplayLocale != "pt-BR" || cfg.RecentTransactions != 5 || cfg.TracingEnabled {
		t.Errorf("unexpected display defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.HTTPTimeout)
	}
	if !cfg.TracingEnabled {
		t.Error("expected tracing enabled")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected fallback of 3 retries, got %d", cfg.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"port":     func(c *Config) { c.Port = 0 },
		"api url":  func(c *Config) { c.FinanceAPIURL = "localhost" },
		"secret":   func(c *Config) { c.SessionSecret = "short" },
		"locale":   func(c *Config) { c.DisplayLocale = "!!" },
		"timezone": func(c *Config) { c.DisplayTimezone = "Mars/Olympus" },
		"recent":   func(c *Config) { c.RecentTransactions = -1 },
	}

	for name, mutate := range cases {
		cfg := Load()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{DisplayTimezone: "Nowhere/Nothing"}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.Location())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nBFA_TEST_FROM_FILE=\"file\"\nBFA_TEST_EXISTING=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BFA_TEST_EXISTING", "env")
	t.Setenv("BFA_TEST_FROM_FILE", "")
	os.Unsetenv("BFA_TEST_FROM_FILE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := os.Getenv("BFA_TEST_FROM_FILE"); got != "file" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("BFA_TEST_EXISTING"); got != "env" {
		t.Errorf("expected env to take precedence, got %q", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}
}
