package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule.AnalysisCron != "0 0 7 * * 1-5" {
		t.Errorf("expected default analysis cron, got %q", cfg.Schedule.AnalysisCron)
	}
	if cfg.Schedule.DigestCron != "0 0 8 * * 1" {
		t.Errorf("expected default digest cron, got %q", cfg.Schedule.DigestCron)
	}
	if cfg.Analysis.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Analysis.Concurrency)
	}
	if cfg.DataSource.Dir != "data/financials" {
		t.Errorf("expected default data dir, got %q", cfg.DataSource.Dir)
	}
	if cfg.DataSource.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.DataSource.Timeout)
	}
	if cfg.Database.SQLitePath != "data/value_sentinel.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Database.SQLitePath)
	}
	if cfg.UsePostgres() || cfg.NotifierEnabled() {
		t.Error("expected postgres and notifier disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
data_source:
  base_url: https://data.example.com
  timeout: 5s
watchlist: [aapl, " ko "]
analysis:
  concurrency: 8
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Dir != "" {
		t.Errorf("expected no default dir when base_url is set, got %q", cfg.DataSource.Dir)
	}
	if cfg.DataSource.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.DataSource.Timeout)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "AAPL" || cfg.Watchlist[1] != "KO" {
		t.Errorf("unexpected watchlist %v", cfg.Watchlist)
	}
	if cfg.Analysis.Concurrency != 8 || cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected values: %+v %+v", cfg.Analysis, cfg.Logging)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WATCHLIST", "msft, brk.b,,")
	t.Setenv("DATABASE_URL", "postgres://localhost/sentinel")
	t.Setenv("CRON_ANALYSIS", "0 30 6 * * *")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("NARRATIVE_COMMAND", "llm --json")

	cfg, err := Load(writeConfig(t, "watchlist: [AAPL]\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[1] != "BRK.B" {
		t.Errorf("expected env watchlist, got %v", cfg.Watchlist)
	}
	if !cfg.UsePostgres() {
		t.Error("expected postgres enabled")
	}
	if cfg.Schedule.AnalysisCron != "0 30 6 * * *" {
		t.Errorf("unexpected cron %q", cfg.Schedule.AnalysisCron)
	}
	if !cfg.NotifierEnabled() {
		t.Error("expected notifier enabled")
	}
	if cfg.Narrative.Command != "llm --json" || cfg.Narrative.Timeout != 2*time.Minute {
		t.Errorf("unexpected narrative config %+v", cfg.Narrative)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "watchlist: [unterminated\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"zero concurrency", func(c *Config) { c.Analysis.Concurrency = 0 }},
		{"bad base url", func(c *Config) { c.DataSource.BaseURL = "not a url" }},
		{"empty ticker", func(c *Config) { c.Watchlist = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
