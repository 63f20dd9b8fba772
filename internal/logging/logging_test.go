package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/phuslu/log"

	"ValueSentinel/internal/config"
)

func TestSetupWithWriter_JSON(t *testing.T) {
	saved := log.DefaultLogger
	defer func() { log.DefaultLogger = saved }()

	var buf bytes.Buffer
	SetupWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("ticker", "ACME").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if entry["ticker"] != "ACME" || entry["message"] != "kept" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSetupWithWriter_Console(t *testing.T) {
	saved := log.DefaultLogger
	defer func() { log.DefaultLogger = saved }()

	var buf bytes.Buffer
	SetupWithWriter(config.LoggingConfig{Format: "text"}, &buf)
	log.Debug().Msg("hidden")
	log.Info().Str("ticker", "ACME").Msg("analysis complete")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected debug suppressed at default info level")
	}
	if !strings.Contains(out, "analysis complete") || !strings.Contains(out, "ACME") {
		t.Errorf("unexpected output %q", out)
	}
}
