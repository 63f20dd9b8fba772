// Package logging configures the process-wide phuslu logger.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"

	"ValueSentinel/internal/config"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// Setup installs the default logger writing to stderr.
func Setup(cfg config.LoggingConfig) {
	SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter installs the default logger writing to w. Format "json"
// emits one JSON object per line; anything else gets the console writer.
func SetupWithWriter(cfg config.LoggingConfig, w io.Writer) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	var writer log.Writer
	if cfg.Format == "json" {
		writer = &log.IOWriter{Writer: w}
	} else {
		writer = &log.ConsoleWriter{
			ColorOutput:    isTerminal(w),
			QuoteString:    true,
			EndWithMessage: true,
			Writer:         w,
		}
	}

	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		Caller:     1,
		TimeFormat: timeFormat,
		Writer:     writer,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return log.IsTerminal(f.Fd())
}
