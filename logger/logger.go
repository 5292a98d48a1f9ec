// Package logger builds the bootstrap/diagnostic zerolog.Logger the demo
// command and the emitter use to report their own operation. It is
// distinct from the tracing core's own pretty/JSON tree output: this is
// ambient "is the process healthy" logging, not a tree formatter.
package logger

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/QnnOkabayashi/tracing-tests/config"
)

// New returns a configured zerolog.Logger: a colorized console writer in
// development, debug-level; compact JSON in any other environment, at
// cfg.LogLevel (info if that does not parse).
func New(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
