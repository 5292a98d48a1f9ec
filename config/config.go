// Package config loads the small set of environment variables that
// configure the tracing core's embedder: log level, wire format, sink
// buffering, default output, and the demo server's listen address.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-tunable value the demo command and its
// bootstrap logger read.
type Config struct {
	// Env selects "development" (debug-level bootstrap logging, pretty
	// console writer) or "production" (info-level, compact JSON).
	Env string
	// LogLevel is the bootstrap/diagnostic logger's level, independent of
	// the tracing core's own event levels.
	LogLevel string

	// LogFormat is "pretty" or "json", selecting the tree formatter the
	// demo's ingestion layer uses.
	LogFormat string
	// ChannelBuffer sizes the initial capacity of the emission queue;
	// the queue still grows past it under load (§5: unbounded MPSC).
	ChannelBuffer int
	// DefaultOutput is the sink cmd/tracedemo passes as the "output" field
	// of each request's root span: "stdout", "stderr", or a file path.
	DefaultOutput string

	// DemoAddr is the listen address for cmd/tracedemo's HTTP server.
	DemoAddr string
}

// Load reads configuration from environment variables and an optional
// .env file, falling back to sensible development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("TRACE_LOG_FORMAT", "pretty"),
		ChannelBuffer: getEnvInt("TRACE_CHANNEL_BUFFER", 1024),
		DefaultOutput: getEnv("TRACE_DEFAULT_OUTPUT", "stderr"),
		DemoAddr:      getEnv("TRACE_DEMO_ADDR", ":8080"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
