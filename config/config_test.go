package config_test

import (
	"os"
	"testing"

	"github.com/QnnOkabayashi/tracing-tests/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "TRACE_LOG_FORMAT", "TRACE_CHANNEL_BUFFER", "TRACE_DEFAULT_OUTPUT", "TRACE_DEMO_ADDR"} {
		os.Unsetenv(key)
	}

	cfg := config.Load()
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("expected development default, got %q", cfg.Env)
	}
	if cfg.LogFormat != "pretty" {
		t.Fatalf("expected pretty default, got %q", cfg.LogFormat)
	}
	if cfg.ChannelBuffer != 1024 {
		t.Fatalf("expected 1024 default, got %d", cfg.ChannelBuffer)
	}
	if cfg.DefaultOutput != "stderr" {
		t.Fatalf("expected stderr default, got %q", cfg.DefaultOutput)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	os.Setenv("TRACE_LOG_FORMAT", "json")
	os.Setenv("TRACE_CHANNEL_BUFFER", "4096")
	defer os.Unsetenv("TRACE_LOG_FORMAT")
	defer os.Unsetenv("TRACE_CHANNEL_BUFFER")

	cfg := config.Load()
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json override, got %q", cfg.LogFormat)
	}
	if cfg.ChannelBuffer != 4096 {
		t.Fatalf("expected 4096 override, got %d", cfg.ChannelBuffer)
	}
}
