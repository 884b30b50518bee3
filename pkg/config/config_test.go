package config

import (
	"testing"
	"time"
)

func TestParse_Defaults_WhenEnvMissing(t *testing.T) {
	for _, k := range []string{
		"LISTEN_ADDR", "SERVER_URL", "POW_DIFFICULTY", "POW_TTL", "CLOCK_SKEW",
		"MAX_TOKEN_LEN", "MAX_ATTEMPTS", "KEY_ID", "LOG_LEVEL", "SHUTDOWN_WAIT",
	} {
		t.Setenv(k, "")
	}

	cfg := Parse()

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr=%q; want :8080", cfg.ListenAddr)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Fatalf("ServerURL=%q; want http://localhost:8080", cfg.ServerURL)
	}
	if cfg.PoWDifficulty != 20 {
		t.Fatalf("PoWDifficulty=%d; want 20", cfg.PoWDifficulty)
	}
	if cfg.PoWTTL != 30*time.Second {
		t.Fatalf("PoWTTL=%v; want 30s", cfg.PoWTTL)
	}
	if cfg.ClockSkew != 30*time.Second {
		t.Fatalf("ClockSkew=%v; want 30s", cfg.ClockSkew)
	}
	if cfg.MaxTokenLen != 8192 {
		t.Fatalf("MaxTokenLen=%d; want 8192", cfg.MaxTokenLen)
	}
	if cfg.MaxAttempts != 1<<26 {
		t.Fatalf("MaxAttempts=%d; want %d", cfg.MaxAttempts, uint64(1)<<26)
	}
	if cfg.KeyID != "edge-primary" {
		t.Fatalf("KeyID=%q; want edge-primary", cfg.KeyID)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel=%q; want info", cfg.LogLevel)
	}
	if cfg.ShutdownWait != 5*time.Second {
		t.Fatalf("ShutdownWait=%v; want 5s", cfg.ShutdownWait)
	}
}

func TestParse_OverridesFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("SERVER_URL", "http://edge.internal:9999")
	t.Setenv("POW_DIFFICULTY", "12")
	t.Setenv("POW_TTL", "90s")
	t.Setenv("CLOCK_SKEW", "10s")
	t.Setenv("MAX_TOKEN_LEN", "4096")
	t.Setenv("MAX_ATTEMPTS", "1024")
	t.Setenv("KEY_ID", "edge-blue")
	t.Setenv("SHUTDOWN_WAIT", "1500ms")

	cfg := Parse()

	if cfg.ListenAddr != ":9999" {
		t.Fatalf("ListenAddr=%q; want :9999", cfg.ListenAddr)
	}
	if cfg.ServerURL != "http://edge.internal:9999" {
		t.Fatalf("ServerURL=%q", cfg.ServerURL)
	}
	if cfg.PoWDifficulty != 12 {
		t.Fatalf("PoWDifficulty=%d; want 12", cfg.PoWDifficulty)
	}
	if cfg.PoWTTL != 90*time.Second {
		t.Fatalf("PoWTTL=%v; want 90s", cfg.PoWTTL)
	}
	if cfg.ClockSkew != 10*time.Second {
		t.Fatalf("ClockSkew=%v; want 10s", cfg.ClockSkew)
	}
	if cfg.MaxTokenLen != 4096 {
		t.Fatalf("MaxTokenLen=%d; want 4096", cfg.MaxTokenLen)
	}
	if cfg.MaxAttempts != 1024 {
		t.Fatalf("MaxAttempts=%d; want 1024", cfg.MaxAttempts)
	}
	if cfg.KeyID != "edge-blue" {
		t.Fatalf("KeyID=%q; want edge-blue", cfg.KeyID)
	}
	if cfg.ShutdownWait != 1500*time.Millisecond {
		t.Fatalf("ShutdownWait=%v; want 1500ms", cfg.ShutdownWait)
	}
}

func TestParse_InvalidValues_CurrentBehavior(t *testing.T) {
	// ParseDuration errors are ignored, so an unparsable duration becomes zero.
	t.Setenv("POW_TTL", "oops")
	t.Setenv("SHUTDOWN_WAIT", "nope")
	// Unparsable numbers fall back to their defaults.
	t.Setenv("POW_DIFFICULTY", "abc")
	t.Setenv("MAX_ATTEMPTS", "-5")

	cfg := Parse()

	if cfg.PoWTTL != 0 {
		t.Fatalf("PoWTTL=%v; want 0 on unparsable duration", cfg.PoWTTL)
	}
	if cfg.ShutdownWait != 0 {
		t.Fatalf("ShutdownWait=%v; want 0 on unparsable duration", cfg.ShutdownWait)
	}
	if cfg.PoWDifficulty != 20 {
		t.Fatalf("PoWDifficulty=%d; want default 20 on unparsable value", cfg.PoWDifficulty)
	}
	if cfg.MaxAttempts != 1<<26 {
		t.Fatalf("MaxAttempts=%d; want default on negative value", cfg.MaxAttempts)
	}
}
