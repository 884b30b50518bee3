package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr    string
	ServerURL     string
	PoWDifficulty int
	PoWTTL        time.Duration
	ClockSkew     time.Duration
	MaxTokenLen   int
	MaxAttempts   uint64
	KeyID         string
	LogLevel      string
	ShutdownWait  time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func atou(s string, def uint64) uint64 {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}
	return def
}

func Parse() Config {
	ttl, _ := time.ParseDuration(getenv("POW_TTL", "30s"))
	skew, _ := time.ParseDuration(getenv("CLOCK_SKEW", "30s"))
	wait, _ := time.ParseDuration(getenv("SHUTDOWN_WAIT", "5s"))
	return Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		ServerURL:     getenv("SERVER_URL", "http://localhost:8080"),
		PoWDifficulty: atoi(getenv("POW_DIFFICULTY", "20"), 20),
		PoWTTL:        ttl,
		ClockSkew:     skew,
		MaxTokenLen:   atoi(getenv("MAX_TOKEN_LEN", "8192"), 8192),
		MaxAttempts:   atou(getenv("MAX_ATTEMPTS", "67108864"), 1<<26),
		KeyID:         getenv("KEY_ID", "edge-primary"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		ShutdownWait:  wait,
	}
}
