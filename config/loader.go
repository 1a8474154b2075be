package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the VINDINIUM_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  Call it BEFORE CLI flag
// parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("VINDINIUM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("VINDINIUM_KEY"); v != "" {
		cfg.Key = v
	}
	if v := envInt("VINDINIUM_TURNS"); v > 0 {
		cfg.Turns = uint(v)
	}
	if v := os.Getenv("VINDINIUM_MAP"); v != "" {
		cfg.Map = v
	}

	// Transport
	if v := envInt("VINDINIUM_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}
	if v := os.Getenv("VINDINIUM_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := envInt("VINDINIUM_MAX_CONTENT_LENGTH"); v > 0 {
		cfg.MaxContentLength = v
	}
	if v := envInt("VINDINIUM_MAX_BODY_SIZE"); v > 0 {
		cfg.MaxBodySize = v
	}

	// SSH tunnel
	if v := os.Getenv("VINDINIUM_TUNNEL"); v != "" {
		cfg.TunnelSpec = v
	}
	if v := os.Getenv("VINDINIUM_SSH_KEY"); v != "" {
		cfg.SSHKeyPath = v
	}
	if envBool("VINDINIUM_SSH_PASSWORD") {
		cfg.SSHPassword = true
	}
	if envBool("VINDINIUM_SSH_AGENT") {
		cfg.UseSSHAgent = true
	}
	if envBool("VINDINIUM_STRICT_HOSTKEY") {
		cfg.StrictHostKey = true
	}
	if v := os.Getenv("VINDINIUM_KNOWN_HOSTS"); v != "" {
		cfg.KnownHostsPath = v
	}

	// Output
	if v := envInt("VINDINIUM_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("VINDINIUM_TIMESTAMPS") {
		cfg.Timestamps = true
	}
	if envBool("VINDINIUM_METRICS") {
		cfg.ShowMetrics = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
