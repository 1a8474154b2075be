// Package config defines the runtime configuration for the vindinium
// client and the training descriptor handed to the session core.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	ncerr "vindinium/internal/errors"
	"vindinium/util"
)

// TrainingConfig describes the session to start.  Endpoint "" selects
// DefaultTrainingEndpoint, Turns 0 selects the server default and Map
// "" lets the server pick.
type TrainingConfig struct {
	Endpoint string
	Key      string
	Turns    uint
	Map      string
}

// Validate rejects a missing key before any network activity.
func (t *TrainingConfig) Validate() error {
	if t == nil {
		return &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "validate"}
	}
	if t.Key == "" {
		return &ncerr.ConfigError{
			Field:   "key",
			Message: "required",
			Hint:    "pass --key or set VINDINIUM_KEY to your API key",
		}
	}
	return nil
}

// ResolvedEndpoint returns the endpoint the request is sent to.
func (t *TrainingConfig) ResolvedEndpoint() string {
	if t.Endpoint == "" {
		return DefaultTrainingEndpoint
	}
	return t.Endpoint
}

// Config holds every tuneable for one client run.
type Config struct {
	// ── Session ──────────────────────────────────────────────────────
	Endpoint string
	Key      string
	Turns    uint
	Map      string

	// ── Transport ────────────────────────────────────────────────────
	Timeout          time.Duration
	UserAgent        string
	MaxContentLength int // header-declared size ceiling
	MaxBodySize      int // buffer ceiling without a header
	MaxPayload       int // encoded POST body ceiling

	// ── SSH tunnel ───────────────────────────────────────────────────
	TunnelSpec     string // raw user@host[:port] from -T
	TunnelEnabled  bool
	TunnelUser     string
	TunnelHost     string
	TunnelPort     int
	SSHKeyPath     string
	SSHPassword    bool // true → prompt interactively
	UseSSHAgent    bool
	StrictHostKey  bool
	KnownHostsPath string

	// ── Output ───────────────────────────────────────────────────────
	Verbose     int
	Timestamps  bool
	DryRun      bool
	ShowMetrics bool
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		Endpoint:         DefaultTrainingEndpoint,
		Timeout:          DefaultTimeout,
		MaxContentLength: DefaultMaxContentLength,
		MaxBodySize:      DefaultMaxBodySize,
		MaxPayload:       DefaultMaxPayload,
		Verbose:          1,
	}
}

// Training extracts the session descriptor.
func (c *Config) Training() *TrainingConfig {
	return &TrainingConfig{
		Endpoint: c.Endpoint,
		Key:      c.Key,
		Turns:    c.Turns,
		Map:      c.Map,
	}
}

// ── Tunnel-spec parser ───────────────────────────────────────────────

// tunnelRe matches [user@]host[:port].
var tunnelRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:]+)(?::(\d+))?$`)

// ParseTunnelSpec extracts user, host, and port from a string such as
// "admin@bastion.example.com:2222".  Port defaults to 22.
func ParseTunnelSpec(spec string) (user, host string, port int, err error) {
	m := tunnelRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid tunnel spec %q – expected [user@]host[:port]", spec)
	}
	user = m[1]
	host = m[2]
	port = DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, fmt.Errorf("invalid tunnel port %q", m[3])
		}
	}
	if host == "" {
		return "", "", 0, fmt.Errorf("tunnel host is required")
	}
	return user, host, port, nil
}

// ApplyTunnelSpec parses TunnelSpec, if set, into the tunnel fields.
func (c *Config) ApplyTunnelSpec() error {
	if c.TunnelSpec == "" {
		return nil
	}
	user, host, port, err := ParseTunnelSpec(c.TunnelSpec)
	if err != nil {
		return &ncerr.ConfigError{Field: "tunnel", Value: c.TunnelSpec, Message: err.Error()}
	}
	c.TunnelEnabled = true
	c.TunnelUser = user
	c.TunnelHost = host
	c.TunnelPort = port
	return nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
// Every failure is a *ConfigError and classifies as StatusBadConfig.
func (c *Config) Validate() error {
	if err := c.Training().Validate(); err != nil {
		return err
	}

	if c.Endpoint != "" && !util.ValidEndpoint(c.Endpoint) {
		return &ncerr.ConfigError{
			Field:   "endpoint",
			Value:   c.Endpoint,
			Message: "must be an absolute http or https URL",
			Hint:    "e.g. " + DefaultTrainingEndpoint,
		}
	}

	if c.Timeout < 0 {
		return &ncerr.ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}

	if c.MaxContentLength < 1 || c.MaxContentLength > MaxContentLengthCeiling {
		return &ncerr.ConfigError{
			Field:   "max-content-length",
			Value:   c.MaxContentLength,
			Message: "out of range",
			Hint:    fmt.Sprintf("use a size between 1 and %d bytes", MaxContentLengthCeiling),
		}
	}

	if c.MaxBodySize <= c.MaxContentLength {
		return &ncerr.ConfigError{
			Field:   "max-body-size",
			Value:   c.MaxBodySize,
			Message: "must exceed --max-content-length",
			Hint:    "a declared body plus its terminator has to fit in the buffer",
		}
	}

	if c.MaxPayload < 1 {
		return &ncerr.ConfigError{Field: "max-payload", Value: c.MaxPayload, Message: "must be positive"}
	}

	if c.TunnelEnabled && c.TunnelHost == "" {
		return &ncerr.ConfigError{Field: "tunnel", Message: "tunnel host is required"}
	}

	if c.SSHKeyPath != "" && !c.TunnelEnabled {
		return &ncerr.ConfigError{
			Field:   "ssh-key",
			Value:   c.SSHKeyPath,
			Message: "only used with --tunnel",
			Hint:    "add -T user@gateway to route through SSH",
		}
	}

	return nil
}
