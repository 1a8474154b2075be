// Package errors provides the status classification and structured
// error types shared by the session client.
//
// Every failure that crosses a package boundary is either a
// *StatusError (carrying one of the closed Status values) or wraps one,
// so callers can always recover a discrete outcome with [StatusOf].
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrHandleClosed    = errors.New("transport handle already released")
	ErrBufferReleased  = errors.New("buffer already released")
	ErrTunnelClosed    = errors.New("tunnel is closed")
	ErrNotConnected    = errors.New("not connected")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrHostKeyMismatch = errors.New("host key mismatch")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op        string // operation: "dial", "post", "read-body", "status"
	Addr      string // endpoint or network address involved
	Err       error  // underlying error
	Retryable bool   // whether the caller may want to retry
}

func (e *NetworkError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
	if e.Retryable {
		s += " (retryable)"
	}
	return s
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SSHError represents an SSH-specific failure with host context.
type SSHError struct {
	Op   string // "handshake", "auth", "hostkey", "dial"
	Host string
	Port int
	Err  error
}

func (e *SSHError) Error() string {
	return fmt.Sprintf("ssh %s %s:%d: %v", e.Op, e.Host, e.Port, e.Err)
}

func (e *SSHError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.  It always
// classifies as StatusBadConfig.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrBadConfig) succeed for config errors.
func (e *ConfigError) Unwrap() error { return ErrBadConfig }

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError, automatically detecting retryability
// from the underlying error.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:        op,
		Addr:      addr,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// WrapSSH creates an SSHError.
func WrapSSH(op, host string, port int, err error) *SSHError {
	return &SSHError{Op: op, Host: host, Port: port, Err: err}
}

// Transport classifies a network failure as StatusTransportFailure,
// keeping the NetworkError in the chain for retryability checks.
func Transport(op, addr string, err error) error {
	return &StatusError{Status: StatusTransportFailure, Op: op, Err: Wrap(op, addr, err)}
}

// ── Classification helpers ───────────────────────────────────────────

// IsRetryable reports whether err is worth retrying.  Nothing in this
// module retries; the CLI reports the answer so the user can decide.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Retryable
	}
	return classifyRetryable(err)
}

// classifyRetryable inspects standard library error types.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() //nolint:staticcheck
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }
