package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultTrainingEndpoint is used when no endpoint override is given.
	DefaultTrainingEndpoint = "http://vindinium.org/api/training"

	// DefaultTimeout bounds one complete HTTP exchange.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxContentLength caps the Content-Length accepted for
	// pre-sizing the response buffer.
	DefaultMaxContentLength = 65536

	// MaxContentLengthCeiling is the largest --max-content-length
	// accepted.
	MaxContentLengthCeiling = 1 << 20

	// DefaultMaxBodySize caps the response buffer when the server sends
	// no Content-Length.
	DefaultMaxBodySize = 4 << 20

	// DefaultMaxPayload bounds the encoded POST payload.
	DefaultMaxPayload = 1024

	// DefaultTurnsBufSize bounds the decimal turn count.
	DefaultTurnsBufSize = 16

	// DefaultSSHPort is the standard SSH port.
	DefaultSSHPort = 22
)
