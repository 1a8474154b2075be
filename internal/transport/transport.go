// Package transport is the HTTP collaborator of the session client.
//
// A [Context] is created once per process and carries the shared resty
// client, the dialer it connects through (plain TCP or an SSH tunnel),
// the logger and metrics.  Each session takes a [Handle] from the
// Context; the handle performs blocking POST exchanges that feed a
// [Sink] with every response header before any body chunk, all on the
// calling goroutine.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections for the HTTP client.
// Implementations include a plain TCP dialer and an SSH-tunnelled
// dialer that routes traffic through a gateway.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer
	// (e.g. an SSH session).  Stateless dialers return nil.
	Close() error
}
