// Package core is the orchestration layer.  It sequences one session
// request end to end (payload, exchange, buffer, decode) and provides a
// builder that turns a Config into a runnable mode.
//
// Architecture layers (bottom → top):
//
//	buffer/form/receiver  →  transport  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Mode represents a complete run of the client (start a training
// session, or preview the request without sending it).  Each mode owns
// its full lifecycle, including teardown.
type Mode interface {
	Run(ctx context.Context) error
}
