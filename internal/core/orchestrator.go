package core

import (
	"context"
	"net/http"

	"vindinium/config"
	"vindinium/internal/buffer"
	ncerr "vindinium/internal/errors"
	"vindinium/internal/form"
	"vindinium/internal/receiver"
	"vindinium/internal/session"
	"vindinium/internal/transport"
	"vindinium/util"
)

// Limits bounds the memory one request may use.  Zero fields select
// the config defaults.
type Limits struct {
	MaxContentLength int // largest Content-Length accepted for pre-sizing
	MaxBodySize      int // response buffer ceiling
	MaxPayload       int // encoded POST body ceiling
	TurnsBufSize     int // decimal turn count ceiling, terminator included
}

func (l Limits) withDefaults() Limits {
	if l.MaxContentLength <= 0 {
		l.MaxContentLength = config.DefaultMaxContentLength
	}
	if l.MaxBodySize <= 0 {
		l.MaxBodySize = config.DefaultMaxBodySize
	}
	if l.MaxPayload <= 0 {
		l.MaxPayload = config.DefaultMaxPayload
	}
	if l.TurnsBufSize <= 0 {
		l.TurnsBufSize = config.DefaultTurnsBufSize
	}
	return l
}

// Orchestrator starts sessions over a shared transport context.
type Orchestrator struct {
	Transport *transport.Context
	Limits    Limits
	Logger    *util.Logger
}

// CreateTrainingSession starts a training session with default limits.
func CreateTrainingSession(ctx context.Context, tc *transport.Context, cfg *config.TrainingConfig) (*session.Session, error) {
	o := &Orchestrator{Transport: tc}
	return o.CreateTrainingSession(ctx, cfg)
}

// CleanupSession releases the session's transport handle.  Cleaning up
// a nil or already cleaned-up session is StatusNullPointer.
func CleanupSession(s *session.Session) error {
	return s.Close()
}

// BuildPayload encodes the training form fields.  The turn count is
// omitted when zero and the map when empty.
func BuildPayload(cfg *config.TrainingConfig, limits Limits) (string, error) {
	limits = limits.withDefaults()

	turns, err := form.FormatTurns(cfg.Turns, limits.TurnsBufSize)
	if err != nil {
		return "", err
	}
	return form.Encode([]form.Field{
		{Name: "key", Value: cfg.Key},
		{Name: "turns", Value: turns},
		{Name: "map", Value: cfg.Map},
	}, limits.MaxPayload)
}

// CreateTrainingSession validates cfg, POSTs the training form and
// decodes the 200 response into a Session that owns the transport
// handle.  Every failure path releases the handle and the response
// buffer; no Session is returned alongside an error.
func (o *Orchestrator) CreateTrainingSession(ctx context.Context, cfg *config.TrainingConfig) (*session.Session, error) {
	if o == nil || o.Transport == nil || cfg == nil || ctx == nil {
		return nil, &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "create session"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := o.Logger
	if logger == nil {
		logger = o.Transport.Logger()
	}
	logger = logger.Named("session")
	limits := o.Limits.withDefaults()

	handle, err := o.Transport.NewHandle()
	if err != nil {
		return nil, err
	}
	keepHandle := false
	defer func() {
		if !keepHandle {
			handle.Release() //nolint:errcheck // first release cannot fail
		}
	}()

	endpoint := cfg.ResolvedEndpoint()
	payload, err := BuildPayload(cfg, limits)
	if err != nil {
		return nil, err
	}

	buf := buffer.New(limits.MaxBodySize)
	defer buf.Release()
	rcv := receiver.New(buf, limits.MaxContentLength)

	logger.Verbose("starting training session at %s", endpoint)

	resp, err := handle.Post(ctx, transport.Request{URL: endpoint, Payload: payload}, rcv)
	o.Transport.Metrics().BufferSized(rcv.Reservations(), rcv.Fallbacks(), buf.Grows())
	if err != nil {
		return nil, err
	}

	logger.Debug("response %d: %d bytes, declared %d, %d reservation(s), %d fallback grow(s)",
		resp.StatusCode, buf.Len(), rcv.Declared(), rcv.Reservations(), rcv.Fallbacks())

	if resp.StatusCode != http.StatusOK {
		return nil, ncerr.Errorf(ncerr.StatusMalformedRequest, "create session",
			"server answered %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	doc, err := session.Decode(buf.Detach())
	if err != nil {
		return nil, err
	}

	s := session.New(endpoint, cfg.Key, doc, handle)
	s.RequestID = resp.RequestID
	if s.MaxTurns == 0 {
		s.MaxTurns = cfg.Turns
	}
	keepHandle = true

	logger.Verbose("session %s started: turn %d of %d", s.GameID, s.CurrentTurn, s.MaxTurns)
	return s, nil
}
