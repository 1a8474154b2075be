package errors

import (
	"errors"
	"fmt"
)

// Status is the closed set of outcomes a session operation can report.
type Status int

const (
	StatusOK Status = iota
	StatusFailure
	StatusTransportFailure
	StatusNullPointer
	StatusBadConfig
	StatusBufferTooSmall
	StatusMalformedRequest
	StatusAllocationFailure
)

var statusNames = [...]string{
	StatusOK:                "ok",
	StatusFailure:           "failure",
	StatusTransportFailure:  "transport failure",
	StatusNullPointer:       "null pointer",
	StatusBadConfig:         "bad config",
	StatusBufferTooSmall:    "buffer too small",
	StatusMalformedRequest:  "malformed request",
	StatusAllocationFailure: "allocation failure",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// ── Status sentinels ─────────────────────────────────────────────────
//
// Match with errors.Is; any *StatusError carrying the same Status
// compares equal to its sentinel.

var (
	ErrFailure           = &StatusError{Status: StatusFailure}
	ErrTransportFailure  = &StatusError{Status: StatusTransportFailure}
	ErrNullPointer       = &StatusError{Status: StatusNullPointer}
	ErrBadConfig         = &StatusError{Status: StatusBadConfig}
	ErrBufferTooSmall    = &StatusError{Status: StatusBufferTooSmall}
	ErrMalformedRequest  = &StatusError{Status: StatusMalformedRequest}
	ErrAllocationFailure = &StatusError{Status: StatusAllocationFailure}
)

// StatusError attaches a Status to the operation that produced it.
type StatusError struct {
	Status Status
	Op     string // "reserve", "encode", "content-length", "exchange", ...
	Err    error  // underlying cause (optional)
}

func (e *StatusError) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Status.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Is reports whether target is a *StatusError with the same Status.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return t.Status == e.Status
}

// Errorf builds a StatusError whose cause is formatted from format/args.
func Errorf(status Status, op, format string, args ...interface{}) *StatusError {
	return &StatusError{Status: status, Op: op, Err: fmt.Errorf(format, args...)}
}

// WithStatus wraps err with status unless err already carries one, in
// which case the existing classification wins.
func WithStatus(status Status, op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) {
		return err
	}
	return &StatusError{Status: status, Op: op, Err: err}
}

// StatusOf maps err onto the closed Status set.  nil is StatusOK and
// any error without a Status is StatusFailure.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusFailure
}
