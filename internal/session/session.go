// Package session holds the record of one server-acknowledged training
// game and owns that game's transport handle until cleanup.
package session

import (
	"sync"

	ncerr "vindinium/internal/errors"
	"vindinium/internal/transport"
)

// Session is one game-play context against a server.
type Session struct {
	Endpoint    string
	Key         string
	CurrentTurn uint
	MaxTurns    uint

	GameID    string
	Finished  bool
	Token     string
	ViewURL   string
	PlayURL   string
	HeroID    int
	HeroName  string
	RequestID string // X-Request-Id of the exchange that created it

	mu     sync.Mutex
	handle *transport.Handle
}

// New binds a decoded document and its transport handle into a
// Session.  The Session takes ownership of handle.
func New(endpoint, key string, doc *Document, handle *transport.Handle) *Session {
	s := &Session{
		Endpoint: endpoint,
		Key:      key,
		handle:   handle,
	}
	if doc != nil {
		s.CurrentTurn = doc.Turn
		s.MaxTurns = doc.MaxTurns
		s.GameID = doc.GameID
		s.Finished = doc.Finished
		s.Token = doc.Token
		s.ViewURL = doc.ViewURL
		s.PlayURL = doc.PlayURL
		s.HeroID = doc.HeroID
		s.HeroName = doc.HeroName
	}
	return s
}

// Handle returns the transport handle, or nil once closed.
func (s *Session) Handle() *transport.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Closed reports whether Close has already released the handle.
func (s *Session) Closed() bool {
	return s.Handle() == nil
}

// Close releases the transport handle.  A nil Session, or one already
// closed, is rejected with StatusNullPointer; the handle is never
// reused.
func (s *Session) Close() error {
	if s == nil {
		return &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "cleanup"}
	}

	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "cleanup", Err: ncerr.ErrHandleClosed}
	}
	return h.Release()
}
