package core

import (
	"context"
	"fmt"
	"io"

	"vindinium/config"
	ncerr "vindinium/internal/errors"
	"vindinium/internal/metrics"
	"vindinium/internal/session"
	"vindinium/util"
)

// TrainingMode starts one training session, prints it, and cleans up
// both the session and the transport context before returning.
type TrainingMode struct {
	Orchestrator *Orchestrator
	Training     *config.TrainingConfig
	Metrics      *metrics.Collector // printed after the run when non-nil
	Stdout       io.Writer
	Logger       *util.Logger
}

// Run implements Mode.
func (m *TrainingMode) Run(ctx context.Context) error {
	logger := m.Logger
	if logger == nil {
		logger = util.Discard()
	}

	defer m.Orchestrator.Transport.Close() //nolint:errcheck
	if m.Metrics != nil {
		defer func() { fmt.Fprintln(m.Stdout, m.Metrics.JSON()) }()
	}

	s, err := m.Orchestrator.CreateTrainingSession(ctx, m.Training)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		if ncerr.IsRetryable(err) {
			logger.Verbose("transport failure is retryable; running again may start the session")
		}
		return fmt.Errorf("create training session: %w", err)
	}

	printSession(m.Stdout, s)

	if err := CleanupSession(s); err != nil {
		return fmt.Errorf("cleanup session: %w", err)
	}
	logger.Verbose("session %s cleaned up", s.GameID)
	return nil
}

func printSession(w io.Writer, s *session.Session) {
	fmt.Fprintf(w, "game:     %s\n", s.GameID)
	fmt.Fprintf(w, "hero:     %s (#%d)\n", s.HeroName, s.HeroID)
	fmt.Fprintf(w, "turns:    %d/%d\n", s.CurrentTurn, s.MaxTurns)
	fmt.Fprintf(w, "view:     %s\n", s.ViewURL)
	fmt.Fprintf(w, "play:     %s\n", s.PlayURL)
	fmt.Fprintf(w, "request:  %s\n", s.RequestID)
}
