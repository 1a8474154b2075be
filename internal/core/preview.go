package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vindinium/config"
	"vindinium/internal/form"
)

// PreviewMode builds the request exactly as TrainingMode would and
// prints it without touching the network.
type PreviewMode struct {
	Training *config.TrainingConfig
	Limits   Limits
	Stdout   io.Writer
}

// Run implements Mode.
func (m *PreviewMode) Run(_ context.Context) error {
	if err := m.Training.Validate(); err != nil {
		return err
	}
	payload, err := BuildPayload(m.Training, m.Limits)
	if err != nil {
		return fmt.Errorf("build payload: %w", err)
	}

	masked := strings.Replace(payload, "key="+form.Escape(m.Training.Key), "key=****", 1)
	fmt.Fprintf(m.Stdout, "POST %s\n", m.Training.ResolvedEndpoint())
	fmt.Fprintf(m.Stdout, "Content-Type: application/x-www-form-urlencoded\n")
	fmt.Fprintf(m.Stdout, "Content-Length: %d\n\n", len(payload))
	fmt.Fprintln(m.Stdout, masked)
	return nil
}
