package core

import (
	"io"
	"os"

	"vindinium/config"
	"vindinium/internal/metrics"
	"vindinium/internal/transport"
	"vindinium/tunnel"
	"vindinium/util"
)

// Build constructs the Mode for cfg.  cfg must already be validated.
// The transport context is only created for modes that use the network.
func Build(cfg *config.Config, logger *util.Logger, stdout io.Writer) (Mode, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	limits := limitsFor(cfg)

	if cfg.DryRun {
		return &PreviewMode{
			Training: cfg.Training(),
			Limits:   limits,
			Stdout:   stdout,
		}, nil
	}

	var collector *metrics.Collector
	if cfg.ShowMetrics {
		collector = metrics.New()
	}

	tc := transport.NewContext(transport.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Dialer:    buildDialer(cfg, logger),
		Logger:    logger,
		Metrics:   collector,
	})

	return &TrainingMode{
		Orchestrator: &Orchestrator{Transport: tc, Limits: limits, Logger: logger},
		Training:     cfg.Training(),
		Metrics:      collector,
		Stdout:       stdout,
		Logger:       logger,
	}, nil
}

// ── shared helpers ───────────────────────────────────────────────────

// buildDialer creates the right transport.Dialer for the given config.
func buildDialer(cfg *config.Config, logger *util.Logger) transport.Dialer {
	if cfg.TunnelEnabled {
		return transport.NewSSHDialer(&tunnel.SSHConfig{
			User:          cfg.TunnelUser,
			Host:          cfg.TunnelHost,
			Port:          cfg.TunnelPort,
			KeyPath:       cfg.SSHKeyPath,
			PromptPass:    cfg.SSHPassword,
			UseAgent:      cfg.UseSSHAgent,
			StrictHostKey: cfg.StrictHostKey,
			KnownHosts:    cfg.KnownHostsPath,
		}, logger)
	}

	return &transport.TCPDialer{Timeout: cfg.Timeout}
}

func limitsFor(cfg *config.Config) Limits {
	return Limits{
		MaxContentLength: cfg.MaxContentLength,
		MaxBodySize:      cfg.MaxBodySize,
		MaxPayload:       cfg.MaxPayload,
	}
}
