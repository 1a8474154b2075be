// Package cmd wires up the CLI flags and dispatches to the session core.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"vindinium/config"
	"vindinium/internal/core"
	"vindinium/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X vindinium/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and starts a training session.
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Defaults()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("vindinium", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// ── session ──────────────────────────────────────────────────
	fs.StringVarP(&cfg.Key, "key", "k", cfg.Key, "API key (or VINDINIUM_KEY)")
	fs.UintVarP(&cfg.Turns, "turns", "t", cfg.Turns, "Number of turns (0 = server default)")
	fs.StringVarP(&cfg.Map, "map", "m", cfg.Map, "Map identifier, e.g. m1 (server picks if empty)")
	fs.StringVarP(&cfg.Endpoint, "endpoint", "e", cfg.Endpoint, "Training endpoint URL")

	// ── transport ────────────────────────────────────────────────
	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Request timeout in seconds")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	fs.IntVar(&cfg.MaxContentLength, "max-content-length", cfg.MaxContentLength, "Largest Content-Length accepted")
	fs.IntVar(&cfg.MaxBodySize, "max-body-size", cfg.MaxBodySize, "Response buffer ceiling in bytes")
	fs.IntVar(&cfg.MaxPayload, "max-payload", cfg.MaxPayload, "Encoded request body ceiling in bytes")

	// ── SSH tunnel ───────────────────────────────────────────────
	fs.StringVarP(&cfg.TunnelSpec, "tunnel", "T", cfg.TunnelSpec, "Reach the endpoint via SSH [user@]host[:port]")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", cfg.SSHKeyPath, "SSH private key file")
	fs.BoolVar(&cfg.SSHPassword, "ssh-password", cfg.SSHPassword, "Prompt for SSH password")
	fs.BoolVar(&cfg.UseSSHAgent, "ssh-agent", cfg.UseSSHAgent, "Use SSH agent")
	fs.BoolVar(&cfg.StrictHostKey, "strict-hostkey", cfg.StrictHostKey, "Verify SSH host keys")
	fs.StringVar(&cfg.KnownHostsPath, "known-hosts", cfg.KnownHostsPath, "Custom known_hosts path")

	// ── output ───────────────────────────────────────────────────
	var verbose int
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.Timestamps, "timestamps", cfg.Timestamps, "Prefix log lines with the time")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Print the request without sending it")
	fs.BoolVar(&cfg.ShowMetrics, "metrics", cfg.ShowMetrics, "Print a metrics snapshot after the run")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs, stderr) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || (len(args) == 0 && cfg.Key == "") {
		printUsage(fs, stderr)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "vindinium %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Arg(0))
	}

	cfg.Verbose += verbose
	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	if err := cfg.ApplyTunnelSpec(); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(stderr)
	if cfg.Timestamps {
		logger.SetTimestamps(true)
	}

	mode, err := core.Build(cfg, logger, stdout)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `vindinium - training session client v%s

Starts a Vindinium training game and prints the session.

Usage:
  vindinium -k <key> [options]

Options:
`, version)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  vindinium -k abc123                          Server picks turns and map
  vindinium -k abc123 -t 50 -m m3              50 turns on map m3
  vindinium -k abc123 --dry-run                Show the request only
  vindinium -k abc123 -T admin@bastion         Through an SSH gateway
  VINDINIUM_KEY=abc123 vindinium --metrics     Key from the environment
`)
}
