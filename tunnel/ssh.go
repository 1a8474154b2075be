package tunnel

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	ncerr "vindinium/internal/errors"
	"vindinium/util"
)

// DefaultConnTimeout bounds the gateway handshake.
const DefaultConnTimeout = 30 * time.Second

// SSHConfig holds everything needed to dial an SSH gateway.
type SSHConfig struct {
	User          string
	Host          string
	Port          int
	KeyPath       string
	PromptPass    bool
	UseAgent      bool
	StrictHostKey bool
	KnownHosts    string
	ConnTimeout   time.Duration

	// Prompt reads a secret from the user.  Nil reads from the
	// terminal with echo disabled.
	Prompt func(label string) ([]byte, error)
}

// Addr returns the gateway's host:port.
func (c *SSHConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SSHTunnel implements [Tunnel] by opening an SSH connection and
// forwarding traffic with ssh.Client.DialContext.
type SSHTunnel struct {
	config *SSHConfig
	client *ssh.Client
	logger *util.Logger
	mu     sync.RWMutex
	alive  bool
	closed bool
}

// NewSSHTunnel creates a tunnel that is ready to [Connect].
func NewSSHTunnel(cfg *SSHConfig, logger *util.Logger) *SSHTunnel {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.ConnTimeout == 0 {
		cfg.ConnTimeout = DefaultConnTimeout
	}
	if logger == nil {
		logger = util.Discard()
	}
	return &SSHTunnel{config: cfg, logger: logger.Named("tunnel")}
}

// Connect dials the SSH gateway and completes the handshake.
func (t *SSHTunnel) Connect(ctx context.Context) error {
	authMethods, err := BuildAuthMethods(t.config)
	if err != nil {
		return ncerr.WrapSSH("auth", t.config.Host, t.config.Port, err)
	}

	hkCallback, err := hostKeyCallback(t.config)
	if err != nil {
		return ncerr.WrapSSH("hostkey", t.config.Host, t.config.Port, err)
	}

	sshCfg := &ssh.ClientConfig{
		User:            t.config.User,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         t.config.ConnTimeout,
	}

	addr := t.config.Addr()
	t.logger.Debug("dialing %s as %s", addr, t.config.User)

	dialer := net.Dialer{Timeout: t.config.ConnTimeout}
	tcpConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return ncerr.Wrap("dial", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(tcpConn, addr, sshCfg)
	if err != nil {
		tcpConn.Close()
		return ncerr.WrapSSH("handshake", t.config.Host, t.config.Port, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	t.mu.Lock()
	t.client = client
	t.alive = true
	t.closed = false
	t.mu.Unlock()

	go t.monitor(client)

	return nil
}

// Dial forwards a connection to address through the gateway.
func (t *SSHTunnel) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	t.mu.RLock()
	client := t.client
	alive := t.alive
	closed := t.closed
	t.mu.RUnlock()

	if closed {
		return nil, ncerr.ErrTunnelClosed
	}
	if !alive || client == nil {
		return nil, ncerr.ErrNotConnected
	}

	t.logger.Debug("forwarding %s %s", network, address)
	conn, err := client.DialContext(ctx, network, address)
	if err != nil {
		return nil, ncerr.WrapSSH("dial", t.config.Host, t.config.Port,
			fmt.Errorf("forward to %s: %w", address, err))
	}
	return conn, nil
}

// Close shuts down the SSH connection.
func (t *SSHTunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.alive = false
	t.closed = true
	if t.client != nil {
		err := t.client.Close()
		t.client = nil
		return err
	}
	return nil
}

// IsAlive reports whether the tunnel is still connected.
func (t *SSHTunnel) IsAlive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.alive
}

// monitor blocks until the SSH connection closes and flips the alive flag.
func (t *SSHTunnel) monitor(client *ssh.Client) {
	err := client.Wait()

	t.mu.Lock()
	if t.client == client {
		t.alive = false
	}
	t.mu.Unlock()

	if err != nil {
		t.logger.Debug("gateway connection closed: %v", err)
	} else {
		t.logger.Debug("gateway connection closed")
	}
}
