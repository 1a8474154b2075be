package transport

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	ncerr "vindinium/internal/errors"
	"vindinium/internal/metrics"
	"vindinium/util"
)

// DefaultTimeout bounds one complete exchange.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to the game server.
const DefaultUserAgent = "vindinium-go/1.0"

// Options configures a Context.  Zero values select defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Dialer    Dialer
	Logger    *util.Logger
	Metrics   *metrics.Collector
}

// Context is the process-wide transport state shared by every session.
// Create it once with NewContext and Close it at shutdown, after every
// session has been cleaned up.
type Context struct {
	client  *resty.Client
	dialer  Dialer
	logger  *util.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	closed bool
}

// NewContext builds the shared HTTP client over opts.Dialer.
func NewContext(opts Options) *Context {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Dialer == nil {
		opts.Dialer = &TCPDialer{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = util.Discard()
	}
	logger := opts.Logger.Named("transport")

	rt := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         opts.Dialer.Dial,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	client := resty.New().
		SetTransport(rt).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger})

	return &Context{
		client:  client,
		dialer:  opts.Dialer,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// Metrics returns the collector, which may be nil.
func (c *Context) Metrics() *metrics.Collector { return c.metrics }

// Logger returns the transport logger.
func (c *Context) Logger() *util.Logger { return c.logger }

// NewHandle returns a transport handle for one session.
func (c *Context) NewHandle() (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ncerr.Errorf(ncerr.StatusTransportFailure, "handle", "transport context is closed")
	}
	c.metrics.HandleOpened()
	return &Handle{tc: c}, nil
}

// Close drops idle connections and releases the dialer.  Handles
// still outstanding fail their next exchange.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.client.GetClient().CloseIdleConnections()
	if err := c.dialer.Close(); err != nil {
		return fmt.Errorf("closing dialer: %w", err)
	}
	return nil
}

func (c *Context) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// restyLogger forwards resty's internal messages to the levelled logger.
type restyLogger struct{ l *util.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug(format, v...) }
