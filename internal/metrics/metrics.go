// Package metrics provides lightweight, lock-free counters for the
// transport context: open handles, exchanges, bytes moved, and how
// response buffers were sized.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for one transport context.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	handlesActive atomic.Int64
	handlesTotal  atomic.Int64
	exchanges     atomic.Int64
	bytesIn       atomic.Int64
	bytesOut      atomic.Int64
	reservations  atomic.Int64
	fallbacks     atomic.Int64
	bufferGrows   atomic.Int64
	errorsTotal   atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	statusCodes  map[int]int64
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now(), statusCodes: make(map[int]int64)}
}

// ── Handle metrics ───────────────────────────────────────────────────

// HandleOpened increments both the active and total handle counters.
func (c *Collector) HandleOpened() {
	if c == nil {
		return
	}
	c.handlesActive.Add(1)
	c.handlesTotal.Add(1)
}

// HandleReleased decrements the active handle counter.
func (c *Collector) HandleReleased() {
	if c == nil {
		return
	}
	c.handlesActive.Add(-1)
}

// ActiveHandles returns the number of unreleased transport handles.
func (c *Collector) ActiveHandles() int64 {
	if c == nil {
		return 0
	}
	return c.handlesActive.Load()
}

// TotalHandles returns the lifetime handle count.
func (c *Collector) TotalHandles() int64 {
	if c == nil {
		return 0
	}
	return c.handlesTotal.Load()
}

// ── Exchange metrics ─────────────────────────────────────────────────

// ExchangeStarted records an outgoing request.
func (c *Collector) ExchangeStarted() {
	if c == nil {
		return
	}
	c.exchanges.Add(1)
}

// Exchanges returns the number of requests issued.
func (c *Collector) Exchanges() int64 {
	if c == nil {
		return 0
	}
	return c.exchanges.Load()
}

// StatusReceived counts a response status code.
func (c *Collector) StatusReceived(code int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.statusCodes[code]++
	c.mu.Unlock()
}

// StatusCount returns how many responses carried code.
func (c *Collector) StatusCount(code int) int64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statusCodes[code]
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n response body bytes.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n request payload bytes.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Buffer metrics ───────────────────────────────────────────────────

// BufferSized records how one response buffer was filled: header
// reservations, body chunks that needed fallback growth, and total
// reallocations.
func (c *Collector) BufferSized(reservations, fallbacks, grows int) {
	if c == nil {
		return
	}
	c.reservations.Add(int64(reservations))
	c.fallbacks.Add(int64(fallbacks))
	c.bufferGrows.Add(int64(grows))
}

// Reservations returns the number of Content-Length reservations.
func (c *Collector) Reservations() int64 {
	if c == nil {
		return 0
	}
	return c.reservations.Load()
}

// Fallbacks returns the number of body chunks that grew the buffer.
func (c *Collector) Fallbacks() int64 {
	if c == nil {
		return 0
	}
	return c.fallbacks.Load()
}

// BufferGrows returns the total number of buffer reallocations.
func (c *Collector) BufferGrows() int64 {
	if c == nil {
		return 0
	}
	return c.bufferGrows.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string           `json:"uptime"`
	HandlesActive    int64            `json:"handles_active"`
	HandlesTotal     int64            `json:"handles_total"`
	Exchanges        int64            `json:"exchanges"`
	StatusCodes      map[string]int64 `json:"status_codes,omitempty"`
	BytesIn          int64            `json:"bytes_in"`
	BytesOut         int64            `json:"bytes_out"`
	Reservations     int64            `json:"reservations"`
	Fallbacks        int64            `json:"fallbacks"`
	BufferGrows      int64            `json:"buffer_grows"`
	ErrorsTotal      int64            `json:"errors_total"`
	LastError        string           `json:"last_error,omitempty"`
	LastErrorMessage string           `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:        time.Since(c.startTime).Truncate(time.Second).String(),
		HandlesActive: c.handlesActive.Load(),
		HandlesTotal:  c.handlesTotal.Load(),
		Exchanges:     c.exchanges.Load(),
		BytesIn:       c.bytesIn.Load(),
		BytesOut:      c.bytesOut.Load(),
		Reservations:  c.reservations.Load(),
		Fallbacks:     c.fallbacks.Load(),
		BufferGrows:   c.bufferGrows.Load(),
		ErrorsTotal:   c.errorsTotal.Load(),
	}
	if len(c.statusCodes) > 0 {
		s.StatusCodes = make(map[string]int64, len(c.statusCodes))
		for code, n := range c.statusCodes {
			s.StatusCodes[strconv.Itoa(code)] = n
		}
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
