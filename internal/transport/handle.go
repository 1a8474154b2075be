package transport

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	ncerr "vindinium/internal/errors"
	"vindinium/util"
)

const formContentType = "application/x-www-form-urlencoded"

// Sink receives one response as it streams in.  Every Header call
// precedes the first Body call.  Returning an error from either aborts
// the exchange: no further callbacks happen and the connection is
// closed.
type Sink interface {
	Header(name, value string) error
	Body(chunk []byte) error
}

// Request is one form POST.
type Request struct {
	URL     string
	Payload string // already form-encoded
}

// Response describes a completed exchange.  The body itself went to
// the Sink.
type Response struct {
	StatusCode int
	RequestID  string
	BodyBytes  int64
}

// Handle is the transport handle owned by one session.  Once released
// it can never be used again.
type Handle struct {
	tc *Context

	mu       sync.Mutex
	released bool
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Release gives the handle back.  Releasing twice is rejected with
// StatusNullPointer.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "release", Err: ncerr.ErrHandleClosed}
	}
	h.released = true
	h.tc.metrics.HandleReleased()
	return nil
}

// Post performs one blocking form POST, streaming headers then body
// into sink.  Connection, DNS, timeout and read failures classify as
// StatusTransportFailure; sink errors are returned with their own
// status.
func (h *Handle) Post(ctx context.Context, req Request, sink Sink) (*Response, error) {
	if h.Released() {
		return nil, &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "post", Err: ncerr.ErrHandleClosed}
	}
	if h.tc.isClosed() {
		return nil, ncerr.Errorf(ncerr.StatusTransportFailure, "post", "transport context is closed")
	}

	tc := h.tc
	id := uuid.NewString()
	tc.metrics.ExchangeStarted()
	tc.metrics.BytesSent(int64(len(req.Payload)))
	tc.logger.Debug("POST %s (%d bytes, request %s)", req.URL, len(req.Payload), id)

	resp, err := tc.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Content-Type", formContentType).
		SetHeader("X-Request-Id", id).
		SetBody(req.Payload).
		Post(req.URL)
	if resp != nil && resp.RawResponse != nil && resp.RawResponse.Body != nil {
		defer resp.RawResponse.Body.Close()
	}
	if err != nil {
		tc.metrics.RecordError(err.Error())
		return nil, ncerr.Transport("post", req.URL, err)
	}
	if resp == nil || resp.RawResponse == nil {
		return nil, ncerr.Transport("status", req.URL, errors.New("no response received"))
	}
	raw := resp.RawResponse

	if err := deliverHeaders(raw, sink); err != nil {
		tc.metrics.RecordError(err.Error())
		return nil, ncerr.WithStatus(ncerr.StatusTransportFailure, "header", err)
	}

	var sinkErr error
	n, err := util.ReadChunks(raw.Body, func(chunk []byte) error {
		if serr := sink.Body(chunk); serr != nil {
			sinkErr = serr
			return serr
		}
		return nil
	})
	tc.metrics.BytesReceived(n)
	if sinkErr != nil {
		tc.metrics.RecordError(sinkErr.Error())
		return nil, ncerr.WithStatus(ncerr.StatusTransportFailure, "body", sinkErr)
	}
	if err != nil {
		tc.metrics.RecordError(err.Error())
		return nil, ncerr.Transport("read-body", req.URL, err)
	}

	status := resp.StatusCode()
	if status == 0 {
		return nil, ncerr.Transport("status", req.URL, errors.New("missing status code"))
	}
	tc.metrics.StatusReceived(status)
	tc.logger.Debug("request %s: status %d, %d body bytes", id, status, n)

	return &Response{StatusCode: status, RequestID: id, BodyBytes: n}, nil
}

// deliverHeaders feeds every header line to sink in a stable order.
// net/http folds duplicate names into one key and may drop
// Content-Length from the map; when it did but the length is known,
// the line is synthesised so the sink can still pre-size.
func deliverHeaders(raw *http.Response, sink Sink) error {
	names := make([]string, 0, len(raw.Header)+1)
	for name := range raw.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range raw.Header[name] {
			if err := sink.Header(name, value); err != nil {
				return err
			}
		}
	}

	if raw.Header.Get("Content-Length") == "" && raw.ContentLength > 0 {
		return sink.Header("Content-Length", strconv.FormatInt(raw.ContentLength, 10))
	}
	return nil
}
