// Package receiver sizes and fills a response buffer from the header
// lines and body chunks an HTTP exchange delivers.
//
// The transport calls Header for every response header before the first
// call to Body; both run on the goroutine that issued the request.  On
// any failure the buffer is released before the error is returned so a
// partial body can never reach the JSON decoder.
package receiver

import (
	"strconv"
	"strings"

	"vindinium/internal/buffer"
	ncerr "vindinium/internal/errors"
)

// DefaultMaxContentLength caps the Content-Length accepted for
// pre-sizing.
const DefaultMaxContentLength = 65536

// lengthDigits is the room for a Content-Length value, terminator
// included.
const lengthDigits = 20

const contentLength = "content-length"

// Receiver implements the header and body sinks for one exchange.
type Receiver struct {
	buf          *buffer.Buffer
	maxLength    int
	declared     int
	reservations int
	fallbacks    int
}

// New binds a Receiver to buf.  maxContentLength <= 0 selects
// DefaultMaxContentLength.
func New(buf *buffer.Buffer, maxContentLength int) *Receiver {
	if maxContentLength <= 0 {
		maxContentLength = DefaultMaxContentLength
	}
	return &Receiver{buf: buf, maxLength: maxContentLength}
}

// Buffer returns the buffer being filled.
func (r *Receiver) Buffer() *buffer.Buffer { return r.buf }

// Declared returns the last accepted Content-Length, or 0.
func (r *Receiver) Declared() int { return r.declared }

// Reservations returns how many Content-Length headers triggered a
// reservation.
func (r *Receiver) Reservations() int { return r.reservations }

// Fallbacks returns how many body chunks needed growth beyond what the
// headers reserved.
func (r *Receiver) Fallbacks() int { return r.fallbacks }

// Header inspects one header line.  Only Content-Length matters; any
// other name is ignored.
func (r *Receiver) Header(name, value string) error {
	if !strings.EqualFold(strings.TrimSpace(name), contentLength) {
		return nil
	}

	v := strings.TrimSpace(value)
	if len(v)+1 > lengthDigits {
		return r.fail(ncerr.Errorf(ncerr.StatusTransportFailure, "content-length",
			"value %q does not fit in %d bytes", v, lengthDigits))
	}
	// ParseUint rejects a sign; RFC 9110 allows digits only.
	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil || n == 0 {
		return r.fail(ncerr.Errorf(ncerr.StatusTransportFailure, "content-length",
			"malformed or zero value %q", v))
	}
	if n > uint64(r.maxLength) {
		return r.fail(ncerr.Errorf(ncerr.StatusAllocationFailure, "content-length",
			"%d exceeds maximum %d", n, r.maxLength))
	}

	if err := r.buf.Reserve(int(n) + 1); err != nil {
		return r.fail(err)
	}
	r.declared = int(n)
	r.reservations++
	return nil
}

// Body appends one chunk, growing the buffer when the headers
// under-promised or were absent.
func (r *Receiver) Body(chunk []byte) error {
	needed := r.buf.Len() + len(chunk) + 1
	if needed > r.buf.Cap() {
		r.fallbacks++
		if err := r.buf.Reserve(r.growTo(needed)); err != nil {
			return r.fail(err)
		}
	}
	if err := r.buf.Append(chunk); err != nil {
		return r.fail(err)
	}
	return nil
}

// growTo doubles capacity when that stays under the buffer limit, so a
// body without Content-Length does not reallocate on every chunk.
func (r *Receiver) growTo(needed int) int {
	doubled := 2 * r.buf.Cap()
	if doubled > needed && doubled <= r.buf.Limit() {
		return doubled
	}
	return needed
}

func (r *Receiver) fail(err error) error {
	r.buf.Release()
	return err
}
