package util

import (
	"errors"
	"io"
	"net"
)

// DefaultChunkSize is the read size used when streaming a body (16 KiB).
const DefaultChunkSize = 16 * 1024

// ReadChunks reads r until EOF, handing each non-empty read to fn in
// order.  It stops at the first error from fn and returns it unchanged;
// read errors other than EOF are returned as-is.  The slice passed to
// fn is reused and must not be retained.
func ReadChunks(r io.Reader, fn func(chunk []byte) error) (int64, error) {
	bp := GetChunk()
	defer PutChunk(bp)
	scratch := *bp

	var total int64
	for {
		n, err := r.Read(scratch)
		if n > 0 {
			if ferr := fn(scratch[:n]); ferr != nil {
				return total, ferr
			}
			total += int64(n)
		}
		if err != nil {
			if IsHarmless(err) {
				return total, nil
			}
			return total, err
		}
	}
}

// IsHarmless returns true for errors that mark a normal end of stream.
func IsHarmless(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
