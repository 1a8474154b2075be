// Package buffer provides the owned, growable byte region that receives
// an HTTP response body.
//
// A Buffer tracks its size (bytes written) and capacity (bytes
// allocated) explicitly.  After every append the byte at Len() is NUL,
// so CString always yields a terminated text string.  A Buffer is used
// by one request at a time and is not safe for concurrent use.
package buffer

import (
	ncerr "vindinium/internal/errors"
)

// DefaultLimit caps capacity when New is given a non-positive limit.
const DefaultLimit = 4 << 20

// Buffer is a growable byte region with explicit reserve/append.
type Buffer struct {
	data     []byte // len(data) == capacity
	size     int
	limit    int
	grows    int
	released bool
}

// New returns an empty Buffer whose capacity may never exceed limit.
func New(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Buffer{limit: limit}
}

// Len returns the number of bytes written, excluding the terminator.
func (b *Buffer) Len() int { return b.size }

// Cap returns the number of bytes allocated.
func (b *Buffer) Cap() int { return len(b.data) }

// Limit returns the capacity ceiling.
func (b *Buffer) Limit() int { return b.limit }

// Grows returns how many times the backing storage was reallocated.
func (b *Buffer) Grows() int { return b.grows }

// Released reports whether the storage has been released or detached.
func (b *Buffer) Released() bool { return b.released }

// Reserve ensures Cap() >= min, preserving existing bytes.  Capacity
// never shrinks.  Any slice previously obtained from Bytes or CString
// may no longer alias the buffer afterwards.
func (b *Buffer) Reserve(min int) error {
	if b.released {
		return &ncerr.StatusError{Status: ncerr.StatusNullPointer, Op: "reserve", Err: ncerr.ErrBufferReleased}
	}
	if min < 0 {
		return ncerr.Errorf(ncerr.StatusAllocationFailure, "reserve", "negative capacity %d", min)
	}
	if min <= len(b.data) {
		return nil
	}
	if min > b.limit {
		return ncerr.Errorf(ncerr.StatusAllocationFailure, "reserve",
			"%d bytes exceeds buffer limit %d", min, b.limit)
	}

	grown := make([]byte, min)
	copy(grown, b.data[:b.size])
	b.data = grown
	b.grows++
	return nil
}

// Append writes p at the current size offset, growing first, and then
// re-terminates the region.
func (b *Buffer) Append(p []byte) error {
	if err := b.Reserve(b.size + len(p) + 1); err != nil {
		return err
	}
	copy(b.data[b.size:], p)
	b.size += len(p)
	b.data[b.size] = 0
	return nil
}

// Bytes returns the written bytes without the terminator.  The slice
// aliases the buffer until the next Reserve/Append.
func (b *Buffer) Bytes() []byte {
	if b.data == nil {
		return nil
	}
	return b.data[:b.size]
}

// CString returns the written bytes including the trailing NUL.  An
// empty, never-grown buffer yields nil.
func (b *Buffer) CString() []byte {
	if b.data == nil || b.size >= len(b.data) {
		return nil
	}
	return b.data[:b.size+1]
}

// String returns a copy of the written bytes as text.
func (b *Buffer) String() string { return string(b.Bytes()) }

// Detach transfers ownership of the written bytes to the caller.  The
// Buffer is left released.
func (b *Buffer) Detach() []byte {
	out := b.Bytes()
	b.data = nil
	b.size = 0
	b.released = true
	return out
}

// Release drops the backing storage.  Calling it twice is harmless.
func (b *Buffer) Release() {
	b.data = nil
	b.size = 0
	b.released = true
}
