// Package form assembles the application/x-www-form-urlencoded payload
// sent when starting a session.
//
// Escaping goes through net/url.QueryEscape, the same routine behind
// url.Values.Encode that resty uses for form bodies, so the server
// decodes every field symmetrically.
package form

import (
	"net/url"
	"strconv"
	"strings"

	ncerr "vindinium/internal/errors"
)

// DefaultMaxPayload bounds the encoded payload.
const DefaultMaxPayload = 1024

// DefaultTurnsSize bounds the decimal turn count.
const DefaultTurnsSize = 16

// Field is one (name, raw value) pair considered for the payload.
type Field struct {
	Name  string
	Value string
}

// Encode escapes and joins fields as "name=value&" in order, skipping
// empty values.  The result never exceeds max bytes; the first field
// that would overflow is reported with StatusBufferTooSmall and no
// partial payload is returned.
func Encode(fields []Field, max int) (string, error) {
	if max <= 0 {
		max = DefaultMaxPayload
	}

	var sb strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		part := Escape(f.Name) + "=" + Escape(f.Value) + "&"
		if sb.Len()+len(part) > max {
			return "", ncerr.Errorf(ncerr.StatusBufferTooSmall, "encode",
				"field %q needs %d bytes, %d of %d left", f.Name, len(part), max-sb.Len(), max)
		}
		sb.WriteString(part)
	}
	return sb.String(), nil
}

// Escape percent-encodes s for a form body.
func Escape(s string) string { return url.QueryEscape(s) }

// FormatTurns renders turns as a decimal string bounded by size bytes,
// including room for a terminator.  Zero means "server default" and
// yields "".
func FormatTurns(turns uint, size int) (string, error) {
	if turns == 0 {
		return "", nil
	}
	if size <= 0 {
		size = DefaultTurnsSize
	}
	s := strconv.FormatUint(uint64(turns), 10)
	if len(s)+1 > size {
		return "", ncerr.Errorf(ncerr.StatusBufferTooSmall, "turns",
			"%d digits do not fit in %d bytes", len(s), size)
	}
	return s, nil
}
