package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3) // debug level
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Error("e")
	l.Warn("w")
	l.Info("i")
	l.Verbose("v")
	l.Debug("d")

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), output)
	}

	wantPrefixes := []string{"[ERR]", "[WRN]", "[INF]", "[VRB]", "[DBG]"}
	for i, prefix := range wantPrefixes {
		if !strings.Contains(lines[i], prefix) {
			t.Errorf("line %d %q missing prefix %q", i, lines[i], prefix)
		}
	}
}

func TestLogger_QuietMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(0) // quiet
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Info("should not appear")
	l.Verbose("should not appear")
	l.Debug("should not appear")
	l.Error("always appears")

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("expected 1 line in quiet mode, got %d:\n%s", len(lines), output)
	}
}

func TestLogger_Timestamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)
	l.SetTimestamps(true)

	l.Info("test")

	output := buf.String()
	// Timestamp format is "HH:MM:SS.mmm"
	if !strings.Contains(output, ":") || len(output) < 15 {
		t.Errorf("expected timestamp prefix, got %q", output)
	}
}

func TestLogger_WarnLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1) // normal
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Warn("warning message")

	if !strings.Contains(buf.String(), "[WRN]") {
		t.Errorf("expected [WRN] prefix, got %q", buf.String())
	}
}

func TestChunkPool_RoundTrip(t *testing.T) {
	buf := GetChunk()
	if buf == nil {
		t.Fatal("GetChunk returned nil")
	}
	if len(*buf) != DefaultChunkSize {
		t.Errorf("buffer size = %d, want %d", len(*buf), DefaultChunkSize)
	}

	// Write some data and return.
	(*buf)[0] = 0xFF
	PutChunk(buf)

	// Get another buffer; may or may not be the same one.
	buf2 := GetChunk()
	if buf2 == nil {
		t.Fatal("second GetChunk returned nil")
	}
	PutChunk(buf2)
}

func TestPutChunk_Nil(t *testing.T) {
	// Should not panic.
	PutChunk(nil)
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3)
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Named("transport").Named("http").Debug("status %d", 200)

	want := "[DBG] transport.http: status 200\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_NamedSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	child := l.Named("core")
	l.SetOutput(&buf) // set after deriving
	l.SetTimestamps(false)

	child.Info("session started")
	if !strings.Contains(buf.String(), "[INF] core: session started") {
		t.Errorf("child did not write to shared output: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("goes nowhere")
	if l.Level() != LogQuiet {
		t.Errorf("Level = %v, want quiet", l.Level())
	}
}
