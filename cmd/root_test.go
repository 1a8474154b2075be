package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	ncerr "vindinium/internal/errors"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	out, _, err := run(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "vindinium "+version+"\n" {
		t.Errorf("output = %q", out)
	}
}

// TestExecute_Help verifies --help (and no args without a key) prints
// usage and returns without error.
func TestExecute_Help(t *testing.T) {
	t.Setenv("VINDINIUM_KEY", "")
	for _, args := range [][]string{{"--help"}, {}} {
		name := "no-args"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			_, errOut, err := run(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(errOut, "Usage:") || !strings.Contains(errOut, "--key") {
				t.Errorf("usage not printed:\n%s", errOut)
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run prints the request and exits
// cleanly.
func TestExecute_DryRun(t *testing.T) {
	out, _, err := run(t, "-k", "abc", "-t", "30", "-m", "m1", "--dry-run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "key=****&turns=30&map=m1&") {
		t.Errorf("payload missing:\n%s", out)
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	t.Setenv("VINDINIUM_KEY", "")
	tests := [][]string{
		{"--dry-run", "-t", "10"},
		{"-k", "abc", "--dry-run", "-e", "ftp://example.com"},
		{"-k", "abc", "--dry-run", "--max-content-length", "0"},
		{"-k", "abc", "--dry-run", "--ssh-key", "/tmp/id"},
	}
	for _, args := range tests {
		_, _, err := run(t, args...)
		if ncerr.StatusOf(err) != ncerr.StatusBadConfig {
			t.Errorf("%v: err = %v, want bad config", args, err)
		}
	}
}

// TestExecute_EnvKey verifies the key can come from the environment
// and that flags override it.
func TestExecute_EnvKey(t *testing.T) {
	t.Setenv("VINDINIUM_KEY", "fromenv")
	t.Setenv("VINDINIUM_TURNS", "12")

	out, _, err := run(t, "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "turns=12&") {
		t.Errorf("env turns not applied:\n%s", out)
	}

	out, _, err = run(t, "--dry-run", "-t", "5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "turns=5&") {
		t.Errorf("flag should override env:\n%s", out)
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	if _, _, err := run(t, "--nonexistent-flag"); err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if _, _, err := run(t, "-k", "abc", "extra"); err == nil {
		t.Fatal("expected error for positional argument")
	}
	if _, _, err := run(t, "-k", "abc", "-T", "user@host:99999", "--dry-run"); err == nil {
		t.Fatal("expected error for bad tunnel port")
	}
}

// TestExecute_Training runs a full session against a local server.
func TestExecute_Training(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("key") != "abc" {
			http.Error(w, "bad key", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game":{"id":"g1","turn":0,"maxTurns":40},"hero":{"id":2,"name":"h"},"viewUrl":"v","playUrl":"p"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	out, _, err := run(t, "-k", "abc", "-e", srv.URL, "--metrics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"game:     g1", "turns:    0/40", `"handles_total": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, _, err = run(t, "-k", "wrong", "-e", srv.URL)
	if !ncerr.Is(err, ncerr.ErrMalformedRequest) {
		t.Errorf("err = %v, want malformed request", err)
	}
}

// TestExecute_Timestamps verifies --timestamps prefixes log lines.
func TestExecute_Timestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"game":{"id":"g1"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	stamped := regexp.MustCompile(`(?m)^\d{2}:\d{2}:\d{2}\.\d{3} \[VRB\] `)

	_, errOut, err := run(t, "-k", "abc", "-e", srv.URL, "-v", "--timestamps")
	if err != nil {
		t.Fatal(err)
	}
	if !stamped.MatchString(errOut) {
		t.Errorf("no timestamped verbose line:\n%s", errOut)
	}

	_, errOut, err = run(t, "-k", "abc", "-e", srv.URL, "-v")
	if err != nil {
		t.Fatal(err)
	}
	if stamped.MatchString(errOut) || !strings.Contains(errOut, "[VRB] ") {
		t.Errorf("verbose lines should be unstamped by default:\n%s", errOut)
	}
}
