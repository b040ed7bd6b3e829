package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenVGLab/OmniSVG-train/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// SampleSVG is a minimal but complete document used as a fixture input.
const SampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M2 2 L22 2 L22 22 L2 22 Z" fill="#000"/></svg>`

// Canned fake-picosvg behaviors for FakePicosvg.
const (
	// PicosvgCat passes the input file through unchanged.
	PicosvgCat = `cat "$1"`
	// PicosvgFail exits non-zero with a diagnostic on stderr.
	PicosvgFail = `echo "boom" >&2; exit 3`
	// PicosvgEmpty exits cleanly without producing output.
	PicosvgEmpty = `exit 0`
	// PicosvgSlow never finishes within a test-scale timeout.
	PicosvgSlow = `sleep 10`
)

// FakePicosvg writes an executable shell script standing in for the real
// picosvg binary and returns its path.
func FakePicosvg(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picosvg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

// WriteFile creates the file at path, including parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// LoggerContext returns a context carrying a logger that discards output,
// for exercising code that pulls its logger from the context.
func LoggerContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}
