// Package picosvg wraps the external picosvg executable, which lowers an SVG
// file to a syntactically simplified form (no groups, no transforms) on its
// standard output.
package picosvg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/OpenVGLab/OmniSVG-train/internal/ctxlog"
)

// EnvBinary overrides executable discovery when set.
const EnvBinary = "SVGPREP_PICOSVG"

// ErrEmptyOutput reports a run that exited cleanly but produced no markup.
var ErrEmptyOutput = errors.New("picosvg produced empty output")

// Find resolves the picosvg executable: an explicitly configured path wins,
// then the SVGPREP_PICOSVG environment variable, then a PATH lookup.
func Find(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if v := os.Getenv(EnvBinary); v != "" {
		return v, nil
	}
	path, err := exec.LookPath("picosvg")
	if err != nil {
		return "", fmt.Errorf("cannot find picosvg: %w", err)
	}
	return path, nil
}

// Runner invokes picosvg once per input file.
type Runner struct {
	bin     string
	timeout time.Duration
}

// New returns a Runner using the given executable. A timeout of zero leaves
// each run unbounded.
func New(bin string, timeout time.Duration) *Runner {
	return &Runner{bin: bin, timeout: timeout}
}

// Binary returns the executable the runner invokes.
func (r *Runner) Binary() string { return r.bin }

// Run executes `picosvg <inputPath>` and returns the captured stdout. A
// non-zero exit folds the collected stderr into the returned error; clean
// exits with no output fail with ErrEmptyOutput.
func (r *Runner) Run(ctx context.Context, inputPath string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.bin, inputPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running picosvg.", "binary", r.bin, "input", inputPath)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("picosvg on %s: %w", inputPath, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("picosvg on %s: %w: %s", inputPath, err, msg)
		}
		return nil, fmt.Errorf("picosvg on %s: %w", inputPath, err)
	}

	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return nil, fmt.Errorf("picosvg on %s: %w", inputPath, ErrEmptyOutput)
	}
	return stdout.Bytes(), nil
}
