package testutil

import (
	"context"
	"testing"

	"github.com/OpenVGLab/OmniSVG-train/internal/app"
	"github.com/OpenVGLab/OmniSVG-train/internal/cli"
)

// Result holds the outcomes of a full CLI run.
type Result struct {
	LogOutput  string
	Err        error
	ShouldExit bool
}

// RunCLI executes the same parse-and-run cycle the binary performs, with log
// output captured. It is the standard harness for integration tests.
func RunCLI(t *testing.T, args ...string) *Result {
	t.Helper()

	buf := &SafeBuffer{}
	opts, shouldExit, err := cli.Parse(args, buf)
	if err != nil || shouldExit {
		return &Result{LogOutput: buf.String(), Err: err, ShouldExit: shouldExit}
	}

	a, err := app.New(buf, opts)
	if err != nil {
		return &Result{LogOutput: buf.String(), Err: err}
	}

	err = a.Run(context.Background())
	return &Result{LogOutput: buf.String(), Err: err}
}
