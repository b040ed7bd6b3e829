package picosvg_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
	"github.com/OpenVGLab/OmniSVG-train/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_Precedence(t *testing.T) {
	t.Run("configured path wins over environment", func(t *testing.T) {
		t.Setenv(picosvg.EnvBinary, "/from/env")
		bin, err := picosvg.Find("/configured/picosvg")
		require.NoError(t, err)
		assert.Equal(t, "/configured/picosvg", bin)
	})

	t.Run("environment wins over PATH lookup", func(t *testing.T) {
		t.Setenv(picosvg.EnvBinary, "/from/env")
		bin, err := picosvg.Find("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", bin)
	})

	t.Run("missing everywhere is an error", func(t *testing.T) {
		t.Setenv(picosvg.EnvBinary, "")
		t.Setenv("PATH", t.TempDir())
		_, err := picosvg.Find("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot find picosvg")
	})
}

func TestRun_CapturesStdout(t *testing.T) {
	t.Parallel()

	bin := testutil.FakePicosvg(t, testutil.PicosvgCat)
	input := filepath.Join(t.TempDir(), "in.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	out, err := picosvg.New(bin, 0).Run(testutil.LoggerContext(), input)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleSVG, string(out))
}

func TestRun_NonZeroExit(t *testing.T) {
	t.Parallel()

	bin := testutil.FakePicosvg(t, testutil.PicosvgFail)

	_, err := picosvg.New(bin, 0).Run(testutil.LoggerContext(), "whatever.svg")
	require.Error(t, err)
	// The collected stderr is folded into the error.
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "whatever.svg")
}

func TestRun_EmptyOutput(t *testing.T) {
	t.Parallel()

	bin := testutil.FakePicosvg(t, testutil.PicosvgEmpty)

	_, err := picosvg.New(bin, 0).Run(testutil.LoggerContext(), "in.svg")
	require.Error(t, err)
	assert.ErrorIs(t, err, picosvg.ErrEmptyOutput)
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	bin := testutil.FakePicosvg(t, testutil.PicosvgSlow)

	start := time.Now()
	_, err := picosvg.New(bin, 100*time.Millisecond).Run(testutil.LoggerContext(), "in.svg")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	bin := testutil.FakePicosvg(t, testutil.PicosvgSlow)

	ctx, cancel := context.WithCancel(testutil.LoggerContext())
	cancel()

	_, err := picosvg.New(bin, 0).Run(ctx, "in.svg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
