package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenVGLab/OmniSVG-train/internal/cli"
	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
	"github.com/OpenVGLab/OmniSVG-train/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_UsageErrorFromConfig(t *testing.T) {
	t.Setenv(picosvg.EnvBinary, "/fake/picosvg")

	err := run(&bytes.Buffer{}, []string{"--input", "a.svg", "--scale", "0"})
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "scale")
}

func TestRun_SingleFile(t *testing.T) {
	t.Setenv(picosvg.EnvBinary, testutil.FakePicosvg(t, testutil.PicosvgCat))

	dir := t.TempDir()
	input := filepath.Join(dir, "icon.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	err := run(&bytes.Buffer{}, []string{"--input", input})
	require.NoError(t, err)

	// Without --output the result lands next to the input.
	output := filepath.Join(dir, "icon_processed.svg")
	require.FileExists(t, output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0 0 200 200"`)
}

func TestRun_SingleFileFailure(t *testing.T) {
	t.Setenv(picosvg.EnvBinary, testutil.FakePicosvg(t, testutil.PicosvgFail))

	dir := t.TempDir()
	input := filepath.Join(dir, "icon.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	err := run(&bytes.Buffer{}, []string{"--input", input})
	require.Error(t, err)

	// A processing failure is a plain error (exit code 1), not a usage one.
	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.NoFileExists(t, filepath.Join(dir, "icon_processed.svg"))
}

func TestRun_BatchToleratesFailures(t *testing.T) {
	t.Setenv(picosvg.EnvBinary, testutil.FakePicosvg(t, testutil.PicosvgCat))

	inputDir := filepath.Join(t.TempDir(), "in")
	outputDir := filepath.Join(t.TempDir(), "out")
	testutil.WriteFile(t, filepath.Join(inputDir, "a.svg"), testutil.SampleSVG)
	testutil.WriteFile(t, filepath.Join(inputDir, "b.svg"), testutil.SampleSVG)
	testutil.WriteFile(t, filepath.Join(inputDir, "broken.svg"), "garbage")

	out := &bytes.Buffer{}
	err := run(out, []string{"--input_dir", inputDir, "--output_dir", outputDir})

	// Batch mode succeeds even when individual files fail.
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outputDir, "a.svg"))
	assert.FileExists(t, filepath.Join(outputDir, "b.svg"))
	assert.NoFileExists(t, filepath.Join(outputDir, "broken.svg"))

	log := out.String()
	assert.Contains(t, log, "succeeded=2")
	assert.Contains(t, log, "failed=1")
}
