package normalize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenVGLab/OmniSVG-train/internal/normalize"
	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
	"github.com/OpenVGLab/OmniSVG-train/internal/svg"
	"github.com/OpenVGLab/OmniSVG-train/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() normalize.Options {
	return normalize.Options{Scale: 1.0, Width: 200, Height: 200, MaxDist: 5}
}

func newProcessor(t *testing.T, script string, opts normalize.Options) *normalize.Processor {
	t.Helper()
	bin := testutil.FakePicosvg(t, script)
	return normalize.NewProcessor(picosvg.New(bin, 0), opts)
}

func TestProcess_WritesNormalizedOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out", "in.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	proc := newProcessor(t, testutil.PicosvgCat, defaultOptions())
	require.NoError(t, proc.Process(testutil.LoggerContext(), input, output))

	doc, err := svg.Load(output)
	require.NoError(t, err)
	assert.Equal(t, svg.NewBbox(200, 200), doc.ViewBox())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0 0 200 200"`)
}

func TestProcess_PreprocessFailureLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	proc := newProcessor(t, testutil.PicosvgFail, defaultOptions())
	err := proc.Process(testutil.LoggerContext(), input, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preprocess")
	assert.NoFileExists(t, output)
}

func TestProcess_EmptyPreprocessOutputLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	proc := newProcessor(t, testutil.PicosvgEmpty, defaultOptions())
	err := proc.Process(testutil.LoggerContext(), input, output)
	require.ErrorIs(t, err, picosvg.ErrEmptyOutput)
	assert.NoFileExists(t, output)
}

func TestProcess_TransformFailureRemovesPartialOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out.svg")
	testutil.WriteFile(t, input, `this is not an svg document`)

	// The passthrough fake happily emits the garbage; loading must fail and
	// the intermediate file must be cleaned up.
	proc := newProcessor(t, testutil.PicosvgCat, defaultOptions())
	err := proc.Process(testutil.LoggerContext(), input, output)
	require.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestProcess_SimplifyRemovesArcs(t *testing.T) {
	t.Parallel()

	const arcSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20"><path d="M10 0 A10 10 0 0 1 0 10 L0 0 Z"/></svg>`

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out.svg")
	testutil.WriteFile(t, input, arcSVG)

	opts := defaultOptions()
	opts.Simplify = true
	proc := newProcessor(t, testutil.PicosvgCat, opts)
	require.NoError(t, proc.Process(testutil.LoggerContext(), input, output))

	doc, err := svg.Load(output)
	require.NoError(t, err)
	for _, p := range doc.Paths() {
		for _, s := range p.Segments {
			assert.NotEqual(t, svg.OpArc, s.Op)
		}
	}
}

func TestProcess_ZoomAndNormalizeApplied(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.svg")
	output := filepath.Join(dir, "out.svg")
	testutil.WriteFile(t, input, testutil.SampleSVG)

	opts := defaultOptions()
	opts.Scale = 0.5
	opts.Width = 100
	opts.Height = 100
	proc := newProcessor(t, testutil.PicosvgCat, opts)
	require.NoError(t, proc.Process(testutil.LoggerContext(), input, output))

	doc, err := svg.Load(output)
	require.NoError(t, err)
	assert.Equal(t, svg.NewBbox(100, 100), doc.ViewBox())

	// The 24x24 fixture content shrinks by half about the center before
	// normalization, so it ends well inside the target box.
	bounds, ok := doc.Bounds()
	require.True(t, ok)
	assert.Greater(t, bounds.Min.X, 20.0)
	assert.Less(t, bounds.Max.X, 80.0)
}
