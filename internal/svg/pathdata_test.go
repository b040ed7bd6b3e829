package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathData_AbsoluteCommands(t *testing.T) {
	t.Parallel()

	segs, err := parsePathData("M10 20 L30 40 C1 2 3 4 5 6 Q7 8 9 10")
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, Segment{Op: OpMove, End: Point{10, 20}}, segs[0])
	assert.Equal(t, Segment{Op: OpLine, End: Point{30, 40}}, segs[1])
	assert.Equal(t, Segment{Op: OpCubic, Ctrl1: Point{1, 2}, Ctrl2: Point{3, 4}, End: Point{5, 6}}, segs[2])
	assert.Equal(t, Segment{Op: OpQuad, Ctrl1: Point{7, 8}, End: Point{9, 10}}, segs[3])
}

func TestParsePathData_RelativeAndAxisCommands(t *testing.T) {
	t.Parallel()

	segs, err := parsePathData("m10 10 l5 0 v5 h-5")
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, Point{10, 10}, segs[0].End)
	assert.Equal(t, Point{15, 10}, segs[1].End)
	assert.Equal(t, Point{15, 15}, segs[2].End)
	assert.Equal(t, Point{10, 15}, segs[3].End)
	for _, s := range segs[1:] {
		assert.Equal(t, OpLine, s.Op)
	}
}

func TestParsePathData_CloseLowersToLine(t *testing.T) {
	t.Parallel()

	segs, err := parsePathData("M1 1 L5 1 Z")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Op: OpLine, End: Point{1, 1}}, segs[2])
}

func TestParsePathData_ImplicitLineto(t *testing.T) {
	t.Parallel()

	// Coordinate pairs after the first M pair are implicit linetos.
	segs, err := parsePathData("M0 0 10 0 10 10")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, OpMove, segs[0].Op)
	assert.Equal(t, Segment{Op: OpLine, End: Point{10, 0}}, segs[1])
	assert.Equal(t, Segment{Op: OpLine, End: Point{10, 10}}, segs[2])
}

func TestParsePathData_SmoothReflection(t *testing.T) {
	t.Parallel()

	t.Run("cubic S reflects previous control point", func(t *testing.T) {
		segs, err := parsePathData("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
		require.NoError(t, err)
		require.Len(t, segs, 3)
		assert.Equal(t, Segment{Op: OpCubic, Ctrl1: Point{10, -10}, Ctrl2: Point{20, -10}, End: Point{20, 0}}, segs[2])
	})

	t.Run("quadratic T reflects previous control point", func(t *testing.T) {
		segs, err := parsePathData("M0 0 Q5 5 10 0 T20 0")
		require.NoError(t, err)
		require.Len(t, segs, 3)
		assert.Equal(t, Segment{Op: OpQuad, Ctrl1: Point{15, -5}, End: Point{20, 0}}, segs[2])
	})
}

func TestParsePathData_CompactNumbers(t *testing.T) {
	t.Parallel()

	segs, err := parsePathData("M.5-.5L1.5.5")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, Point{0.5, -0.5}, segs[0].End)
	assert.Equal(t, Point{1.5, 0.5}, segs[1].End)
}

func TestParsePathData_ArcWithGluedFlags(t *testing.T) {
	t.Parallel()

	segs, err := parsePathData("M1 1a5 5 0 014 4")
	require.NoError(t, err)
	require.Len(t, segs, 2)

	arc := segs[1]
	assert.Equal(t, OpArc, arc.Op)
	assert.Equal(t, Point{5, 5}, arc.Radii)
	assert.False(t, arc.LargeArc)
	assert.True(t, arc.Sweep)
	assert.Equal(t, Point{5, 5}, arc.End)
}

func TestParsePathData_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"M10 X", "X10 10", "M", "A5 5 0 2 1 4 4"} {
		_, err := parsePathData(data)
		assert.Error(t, err, "data %q should not parse", data)
	}
}

func TestEncodePathData(t *testing.T) {
	t.Parallel()

	segs := []Segment{
		{Op: OpMove, End: Point{10, 20}},
		{Op: OpLine, End: Point{30.5, 40}},
		{Op: OpQuad, Ctrl1: Point{7, 8}, End: Point{9, 10}},
	}
	assert.Equal(t, "M10,20 L30.5,40 Q7,8 9,10", encodePathData(segs))
}

func TestEncodePathData_RoundTrip(t *testing.T) {
	t.Parallel()

	const data = "M2,2 L22,2 C22,10 18,22 2,22 L2,2"
	segs, err := parsePathData(data)
	require.NoError(t, err)
	assert.Equal(t, data, encodePathData(segs))
}

func TestFmtCoord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10", fmtCoord(10))
	assert.Equal(t, "1.25", fmtCoord(1.25))
	assert.Equal(t, "0.3333", fmtCoord(1.0/3))
	assert.Equal(t, "0", fmtCoord(-0.000001))
}
