package svg

import (
	"fmt"

	"github.com/beevik/etree"
)

// SegmentOp identifies the drawing command a Segment encodes.
type SegmentOp uint8

const (
	OpMove SegmentOp = iota
	OpLine
	OpQuad
	OpCubic
	OpArc
)

func (op SegmentOp) String() string {
	switch op {
	case OpMove:
		return "M"
	case OpLine:
		return "L"
	case OpQuad:
		return "Q"
	case OpCubic:
		return "C"
	case OpArc:
		return "A"
	}
	return fmt.Sprintf("SegmentOp(%d)", uint8(op))
}

// Segment is one absolute path command. Which fields are meaningful depends
// on Op: Move and Line use only End, Quad uses Ctrl1, Cubic uses Ctrl1 and
// Ctrl2, and Arc uses Radii, Rotation, LargeArc and Sweep. Closed subpaths
// are lowered to an explicit line back to the subpath start during decoding,
// so no close command exists in the model.
type Segment struct {
	Op           SegmentOp
	Ctrl1, Ctrl2 Point
	End          Point

	// Arc parameters.
	Radii    Point
	Rotation float64 // x-axis rotation, degrees
	LargeArc bool
	Sweep    bool
}

// Path is the decoded geometry of one path element. The backing XML element
// is retained so the re-encoded data lands on the element it came from.
type Path struct {
	elem     *etree.Element
	Segments []Segment
}

// transform applies m to every coordinate of the path. m must be composed of
// uniform scaling and translation only; arc radii are scaled by the uniform
// factor and rotations are left alone.
func (p *Path) transform(m Matrix) {
	s := m.uniformScale()
	for i := range p.Segments {
		seg := &p.Segments[i]
		seg.End = m.Apply(seg.End)
		switch seg.Op {
		case OpQuad:
			seg.Ctrl1 = m.Apply(seg.Ctrl1)
		case OpCubic:
			seg.Ctrl1 = m.Apply(seg.Ctrl1)
			seg.Ctrl2 = m.Apply(seg.Ctrl2)
		case OpArc:
			seg.Radii = seg.Radii.Mul(s)
		}
	}
}

// addBounds accumulates the geometry of the path into e. Curved segments are
// bounded by sampling; arcs contribute through their cubic approximation.
func (p *Path) addBounds(e *extent) {
	cur := Point{}
	for _, seg := range p.Segments {
		switch seg.Op {
		case OpMove, OpLine:
			e.add(seg.End)
		case OpQuad, OpCubic:
			for i := 0; i <= flattenSteps; i++ {
				e.add(seg.pointAt(cur, float64(i)/flattenSteps))
			}
		case OpArc:
			for _, c := range arcToCubics(cur, seg) {
				for i := 0; i <= flattenSteps; i++ {
					e.add(c.pointAt(cur, float64(i)/flattenSteps))
				}
				cur = c.End
			}
		}
		cur = seg.End
	}
}

// flattenSteps is the sampling resolution used for curve measurement and
// bounding. Icons and glyphs are short; a fixed resolution is plenty.
const flattenSteps = 16

// pointAt evaluates the segment at parameter t in [0,1], starting from the
// current point. Arcs must be lowered to cubics before evaluation.
func (s Segment) pointAt(from Point, t float64) Point {
	switch s.Op {
	case OpMove, OpLine:
		return lerp(from, s.End, t)
	case OpQuad:
		a := lerp(from, s.Ctrl1, t)
		b := lerp(s.Ctrl1, s.End, t)
		return lerp(a, b, t)
	case OpCubic:
		a := lerp(from, s.Ctrl1, t)
		b := lerp(s.Ctrl1, s.Ctrl2, t)
		c := lerp(s.Ctrl2, s.End, t)
		ab := lerp(a, b, t)
		bc := lerp(b, c, t)
		return lerp(ab, bc, t)
	}
	panic("svg: pointAt on " + s.Op.String() + " segment")
}

// length measures the segment from the given start point. Lines are exact;
// curves are measured along a sampled polyline.
func (s Segment) length(from Point) float64 {
	switch s.Op {
	case OpMove:
		return 0
	case OpLine:
		return from.Dist(s.End)
	case OpQuad, OpCubic:
		var total float64
		prev := from
		for i := 1; i <= flattenSteps; i++ {
			p := s.pointAt(from, float64(i)/flattenSteps)
			total += prev.Dist(p)
			prev = p
		}
		return total
	case OpArc:
		var total float64
		cur := from
		for _, c := range arcToCubics(from, s) {
			total += c.length(cur)
			cur = c.End
		}
		return total
	}
	return 0
}

// subdivide splits the segment into n equal-parameter pieces using repeated
// de Casteljau subdivision. Move and arc segments are returned unsplit; arcs
// are expected to be lowered first.
func (s Segment) subdivide(from Point, n int) []Segment {
	if n <= 1 || s.Op == OpMove || s.Op == OpArc {
		return []Segment{s}
	}

	out := make([]Segment, 0, n)
	rest := s
	start := from
	for i := 0; i < n-1; i++ {
		t := 1 / float64(n-i)
		var head Segment
		head, rest = rest.splitAt(start, t)
		out = append(out, head)
		start = head.End
	}
	return append(out, rest)
}

// splitAt cuts the segment at parameter t, returning the two halves.
func (s Segment) splitAt(from Point, t float64) (Segment, Segment) {
	switch s.Op {
	case OpLine:
		mid := lerp(from, s.End, t)
		return Segment{Op: OpLine, End: mid}, s
	case OpQuad:
		a := lerp(from, s.Ctrl1, t)
		b := lerp(s.Ctrl1, s.End, t)
		mid := lerp(a, b, t)
		head := Segment{Op: OpQuad, Ctrl1: a, End: mid}
		tail := Segment{Op: OpQuad, Ctrl1: b, End: s.End}
		return head, tail
	case OpCubic:
		a := lerp(from, s.Ctrl1, t)
		b := lerp(s.Ctrl1, s.Ctrl2, t)
		c := lerp(s.Ctrl2, s.End, t)
		ab := lerp(a, b, t)
		bc := lerp(b, c, t)
		mid := lerp(ab, bc, t)
		head := Segment{Op: OpCubic, Ctrl1: a, Ctrl2: ab, End: mid}
		tail := Segment{Op: OpCubic, Ctrl1: bc, Ctrl2: c, End: s.End}
		return head, tail
	}
	panic("svg: splitAt on " + s.Op.String() + " segment")
}
