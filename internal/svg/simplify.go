package svg

import "math"

// simplifyEps is the tolerance, in user units, for degeneracy and
// collinearity decisions.
const simplifyEps = 1e-6

// SimplifyArcs replaces every elliptical arc segment with its cubic Bézier
// approximation. Endpoints are preserved exactly.
func (d *Document) SimplifyArcs() {
	for _, p := range d.paths {
		if !hasArcs(p.Segments) {
			continue
		}
		out := make([]Segment, 0, len(p.Segments))
		cur := Point{}
		for _, seg := range p.Segments {
			if seg.Op == OpArc {
				out = append(out, arcToCubics(cur, seg)...)
			} else {
				out = append(out, seg)
			}
			cur = seg.End
		}
		p.Segments = out
	}
}

func hasArcs(segs []Segment) bool {
	for _, s := range segs {
		if s.Op == OpArc {
			return true
		}
	}
	return false
}

// SimplifyHeuristic cleans up path geometry without changing its shape:
// zero-length segments are dropped, curves whose control points sit on the
// chord are demoted to lines, and runs of collinear lines are merged.
func (d *Document) SimplifyHeuristic() {
	for _, p := range d.paths {
		p.Segments = simplifySegments(p.Segments)
	}
}

func simplifySegments(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	cur := Point{}      // pen position before the segment under review
	lastFrom := Point{} // start point of the last emitted segment

	for _, seg := range segs {
		if seg.Op == OpMove {
			// A move followed by another move draws nothing.
			if n := len(out); n > 0 && out[n-1].Op == OpMove {
				out[n-1] = seg
			} else {
				lastFrom = cur
				out = append(out, seg)
			}
			cur = seg.End
			continue
		}

		if seg.length(cur) < simplifyEps {
			cur = seg.End
			continue
		}

		if line, ok := demoteToLine(cur, seg); ok {
			seg = line
		}

		if seg.Op == OpLine {
			if n := len(out); n > 0 && out[n-1].Op == OpLine && collinear(lastFrom, out[n-1].End, seg.End) {
				out[n-1].End = seg.End
				cur = seg.End
				continue
			}
		}

		lastFrom = cur
		out = append(out, seg)
		cur = seg.End
	}

	// A trailing move draws nothing either.
	if n := len(out); n > 0 && out[n-1].Op == OpMove {
		out = out[:n-1]
	}
	return out
}

// demoteToLine reports whether the curve is a straight line in disguise.
func demoteToLine(from Point, seg Segment) (Segment, bool) {
	switch seg.Op {
	case OpQuad:
		if distToSegment(seg.Ctrl1, from, seg.End) < simplifyEps {
			return Segment{Op: OpLine, End: seg.End}, true
		}
	case OpCubic:
		if distToSegment(seg.Ctrl1, from, seg.End) < simplifyEps &&
			distToSegment(seg.Ctrl2, from, seg.End) < simplifyEps {
			return Segment{Op: OpLine, End: seg.End}, true
		}
	}
	return seg, false
}

// collinear reports whether b lies on the straight run from a to c, which is
// what makes merging the lines a→b and b→c safe. Direction reversals fail
// the check because b then falls outside the segment ac.
func collinear(a, b, c Point) bool {
	return distToSegment(b, a, c) < simplifyEps
}

// distToSegment is the distance from p to the closed segment ab.
func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Mul(t)))
}

// Split subdivides segments longer than maxDist into equal-parameter pieces
// until none exceeds it. Arcs are lowered to cubics on the fly.
func (d *Document) Split(maxDist float64) {
	if maxDist <= 0 {
		return
	}
	for _, p := range d.paths {
		out := make([]Segment, 0, len(p.Segments))
		cur := Point{}
		for _, seg := range p.Segments {
			if seg.Op == OpArc {
				for _, c := range arcToCubics(cur, seg) {
					out = appendSplit(out, cur, c, maxDist)
					cur = c.End
				}
			} else {
				out = appendSplit(out, cur, seg, maxDist)
				cur = seg.End
			}
		}
		p.Segments = out
	}
}

func appendSplit(out []Segment, from Point, seg Segment, maxDist float64) []Segment {
	length := seg.length(from)
	if length <= maxDist {
		return append(out, seg)
	}
	n := int(math.Ceil(length / maxDist))
	return append(out, seg.subdivide(from, n)...)
}
