package svg

import "math"

// arcToCubics lowers an elliptical arc segment into cubic Bézier segments.
// The conversion follows the SVG endpoint-to-center parameterization
// (appendix F.6.5), with out-of-range radii scaled up per F.6.6. Each piece
// spans at most a quarter turn, which keeps the 4/3*tan(δ/4) control-point
// distance accurate well below rendering resolution.
func arcToCubics(from Point, s Segment) []Segment {
	rx, ry := s.Radii.X, s.Radii.Y
	if rx == 0 || ry == 0 || from == s.End {
		return []Segment{{Op: OpLine, End: s.End}}
	}

	phi := s.Rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Midpoint-relative start point in the rotated ellipse frame.
	dx := (from.X - s.End.X) / 2
	dy := (from.Y - s.End.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Radii too small to span the endpoints are scaled up uniformly.
	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	// Center in the ellipse frame.
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	co := math.Sqrt(math.Max(0, num/den))
	if s.LargeArc == s.Sweep {
		co = -co
	}
	cx := co * rx * y1 / ry
	cy := -co * ry * x1 / rx

	// Center and sweep angles in user space.
	center := Point{
		X: cosPhi*cx - sinPhi*cy + (from.X+s.End.X)/2,
		Y: sinPhi*cx + cosPhi*cy + (from.Y+s.End.Y)/2,
	}
	theta1 := math.Atan2((y1-cy)/ry, (x1-cx)/rx)
	theta2 := math.Atan2((-y1-cy)/ry, (-x1-cx)/rx)
	delta := theta2 - theta1
	if s.Sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !s.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	// ellipsePoint evaluates the arc and its tangent at angle t.
	ellipsePoint := func(t float64) (Point, Point) {
		cos, sin := math.Cos(t), math.Sin(t)
		p := Point{
			X: center.X + rx*cos*cosPhi - ry*sin*sinPhi,
			Y: center.Y + rx*cos*sinPhi + ry*sin*cosPhi,
		}
		tangent := Point{
			X: -rx*sin*cosPhi - ry*cos*sinPhi,
			Y: -rx*sin*sinPhi + ry*cos*cosPhi,
		}
		return p, tangent
	}

	out := make([]Segment, 0, n)
	p0, t0 := ellipsePoint(theta1)
	for i := 1; i <= n; i++ {
		p1, t1 := ellipsePoint(theta1 + step*float64(i))
		seg := Segment{
			Op:    OpCubic,
			Ctrl1: p0.Add(t0.Mul(alpha)),
			Ctrl2: p1.Sub(t1.Mul(alpha)),
			End:   p1,
		}
		if i == n {
			// Land exactly on the arc endpoint regardless of rounding.
			seg.End = s.End
		}
		out = append(out, seg)
		p0, t0 = p1, t1
	}
	return out
}
