package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePathData decodes an SVG path data string into absolute segments.
// Relative commands are resolved, H/V become lines, S/T get their reflected
// control points, and Z is lowered to a line back to the subpath start.
func parsePathData(data string) ([]Segment, error) {
	d := pathScanner{data: data}
	d.run()
	if d.err != nil {
		return nil, fmt.Errorf("invalid path data: %w", d.err)
	}
	return d.segs, nil
}

type pathScanner struct {
	data string
	pos  int
	err  error

	start Point // current subpath start
	cur   Point
	ctrlC Point // last cubic control point, for S reflection
	ctrlQ Point // last quadratic control point, for T reflection

	segs []Segment
}

func (d *pathScanner) run() {
	d.skipSep()
	for d.err == nil && d.pos < len(d.data) {
		d.step()
		d.skipSep()
	}
}

func (d *pathScanner) step() {
	cmd, rel := d.nextCmd()
	if d.err != nil {
		return
	}

	switch cmd {
	case 'M':
		first := true
		for d.coordAhead(first) {
			p := d.abs(d.point(), rel)
			if first {
				d.cur = p
				d.start = p
				d.push(Segment{Op: OpMove, End: p})
				first = false
				continue
			}
			// Extra coordinate pairs after a moveto are implicit linetos.
			d.push(Segment{Op: OpLine, End: p})
		}

	case 'L':
		first := true
		for d.coordAhead(first) {
			d.push(Segment{Op: OpLine, End: d.abs(d.point(), rel)})
			first = false
		}

	case 'H':
		first := true
		for d.coordAhead(first) {
			x := d.number()
			if rel {
				x += d.cur.X
			}
			d.push(Segment{Op: OpLine, End: Point{x, d.cur.Y}})
			first = false
		}

	case 'V':
		first := true
		for d.coordAhead(first) {
			y := d.number()
			if rel {
				y += d.cur.Y
			}
			d.push(Segment{Op: OpLine, End: Point{d.cur.X, y}})
			first = false
		}

	case 'C':
		first := true
		for d.coordAhead(first) {
			c1 := d.abs(d.point(), rel)
			c2 := d.abs(d.point(), rel)
			end := d.abs(d.point(), rel)
			d.push(Segment{Op: OpCubic, Ctrl1: c1, Ctrl2: c2, End: end})
			first = false
		}

	case 'S':
		first := true
		for d.coordAhead(first) {
			c1 := d.reflect(d.ctrlC)
			c2 := d.abs(d.point(), rel)
			end := d.abs(d.point(), rel)
			d.push(Segment{Op: OpCubic, Ctrl1: c1, Ctrl2: c2, End: end})
			first = false
		}

	case 'Q':
		first := true
		for d.coordAhead(first) {
			c := d.abs(d.point(), rel)
			end := d.abs(d.point(), rel)
			d.push(Segment{Op: OpQuad, Ctrl1: c, End: end})
			first = false
		}

	case 'T':
		first := true
		for d.coordAhead(first) {
			c := d.reflect(d.ctrlQ)
			end := d.abs(d.point(), rel)
			d.push(Segment{Op: OpQuad, Ctrl1: c, End: end})
			first = false
		}

	case 'A':
		first := true
		for d.coordAhead(first) {
			radii := d.point()
			rot := d.number()
			large := d.flag()
			sweep := d.flag()
			end := d.abs(d.point(), rel)
			d.push(Segment{
				Op:       OpArc,
				Radii:    Point{X: absf(radii.X), Y: absf(radii.Y)},
				Rotation: rot,
				LargeArc: large,
				Sweep:    sweep,
				End:      end,
			})
			first = false
		}

	case 'Z':
		if d.cur != d.start {
			d.push(Segment{Op: OpLine, End: d.start})
		}
		d.cur = d.start
	}
}

// push records a segment and the control-point state the smooth commands
// reflect against.
func (d *pathScanner) push(s Segment) {
	if d.err != nil {
		return
	}
	d.segs = append(d.segs, s)
	d.cur = s.End

	d.ctrlC = s.End
	d.ctrlQ = s.End
	switch s.Op {
	case OpCubic:
		d.ctrlC = s.Ctrl2
	case OpQuad:
		d.ctrlQ = s.Ctrl1
	}
}

func (d *pathScanner) abs(p Point, rel bool) Point {
	if rel {
		return d.cur.Add(p)
	}
	return p
}

func (d *pathScanner) reflect(ctrl Point) Point {
	return Point{2*d.cur.X - ctrl.X, 2*d.cur.Y - ctrl.Y}
}

// coordAhead reports whether another coordinate group follows for the
// current command. The first group is mandatory for every command but Z.
func (d *pathScanner) coordAhead(first bool) bool {
	if d.err != nil {
		return false
	}
	d.skipSep()
	if d.pos >= len(d.data) {
		if first {
			d.fail("unexpected end of data")
		}
		return false
	}
	if numStart(d.data[d.pos]) {
		return true
	}
	if first {
		d.fail("expected number at position %d, got %q", d.pos, d.data[d.pos])
	}
	return false
}

func (d *pathScanner) nextCmd() (cmd byte, relative bool) {
	if d.pos >= len(d.data) {
		d.fail("unexpected end of data")
		return 0, false
	}

	c := d.data[d.pos]
	if strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) < 0 {
		d.fail("unexpected command %q at position %d", c, d.pos)
		return 0, false
	}
	d.pos++

	relative = c >= 'a'
	if relative {
		c -= 'a' - 'A'
	}
	return c, relative
}

func (d *pathScanner) point() Point {
	x := d.number()
	y := d.number()
	return Point{x, y}
}

// number scans one SVG number: optional sign, digits with at most one
// decimal point, optional exponent. A second point or sign starts the next
// number, which is how compact forms like "-.5.5" and "1-2" decode.
func (d *pathScanner) number() float64 {
	if d.err != nil {
		return 0
	}
	d.skipSep()

	s := d.pos
	e := s
	if e < len(d.data) && (d.data[e] == '-' || d.data[e] == '+') {
		e++
	}
	dot := false
	for e < len(d.data) {
		c := d.data[e]
		if c >= '0' && c <= '9' {
			e++
			continue
		}
		if c == '.' && !dot {
			dot = true
			e++
			continue
		}
		break
	}
	// Exponent part.
	if e < len(d.data) && (d.data[e] == 'e' || d.data[e] == 'E') {
		x := e + 1
		if x < len(d.data) && (d.data[x] == '-' || d.data[x] == '+') {
			x++
		}
		digits := x
		for x < len(d.data) && d.data[x] >= '0' && d.data[x] <= '9' {
			x++
		}
		if x > digits {
			e = x
		}
	}

	if s == e {
		d.fail("expected number at position %d", s)
		return 0
	}

	v, err := strconv.ParseFloat(d.data[s:e], 64)
	if err != nil {
		d.fail("invalid number %q at position %d", d.data[s:e], s)
		return 0
	}

	d.pos = e
	return v
}

// flag scans an arc flag, which is a single 0 or 1 that may be glued to the
// following number.
func (d *pathScanner) flag() bool {
	if d.err != nil {
		return false
	}
	d.skipSep()
	if d.pos >= len(d.data) {
		d.fail("unexpected end of data")
		return false
	}
	switch d.data[d.pos] {
	case '0':
		d.pos++
		return false
	case '1':
		d.pos++
		return true
	}
	d.fail("expected arc flag at position %d, got %q", d.pos, d.data[d.pos])
	return false
}

func (d *pathScanner) skipSep() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r', ',':
			d.pos++
		default:
			return
		}
	}
}

func (d *pathScanner) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf(format, args...)
	}
}

func numStart(c byte) bool {
	return c == '.' || c == '-' || c == '+' || ('0' <= c && c <= '9')
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// encodePathData renders segments back into a path data string using
// absolute commands.
func encodePathData(segs []Segment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Op {
		case OpMove:
			b.WriteByte('M')
			writePoint(&b, s.End)
		case OpLine:
			b.WriteByte('L')
			writePoint(&b, s.End)
		case OpQuad:
			b.WriteByte('Q')
			writePoint(&b, s.Ctrl1)
			b.WriteByte(' ')
			writePoint(&b, s.End)
		case OpCubic:
			b.WriteByte('C')
			writePoint(&b, s.Ctrl1)
			b.WriteByte(' ')
			writePoint(&b, s.Ctrl2)
			b.WriteByte(' ')
			writePoint(&b, s.End)
		case OpArc:
			b.WriteByte('A')
			writePoint(&b, s.Radii)
			b.WriteByte(' ')
			b.WriteString(fmtCoord(s.Rotation))
			b.WriteByte(' ')
			b.WriteString(flagStr(s.LargeArc))
			b.WriteByte(' ')
			b.WriteString(flagStr(s.Sweep))
			b.WriteByte(' ')
			writePoint(&b, s.End)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(fmtCoord(p.X))
	b.WriteByte(',')
	b.WriteString(fmtCoord(p.Y))
}

func flagStr(f bool) string {
	if f {
		return "1"
	}
	return "0"
}

// fmtCoord formats a coordinate with at most four decimals, trimming
// trailing zeros so round values stay round.
func fmtCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
