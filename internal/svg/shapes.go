package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// shapeTags lists the basic shape elements that are lowered to paths on load.
var shapeTags = map[string]bool{
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
}

// geometryAttrs are the shape attributes consumed by the conversion.
// Presentation attributes (fill, stroke, ...) stay on the element.
var geometryAttrs = []string{
	"x", "y", "width", "height", "rx", "ry",
	"cx", "cy", "r", "x1", "y1", "x2", "y2", "points",
}

// convertShape rewrites a basic shape element into an equivalent path
// element in place and returns the decoded segments.
func convertShape(el *etree.Element) ([]Segment, error) {
	var segs []Segment
	var err error
	switch el.Tag {
	case "rect":
		segs, err = rectSegments(el)
	case "circle":
		segs, err = ellipseSegments(el, "r", "r")
	case "ellipse":
		segs, err = ellipseSegments(el, "rx", "ry")
	case "line":
		segs, err = lineSegments(el)
	case "polyline":
		segs, err = polySegments(el, false)
	case "polygon":
		segs, err = polySegments(el, true)
	default:
		return nil, fmt.Errorf("not a shape element: <%s>", el.Tag)
	}
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", el.Tag, err)
	}

	for _, name := range geometryAttrs {
		el.RemoveAttr(name)
	}
	el.Tag = "path"
	return segs, nil
}

func rectSegments(el *etree.Element) ([]Segment, error) {
	x := floatAttr(el, "x", 0)
	y := floatAttr(el, "y", 0)
	w, okW := lookupFloatAttr(el, "width")
	h, okH := lookupFloatAttr(el, "height")
	if !okW || !okH || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("missing or non-positive width/height")
	}

	rx, okRx := lookupFloatAttr(el, "rx")
	ry, okRy := lookupFloatAttr(el, "ry")
	if okRx && !okRy {
		ry = rx
	} else if okRy && !okRx {
		rx = ry
	}
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		return []Segment{
			{Op: OpMove, End: Point{x, y}},
			{Op: OpLine, End: Point{x + w, y}},
			{Op: OpLine, End: Point{x + w, y + h}},
			{Op: OpLine, End: Point{x, y + h}},
			{Op: OpLine, End: Point{x, y}},
		}, nil
	}

	corner := func(end Point) Segment {
		return Segment{Op: OpArc, Radii: Point{rx, ry}, Sweep: true, End: end}
	}
	return []Segment{
		{Op: OpMove, End: Point{x + rx, y}},
		{Op: OpLine, End: Point{x + w - rx, y}},
		corner(Point{x + w, y + ry}),
		{Op: OpLine, End: Point{x + w, y + h - ry}},
		corner(Point{x + w - rx, y + h}),
		{Op: OpLine, End: Point{x + rx, y + h}},
		corner(Point{x, y + h - ry}),
		{Op: OpLine, End: Point{x, y + ry}},
		corner(Point{x + rx, y}),
	}, nil
}

// ellipseSegments handles both circle and ellipse elements; a circle passes
// its single radius attribute for both axes.
func ellipseSegments(el *etree.Element, rxName, ryName string) ([]Segment, error) {
	cx := floatAttr(el, "cx", 0)
	cy := floatAttr(el, "cy", 0)
	rx, ok := lookupFloatAttr(el, rxName)
	if !ok || rx <= 0 {
		return nil, fmt.Errorf("missing or non-positive %s", rxName)
	}
	ry := rx
	if ryName != rxName {
		v, ok := lookupFloatAttr(el, ryName)
		if !ok || v <= 0 {
			return nil, fmt.Errorf("missing or non-positive %s", ryName)
		}
		ry = v
	}

	half := func(end Point) Segment {
		return Segment{Op: OpArc, Radii: Point{rx, ry}, Sweep: true, End: end}
	}
	return []Segment{
		{Op: OpMove, End: Point{cx + rx, cy}},
		half(Point{cx - rx, cy}),
		half(Point{cx + rx, cy}),
	}, nil
}

func lineSegments(el *etree.Element) ([]Segment, error) {
	return []Segment{
		{Op: OpMove, End: Point{floatAttr(el, "x1", 0), floatAttr(el, "y1", 0)}},
		{Op: OpLine, End: Point{floatAttr(el, "x2", 0), floatAttr(el, "y2", 0)}},
	}, nil
}

func polySegments(el *etree.Element, closed bool) ([]Segment, error) {
	raw := el.SelectAttrValue("points", "")
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 4 || len(fields)%2 != 0 {
		return nil, fmt.Errorf("invalid points list %q", raw)
	}

	pts := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point coordinate %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point coordinate %q", fields[i+1])
		}
		pts = append(pts, Point{x, y})
	}

	segs := make([]Segment, 0, len(pts)+1)
	segs = append(segs, Segment{Op: OpMove, End: pts[0]})
	for _, p := range pts[1:] {
		segs = append(segs, Segment{Op: OpLine, End: p})
	}
	if closed && pts[len(pts)-1] != pts[0] {
		segs = append(segs, Segment{Op: OpLine, End: pts[0]})
	}
	return segs, nil
}

func floatAttr(el *etree.Element, name string, def float64) float64 {
	if v, ok := lookupFloatAttr(el, name); ok {
		return v
	}
	return def
}

// lookupFloatAttr reads a numeric attribute, tolerating a "px" unit suffix.
func lookupFloatAttr(el *etree.Element, name string) (float64, bool) {
	raw := strings.TrimSpace(el.SelectAttrValue(name, ""))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
