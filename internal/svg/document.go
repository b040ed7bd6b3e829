package svg

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Document is a loaded SVG file. The underlying XML tree is kept intact; the
// geometry of path and basic shape elements is decoded into segment lists
// that the transform operations mutate and Save re-encodes.
type Document struct {
	tree    *etree.Document
	root    *etree.Element
	viewBox Bbox
	paths   []*Path
}

// Load reads and parses the SVG file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes SVG markup. Basic shapes are converted to path elements in
// place; the view box falls back to the width/height attributes and then to
// the content bounding box when the attribute is absent.
func Parse(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := tree.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.New("no svg root element")
	}

	d := &Document{tree: tree, root: root}
	if err := d.collect(root); err != nil {
		return nil, err
	}
	vb, err := d.readViewBox()
	if err != nil {
		return nil, err
	}
	d.viewBox = vb
	return d, nil
}

// collect walks the element tree gathering path geometry in document order.
func (d *Document) collect(el *etree.Element) error {
	if el != d.root {
		switch {
		case el.Tag == "path":
			segs, err := parsePathData(el.SelectAttrValue("d", ""))
			if err != nil {
				return fmt.Errorf("<path>: %w", err)
			}
			d.paths = append(d.paths, &Path{elem: el, Segments: segs})
			return nil
		case shapeTags[el.Tag]:
			segs, err := convertShape(el)
			if err != nil {
				return err
			}
			d.paths = append(d.paths, &Path{elem: el, Segments: segs})
			return nil
		}
	}
	for _, child := range el.ChildElements() {
		if err := d.collect(child); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) readViewBox() (Bbox, error) {
	if raw := strings.TrimSpace(d.root.SelectAttrValue("viewBox", "")); raw != "" {
		fields := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
		})
		if len(fields) != 4 {
			return Bbox{}, fmt.Errorf("malformed viewBox %q", raw)
		}
		var v [4]float64
		for i, f := range fields {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Bbox{}, fmt.Errorf("malformed viewBox %q", raw)
			}
			v[i] = n
		}
		return Bbox{
			Min: Point{v[0], v[1]},
			Max: Point{v[0] + v[2], v[1] + v[3]},
		}, nil
	}

	w, okW := lookupFloatAttr(d.root, "width")
	h, okH := lookupFloatAttr(d.root, "height")
	if okW && okH && w > 0 && h > 0 {
		return NewBbox(w, h), nil
	}

	if b, ok := d.Bounds(); ok && b.valid() {
		return b, nil
	}
	return Bbox{}, errors.New("cannot determine view box: no viewBox, width/height or content")
}

// ViewBox returns the current view box of the document.
func (d *Document) ViewBox() Bbox { return d.viewBox }

// Paths returns the decoded path geometry in document order.
func (d *Document) Paths() []*Path { return d.paths }

// Bounds returns the bounding box of the document geometry.
func (d *Document) Bounds() (Bbox, bool) {
	var e extent
	for _, p := range d.paths {
		p.addBounds(&e)
	}
	return e.bbox()
}

// Zoom scales all geometry by factor about the view box center. The view box
// itself is unchanged.
func (d *Document) Zoom(factor float64) {
	if factor == 1 {
		return
	}
	c := d.viewBox.Center()
	m := Translation(c.X, c.Y).Mul(Scaling(factor, factor)).Mul(Translation(-c.X, -c.Y))
	d.transform(m)
}

// Normalize maps the current view box onto target with a uniform scale,
// centering the shorter axis, and updates the root viewBox, width and height
// attributes. A degenerate view box falls back to the content bounds.
func (d *Document) Normalize(target Bbox) error {
	if !target.valid() {
		return fmt.Errorf("invalid target box %gx%g", target.Width(), target.Height())
	}
	vb := d.viewBox
	if !vb.valid() {
		b, ok := d.Bounds()
		if !ok || !b.valid() {
			return errors.New("cannot normalize: degenerate view box and no content")
		}
		vb = b
	}

	s := math.Min(target.Width()/vb.Width(), target.Height()/vb.Height())
	tx := target.Min.X + (target.Width()-vb.Width()*s)/2 - vb.Min.X*s
	ty := target.Min.Y + (target.Height()-vb.Height()*s)/2 - vb.Min.Y*s
	d.transform(Translation(tx, ty).Mul(Scaling(s, s)))

	d.viewBox = target
	d.root.CreateAttr("viewBox", fmt.Sprintf("%s %s %s %s",
		fmtCoord(target.Min.X), fmtCoord(target.Min.Y),
		fmtCoord(target.Width()), fmtCoord(target.Height())))
	d.root.CreateAttr("width", fmtCoord(target.Width()))
	d.root.CreateAttr("height", fmtCoord(target.Height()))
	return nil
}

func (d *Document) transform(m Matrix) {
	for _, p := range d.paths {
		p.transform(m)
	}
}

// sync re-encodes every segment list into its element's d attribute.
func (d *Document) sync() {
	for _, p := range d.paths {
		p.elem.CreateAttr("d", encodePathData(p.Segments))
	}
}

// Save writes the document over path.
func (d *Document) Save(path string) error {
	d.sync()
	if err := d.tree.WriteToFile(path); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// WriteTo re-encodes the document onto w.
func (d *Document) WriteTo(w io.Writer) error {
	d.sync()
	_, err := d.tree.WriteTo(w)
	return err
}
