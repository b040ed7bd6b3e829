// Package svg provides a mutable document model for SVG files built around
// path geometry. A loaded Document keeps the underlying XML tree intact and
// exposes the operations the normalization pipeline needs: uniform zooming,
// fitting the view box to a target bounding box, lowering elliptical arcs to
// cubic Béziers, heuristic path simplification, and splitting of long
// segments. Only geometry is touched; presentation attributes and unrelated
// elements pass through untouched on save.
//
// The model is deliberately flat: groups and transform attributes are not
// interpreted, matching documents that already went through syntactic
// simplification.
package svg
