package postprocess

// Box represents an axis-aligned bounding box in corner form:
// (X1, Y1) is the top-left corner and (X2, Y2) the bottom-right corner.
// Corner form is the canonical representation throughout this package;
// use FromXYWH to convert boxes given as (x, y, width, height).
//
// Well-formedness (X2 >= X1, Y2 >= Y1) is assumed but not enforced.
// A malformed box has zero or negative area and never wins an overlap test.
type Box struct {
	X1 float32
	Y1 float32
	X2 float32
	Y2 float32
}

// NewBox constructs a Box from two corner points, normalizing corner order.
func NewBox(x1, y1, x2, y2 float32) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// FromXYWH converts a box given as top-left corner plus extents into corner form.
func FromXYWH(x, y, w, h float32) Box {
	return Box{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns the box width.
func (b Box) Width() float32 { return b.X2 - b.X1 }

// Height returns the box height.
func (b Box) Height() float32 { return b.Y2 - b.Y1 }

// Area returns the box area. Malformed boxes yield zero or negative area.
func (b Box) Area() float32 { return (b.X2 - b.X1) * (b.Y2 - b.Y1) }
