package canvas

import (
	"image"

	"hidim/internal/fault"
)

// Geometry describes where the data region sits on an encoded canvas.
//
// The canvas has a one pixel border on every side. The left Margin columns
// inside the border are reserved for the overlay; the data region follows
// and holds one pixel per triple, Rows pixels per column, filled
// top-to-bottom and then left-to-right.
type Geometry struct {
	Rows    int
	Margin  int
	Triples int
	Columns int
	Width   int
	Height  int
}

// NewGeometry sizes a canvas for the given number of triples.
func NewGeometry(triples, rows, margin int) Geometry {
	if rows < 1 {
		panic("rows can't be < 1")
	}
	if margin < 0 {
		panic("margin can't be < 0")
	}
	columns := (triples + rows - 1) / rows
	return Geometry{
		Rows:    rows,
		Margin:  margin,
		Triples: triples,
		Columns: columns,
		Width:   columns + margin + 2,
		Height:  rows + 2,
	}
}

// GeometryOf recovers the data region of a decoded canvas. Every data
// pixel is counted as a triple; the trailing ones may be padding.
func GeometryOf(c *Canvas, margin int) (Geometry, error) {
	if c.Width() == 0 || c.Height() == 0 {
		return Geometry{}, fault.New(fault.InvalidImage, "image has zero dimensions")
	}
	rows := c.Height() - 2
	columns := c.Width() - margin - 2
	if rows < 1 || columns < 0 {
		return Geometry{}, fault.Errorf(fault.InvalidImage,
			"%dx%d image is too small for a data region with margin %d", c.Width(), c.Height(), margin)
	}
	return Geometry{
		Rows:    rows,
		Margin:  margin,
		Triples: rows * columns,
		Columns: columns,
		Width:   c.Width(),
		Height:  c.Height(),
	}, nil
}

// DataPoint returns the canvas coordinates of the i-th triple.
func (g Geometry) DataPoint(i int) image.Point {
	return image.Point{
		X: i/g.Rows + g.Margin + 1,
		Y: i%g.Rows + 1,
	}
}

// MarginRegion returns the rectangle reserved for the overlay.
func (g Geometry) MarginRegion() image.Rectangle {
	return image.Rect(1, 1, g.Margin+1, g.Rows+1)
}
