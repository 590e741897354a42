// Package canvas is a small pixel grid used for both the data image and
// the overlay asset.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"hidim/internal/fault"
)

// Black is opaque black, the initial color of every encoded canvas.
var Black = color.NRGBA{A: 0xff}

// Canvas is a rectangular grid of non-premultiplied RGBA pixels with its
// origin at (0, 0).
type Canvas struct {
	img *image.NRGBA
}

// New returns a width×height canvas with every pixel set to fill.
func New(width, height int, fill color.NRGBA) *Canvas {
	if width < 0 || height < 0 {
		panic("canvas dimensions can't be < 0")
	}
	c := &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
	c.Fill(fill)
	return c
}

// FromImage copies img into a new canvas, converting its color model.
// The copy is rebased so the canvas origin is img's top-left corner.
func FromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		// Same color model: copy rows so translucent pixels stay exact.
		rowBytes := bounds.Dx() * 4
		for y := 0; y < bounds.Dy(); y++ {
			copy(dst.Pix[dst.PixOffset(0, y):][:rowBytes], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:rowBytes])
		}
		return &Canvas{img: dst}
	}
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Canvas{img: dst}
}

func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Image exposes the backing image. Writes to it are visible on the canvas.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Set writes one pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	c.img.SetNRGBA(x, y, col)
}

// At reads one pixel. Coordinates outside the canvas read as the zero
// color.
func (c *Canvas) At(x, y int) color.NRGBA {
	return c.img.NRGBAAt(x, y)
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.NRGBA) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}

// CompositeOver overwrites the region of c starting at (offsetX, offsetY)
// with other's pixels, alpha included. Nothing is blended. The region must
// lie entirely inside c; otherwise c is left untouched and an OutOfBounds
// error is returned.
func (c *Canvas) CompositeOver(other *Canvas, offsetX, offsetY int) error {
	region := image.Rect(offsetX, offsetY, offsetX+other.Width(), offsetY+other.Height())
	if offsetX < 0 || offsetY < 0 || !region.In(c.img.Rect) {
		return fault.Errorf(fault.OutOfBounds, "region %v does not fit canvas %v", region, c.img.Rect)
	}
	if region.Empty() {
		return nil
	}

	rowBytes := other.Width() * 4
	for y := 0; y < other.Height(); y++ {
		src := other.img.Pix[other.img.PixOffset(0, y):][:rowBytes]
		dst := c.img.Pix[c.img.PixOffset(offsetX, offsetY+y):][:rowBytes]
		copy(dst, src)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img}
}
