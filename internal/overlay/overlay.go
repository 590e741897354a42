// Package overlay loads the decorative mark drawn into the reserved margin
// of every encoded image and composites it onto a canvas.
package overlay

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"hidim/internal/canvas"
	"hidim/internal/fault"
	"hidim/internal/raster"
)

//go:embed hidim.png
var defaultAsset []byte

var defaultCanvas = sync.OnceValue(func() *canvas.Canvas {
	c, err := Decode(bytes.NewReader(defaultAsset))
	if err != nil {
		panic("overlay: embedded asset is invalid: " + err.Error())
	}
	return c
})

// Offset is where the overlay's top-left corner lands on the canvas,
// just inside the border.
const Offset = 1

// Default returns a copy of the built-in 5x30 overlay.
func Default() *canvas.Canvas {
	return defaultCanvas().Clone()
}

// Load reads an overlay asset from path.
func Load(path string) (*canvas.Canvas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening overlay %s: %w", path, err)
	}
	defer file.Close()

	c, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("loading overlay %s: %w", path, err)
	}
	return c, nil
}

// Decode parses an overlay asset in any format the raster package reads.
func Decode(r io.Reader) (*canvas.Canvas, error) {
	c, _, err := raster.DecodeFrom(r)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Fits reports whether asset, placed at (Offset, Offset), lies inside the
// margin region of g.
func Fits(asset *canvas.Canvas, g canvas.Geometry) bool {
	placed := asset.Bounds().Add(image.Pt(Offset, Offset))
	return placed.Empty() || placed.In(g.MarginRegion())
}

// Apply composites asset onto c at (Offset, Offset). The asset must fit
// inside the margin region of g; a larger asset would overwrite data
// pixels, so it is rejected with OutOfBounds before anything is drawn.
// A nil asset draws nothing.
func Apply(c *canvas.Canvas, asset *canvas.Canvas, g canvas.Geometry) error {
	if asset == nil {
		return nil
	}
	if !Fits(asset, g) {
		return fault.Errorf(fault.OutOfBounds,
			"overlay is %dx%d but the margin is %dx%d", asset.Width(), asset.Height(), g.Margin, g.Rows)
	}
	return c.CompositeOver(asset, Offset, Offset)
}
