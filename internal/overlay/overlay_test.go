package overlay_test

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"hidim/internal/canvas"
	"hidim/internal/fault"
	"hidim/internal/overlay"
	"hidim/internal/raster"
	"hidim/internal/testing/require"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// layout is the geometry of a 4-column image with the default layout.
var layout = canvas.NewGeometry(120, 30, 5)

func TestDefault(t *testing.T) {
	asset := overlay.Default()
	require.Equal(t, asset.Width(), 5)
	require.Equal(t, asset.Height(), 30)
	require.True(t, overlay.Fits(asset, layout))
	require.Equal(t, overlay.Fits(asset, canvas.NewGeometry(0, 10, 5)), false)
	require.Equal(t, overlay.Fits(asset, canvas.NewGeometry(0, 30, 4)), false)

	// Callers get their own copy.
	asset.Set(0, 0, white)
	require.NotEqual(t, overlay.Default().At(0, 0), white)
}

func TestApply(t *testing.T) {
	c := canvas.New(12, 32, canvas.Black)
	asset := canvas.New(5, 30, white)

	require.Nil(t, overlay.Apply(c, asset, layout))
	require.Equal(t, c.At(1, 1), white)
	require.Equal(t, c.At(5, 30), white)
	require.Equal(t, c.At(0, 0), canvas.Black)
	require.Equal(t, c.At(6, 1), canvas.Black)
	require.Equal(t, c.At(1, 31), canvas.Black)
}

func TestApplyNil(t *testing.T) {
	c := canvas.New(12, 32, canvas.Black)
	require.Nil(t, overlay.Apply(c, nil, layout))
}

func TestApplyOversized(t *testing.T) {
	// Both assets fit inside the canvas but not inside the margin.
	cases := map[string]*canvas.Canvas{
		"too wide": canvas.New(6, 30, white),
		"too tall": canvas.New(5, 31, white),
	}

	for name, asset := range cases {
		t.Run(name, func(t *testing.T) {
			c := canvas.New(12, 32, canvas.Black)
			err := overlay.Apply(c, asset, layout)
			require.ErrorKind(t, err, fault.OutOfBounds)
			require.Equal(t, c.At(6, 1), canvas.Black)
			require.Equal(t, c.At(1, 1), canvas.Black)
		})
	}
}

func TestLoad(t *testing.T) {
	asset := canvas.New(3, 4, white)
	asset.Set(2, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	data, err := raster.Encode(asset, raster.BMP)
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "mark.bmp")
	require.Nil(t, os.WriteFile(path, data, 0o644))

	loaded, err := overlay.Load(path)
	require.Nil(t, err)
	require.BytesEqual(t, loaded.Image().Pix, asset.Image().Pix)
}

func TestLoadErrors(t *testing.T) {
	_, err := overlay.Load(filepath.Join(t.TempDir(), "missing.png"))
	require.NotNil(t, err)

	_, err = overlay.Decode(bytes.NewReader([]byte("not an image")))
	require.ErrorKind(t, err, fault.InvalidImage)
}
