package canvas_test

import (
	"image"
	"testing"

	"hidim/internal/canvas"
	"hidim/internal/fault"
	"hidim/internal/testing/require"
)

func TestNewGeometry(t *testing.T) {
	g := canvas.NewGeometry(91, 30, 5)
	require.Equal(t, g.Columns, 4)
	require.Equal(t, g.Width, 11)
	require.Equal(t, g.Height, 32)

	g = canvas.NewGeometry(90, 30, 5)
	require.Equal(t, g.Columns, 3)
	require.Equal(t, g.Width, 10)

	g = canvas.NewGeometry(0, 30, 5)
	require.Equal(t, g.Columns, 0)
	require.Equal(t, g.Width, 7)

	require.PanicWithError(t, "rows can't be < 1", func() {
		canvas.NewGeometry(1, 0, 5)
	})
	require.PanicWithError(t, "margin can't be < 0", func() {
		canvas.NewGeometry(1, 30, -1)
	})
}

func TestDataPoint(t *testing.T) {
	g := canvas.NewGeometry(91, 30, 5)
	require.Equal(t, g.DataPoint(0), image.Pt(6, 1))
	require.Equal(t, g.DataPoint(29), image.Pt(6, 30))
	require.Equal(t, g.DataPoint(30), image.Pt(7, 1))
	require.Equal(t, g.DataPoint(90), image.Pt(9, 1))

	require.Equal(t, g.MarginRegion(), image.Rect(1, 1, 6, 31))
	require.True(t, !g.DataPoint(0).In(g.MarginRegion()))
}

func TestGeometryOf(t *testing.T) {
	g, err := canvas.GeometryOf(canvas.New(11, 32, canvas.Black), 5)
	require.Nil(t, err)
	require.Equal(t, g.Rows, 30)
	require.Equal(t, g.Columns, 4)
	require.Equal(t, g.Triples, 120)

	_, err = canvas.GeometryOf(canvas.New(0, 0, canvas.Black), 5)
	require.ErrorKind(t, err, fault.InvalidImage)

	_, err = canvas.GeometryOf(canvas.New(6, 32, canvas.Black), 5)
	require.ErrorKind(t, err, fault.InvalidImage)

	_, err = canvas.GeometryOf(canvas.New(11, 2, canvas.Black), 5)
	require.ErrorKind(t, err, fault.InvalidImage)
}
