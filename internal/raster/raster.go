// Package raster serializes canvases as lossless images and parses them
// back.
//
// Three formats are supported, all of which preserve every channel of an
// opaque pixel exactly: PNG (the default), BMP and uncompressed TIFF.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"hidim/internal/canvas"
	"hidim/internal/fault"
)

// Format is a lossless image container.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

var formatNames = map[Format]string{
	PNG:  "png",
	BMP:  "bmp",
	TIFF: "tiff",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the conventional file extension, with the dot.
func (f Format) Extension() string {
	switch f {
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	default:
		return ".png"
	}
}

// ParseFormat parses a format name as produced by String. "tif" is
// accepted as an alias for "tiff". Matching ignores case and a leading dot.
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "tif" {
		return TIFF, nil
	}
	for format, formatName := range formatNames {
		if formatName == name {
			return format, nil
		}
	}
	return 0, fmt.Errorf("unknown image format %q (want png, bmp or tiff)", name)
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// Encode renders c in format f.
func Encode(c *canvas.Canvas, f Format) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := EncodeTo(buf, c, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo renders c in format f to w.
func EncodeTo(w io.Writer, c *canvas.Canvas, f Format) error {
	img := c.Image()

	var err error
	switch f {
	case PNG:
		err = pngEncoder.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
	default:
		return fmt.Errorf("encoding image: unsupported format %v", f)
	}
	if err != nil {
		return fmt.Errorf("encoding %v image: %w", f, err)
	}
	return nil
}

// Decode parses an image in any supported format. It fails with
// InvalidImage when data is not a well-formed image of a known format or
// has zero dimensions.
func Decode(data []byte) (*canvas.Canvas, Format, error) {
	return DecodeFrom(bytes.NewReader(data))
}

// DecodeFrom is Decode reading from r.
func DecodeFrom(r io.Reader) (*canvas.Canvas, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, 0, fault.Wrap(fault.InvalidImage, "unrecognized image format", err)
		}
		return nil, 0, fault.Wrap(fault.InvalidImage, "decoding image", err)
	}

	format, err := ParseFormat(name)
	if err != nil {
		return nil, 0, fault.Wrap(fault.InvalidImage, "decoding image", err)
	}

	if img.Bounds().Empty() {
		return nil, 0, fault.New(fault.InvalidImage, "image has zero dimensions")
	}
	return canvas.FromImage(img), format, nil
}
