// Package codec hides a small file inside the pixels of a lossless image
// and recovers it again.
//
// An encoded image is a black canvas one pixel taller than [DefaultRows]
// on each side. Its left [DefaultMargin] columns carry a decorative
// overlay; every column after that holds consecutive bytes of the stream
//
//	key prefix ++ header ++ payload
//
// three bytes per pixel, top to bottom. The header records the row count,
// the display name, the SHA-1 of the payload and the payload length, so
// the decoder knows exactly where the payload ends.
//
//	data, err := codec.Encode(torrent, "ubuntu.torrent")
//	...
//	result, err := codec.Decode(data)
//	// result.Name == "ubuntu.torrent", result.Payload == torrent
//
// Encoders and decoders are stateless and safe for concurrent use.
package codec

import (
	"image/color"

	"hidim/internal/canvas"
	"hidim/internal/digest"
	"hidim/internal/fault"
	"hidim/internal/header"
	"hidim/internal/overlay"
	"hidim/internal/raster"
	"hidim/internal/stream"
)

// Sentinel is the digest embedded when the payload could not be hashed.
const Sentinel = digest.Sentinel

// Encoder turns payloads into images.
type Encoder struct {
	cfg *Config
}

// NewEncoder returns an encoder using the default configuration changed
// by options.
func NewEncoder(options ...Option) *Encoder {
	return &Encoder{cfg: newConfig(options...)}
}

// Encode embeds payload and name in an image and returns the serialized
// image. The output depends only on the inputs and the configuration.
func (e *Encoder) Encode(payload []byte, name string) ([]byte, error) {
	c, err := e.EncodeCanvas(payload, name)
	if err != nil {
		return nil, err
	}
	return raster.Encode(c, e.cfg.format)
}

// EncodeCanvas is Encode without the final serialization step.
func (e *Encoder) EncodeCanvas(payload []byte, name string) (*canvas.Canvas, error) {
	cfg := e.cfg

	sum := digest.ComputeWith(payload, cfg.hasher)
	if sum.Fallback() {
		cfg.logger.Warn("payload digest unavailable, embedding sentinel",
			"name", name,
			"error", sum.Err,
		)
	}

	h := header.Header{
		Rows:          cfg.rows,
		Name:          name,
		Digest:        sum.Hex,
		ContentLength: len(payload),
	}
	triples := stream.Triples(stream.Pack(cfg.key(), h, payload))

	geometry := canvas.NewGeometry(len(triples), cfg.rows, cfg.margin)
	c := canvas.New(geometry.Width, geometry.Height, canvas.Black)
	for i, t := range triples {
		point := geometry.DataPoint(i)
		c.Set(point.X, point.Y, color.NRGBA{R: t[0], G: t[1], B: t[2], A: 0xff})
	}

	if err := overlay.Apply(c, cfg.overlay, geometry); err != nil {
		return nil, err
	}

	cfg.logger.Debug("encoded payload",
		"name", name,
		"bytes", len(payload),
		"triples", len(triples),
		"columns", geometry.Columns,
		"width", geometry.Width,
		"height", geometry.Height,
	)
	return c, nil
}

// Result is a decoded image.
type Result struct {
	// Name is the display name given to Encode.
	Name string
	// Digest is the hex SHA-1 of Payload, or Sentinel if the encoder
	// could not hash it.
	Digest string
	// Payload is the embedded file, exactly as given to Encode.
	Payload []byte
	// Rows is the row count recorded in the header.
	Rows int
	// Format is the container the image was read from.
	Format Format
}

// Decoder recovers payloads from images.
type Decoder struct {
	cfg *Config
}

// NewDecoder returns a decoder using the default configuration changed by
// options. Only the passphrase, margin, hasher and logger affect decoding.
func NewDecoder(options ...Option) *Decoder {
	return &Decoder{cfg: newConfig(options...)}
}

// Decode parses an image produced by Encode. Any error is terminal: no
// partial payload is returned.
//
// The embedded digest is checked against the payload unless it is the
// sentinel, or the configured hasher fails, in which case it is returned
// unchecked.
func (d *Decoder) Decode(data []byte) (Result, error) {
	c, format, err := raster.Decode(data)
	if err != nil {
		return Result{}, err
	}
	result, err := d.DecodeCanvas(c)
	if err != nil {
		return Result{}, err
	}
	result.Format = format
	return result, nil
}

// DecodeCanvas is Decode on an already parsed image.
func (d *Decoder) DecodeCanvas(c *canvas.Canvas) (Result, error) {
	cfg := d.cfg

	geometry, err := canvas.GeometryOf(c, cfg.margin)
	if err != nil {
		return Result{}, err
	}

	triples := make([]stream.Triple, geometry.Triples)
	for i := range triples {
		point := geometry.DataPoint(i)
		pixel := c.At(point.X, point.Y)
		triples[i] = stream.Triple{pixel.R, pixel.G, pixel.B}
	}

	h, payload, err := stream.Unpack(stream.Flatten(triples), cfg.key())
	if err != nil {
		return Result{}, err
	}
	if h.Rows != geometry.Rows {
		return Result{}, fault.Errorf(fault.MalformedHeader,
			"header declares %d rows but the image has %d", h.Rows, geometry.Rows)
	}
	if !digest.Valid(h.Digest) {
		return Result{}, fault.Errorf(fault.MalformedHeader, "digest %q is not %d hex characters", h.Digest, digest.HexSize)
	}

	if !digest.IsSentinel(h.Digest) {
		sum := digest.ComputeWith(payload, cfg.hasher)
		switch {
		case sum.Fallback():
			cfg.logger.Warn("cannot verify payload digest", "name", h.Name, "error", sum.Err)
		case sum.Hex != h.Digest:
			return Result{}, fault.Errorf(fault.DigestMismatch,
				"payload hashes to %s but the header records %s", sum.Hex, h.Digest)
		}
	}

	cfg.logger.Debug("decoded payload",
		"name", h.Name,
		"bytes", len(payload),
		"columns", geometry.Columns,
	)
	return Result{
		Name:    h.Name,
		Digest:  h.Digest,
		Payload: payload,
		Rows:    h.Rows,
	}, nil
}

// Encode encodes payload with the default configuration.
func Encode(payload []byte, name string) ([]byte, error) {
	return NewEncoder().Encode(payload, name)
}

// Decode decodes an image with the default configuration.
func Decode(data []byte) (Result, error) {
	return NewDecoder().Decode(data)
}
