package codec

import (
	"io"
	"log/slog"
	"strings"

	"hidim/internal/canvas"
	"hidim/internal/digest"
	"hidim/internal/overlay"
	"hidim/internal/raster"
)

const (
	// DefaultPassphrase is the source of the key prefix on every stream.
	DefaultPassphrase = "hidim is torrents!"
	// DefaultRows is the number of data pixels per column.
	DefaultRows = 30
	// DefaultMargin is the width of the overlay margin in pixels.
	DefaultMargin = 5
)

// Format is the lossless image container the encoder writes.
type Format = raster.Format

const (
	PNG  = raster.PNG
	BMP  = raster.BMP
	TIFF = raster.TIFF
)

// ParseFormat parses "png", "bmp" or "tiff".
func ParseFormat(name string) (Format, error) {
	return raster.ParseFormat(name)
}

// Canvas is a decoded image, used for overlay artwork.
type Canvas = canvas.Canvas

// LoadOverlay reads overlay artwork from an image file.
func LoadOverlay(path string) (*Canvas, error) {
	return overlay.Load(path)
}

// Hasher computes the raw 20-byte digest of a payload.
type Hasher = digest.Hasher

// Option changes one field of a Config.
type Option = func(*Config)

// Config holds the fixed parameters of the format. Encoders and decoders
// that exchange images must agree on Passphrase and Margin; Rows is
// recovered from the image height on decode.
//
// The setters validate their argument and panic on values that can never
// produce a usable image.
type Config struct {
	passphrase string
	rows       int
	margin     int
	overlay    *canvas.Canvas
	format     Format
	hasher     Hasher
	logger     *slog.Logger
}

// DefaultConfig returns the configuration every hidim image is made with
// unless an option says otherwise.
func DefaultConfig() *Config {
	return &Config{
		passphrase: DefaultPassphrase,
		rows:       DefaultRows,
		margin:     DefaultMargin,
		overlay:    overlay.Default(),
		format:     PNG,
		hasher:     digest.SHA1,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newConfig(options ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

func (c *Config) Passphrase(passphrase string) {
	if strings.TrimSpace(passphrase) == "" {
		panic("passphrase can't be blank")
	}
	c.passphrase = passphrase
}

func (c *Config) Rows(rows int) {
	if rows < 1 {
		panic("rows can't be < 1")
	}
	c.rows = rows
}

func (c *Config) Margin(margin int) {
	if margin < 0 {
		panic("margin can't be < 0")
	}
	c.margin = margin
}

// Overlay replaces the margin artwork. nil disables the overlay.
func (c *Config) Overlay(asset *canvas.Canvas) {
	c.overlay = asset
}

func (c *Config) Format(format Format) {
	if format != PNG && format != BMP && format != TIFF {
		panic("format is unknown")
	}
	c.format = format
}

// Hasher replaces the digest function. Failures fall back to the sentinel
// digest rather than failing the encode.
func (c *Config) Hasher(hasher Hasher) {
	if hasher == nil {
		panic("hasher can't be nil")
	}
	c.hasher = hasher
}

func (c *Config) Logger(logger *slog.Logger) {
	if logger == nil {
		panic("logger can't be nil")
	}
	c.logger = logger
}

// key returns the prefix written ahead of every header.
func (c *Config) key() []byte {
	return []byte(c.passphrase)
}

func WithPassphrase(passphrase string) Option {
	return func(c *Config) { c.Passphrase(passphrase) }
}

func WithRows(rows int) Option {
	return func(c *Config) { c.Rows(rows) }
}

func WithMargin(margin int) Option {
	return func(c *Config) { c.Margin(margin) }
}

func WithOverlay(asset *canvas.Canvas) Option {
	return func(c *Config) { c.Overlay(asset) }
}

func WithFormat(format Format) Option {
	return func(c *Config) { c.Format(format) }
}

func WithHasher(hasher Hasher) Option {
	return func(c *Config) { c.Hasher(hasher) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger(logger) }
}
