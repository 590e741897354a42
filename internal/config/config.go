// Package config loads operator configuration for the hidim command.
//
// Configuration comes from a single YAML file named by the --config flag
// or, failing that, the HIDIM_CONFIG environment variable. There is no
// automatic discovery: with neither set, the built-in defaults apply,
// which are the fixed parameters every hidim image is made with.
//
// Example:
//
//	format: png
//	overlay: ${HOME}/artwork/mark.png
//	margin: 5
//	rows: 30
//
// Relative overlay paths are resolved against the directory holding the
// config file. The built-in overlay is 5x30, so a smaller margin or row
// count needs its own overlay or overlay: none.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"hidim/codec"
	"hidim/internal/canvas"
	"hidim/internal/overlay"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "HIDIM_CONFIG"

// Config mirrors the YAML file.
type Config struct {
	// Passphrase is the key prefix written ahead of every header.
	// Changing it makes images unreadable by default decoders.
	Passphrase string `yaml:"passphrase"`

	// Rows is the number of data pixels per column.
	Rows int `yaml:"rows"`

	// Margin is the width in pixels reserved for the overlay.
	Margin int `yaml:"margin"`

	// Overlay is an image file replacing the built-in margin artwork.
	// Empty keeps the built-in artwork; "none" disables it.
	Overlay string `yaml:"overlay"`

	// Format is the output container: png, bmp or tiff.
	Format string `yaml:"format"`

	// path is the file the config was loaded from, if any.
	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Passphrase: codec.DefaultPassphrase,
		Rows:       codec.DefaultRows,
		Margin:     codec.DefaultMargin,
		Format:     "png",
	}
}

// Load reads the file at path, or at $HIDIM_CONFIG when path is empty.
// With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse reads YAML from r over the defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty or comment-only document decodes as io.EOF.
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Overlay = expandVars(cfg.Overlay)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Passphrase) == "" {
		errs = append(errs, errors.New("passphrase is required"))
	}
	if c.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows must be >= 1, got %d", c.Rows))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must be >= 0, got %d", c.Margin))
	}
	if c.Rows >= 1 && c.Margin >= 0 && c.Overlay == "" {
		builtin := overlay.Default()
		if !overlay.Fits(builtin, canvas.NewGeometry(0, c.Rows, c.Margin)) {
			errs = append(errs, fmt.Errorf(
				"built-in overlay is %dx%d and does not fit a %dx%d margin; set overlay to a smaller image or none",
				builtin.Width(), builtin.Height(), c.Margin, c.Rows))
		}
	}
	if _, err := codec.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}

	return errors.Join(errs...)
}

// OverlayPath returns the overlay file to load, resolved against the
// config file's directory. It is empty when the built-in artwork applies
// or the overlay is disabled.
func (c *Config) OverlayPath() string {
	if c.Overlay == "" || c.OverlayDisabled() {
		return ""
	}
	if filepath.IsAbs(c.Overlay) || c.path == "" {
		return c.Overlay
	}
	return filepath.Join(filepath.Dir(c.path), c.Overlay)
}

// OverlayDisabled reports whether the config turns the overlay off.
func (c *Config) OverlayDisabled() bool {
	return strings.EqualFold(c.Overlay, "none")
}

// Options converts the configuration into codec options, loading the
// overlay file if one is named.
func (c *Config) Options() ([]codec.Option, error) {
	format, err := codec.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	options := []codec.Option{
		codec.WithPassphrase(c.Passphrase),
		codec.WithRows(c.Rows),
		codec.WithMargin(c.Margin),
		codec.WithFormat(format),
	}

	switch {
	case c.OverlayDisabled():
		options = append(options, codec.WithOverlay(nil))
	case c.OverlayPath() != "":
		asset, err := codec.LoadOverlay(c.OverlayPath())
		if err != nil {
			return nil, err
		}
		options = append(options, codec.WithOverlay(asset))
	}
	return options, nil
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
