package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hidim/codec"
	"hidim/internal/canvas"
	"hidim/internal/config"
	"hidim/internal/raster"
	"hidim/internal/testing/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	cfg, err := config.Load("")
	require.Nil(t, err)
	require.Equal(t, cfg, config.Default())
	require.Equal(t, cfg.Rows, 30)
	require.Equal(t, cfg.Margin, 5)
	require.Equal(t, cfg.Passphrase, "hidim is torrents!")
	require.Nil(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hidim.yaml", "format: tiff\n")
	t.Setenv(config.EnvVar, path)

	cfg, err := config.Load("")
	require.Nil(t, err)
	require.Equal(t, cfg.Format, "tiff")
	require.Equal(t, cfg.Rows, 30)
}

func TestLoadFlagWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvVar, writeFile(t, dir, "env.yaml", "format: bmp\n"))

	cfg, err := config.Load(writeFile(t, dir, "flag.yaml", "format: tiff\n"))
	require.Nil(t, err)
	require.Equal(t, cfg.Format, "tiff")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("\n"))
	require.Nil(t, err)
	require.Equal(t, cfg, config.Default())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse(strings.NewReader("colums: 4\n"))
	require.NotNil(t, err)
}

func TestParseValidation(t *testing.T) {
	inputs := []string{
		"rows: 0\n",
		"margin: -2\n",
		"format: jpeg\n",
		"passphrase: \"  \"\n",
		"rows: 10\n",
		"margin: 3\n",
	}
	for _, input := range inputs {
		_, err := config.Parse(strings.NewReader(input))
		require.NotNil(t, err)
	}
}

func TestParseSmallLayout(t *testing.T) {
	_, err := config.Parse(strings.NewReader("rows: 10\n"))
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "does not fit a 5x10 margin"))

	cfg, err := config.Parse(strings.NewReader("rows: 10\nmargin: 3\noverlay: none\n"))
	require.Nil(t, err)
	options, err := cfg.Options()
	require.Nil(t, err)
	_, err = codec.NewEncoder(options...).Encode([]byte("ABC"), "t")
	require.Nil(t, err)
}

func TestOverlayPath(t *testing.T) {
	t.Setenv("HIDIM_ART", "/srv/art")

	cfg, err := config.Parse(strings.NewReader("overlay: ${HIDIM_ART}/mark.png\n"))
	require.Nil(t, err)
	require.Equal(t, cfg.OverlayPath(), "/srv/art/mark.png")

	cfg, err = config.Parse(strings.NewReader("overlay: ${HIDIM_MISSING:-/opt}/mark.png\n"))
	require.Nil(t, err)
	require.Equal(t, cfg.OverlayPath(), "/opt/mark.png")

	cfg, err = config.Parse(strings.NewReader("overlay: none\n"))
	require.Nil(t, err)
	require.True(t, cfg.OverlayDisabled())
	require.Equal(t, cfg.OverlayPath(), "")
}

func TestOptions(t *testing.T) {
	dir := t.TempDir()
	mark, err := raster.Encode(canvas.New(2, 3, canvas.Black), raster.PNG)
	require.Nil(t, err)
	require.Nil(t, os.WriteFile(filepath.Join(dir, "mark.png"), mark, 0o644))

	path := writeFile(t, dir, "hidim.yaml", "overlay: mark.png\nrows: 8\nmargin: 2\nformat: bmp\n")
	cfg, err := config.Load(path)
	require.Nil(t, err)
	require.Equal(t, cfg.OverlayPath(), filepath.Join(dir, "mark.png"))

	options, err := cfg.Options()
	require.Nil(t, err)

	data, err := codec.NewEncoder(options...).Encode([]byte("configured"), "c")
	require.Nil(t, err)
	_, format, err := raster.Decode(data)
	require.Nil(t, err)
	require.Equal(t, format, raster.BMP)

	result, err := codec.NewDecoder(options...).Decode(data)
	require.Nil(t, err)
	require.Equal(t, result.Rows, 8)
	require.Equal(t, string(result.Payload), "configured")
}

func TestOptionsMissingOverlay(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hidim.yaml", "overlay: missing.png\n")
	cfg, err := config.Load(path)
	require.Nil(t, err)

	_, err = cfg.Options()
	require.NotNil(t, err)
}

func TestParseCommentOnly(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("# nothing to override\n"))
	require.Nil(t, err)
	require.Equal(t, cfg, config.Default())
}
