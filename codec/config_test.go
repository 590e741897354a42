package codec_test

import (
	"testing"

	"hidim/codec"
	"hidim/internal/testing/require"
)

func TestOptions(t *testing.T) {
	c := &codec.Config{}

	require.PanicWithError(t, "passphrase can't be blank", func() {
		c.Passphrase(" ")
	})

	require.PanicWithError(t, "rows can't be < 1", func() {
		c.Rows(0)
	})

	require.PanicWithError(t, "margin can't be < 0", func() {
		c.Margin(-1)
	})

	require.PanicWithError(t, "format is unknown", func() {
		c.Format(codec.Format(7))
	})

	require.PanicWithError(t, "hasher can't be nil", func() {
		c.Hasher(nil)
	})

	require.PanicWithError(t, "logger can't be nil", func() {
		c.Logger(nil)
	})

	require.PanicWithError(t, "rows can't be < 1", func() {
		codec.NewEncoder(codec.WithRows(-3))
	})
}

func TestParseFormat(t *testing.T) {
	format, err := codec.ParseFormat("tiff")
	require.Nil(t, err)
	require.Equal(t, format, codec.TIFF)

	_, err = codec.ParseFormat("gif")
	require.NotNil(t, err)
}
