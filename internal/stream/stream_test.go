package stream_test

import (
	"testing"

	"hidim/internal/fault"
	"hidim/internal/header"
	"hidim/internal/stream"
	"hidim/internal/testing/require"
)

var key = []byte("hidim is torrents!")

func TestPack(t *testing.T) {
	h := header.Header{Rows: 30, Name: "t", Digest: "d", ContentLength: 3}

	flat := stream.Pack(key, h, []byte("ABC"))
	require.Equal(t, string(flat), "hidim is torrents!i30e1:t1:di3eABC")
}

func TestTriples(t *testing.T) {
	require.Equal(t, stream.TripleCount(0), 0)
	require.Equal(t, stream.TripleCount(1), 1)
	require.Equal(t, stream.TripleCount(3), 1)
	require.Equal(t, stream.TripleCount(4), 2)

	require.Equal(t, len(stream.Triples(nil)), 0)
	require.Equal(t, stream.Triples([]byte{1, 2, 3}), []stream.Triple{{1, 2, 3}})
	require.Equal(t, stream.Triples([]byte{1, 2, 3, 4}), []stream.Triple{{1, 2, 3}, {4, 0, 0}})
	require.Equal(t, stream.Triples([]byte{1, 2, 3, 4, 5}), []stream.Triple{{1, 2, 3}, {4, 5, 0}})
}

func TestFlatten(t *testing.T) {
	flat := stream.Flatten(stream.Triples([]byte{9, 8, 7, 6}))
	require.Equal(t, flat, []byte{9, 8, 7, 6, 0, 0})
}

func TestUnpack(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x41},
		{0x41, 0x42, 0x43},
		{0x00},
		{0x01, 0x00, 0x00},
		{0x41, 0x00, 0x00, 0x00},
	}

	for _, payload := range payloads {
		h := header.Header{Rows: 30, Name: "n", Digest: "d", ContentLength: len(payload)}
		padded := stream.Flatten(stream.Triples(stream.Pack(key, h, payload)))

		got, body, err := stream.Unpack(padded, key)
		require.Nil(t, err)
		require.Equal(t, got, h)
		require.Equal(t, body, payload)
	}
}

func TestUnpackIgnoresTrailingBytes(t *testing.T) {
	h := header.Header{Rows: 30, Name: "n", Digest: "d", ContentLength: 2}
	flat := append(stream.Pack(key, h, []byte{7, 0}), 0, 0, 0, 0, 0xff)

	_, body, err := stream.Unpack(flat, key)
	require.Nil(t, err)
	require.Equal(t, body, []byte{7, 0})
}

func TestUnpackKeyMismatch(t *testing.T) {
	h := header.Header{Rows: 30, Name: "n", Digest: "d", ContentLength: 0}
	flat := stream.Pack([]byte("another key"), h, nil)

	_, _, err := stream.Unpack(flat, key)
	require.ErrorKind(t, err, fault.KeyMismatch)

	_, _, err = stream.Unpack(key[:4], key)
	require.ErrorKind(t, err, fault.KeyMismatch)
}

func TestUnpackMalformedHeader(t *testing.T) {
	flat := append(append([]byte{}, key...), "i30e1:t1:d"...)

	_, _, err := stream.Unpack(flat, key)
	require.ErrorKind(t, err, fault.MalformedHeader)
}

func TestUnpackLengthMismatch(t *testing.T) {
	h := header.Header{Rows: 30, Name: "n", Digest: "d", ContentLength: 10}
	flat := stream.Pack(key, h, []byte("short"))

	_, body, err := stream.Unpack(flat, key)
	require.ErrorKind(t, err, fault.LengthMismatch)
	require.Nil(t, body)
}
