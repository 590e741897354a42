// Package stream packs the key prefix, header and payload into the flat
// byte stream that is mapped onto pixels, and cuts it apart again.
package stream

import (
	"bytes"

	"hidim/internal/fault"
	"hidim/internal/header"
)

// Triple is one pixel's worth of stream bytes: red, green, blue.
type Triple [3]byte

// Pack concatenates key, encoded header and payload.
func Pack(key []byte, h header.Header, payload []byte) []byte {
	flat := make([]byte, 0, len(key)+header.Len(h)+len(payload))
	flat = append(flat, key...)
	flat = header.AppendTo(flat, h)
	return append(flat, payload...)
}

// TripleCount returns the number of triples needed to hold n bytes.
func TripleCount(n int) int {
	return (n + 2) / 3
}

// Triples groups flat into consecutive triples. A trailing group of one
// or two bytes is padded with zeros.
func Triples(flat []byte) []Triple {
	triples := make([]Triple, TripleCount(len(flat)))
	for i := range triples {
		copy(triples[i][:], flat[i*3:min(i*3+3, len(flat))])
	}
	return triples
}

// Flatten is the inverse of Triples. Padding bytes are kept; Unpack
// discards them using the declared content length.
func Flatten(triples []Triple) []byte {
	flat := make([]byte, 0, len(triples)*3)
	for _, t := range triples {
		flat = append(flat, t[:]...)
	}
	return flat
}

// Unpack verifies the key prefix, parses the header and returns it with
// exactly ContentLength payload bytes. The cut point is computed from the
// declared length alone, so trailing padding never leaks into the payload
// and genuine zero bytes are never dropped.
func Unpack(flat, key []byte) (header.Header, []byte, error) {
	if !bytes.HasPrefix(flat, key) {
		return header.Header{}, nil, fault.New(fault.KeyMismatch, "stream does not start with the expected key prefix")
	}

	h, n, err := header.Decode(flat[len(key):])
	if err != nil {
		return header.Header{}, nil, err
	}

	start := len(key) + n
	if h.ContentLength > len(flat)-start {
		return header.Header{}, nil, fault.Errorf(fault.LengthMismatch,
			"header declares %d payload bytes but only %d remain", h.ContentLength, len(flat)-start)
	}

	payload := make([]byte, h.ContentLength)
	copy(payload, flat[start:start+h.ContentLength])
	return h, payload, nil
}
