// Package header encodes the self-describing metadata block that precedes
// the payload in every stream.
//
// The block is four fields in a subset of bencode framing:
//
//	i<rows>e <len>:<name> <len>:<digest> i<contentLength>e
//
// Integers sit between an 'i' and an 'e' marker. Byte strings carry their
// decimal length and a ':' separator. Every field is self-terminating, so
// a reader never guesses where a value ends.
package header

import (
	"strconv"

	"hidim/internal/fault"
)

const (
	intStart  = 'i'
	intEnd    = 'e'
	separator = ':'

	// maxDigits bounds digit runs so values always fit in an int64.
	maxDigits = 18
)

// Header is the metadata embedded ahead of the payload.
type Header struct {
	Rows          int
	Name          string
	Digest        string
	ContentLength int
}

// Encode serializes h.
func Encode(h Header) []byte {
	return AppendTo(nil, h)
}

// AppendTo appends the serialized form of h to dst and returns the
// extended slice.
func AppendTo(dst []byte, h Header) []byte {
	dst = appendInt(dst, h.Rows)
	dst = appendString(dst, h.Name)
	dst = appendString(dst, h.Digest)
	dst = appendInt(dst, h.ContentLength)
	return dst
}

// Len returns the encoded length of h without allocating it.
func Len(h Header) int {
	return intLen(h.Rows) + stringLen(h.Name) + stringLen(h.Digest) + intLen(h.ContentLength)
}

// Decode parses a header from the start of buf and returns it with the
// number of bytes consumed. Bytes after the header are ignored.
func Decode(buf []byte) (Header, int, error) {
	var (
		h   Header
		pos int
		err error
	)

	if h.Rows, pos, err = readInt(buf, pos, "row count"); err != nil {
		return Header{}, 0, err
	}
	if h.Name, pos, err = readString(buf, pos, "name"); err != nil {
		return Header{}, 0, err
	}
	if h.Digest, pos, err = readString(buf, pos, "digest"); err != nil {
		return Header{}, 0, err
	}
	if h.ContentLength, pos, err = readInt(buf, pos, "content length"); err != nil {
		return Header{}, 0, err
	}

	return h, pos, nil
}

func appendInt(dst []byte, v int) []byte {
	dst = append(dst, intStart)
	dst = strconv.AppendInt(dst, int64(v), 10)
	return append(dst, intEnd)
}

func appendString(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, separator)
	return append(dst, s...)
}

func intLen(v int) int {
	return len(strconv.Itoa(v)) + 2
}

func stringLen(s string) int {
	return len(strconv.Itoa(len(s))) + 1 + len(s)
}

func readInt(buf []byte, pos int, field string) (int, int, error) {
	if pos >= len(buf) {
		return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: unexpected end of header at offset %d", field, pos)
	}
	if buf[pos] != intStart {
		return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: expected %q at offset %d, got %q", field, intStart, pos, buf[pos])
	}
	pos++

	value, next, err := readDigits(buf, pos, field)
	if err != nil {
		return 0, 0, err
	}
	if next >= len(buf) {
		return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: missing %q terminator", field, intEnd)
	}
	if buf[next] != intEnd {
		return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: expected %q at offset %d, got %q", field, intEnd, next, buf[next])
	}
	return value, next + 1, nil
}

func readString(buf []byte, pos int, field string) (string, int, error) {
	length, next, err := readDigits(buf, pos, field+" length")
	if err != nil {
		return "", 0, err
	}
	if next >= len(buf) {
		return "", 0, fault.Errorf(fault.MalformedHeader, "%s: missing %q separator", field, separator)
	}
	if buf[next] != separator {
		return "", 0, fault.Errorf(fault.MalformedHeader, "%s: expected %q at offset %d, got %q", field, separator, next, buf[next])
	}
	next++

	if length > len(buf)-next {
		return "", 0, fault.Errorf(fault.MalformedHeader, "%s: declared length %d exceeds remaining %d bytes", field, length, len(buf)-next)
	}
	return string(buf[next : next+length]), next + length, nil
}

// readDigits reads a non-empty run of ASCII decimal digits starting at pos.
func readDigits(buf []byte, pos int, field string) (int, int, error) {
	start := pos
	value := 0
	for pos < len(buf) && buf[pos] >= '0' && buf[pos] <= '9' {
		if pos-start == maxDigits {
			return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: more than %d digits", field, maxDigits)
		}
		value = value*10 + int(buf[pos]-'0')
		pos++
	}
	if pos == start {
		if pos >= len(buf) {
			return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: unexpected end of header at offset %d", field, pos)
		}
		return 0, 0, fault.Errorf(fault.MalformedHeader, "%s: expected digit at offset %d, got %q", field, pos, buf[pos])
	}
	return value, pos, nil
}
