// Package digest computes the content fingerprint embedded in every
// header.
//
// The fingerprint is a SHA-1 digest rendered as 40 lowercase hex
// characters. Hashing never fails from the caller's point of view: when
// the hasher errors, [Compute] substitutes [Sentinel] and reports the
// cause in [Result.Err], so the header length stays the same either way.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multihash"

	"hidim/internal/fault"
)

// Size is the length in bytes of a raw digest.
const Size = 20

// HexSize is the length of a digest rendered as hex.
const HexSize = 2 * Size

// Sentinel is embedded in place of a real digest when hashing fails.
const Sentinel = "deadbeefdeadbeefdeadbeefdeadbeefbadc0ffe"

// Hasher returns the raw digest of payload.
type Hasher func(payload []byte) ([]byte, error)

// Result is the outcome of hashing a payload. Hex is always HexSize
// characters long. Err is non-nil exactly when Hex is the sentinel.
type Result struct {
	Hex string
	Err error
}

// Fallback reports whether the sentinel was substituted.
func (r Result) Fallback() bool {
	return r.Err != nil
}

// SHA1 hashes payload through multihash and returns the bare 20-byte
// digest.
func SHA1(payload []byte) ([]byte, error) {
	sum, err := multihash.Sum(payload, multihash.SHA1, -1)
	if err != nil {
		return nil, fmt.Errorf("computing sha1 multihash: %w", err)
	}
	decoded, err := multihash.Decode(sum)
	if err != nil {
		return nil, fmt.Errorf("decoding sha1 multihash: %w", err)
	}
	return decoded.Digest, nil
}

// Compute hashes payload with SHA1.
func Compute(payload []byte) Result {
	return ComputeWith(payload, SHA1)
}

// ComputeWith hashes payload with hasher. A nil hasher, a hasher error,
// a panic inside the hasher, or a digest of the wrong size all produce
// the sentinel.
func ComputeWith(payload []byte, hasher Hasher) (result Result) {
	if hasher == nil {
		return fallback(fault.New(fault.DigestUnavailable, "no hasher configured"))
	}

	defer func() {
		if r := recover(); r != nil {
			result = fallback(fault.Errorf(fault.DigestUnavailable, "hasher panicked: %v", r))
		}
	}()

	sum, err := hasher(payload)
	if err != nil {
		return fallback(fault.Wrap(fault.DigestUnavailable, "hashing payload", err))
	}
	if len(sum) != Size {
		return fallback(fault.Errorf(fault.DigestUnavailable, "digest is %d bytes, want %d", len(sum), Size))
	}
	return Result{Hex: hex.EncodeToString(sum)}
}

// IsSentinel reports whether hexDigest is the fallback sentinel.
func IsSentinel(hexDigest string) bool {
	return hexDigest == Sentinel
}

// Valid reports whether hexDigest has the shape of an embedded digest:
// HexSize lowercase hex characters.
func Valid(hexDigest string) bool {
	if len(hexDigest) != HexSize {
		return false
	}
	for i := 0; i < len(hexDigest); i++ {
		c := hexDigest[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func fallback(err error) Result {
	return Result{Hex: Sentinel, Err: err}
}
