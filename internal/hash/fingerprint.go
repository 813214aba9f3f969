// Package hash computes the xxHash64 fingerprints used to detect variable catalog changes.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Bytes computes the xxHash64 of the given bytes.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of the given string.
func String(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint accumulates an order-sensitive xxHash64 over a sequence of fields.
//
// Strings are length-prefixed so that adjacent fields cannot shift into each other:
// ("ab", "c") and ("a", "bc") produce different sums.
type Fingerprint struct {
	digest *xxhash.Digest
	buf    [8]byte
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{digest: xxhash.New()}
}

// Int adds an integer field.
func (f *Fingerprint) Int(v int64) {
	binary.LittleEndian.PutUint64(f.buf[:], uint64(v)) //nolint:gosec
	_, _ = f.digest.Write(f.buf[:])
}

// String adds a length-prefixed string field.
func (f *Fingerprint) String(s string) {
	f.Int(int64(len(s)))
	_, _ = f.digest.WriteString(s)
}

// Sum returns the fingerprint of every field added so far.
func (f *Fingerprint) Sum() uint64 {
	return f.digest.Sum64()
}
