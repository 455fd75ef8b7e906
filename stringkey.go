package immutables

import (
	"github.com/dolthub/maphash"
	"golang.org/x/text/unicode/norm"
)

// stringHasher is the single seeded hasher shared by every StringKey in
// the process, so that two StringKeys built from Unicode-equivalent
// strings always hash equal.
var stringHasher = maphash.NewHasher[string]()

// StringKey is a ready-made Hasher[StringKey] element for Unicode text.
// It normalizes its payload to NFC the way the teacher's key.go FromString
// does, so "é" (precomposed é) and "é" (e followed by a
// combining acute accent) become the same element.
type StringKey struct {
	normalized string
}

// NewStringKey normalizes s to Unicode NFC and wraps it as a Set element.
func NewStringKey(s string) StringKey {
	return StringKey{normalized: norm.NFC.String(s)}
}

// String returns the normalized payload.
func (k StringKey) String() string {
	return k.normalized
}

func (k StringKey) Hash() uint64 {
	return stringHasher.Hash(k.normalized)
}

func (k StringKey) Equal(other StringKey) bool {
	return k.normalized == other.normalized
}
