package immutables

import "github.com/dolthub/maphash"

// ComparableHasher builds ready-made Set elements for an ordinary
// comparable payload type K, using a single seeded maphash.Hasher so that
// every element it wraps hashes consistently. The teacher pulled in
// github.com/dolthub/maphash only transitively, through Set3; this
// promotes it to a direct dependency so callers of plain scalar or string
// keys don't have to hand-write Hash/Equal themselves.
type ComparableHasher[K comparable] struct {
	inner maphash.Hasher[K]
}

// NewComparableHasher creates a ComparableHasher. Construct exactly one
// per concrete K and reuse it for every element you Wrap: a second
// ComparableHasher[K] seeds an independent, incompatible hash space, and
// elements wrapped by two different instances must never end up in the
// same Set.
func NewComparableHasher[K comparable]() *ComparableHasher[K] {
	return &ComparableHasher[K]{inner: maphash.NewHasher[K]()}
}

// Wrap adapts value into a ComparableElement usable as a Set element.
func (c *ComparableHasher[K]) Wrap(value K) ComparableElement[K] {
	return ComparableElement[K]{value: value, owner: c}
}

// ComparableElement adapts a plain comparable payload for use as a Set
// element. Build one via ComparableHasher.Wrap rather than constructing it
// directly, so it always carries a valid owner.
type ComparableElement[K comparable] struct {
	value K
	owner *ComparableHasher[K]
}

// Value returns the wrapped payload.
func (e ComparableElement[K]) Value() K {
	return e.value
}

func (e ComparableElement[K]) Hash() uint64 {
	return e.owner.inner.Hash(e.value)
}

func (e ComparableElement[K]) Equal(other ComparableElement[K]) bool {
	return e.value == other.value
}
