package immutables

import (
	"fmt"
	"iter"
	"strings"
	"sync/atomic"
)

// Set is a persistent, immutable value-semantic set. Every mutating method
// returns a new Set while sharing as much trie structure as possible with
// its predecessor; a Set returned to a caller is safe to keep around and to
// read from any goroutine. hash is cached lazily behind an atomic so that
// concurrent readers racing on the first Hash call never tear each other's
// write (spec §5: "concurrent readers across threads are safe ... provided
// the user-supplied hash and equality predicates are pure").
type Set[T Hasher[T]] struct {
	count int
	root  *bitmapNode[T]
	hash  atomic.Int64
}

// newSet builds a Set with its cached hash marked uncomputed.
func newSet[T Hasher[T]](count int, root *bitmapNode[T]) *Set[T] {
	s := &Set[T]{count: count, root: root}
	s.hash.Store(uncomputedHash)
	return s
}

// New returns an empty Set.
func New[T Hasher[T]]() *Set[T] {
	return newSet[T](0, newEmptyBitmapNode[T](0))
}

// From builds a Set containing every element from the concatenation of the
// given slices, equivalent to calling Update on an empty Set.
func From[T Hasher[T]](sources ...[]T) *Set[T] {
	return New[T]().Update(sources...)
}

// FromSet returns a Set that aliases other's root and cached hash in O(1);
// since both are immutable this is always safe.
func FromSet[T Hasher[T]](other *Set[T]) *Set[T] {
	s := &Set[T]{count: other.count, root: other.root}
	s.hash.Store(other.hash.Load())
	return s
}

// FromCollection builds a Set from col, mirroring the dynamic dispatch of
// the original Python Set(col) constructor: a *Set[T] is aliased in O(1), a
// []T is bulk-inserted as if by Update, and a *Mutation[T] is rejected with
// ErrInvalidConstruction since a live mutation's content is still changing.
func FromCollection[T Hasher[T]](col any) (*Set[T], error) {
	switch v := col.(type) {
	case *Set[T]:
		return FromSet(v), nil
	case *Mutation[T]:
		return nil, ErrInvalidConstruction
	case []T:
		return From(v), nil
	case nil:
		return New[T](), nil
	default:
		return nil, fmt.Errorf("immutables: cannot construct Set from %T", col)
	}
}

// Len returns the number of elements currently in the set.
func (s *Set[T]) Len() int {
	return s.count
}

// Contains reports whether element is a member of the set.
func (s *Set[T]) Contains(element T) bool {
	return s.root.find(0, foldHash(element.Hash()), element)
}

// Include returns a Set containing every element of s plus element. If
// element is already present, Include returns s itself.
func (s *Set[T]) Include(element T) *Set[T] {
	newRootAny, added := s.root.add(0, foldHash(element.Hash()), element, 0)
	newRoot := newRootAny.(*bitmapNode[T])
	if newRoot == s.root {
		return s
	}
	count := s.count
	if added {
		count++
	}
	return newSet[T](count, newRoot)
}

// Exclude returns a Set with element removed. It returns a
// *KeyNotFoundError if element is not a member of s.
func (s *Set[T]) Exclude(element T) (*Set[T], error) {
	res, newRoot := s.root.without(0, foldHash(element.Hash()), element, 0)
	switch res {
	case withoutEmpty:
		return New[T](), nil
	case withoutNotFound:
		return nil, keyNotFound(element)
	default:
		return newSet[T](s.count-1, newRoot.(*bitmapNode[T])), nil
	}
}

// Update returns a Set containing every element of s together with every
// element from the concatenation of sources. All insertions are applied
// against a single fresh generation tag, so the walk down the trie is
// shared the way a Mutation would share it, but the result is still an
// ordinary persistent Set.
func (s *Set[T]) Update(sources ...[]T) *Set[T] {
	if len(sources) == 0 {
		return s
	}

	mutid := nextMutID()
	var root node[T] = s.root
	count := s.count

	for _, source := range sources {
		for _, element := range source {
			var added bool
			root, added = root.add(0, foldHash(element.Hash()), element, mutid)
			if added {
				count++
			}
		}
	}

	return newSet[T](count, root.(*bitmapNode[T]))
}

// All returns an iterator over every element of the set, in an unspecified
// but deterministic depth-first order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.root.each(yield)
	}
}

// Equal reports whether s and other contain exactly the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.count != other.count {
		return false
	}
	equal := true
	s.root.each(func(e T) bool {
		if !other.root.find(0, foldHash(e.Hash()), e) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Hash returns the set's order-independent structural hash, memoized after
// the first call. Two sets that Equal report hash equal, regardless of
// insertion history (spec §4.3).
func (s *Set[T]) Hash() int64 {
	if cached := s.hash.Load(); cached != uncomputedHash {
		return cached
	}

	h := uint64(1927868237) * uint64(s.count+1)
	s.root.each(func(e T) bool {
		hx := e.Hash()
		h ^= (hx ^ (hx << 16) ^ 89869747) * 3644798167
		return true
	})
	h = h*69069 + 907133923

	result := int64(h)
	if result == uncomputedHash {
		result = sentinelHashReplacement
	}

	// Two racing callers may both compute and store here; the computation
	// is a pure function of s's content so the redundant write is harmless.
	s.hash.Store(result)
	return result
}

// Mutate obtains a Mutation from s, applies fn to it, and always finalizes
// it before returning, even if fn panics or returns an error. If fn
// returns a non-nil error the resulting Set is discarded (s is returned
// unchanged) alongside that error.
func (s *Set[T]) Mutate(fn func(m *Mutation[T]) error) (result *Set[T], err error) {
	m := s.Mutator()
	defer func() {
		frozen := m.Finish()
		if err == nil {
			result = frozen
		}
	}()

	if err = fn(m); err != nil {
		result = s
	}
	return
}

// Mutator returns a transient Mutation seeded with s's current content.
// The caller owns the returned Mutation and must call Finish on it when
// done; Mutate is usually a safer choice since it guarantees that release.
func (s *Set[T]) Mutator() *Mutation[T] {
	return &Mutation[T]{count: s.count, root: s.root, mutid: nextMutID()}
}

// String renders the set's elements, e.g. "Set{1, 2, 3}", matching the
// element-listing behavior of set.py's __repr__ (order follows the same
// depth-first walk as All). Elements are formatted through fmt, so a
// panicking element String/Format method does not propagate: fmt recovers
// it and renders a "%!v(PANIC=...)" marker in that element's place.
func (s *Set[T]) String() string {
	return renderElements("Set", s.root.each)
}

// renderElements formats label and every element yielded by walk as
// "label{e1, e2, e3}", in the order walk visits them. Each element is
// rendered with its own default formatting (%v), the same way set.py's
// __repr__ calls repr() on each element.
func renderElements[T any](label string, walk func(yield func(T) bool) bool) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('{')
	first := true
	walk(func(e T) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", e)
		return true
	})
	b.WriteByte('}')
	return b.String()
}
