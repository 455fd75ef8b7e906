package immutables

import (
	"iter"
)

// Mutation is a short-lived, single-owner builder obtained from a Set via
// Set.Mutate. While mutid is non-zero its methods may mutate trie nodes in
// place rather than copying them, which makes applying many edits far
// cheaper than the equivalent chain of persistent Include/Exclude calls.
// A Mutation must not be used from more than one goroutine at a time.
type Mutation[T Hasher[T]] struct {
	count int
	root  *bitmapNode[T]
	mutid uint64
}

// Len returns the number of elements currently held by the mutation.
func (m *Mutation[T]) Len() int {
	return m.count
}

// Contains reports whether element is currently a member.
func (m *Mutation[T]) Contains(element T) bool {
	return m.root.find(0, foldHash(element.Hash()), element)
}

// Include adds element, mutating owned nodes in place. It returns
// ErrMutationFinished if Finish has already been called.
func (m *Mutation[T]) Include(element T) error {
	if m.mutid == 0 {
		return ErrMutationFinished
	}
	newRoot, added := m.root.add(0, foldHash(element.Hash()), element, m.mutid)
	m.root = newRoot.(*bitmapNode[T])
	if added {
		m.count++
	}
	return nil
}

// Exclude removes element. It returns ErrMutationFinished if the mutation
// is finished, or a *KeyNotFoundError if element is not a member.
func (m *Mutation[T]) Exclude(element T) error {
	if m.mutid == 0 {
		return ErrMutationFinished
	}
	res, newRoot := m.root.without(0, foldHash(element.Hash()), element, m.mutid)
	switch res {
	case withoutEmpty:
		m.root = newEmptyBitmapNode[T](m.mutid)
		m.count = 0
		return nil
	case withoutNotFound:
		return keyNotFound(element)
	default:
		m.root = newRoot.(*bitmapNode[T])
		m.count--
		return nil
	}
}

// Update inserts every element from the concatenation of sources, sharing
// this mutation's generation tag across all of them.
func (m *Mutation[T]) Update(sources ...[]T) error {
	if m.mutid == 0 {
		return ErrMutationFinished
	}
	for _, source := range sources {
		for _, element := range source {
			if err := m.Include(element); err != nil {
				return err
			}
		}
	}
	return nil
}

// Finish freezes the mutation (mutid becomes 0, so further edits fail) and
// returns the resulting Set. Calling Finish again is safe and returns the
// same content.
func (m *Mutation[T]) Finish() *Set[T] {
	m.mutid = 0
	return newSet[T](m.count, m.root)
}

// Equal reports whether m and other currently hold the same elements.
func (m *Mutation[T]) Equal(other *Mutation[T]) bool {
	if m.count != other.count {
		return false
	}
	equal := true
	m.root.each(func(e T) bool {
		if !other.root.find(0, foldHash(e.Hash()), e) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// All panics: a Mutation is not iterable (spec §6, "NotIterable").
func (m *Mutation[T]) All() iter.Seq[T] {
	panic(ErrNotIterable)
}

// Hash panics: a Mutation is not hashable (spec §6, "NotHashable").
func (m *Mutation[T]) Hash() int64 {
	panic(ErrNotHashable)
}

// String renders the mutation's elements, e.g. "Mutation{1, 2, 3}",
// matching set.py's SetMutation.__repr__.
func (m *Mutation[T]) String() string {
	return renderElements("Mutation", m.root.each)
}
