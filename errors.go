package immutables

import (
	"errors"
	"fmt"
)

// ErrMutationFinished is returned by any Mutation write after Finish has
// already been called on it.
var ErrMutationFinished = errors.New("immutables: mutation has been finished")

// ErrInvalidConstruction is returned when attempting to build a Set from a
// live Mutation.
var ErrInvalidConstruction = errors.New("immutables: cannot create a Set from a live Mutation")

// ErrNotIterable is the panic value raised by Mutation.All: a Mutation's
// partially-mutated state is not meant to be walked while it is still
// owned by a single writer.
var ErrNotIterable = errors.New("immutables: Mutation is not iterable")

// ErrNotHashable is the panic value raised by Mutation.Hash: a Mutation's
// content can still change, so it has no stable structural hash.
var ErrNotHashable = errors.New("immutables: Mutation is not hashable")

// KeyNotFoundError reports that Exclude was called for an element that is
// not a member of the set. It carries the offending element so callers can
// recover it without a second lookup.
type KeyNotFoundError[T any] struct {
	Element T
}

func (e *KeyNotFoundError[T]) Error() string {
	return fmt.Sprintf("immutables: key not found: %v", e.Element)
}

// keyNotFound builds a KeyNotFoundError for element.
func keyNotFound[T any](element T) error {
	return &KeyNotFoundError[T]{Element: element}
}
