// Package immutables provides a persistent, value-semantic Set backed by a
// Hash Array Mapped Trie (HAMT). Every mutating operation on a Set returns a
// new Set while physically sharing structure with its predecessor, so any
// historical Set remains valid and cheap to keep around.
//
// Alongside the purely persistent Set there is a Mutation, a short-lived
// single-owner builder obtained from a Set via Set.Mutator or Set.Mutate
// that applies many edits in place before freezing back into a Set.
//
// Concurrency: a Set, once returned, is safe for concurrent readers across
// goroutines provided the caller's Hash and Equal implementations are pure.
// A Mutation is single-owner: its methods must not be called concurrently
// with themselves or with anything observing its half-mutated state.
package immutables
