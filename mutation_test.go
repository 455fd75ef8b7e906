package immutables

import (
	"errors"
	"fmt"
	"testing"
)

func TestMutatorBasics(t *testing.T) {
	s := New[testKey]()
	m := s.Mutator()

	if err := m.Include(tk("a", 1)); err != nil {
		t.Fatalf("Include returned error: %v", err)
	}
	if !m.Contains(tk("a", 1)) {
		t.Fatal("mutation should contain just-included element")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	result := m.Finish()
	if result.Len() != 1 || !result.Contains(tk("a", 1)) {
		t.Fatal("Finish should produce a Set reflecting the mutation's edits")
	}

	if err := m.Include(tk("b", 2)); !errors.Is(err, ErrMutationFinished) {
		t.Fatalf("expected ErrMutationFinished after Finish, got %v", err)
	}
}

// TestS4TransientScope is spec scenario S4.
func TestS4TransientScope(t *testing.T) {
	boom := errors.New("boom")
	original := From([]testKey{tk("a", 1)})

	result, err := original.Mutate(func(m *Mutation[testKey]) error {
		if ierr := m.Include(tk("z", 26)); ierr != nil {
			return ierr
		}
		if eerr := m.Exclude(tk("a", 1)); eerr != nil {
			return eerr
		}
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected the injected error to propagate, got %v", err)
	}
	if !result.Equal(original) {
		t.Fatal("the original set must be unchanged after a failed Mutate")
	}
	if !original.Contains(tk("a", 1)) || original.Contains(tk("z", 26)) {
		t.Fatal("original set observed partial edits from the aborted mutation")
	}
}

func TestMutationHandlesTotalRemovalCleanly(t *testing.T) {
	s := New[testKey]().Include(tk("only", 9))
	m := s.Mutator()

	if err := m.Exclude(tk("only", 9)); err != nil {
		t.Fatalf("Exclude returned error: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after removing the last element", m.Len())
	}

	// The fresh empty root must be tagged with this mutation's generation,
	// so a subsequent Include can still mutate in place (spec §9).
	if m.root.mutid != m.mutid {
		t.Fatalf("empty root mutid = %d, want the mutation's %d", m.root.mutid, m.mutid)
	}
	if err := m.Include(tk("again", 10)); err != nil {
		t.Fatalf("Include after total removal returned error: %v", err)
	}
	result := m.Finish()
	if result.Len() != 1 || !result.Contains(tk("again", 10)) {
		t.Fatal("mutation should recover cleanly from emptying and re-populating")
	}
}

func TestMutationExcludeMissingKey(t *testing.T) {
	m := New[testKey]().Mutator()
	err := m.Exclude(tk("ghost", 1))
	if _, ok := err.(*KeyNotFoundError[testKey]); !ok {
		t.Fatalf("expected *KeyNotFoundError, got %T: %v", err, err)
	}
}

func TestMutationNotIterableNotHashable(t *testing.T) {
	m := New[testKey]().Mutator()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("All() should panic on a Mutation")
			}
		}()
		m.All()
	}()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("Hash() should panic on a Mutation")
			}
		}()
		m.Hash()
	}()
}

func TestMutationEqual(t *testing.T) {
	a := New[testKey]().Mutator()
	b := New[testKey]().Mutator()

	_ = a.Include(tk("x", 1))
	_ = b.Include(tk("x", 1))
	if !a.Equal(b) {
		t.Fatal("mutations with the same content should be Equal")
	}

	_ = a.Include(tk("y", 2))
	if a.Equal(b) {
		t.Fatal("mutations with different content should not be Equal")
	}
}

func TestMutationStringer(t *testing.T) {
	m := New[testKey]().Mutator()
	if got, want := m.String(), "Mutation{}"; got != want {
		t.Fatalf("String() on empty mutation = %q, want %q", got, want)
	}

	e := tk("a", 1)
	if err := m.Include(e); err != nil {
		t.Fatalf("Include returned error: %v", err)
	}
	if got, want := m.String(), fmt.Sprintf("Mutation{%v}", e); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
