package tabset

import (
	"testing"

	"github.com/phobologic/tabdoc/internal/tab"
)

func TestAddDedupAndOrder(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	a := reg.New(tab.Root, tab.Inplace)
	b := reg.New(tab.Root, tab.Inplace)

	s := New(b, a, a) // out of order, duplicated

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	first, ok := s.First()
	if !ok || first != a {
		t.Errorf("First() = (%v, %v), want (a, true)", first, ok)
	}
}

func TestContainsNilReceiver(t *testing.T) {
	t.Parallel()

	var s *Set
	if s.Contains(tab.Root) {
		t.Errorf("nil set should not contain anything")
	}
	if s.Len() != 0 {
		t.Errorf("nil set Len() = %d, want 0", s.Len())
	}
}

func TestUnion(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	a := reg.New(tab.Root, tab.Inplace)
	b := reg.New(tab.Root, tab.Inplace)

	u := Union(New(a), New(b))
	if !u.Contains(a) || !u.Contains(b) {
		t.Fatalf("union missing a member: %v", u.Slice())
	}
	if u.Len() != 2 {
		t.Errorf("Len() = %d, want 2", u.Len())
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	a := reg.New(tab.Root, tab.Inplace)
	b := reg.New(tab.Root, tab.Inplace)

	i := Intersect(New(a, b), New(a))
	if i.Len() != 1 || !i.Contains(a) {
		t.Fatalf("Intersect() = %v, want {a}", i.Slice())
	}
}

func TestEmptySetFirst(t *testing.T) {
	t.Parallel()

	if _, ok := Empty().First(); ok {
		t.Errorf("First() on empty set should report ok=false")
	}
}
