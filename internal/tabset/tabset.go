// Package tabset implements an immutable, id-ordered set of tabs. It backs
// both the annotator's "broken" sets (spec.md §4.2) and the flow analyzer's
// flow sets (spec.md §4.3) — both are just ordered sets of tab identities
// with union/intersection and a deterministic First().
package tabset

import "github.com/phobologic/tabdoc/internal/tab"

// Set is an immutable ordered set of tabs, sorted ascending by id. The zero
// value is not valid; use Empty() or New().
type Set struct {
	tabs []*tab.Tab
}

// Empty returns the empty set.
func Empty() *Set { return &Set{} }

// New returns a set containing the given tabs, deduplicated and sorted.
func New(tabs ...*tab.Tab) *Set {
	s := &Set{}
	for _, t := range tabs {
		s = s.Add(t)
	}
	return s
}

// Contains reports whether t is a member of s. A nil receiver is the empty
// set.
func (s *Set) Contains(t *tab.Tab) bool {
	if s == nil {
		return false
	}
	for _, m := range s.tabs {
		if m == t {
			return true
		}
	}
	return false
}

// Len reports the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tabs)
}

// First returns the lowest-id member, which is how the weaver and the
// blank-line inserter pick a single representative tab out of a flow set
// (spec.md §4.4, §4.6, §9 "Multi-tab flow sets").
func (s *Set) First() (*tab.Tab, bool) {
	if s.Len() == 0 {
		return nil, false
	}
	return s.tabs[0], true
}

// Add returns a new set with t inserted, leaving s unmodified.
func (s *Set) Add(t *tab.Tab) *Set {
	if s.Contains(t) {
		return s
	}
	out := make([]*tab.Tab, 0, s.Len()+1)
	inserted := false
	for _, m := range s.all() {
		if !inserted && t.Less(m) {
			out = append(out, t)
			inserted = true
		}
		out = append(out, m)
	}
	if !inserted {
		out = append(out, t)
	}
	return &Set{tabs: out}
}

func (s *Set) all() []*tab.Tab {
	if s == nil {
		return nil
	}
	return s.tabs
}

// Union returns the set union of a and b. A nil operand is treated as the
// empty set by callers that use Set for broken-sets; callers that use Set
// to represent flow's None/Some distinction must check for nil themselves
// before calling Union (see internal/flowanalysis).
func Union(a, b *Set) *Set {
	out := a
	for _, t := range b.all() {
		out = out.Add(t)
	}
	return out
}

// Intersect returns the set intersection of a and b.
func Intersect(a, b *Set) *Set {
	out := Empty()
	for _, t := range a.all() {
		if b.Contains(t) {
			out = out.Add(t)
		}
	}
	return out
}

// Slice returns the members in ascending id order. The returned slice must
// not be mutated.
func (s *Set) Slice() []*tab.Tab { return s.all() }
