package spacing

import (
	"testing"

	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
)

type fakeToken struct{ name string }

func (t *fakeToken) Source() docir.Source { return nil }

func countSpaces(n *anndoc.Node) int {
	if n == nil || n.Kind == anndoc.KEmpty {
		return 0
	}
	switch n.Kind {
	case anndoc.KSpace:
		return 1
	case anndoc.KConcat:
		return countSpaces(n.A) + countSpaces(n.B)
	case anndoc.KAt:
		return countSpaces(n.Body)
	case anndoc.KCond:
		return countSpaces(n.Inactive) + countSpaces(n.Active)
	case anndoc.KLetDoc:
		return countSpaces(n.Bound) + countSpaces(n.Body)
	default:
		return 0
	}
}

func TestEnsureSpacesInsertsBetweenAdjacentTokens(t *testing.T) {
	t.Parallel()

	doc := anndoc.Concat(anndoc.TokenNode(&fakeToken{"a"}), anndoc.TokenNode(&fakeToken{"b"}))
	out := EnsureSpaces(doc)

	if got := countSpaces(out); got != 1 {
		t.Fatalf("expected exactly 1 inserted space between adjacent tokens, got %d", got)
	}
}

func TestEnsureSpacesDoesNotDoubleUpOnExplicitSpace(t *testing.T) {
	t.Parallel()

	doc := anndoc.ConcatAll(
		anndoc.TokenNode(&fakeToken{"a"}),
		anndoc.SpaceNode(),
		anndoc.TokenNode(&fakeToken{"b"}),
	)
	out := EnsureSpaces(doc)

	if got := countSpaces(out); got != 1 {
		t.Fatalf("expected the explicit space to be preserved without a duplicate, got %d spaces", got)
	}
}

func TestEnsureSpacesSuppressesBeforeContinuationBreak(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	tb := reg.New(tab.Root, tab.Inplace)

	// Under a Cond whose Active branch is known to have broken tb, an
	// At(tb, mightBeFirst=false, ...) is a continuation line: no space
	// is needed before it even though both neighboring edges are
	// MaybeNotSpacey, since the break itself separates the content.
	active := anndoc.Concat(
		anndoc.TokenNode(&fakeToken{"a"}),
		anndoc.At(tb, false, anndoc.TokenNode(&fakeToken{"b"})),
	)
	doc := anndoc.Cond(tb, anndoc.Empty, active)

	out := EnsureSpaces(doc)
	if got := countSpaces(out); got != 0 {
		t.Fatalf("expected no space inserted across a tab break, got %d", got)
	}
}

func TestEnsureSpacesPropagatesThroughLetDocVar(t *testing.T) {
	t.Parallel()

	v := &docir.DocVar{}
	doc := anndoc.LetDoc(v,
		anndoc.TokenNode(&fakeToken{"bound"}),
		anndoc.Concat(anndoc.TokenNode(&fakeToken{"a"}), anndoc.VarNode(v)),
	)

	out := EnsureSpaces(doc)
	if got := countSpaces(out.Bound); got != 1 {
		t.Fatalf("expected the Var(v) site's needBefore to propagate into the bound doc, got %d spaces in Bound", got)
	}
}
