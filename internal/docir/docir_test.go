package docir

import (
	"testing"

	"github.com/phobologic/tabdoc/internal/tab"
)

type fakeToken struct{ name string }

func (t *fakeToken) Source() Source { return nil }

func TestConcatAbsorbsEmptyOnEitherSide(t *testing.T) {
	t.Parallel()

	x := TokenDoc(&fakeToken{"x"})
	if got := Concat(Empty, x); got != x {
		t.Errorf("Concat(Empty, x) = %v, want x itself", got)
	}
	if got := Concat(x, Empty); got != x {
		t.Errorf("Concat(x, Empty) = %v, want x itself", got)
	}
	if got := Concat(Empty, Empty); got != Empty {
		t.Errorf("Concat(Empty, Empty) = %v, want Empty", got)
	}
}

func TestConcatBuildsKConcatWhenBothSidesNonEmpty(t *testing.T) {
	t.Parallel()

	a, b := TokenDoc(&fakeToken{"a"}), TokenDoc(&fakeToken{"b"})
	got := Concat(a, b)
	if got.Kind != KConcat || got.A != a || got.B != b {
		t.Fatalf("Concat(a, b) = %+v, want a KConcat node wrapping a and b", got)
	}
}

func TestConcatAllSequencesLeftToRightAndAbsorbsEmpties(t *testing.T) {
	t.Parallel()

	a, b, c := TokenDoc(&fakeToken{"a"}), TokenDoc(&fakeToken{"b"}), TokenDoc(&fakeToken{"c"})
	got := ConcatAll(Empty, a, Empty, b, c)

	// (a ++ b) ++ c, since ConcatAll folds left to right through Concat.
	want := Concat(Concat(a, b), c)
	if !sameShape(got, want) {
		t.Fatalf("ConcatAll(Empty, a, Empty, b, c) = %+v, want %+v", got, want)
	}
}

func sameShape(a, b *Doc) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KToken:
		return a.Tok == b.Tok
	case KConcat:
		return sameShape(a.A, b.A) && sameShape(a.B, b.B)
	default:
		return a == b
	}
}

func TestTextDocEmptyStringCollapsesToEmpty(t *testing.T) {
	t.Parallel()

	if got := TextDoc(""); got != Empty {
		t.Errorf("TextDoc(\"\") = %v, want the Empty singleton", got)
	}
	got := TextDoc("x")
	if got.Kind != KText || got.Text != "x" {
		t.Errorf("TextDoc(\"x\") = %+v, want a KText node with Text=\"x\"", got)
	}
}

func TestAtWrapsTabAndBody(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	tb := reg.New(tab.Root, tab.Inplace)
	body := TokenDoc(&fakeToken{"x"})

	got := At(tb, body)
	if got.Kind != KAt || got.Tab != tb || got.Body != body {
		t.Fatalf("At(tb, body) = %+v, want a KAt node carrying tb and body", got)
	}
}

func TestNewTabWithStyleAllocatesUnderParentAndScopesTab(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	var captured *tab.Tab
	got := NewTabWithStyle(reg, tab.Root, tab.Indented, func(t *tab.Tab) *Doc {
		captured = t
		return At(t, Empty)
	})

	if got.Kind != KNewTab || got.Tab == nil {
		t.Fatalf("NewTabWithStyle result = %+v, want a KNewTab node with an allocated Tab", got)
	}
	if got.Tab != captured {
		t.Errorf("NewTab's own Tab field does not match the tab handed to f")
	}
	if got.Tab.Parent() != tab.Root {
		t.Errorf("allocated tab's parent = %v, want Root", got.Tab.Parent())
	}
	if got.Style != tab.Indented {
		t.Errorf("NewTab.Style = %v, want Indented", got.Style)
	}
	if got.HasMinIndent {
		t.Errorf("NewTabWithStyle should leave HasMinIndent false")
	}
}

func TestNewTabIndentedCarriesMinIndent(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	got := NewTabIndented(reg, tab.Root, tab.RigidIndented, 4, func(t *tab.Tab) *Doc {
		return At(t, Empty)
	})

	if !got.HasMinIndent || got.MinIndent != 4 {
		t.Fatalf("NewTabIndented = %+v, want HasMinIndent=true, MinIndent=4", got)
	}
	if got.Style != tab.RigidIndented {
		t.Errorf("NewTabIndented.Style = %v, want RigidIndented", got.Style)
	}
}

func TestCondCarriesBothBranches(t *testing.T) {
	t.Parallel()

	reg := tab.NewRegistry()
	tb := reg.New(tab.Root, tab.Inplace)
	inactive, active := Empty, TokenDoc(&fakeToken{"x"})

	got := Cond(tb, inactive, active)
	if got.Kind != KCond || got.Tab != tb || got.Inactive != inactive || got.Active != active {
		t.Fatalf("Cond(tb, inactive, active) = %+v, want a KCond node carrying all three", got)
	}
}

func TestLetDocAllocatesFreshVarAndBindsBody(t *testing.T) {
	t.Parallel()

	reg := NewVarRegistry()
	bound := TokenDoc(&fakeToken{"bound"})
	var capturedVar *DocVar

	got := LetDoc(reg, bound, func(v *DocVar) *Doc {
		capturedVar = v
		return Concat(Var(v), Var(v))
	})

	if got.Kind != KLetDoc || got.Bound != bound || got.Var != capturedVar {
		t.Fatalf("LetDoc result = %+v, want a KLetDoc node carrying bound and the allocated var", got)
	}
	if got.Body.Kind != KConcat {
		t.Fatalf("LetDoc.Body = %+v, want the Concat(Var(v), Var(v)) from f", got)
	}
	if got.Body.A.Kind != KVar || got.Body.A.Var != capturedVar {
		t.Errorf("first Var(v) occurrence does not reference the allocated DocVar")
	}
}

func TestVarRegistryAllocatesDistinctIncreasingIDs(t *testing.T) {
	t.Parallel()

	reg := NewVarRegistry()
	v1 := reg.New()
	v2 := reg.New()

	if v1 == v2 {
		t.Fatalf("two New() calls returned the same DocVar identity")
	}
	if v1.id != 1 || v2.id != 2 {
		t.Errorf("VarRegistry ids = %d, %d, want 1, 2", v1.id, v2.id)
	}
}

func TestVarReferencesGivenDocVar(t *testing.T) {
	t.Parallel()

	reg := NewVarRegistry()
	v := reg.New()

	got := Var(v)
	if got.Kind != KVar || got.Var != v {
		t.Fatalf("Var(v) = %+v, want a KVar node referencing v", got)
	}
}
