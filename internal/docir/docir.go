// Package docir defines the input document algebra described in spec.md §3
// — the tree a caller builds by hand to describe how a parsed file's
// tokens should flow from tab anchors — plus the smart constructors that
// keep it normalized (spec.md §4.1).
package docir

import (
	"sync"

	"github.com/phobologic/tabdoc/internal/tab"
)

// DocVar is a globally unique identity for a named sub-document, created
// by LetDoc. DocVars are compared by identity, never by value.
type DocVar struct {
	id int64
}

// VarRegistry allocates DocVars with strictly increasing ids, mirroring
// tab.Registry (spec.md §4.1 "process-wide counter for doc-var ids").
type VarRegistry struct {
	mu   sync.Mutex
	next int64
}

// NewVarRegistry creates a registry whose first DocVar has id 1.
func NewVarRegistry() *VarRegistry { return &VarRegistry{next: 1} }

// New allocates a fresh DocVar.
func (r *VarRegistry) New() *DocVar {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	return &DocVar{id: id}
}

// Kind tags the variant of a Doc node.
type Kind int

const (
	KEmpty Kind = iota
	KSpace
	KNoSpace
	KToken
	KText
	KConcat
	KAt
	KNewTab
	KCond
	KLetDoc
	KVar
)

// Doc is a node of the input document IR (spec.md §3). It is represented
// as a single kind-tagged struct rather than a closed sum type, per
// spec.md §9's guidance for languages without algebraic data types; only
// the fields relevant to Kind are populated.
type Doc struct {
	Kind Kind

	Tok  Token  // KToken
	Text string // KText

	A, B *Doc // KConcat

	Tab          *tab.Tab // KAt, KCond, KNewTab
	MightBeFirst bool     // unused pre-annotation; kept at zero value here
	Body         *Doc     // KAt (the d in At(tab,d)), KNewTab (the d in NewTab{tab,d})

	Style        tab.Style // KNewTab
	MinIndent    int       // KNewTab, when HasMinIndent
	HasMinIndent bool      // KNewTab

	Inactive, Active *Doc // KCond

	Var   *DocVar // KLetDoc, KVar
	Bound *Doc    // KLetDoc (the d in LetDoc{var,d,body})
}

// Empty is the empty document; Concat absorbs it on either side.
var Empty = &Doc{Kind: KEmpty}

// Space is a mandatory space.
var Space = &Doc{Kind: KSpace}

// NoSpace is an explicit anti-space, suppressing an otherwise-inserted
// space at this position.
var NoSpace = &Doc{Kind: KNoSpace}

// TokenDoc wraps a source token.
func TokenDoc(t Token) *Doc { return &Doc{Kind: KToken, Tok: t} }

// TextDoc wraps a literal string fragment that is not a source token.
func TextDoc(s string) *Doc {
	if s == "" {
		return Empty
	}
	return &Doc{Kind: KText, Text: s}
}

// Concat sequences a then b, absorbing Empty on either side so repeated
// concatenation never grows the tree with no-op nodes (spec.md §4.1).
func Concat(a, b *Doc) *Doc {
	if a == nil || a.Kind == KEmpty {
		return b
	}
	if b == nil || b.Kind == KEmpty {
		return a
	}
	return &Doc{Kind: KConcat, A: a, B: b}
}

// ConcatAll concatenates ds in order, left to right.
func ConcatAll(ds ...*Doc) *Doc {
	out := Empty
	for _, d := range ds {
		out = Concat(out, d)
	}
	return out
}

// At requests that d be laid out beginning at the column tab is assigned.
func At(t *tab.Tab, d *Doc) *Doc {
	return &Doc{Kind: KAt, Tab: t, Body: d}
}

// NewTabWithStyle allocates a fresh tab under parent with the given style,
// passes it to f to build the scoped body, and returns the NewTab node
// that introduces it (spec.md §4.1 "new_tab_with_style").
func NewTabWithStyle(reg *tab.Registry, parent *tab.Tab, style tab.Style, f func(*tab.Tab) *Doc) *Doc {
	t := reg.New(parent, style)
	return &Doc{Kind: KNewTab, Tab: t, Style: style, Body: f(t)}
}

// NewTabIndented is NewTabWithStyle for Indented/RigidIndented styles that
// carry a minimum indent.
func NewTabIndented(reg *tab.Registry, parent *tab.Tab, style tab.Style, minIndent int, f func(*tab.Tab) *Doc) *Doc {
	t := reg.NewWithMinIndent(parent, style, minIndent)
	return &Doc{Kind: KNewTab, Tab: t, Style: style, MinIndent: minIndent, HasMinIndent: true, Body: f(t)}
}

// Cond branches layout on whether tab becomes active.
func Cond(t *tab.Tab, inactive, active *Doc) *Doc {
	return &Doc{Kind: KCond, Tab: t, Inactive: inactive, Active: active}
}

// LetDoc allocates a fresh DocVar, applies f to obtain the body, and binds
// d to that var for the body's scope (spec.md §4.1 "letdoc").
func LetDoc(reg *VarRegistry, d *Doc, f func(*DocVar) *Doc) *Doc {
	v := reg.New()
	return &Doc{Kind: KLetDoc, Var: v, Bound: d, Body: f(v)}
}

// Var references a DocVar bound by an enclosing LetDoc.
func Var(v *DocVar) *Doc {
	return &Doc{Kind: KVar, Var: v}
}
