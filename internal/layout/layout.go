// Package layout is the downstream string-document algebra spec.md §6
// calls out as an external collaborator ("the lower-level string-document
// layout engine that actually selects line breaks... is out of scope").
// It exists here only so lower.go has a concrete target to translate
// into and the repository has one working end-to-end renderer; designing
// the *optimal* line-breaking algorithm is explicitly not this package's
// job.
package layout

import (
	"strings"
	"sync"

	"github.com/phobologic/tabdoc/internal/tab"
)

// Tab is the lowered counterpart of tab.Tab (spec.md §4.7 "tabMap: Tab ->
// LoweredTab"), kept as a distinct type so the layout package has no
// dependency on the core's own tab identities.
type Tab struct {
	id           int64
	parent       *Tab
	style        tab.Style
	minIndent    int
	hasMinIndent bool
}

// Root is the sentinel every lowered document is ultimately anchored to.
var Root = &Tab{id: 0, style: tab.Inplace}

func (t *Tab) Parent() *Tab { return t.parent }
func (t *Tab) Style() tab.Style { return t.style }

// Registry allocates lowered tabs with strictly increasing ids, mirroring
// tab.Registry.
type Registry struct {
	mu   sync.Mutex
	next int64
}

func NewRegistry() *Registry { return &Registry{next: 1} }

func (r *Registry) New(parent *Tab, style tab.Style, minIndent int, hasMinIndent bool) *Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	return &Tab{id: id, parent: parent, style: style, minIndent: minIndent, hasMinIndent: hasMinIndent}
}

// Kind tags the variant of a lowered Doc.
type Kind int

const (
	KEmpty Kind = iota
	KSpace
	KNewline
	KText
	KConcat
	KAt
	KNewTab
	KCond
)

// Doc is the lowered string-document value (spec.md §6 "Lowered document
// algebra"): constants empty/space/newline/root, constructors
// text/concat/at/cond/newTab.
type Doc struct {
	Kind Kind

	Text string // KText

	A, B *Doc // KConcat

	Tab  *Tab // KAt, KCond, KNewTab
	Body *Doc // KAt, KNewTab

	Style        tab.Style // KNewTab
	MinIndent    int       // KNewTab
	HasMinIndent bool      // KNewTab

	Inactive, Active *Doc // KCond
}

var Empty = &Doc{Kind: KEmpty}
var Space = &Doc{Kind: KSpace}
var Newline = &Doc{Kind: KNewline}

func Text(s string) *Doc {
	if s == "" {
		return Empty
	}
	return &Doc{Kind: KText, Text: s}
}

func Concat(a, b *Doc) *Doc {
	if a == nil || a.Kind == KEmpty {
		return b
	}
	if b == nil || b.Kind == KEmpty {
		return a
	}
	return &Doc{Kind: KConcat, A: a, B: b}
}

func ConcatAll(ds ...*Doc) *Doc {
	out := Empty
	for _, d := range ds {
		out = Concat(out, d)
	}
	return out
}

func At(t *Tab, d *Doc) *Doc {
	return &Doc{Kind: KAt, Tab: t, Body: d}
}

func Cond(t *Tab, inactive, active *Doc) *Doc {
	return &Doc{Kind: KCond, Tab: t, Inactive: inactive, Active: active}
}

// NewTab allocates a fresh lowered tab under parent with the given style
// and passes it to f to build the scoped body (spec.md §4.7 "newTab(...,
// λt'. lower(d) with tabMap[tab := t'])").
func NewTab(reg *Registry, parent *Tab, style tab.Style, minIndent int, hasMinIndent bool, f func(*Tab) *Doc) *Doc {
	t := reg.New(parent, style, minIndent, hasMinIndent)
	return &Doc{Kind: KNewTab, Tab: t, Style: style, MinIndent: minIndent, HasMinIndent: hasMinIndent, Body: f(t)}
}

// Render lays doc out as text, choosing a column width of width. Every
// NewTab scope is resolved independently, Group-style (grounded on the
// flatten/union/fits shape of a Wadler printer, e.g. the reference
// pretty-printing package in the wider Go ecosystem): the body is first
// measured as if every nested tab stayed inactive; if that flat rendering
// fits in the remaining width and contains no unconditional newline, the
// tab stays inactive and its At/Cond sites render inline, otherwise the
// tab is marked active and every At/Cond referencing it breaks to a
// chosen column.
func Render(doc *Doc, width int) string {
	var buf strings.Builder
	r := &renderer{
		width:  width,
		active: map[*Tab]bool{Root: false},
		col:    map[*Tab]int{Root: 0},
	}
	r.render(&buf, doc, 0)
	return buf.String()
}

type renderer struct {
	width  int
	active map[*Tab]bool
	col    map[*Tab]int
}

func (r *renderer) render(buf *strings.Builder, d *Doc, col int) int {
	if d == nil {
		return col
	}
	switch d.Kind {
	case KEmpty:
		return col

	case KSpace:
		buf.WriteByte(' ')
		return col + 1

	case KNewline:
		buf.WriteByte('\n')
		return 0

	case KText:
		buf.WriteString(d.Text)
		return col + len(d.Text)

	case KConcat:
		col = r.render(buf, d.A, col)
		return r.render(buf, d.B, col)

	case KAt:
		if r.active[d.Tab] {
			target := r.col[d.Tab]
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", target))
			col = target
		}
		return r.render(buf, d.Body, col)

	case KCond:
		if r.active[d.Tab] {
			return r.render(buf, d.Active, col)
		}
		return r.render(buf, d.Inactive, col)

	case KNewTab:
		w, hard := flatWidth(d.Body, r.active)
		fits := !hard && col+w <= r.width
		r.active[d.Tab] = !fits
		if fits {
			r.col[d.Tab] = col
		} else {
			r.col[d.Tab] = breakColumn(d, col, r.col)
		}
		return r.render(buf, d.Body, col)

	default:
		return col
	}
}

// breakColumn picks the column a newly-active tab breaks to.
func breakColumn(d *Doc, col int, tabCol map[*Tab]int) int {
	switch d.Style {
	case tab.Indented, tab.RigidIndented:
		indent := 2
		if d.HasMinIndent {
			indent = d.MinIndent
		}
		parentCol := 0
		if d.Tab.Parent() != nil {
			parentCol = tabCol[d.Tab.Parent()]
		}
		return parentCol + indent
	default: // Inplace, RigidInplace
		return col
	}
}

// flatWidth measures d as if every tab not already decided active stayed
// inactive, returning the width and whether d contains an unconditional
// newline (which makes flat rendering impossible, forcing any enclosing
// tab to break).
func flatWidth(d *Doc, active map[*Tab]bool) (int, bool) {
	if d == nil {
		return 0, false
	}
	switch d.Kind {
	case KEmpty:
		return 0, false
	case KSpace:
		return 1, false
	case KNewline:
		return 0, true
	case KText:
		return len(d.Text), false
	case KConcat:
		w1, h1 := flatWidth(d.A, active)
		w2, h2 := flatWidth(d.B, active)
		return w1 + w2, h1 || h2
	case KAt:
		return flatWidth(d.Body, active)
	case KNewTab:
		return flatWidth(d.Body, active)
	case KCond:
		if active[d.Tab] {
			return flatWidth(d.Active, active)
		}
		return flatWidth(d.Inactive, active)
	default:
		return 0, false
	}
}
