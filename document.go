// Package tabdoc is a tabbed token pretty-printer: given a declarative
// document tree describing how tokens from a parsed source file should
// be laid out relative to dynamic indentation anchors ("tabs"), it
// produces a lower-level string document whose layout decisions can
// later be rendered to text (spec.md §1).
//
// The public surface is this package: the document-construction API, the
// Token/Source/Tokens collaborator interfaces, Options, and the
// ToStringDoc entry point. The passes themselves live under internal/,
// one package per component.
package tabdoc

import (
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
)

// Doc is a node of the input document algebra (spec.md §3).
type Doc = docir.Doc

// DocVar names a sub-document shared between multiple use sites.
type DocVar = docir.DocVar

// Token, Source, Tokens and Highlighter are the external collaborator
// interfaces a caller must implement over its own parsed source (spec.md
// §6). They are defined in internal/docir and aliased here so callers
// never need to import an internal package.
type Token = docir.Token
type Source = docir.Source
type Tokens = docir.Tokens
type Highlighter = docir.Highlighter

// Tab is a dynamic indentation anchor (spec.md §3 "Tab").
type Tab = tab.Tab

// Style controls a tab's layout behavior.
type Style = tab.Style

const (
	Inplace       = tab.Inplace
	Indented      = tab.Indented
	RigidInplace  = tab.RigidInplace
	RigidIndented = tab.RigidIndented
)

// Root is the sentinel tab every top-level document is anchored to.
var Root = tab.Root

// Empty is the empty document; Concat absorbs it on either side.
var Empty = docir.Empty

// Space is a mandatory space.
var Space = docir.Space

// NoSpace is an explicit anti-space, suppressing an otherwise-inserted
// space at this position.
var NoSpace = docir.NoSpace

// TokenDoc wraps a source token.
func TokenDoc(t Token) *Doc { return docir.TokenDoc(t) }

// TextDoc wraps a literal string fragment that is not a source token.
func TextDoc(s string) *Doc { return docir.TextDoc(s) }

// Concat sequences a then b, absorbing Empty on either side.
func Concat(a, b *Doc) *Doc { return docir.Concat(a, b) }

// ConcatAll concatenates ds in order, left to right.
func ConcatAll(ds ...*Doc) *Doc { return docir.ConcatAll(ds...) }

// At requests that d be laid out beginning at the column tab is assigned.
func At(t *Tab, d *Doc) *Doc { return docir.At(t, d) }

// Cond branches layout on whether tab becomes active.
func Cond(t *Tab, inactive, active *Doc) *Doc { return docir.Cond(t, inactive, active) }

// Var references a DocVar bound by an enclosing LetDoc.
func Var(v *DocVar) *Doc { return docir.Var(v) }

// Builder owns the monotonic tab-id and doc-var-id counters for one
// document-building session (spec.md §4.1 "side effects"; §5 "per-engine
// counter supports reentrant use"). Building several documents
// concurrently should use one Builder per document.
type Builder struct {
	tabs *tab.Registry
	vars *docir.VarRegistry
}

// NewBuilder creates a Builder with fresh counters.
func NewBuilder() *Builder {
	return &Builder{tabs: tab.NewRegistry(), vars: docir.NewVarRegistry()}
}

// NewTabDoc allocates a fresh tab under parent with the given style,
// passes it to f to build the scoped body, and returns the document node
// that introduces it (spec.md §4.1 "new_tab_with_style").
func (b *Builder) NewTabDoc(parent *Tab, style Style, f func(*Tab) *Doc) *Doc {
	return docir.NewTabWithStyle(b.tabs, parent, style, f)
}

// NewTabIndentedDoc is NewTabDoc for Indented/RigidIndented styles that
// carry a minimum indent.
func (b *Builder) NewTabIndentedDoc(parent *Tab, style Style, minIndent int, f func(*Tab) *Doc) *Doc {
	return docir.NewTabIndented(b.tabs, parent, style, minIndent, f)
}

// LetDoc allocates a fresh DocVar, applies f to obtain the body, and
// binds d to that var for the body's scope (spec.md §4.1 "letdoc").
func (b *Builder) LetDoc(d *Doc, f func(*DocVar) *Doc) *Doc {
	return docir.LetDoc(b.vars, d, f)
}
