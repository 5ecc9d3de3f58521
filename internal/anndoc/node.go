// Package anndoc is the working document representation shared by every
// pass after the input tree is first annotated: annotate, flowanalysis,
// weave, spacing and blankline all read and rewrite this same Node type
// (spec.md §4.2–§4.6), before lower translates it to internal/layout.
package anndoc

import (
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
	"github.com/phobologic/tabdoc/internal/tabset"
)

// Kind tags the variant of a Node.
type Kind int

const (
	KEmpty Kind = iota
	KSpace
	KNoSpace
	KNewline // introduced by the blank-line inserter (spec.md §4.6)
	KToken
	KText
	KConcat
	KAt
	KNewTab
	KCond
	KLetDoc
	KVar
)

// Node is the annotated/working IR, a single kind-tagged struct per
// spec.md §9's guidance for languages without a closed sum type. Every
// pass from annotate onward reads and produces this same type; each pass
// adds or consumes the fields relevant to its own analysis (Flow is set
// by flowanalysis, MightBeFirst by annotate, and so on).
type Node struct {
	Kind Kind

	Tok  docir.Token // KToken
	Text string      // KText

	// Flow is the flow-analysis result attached to this node (spec.md §4.3):
	// nil means "None" (unattributed: no tab anchor determines this
	// piece's position, e.g. an earlier piece already consumed the flow),
	// non-nil means "Some(set)" — the piece sits at one of the tabs in set.
	Flow *tabset.Set

	A, B *Node // KConcat

	Tab          *tab.Tab // KAt, KCond, KNewTab
	MightBeFirst bool     // KAt: true if this may be the first content at Tab
	Body         *Node    // KAt, KNewTab

	Style        tab.Style // KNewTab
	MinIndent    int       // KNewTab, when HasMinIndent
	HasMinIndent bool      // KNewTab

	Inactive, Active *Node // KCond

	Var   *docir.DocVar // KLetDoc, KVar
	Bound *Node         // KLetDoc
}

// Empty is the empty node; Concat absorbs it on either side.
var Empty = &Node{Kind: KEmpty}

// SpaceNode is a mandatory space.
func SpaceNode() *Node { return &Node{Kind: KSpace} }

// NoSpaceNode is an explicit anti-space.
func NoSpaceNode() *Node { return &Node{Kind: KNoSpace} }

// NewlineNode is a hard line break, only ever introduced by blankline
// (spec.md §4.6); no earlier pass produces one.
func NewlineNode() *Node { return &Node{Kind: KNewline} }

// TokenNode wraps a source token with no flow information yet attached.
func TokenNode(t docir.Token) *Node { return &Node{Kind: KToken, Tok: t} }

// TokenNodeWithFlow wraps a source token together with its flow set.
func TokenNodeWithFlow(t docir.Token, flow *tabset.Set) *Node {
	return &Node{Kind: KToken, Tok: t, Flow: flow}
}

// TextNode wraps a literal fragment with no flow information yet attached.
func TextNode(s string) *Node {
	if s == "" {
		return Empty
	}
	return &Node{Kind: KText, Text: s}
}

// TextNodeWithFlow wraps a literal fragment together with its flow set.
func TextNodeWithFlow(s string, flow *tabset.Set) *Node {
	if s == "" {
		return Empty
	}
	return &Node{Kind: KText, Text: s, Flow: flow}
}

// Concat sequences a then b, absorbing Empty on either side (mirrors
// docir.Concat so later passes never need to special-case Empty siblings).
func Concat(a, b *Node) *Node {
	if a == nil || a.Kind == KEmpty {
		return b
	}
	if b == nil || b.Kind == KEmpty {
		return a
	}
	return &Node{Kind: KConcat, A: a, B: b}
}

// ConcatAll concatenates ns in order, left to right.
func ConcatAll(ns ...*Node) *Node {
	out := Empty
	for _, n := range ns {
		out = Concat(out, n)
	}
	return out
}

// At builds an At node, optionally marking it as possibly the first
// content ever laid out at t (annotate's job, spec.md §4.2).
func At(t *tab.Tab, mightBeFirst bool, body *Node) *Node {
	return &Node{Kind: KAt, Tab: t, MightBeFirst: mightBeFirst, Body: body}
}

// NewTab carries a tab's introduction into the working IR.
func NewTab(t *tab.Tab, style tab.Style, minIndent int, hasMinIndent bool, body *Node) *Node {
	return &Node{Kind: KNewTab, Tab: t, Style: style, MinIndent: minIndent, HasMinIndent: hasMinIndent, Body: body}
}

// Cond builds a conditional node.
func Cond(t *tab.Tab, inactive, active *Node) *Node {
	return &Node{Kind: KCond, Tab: t, Inactive: inactive, Active: active}
}

// LetDoc builds a let-binding node.
func LetDoc(v *docir.DocVar, bound, body *Node) *Node {
	return &Node{Kind: KLetDoc, Var: v, Bound: bound, Body: body}
}

// VarNode references a DocVar bound by an enclosing LetDoc.
func VarNode(v *docir.DocVar) *Node {
	return &Node{Kind: KVar, Var: v}
}
