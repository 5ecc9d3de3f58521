// Package blankline implements the blank-line inserter (spec.md §4.6): it
// reconstructs up to two blank lines between a token and the nearest
// preceding non-whitespace token in the original source, guarded by a
// conditional newline anchored to the token's flow tab so the blank line
// only appears when that tab actually breaks.
package blankline

import (
	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
)

// Insert rewrites n, inserting conditional blank-line newlines before
// tokens that carry a flow set and whose source line differs from the
// preceding non-whitespace token's by more than one.
func Insert(n *anndoc.Node, toks docir.Tokens) *anndoc.Node {
	b := &inserter{toks: toks}
	return b.walk(n)
}

type inserter struct {
	toks docir.Tokens
}

func (b *inserter) walk(n *anndoc.Node) *anndoc.Node {
	if n == nil {
		return anndoc.Empty
	}
	switch n.Kind {
	case anndoc.KToken:
		return b.blankLinesBefore(n)

	case anndoc.KConcat:
		return anndoc.Concat(b.walk(n.A), b.walk(n.B))

	case anndoc.KAt:
		return anndoc.At(n.Tab, n.MightBeFirst, b.walk(n.Body))

	case anndoc.KNewTab:
		return anndoc.NewTab(n.Tab, n.Style, n.MinIndent, n.HasMinIndent, b.walk(n.Body))

	case anndoc.KCond:
		return anndoc.Cond(n.Tab, b.walk(n.Inactive), b.walk(n.Active))

	case anndoc.KLetDoc:
		return anndoc.LetDoc(n.Var, b.walk(n.Bound), b.walk(n.Body))

	default:
		return n
	}
}

func (b *inserter) blankLinesBefore(n *anndoc.Node) *anndoc.Node {
	if n.Flow == nil {
		return n
	}
	tab, ok := n.Flow.First()
	if !ok {
		return n
	}
	prev, ok := b.prevNonWhitespace(n.Tok)
	if !ok {
		return n
	}
	diff := clamp(b.toks.LineOf(n.Tok)-b.toks.LineOf(prev)-1, 0, 2)
	if diff == 0 {
		return n
	}
	prefix := anndoc.Empty
	for i := 0; i < diff; i++ {
		prefix = anndoc.Concat(prefix, anndoc.Cond(tab, anndoc.Empty, anndoc.NewlineNode()))
	}
	return anndoc.Concat(prefix, n)
}

func (b *inserter) prevNonWhitespace(tok docir.Token) (docir.Token, bool) {
	cur := tok
	for {
		p, ok := b.toks.PrevToken(cur)
		if !ok {
			return nil, false
		}
		if !b.toks.IsWhitespace(p) {
			return p, true
		}
		cur = p
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
