// Package weave implements the comment weaver (spec.md §4.4): for each
// annotated token, it splices in the token's leading and, if it is the
// last non-comment token in the source, trailing comments as siblings,
// with the trailing comments re-anchored to the token's flow tab so they
// break onto the same indentation. The result needs a fresh flow-analysis pass to pick up
// flow sets on the nodes this pass introduces (spec.md §5 ordering).
package weave

import (
	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
)

// Weave rewrites n, splicing comments around each token using toks to
// look up leading/trailing comments.
func Weave(n *anndoc.Node, toks docir.Tokens) *anndoc.Node {
	w := &weaver{toks: toks}
	return w.walk(n)
}

type weaver struct {
	toks docir.Tokens
}

func (w *weaver) walk(n *anndoc.Node) *anndoc.Node {
	if n == nil {
		return anndoc.Empty
	}
	switch n.Kind {
	case anndoc.KToken:
		return w.weaveToken(n)

	case anndoc.KConcat:
		return anndoc.Concat(w.walk(n.A), w.walk(n.B))

	case anndoc.KAt:
		return anndoc.At(n.Tab, n.MightBeFirst, w.walk(n.Body))

	case anndoc.KNewTab:
		return anndoc.NewTab(n.Tab, n.Style, n.MinIndent, n.HasMinIndent, w.walk(n.Body))

	case anndoc.KCond:
		return anndoc.Cond(n.Tab, w.walk(n.Inactive), w.walk(n.Active))

	case anndoc.KLetDoc:
		return anndoc.LetDoc(n.Var, w.walk(n.Bound), w.walk(n.Body))

	default:
		// Empty, Space, NoSpace, Newline, Text, Var carry no comments.
		return n
	}
}

// weaveToken implements spec.md §4.4. Each comment becomes a token node
// with flow = None (anndoc.TokenNode, unattached). Comments before tok
// are placed before it without rewrapping, relying on tok's own At
// context; this matches concrete scenario S6, where c1 and c2 precede
// the original token as plain siblings even though the token itself
// carries a flow set. The token itself also stays a plain sibling; only
// the trailing comments, if any, are wrapped together in one fresh At
// anchored to the token's representative flow tab.
func (w *weaver) weaveToken(n *anndoc.Node) *anndoc.Node {
	before := w.toks.CommentsBefore(n.Tok)
	var after []docir.Token
	if _, hasNext := w.toks.NextTokenNotCommentOrWhitespace(n.Tok); !hasNext {
		after = w.toks.CommentsAfter(n.Tok)
	}

	beforeNodes := make([]*anndoc.Node, 0, len(before))
	for _, c := range before {
		beforeNodes = append(beforeNodes, anndoc.TokenNode(c))
	}

	if n.Flow == nil {
		// Unattributed token: concatenate commentsBefore ++ [orig] ++
		// commentsAfter as plain siblings (spec.md §4.4).
		afterNodes := make([]*anndoc.Node, 0, len(after))
		for _, c := range after {
			afterNodes = append(afterNodes, anndoc.TokenNode(c))
		}
		out := anndoc.ConcatAll(beforeNodes...)
		out = anndoc.Concat(out, n)
		out = anndoc.Concat(out, anndoc.ConcatAll(afterNodes...))
		return out
	}

	tab, ok := n.Flow.First()
	if !ok {
		// Empty but non-nil flow set: treat as unattributed.
		afterNodes := make([]*anndoc.Node, 0, len(after))
		for _, c := range after {
			afterNodes = append(afterNodes, anndoc.TokenNode(c))
		}
		out := anndoc.ConcatAll(beforeNodes...)
		out = anndoc.Concat(out, n)
		return anndoc.Concat(out, anndoc.ConcatAll(afterNodes...))
	}

	var afterWrapped *anndoc.Node = anndoc.Empty
	if len(after) > 0 {
		afterNodes := make([]*anndoc.Node, 0, len(after))
		for _, c := range after {
			afterNodes = append(afterNodes, anndoc.TokenNode(c))
		}
		afterWrapped = anndoc.At(tab, false, anndoc.ConcatAll(afterNodes...))
	}

	out := anndoc.ConcatAll(beforeNodes...)
	out = anndoc.Concat(out, n)
	return anndoc.Concat(out, afterWrapped)
}
