// Package annotate implements the first pass of the pipeline (spec.md
// §4.2): it walks the input document and lifts it to the working IR,
// marking each At node with whether it might be the first break onto its
// tab. This pass is purely rewriting; it cannot fail.
package annotate

import (
	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tabset"
)

// varInfo records, per DocVar, the broken-set produced by analyzing its
// bound document with an empty incoming broken-set (spec.md §4.2
// "analyze d with an empty broken-set, recording the broken-set it
// produces"), plus the annotated node once it is built.
type varInfo struct {
	broken *tabset.Set
	node   *anndoc.Node
}

// annotator carries the per-DocVar side table across the whole walk: each
// LetDoc's bound document is analyzed once, before its body, and every
// Var site reads the broken-set recorded for it.
type annotator struct {
	vars map[*docir.DocVar]*varInfo
}

// Annotate lifts d to the working IR, per spec.md §4.2.
func Annotate(d *docir.Doc) *anndoc.Node {
	a := &annotator{vars: make(map[*docir.DocVar]*varInfo)}
	node, _ := a.walk(d, tabset.Empty())
	return node
}

// walk returns the annotated node and the outgoing broken-set.
func (a *annotator) walk(d *docir.Doc, broken *tabset.Set) (*anndoc.Node, *tabset.Set) {
	if d == nil {
		return anndoc.Empty, broken
	}
	switch d.Kind {
	case docir.KEmpty:
		return anndoc.Empty, broken
	case docir.KSpace:
		return anndoc.SpaceNode(), broken
	case docir.KNoSpace:
		return anndoc.NoSpaceNode(), broken
	case docir.KToken:
		return anndoc.TokenNode(d.Tok), broken
	case docir.KText:
		return anndoc.TextNode(d.Text), broken

	case docir.KConcat:
		an, broken1 := a.walk(d.A, broken)
		bn, broken2 := a.walk(d.B, broken1)
		return anndoc.Concat(an, bn), broken2

	case docir.KAt:
		mightBeFirst := !broken.Contains(d.Tab)
		inBroken := broken
		if mightBeFirst {
			inBroken = broken.Add(d.Tab)
		}
		body, bodyBroken := a.walk(d.Body, inBroken)
		return anndoc.At(d.Tab, mightBeFirst, body), bodyBroken

	case docir.KNewTab:
		body, bodyBroken := a.walk(d.Body, broken)
		return anndoc.NewTab(d.Tab, d.Style, d.MinIndent, d.HasMinIndent, body), bodyBroken

	case docir.KCond:
		inactive, brokenInactive := a.walk(d.Inactive, broken)
		active, brokenActive := a.walk(d.Active, broken)
		return anndoc.Cond(d.Tab, inactive, active), tabset.Intersect(brokenInactive, brokenActive)

	case docir.KLetDoc:
		boundNode, boundBroken := a.walk(d.Bound, tabset.Empty())
		a.vars[d.Var] = &varInfo{broken: boundBroken, node: boundNode}
		body, bodyBroken := a.walk(d.Body, broken)
		return anndoc.LetDoc(d.Var, a.vars[d.Var].node, body), bodyBroken

	case docir.KVar:
		info := a.vars[d.Var]
		if info == nil {
			// An unbound Var is a structural-invariant violation
			// (spec.md §7); the annotator itself cannot fail, so this
			// surfaces downstream as a nil Bound lookup during lowering.
			return anndoc.VarNode(d.Var), broken
		}
		return anndoc.VarNode(d.Var), tabset.Union(broken, info.broken)

	default:
		return anndoc.Empty, broken
	}
}
