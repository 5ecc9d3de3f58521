// Package flowanalysis implements component 4.3 of the pipeline: it
// propagates, for every token and text node, the set of tab anchors that
// determine its horizontal position. It runs twice in the fixed pass
// order (spec.md §5): once after annotate, once again after the comment
// weaver has introduced new At/Token nodes that also need flow sets.
package flowanalysis

import (
	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
	"github.com/phobologic/tabdoc/internal/tabset"
)

// ctx is the context-sensitive map of conditional states assumed while
// walking (spec.md §4.3 "ctx: Tab -> {Active,Inactive}"). Absence means
// unknown. It is cloned, never mutated in place, on each refinement so
// sibling branches don't see each other's assumptions.
type ctx map[*tab.Tab]bool

func (c ctx) with(t *tab.Tab, active bool) ctx {
	out := make(ctx, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[t] = active
	return out
}

// unionFlow is flow-value union, with None (nil) as identity.
func unionFlow(a, b *tabset.Set) *tabset.Set {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return tabset.Union(a, b)
}

// analyzer carries a side table, keyed by DocVar, accumulating the flow
// observed at every Var(v) occurrence across the whole tree (spec.md §9:
// "every pass carries a side table keyed by DocVar id"). Keying by the
// DocVar itself rather than tracking a single "current" target means
// nested LetDocs need no save/restore: a Var(v) occurrence found while
// walking the body of a different, more deeply nested LetDoc still
// accumulates into v's own entry.
type analyzer struct {
	accum map[*docir.DocVar]*tabset.Set
}

// Analyze runs the flow analyzer over n with the initial input flow
// Some({Root}) (spec.md §4.3 "Initial input flow is Some({Root})").
func Analyze(n *anndoc.Node) *anndoc.Node {
	a := &analyzer{accum: make(map[*docir.DocVar]*tabset.Set)}
	out, _ := a.walk(n, tabset.New(tab.Root), ctx{})
	return out
}

func (a *analyzer) walk(n *anndoc.Node, flowIn *tabset.Set, c ctx) (*anndoc.Node, *tabset.Set) {
	if n == nil {
		return anndoc.Empty, flowIn
	}
	switch n.Kind {
	case anndoc.KEmpty, anndoc.KSpace, anndoc.KNoSpace, anndoc.KNewline:
		return n, flowIn

	case anndoc.KToken:
		return anndoc.TokenNodeWithFlow(n.Tok, flowIn), nil

	case anndoc.KText:
		return anndoc.TextNodeWithFlow(n.Text, flowIn), nil

	case anndoc.KConcat:
		an, flow1 := a.walk(n.A, flowIn, c)
		bn, flow2 := a.walk(n.B, flow1, c)
		return anndoc.Concat(an, bn), flow2

	case anndoc.KAt:
		bodyFlow := unionFlow(flowIn, tabset.New(n.Tab))
		body, _ := a.walk(n.Body, bodyFlow, c)
		return anndoc.At(n.Tab, n.MightBeFirst, body), nil

	case anndoc.KNewTab:
		body, flowOut := a.walk(n.Body, flowIn, c)
		return anndoc.NewTab(n.Tab, n.Style, n.MinIndent, n.HasMinIndent, body), flowOut

	case anndoc.KCond:
		if active, known := c[n.Tab]; known {
			if active {
				activeN, flowOut := a.walk(n.Active, flowIn, c)
				inactiveN, _ := a.walk(n.Inactive, flowIn, c)
				return anndoc.Cond(n.Tab, inactiveN, activeN), flowOut
			}
			inactiveN, flowOut := a.walk(n.Inactive, flowIn, c)
			activeN, _ := a.walk(n.Active, flowIn, c)
			return anndoc.Cond(n.Tab, inactiveN, activeN), flowOut
		}
		inactiveN, flowInactive := a.walk(n.Inactive, flowIn, c.with(n.Tab, false))
		activeN, flowActive := a.walk(n.Active, flowIn, c.with(n.Tab, true))
		return anndoc.Cond(n.Tab, inactiveN, activeN), unionFlow(flowInactive, flowActive)

	case anndoc.KLetDoc:
		a.accum[n.Var] = tabset.Empty()

		body, bodyFlowOut := a.walk(n.Body, flowIn, c)
		accumulated := a.accum[n.Var]

		bound, _ := a.walk(n.Bound, accumulated, ctx{})
		return anndoc.LetDoc(n.Var, bound, body), bodyFlowOut

	case anndoc.KVar:
		a.accum[n.Var] = unionFlow(a.accum[n.Var], flowIn)
		return n, nil

	default:
		return n, flowIn
	}
}
