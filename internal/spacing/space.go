// Package spacing implements the space ensurer (spec.md §4.5): it
// guarantees that no two adjacent visible pieces needing separation are
// emitted without an intervening space, by computing a conservative
// edge-kind classification for every subtree under a conditional context
// and then rewriting the tree to insert explicit spaces where the edges
// demand it.
package spacing

import (
	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
)

// edgeKind classifies whether a node's left or right edge is guaranteed
// to emit whitespace, might emit non-whitespace, or contributes nothing
// (spec.md §3 "Edge kind").
type edgeKind int

const (
	edgeNone edgeKind = iota
	edgeSpacey
	edgeMaybeNotSpacey
)

// ctx mirrors flowanalysis.ctx: the conditional states assumed while
// walking. Edge computation and rewriting both need it independently, so
// it is redefined here rather than shared, to keep the packages
// decoupled (neither imports the other).
type ctx map[*tab.Tab]bool

func (c ctx) with(t *tab.Tab, active bool) ctx {
	out := make(ctx, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[t] = active
	return out
}

func combine(a, b edgeKind) edgeKind {
	if a == edgeMaybeNotSpacey || b == edgeMaybeNotSpacey {
		return edgeMaybeNotSpacey
	}
	if a == edgeSpacey && b == edgeSpacey {
		return edgeSpacey
	}
	return edgeNone
}

// EnsureSpaces rewrites n so that no two adjacent MaybeNotSpacey edges
// ever abut without an intervening space (spec.md §4.5).
func EnsureSpaces(n *anndoc.Node) *anndoc.Node {
	s := &spacer{
		edges:   make(map[*docir.DocVar][2]edgeKind),
		needAcc: make(map[*docir.DocVar]*[2]bool),
	}
	s.computeEdges(n, ctx{})
	return s.rewrite(n, false, false, ctx{})
}

type spacer struct {
	edges   map[*docir.DocVar][2]edgeKind
	needAcc map[*docir.DocVar]*[2]bool
}

// computeEdges returns (left, right) for n under c, populating s.edges
// for any LetDoc encountered along the way.
func (s *spacer) computeEdges(n *anndoc.Node, c ctx) (edgeKind, edgeKind) {
	if n == nil {
		return edgeNone, edgeNone
	}
	switch n.Kind {
	case anndoc.KNewline, anndoc.KSpace, anndoc.KNoSpace:
		return edgeSpacey, edgeSpacey

	case anndoc.KToken, anndoc.KText:
		return edgeMaybeNotSpacey, edgeMaybeNotSpacey

	case anndoc.KEmpty:
		return edgeNone, edgeNone

	case anndoc.KConcat:
		aLeft, aRight := s.computeEdges(n.A, c)
		bLeft, bRight := s.computeEdges(n.B, c)
		left := aLeft
		if left == edgeNone {
			left = bLeft
		}
		right := bRight
		if right == edgeNone {
			right = aRight
		}
		return left, right

	case anndoc.KAt:
		dLeft, dRight := s.computeEdges(n.Body, c)
		atEdge := dLeft
		if active, known := c[n.Tab]; known && active {
			if n.MightBeFirst {
				atEdge = edgeNone
			} else {
				atEdge = edgeSpacey
			}
		}
		right := dRight
		if right == edgeNone {
			right = atEdge
		}
		return atEdge, right

	case anndoc.KNewTab:
		return s.computeEdges(n.Body, c)

	case anndoc.KCond:
		if active, known := c[n.Tab]; known {
			if active {
				return s.computeEdges(n.Active, c)
			}
			return s.computeEdges(n.Inactive, c)
		}
		iLeft, iRight := s.computeEdges(n.Inactive, c.with(n.Tab, false))
		aLeft, aRight := s.computeEdges(n.Active, c.with(n.Tab, true))
		return combine(iLeft, aLeft), combine(iRight, aRight)

	case anndoc.KLetDoc:
		s.edges[n.Var] = [2]edgeKind{edgeNone, edgeNone}
		left, right := s.computeEdges(n.Body, c)
		// d's own edges, computed once, under a fresh context: they
		// depend on d's own shape, not the usage site (mirrors
		// flowanalysis's and annotate's fresh-context revisit).
		bl, br := s.computeEdges(n.Bound, ctx{})
		s.edges[n.Var] = [2]edgeKind{bl, br}
		return left, right

	case anndoc.KVar:
		e := s.edges[n.Var]
		return e[0], e[1]

	default:
		return edgeNone, edgeNone
	}
}

func annSpace() *anndoc.Node { return anndoc.SpaceNode() }

// rewrite inserts explicit spaces into n so that needBefore/needAfter are
// satisfied, per spec.md §4.5.
func (s *spacer) rewrite(n *anndoc.Node, needBefore, needAfter bool, c ctx) *anndoc.Node {
	if n == nil {
		if needBefore || needAfter {
			return annSpace()
		}
		return anndoc.Empty
	}
	switch n.Kind {
	case anndoc.KEmpty:
		if needBefore || needAfter {
			return annSpace()
		}
		return anndoc.Empty

	case anndoc.KNewline, anndoc.KSpace, anndoc.KNoSpace:
		return n

	case anndoc.KToken, anndoc.KText:
		out := n
		if needBefore {
			out = anndoc.Concat(annSpace(), out)
		}
		if needAfter {
			out = anndoc.Concat(out, annSpace())
		}
		return out

	case anndoc.KConcat:
		aRewritten := s.rewrite(n.A, needBefore, false, c)
		_, aRight := s.computeEdges(n.A, c)
		bNeedBefore := aRight == edgeMaybeNotSpacey
		bRewritten := s.rewrite(n.B, bNeedBefore, needAfter, c)
		return anndoc.Concat(aRewritten, bRewritten)

	case anndoc.KAt:
		suppressed := false
		if active, known := c[n.Tab]; known && active && !n.MightBeFirst {
			suppressed = true
		}
		effectiveNeedBefore := needBefore && !suppressed
		body := s.rewrite(n.Body, false, needAfter, c)
		result := anndoc.At(n.Tab, n.MightBeFirst, body)
		if effectiveNeedBefore {
			result = anndoc.Concat(annSpace(), result)
		}
		return result

	case anndoc.KNewTab:
		body := s.rewrite(n.Body, needBefore, needAfter, c)
		return anndoc.NewTab(n.Tab, n.Style, n.MinIndent, n.HasMinIndent, body)

	case anndoc.KCond:
		inactive := s.rewrite(n.Inactive, needBefore, needAfter, c.with(n.Tab, false))
		active := s.rewrite(n.Active, needBefore, needAfter, c.with(n.Tab, true))
		return anndoc.Cond(n.Tab, inactive, active)

	case anndoc.KLetDoc:
		s.needAcc[n.Var] = &[2]bool{}
		body := s.rewrite(n.Body, needBefore, needAfter, c)
		acc := s.needAcc[n.Var]
		bound := s.rewrite(n.Bound, acc[0], acc[1], ctx{})
		return anndoc.LetDoc(n.Var, bound, body)

	case anndoc.KVar:
		acc := s.needAcc[n.Var]
		if acc != nil {
			if needBefore {
				acc[0] = true
			}
			if needAfter {
				acc[1] = true
			}
		}
		return n

	default:
		return n
	}
}
