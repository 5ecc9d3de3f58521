// Package lower implements component 4.7: translating the fully
// annotated document (after flow-analysis, weaving, spacing and
// blank-line insertion) to the downstream string-document algebra in
// internal/layout.
package lower

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/layout"
	"github.com/phobologic/tabdoc/internal/tab"
)

// ErrUnknownTab is returned when an At/Cond/NewTab node references a tab
// never introduced in scope — a structural-invariant violation (spec.md
// §7: "Lookups in the tab map during lowering that miss indicate such a
// bug").
var ErrUnknownTab = errors.New("lower: reference to a tab never introduced in this scope")

// ErrUnboundVar is returned when a Var(v) has no enclosing LetDoc.
var ErrUnboundVar = errors.New("lower: reference to an unbound doc variable")

// Options configures lowering (spec.md §6 "toStringDoc({tabWidth, debug}, doc)").
type Options struct {
	TabWidth int
	Debug    bool
}

// Lower translates n to a layout.Doc, using hl to render and strip
// source text for tokens.
func Lower(n *anndoc.Node, opts Options, hl docir.Highlighter) (*layout.Doc, error) {
	if opts.TabWidth < 1 {
		opts.TabWidth = 1
	}
	l := &lowerer{
		reg:    layout.NewRegistry(),
		tabMap: map[*tab.Tab]*layout.Tab{tab.Root: layout.Root},
		vars:   map[*docir.DocVar]*anndoc.Node{},
		opts:   opts,
		hl:     hl,
	}
	return l.lower(n, tab.Root)
}

type lowerer struct {
	reg    *layout.Registry
	tabMap map[*tab.Tab]*layout.Tab
	vars   map[*docir.DocVar]*anndoc.Node
	opts   Options
	hl     docir.Highlighter
}

func (l *lowerer) lower(n *anndoc.Node, currentTab *tab.Tab) (*layout.Doc, error) {
	if n == nil {
		return layout.Empty, nil
	}
	switch n.Kind {
	case anndoc.KEmpty, anndoc.KNoSpace:
		return layout.Empty, nil

	case anndoc.KNewline:
		return layout.Newline, nil

	case anndoc.KSpace:
		return layout.Space, nil

	case anndoc.KText:
		return layout.Text(n.Text), nil

	case anndoc.KConcat:
		a, err := l.lower(n.A, currentTab)
		if err != nil {
			return nil, err
		}
		b, err := l.lower(n.B, currentTab)
		if err != nil {
			return nil, err
		}
		return layout.Concat(a, b), nil

	case anndoc.KToken:
		return l.lowerToken(n, currentTab)

	case anndoc.KAt:
		lt, ok := l.tabMap[n.Tab]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTab, n.Tab)
		}
		body, err := l.lower(n.Body, n.Tab)
		if err != nil {
			return nil, err
		}
		return layout.At(lt, body), nil

	case anndoc.KCond:
		lt, ok := l.tabMap[n.Tab]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTab, n.Tab)
		}
		inactive, err := l.lower(n.Inactive, currentTab)
		if err != nil {
			return nil, err
		}
		active, err := l.lower(n.Active, currentTab)
		if err != nil {
			return nil, err
		}
		return layout.Cond(lt, inactive, active), nil

	case anndoc.KNewTab:
		parentLowered, ok := l.tabMap[n.Tab.Parent()]
		if !ok {
			return nil, fmt.Errorf("%w: parent of %s", ErrUnknownTab, n.Tab)
		}
		var bodyErr error
		out := layout.NewTab(l.reg, parentLowered, n.Style, n.MinIndent, n.HasMinIndent, func(lt *layout.Tab) *layout.Doc {
			l.tabMap[n.Tab] = lt
			body, err := l.lower(n.Body, currentTab)
			if err != nil {
				bodyErr = err
				return layout.Empty
			}
			return body
		})
		if bodyErr != nil {
			return nil, bodyErr
		}
		return out, nil

	case anndoc.KLetDoc:
		// Inlining by substitution: the lowered algebra has no
		// let/var construct (spec.md §4.7, §9), so the binding itself
		// produces no node; each Var(v) site below re-lowers Bound
		// independently.
		l.vars[n.Var] = n.Bound
		return l.lower(n.Body, currentTab)

	case anndoc.KVar:
		bound, ok := l.vars[n.Var]
		if !ok {
			return nil, ErrUnboundVar
		}
		return l.lower(bound, currentTab)

	default:
		return layout.Empty, nil
	}
}

// lowerToken implements spec.md §4.7's AnnToken case: pick the token's
// tab, highlight and strip its source, and emit either a single text
// piece or, for a multi-line span, a fresh rigid sub-tab holding the first
// line as plain text and one At per continuation line.
func (l *lowerer) lowerToken(n *anndoc.Node, currentTab *tab.Tab) (*layout.Doc, error) {
	effectiveTab := currentTab
	if n.Flow != nil {
		if t, ok := n.Flow.First(); ok {
			effectiveTab = t
		}
	}
	lt, ok := l.tabMap[effectiveTab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, effectiveTab)
	}

	src := n.Tok.Source()
	_, col := src.AbsoluteStart()
	removeAtMost := col - 1
	if removeAtMost < 0 {
		removeAtMost = 0
	}

	highlighted := l.hl.Highlight(n.Tok)
	lines := strings.Split(highlighted, "\n")
	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = l.hl.StripEffectiveWhitespace(l.opts.TabWidth, removeAtMost, line)
	}

	if len(stripped) == 1 {
		return layout.Text(stripped[0]), nil
	}

	parent := lt
	out := layout.NewTab(l.reg, parent, tab.RigidInplace, 0, false, func(rigid *layout.Tab) *layout.Doc {
		pieces := make([]*layout.Doc, 0, len(stripped))
		pieces = append(pieces, layout.Text(stripped[0]))
		for _, line := range stripped[1:] {
			pieces = append(pieces, layout.At(rigid, layout.Text(line)))
		}
		return layout.ConcatAll(pieces...)
	})
	return out, nil
}
