package tabdoc

import (
	"errors"
	"fmt"
	"os"

	"github.com/phobologic/tabdoc/internal/annotate"
	"github.com/phobologic/tabdoc/internal/blankline"
	"github.com/phobologic/tabdoc/internal/flowanalysis"
	"github.com/phobologic/tabdoc/internal/layout"
	"github.com/phobologic/tabdoc/internal/lower"
	"github.com/phobologic/tabdoc/internal/spacing"
	"github.com/phobologic/tabdoc/internal/weave"
)

// LoweredDoc is the output of the pipeline: a single lowered string-
// document value (spec.md §6 "Output").
type LoweredDoc = layout.Doc

// Render lays out a LoweredDoc as text at the given column width. It is
// the reference implementation of the "lower-level string-document
// layout engine" spec.md treats as an external collaborator and out of
// scope for the core's own design.
func Render(d *LoweredDoc, width int) string {
	return layout.Render(d, width)
}

// ToStringDoc runs the full pipeline in its fixed order (spec.md §5):
// annotate, flow-analyze, weave comments, flow-analyze again, ensure
// spaces, insert blank lines, lower. toks and hl are the token-stream and
// highlighting collaborators (spec.md §6); doc is the input document a
// Builder produced.
//
// opts.Debug enables tracing to standard error; it never changes the
// returned document.
func ToStringDoc(opts Options, doc *Doc, toks Tokens, hl Highlighter) (*LoweredDoc, error) {
	opts = opts.applyDefaults()

	tracef(opts, "annotate")
	n := annotate.Annotate(doc)

	tracef(opts, "flow-analyze (pre-weave)")
	n = flowanalysis.Analyze(n)

	tracef(opts, "weave comments")
	n = weave.Weave(n, toks)

	tracef(opts, "flow-analyze (post-weave)")
	n = flowanalysis.Analyze(n)

	tracef(opts, "ensure spaces")
	n = spacing.EnsureSpaces(n)

	tracef(opts, "insert blank lines")
	n = blankline.Insert(n, toks)

	tracef(opts, "lower")
	lowered, err := lower.Lower(n, lower.Options{TabWidth: opts.TabWidth, Debug: opts.Debug}, hl)
	if err != nil {
		return nil, fmt.Errorf("lowering: %w", asInvariantError(err))
	}
	return lowered, nil
}

// asInvariantError recovers the public InvariantError kind from an
// internal/lower sentinel error, so callers embedding this package see
// one typed error family regardless of which pass detected the violation
// (spec.md §7).
func asInvariantError(err error) error {
	switch {
	case errors.Is(err, lower.ErrUnknownTab):
		return newUnknownTabError(err.Error())
	case errors.Is(err, lower.ErrUnboundVar):
		return newUnboundVarError(err.Error())
	default:
		return err
	}
}

func tracef(opts Options, format string, args ...any) {
	if !opts.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "tabdoc: "+format+"\n", args...)
}
