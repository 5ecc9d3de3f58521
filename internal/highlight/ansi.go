// Package highlight is a stdlib-only implementation of docir.Highlighter.
// No color/terminal library appears anywhere in the retrieval pack; the
// closest relative is daios-ai-msg's printer.go, whose colorize/blue/green
// helpers (a package-level EnableColor switch plus raw ANSI escapes) this
// package's Enable switch and colorize/colorFor pair are grounded on.
package highlight

import (
	"strings"

	"github.com/phobologic/tabdoc/internal/docir"
)

const (
	colorReset  = "\033[0m"
	colorKey    = "\033[35m" // keyword
	colorString = "\033[32m"
	colorNumber = "\033[36m"
	colorCom    = "\033[90m" // comment
)

// Classifier reports what kind of lexical token tok's text represents, so
// Highlighter knows which color to apply. Implementations typically wrap
// whatever kind information their own lexer/parser already tracks.
type Classifier func(text string) Kind

// Kind is a coarse lexical classification used only to pick a color.
type Kind int

const (
	KindPlain Kind = iota
	KindKeyword
	KindString
	KindNumber
	KindComment
)

// ANSI colorizes token source text with raw ANSI escapes, following
// daios-ai-msg's colorize pattern: an Enable switch that no-ops entirely
// when color is off, so tests can run with deterministic plain output.
type ANSI struct {
	Enable     bool
	Classify   Classifier
	TabLiteral byte // defaults to '\t' if zero
}

func colorFor(k Kind) string {
	switch k {
	case KindKeyword:
		return colorKey
	case KindString:
		return colorString
	case KindNumber:
		return colorNumber
	case KindComment:
		return colorCom
	default:
		return ""
	}
}

func (h *ANSI) colorize(s string, k Kind) string {
	if !h.Enable {
		return s
	}
	c := colorFor(k)
	if c == "" {
		return s
	}
	return c + s + colorReset
}

// Highlight implements docir.Highlighter.
func (h *ANSI) Highlight(tok docir.Token) string {
	text := tok.Source().Text()
	kind := KindPlain
	if h.Classify != nil {
		kind = h.Classify(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = h.colorize(line, kind)
	}
	return strings.Join(lines, "\n")
}

// StripEffectiveWhitespace removes up to removeAtMost columns of leading
// whitespace from line, expanding literal tabs to tabWidth columns first
// so a line that mixes tabs and spaces strips the correct visual amount.
func (h *ANSI) StripEffectiveWhitespace(tabWidth, removeAtMost int, line string) string {
	if tabWidth < 1 {
		tabWidth = 1
	}
	tabLit := h.TabLiteral
	if tabLit == 0 {
		tabLit = '\t'
	}
	col := 0
	i := 0
	for i < len(line) && col < removeAtMost {
		switch line[i] {
		case ' ':
			col++
			i++
		case tabLit:
			step := tabWidth - (col % tabWidth)
			if col+step > removeAtMost {
				// A tab that would overshoot the target column is not
				// consumed; stop here rather than eating into content.
				return line[i:]
			}
			col += step
			i++
		default:
			return line[i:]
		}
	}
	return line[i:]
}
