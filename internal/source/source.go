// Package source adapts a parsed Go file into the docir.Token/docir.Source
// /docir.Tokens collaborators the pipeline consumes. It is the peripheral
// "lexing / syntax-tree construction" spec.md places out of scope for the
// core, grounded on the teacher's internal/parse/parse.go and
// internal/lang/golang.go tree-sitter walking idiom.
//
// Unlike the teacher, this package does not compile a tagged .scm query —
// the pretty-printer has no need to classify definitions/references, so
// it walks every leaf (zero-child) node of the parse tree directly rather
// than matching a query against named capture groups.
package source

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/phobologic/tabdoc/internal/docir"
)

// File is a parsed Go source file and its flat token stream, implementing
// docir.Token (per-token), docir.Source (per-token span) and
// docir.Tokens (the stream as a whole).
type File struct {
	text   []byte
	lines  []string
	tokens []*token
}

// Parse parses src as Go source and returns its flat leaf-token stream in
// textual order.
func Parse(src []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	// The tree is not closed here: every token keeps a *sitter.Node that
	// points into it, so it has to outlive this call.

	f := &File{
		text:  src,
		lines: strings.Split(string(src), "\n"),
	}
	f.collectLeaves(tree.RootNode())
	for i, t := range f.tokens {
		t.index = i
	}
	return f, nil
}

func (f *File) collectLeaves(n *sitter.Node) {
	if n == nil {
		return
	}
	count := int(n.ChildCount())
	if count == 0 {
		if n.StartByte() == n.EndByte() {
			return
		}
		f.tokens = append(f.tokens, &token{file: f, node: n})
		return
	}
	for i := 0; i < count; i++ {
		f.collectLeaves(n.Child(i))
	}
}

// All returns the flat leaf-token stream in textual order, as docir.Token
// values ready to feed into a Doc built with docir.TokenDoc.
func (f *File) All() []docir.Token {
	out := make([]docir.Token, len(f.tokens))
	for i, t := range f.tokens {
		out[i] = t
	}
	return out
}

// token is a single leaf node of the parse tree: an identifier, keyword,
// punctuation, literal or comment.
type token struct {
	file  *File
	node  *sitter.Node
	index int
}

// Source implements docir.Token.
func (t *token) Source() docir.Source { return &span{file: t.file, node: t.node} }

func (t *token) isComment() bool { return t.node.Type() == "comment" }

// span implements docir.Source over one leaf node's byte range.
type span struct {
	file *File
	node *sitter.Node
}

func (s *span) text() []byte { return s.file.text[s.node.StartByte():s.node.EndByte()] }

func (s *span) AbsoluteStart() (line, col int) {
	p := s.node.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

func (s *span) WholeLine(line int) string {
	if line < 1 || line > len(s.file.lines) {
		return ""
	}
	return s.file.lines[line-1]
}

func (s *span) Take(n int) string {
	t := s.text()
	if n > len(t) {
		n = len(t)
	}
	return string(t[:n])
}

func (s *span) Nth(i int) byte { return s.text()[i] }

func (s *span) LineRanges() [][2]int {
	t := s.text()
	var ranges [][2]int
	start := 0
	for i, b := range t {
		if b == '\n' {
			ranges = append(ranges, [2]int{start, i})
			start = i + 1
		}
	}
	ranges = append(ranges, [2]int{start, len(t)})
	return ranges
}

func (s *span) Slice(i, j int) string { return string(s.text()[i:j]) }

func (s *span) Text() string { return string(s.text()) }
