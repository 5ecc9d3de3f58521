package weave

import (
	"testing"

	"github.com/phobologic/tabdoc/internal/anndoc"
	"github.com/phobologic/tabdoc/internal/docir"
	"github.com/phobologic/tabdoc/internal/tab"
	"github.com/phobologic/tabdoc/internal/tabset"
)

// fakeToken/fakeTokens give weave tests a minimal docir.Tokens without
// pulling in internal/source's tree-sitter dependency.
type fakeToken struct {
	stream  *fakeTokens
	index   int
	comment bool
}

func (t *fakeToken) Source() docir.Source { return nil }

type fakeTokens struct {
	toks []*fakeToken
}

func newFakeTokens(comment ...bool) *fakeTokens {
	ft := &fakeTokens{}
	for _, c := range comment {
		ft.toks = append(ft.toks, &fakeToken{stream: ft, index: len(ft.toks), comment: c})
	}
	return ft
}

func (f *fakeTokens) indexOf(tok docir.Token) (int, bool) {
	t, ok := tok.(*fakeToken)
	if !ok || t.stream != f {
		return 0, false
	}
	return t.index, true
}

func (f *fakeTokens) CommentsBefore(tok docir.Token) []docir.Token {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil
	}
	start := i
	for start > 0 && f.toks[start-1].comment {
		start--
	}
	var out []docir.Token
	for j := start; j < i; j++ {
		out = append(out, f.toks[j])
	}
	return out
}

func (f *fakeTokens) CommentsAfter(tok docir.Token) []docir.Token {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil
	}
	end := i + 1
	for end < len(f.toks) && f.toks[end].comment {
		end++
	}
	var out []docir.Token
	for j := i + 1; j < end; j++ {
		out = append(out, f.toks[j])
	}
	return out
}

func (f *fakeTokens) PrevToken(tok docir.Token) (docir.Token, bool) {
	i, ok := f.indexOf(tok)
	if !ok || i == 0 {
		return nil, false
	}
	return f.toks[i-1], true
}

func (f *fakeTokens) NextTokenNotCommentOrWhitespace(tok docir.Token) (docir.Token, bool) {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil, false
	}
	for j := i + 1; j < len(f.toks); j++ {
		if !f.toks[j].comment {
			return f.toks[j], true
		}
	}
	return nil, false
}

func (f *fakeTokens) IsWhitespace(tok docir.Token) bool { return false }

func (f *fakeTokens) LineOf(tok docir.Token) int {
	i, _ := f.indexOf(tok)
	return i
}

func (f *fakeTokens) LineDifference(a, b docir.Token) int {
	return f.LineOf(b) - f.LineOf(a)
}

func countKind(n *anndoc.Node, k anndoc.Kind) int {
	if n == nil || n.Kind == anndoc.KEmpty {
		return 0
	}
	switch n.Kind {
	case anndoc.KConcat:
		return countKind(n.A, k) + countKind(n.B, k)
	case anndoc.KAt:
		c := countKind(n.Body, k)
		if n.Kind == k {
			c++
		}
		return c
	default:
		if n.Kind == k {
			return 1
		}
		return 0
	}
}

// TestWeaveLastTokenPicksUpTrailingComments covers the last-token case of
// spec.md §4.4: a comment after the final non-comment token is spliced in
// as trailing trivia, wrapped in a fresh At anchored to the token's flow
// tab.
func TestWeaveLastTokenPicksUpTrailingComments(t *testing.T) {
	t.Parallel()

	toks := newFakeTokens(false, true) // [tok, trailingComment]
	reg := tab.NewRegistry()
	tb := reg.New(tab.Root, tab.Inplace)

	tokNode := anndoc.TokenNodeWithFlow(toks.toks[0], tabset.New(tb))

	out := Weave(tokNode, toks)

	if got := countKind(out, anndoc.KToken); got != 2 {
		t.Fatalf("expected 2 token nodes (original + comment), got %d", got)
	}
}

// TestWeaveUnattributedTokenSplicesPlainSiblings covers the n.Flow == nil
// path: comments go in as plain siblings, no At wrapper introduced.
func TestWeaveUnattributedTokenSplicesPlainSiblings(t *testing.T) {
	t.Parallel()

	toks := newFakeTokens(true, false) // [leadingComment, tok]
	tokNode := anndoc.TokenNode(toks.toks[1])

	out := Weave(tokNode, toks)

	if out.Kind != anndoc.KConcat {
		t.Fatalf("expected a Concat splicing in the leading comment, got kind %v", out.Kind)
	}
	if got := countKind(out, anndoc.KToken); got != 2 {
		t.Fatalf("expected 2 token nodes, got %d", got)
	}
}

// TestWeaveMiddleTokenHasNoTrailingComments covers the case where a token
// has a following non-comment token: even if a comment immediately
// follows it in the stream, that comment belongs to the *next* token's
// CommentsBefore, not this one's CommentsAfter.
func TestWeaveMiddleTokenHasNoTrailingComments(t *testing.T) {
	t.Parallel()

	toks := newFakeTokens(false, true, false) // [tok, comment, nextTok]
	reg := tab.NewRegistry()
	tb := reg.New(tab.Root, tab.Inplace)

	tokNode := anndoc.TokenNodeWithFlow(toks.toks[0], tabset.New(tb))
	out := Weave(tokNode, toks)

	if got := countKind(out, anndoc.KToken); got != 1 {
		t.Fatalf("expected only the original token, got %d token nodes", got)
	}
}
