package source

import "github.com/phobologic/tabdoc/internal/docir"

// File implements docir.Tokens over its own flat leaf-token stream.

func (f *File) asToken(t *token) docir.Token { return t }

func (f *File) indexOf(tok docir.Token) (int, bool) {
	t, ok := tok.(*token)
	if !ok || t.file != f {
		return 0, false
	}
	return t.index, true
}

// CommentsBefore returns the run of comment tokens immediately preceding
// tok, in source order (earliest first).
func (f *File) CommentsBefore(tok docir.Token) []docir.Token {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil
	}
	start := i
	for start > 0 && f.tokens[start-1].isComment() {
		start--
	}
	if start == i {
		return nil
	}
	out := make([]docir.Token, 0, i-start)
	for j := start; j < i; j++ {
		out = append(out, f.asToken(f.tokens[j]))
	}
	return out
}

// CommentsAfter returns the run of comment tokens immediately following
// tok, in source order.
func (f *File) CommentsAfter(tok docir.Token) []docir.Token {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil
	}
	end := i + 1
	for end < len(f.tokens) && f.tokens[end].isComment() {
		end++
	}
	if end == i+1 {
		return nil
	}
	out := make([]docir.Token, 0, end-i-1)
	for j := i + 1; j < end; j++ {
		out = append(out, f.asToken(f.tokens[j]))
	}
	return out
}

// PrevToken returns the token immediately before tok in the full stream.
func (f *File) PrevToken(tok docir.Token) (docir.Token, bool) {
	i, ok := f.indexOf(tok)
	if !ok || i == 0 {
		return nil, false
	}
	return f.asToken(f.tokens[i-1]), true
}

// NextTokenNotCommentOrWhitespace returns the next token after tok that
// is not a comment (this adapter never produces whitespace tokens: the
// tree-sitter grammar represents gaps implicitly rather than as nodes).
func (f *File) NextTokenNotCommentOrWhitespace(tok docir.Token) (docir.Token, bool) {
	i, ok := f.indexOf(tok)
	if !ok {
		return nil, false
	}
	for j := i + 1; j < len(f.tokens); j++ {
		if !f.tokens[j].isComment() {
			return f.asToken(f.tokens[j]), true
		}
	}
	return nil, false
}

// IsWhitespace always reports false: this adapter's leaf-node walk never
// produces whitespace-only tokens.
func (f *File) IsWhitespace(tok docir.Token) bool { return false }

// IsComment reports whether tok is a comment leaf. Callers building a Doc
// from All() use this to skip comments: the weave pass re-attaches them
// from this same stream via CommentsBefore/CommentsAfter.
func (f *File) IsComment(tok docir.Token) bool {
	t, ok := tok.(*token)
	return ok && t.file == f && t.isComment()
}

// LineOf returns tok's 1-based source line.
func (f *File) LineOf(tok docir.Token) int {
	i, ok := f.indexOf(tok)
	if !ok {
		return 0
	}
	line, _ := f.tokens[i].Source().AbsoluteStart()
	return line
}

// LineDifference returns LineOf(b) - LineOf(a).
func (f *File) LineDifference(a, b docir.Token) int {
	return f.LineOf(b) - f.LineOf(a)
}
