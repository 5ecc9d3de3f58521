package docir

// Source is the source-span collaborator a Token exposes (spec.md §6).
// Implementations wrap whatever the caller's lexer/parser already tracks;
// the engine never constructs a Source itself.
type Source interface {
	// AbsoluteStart returns the token's 1-based starting line and column.
	AbsoluteStart() (line, col int)
	// WholeLine returns the full text of the given 1-based source line.
	WholeLine(line int) string
	// Take returns the first n bytes of the span.
	Take(n int) string
	// Nth returns the i-th byte of the span.
	Nth(i int) byte
	// LineRanges returns the [start,end) byte ranges of each line the span
	// covers, relative to the span's own text.
	LineRanges() [][2]int
	// Slice returns the substring [i,j) of the span's text.
	Slice(i, j int) string
	// Text returns the full text of the span.
	Text() string
}

// Token is a single source token, comment or otherwise. The engine treats
// comments as ordinary Tokens once they are spliced into the tree by the
// comment weaver (spec.md §4.4).
type Token interface {
	Source() Source
}

// Tokens is the token-stream collaborator: the free functions spec.md §6
// lists under "Token interface" (commentsBefore, prevToken, lineOf, ...)
// operate over the whole stream, not a single token in isolation, so they
// are grouped on one interface rather than hung off Token itself.
type Tokens interface {
	// CommentsBefore returns the comment tokens immediately preceding tok.
	CommentsBefore(tok Token) []Token
	// CommentsAfter returns the comment tokens immediately following tok.
	CommentsAfter(tok Token) []Token
	// PrevToken returns the token immediately before tok in the full
	// stream (including whitespace/comment tokens), if any.
	PrevToken(tok Token) (Token, bool)
	// NextTokenNotCommentOrWhitespace returns the next token after tok
	// that is neither a comment nor whitespace, if any.
	NextTokenNotCommentOrWhitespace(tok Token) (Token, bool)
	// IsWhitespace reports whether tok is a whitespace-only token.
	IsWhitespace(tok Token) bool
	// LineOf returns tok's 1-based line number.
	LineOf(tok Token) int
	// LineDifference returns LineOf(b) - LineOf(a).
	LineDifference(a, b Token) int
}

// Highlighter produces a colorized, line-aware rendering of a token's
// source (spec.md §6 "Highlight(tok)").
type Highlighter interface {
	// Highlight returns tok's source text, optionally colorized.
	Highlight(tok Token) string
	// StripEffectiveWhitespace removes up to removeAtMost columns of
	// leading whitespace from line, expanding literal tabs to tabWidth
	// columns first.
	StripEffectiveWhitespace(tabWidth, removeAtMost int, line string) string
}
