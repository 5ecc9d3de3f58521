package source

import "testing"

func TestParseCollectsLeafTokensInOrder(t *testing.T) {
	t.Parallel()

	src := []byte("package p\n\nfunc f() {}\n")
	f, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	toks := f.All()
	if len(toks) == 0 {
		t.Fatalf("expected at least one token")
	}

	first := toks[0].Source().Text()
	if first != "package" {
		t.Errorf("first token = %q, want %q", first, "package")
	}
}

func TestParseDetectsComments(t *testing.T) {
	t.Parallel()

	src := []byte("package p\n\n// a comment\nfunc f() {}\n")
	f, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var sawComment bool
	for _, tok := range f.All() {
		if f.IsComment(tok) {
			sawComment = true
			if tok.Source().Text() != "// a comment" {
				t.Errorf("comment text = %q, want %q", tok.Source().Text(), "// a comment")
			}
		}
	}
	if !sawComment {
		t.Errorf("expected at least one comment token")
	}
}

func TestCommentsBeforeAttachesLeadingComment(t *testing.T) {
	t.Parallel()

	src := []byte("package p\n\n// doc\nfunc f() {}\n")
	f, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	toks := f.All()
	var funcTok = -1
	for i, tok := range toks {
		if tok.Source().Text() == "func" {
			funcTok = i
			break
		}
	}
	if funcTok < 0 {
		t.Fatalf("did not find a func token")
	}

	before := f.CommentsBefore(toks[funcTok])
	if len(before) != 1 || before[0].Source().Text() != "// doc" {
		t.Fatalf("CommentsBefore(func) = %v, want [// doc]", before)
	}
}

func TestLineOfTracksSourceLines(t *testing.T) {
	t.Parallel()

	src := []byte("package p\n\nfunc f() {}\n")
	f, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	toks := f.All()
	firstLine := f.LineOf(toks[0])
	lastLine := f.LineOf(toks[len(toks)-1])
	if firstLine != 1 {
		t.Errorf("LineOf(first) = %d, want 1", firstLine)
	}
	if lastLine <= firstLine {
		t.Errorf("LineOf(last) = %d, want > %d", lastLine, firstLine)
	}
}
