// Command tabdoc formats Go source files through the tabdoc pretty-printer
// pipeline, adapted from the teacher's repoguide CLI: a single flag.FlagSet,
// a run(args, stdout, stderr) error entry point for testability, and the
// same reorderArgs trick so flags can follow a positional path argument.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode"

	"github.com/phobologic/tabdoc"
	"github.com/phobologic/tabdoc/internal/discoverfiles"
	"github.com/phobologic/tabdoc/internal/highlight"
	"github.com/phobologic/tabdoc/internal/source"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "init" {
		return runInit(args[1:], stdout, stderr)
	}
	return runFmt(args, stdout, stderr)
}

func runFmt(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tabdoc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		tabWidth    int
		width       int
		debug       bool
		color       bool
		showVersion bool
	)

	fs.IntVar(&tabWidth, "tab-width", 8, "columns a literal source tab expands to")
	fs.IntVar(&width, "width", 100, "target line width for rendering")
	fs.BoolVar(&debug, "debug", false, "trace each pipeline pass to stderr")
	fs.BoolVar(&color, "color", false, "highlight output with ANSI escapes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: tabdoc [flags] [path]

Re-lay out every *.go file under path (default ".") through the tabdoc
pretty-printer pipeline and print the result to stdout.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(reorderArgs(args, flagsWithValue)); err != nil {
		return err
	}

	if showVersion {
		fmt.Fprintf(stdout, "tabdoc %s\n", version)
		return nil
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	files, err := discoverfiles.Files(root)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .go files found under %s", root)
	}

	hl := &highlight.ANSI{Enable: color, Classify: classifyGo}

	opts := tabdoc.Options{TabWidth: tabWidth, Debug: debug}

	for _, rel := range files {
		abs := filepath.Join(root, rel)
		src, err := os.ReadFile(abs)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", rel, err)
			continue
		}

		out, err := formatSource(src, opts, width, hl)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", rel, err)
			continue
		}

		if len(files) > 1 {
			fmt.Fprintf(stdout, "=== %s ===\n", rel)
		}
		fmt.Fprintln(stdout, out)
	}

	return nil
}

// formatSource runs one file's bytes through the full pipeline: parse,
// build a flat Doc anchored at Root from the non-comment token stream
// (weave re-attaches comments from the same stream), and render.
func formatSource(src []byte, opts tabdoc.Options, width int, hl tabdoc.Highlighter) (string, error) {
	file, err := source.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing: %w", err)
	}

	doc := tabdoc.Empty
	for _, tok := range file.All() {
		if file.IsComment(tok) {
			continue
		}
		doc = tabdoc.Concat(doc, tabdoc.At(tabdoc.Root, tabdoc.TokenDoc(tok)))
	}

	lowered, err := tabdoc.ToStringDoc(opts, doc, file, hl)
	if err != nil {
		return "", err
	}

	return tabdoc.Render(lowered, width), nil
}

// classifyGo is a minimal lexical classifier for highlight.ANSI's -color
// output: it distinguishes keywords, string/rune literals and numbers by
// inspecting a token's own text, with no parser context beyond that.
func classifyGo(text string) highlight.Kind {
	switch text {
	case "break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var":
		return highlight.KindKeyword
	}
	if len(text) == 0 {
		return highlight.KindPlain
	}
	if text[0] == '"' || text[0] == '`' || text[0] == '\'' {
		return highlight.KindString
	}
	if unicode.IsDigit(rune(text[0])) {
		return highlight.KindNumber
	}
	return highlight.KindPlain
}

// flagsWithValue lists tabdoc flags that take a value argument, for
// reorderArgs to keep paired with their flag when moving flags ahead of
// positional arguments.
var flagsWithValue = map[string]bool{
	"-tab-width": true, "--tab-width": true,
	"-width": true, "--width": true,
}

// reorderArgs moves flags ahead of positional arguments so Go's flag
// package, which stops parsing at the first non-flag argument, can still
// find flags that follow a path on the command line.
func reorderArgs(args []string, withValue map[string]bool) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if withValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
