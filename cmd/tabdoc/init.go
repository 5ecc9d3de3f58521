package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	sentinelStart = "<!-- tabdoc:start -->"
	sentinelEnd   = "<!-- tabdoc:end -->"
)

// runInit implements the `tabdoc init` subcommand, which writes (or
// updates) a tabdoc usage section in a CLAUDE.md file, adapted from the
// teacher's repoguide init subcommand.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tabdoc init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: tabdoc init [flags] [path-to-CLAUDE.md]

Write a tabdoc usage section to a CLAUDE.md file. The section is wrapped in
sentinel comments so it can be updated in place on subsequent runs without
touching surrounding content. Creates the file if it does not exist.

path-to-CLAUDE.md defaults to ./CLAUDE.md.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	section := generateSection()

	if dryRun && fs.NArg() == 0 {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	path := "CLAUDE.md"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	existing, _ := os.ReadFile(path)
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote tabdoc section to %s\n", path)
	return nil
}

func generateSection() string {
	body := `## tabdoc — Go Source Reformatter

Run ` + "`tabdoc <path>`" + ` via the Bash tool to re-lay out ` + "`*.go`" + ` files under
path through the tabdoc tab-based pretty-printer.

**Run it:**
` + "```" + `bash
tabdoc                      # current directory
tabdoc ./internal           # explicit path
tabdoc -width 80 .          # narrower target width
tabdoc -color .             # ANSI-highlighted output
` + "```" + `

**All flags:** ` + "`tabdoc -help`" + ``

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing
// sentinel block if present or appending if not.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
