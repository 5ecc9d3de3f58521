package tabdoc

// Options configures a single run of the pipeline (spec.md §6
// "toStringDoc({tabWidth, debug}, doc)").
type Options struct {
	// TabWidth is the number of columns a literal tab character expands
	// to when stripping a token's leading source indentation. Must be
	// >= 1; values below that are treated as 1.
	TabWidth int
	// Debug enables tracing to standard error. It must not affect
	// output correctness (spec.md §6).
	Debug bool
}

func (o Options) applyDefaults() Options {
	if o.TabWidth < 1 {
		o.TabWidth = 1
	}
	return o
}
