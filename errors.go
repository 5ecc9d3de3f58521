package tabdoc

import "fmt"

// InvariantError represents a structural-invariant violation in a
// document passed to the pipeline (spec.md §7): an At, Cond or NewTab
// referring to a tab never introduced in scope (a tab used outside the
// NewTab body that introduced it is reported this way too), or a Var to
// an unbound DocVar. These are programmer errors in how the document was
// built. One struct covers every violation; Kind names which one, in the
// typed-error style of kolkov-uawk's ParseError/CompileError.
type InvariantError struct {
	Kind    string // "unknown-tab" or "unbound-var"
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tabdoc: %s: %s", e.Kind, e.Message)
}

func newUnknownTabError(message string) *InvariantError {
	return &InvariantError{Kind: "unknown-tab", Message: message}
}

func newUnboundVarError(message string) *InvariantError {
	return &InvariantError{Kind: "unbound-var", Message: message}
}
