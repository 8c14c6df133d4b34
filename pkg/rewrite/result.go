// result.go defines the outcome types shared across scanning and expansion.
package rewrite

import "fmt"

// WarningKind labels the recoverable problem classes surfaced while
// processing a document.
type WarningKind string

const (
	// WarnMalformed marks a span that could not be read as a complete
	// construct and was passed through as plain markup.
	WarnMalformed WarningKind = "malformed-region"
	// WarnRecursionLimit marks a nesting branch left literal because it
	// exceeded the depth ceiling.
	WarnRecursionLimit WarningKind = "recursion-limit"
	// WarnCollaborator marks a resolver or generator failure; the affected
	// element degrades instead of aborting the document.
	WarnCollaborator WarningKind = "collaborator-failure"
)

// Warning describes a recoverable problem. Processing always continues;
// warnings let callers report what degraded. Offset is a byte offset into
// the text of the layer being processed when the problem was found, so
// offsets inside recursively expanded content restart at zero.
type Warning struct {
	Kind    WarningKind
	Offset  int
	Message string
}

// Result is the outcome of expanding one document.
type Result struct {
	Markup     string    // rewritten document text
	Stylesheet string    // rules collected by the registry, empty when none
	Expanded   int       // pseudo-elements replaced
	Attributes int       // reserved attributes rewritten
	Warnings   []Warning
}

// AddWarning records a warning on the result.
func (r *Result) AddWarning(kind WarningKind, offset int, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasWarnings reports whether any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
