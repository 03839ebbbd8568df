// Package verify implements the ICL verifier: four unconditional phases
// (types, invariants, determinism, coherence) that accumulate diagnostics
// over an AST. Unlike the parser, the verifier never stops early — every
// phase always runs, mirroring the accumulating ErrorList discipline of a
// conventional multi-pass type checker.
package verify

import (
	"github.com/icl-lang/icl/internal/ast"
)

// Severity distinguishes diagnostics that fail verification from advisory
// ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies which phase produced a diagnostic.
type Kind string

const (
	KindTypeError           Kind = "type_error"
	KindInvariantError      Kind = "invariant_error"
	KindDeterminismViolation Kind = "determinism_violation"
	KindCoherenceError      Kind = "coherence_error"
)

// Diagnostic is a single finding from any verification phase.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Span     ast.Span
}

// Result is the accumulated output of Verify.
type Result struct {
	Diagnostics []Diagnostic
}

// IsValid reports whether no diagnostic in the result has Error severity.
func (r *Result) IsValid() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Result) add(severity Severity, kind Kind, message string, span ast.Span) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: severity, Kind: kind, Message: message, Span: span})
}

// Verify runs all four phases unconditionally over c and returns the
// accumulated diagnostics in the stable order the phases discover them.
func Verify(c *ast.ContractNode) *Result {
	result := &Result{}
	checkTypes(result, c)
	checkInvariants(result, c)
	checkDeterminism(result, c)
	checkCoherence(result, c)
	return result
}
