// Package iclerrors defines the single error taxonomy shared across the
// core: every failure the tokenizer, parser, normalizer, verifier, and
// executor can raise is an *Error distinguished by Kind, not by format.
// The verifier is the one exception — it accumulates diagnostics instead of
// returning an error (see internal/verify).
package iclerrors

import (
	"fmt"

	"github.com/icl-lang/icl/internal/ast"
)

// Kind identifies the cause of an Error.
type Kind string

const (
	// KindParseError is raised by the tokenizer or parser for a syntactic
	// violation; carries a span.
	KindParseError Kind = "parse_error"
	// KindTypeError is raised by the verifier for a static typing/constraint
	// violation.
	KindTypeError Kind = "type_error"
	// KindValidationError is raised by the parser for structural validity
	// issues outside the type system (confidence_level out of range).
	KindValidationError Kind = "validation_error"
	// KindDeterminismViolation is raised by the verifier when a forbidden
	// non-deterministic construct is detected.
	KindDeterminismViolation Kind = "determinism_violation"
	// KindContractViolation is raised by the executor when a postcondition
	// or invariant fails at runtime; carries a commitment and violation.
	KindContractViolation Kind = "contract_violation"
	// KindExecutionError is raised by the executor or sandbox: precondition
	// failure, missing input, timeout, memory excess, permission denial.
	KindExecutionError Kind = "execution_error"
	// KindNormalizationError is reserved for inputs that parse but cannot
	// canonicalize.
	KindNormalizationError Kind = "normalization_error"
)

// Error is the unified error type returned across the core's public API.
type Error struct {
	Kind Kind

	Message string

	// Span is set for parse/type-time errors.
	Span *ast.Span

	// Operation names the operation being executed, for execution-time
	// errors.
	Operation string

	// Commitment and Violation are set for ContractViolation: Commitment is
	// e.g. "postcondition of 'echo'" or "invariant"; Violation is the
	// offending text.
	Commitment string
	Violation  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Span != nil:
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Span.Line, e.Span.Column, e.Message)
	case e.Operation != "":
		return fmt.Sprintf("%s in operation %q: %s", e.Kind, e.Operation, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// NewParseError builds a KindParseError with a span.
func NewParseError(message string, span ast.Span) *Error {
	return &Error{Kind: KindParseError, Message: message, Span: &span}
}

// NewTypeError builds a KindTypeError with a span.
func NewTypeError(message string, span ast.Span) *Error {
	return &Error{Kind: KindTypeError, Message: message, Span: &span}
}

// NewValidationError builds a KindValidationError.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidationError, Message: message}
}

// NewExecutionError builds a KindExecutionError scoped to an operation.
func NewExecutionError(operation, message string) *Error {
	return &Error{Kind: KindExecutionError, Message: message, Operation: operation}
}

// NewContractViolation builds a KindContractViolation scoped to an
// operation, naming the commitment that was broken and the violating text.
func NewContractViolation(operation, commitment, violation string) *Error {
	return &Error{
		Kind:       KindContractViolation,
		Message:    fmt.Sprintf("%s violated: %s", commitment, violation),
		Operation:  operation,
		Commitment: commitment,
		Violation:  violation,
	}
}

// NewNormalizationError builds a KindNormalizationError.
func NewNormalizationError(message string) *Error {
	return &Error{Kind: KindNormalizationError, Message: message}
}
