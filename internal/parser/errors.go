// Package parser implements the grammar-exact recursive-descent ICL parser:
// tokens to a typed ContractNode AST, with one-token lookahead and no error
// recovery — the parser stops at the first fatal error, per spec; the
// verifier is where diagnostics accumulate.
package parser

import (
	"fmt"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/iclerrors"
	"github.com/icl-lang/icl/internal/lexer"
)

// ErrorKind distinguishes the one semantic check the parser performs
// (confidence_level range) from ordinary syntax errors.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrValidation
)

// ParseError is a fatal error encountered while parsing, with the span of
// the offending token.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Span    ast.Span
	Token   lexer.Token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

func newParseError(kind ErrorKind, message string, tok lexer.Token) *ParseError {
	return &ParseError{Kind: kind, Message: message, Span: ast.FromToken(tok), Token: tok}
}

// ToError converts a ParseError to the shared iclerrors taxonomy: a
// validation-kind error for the parser's one semantic check
// (confidence_level range), a parse-kind error otherwise.
func (e *ParseError) ToError() *iclerrors.Error {
	if e.Kind == ErrValidation {
		return iclerrors.NewValidationError(e.Message)
	}
	return iclerrors.NewParseError(e.Message, e.Span)
}
