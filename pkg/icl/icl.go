// Package icl is the public embedding surface over the core toolchain:
// tokenizer, parser, lowering, canonical normalizer, verifier, and executor.
// The CLI's contract-processing commands and any future language binding
// consume the core through this package; the LSP server reaches the core
// through internal/tooling instead.
package icl

import (
	"encoding/json"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/canonical"
	"github.com/icl-lang/icl/internal/executor"
	"github.com/icl-lang/icl/internal/iclerrors"
	"github.com/icl-lang/icl/internal/lexer"
	"github.com/icl-lang/icl/internal/lowering"
	"github.com/icl-lang/icl/internal/parser"
	"github.com/icl-lang/icl/internal/verify"
)

// Token re-exports the lexer's token type for callers that need raw
// tokenization without a full parse (e.g. an editor's syntax highlighter).
type Token = lexer.Token

// Contract is the parsed, unvalidated syntax tree of a source document.
type Contract = ast.ContractNode

// LoweredContract is the semantic record the executor consumes.
type LoweredContract = lowering.Contract

// VerificationResult is the accumulated diagnostics from all four verifier
// phases.
type VerificationResult = verify.Result

// Diagnostic is a single verifier finding.
type Diagnostic = verify.Diagnostic

// Error is the unified error taxonomy (§7 in the source contract language).
type Error = iclerrors.Error

// ExecutionResult is the JSON-serializable outcome of running one or more
// operation requests against a contract.
type ExecutionResult = executor.ExecutionResult

// Parse tokenizes source and returns the raw token stream, without parsing
// it into an AST. Useful for syntax-highlighting callers that only need
// lexical structure.
func Parse(source string) ([]Token, []lexer.LexError) {
	return lexer.New(source).ScanTokens()
}

// ParseContract tokenizes and parses source into a Contract AST. It returns
// the first fatal parse error encountered, if any; the parser does not
// attempt recovery past the first failure.
func ParseContract(source string) (*Contract, *Error) {
	contract, parseErr := parser.ParseSource(source)
	if parseErr != nil {
		return nil, parseErr.ToError()
	}
	return contract, nil
}

// Normalize parses source and renders its canonical text form, with
// semantic_hash populated.
func Normalize(source string) (string, *Error) {
	text, parseErr := canonical.Normalize(source)
	if parseErr != nil {
		return "", parseErr.ToError()
	}
	return text, nil
}

// NormalizeAST returns a deep copy of contract with every orderable list
// sorted and semantic_hash populated, without re-rendering to text.
func NormalizeAST(contract *Contract) *Contract {
	return canonical.NormalizeAST(contract)
}

// ComputeSemanticHash computes the content-addressed hash of contract's
// canonical form, independent of its current semantic_hash field.
func ComputeSemanticHash(contract *Contract) string {
	return canonical.ComputeSemanticHash(contract)
}

// Verify runs all four verification phases against contract unconditionally
// and returns every accumulated diagnostic.
func Verify(contract *Contract) *VerificationResult {
	return verify.Verify(contract)
}

// Lower converts a parsed Contract into the semantic record the executor
// operates on.
func Lower(contract *Contract) *LoweredContract {
	return lowering.Lower(contract)
}

// ExecuteContract runs the operation requests encoded in requestsJSON (a
// single {"operation",...} object or a JSON array of them) against a fresh
// Executor built from contract, returning the pretty-printed JSON result.
func ExecuteContract(contract *LoweredContract, requestsJSON []byte) (string, *Error) {
	return executor.ExecuteContract(contract, requestsJSON)
}

// NewExecutor constructs a long-lived Executor for contract, for callers
// that need to run operations incrementally (e.g. an interactive REPL)
// rather than through the one-shot ExecuteContract entry point.
func NewExecutor(contract *LoweredContract) *executor.Executor {
	return executor.New(contract)
}

// MarshalVerificationResult renders a VerificationResult as JSON for
// machine-readable CLI/LSP output.
func MarshalVerificationResult(result *VerificationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
