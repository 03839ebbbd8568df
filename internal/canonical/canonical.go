// Package canonical implements the ICL normalizer: deterministic
// reordering of an AST into canonical form, SHA-256 content-addressing of
// that form, and the text renderer shared by both.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/parser"
)

var hashPlaceholder = strings.Repeat("0", 64)

// NormalizeAST returns a structurally sorted clone of c with
// Identity.SemanticHash set to the SHA-256 of its own canonical text
// (computed with the hash field placeholdered to 64 zeros, per the
// hash-coupling rule). The hash never includes itself.
func NormalizeAST(c *ast.ContractNode) *ast.ContractNode {
	sorted := sortClone(c)
	sorted.Identity.SemanticHash = hashPlaceholder
	hashed := sha256.Sum256([]byte(RenderContract(sorted)))
	sorted.Identity.SemanticHash = hex.EncodeToString(hashed[:])
	return sorted
}

// ComputeSemanticHash computes the semantic hash of an AST without
// rendering the full normalized text back out.
func ComputeSemanticHash(c *ast.ContractNode) string {
	return NormalizeAST(c).Identity.SemanticHash
}

// Normalize parses text and renders its canonical form, with the semantic
// hash computed and embedded. It is total on parseable inputs.
func Normalize(text string) (string, *parser.ParseError) {
	contract, perr := parser.ParseSource(text)
	if perr != nil {
		return "", perr
	}
	return RenderContract(NormalizeAST(contract)), nil
}
