package verify

import (
	"regexp"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
)

var identifierPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

var invariantStopWords = map[string]bool{
	"is": true, "not": true, "and": true, "or": true,
	"true": true, "false": true, "null": true, "empty": true,
	"exists": true, "unique": true, "valid": true, "always": true, "never": true,
}

// checkInvariants implements Phase B: invariants that mention no declared
// state field are flagged (likely typos or leftover narrative), and exact
// duplicate invariant strings are flagged.
func checkInvariants(r *Result, c *ast.ContractNode) {
	stateNames := make(map[string]bool, len(c.DataSemantics.State))
	for _, f := range c.DataSemantics.State {
		stateNames[f.Name] = true
	}

	seen := make(map[string]bool, len(c.DataSemantics.Invariants))
	for _, inv := range c.DataSemantics.Invariants {
		if seen[inv] {
			r.add(SeverityWarning, KindInvariantError, "duplicate invariant: "+inv, c.DataSemantics.Span)
		}
		seen[inv] = true

		referencesField := false
		for _, tok := range identifierPattern.FindAllString(inv, -1) {
			if invariantStopWords[strings.ToLower(tok)] {
				continue
			}
			if stateNames[tok] {
				referencesField = true
				break
			}
		}
		if !referencesField {
			r.add(SeverityWarning, KindInvariantError, "invariant references no declared state field: "+inv, c.DataSemantics.Span)
		}
	}
}
