package verify

import (
	"fmt"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
)

var determinismDenylist = []string{
	"random", "rand(", "math.random", "uuid_generate", "generate_id",
	"now(", "current_time", "system_time", "date.now", "time.time", "instant::now",
	"fetch(", "http_request", "read_file", "write_file", "network_call", "socket",
	"hashmap", "hashset", "dict_keys",
}

// checkDeterminism implements Phase C: a case-insensitive denylist scan of
// every condition string (preconditions, postconditions, side effects,
// idempotence tags, invariants) for constructs that would make execution
// non-reproducible.
func checkDeterminism(r *Result, c *ast.ContractNode) {
	for _, inv := range c.DataSemantics.Invariants {
		scanDeterminism(r, inv, c.DataSemantics.Span)
	}
	for _, op := range c.BehavioralSemantics.Operations {
		scanDeterminism(r, op.Precondition, op.Span)
		scanDeterminism(r, op.Postcondition, op.Span)
		for _, se := range op.SideEffects {
			scanDeterminism(r, se, op.Span)
		}
		scanDeterminism(r, op.Idempotence, op.Span)
	}
}

func scanDeterminism(r *Result, text string, span ast.Span) {
	lower := strings.ToLower(text)
	for _, term := range determinismDenylist {
		if strings.Contains(lower, term) {
			r.add(SeverityError, KindDeterminismViolation, fmt.Sprintf("forbidden non-deterministic construct %q", term), span)
		}
	}
}
