package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
)

var snakeCaseFieldRef = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var validSandboxModes = map[string]bool{"full_isolation": true, "restricted": true, "none": true}
var validTriggerTypes = map[string]bool{"manual": true, "time_based": true, "event_based": true}

// checkCoherence implements Phase D: uniqueness of names across operations,
// state fields, and extension systems; enum-like field membership for
// sandbox_mode and trigger_types; and dangling field references inside
// pre/postconditions.
func checkCoherence(r *Result, c *ast.ContractNode) {
	seenOps := make(map[string]bool, len(c.BehavioralSemantics.Operations))
	for _, op := range c.BehavioralSemantics.Operations {
		if seenOps[op.Name] {
			r.add(SeverityError, KindCoherenceError, "duplicate operation name: "+op.Name, op.Span)
		}
		seenOps[op.Name] = true
	}

	seenFields := make(map[string]bool, len(c.DataSemantics.State))
	for _, f := range c.DataSemantics.State {
		if seenFields[f.Name] {
			r.add(SeverityError, KindCoherenceError, "duplicate state field name: "+f.Name, f.Span)
		}
		seenFields[f.Name] = true
	}

	if c.Extensions != nil {
		seenSystems := make(map[string]bool, len(c.Extensions.Systems))
		for _, sys := range c.Extensions.Systems {
			if seenSystems[sys.Name] {
				r.add(SeverityError, KindCoherenceError, "duplicate extension system name: "+sys.Name, sys.Span)
			}
			seenSystems[sys.Name] = true
		}
	}

	if !validSandboxModes[c.ExecutionConstraints.SandboxMode] {
		r.add(SeverityWarning, KindCoherenceError, "unrecognized sandbox_mode: "+c.ExecutionConstraints.SandboxMode, c.ExecutionConstraints.SandboxModeSpan)
	}
	for _, trigger := range c.ExecutionConstraints.TriggerTypes {
		if !validTriggerTypes[trigger] {
			r.add(SeverityWarning, KindCoherenceError, "unrecognized trigger_type: "+trigger, c.ExecutionConstraints.Span)
		}
	}

	stateNames := make(map[string]bool, len(c.DataSemantics.State))
	for _, f := range c.DataSemantics.State {
		stateNames[f.Name] = true
	}
	for _, op := range c.BehavioralSemantics.Operations {
		paramNames := make(map[string]bool, len(op.Parameters))
		for _, p := range op.Parameters {
			paramNames[p.Name] = true
		}
		checkFieldReferences(r, op, op.Precondition, stateNames, paramNames)
		checkFieldReferences(r, op, op.Postcondition, stateNames, paramNames)
	}
}

func checkFieldReferences(r *Result, op *ast.OperationNode, text string, stateNames, paramNames map[string]bool) {
	for _, tok := range identifierPattern.FindAllString(text, -1) {
		if !looksLikeFieldRef(tok) {
			continue
		}
		if stateNames[tok] || paramNames[tok] {
			continue
		}
		r.add(SeverityWarning, KindCoherenceError, fmt.Sprintf("operation %q references unknown field %q", op.Name, tok), op.Span)
	}
}

func looksLikeFieldRef(tok string) bool {
	return len(tok) >= 2 && strings.Contains(tok, "_") && snakeCaseFieldRef.MatchString(tok)
}
