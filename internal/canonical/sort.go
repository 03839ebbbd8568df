package canonical

import (
	"sort"

	"github.com/icl-lang/icl/internal/ast"
)

// sortClone produces a structural copy of a ContractNode with every list
// that the canonicalization rules order (state fields, invariants,
// operations and their parameters/side-effects, trigger types, permissions,
// human/machine lists, extension systems and their fields, and nested
// Object/Enum type fields) sorted per §4.4. Spans are carried through
// unchanged; only ordering changes.
func sortClone(c *ast.ContractNode) *ast.ContractNode {
	clone := &ast.ContractNode{Span: c.Span}

	idCopy := *c.Identity
	clone.Identity = &idCopy

	purposeCopy := *c.PurposeStatement
	clone.PurposeStatement = &purposeCopy

	invariants := append([]string(nil), c.DataSemantics.Invariants...)
	sort.Strings(invariants)
	clone.DataSemantics = &ast.DataSemanticsNode{
		State:      sortStateFields(c.DataSemantics.State),
		Invariants: invariants,
		Span:       c.DataSemantics.Span,
	}

	ops := make([]*ast.OperationNode, len(c.BehavioralSemantics.Operations))
	for i, op := range c.BehavioralSemantics.Operations {
		sideEffects := append([]string(nil), op.SideEffects...)
		sort.Strings(sideEffects)
		ops[i] = &ast.OperationNode{
			Name:          op.Name,
			Precondition:  op.Precondition,
			Parameters:    sortStateFields(op.Parameters),
			Postcondition: op.Postcondition,
			SideEffects:   sideEffects,
			Idempotence:   op.Idempotence,
			Span:          op.Span,
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	clone.BehavioralSemantics = &ast.BehavioralSemanticsNode{Operations: ops, Span: c.BehavioralSemantics.Span}

	trig := append([]string(nil), c.ExecutionConstraints.TriggerTypes...)
	sort.Strings(trig)
	perms := append([]string(nil), c.ExecutionConstraints.ExternalPermissions...)
	sort.Strings(perms)
	rlCopy := *c.ExecutionConstraints.ResourceLimits
	clone.ExecutionConstraints = &ast.ExecutionConstraintsNode{
		TriggerTypes:        trig,
		ResourceLimits:       &rlCopy,
		ExternalPermissions: perms,
		SandboxMode:         c.ExecutionConstraints.SandboxMode,
		SandboxModeSpan:     c.ExecutionConstraints.SandboxModeSpan,
		Span:                c.ExecutionConstraints.Span,
	}

	commitments := append([]string(nil), c.HumanMachineContract.SystemCommitments...)
	sort.Strings(commitments)
	refusals := append([]string(nil), c.HumanMachineContract.SystemRefusals...)
	sort.Strings(refusals)
	obligations := append([]string(nil), c.HumanMachineContract.UserObligations...)
	sort.Strings(obligations)
	clone.HumanMachineContract = &ast.HumanMachineContractNode{
		SystemCommitments: commitments,
		SystemRefusals:    refusals,
		UserObligations:   obligations,
		Span:              c.HumanMachineContract.Span,
	}

	if c.Extensions != nil {
		systems := make([]*ast.SystemExtensionNode, len(c.Extensions.Systems))
		for i, sys := range c.Extensions.Systems {
			fields := append([]ast.ExtensionField(nil), sys.Fields...)
			sort.Slice(fields, func(a, b int) bool { return fields[a].Name < fields[b].Name })
			systems[i] = &ast.SystemExtensionNode{Name: sys.Name, Fields: fields, Span: sys.Span}
		}
		sort.Slice(systems, func(i, j int) bool { return systems[i].Name < systems[j].Name })
		clone.Extensions = &ast.ExtensionsNode{Systems: systems, Span: c.Extensions.Span}
	}

	return clone
}

func sortStateFields(fields []*ast.StateFieldNode) []*ast.StateFieldNode {
	out := make([]*ast.StateFieldNode, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for i, f := range out {
		out[i] = &ast.StateFieldNode{Name: f.Name, Type: sortType(f.Type), Default: f.Default, Span: f.Span}
	}
	return out
}

func sortType(t ast.TypeExpr) ast.TypeExpr {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		return v
	case *ast.ArrayType:
		return &ast.ArrayType{Element: sortType(v.Element), Span: v.Span}
	case *ast.MapType:
		return &ast.MapType{Key: sortType(v.Key), Value: sortType(v.Value), Span: v.Span}
	case *ast.ObjectType:
		sortedFields := sortStateFields(v.Fields)
		return &ast.ObjectType{Fields: sortedFields, Span: v.Span}
	case *ast.EnumType:
		variants := append([]string(nil), v.Variants...)
		sort.Strings(variants)
		return &ast.EnumType{Variants: variants, Span: v.Span}
	default:
		return t
	}
}
