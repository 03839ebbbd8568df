// Package lowering deterministically converts a parsed ContractNode into a
// semantic Contract record: the same information with spans dropped and a
// shape convenient for the executor, as opposed to the AST's parse-order
// shape. No validation happens here; semantic validity belongs to the
// verifier.
package lowering

import (
	"fmt"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
)

// Literal mirrors ast.LiteralValue without a span.
type Literal struct {
	Kind  ast.LiteralKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Array []Literal
}

func lowerLiteral(v ast.LiteralValue) Literal {
	lit := Literal{Kind: v.Kind, Str: v.Str, Int: v.Int, Float: v.Float, Bool: v.Bool}
	if v.Kind == ast.LitArray {
		lit.Array = make([]Literal, len(v.Array))
		for i, child := range v.Array {
			lit.Array[i] = lowerLiteral(child)
		}
	}
	return lit
}

// StateFieldSpec is the lowered form of a StateFieldNode: a type string and
// an optional default literal. TypeExpr retains the structured type (rather
// than just its rendered name) so the executor can recurse into nested
// Object fields when computing zero values; it is not part of the
// externally-described shape and carries no spans.
type StateFieldSpec struct {
	Type     string
	TypeExpr ast.TypeExpr
	Default  *Literal // nil if absent
}

// Identity is the lowered Identity section.
type Identity struct {
	StableID         string
	Version          uint32
	CreatedTimestamp string
	Owner            string
	SemanticHash     string
}

// PurposeStatement is the lowered PurposeStatement section.
type PurposeStatement struct {
	Narrative       string
	IntentSource    string
	ConfidenceLevel float64
}

// ResourceLimits is the lowered resource_limits record.
type ResourceLimits struct {
	MaxMemoryBytes       uint64
	ComputationTimeoutMs uint64
	MaxStateSizeBytes    uint64
}

// ExecutionConstraints is the lowered ExecutionConstraints section.
type ExecutionConstraints struct {
	TriggerTypes        []string
	ResourceLimits       ResourceLimits
	ExternalPermissions []string
	SandboxMode         string
}

// HumanMachineContract is the lowered HumanMachineContract section.
type HumanMachineContract struct {
	SystemCommitments []string
	SystemRefusals    []string
	UserObligations   []string
}

// Operation is the lowered form of an OperationNode: parameters collapse
// from an ordered list to a name-to-type-string mapping, with the original
// order preserved separately for deterministic iteration.
type Operation struct {
	Name           string
	Precondition   string
	Parameters     map[string]string
	ParameterOrder []string
	Postcondition  string
	SideEffects    []string
	Idempotence    string
}

// ExtensionField is the lowered form of an ast.ExtensionField.
type ExtensionField struct {
	Name  string
	Value Literal
}

// SystemExtension is the lowered form of a SystemExtensionNode.
type SystemExtension struct {
	Name   string
	Fields []ExtensionField
}

// Contract is the executor's input: the semantic content of a ContractNode
// with spans dropped and numeric widths coerced.
type Contract struct {
	Identity             Identity
	PurposeStatement     PurposeStatement
	State                map[string]StateFieldSpec
	StateOrder           []string
	Invariants           []string
	Operations           []Operation
	ExecutionConstraints ExecutionConstraints
	HumanMachineContract HumanMachineContract
	Extensions           []SystemExtension
}

// Lower converts a parsed ContractNode to its semantic Contract record.
func Lower(c *ast.ContractNode) *Contract {
	out := &Contract{
		Identity: Identity{
			StableID:         c.Identity.StableID,
			Version:          uint32(c.Identity.Version),
			CreatedTimestamp: c.Identity.CreatedTimestamp,
			Owner:            c.Identity.Owner,
			SemanticHash:     c.Identity.SemanticHash,
		},
		PurposeStatement: PurposeStatement{
			Narrative:       c.PurposeStatement.Narrative,
			IntentSource:    c.PurposeStatement.IntentSource,
			ConfidenceLevel: c.PurposeStatement.ConfidenceLevel,
		},
		State:      make(map[string]StateFieldSpec, len(c.DataSemantics.State)),
		StateOrder: make([]string, 0, len(c.DataSemantics.State)),
		Invariants: append([]string(nil), c.DataSemantics.Invariants...),
	}

	for _, f := range c.DataSemantics.State {
		out.State[f.Name] = lowerStateField(f)
		out.StateOrder = append(out.StateOrder, f.Name)
	}

	out.Operations = make([]Operation, len(c.BehavioralSemantics.Operations))
	for i, op := range c.BehavioralSemantics.Operations {
		out.Operations[i] = lowerOperation(op)
	}

	rl := c.ExecutionConstraints.ResourceLimits
	out.ExecutionConstraints = ExecutionConstraints{
		TriggerTypes: append([]string(nil), c.ExecutionConstraints.TriggerTypes...),
		ResourceLimits: ResourceLimits{
			MaxMemoryBytes:       uint64(rl.MaxMemoryBytes),
			ComputationTimeoutMs: uint64(rl.ComputationTimeoutMs),
			MaxStateSizeBytes:    uint64(rl.MaxStateSizeBytes),
		},
		ExternalPermissions: append([]string(nil), c.ExecutionConstraints.ExternalPermissions...),
		SandboxMode:         c.ExecutionConstraints.SandboxMode,
	}

	out.HumanMachineContract = HumanMachineContract{
		SystemCommitments: append([]string(nil), c.HumanMachineContract.SystemCommitments...),
		SystemRefusals:    append([]string(nil), c.HumanMachineContract.SystemRefusals...),
		UserObligations:   append([]string(nil), c.HumanMachineContract.UserObligations...),
	}

	if c.Extensions != nil {
		out.Extensions = make([]SystemExtension, len(c.Extensions.Systems))
		for i, sys := range c.Extensions.Systems {
			fields := make([]ExtensionField, len(sys.Fields))
			for j, f := range sys.Fields {
				fields[j] = ExtensionField{Name: f.Name, Value: lowerLiteral(f.Value)}
			}
			out.Extensions[i] = SystemExtension{Name: sys.Name, Fields: fields}
		}
	}

	return out
}

func lowerStateField(f *ast.StateFieldNode) StateFieldSpec {
	spec := StateFieldSpec{Type: TypeString(f.Type), TypeExpr: f.Type}
	if f.Default != nil {
		lit := lowerLiteral(*f.Default)
		spec.Default = &lit
	}
	return spec
}

func lowerOperation(op *ast.OperationNode) Operation {
	out := Operation{
		Name:           op.Name,
		Precondition:   op.Precondition,
		Parameters:     make(map[string]string, len(op.Parameters)),
		ParameterOrder: make([]string, 0, len(op.Parameters)),
		Postcondition:  op.Postcondition,
		SideEffects:    append([]string(nil), op.SideEffects...),
		Idempotence:    op.Idempotence,
	}
	for _, p := range op.Parameters {
		out.Parameters[p.Name] = TypeString(p.Type)
		out.ParameterOrder = append(out.ParameterOrder, p.Name)
	}
	return out
}

// TypeString renders a type expression as the string form used by lowered
// state/parameter maps ("Integer", "Array<String>", "Map<String,Integer>",
// "Object{...}", "Enum[...]").
func TypeString(t ast.TypeExpr) string {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		return v.Kind.String()
	case *ast.ArrayType:
		return fmt.Sprintf("Array<%s>", TypeString(v.Element))
	case *ast.MapType:
		return fmt.Sprintf("Map<%s,%s>", TypeString(v.Key), TypeString(v.Value))
	case *ast.ObjectType:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = fmt.Sprintf("%s:%s", f.Name, TypeString(f.Type))
		}
		return fmt.Sprintf("Object{%s}", strings.Join(parts, ","))
	case *ast.EnumType:
		quoted := make([]string, len(v.Variants))
		for i, variant := range v.Variants {
			quoted[i] = fmt.Sprintf("%q", variant)
		}
		return fmt.Sprintf("Enum[%s]", strings.Join(quoted, ","))
	default:
		return "Unknown"
	}
}
