// Package ast defines the Intent Contract Language abstract syntax tree.
//
// Every node is immutable once built and records the span of its first
// token. Section order and field order (within Object types and top-level
// state) are preserved exactly as parsed — ordering is the normalizer's job,
// not the parser's.
package ast

import "github.com/icl-lang/icl/internal/lexer"

// Span is the source position of a node's first token.
type Span struct {
	Line   int
	Column int
	Offset int
}

// FromToken builds a Span from a lexer token.
func FromToken(t lexer.Token) Span {
	return Span{Line: t.Span.Line, Column: t.Span.Column, Offset: t.Span.Offset}
}

// Node is implemented by every AST node.
type Node interface {
	NodeSpan() Span
}

// ContractNode is the root of the AST.
type ContractNode struct {
	Identity              *IdentityNode
	PurposeStatement      *PurposeStatementNode
	DataSemantics         *DataSemanticsNode
	BehavioralSemantics   *BehavioralSemanticsNode
	ExecutionConstraints  *ExecutionConstraintsNode
	HumanMachineContract  *HumanMachineContractNode
	Extensions            *ExtensionsNode // optional, nil if absent
	Span                  Span
}

func (n *ContractNode) NodeSpan() Span { return n.Span }

// IdentityNode captures the Identity section.
type IdentityNode struct {
	StableID         string
	Version          int64
	CreatedTimestamp string
	Owner            string
	SemanticHash     string
	Span             Span

	// Per-field spans, needed by the verifier to anchor diagnostics to the
	// exact literal rather than the section header.
	StableIDSpan         Span
	VersionSpan          Span
	CreatedTimestampSpan Span
	OwnerSpan            Span
	SemanticHashSpan     Span
}

func (n *IdentityNode) NodeSpan() Span { return n.Span }

// PurposeStatementNode captures the PurposeStatement section.
type PurposeStatementNode struct {
	Narrative        string
	IntentSource     string
	ConfidenceLevel  float64
	Span             Span
	NarrativeSpan    Span
	ConfidenceSpan   Span
}

func (n *PurposeStatementNode) NodeSpan() Span { return n.Span }

// StateFieldNode is a single named, typed field, used both for top-level
// state and for Object-type nested fields.
type StateFieldNode struct {
	Name    string
	Type    TypeExpr
	Default *LiteralValue // nil if absent
	Span    Span
}

func (n *StateFieldNode) NodeSpan() Span { return n.Span }

// DataSemanticsNode captures the DataSemantics section.
type DataSemanticsNode struct {
	State      []*StateFieldNode // order preserved as parsed
	Invariants []string
	Span       Span
}

func (n *DataSemanticsNode) NodeSpan() Span { return n.Span }

// OperationNode is a single named operation.
type OperationNode struct {
	Name          string
	Precondition  string
	Parameters    []*StateFieldNode
	Postcondition string
	SideEffects   []string
	Idempotence   string
	Span          Span
}

func (n *OperationNode) NodeSpan() Span { return n.Span }

// BehavioralSemanticsNode captures the BehavioralSemantics section.
type BehavioralSemanticsNode struct {
	Operations []*OperationNode
	Span       Span
}

func (n *BehavioralSemanticsNode) NodeSpan() Span { return n.Span }

// ResourceLimitsNode captures the nested resource_limits record.
type ResourceLimitsNode struct {
	MaxMemoryBytes       int64
	ComputationTimeoutMs int64
	MaxStateSizeBytes    int64
	Span                 Span
}

func (n *ResourceLimitsNode) NodeSpan() Span { return n.Span }

// ExecutionConstraintsNode captures the ExecutionConstraints section.
type ExecutionConstraintsNode struct {
	TriggerTypes         []string
	ResourceLimits       *ResourceLimitsNode
	ExternalPermissions  []string
	SandboxMode          string
	SandboxModeSpan      Span
	Span                 Span
}

func (n *ExecutionConstraintsNode) NodeSpan() Span { return n.Span }

// HumanMachineContractNode captures the three string lists of the
// HumanMachineContract section.
type HumanMachineContractNode struct {
	SystemCommitments []string
	SystemRefusals    []string
	UserObligations   []string
	Span              Span
}

func (n *HumanMachineContractNode) NodeSpan() Span { return n.Span }

// SystemExtensionNode is one named extension block with ordered custom fields.
type SystemExtensionNode struct {
	Name   string
	Fields []ExtensionField
	Span   Span
}

func (n *SystemExtensionNode) NodeSpan() Span { return n.Span }

// ExtensionField is a single name/value pair inside a SystemExtensionNode.
type ExtensionField struct {
	Name  string
	Value LiteralValue
}

// ExtensionsNode captures the optional Extensions section.
type ExtensionsNode struct {
	Systems []*SystemExtensionNode
	Span    Span
}

func (n *ExtensionsNode) NodeSpan() Span { return n.Span }
