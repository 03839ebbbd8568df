package canonical

import (
	"strconv"
	"strings"

	"github.com/icl-lang/icl/internal/ast"
)

// RenderContract serializes an already-sorted ContractNode into canonical
// ICL text: fixed section order, two-space indentation, one field per line
// within every record, a trailing comma after every field line.
func RenderContract(c *ast.ContractNode) string {
	var sb strings.Builder
	sb.WriteString("Contract {\n")
	renderIdentity(&sb, 1, c.Identity)
	renderPurpose(&sb, 1, c.PurposeStatement)
	renderData(&sb, 1, c.DataSemantics)
	renderBehavior(&sb, 1, c.BehavioralSemantics)
	renderExec(&sb, 1, c.ExecutionConstraints)
	renderHuman(&sb, 1, c.HumanMachineContract)
	sb.WriteString("}\n")
	if c.Extensions != nil && len(c.Extensions.Systems) > 0 {
		renderExtensions(&sb, c.Extensions)
	}
	return sb.String()
}

func ind(level int) string { return strings.Repeat("  ", level) }

func writeField(sb *strings.Builder, level int, name, valueText string) {
	sb.WriteString(ind(level))
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(valueText)
	sb.WriteString(",\n")
}

func renderIdentity(sb *strings.Builder, lvl int, id *ast.IdentityNode) {
	sb.WriteString(ind(lvl) + "Identity {\n")
	writeField(sb, lvl+1, "created_timestamp", quote(id.CreatedTimestamp))
	writeField(sb, lvl+1, "owner", quote(id.Owner))
	writeField(sb, lvl+1, "semantic_hash", quote(id.SemanticHash))
	writeField(sb, lvl+1, "stable_id", quote(id.StableID))
	writeField(sb, lvl+1, "version", strconv.FormatInt(id.Version, 10))
	sb.WriteString(ind(lvl) + "}\n")
}

func renderPurpose(sb *strings.Builder, lvl int, p *ast.PurposeStatementNode) {
	sb.WriteString(ind(lvl) + "PurposeStatement {\n")
	writeField(sb, lvl+1, "confidence_level", renderFloat(p.ConfidenceLevel))
	writeField(sb, lvl+1, "intent_source", quote(p.IntentSource))
	writeField(sb, lvl+1, "narrative", quote(p.Narrative))
	sb.WriteString(ind(lvl) + "}\n")
}

func renderData(sb *strings.Builder, lvl int, d *ast.DataSemanticsNode) {
	sb.WriteString(ind(lvl) + "DataSemantics {\n")
	writeField(sb, lvl+1, "invariants", renderStringListInline(d.Invariants))
	sb.WriteString(ind(lvl+1) + "state: {\n")
	for _, f := range d.State {
		renderStateField(sb, lvl+2, f)
	}
	sb.WriteString(ind(lvl+1) + "},\n")
	sb.WriteString(ind(lvl) + "}\n")
}

func renderStateField(sb *strings.Builder, lvl int, f *ast.StateFieldNode) {
	line := f.Name + ": " + renderType(f.Type)
	if f.Default != nil {
		line += " = " + renderLiteral(*f.Default)
	}
	sb.WriteString(ind(lvl))
	sb.WriteString(line)
	sb.WriteString(",\n")
}

func renderBehavior(sb *strings.Builder, lvl int, b *ast.BehavioralSemanticsNode) {
	sb.WriteString(ind(lvl) + "BehavioralSemantics {\n")
	sb.WriteString(ind(lvl+1) + "operations: [\n")
	for _, op := range b.Operations {
		renderOperation(sb, lvl+2, op)
	}
	sb.WriteString(ind(lvl+1) + "],\n")
	sb.WriteString(ind(lvl) + "}\n")
}

func renderOperation(sb *strings.Builder, lvl int, op *ast.OperationNode) {
	sb.WriteString(ind(lvl) + "{\n")
	writeField(sb, lvl+1, "idempotence", quote(op.Idempotence))
	writeField(sb, lvl+1, "name", quote(op.Name))
	sb.WriteString(ind(lvl+1) + "parameters: {\n")
	for _, param := range op.Parameters {
		renderStateField(sb, lvl+2, param)
	}
	sb.WriteString(ind(lvl+1) + "},\n")
	writeField(sb, lvl+1, "postcondition", quote(op.Postcondition))
	writeField(sb, lvl+1, "precondition", quote(op.Precondition))
	writeField(sb, lvl+1, "side_effects", renderStringListInline(op.SideEffects))
	sb.WriteString(ind(lvl) + "},\n")
}

func renderExec(sb *strings.Builder, lvl int, e *ast.ExecutionConstraintsNode) {
	sb.WriteString(ind(lvl) + "ExecutionConstraints {\n")
	writeField(sb, lvl+1, "external_permissions", renderStringListInline(e.ExternalPermissions))
	sb.WriteString(ind(lvl+1) + "resource_limits: {\n")
	writeField(sb, lvl+2, "computation_timeout_ms", strconv.FormatInt(e.ResourceLimits.ComputationTimeoutMs, 10))
	writeField(sb, lvl+2, "max_memory_bytes", strconv.FormatInt(e.ResourceLimits.MaxMemoryBytes, 10))
	writeField(sb, lvl+2, "max_state_size_bytes", strconv.FormatInt(e.ResourceLimits.MaxStateSizeBytes, 10))
	sb.WriteString(ind(lvl+1) + "},\n")
	writeField(sb, lvl+1, "sandbox_mode", quote(e.SandboxMode))
	writeField(sb, lvl+1, "trigger_types", renderStringListInline(e.TriggerTypes))
	sb.WriteString(ind(lvl) + "}\n")
}

func renderHuman(sb *strings.Builder, lvl int, h *ast.HumanMachineContractNode) {
	sb.WriteString(ind(lvl) + "HumanMachineContract {\n")
	writeField(sb, lvl+1, "system_commitments", renderStringListInline(h.SystemCommitments))
	writeField(sb, lvl+1, "system_refusals", renderStringListInline(h.SystemRefusals))
	writeField(sb, lvl+1, "user_obligations", renderStringListInline(h.UserObligations))
	sb.WriteString(ind(lvl) + "}\n")
}

func renderExtensions(sb *strings.Builder, ext *ast.ExtensionsNode) {
	sb.WriteString("Extensions {\n")
	for _, sys := range ext.Systems {
		sb.WriteString(ind(1) + sys.Name + " {\n")
		for _, f := range sys.Fields {
			writeField(sb, 2, f.Name, renderLiteral(f.Value))
		}
		sb.WriteString(ind(1) + "}\n")
	}
	sb.WriteString("}\n")
}

// renderType renders a type expression back into ICL surface syntax, with
// Object fields and Enum variants in their already-sorted order.
func renderType(t ast.TypeExpr) string {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		return v.Kind.String()
	case *ast.ArrayType:
		return "Array<" + renderType(v.Element) + ">"
	case *ast.MapType:
		return "Map<" + renderType(v.Key) + "," + renderType(v.Value) + ">"
	case *ast.ObjectType:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			part := f.Name + ": " + renderType(f.Type)
			if f.Default != nil {
				part += " = " + renderLiteral(*f.Default)
			}
			parts[i] = part
		}
		return "Object { " + strings.Join(parts, ", ") + " }"
	case *ast.EnumType:
		quoted := make([]string, len(v.Variants))
		for i, variant := range v.Variants {
			quoted[i] = quote(variant)
		}
		return "Enum [" + strings.Join(quoted, ", ") + "]"
	default:
		return "Unknown"
	}
}

func renderLiteral(lit ast.LiteralValue) string {
	switch lit.Kind {
	case ast.LitString:
		return quote(lit.Str)
	case ast.LitInteger:
		return strconv.FormatInt(lit.Int, 10)
	case ast.LitFloat:
		return renderFloat(lit.Float)
	case ast.LitBoolean:
		if lit.Bool {
			return "true"
		}
		return "false"
	case ast.LitArray:
		parts := make([]string, len(lit.Array))
		for i, child := range lit.Array {
			parts[i] = renderLiteral(child)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "null"
	}
}

// renderFloat always renders with a decimal point, per canonicalization rule
// (0 => "0.0").
func renderFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func renderStringListInline(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote escapes and wraps a string using the lexer's accepted escapes:
// \n \t \\ \".
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
