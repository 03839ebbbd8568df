package verify

import (
	"regexp"

	"github.com/icl-lang/icl/internal/ast"
)

var stableIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,30}[a-z0-9]$`)
var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// checkTypes implements Phase A: Identity/PurposeStatement field shape,
// recursive TypeExpression validity, default-literal/type agreement, and
// strictly-positive resource limits.
func checkTypes(r *Result, c *ast.ContractNode) {
	checkIdentityTypes(r, c.Identity)
	checkPurposeTypes(r, c.PurposeStatement)

	for _, f := range c.DataSemantics.State {
		checkTypeExpr(r, f.Type, f.Span)
		if f.Default != nil {
			checkDefaultMatchesType(r, *f.Default, f.Type, f.Span)
		}
	}
	for _, op := range c.BehavioralSemantics.Operations {
		for _, p := range op.Parameters {
			checkTypeExpr(r, p.Type, p.Span)
			if p.Default != nil {
				checkDefaultMatchesType(r, *p.Default, p.Type, p.Span)
			}
		}
	}

	checkResourceLimits(r, c.ExecutionConstraints.ResourceLimits)
}

func checkIdentityTypes(r *Result, id *ast.IdentityNode) {
	if id.Version < 0 {
		r.add(SeverityError, KindTypeError, "Identity.version must be >= 0", id.VersionSpan)
	}
	if !stableIDPattern.MatchString(id.StableID) {
		r.add(SeverityError, KindTypeError, "Identity.stable_id must match [a-z0-9][a-z0-9-]{0,30}[a-z0-9]", id.StableIDSpan)
	}
	if !hexPattern.MatchString(id.SemanticHash) {
		r.add(SeverityError, KindTypeError, "Identity.semantic_hash must be hexadecimal", id.SemanticHashSpan)
	}
}

func checkPurposeTypes(r *Result, p *ast.PurposeStatementNode) {
	if p.ConfidenceLevel < 0.0 || p.ConfidenceLevel > 1.0 {
		r.add(SeverityError, KindTypeError, "PurposeStatement.confidence_level must be within [0.0, 1.0]", p.ConfidenceSpan)
	}
	if len(p.Narrative) > 500 {
		r.add(SeverityWarning, KindTypeError, "PurposeStatement.narrative exceeds 500 characters", p.NarrativeSpan)
	}
}

func checkResourceLimits(r *Result, rl *ast.ResourceLimitsNode) {
	if rl.MaxMemoryBytes <= 0 {
		r.add(SeverityError, KindTypeError, "resource_limits.max_memory_bytes must be strictly positive", rl.Span)
	}
	if rl.ComputationTimeoutMs <= 0 {
		r.add(SeverityError, KindTypeError, "resource_limits.computation_timeout_ms must be strictly positive", rl.Span)
	}
	if rl.MaxStateSizeBytes <= 0 {
		r.add(SeverityError, KindTypeError, "resource_limits.max_state_size_bytes must be strictly positive", rl.Span)
	}
}

// checkTypeExpr recursively validates a type expression's shape.
func checkTypeExpr(r *Result, t ast.TypeExpr, span ast.Span) {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		// Always valid: the parser only ever produces recognized kinds.
	case *ast.ArrayType:
		checkTypeExpr(r, v.Element, v.Span)
	case *ast.MapType:
		if !isValidMapKeyType(v.Key) {
			r.add(SeverityError, KindTypeError, "Map key type must be one of String, Integer, Boolean, ISO8601, UUID, Enum", v.Span)
		}
		checkTypeExpr(r, v.Key, v.Span)
		checkTypeExpr(r, v.Value, v.Span)
	case *ast.ObjectType:
		seen := make(map[string]bool, len(v.Fields))
		for _, f := range v.Fields {
			if seen[f.Name] {
				r.add(SeverityError, KindTypeError, "Object type has duplicate field: "+f.Name, f.Span)
			}
			seen[f.Name] = true
			checkTypeExpr(r, f.Type, f.Span)
			if f.Default != nil {
				checkDefaultMatchesType(r, *f.Default, f.Type, f.Span)
			}
		}
	case *ast.EnumType:
		if len(v.Variants) == 0 {
			r.add(SeverityError, KindTypeError, "Enum type must declare at least one variant", v.Span)
		}
		seen := make(map[string]bool, len(v.Variants))
		for _, variant := range v.Variants {
			if seen[variant] {
				r.add(SeverityError, KindTypeError, "Enum type has duplicate variant: "+variant, v.Span)
			}
			seen[variant] = true
		}
	}
}

func isValidMapKeyType(t ast.TypeExpr) bool {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		switch v.Kind {
		case ast.KindString, ast.KindInteger, ast.KindBoolean, ast.KindISO8601, ast.KindUUID:
			return true
		default:
			return false
		}
	case *ast.EnumType:
		return true
	default:
		return false
	}
}

// checkDefaultMatchesType enforces that a default literal agrees with its
// declared type, permitting only the Integer-literal-to-Float-field
// coercion.
func checkDefaultMatchesType(r *Result, lit ast.LiteralValue, t ast.TypeExpr, span ast.Span) {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		if typeMismatch(lit, v.Kind) {
			r.add(SeverityError, KindTypeError, "default value does not match declared type "+v.Kind.String(), span)
		}
	case *ast.ArrayType:
		if lit.Kind != ast.LitArray {
			r.add(SeverityError, KindTypeError, "default value does not match declared Array type", span)
			return
		}
		for _, elem := range lit.Array {
			checkDefaultMatchesType(r, elem, v.Element, span)
		}
	case *ast.EnumType:
		if lit.Kind != ast.LitString || !containsString(v.Variants, lit.Str) {
			r.add(SeverityError, KindTypeError, "default value is not a declared Enum variant", span)
		}
	default:
		r.add(SeverityError, KindTypeError, "declared type does not support a default value", span)
	}
}

func typeMismatch(lit ast.LiteralValue, kind ast.PrimitiveKind) bool {
	switch kind {
	case ast.KindInteger:
		return lit.Kind != ast.LitInteger
	case ast.KindFloat:
		return lit.Kind != ast.LitFloat && lit.Kind != ast.LitInteger
	case ast.KindString, ast.KindISO8601, ast.KindUUID:
		return lit.Kind != ast.LitString
	case ast.KindBoolean:
		return lit.Kind != ast.LitBoolean
	default:
		return true
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
