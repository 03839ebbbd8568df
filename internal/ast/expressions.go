package ast

import "fmt"

// PrimitiveKind enumerates the scalar ICL types.
type PrimitiveKind int

const (
	KindInteger PrimitiveKind = iota
	KindFloat
	KindString
	KindBoolean
	KindISO8601
	KindUUID
)

// String renders the primitive kind using its ICL surface-syntax name.
func (k PrimitiveKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindISO8601:
		return "ISO8601"
	case KindUUID:
		return "UUID"
	default:
		return fmt.Sprintf("UnknownPrimitive(%d)", int(k))
	}
}

// TypeExpr is the tagged union of ICL type expressions: Primitive, Array,
// Map, Object, and Enum. Implementations are exhaustively matched by the
// normalizer, verifier, and lowering passes via a type switch — there is no
// open recursion (no virtual dispatch) per design.
type TypeExpr interface {
	Node
	typeExpr()
}

// PrimitiveType is a scalar type (Integer, Float, String, Boolean, ISO8601,
// UUID).
type PrimitiveType struct {
	Kind PrimitiveKind
	Span Span
}

func (t *PrimitiveType) NodeSpan() Span { return t.Span }
func (t *PrimitiveType) typeExpr()      {}

// ArrayType is Array<T>.
type ArrayType struct {
	Element TypeExpr
	Span    Span
}

func (t *ArrayType) NodeSpan() Span { return t.Span }
func (t *ArrayType) typeExpr()      {}

// MapType is Map<K,V>.
type MapType struct {
	Key   TypeExpr
	Value TypeExpr
	Span  Span
}

func (t *MapType) NodeSpan() Span { return t.Span }
func (t *MapType) typeExpr()      {}

// ObjectType is Object{ fields... }, an inline record type. Field order is
// preserved exactly as parsed.
type ObjectType struct {
	Fields []*StateFieldNode
	Span   Span
}

func (t *ObjectType) NodeSpan() Span { return t.Span }
func (t *ObjectType) typeExpr()      {}

// EnumType is Enum[ "a", "b", ... ].
type EnumType struct {
	Variants []string
	Span     Span
}

func (t *EnumType) NodeSpan() Span { return t.Span }
func (t *EnumType) typeExpr()      {}

// LiteralKind enumerates the shapes a LiteralValue may take.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitInteger
	LitFloat
	LitBoolean
	LitArray
)

// LiteralValue is the tagged union String | Integer | Float | Boolean |
// Array([LiteralValue]).
type LiteralValue struct {
	Kind    LiteralKind
	Str     string
	Int     int64
	Float   float64
	Bool    bool
	Array   []LiteralValue
	Span    Span
}

func (v LiteralValue) NodeSpan() Span { return v.Span }
