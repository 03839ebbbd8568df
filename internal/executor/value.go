package executor

import "encoding/json"

// ValueKind tags the shape carried by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBoolean
	ValueInteger
	ValueFloat
	ValueString
	ValueArray
	ValueObject
)

// Value is the tagged union used throughout execution state, inputs, and
// provenance: Null, Boolean, Integer(i64), Float(f64), String,
// Array([Value]), or Object(ordered map). Object iteration and
// serialization always proceed in key-sorted order, which encoding/json
// already guarantees for map[string]T — this is the sorted-map discipline
// the data model requires of every associative container.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Array  []Value
	Object map[string]Value
}

// MarshalJSON renders a Value per its kind; map[string]Value already
// serializes with alphabetically sorted keys.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNull:
		return []byte("null"), nil
	case ValueBoolean:
		return json.Marshal(v.Bool)
	case ValueInteger:
		return json.Marshal(v.Int)
	case ValueFloat:
		return json.Marshal(v.Float)
	case ValueString:
		return json.Marshal(v.Str)
	case ValueArray:
		if v.Array == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Array)
	case ValueObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.Object)
	default:
		return []byte("null"), nil
	}
}

// fromJSON converts a value decoded by a json.Decoder in UseNumber mode
// into a Value, distinguishing Integer from Float by whether the decoded
// json.Number parses cleanly as an int64.
func fromJSON(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Value{Kind: ValueNull}
	case bool:
		return Value{Kind: ValueBoolean, Bool: t}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Value{Kind: ValueInteger, Int: i}
		}
		f, _ := t.Float64()
		return Value{Kind: ValueFloat, Float: f}
	case string:
		return Value{Kind: ValueString, Str: t}
	case []interface{}:
		arr := make([]Value, len(t))
		for i, elem := range t {
			arr[i] = fromJSON(elem)
		}
		return Value{Kind: ValueArray, Array: arr}
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		for k, elem := range t {
			obj[k] = fromJSON(elem)
		}
		return Value{Kind: ValueObject, Object: obj}
	default:
		return Value{Kind: ValueNull}
	}
}

func isTruthy(v Value) bool {
	switch v.Kind {
	case ValueNull:
		return false
	case ValueBoolean:
		return v.Bool
	case ValueInteger:
		return v.Int != 0
	case ValueFloat:
		return v.Float != 0
	case ValueString:
		return v.Str != ""
	case ValueArray:
		return len(v.Array) > 0
	case ValueObject:
		return len(v.Object) > 0
	default:
		return false
	}
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValueNull:
		return true
	case ValueBoolean:
		return a.Bool == b.Bool
	case ValueInteger:
		return a.Int == b.Int
	case ValueFloat:
		return a.Float == b.Float
	case ValueString:
		return a.Str == b.Str
	case ValueArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !valuesEqual(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case ValueObject:
		if len(a.Object) != len(b.Object) {
			return false
		}
		for k, av := range a.Object {
			bv, ok := b.Object[k]
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// sizeOf estimates a Value's byte footprint per the heuristic formula:
// Null/Bool=1, Int/Float=8, String=len+24, Array=24+Σchild,
// Object=24+Σ(key+child).
func sizeOf(v Value) uint64 {
	switch v.Kind {
	case ValueNull, ValueBoolean:
		return 1
	case ValueInteger, ValueFloat:
		return 8
	case ValueString:
		return uint64(len(v.Str)) + 24
	case ValueArray:
		total := uint64(24)
		for _, child := range v.Array {
			total += sizeOf(child)
		}
		return total
	case ValueObject:
		total := uint64(24)
		for k, child := range v.Object {
			total += uint64(len(k)) + sizeOf(child)
		}
		return total
	default:
		return 0
	}
}
