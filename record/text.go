package record

import (
	"github.com/steinarvk/linejson/token"
)

// Kind classifies values.  Kinds are declared in the order used to compare
// values of different kinds.
type Kind int

const (
	NullKind Kind = iota
	BooleanKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{"null", "boolean", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// KindOf returns the kind of v.
func KindOf(v Value) Kind {
	switch x := v.(type) {
	case *Scalar:
		switch x.Scalar().Type() {
		case token.Null:
			return NullKind
		case token.Boolean:
			return BooleanKind
		case token.Number:
			return NumberKind
		default:
			return StringKind
		}
	case *Array:
		return ArrayKind
	case *Object:
		return ObjectKind
	default:
		panic("invalid value")
	}
}

// Text is the display form of a value, used wherever a field is matched
// against a pattern or printed as plain text:
//
//	"abc"         -> abc
//	12.50         -> 12.50 (the literal as found in the input)
//	true          -> true
//	null          -> null
//	[1, {"a": 2}] -> [1,{"a":2}] (compact JSON)
func Text(v Value) string {
	if s, ok := v.(*Scalar); ok {
		if s.Scalar().Type() == token.String {
			return s.Scalar().ToString()
		}
		return string(s.Bytes)
	}
	return JSON(v)
}

// FieldText returns the display form of the field key in v, or the empty
// string if there is no such field.
func FieldText(v Value, key string) string {
	field, ok := Lookup(v, key)
	if !ok {
		return ""
	}
	return Text(field)
}

// Key returns a string which identifies v up to equality of scalars, so
// that values can be counted in a map.  Numbers with the same numeric value
// have the same key (1, 1.0 and 1e0 are the same).  Arrays and objects are
// keyed by their compact JSON encoding.
func Key(v Value) string {
	switch KindOf(v) {
	case NullKind:
		return "z"
	case BooleanKind:
		return "b" + Text(v)
	case NumberKind:
		s := v.(*Scalar)
		if d, ok := decimal(s); ok {
			if d.IsZero() {
				return "n0"
			}
			d.Reduce(d)
			return "n" + d.String()
		}
		return "n" + string(s.Bytes)
	case StringKind:
		return "s" + Text(v)
	default:
		return "j" + JSON(v)
	}
}
