package record

import "github.com/steinarvk/linejson/token"

// ToGo converts v to plain Go values: nil, bool, int, float64, string,
// []any and map[string]any.  Integral numbers that fit an int become int so
// that they behave as integers in expressions.
func ToGo(v Value) any {
	switch x := v.(type) {
	case *Scalar:
		s := x.Scalar()
		switch s.Type() {
		case token.Null:
			return nil
		case token.Boolean:
			return s.Bytes[0] == 't'
		case token.Number:
			if n, ok := s.Int64(); ok && n == int64(int(n)) {
				return int(n)
			}
			f, _ := s.Float64()
			return f
		default:
			return s.ToString()
		}
	case *Array:
		items := make([]any, len(x.Items))
		for i, item := range x.Items {
			items[i] = ToGo(item)
		}
		return items
	case *Object:
		return Fields(x)
	default:
		panic("invalid value")
	}
}

// Fields converts the fields of obj to a map.  Repeated keys take the last
// value.
func Fields(obj *Object) map[string]any {
	m := make(map[string]any, len(obj.fields))
	for _, f := range obj.fields {
		m[f.Key.ToString()] = ToGo(f.Value)
	}
	return m
}
