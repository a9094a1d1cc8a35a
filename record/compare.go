package record

import (
	"bytes"
	"cmp"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, together
// with or after b.
//
// Values of the same kind compare naturally: numbers by numeric value
// (exactly, whatever their size or precision), strings by byte-wise order,
// false before true, arrays element by element then by length.  Objects
// have no natural order and compare by their compact JSON encoding.
//
// Values of different kinds are ordered by kind:
//
//	null < boolean < number < string < array < object
func Compare(a, b Value) int {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch ka {
	case NullKind:
		return 0
	case BooleanKind:
		// The bytes are "true" or "false" and 'f' < 't'
		return cmp.Compare(a.(*Scalar).Bytes[0], b.(*Scalar).Bytes[0])
	case NumberKind:
		return compareNumbers(a.(*Scalar), b.(*Scalar))
	case StringKind:
		return strings.Compare(Text(a), Text(b))
	case ArrayKind:
		xs, ys := a.(*Array).Items, b.(*Array).Items
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if c := Compare(xs[i], ys[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(xs), len(ys))
	default:
		return bytes.Compare(a.AppendJSON(nil), b.AppendJSON(nil))
	}
}

// Equal reports whether a and b are the same JSON value.  Numbers are equal
// when their numeric values are, and objects are equal when they have the
// same keys with equal values, in any order.
func Equal(a, b Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case ArrayKind:
		xs, ys := a.(*Array).Items, b.(*Array).Items
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !Equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		return containsFields(a.(*Object), b.(*Object)) && containsFields(b.(*Object), a.(*Object))
	default:
		return Compare(a, b) == 0
	}
}

// containsFields reports whether every key of x is in y with an equal value.
func containsFields(x, y *Object) bool {
	for _, f := range x.fields {
		key := f.Key.ToString()
		xv, _ := x.Get(key)
		yv, ok := y.Get(key)
		if !ok || !Equal(xv, yv) {
			return false
		}
	}
	return true
}

func compareNumbers(a, b *Scalar) int {
	x, okx := decimal(a)
	y, oky := decimal(b)
	if !okx || !oky {
		return bytes.Compare(a.Bytes, b.Bytes)
	}
	return x.Cmp(y)
}

func decimal(s *Scalar) (*apd.Decimal, bool) {
	d, _, err := apd.NewFromString(string(s.Bytes))
	if err != nil {
		return nil, false
	}
	return d, true
}
