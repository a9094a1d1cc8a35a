package record

import (
	"fmt"

	"github.com/steinarvk/linejson/token"
)

// A Value is a decoded JSON value: a *Scalar, an *Array or an *Object.
type Value interface {
	// AppendJSON appends the compact JSON encoding of the value to b.
	AppendJSON(b []byte) []byte
}

// Scalar is a JSON string, number, boolean or null.  It keeps the literal
// bytes it was decoded from.
type Scalar token.Scalar

var _ Value = &Scalar{}

func (s *Scalar) Scalar() *token.Scalar {
	return (*token.Scalar)(s)
}

func (s *Scalar) AppendJSON(b []byte) []byte {
	return append(b, s.Bytes...)
}

// String returns a Scalar for the string s.
func String(s string) *Scalar {
	return (*Scalar)(token.StringScalar(s))
}

// Int returns a Scalar for the integer n.
func Int(n int64) *Scalar {
	return (*Scalar)(token.Int64Scalar(n))
}

// Bool returns a Scalar for the boolean b.
func Bool(b bool) *Scalar {
	return (*Scalar)(token.BoolScalar(b))
}

// Null is the JSON null value.
var Null = (*Scalar)(token.NullScalar)

// Array is a JSON array.
type Array struct {
	Items []Value
}

var _ Value = &Array{}

func (a *Array) AppendJSON(b []byte) []byte {
	b = append(b, '[')
	for i, item := range a.Items {
		if i > 0 {
			b = append(b, ',')
		}
		b = item.AppendJSON(b)
	}
	return append(b, ']')
}

// A Field is a key-value pair in an Object.  The key keeps its literal
// bytes so it is written out as it was read.
type Field struct {
	Key   *token.Scalar
	Value Value
}

// Object is a JSON object.  Fields are kept in input order.
type Object struct {
	fields []Field
}

var _ Value = &Object{}

// NewObject returns an object containing the given key-value pairs, in
// order.  It panics if the arguments do not alternate string and Value.
func NewObject(kvs ...any) *Object {
	if len(kvs)%2 != 0 {
		panic("odd number of arguments")
	}
	obj := &Object{}
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Sprintf("key must be a string, got %T", kvs[i]))
		}
		obj.Set(key, kvs[i+1].(Value))
	}
	return obj
}

func (o *Object) AppendJSON(b []byte) []byte {
	b = append(b, '{')
	for i, f := range o.fields {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, f.Key.Bytes...)
		b = append(b, ':')
		b = f.Value.AppendJSON(b)
	}
	return append(b, '}')
}

// Fields returns the fields of the object in order.  The slice must not be
// modified.
func (o *Object) Fields() []Field {
	return o.fields
}

func (o *Object) Len() int {
	return len(o.fields)
}

// Get returns the value associated with key.  If the key occurs more than
// once the last occurrence wins, as with most JSON decoders.
func (o *Object) Get(key string) (Value, bool) {
	i := o.index(key)
	if i < 0 {
		return nil, false
	}
	return o.fields[i].Value, true
}

// Set associates value with key, replacing the existing value in place or
// appending a new field at the end.
func (o *Object) Set(key string, value Value) {
	i := o.index(key)
	if i >= 0 {
		o.fields[i].Value = value
		return
	}
	k := token.StringScalar(key)
	k.TypeAndFlags |= token.KeyMask
	o.fields = append(o.fields, Field{Key: k, Value: value})
}

func (o *Object) add(key *token.Scalar, value Value) {
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

func (o *Object) index(key string) int {
	for i := len(o.fields) - 1; i >= 0; i-- {
		if o.fields[i].Key.EqualsString(key) {
			return i
		}
	}
	return -1
}

// Lookup returns the value of the field key in v.  Values that are not
// objects have no fields.
func Lookup(v Value, key string) (Value, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, false
	}
	return obj.Get(key)
}

// JSON returns the compact JSON encoding of v.
func JSON(v Value) string {
	return string(v.AppendJSON(nil))
}
