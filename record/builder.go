package record

import (
	"fmt"

	"github.com/steinarvk/linejson/token"
)

// Builder is a token.WriteStream that assembles the tokens of one JSON value
// into a Value.  It expects a well-formed token stream, as produced by the
// decoder, and panics otherwise.
type Builder struct {
	stack  []frame
	result Value
}

type frame struct {
	collection Value
	key        *token.Scalar
}

var _ token.WriteStream = &Builder{}

// Put implements token.WriteStream.
func (b *Builder) Put(tok token.Token) {
	switch t := tok.(type) {
	case *token.StartObject:
		b.stack = append(b.stack, frame{collection: &Object{}})
	case *token.StartArray:
		b.stack = append(b.stack, frame{collection: &Array{}})
	case *token.EndObject, *token.EndArray:
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.add(top.collection)
	case *token.Scalar:
		if t.IsKey() {
			b.stack[len(b.stack)-1].key = t
			return
		}
		b.add((*Scalar)(t))
	default:
		panic(fmt.Sprintf("invalid token %#v", tok))
	}
}

func (b *Builder) add(v Value) {
	if len(b.stack) == 0 {
		if b.result != nil {
			panic("more than one value")
		}
		b.result = v
		return
	}
	top := &b.stack[len(b.stack)-1]
	switch c := top.collection.(type) {
	case *Array:
		c.Items = append(c.Items, v)
	case *Object:
		if top.key == nil {
			panic("object value without a key")
		}
		c.add(top.key, v)
		top.key = nil
	}
}

// Value returns the value built so far.  ok is false until a complete value
// has been put.
func (b *Builder) Value() (v Value, ok bool) {
	if b.result == nil || len(b.stack) > 0 {
		return nil, false
	}
	return b.result, true
}

// Reset discards any partial or complete value.
func (b *Builder) Reset() {
	b.stack = b.stack[:0]
	b.result = nil
}
