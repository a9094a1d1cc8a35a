package transform

import (
	"strings"

	"github.com/steinarvk/linejson/encoding/json"
	"github.com/steinarvk/linejson/internal/debug"
	"github.com/steinarvk/linejson/record"
)

// An Operand is the right hand side of a comparison.  It is either a
// literal value or the name of another field of the record being compared.
type Operand struct {
	Literal record.Value // nil if the operand is a field reference
	Field   string
}

// IsField returns true if the operand refers to a field of the record.
func (o Operand) IsField() bool {
	return o.Literal == nil
}

// Value returns the value of the operand for rec.  The boolean is false if
// the operand refers to a field that rec does not have.
func (o Operand) Value(rec record.Value) (record.Value, bool) {
	if o.Literal != nil {
		return o.Literal, true
	}
	return record.Lookup(rec, o.Field)
}

func (o Operand) String() string {
	if o.Literal != nil {
		return record.JSON(o.Literal)
	}
	return "field " + o.Field
}

// ResolveOperand decides what the text of a comparison operand stands for.
// If forceString is true it is a string.  Otherwise it is the value it
// spells, either as JSON or as one of the Python literals True, False, None
// or a single-quoted string.  Any other text is the name of a field.
func ResolveOperand(text string, forceString bool) Operand {
	var op Operand
	switch {
	case forceString:
		op.Literal = record.String(text)
	default:
		if v, err := json.DecodeRecord([]byte(text)); err == nil {
			op.Literal = v
		} else if v, ok := pythonLiteral(text); ok {
			op.Literal = v
		} else {
			op.Field = text
		}
	}
	if debug.On {
		debug.Printf("operand %q resolved to %s", text, op)
	}
	return op
}

func pythonLiteral(text string) (record.Value, bool) {
	switch text {
	case "True":
		return record.Bool(true), true
	case "False":
		return record.Bool(false), true
	case "None":
		return record.Null, true
	}
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return nil, false
	}
	var b strings.Builder
	body := text[1 : len(text)-1]
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			b.WriteByte(body[i])
		case c == '\'':
			// An unescaped quote ends the literal early.
			return nil, false
		default:
			b.WriteByte(c)
		}
	}
	return record.String(b.String()), true
}
