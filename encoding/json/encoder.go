package json

import (
	"fmt"

	"github.com/steinarvk/linejson/internal/format"
	"github.com/steinarvk/linejson/record"
)

// An Encoder outputs records as compact JSON, one per line, using the given
// Printer.  If the Colorizer is not nil, scalars and keys are colored.
type Encoder struct {
	format.Printer
	*format.Colorizer

	buf []byte
}

// Encode writes v followed by a new line.
//
// An error can be returned if the Printer could not perform some writing
// operation.  A typical example is if it attempt to write to a closed pipe.
func (e *Encoder) Encode(v record.Value) (err error) {
	defer format.CatchPrinterError(&err)
	if e.Colorizer == nil {
		// Without colors the encoding is exactly the compact JSON of v.
		e.buf = v.AppendJSON(e.buf[:0])
		e.PrintBytes(e.buf)
	} else {
		e.writeValue(v)
	}
	e.EndLine()
	return nil
}

func (e *Encoder) writeValue(value record.Value) {
	switch v := value.(type) {
	case *record.Scalar:
		e.Colorizer.PrintScalar(e.Printer, v.Scalar())
	case *record.Object:
		e.PrintBytes(openObjectBytes)
		for i, f := range v.Fields() {
			if i > 0 {
				e.PrintBytes(itemSeparatorBytes)
			}
			e.Colorizer.PrintScalar(e.Printer, f.Key)
			e.PrintBytes(keyValueSeparatorBytes)
			e.writeValue(f.Value)
		}
		e.PrintBytes(closeObjectBytes)
	case *record.Array:
		e.PrintBytes(openArrayBytes)
		for i, item := range v.Items {
			if i > 0 {
				e.PrintBytes(itemSeparatorBytes)
			}
			e.writeValue(item)
		}
		e.PrintBytes(closeArrayBytes)
	default:
		panic(fmt.Sprintf("invalid value: %#v", value))
	}
}

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(":")
)
