// Package csv writes rows of text fields in CSV format.  Fields are quoted
// when they contain the separator, a quote or a line break, or when they
// start with a space.
package csv

import (
	"encoding/csv"
	"io"
)

// An Encoder writes rows to an io.Writer.  Output is buffered until Flush is
// called.
type Encoder struct {
	writer *csv.Writer
	comma  rune
}

// NewEncoder sets up a new Encoder writing to out, with fields separated by
// comma.  Lines are terminated with "\n".
func NewEncoder(out io.Writer, comma rune) *Encoder {
	w := csv.NewWriter(out)
	w.Comma = comma
	return &Encoder{writer: w, comma: comma}
}

// Comma returns the field separator.
func (e *Encoder) Comma() rune {
	return e.comma
}

// Encode writes one row.
func (e *Encoder) Encode(row []string) error {
	return e.writer.Write(row)
}

// Flush writes any buffered rows to the underlying writer.
func (e *Encoder) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}
