package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"github.com/steinarvk/linejson/encoding/csv"
	"github.com/steinarvk/linejson/encoding/json"
	"github.com/steinarvk/linejson/internal/format"
	"github.com/steinarvk/linejson/record"
	"github.com/steinarvk/linejson/transform"
)

// A Sink writes the output of a transformer.  Records are written as
// compact JSON, one per line.  Output is buffered until Close is called,
// unless the sink is set to flush after every line.
type Sink struct {
	out     *bufio.Writer
	printer format.DefaultPrinter
	encoder json.Encoder
	rows    *csv.Encoder
	flush   bool
	emitted int
}

var _ transform.Emitter = (*Sink)(nil)

// NewSink returns a Sink writing to w.  If colorizer is not nil, records are
// colored with it.  If flushEachLine is true, each line is written to w as
// soon as it is complete, which is what you want when w is a terminal.
func NewSink(w io.Writer, colorizer *format.Colorizer, flushEachLine bool) *Sink {
	s := &Sink{out: bufio.NewWriter(w), flush: flushEachLine}
	s.printer.Writer = s.out
	if flushEachLine {
		s.printer.Flusher = s.out
	}
	s.encoder.Printer = &s.printer
	s.encoder.Colorizer = colorizer
	return s
}

func (s *Sink) EmitRecord(v record.Value) error {
	if err := s.flushRows(); err != nil {
		return err
	}
	if err := s.encoder.Encode(v); err != nil {
		return &OutputError{Err: err}
	}
	s.emitted++
	return nil
}

func (s *Sink) EmitText(text string) (err error) {
	if err := s.flushRows(); err != nil {
		return err
	}
	defer wrapOutputError(&err)
	defer format.CatchPrinterError(&err)
	s.printer.PrintBytes([]byte(text))
	s.printer.EndLine()
	s.emitted++
	return nil
}

// EmitRow writes row with standard CSV quoting.  Fields are separated by
// comma.
func (s *Sink) EmitRow(row []string, comma rune) error {
	if s.rows == nil || s.rows.Comma() != comma {
		if err := s.flushRows(); err != nil {
			return err
		}
		s.rows = csv.NewEncoder(s.out, comma)
	}
	if err := s.rows.Encode(row); err != nil {
		return &OutputError{Err: err}
	}
	s.emitted++
	if s.flush {
		return s.flushRows()
	}
	return nil
}

func (s *Sink) flushRows() error {
	if s.rows == nil {
		return nil
	}
	if err := s.rows.Flush(); err != nil {
		return &OutputError{Err: err}
	}
	if s.flush {
		if err := s.out.Flush(); err != nil {
			return &OutputError{Err: err}
		}
	}
	return nil
}

// Emitted returns the number of lines written so far.
func (s *Sink) Emitted() int {
	return s.emitted
}

// Close writes any buffered output.  It does not close the underlying
// writer.
func (s *Sink) Close() error {
	if err := s.flushRows(); err != nil {
		return err
	}
	if err := s.out.Flush(); err != nil {
		return &OutputError{Err: err}
	}
	return nil
}

// An OutputError is returned when output could not be written, e.g. because
// the output is a pipe that was closed.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing output: %s", e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

func wrapOutputError(err *error) {
	if *err != nil {
		*err = &OutputError{Err: *err}
	}
}
