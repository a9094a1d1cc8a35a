package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/steinarvk/linejson/encoding/json"
	"github.com/steinarvk/linejson/internal/debug"
	"github.com/steinarvk/linejson/transform"
)

// Options control how Run deals with bad input.
type Options struct {
	// SkipInvalid makes Run log and skip lines which cannot be decoded, or
	// which the transformer rejects with an error, instead of stopping.
	SkipInvalid bool

	// Logger receives messages about skipped lines.  If nil, the standard
	// logger is used.
	Logger *log.Logger
}

// Stats summarises a run.
type Stats struct {
	Lines   int // lines read
	Records int // records passed to the transformer
	Skipped int // lines skipped because of errors
	Emitted int // lines of output
}

func (s Stats) String() string {
	return fmt.Sprintf("read %d lines, processed %d records, skipped %d, wrote %d lines",
		s.Lines, s.Records, s.Skipped, s.Emitted)
}

// A ParseError reports a line of input which is not a valid JSON value.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid JSON: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A RecordError reports a record that the transformer could not process.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

// Run reads records from in, one per line, and passes them to t in order.
// Whatever t emits is written to sink.  Once the input is exhausted, t is
// finished if it is a transform.Finisher.  The sink is not closed.
//
// Unless opts.SkipInvalid is set, Run stops at the first line that is not
// valid JSON or that t fails to process.  Errors writing to the sink always
// stop the run.
func Run(in io.Reader, t transform.Transformer, sink *Sink, opts Options) (stats Stats, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	defer func() {
		stats.Emitted = sink.Emitted()
	}()

	lines := NewLineReader(in)
	decoder := json.NewDecoder()
	for {
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading input: %w", err)
		}
		stats.Lines++
		lineErr := processLine(decoder, line, lines.Line(), t, sink)
		if lineErr == nil {
			stats.Records++
			continue
		}
		var outErr *OutputError
		if errors.As(lineErr, &outErr) || !opts.SkipInvalid {
			return stats, lineErr
		}
		var parseErr *ParseError
		if !errors.As(lineErr, &parseErr) {
			stats.Records++
		}
		stats.Skipped++
		logger.Printf("skipping %s", lineErr)
	}
	if f, ok := t.(transform.Finisher); ok {
		if err := f.Finish(sink); err != nil {
			return stats, err
		}
	}
	if debug.On {
		debug.Printf("run finished: %s", stats)
	}
	return stats, nil
}

func processLine(decoder *json.Decoder, line []byte, lineno int, t transform.Transformer, sink *Sink) error {
	if !utf8.Valid(line) {
		return &ParseError{Line: lineno, Err: errInvalidUTF8}
	}
	rec, err := decoder.Decode(line)
	if err != nil {
		return &ParseError{Line: lineno, Err: err}
	}
	if err := t.Transform(rec, sink); err != nil {
		var outErr *OutputError
		if errors.As(err, &outErr) {
			return err
		}
		return &RecordError{Line: lineno, Err: err}
	}
	return nil
}
