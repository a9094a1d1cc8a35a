// Package pipeline connects the pieces of linejson: it reads records from
// the input one line at a time, feeds them to a transform.Transformer and
// writes what it emits to the output.
package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// A LineReader splits its input into lines of any length.  The line
// terminator ("\n" or "\r\n") is not included in the lines returned.  The
// last line does not need a terminator.
type LineReader struct {
	r    *bufio.Reader
	buf  []byte
	line int
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line, or io.EOF when there are no more.  The
// returned slice is only valid until the next call to Next.
func (l *LineReader) Next() ([]byte, error) {
	l.buf = l.buf[:0]
	for {
		chunk, err := l.r.ReadSlice('\n')
		l.buf = append(l.buf, chunk...)
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(l.buf) == 0 {
				return nil, io.EOF
			}
		case err != nil:
			return nil, err
		}
		l.line++
		line := bytes.TrimSuffix(l.buf, newline)
		return bytes.TrimSuffix(line, carriageReturn), nil
	}
}

// Line returns the 1-based number of the last line returned by Next.
func (l *LineReader) Line() int {
	return l.line
}

var (
	newline        = []byte("\n")
	carriageReturn = []byte("\r")
)
