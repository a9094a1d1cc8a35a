package json

import (
	"fmt"

	"github.com/steinarvk/linejson/internal/scanner"
	"github.com/steinarvk/linejson/record"
	"github.com/steinarvk/linejson/token"
)

// A SyntaxError describes why a line is not valid JSON.  Col is the 1-based
// column (in runes) where the problem was found.
type SyntaxError struct {
	Col int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at C%d: %s", e.Col, e.Msg)
}

// A Decoder decodes lines of input, each containing exactly one JSON value.
// A Decoder can be reused for many lines but is not safe for concurrent use.
type Decoder struct {
	scanr   scanner.Scanner
	builder record.Builder
}

// NewDecoder sets up a new Decoder instance.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses line into a record.Value.  Whitespace around the value is
// allowed but anything else after it is an error, as is an empty line.
func (d *Decoder) Decode(line []byte) (record.Value, error) {
	d.builder.Reset()
	if err := d.DecodeTokens(line, &d.builder); err != nil {
		d.builder.Reset()
		return nil, err
	}
	v, _ := d.builder.Value()
	return v, nil
}

// DecodeTokens parses line and streams the tokens of its value to out.
func (d *Decoder) DecodeTokens(line []byte, out token.WriteStream) error {
	d.scanr.Reset(line)
	if err := d.ParseValue(out); err != nil {
		return err
	}
	if d.scanr.SkipSpaceAndPeek() != scanner.EOF {
		return UnexpectedByte(&d.scanr, "expected end of line, got")
	}
	return nil
}

// DecodeRecord is a convenience function to decode a single line.
func DecodeRecord(line []byte) (record.Value, error) {
	return NewDecoder().Decode(line)
}

// ParseValue reads a single JSON value and streams it.  It returns a
// non-nil error if the input is invalid JSON.
func (d *Decoder) ParseValue(out token.WriteStream) error {
	b := d.scanr.SkipSpaceAndPeek()
	switch b {
	case '"':
		s, err := ParseString(&d.scanr)
		if err != nil {
			return err
		}
		out.Put(s)
		return nil
	case '[':
		return d.parseArray(out)
	case '{':
		return d.parseObject(out)
	case 't':
		if err := checkBytes(&d.scanr, trueBytes); err != nil {
			return err
		}
		out.Put(token.TrueScalar)
		return nil
	case 'f':
		if err := checkBytes(&d.scanr, falseBytes); err != nil {
			return err
		}
		out.Put(token.FalseScalar)
		return nil
	case 'n':
		if err := checkBytes(&d.scanr, nullBytes); err != nil {
			return err
		}
		out.Put(token.NullScalar)
		return nil
	default:
		if b == '-' || scanner.IsDigit(b) {
			n, err := ParseNumber(&d.scanr)
			if err != nil {
				return err
			}
			out.Put(n)
			return nil
		}
		return UnexpectedByte(&d.scanr, "expected a value, got")
	}
}

func (d *Decoder) parseArray(out token.WriteStream) error {
	if err := ExpectByte(&d.scanr, '['); err != nil {
		return err
	}
	out.Put(&token.StartArray{})
	if d.scanr.SkipSpaceAndPeek() == ']' {
		d.scanr.Read()
		out.Put(&token.EndArray{})
		return nil
	}
	for {
		if err := d.ParseValue(out); err != nil {
			return err
		}
		switch d.scanr.SkipSpaceAndPeek() {
		case ']':
			d.scanr.Read()
			out.Put(&token.EndArray{})
			return nil
		case ',':
			d.scanr.Read()
		default:
			return UnexpectedByte(&d.scanr, "expected ']' or ',', got")
		}
	}
}

func (d *Decoder) parseObject(out token.WriteStream) error {
	if err := ExpectByte(&d.scanr, '{'); err != nil {
		return err
	}
	out.Put(&token.StartObject{})
	if d.scanr.SkipSpaceAndPeek() == '}' {
		d.scanr.Read()
		out.Put(&token.EndObject{})
		return nil
	}
	for {
		if d.scanr.SkipSpaceAndPeek() != '"' {
			return UnexpectedByte(&d.scanr, "expected a key, got")
		}
		key, err := ParseString(&d.scanr)
		if err != nil {
			return err
		}
		key.TypeAndFlags |= token.KeyMask
		out.Put(key)
		if d.scanr.SkipSpaceAndPeek() != ':' {
			return UnexpectedByte(&d.scanr, "expected ':', got")
		}
		d.scanr.Read()
		if err := d.ParseValue(out); err != nil {
			return err
		}
		switch d.scanr.SkipSpaceAndPeek() {
		case '}':
			d.scanr.Read()
			out.Put(&token.EndObject{})
			return nil
		case ',':
			d.scanr.Read()
		default:
			return UnexpectedByte(&d.scanr, "expected '}' or ',', got")
		}
	}
}

func ExpectByte(scanr *scanner.Scanner, xb byte) error {
	b := scanr.Read()
	if b != xb {
		scanr.Back()
		return UnexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

// UnexpectedByte returns a SyntaxError about the byte at the current
// position of the scanner.
func UnexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	scanr.AbortToken()
	pos := scanr.CurrentPos()
	msg := fmt.Sprintf(expected, args...)
	if b := scanr.Peek(); b == scanner.EOF {
		msg += " <EOF>"
	} else {
		msg += fmt.Sprintf(" %q", b)
	}
	return &SyntaxError{Col: pos.Col + 1, Msg: msg}
}

func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	if err := ExpectByte(scanr, '"'); err != nil {
		return nil, err
	}
	isUnescaped := true
	for {
		b := scanr.Read()
		switch {
		case b == '\\':
			isUnescaped = false
			switch scanr.Read() {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					if !scanner.IsHex(scanr.Read()) {
						scanr.Back()
						return nil, UnexpectedByte(scanr, "expected hex digit, got")
					}
				}
			default:
				scanr.Back()
				return nil, UnexpectedByte(scanr, "invalid escape character")
			}
		case b == '"':
			scalar := token.NewScalar(token.String, scanr.EndToken())
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		case b == scanner.EOF:
			scanr.Back()
			return nil, UnexpectedByte(scanr, "unterminated string, got")
		case scanner.IsCtrl(b):
			scanr.Back()
			return nil, UnexpectedByte(scanr, "invalid control character in string")
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	b := scanr.Read()

	// Sign part
	if b == '-' {
		b = scanr.Read()
	}

	// Integer part
	switch {
	case b == '0':
		b = scanr.Read()
	case b >= '1' && b <= '9':
		b, _ = ReadDigits(scanr)
	default:
		scanr.Back()
		return nil, UnexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		var n int
		b, n = ReadDigits(scanr)
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		if sign := scanr.Peek(); sign == '-' || sign == '+' {
			scanr.Read()
		}
		var n int
		b, n = ReadDigits(scanr)
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

// ReadDigits consumes a run of digits and returns the first byte after it
// together with the number of digits read.
func ReadDigits(scanr *scanner.Scanner) (byte, int) {
	var n int
	for {
		b := scanr.Read()
		if !scanner.IsDigit(b) {
			return b, n
		}
		n++
	}
}

func checkBytes(scanr *scanner.Scanner, expected []byte) error {
	for _, xb := range expected {
		if err := ExpectByte(scanr, xb); err != nil {
			return err
		}
	}
	return nil
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
