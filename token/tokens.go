package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// A Token is an item in a stream that encodes a JSON value.  For example the
// input line
//
//	{"id": 123, "tags": ["important", "new"]}
//
// is decoded into the following tokens (in pseudocode for clarity):
//
//	{            -> StartObject
//	"id":        -> Scalar("id", String) flagged as a key
//	123,         -> Scalar(123, Number)
//	"tags":      -> Scalar("tags", String) flagged as a key
//	[            -> StartArray
//	"important", -> Scalar("important", String)
//	"new"        -> Scalar("new", String)
//	]            -> EndArray
//	}            -> EndObject
//
// A decoder puts tokens into a WriteStream, which is how a record is
// assembled from a line of input.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Scalar is the type used to represent all scalar JSON values, i.e.
// - strings
// - numbers
// - booleans (to values)
// - null (a single value)
//
// The type is encoded in the Type field, while the Bytes fields contains the
// literal representation of the value as found in the input.  Keeping the
// literal means a value that passes through untouched is written out exactly
// as it was read.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("123.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value
	TypeAndFlags uint8
}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func (s *Scalar) Type() ScalarType {
	return (ScalarType(s.TypeAndFlags & TypeMask))
}

func (s *Scalar) IsKey() bool {
	return KeyMask&s.TypeAndFlags != 0
}

// IsUnescaped is true for strings whose literal contains no escape
// sequence, so the contents are the bytes between the quotes.
func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// EqualsString is a convenience method to check if a Scalar represents the
// passed string.
func (s *Scalar) EqualsString(str string) bool {
	if s.Type() != String {
		return false
	}
	return s.ToString() == str
}

// ToString returns the decoded contents of a string scalar.
// panics if not a string
func (s *Scalar) ToString() string {
	if s.Type() != String {
		panic("not a string scalar")
	}
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	var str string
	if err := json.Unmarshal(s.Bytes, &str); err != nil {
		panic(err)
	}
	return str
}

// Int64 returns the value of a number scalar if it is an integer that fits
// in an int64.
func (s *Scalar) Int64() (int64, bool) {
	if s.Type() != Number {
		return 0, false
	}
	n, err := strconv.ParseInt(string(s.Bytes), 10, 64)
	return n, err == nil
}

// Float64 returns the value of a number scalar as a float64.
func (s *Scalar) Float64() (float64, bool) {
	if s.Type() != Number {
		return 0, false
	}
	x, err := strconv.ParseFloat(string(s.Bytes), 64)
	return x, err == nil
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null    ScalarType = 0x0 // the type of JSON null
	Boolean ScalarType = 0x1 // a JSON boolean
	Number  ScalarType = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

func (t ScalarType) String() string {
	switch t {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

const (
	TypeMask      = 0b00011
	KeyMask       = 0b00100
	UnescapedMask = 0b10000
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)

// StringScalar encodes s as a JSON string.  HTML characters are not escaped
// as the output is not meant for embedding in a web page.
func StringScalar(s string) *Scalar {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	var encodedBytes = b.Bytes()
	// Remove the new line at the end
	scalar := NewScalar(String, encodedBytes[:len(encodedBytes)-1])
	if bytes.IndexByte(scalar.Bytes, '\\') < 0 {
		scalar.TypeAndFlags |= UnescapedMask
	}
	return scalar
}

func Int64Scalar(n int64) *Scalar {
	return NewScalar(Number, []byte(strconv.FormatInt(n, 10)))
}

func BoolScalar(b bool) *Scalar {
	if b {
		return TrueScalar
	}
	return FalseScalar
}
