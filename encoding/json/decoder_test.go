package json

import (
	"errors"
	"strings"
	"testing"

	"github.com/steinarvk/linejson/record"
	"github.com/steinarvk/linejson/token"
)

// TestDecoderSimpleValues tests decoding of simple scalar values
func TestDecoderSimpleValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{"true", "true", []token.Token{token.TrueScalar}},
		{"false", "false", []token.Token{token.FalseScalar}},
		{"null", "null", []token.Token{token.NullScalar}},
		{"integer", "42", []token.Token{tokenWithBytes(token.Number, "42")}},
		{"negative integer", "-123", []token.Token{tokenWithBytes(token.Number, "-123")}},
		{"zero", "0", []token.Token{tokenWithBytes(token.Number, "0")}},
		{"float", "3.14", []token.Token{tokenWithBytes(token.Number, "3.14")}},
		{"trailing zeros kept", "1.500", []token.Token{tokenWithBytes(token.Number, "1.500")}},
		{"scientific notation", "1.5e10", []token.Token{tokenWithBytes(token.Number, "1.5e10")}},
		{"signed exponent", "-2E-3", []token.Token{tokenWithBytes(token.Number, "-2E-3")}},
		{"simple string", `"hello"`, []token.Token{tokenWithBytes(token.String, `"hello"`)}},
		{"empty string", `""`, []token.Token{tokenWithBytes(token.String, `""`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := decodeString(t, tt.input)
			assertTokensEqual(t, tokens, tt.expected)
		})
	}
}

// TestDecoderStrings tests decoding of strings with escapes
func TestDecoderStrings(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		decoded   string
		unescaped bool
	}{
		{"plain", `"abc"`, "abc", true},
		{"unicode", `"héllo 世界"`, "héllo 世界", true},
		{"escaped quote", `"say \"hi\""`, `say "hi"`, false},
		{"escaped newline", `"a\nb"`, "a\nb", false},
		{"unicode escape", `"\u00e9"`, "é", false},
		{"escaped slash", `"a\/b"`, "a/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := decodeString(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			scalar := tokens[0].(*token.Scalar)
			if scalar.IsUnescaped() != tt.unescaped {
				t.Errorf("expected IsUnescaped() = %v", tt.unescaped)
			}
			if got := scalar.ToString(); got != tt.decoded {
				t.Errorf("expected %q, got %q", tt.decoded, got)
			}
		})
	}
}

// TestDecoderArrays tests decoding of arrays
func TestDecoderArrays(t *testing.T) {
	tokens := decodeString(t, `[1, "two", [true], []]`)
	expected := []token.Token{
		&token.StartArray{},
		tokenWithBytes(token.Number, "1"),
		tokenWithBytes(token.String, `"two"`),
		&token.StartArray{},
		token.TrueScalar,
		&token.EndArray{},
		&token.StartArray{},
		&token.EndArray{},
		&token.EndArray{},
	}
	assertTokensEqual(t, tokens, expected)
}

// TestDecoderObjects tests decoding of objects
func TestDecoderObjects(t *testing.T) {
	tokens := decodeString(t, `{"a": 1, "b": {}}`)
	expected := []token.Token{
		&token.StartObject{},
		tokenWithBytes(token.String, `"a"`),
		tokenWithBytes(token.Number, "1"),
		tokenWithBytes(token.String, `"b"`),
		&token.StartObject{},
		&token.EndObject{},
		&token.EndObject{},
	}
	assertTokensEqual(t, tokens, expected)
	if !tokens[1].(*token.Scalar).IsKey() {
		t.Error("expected object key to be flagged as a key")
	}
	if tokens[2].(*token.Scalar).IsKey() {
		t.Error("expected object value not to be flagged as a key")
	}
}

// TestDecoderWhitespace tests that surrounding whitespace is ignored
func TestDecoderWhitespace(t *testing.T) {
	tokens := decodeString(t, " \t{ \"a\" :\t[ 1 , 2 ] }\r\n")
	if len(tokens) != 7 {
		t.Fatalf("expected 7 tokens, got %d", len(tokens))
	}
}

// TestDecoderErrors tests that invalid lines are rejected
func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		col   int
	}{
		{"empty line", "", 1},
		{"blank line", "   ", 4},
		{"missing colon", `{"key" "value"}`, 8},
		{"missing comma in array", `[1 2]`, 4},
		{"missing comma in object", `{"a": 1 "b": 2}`, 9},
		{"unquoted key", `{a: 1}`, 2},
		{"trailing comma", `[1,]`, 4},
		{"control char in string", "\"hello\x00world\"", 7},
		{"unterminated string", `"abc`, 5},
		{"bad escape", `"a\qb"`, 4},
		{"bad unicode escape", `"\u12x4"`, 6},
		{"leading zero", `01`, 2},
		{"missing fraction digits", `1.`, 3},
		{"missing exponent digits", `1e+`, 4},
		{"lone minus", `-`, 2},
		{"misspelt literal", `nul`, 4},
		{"trailing data", `{} {}`, 4},
		{"two values", `1 2`, 3},
		{"unclosed object", `{"a": 1`, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if serr.Col != tt.col {
				t.Errorf("expected error at column %d, got %d (%s)", tt.col, serr.Col, serr)
			}
		})
	}
}

func TestDecoderReuse(t *testing.T) {
	decoder := NewDecoder()
	lines := []string{`{"n": 1}`, `{"n": `, `{"n": 2}`}
	var got []string
	for _, line := range lines {
		v, err := decoder.Decode([]byte(line))
		if err != nil {
			got = append(got, "error")
			continue
		}
		got = append(got, record.JSON(v))
	}
	want := []string{`{"n":1}`, "error", `{"n":2}`}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestDecoderComplexDocument tests a realistic record
func TestDecoderComplexDocument(t *testing.T) {
	input := `{"name": "John Doe", "age": 30, "tags": ["a", "b"], "address": {"city": "Boston", "zip": "02101"}, "active": true, "manager": null}`
	v, err := DecodeRecord([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	obj, ok := v.(*record.Object)
	if !ok {
		t.Fatalf("expected an object, got %T", v)
	}
	if obj.Len() != 6 {
		t.Errorf("expected 6 fields, got %d", obj.Len())
	}
	if got := record.FieldText(obj, "address"); got != `{"city":"Boston","zip":"02101"}` {
		t.Errorf("unexpected address %q", got)
	}
}

// TestDecoderDeepNesting tests deeply nested structures
func TestDecoderDeepNesting(t *testing.T) {
	input := strings.Repeat("[", 50) + "1" + strings.Repeat("]", 50)
	v, err := DecodeRecord([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if record.JSON(v) != input {
		t.Errorf("nested value did not round trip")
	}
}

func decodeString(t *testing.T, input string) []token.Token {
	t.Helper()
	out := token.NewAccumulatorStream()
	if err := NewDecoder().DecodeTokens([]byte(input), out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return out.GetTokens()
}

// tokenWithBytes creates a scalar token with specific bytes
func tokenWithBytes(typ token.ScalarType, bytes string) *token.Scalar {
	return token.NewScalar(typ, []byte(bytes))
}

// assertTokensEqual compares two token slices
func assertTokensEqual(t *testing.T, got, want []token.Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		g := got[i]
		w := want[i]

		gScalar, gOk := g.(*token.Scalar)
		wScalar, wOk := w.(*token.Scalar)

		if gOk != wOk {
			t.Errorf("token %d: type mismatch: got %T, want %T", i, g, w)
			continue
		}

		if gOk {
			if gScalar.Type() != wScalar.Type() {
				t.Errorf("token %d: scalar type mismatch: got %v, want %v", i, gScalar.Type(), wScalar.Type())
			}
			if string(gScalar.Bytes) != string(wScalar.Bytes) {
				t.Errorf("token %d: bytes mismatch: got %q, want %q", i, string(gScalar.Bytes), string(wScalar.Bytes))
			}
		} else if g.String() != w.String() {
			t.Errorf("token %d: expected %s, got %s", i, w, g)
		}
	}
}
