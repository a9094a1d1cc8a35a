package scanner

import (
	"testing"
)

func strScanner(s string) *Scanner {
	return NewScanner([]byte(s))
}

func assertRead(t *testing.T, s *Scanner, xb byte) {
	t.Helper()
	b := s.Read()
	if b != xb {
		t.Fatalf("Read: expected b = %q, got %q", xb, b)
	}
}

func assertPeek(t *testing.T, s *Scanner, xb byte) {
	t.Helper()
	b := s.Peek()
	if b != xb {
		t.Fatalf("Peek: expected b = %q, got %q", xb, b)
	}
}

func assertCurrentCol(t *testing.T, s *Scanner, col int) {
	t.Helper()
	pos := s.CurrentPos()
	if pos.Col != col {
		t.Fatalf("CurrentPos: expected col %d got %d", col, pos.Col)
	}
}

func assertEndToken(t *testing.T, s *Scanner, tokStr string) {
	t.Helper()
	tok := s.EndToken()
	if string(tok) != tokStr {
		t.Fatalf("EndToken: expected %q got %q", tokStr, tok)
	}
}

func TestSimple(t *testing.T) {
	scanner := strScanner("bonjour")
	assertRead(t, scanner, 'b')
	assertRead(t, scanner, 'o')
	assertCurrentCol(t, scanner, 2)
	assertPeek(t, scanner, 'n')
	assertCurrentCol(t, scanner, 2)
	assertRead(t, scanner, 'n')
	assertCurrentCol(t, scanner, 3)
	scanner.Back()
	assertCurrentCol(t, scanner, 2)
	assertRead(t, scanner, 'n')
	assertCurrentCol(t, scanner, 3)

	pos := scanner.StartToken()
	if pos.Offset != 3 || pos.Col != 3 {
		t.Fatalf("StartToken: unexpected position %+v", pos)
	}
	assertRead(t, scanner, 'j')
	assertRead(t, scanner, 'o')
	assertRead(t, scanner, 'u')
	assertRead(t, scanner, 'r')
	assertCurrentCol(t, scanner, 7)
	assertRead(t, scanner, EOF)
	scanner.Back()
	assertRead(t, scanner, EOF)
	assertCurrentCol(t, scanner, 7)
	assertEndToken(t, scanner, "jour")
}

func TestColumnsCountRunes(t *testing.T) {
	scanner := strScanner("é世x")
	assertRead(t, scanner, 0xC3)
	assertRead(t, scanner, 0xA9)
	assertCurrentCol(t, scanner, 1)
	for i := 0; i < 3; i++ {
		scanner.Read()
	}
	assertCurrentCol(t, scanner, 2)
	assertRead(t, scanner, 'x')
	assertCurrentCol(t, scanner, 3)
}

func TestSkipSpaceAndPeek(t *testing.T) {
	scanner := strScanner(" \t\r\n x ")
	if b := scanner.SkipSpaceAndPeek(); b != 'x' {
		t.Fatalf("expected 'x', got %q", b)
	}
	assertCurrentCol(t, scanner, 5)
	assertRead(t, scanner, 'x')
	if b := scanner.SkipSpaceAndPeek(); b != EOF {
		t.Fatalf("expected EOF, got %q", b)
	}
}

func TestEndTokenCopies(t *testing.T) {
	line := []byte("abc")
	scanner := NewScanner(line)
	scanner.StartToken()
	scanner.Read()
	scanner.Read()
	tok := scanner.EndToken()
	line[0] = 'z'
	if string(tok) != "ab" {
		t.Fatalf("token should not alias the line, got %q", tok)
	}
}

func TestBackTwicePanics(t *testing.T) {
	scanner := strScanner("ab")
	scanner.Read()
	scanner.Back()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic, got none")
		}
	}()
	scanner.Back()
}

func TestReset(t *testing.T) {
	scanner := strScanner("ab")
	scanner.Read()
	scanner.Reset([]byte("cd"))
	assertCurrentCol(t, scanner, 0)
	assertRead(t, scanner, 'c')
}
