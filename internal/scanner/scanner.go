package scanner

import "slices"

// Pos is a position within the scanned line.  Col counts runes, not bytes,
// starting from 0.
type Pos struct {
	Offset int
	Col    int
}

// Scanner reads the bytes of one line of input.  The line is held in memory
// in full, so unlike a stream scanner it cannot fail to read: running out
// of input is signalled by returning EOF.
type Scanner struct {
	buf []byte

	// Current position in buf
	// 0 <= currentIndex <= len(buf)
	currentIndex int

	// Rune column of the current position, and of the previous one so that
	// Back() can restore it.
	currentCol, prevCol int

	// Position in buf of the currently recorded token.
	// -1 means not recording a token
	tokenStartIndex int

	// Set when the last Read() returned EOF.  This is required to make
	// Back() work after an EOF has been read.
	eofRead bool

	canBack bool
}

func NewScanner(line []byte) *Scanner {
	s := &Scanner{}
	s.Reset(line)
	return s
}

// Reset makes the scanner start again at the beginning of line.
func (s *Scanner) Reset(line []byte) {
	*s = Scanner{
		buf:             line,
		tokenStartIndex: -1,
	}
}

func (s *Scanner) Read() byte {
	if s.currentIndex >= len(s.buf) {
		s.eofRead = true
		s.canBack = true
		return EOF
	}
	b := s.buf[s.currentIndex]
	s.prevCol = s.currentCol
	if b&0xC0 != 0x80 {
		// Not a continuation byte, so this starts a new codepoint
		s.currentCol++
	}
	s.currentIndex++
	s.eofRead = false
	s.canBack = true
	return b
}

func (s *Scanner) Back() {
	if !s.canBack {
		panic("cannot go back twice")
	}
	s.canBack = false
	if s.eofRead {
		s.eofRead = false
		return
	}
	if s.currentIndex <= 0 || s.currentIndex <= s.tokenStartIndex {
		panic("cannot go back from start")
	}
	s.currentIndex--
	s.currentCol = s.prevCol
}

func (s *Scanner) Peek() byte {
	if s.currentIndex >= len(s.buf) {
		return EOF
	}
	return s.buf[s.currentIndex]
}

func (s *Scanner) SkipSpaceAndPeek() byte {
	for s.currentIndex < len(s.buf) {
		b := s.buf[s.currentIndex]
		if !IsSpace(b) {
			return b
		}
		s.currentIndex++
		s.currentCol++
	}
	return EOF
}

func (s *Scanner) StartToken() Pos {
	if s.tokenStartIndex >= 0 {
		panic("already in record mode")
	}
	s.tokenStartIndex = s.currentIndex
	return s.CurrentPos()
}

func (s *Scanner) CurrentPos() Pos {
	return Pos{Offset: s.currentIndex, Col: s.currentCol}
}

// EndToken returns a copy of the bytes read since StartToken, so the token
// stays valid after the line buffer is reused.
func (s *Scanner) EndToken() []byte {
	if s.tokenStartIndex < 0 {
		panic("not in record mode")
	}
	tokBytes := slices.Clone(s.buf[s.tokenStartIndex:s.currentIndex])
	s.tokenStartIndex = -1
	return tokBytes
}

// AbortToken stops recording without producing a token.
func (s *Scanner) AbortToken() {
	s.tokenStartIndex = -1
}

// 0xFF is a byte that should not appear in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
