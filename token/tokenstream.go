package token

// A WriteStream receives the tokens produced by a decoder.
type WriteStream interface {
	Put(Token)
}

// AccumulatorStream is a WriteStream that keeps every token it is given.
type AccumulatorStream struct {
	toks []Token
}

var _ WriteStream = &AccumulatorStream{}

func NewAccumulatorStream() *AccumulatorStream {
	return &AccumulatorStream{}
}

func (w *AccumulatorStream) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *AccumulatorStream) GetTokens() []Token {
	return w.toks
}

// Reset empties the stream so it can be reused.
func (w *AccumulatorStream) Reset() {
	w.toks = w.toks[:0]
}
