package ports

// Token is one unit of tokenized text: its byte offset into the source
// string and the exact bytes it covers.
type Token struct {
	Offset int
	Text   string
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Tokenizer splits text into an ordered sequence of tokens.
//
// Contract: concatenating the Text of every returned token reproduces the
// input exactly, and offsets are strictly increasing. Implementations must be
// deterministic and free of shared mutable state; the same Tokenizer is used
// to register keywords and to scan text, otherwise keyword boundaries never
// line up with scan boundaries and nothing matches.
type Tokenizer interface {
	Tokenize(text string) []Token
}
