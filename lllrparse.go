package lllrparse

import "fmt"

// --- Spans ------------------------------------------------------------

// Span captures a run of input covered by a token: a start offset and the
// offset just behind the end.
type Span [2]int

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of the span.
func (s Span) Len() int {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Tokens -------------------------------------------------------------

// Token is what the lexer hands to a parser driver: a
// resolved terminal symbol ID, the lexeme that matched it, and the span of
// input it covers.
type Token struct {
	Symbol int
	Lexeme string
	Span   Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Lexeme, t.Span)
}
