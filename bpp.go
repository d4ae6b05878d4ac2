package bpp

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Concrete constants are defined by
// package syntax/scanner.
type TokType int

// Tokens represent input tokens. They are produced by the B++ scanner and
// reflect terminals of the B++ grammar.
//
// An example would be a token for an integer literal:
//
//    TokType = Int       // category for integer literals
//    Lexeme  = "42"      // lexeme how it appeared in the input stream
//    Value   = 42        // is an int64 value
//    Span    = 67…69     // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. Every AST node
// tracks which input positions it covers. A span denotes a start position and
// the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
