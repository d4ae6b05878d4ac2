/*
Package scanner implements the lexer for B++ scripts.

The lexer is generated with lexmachine from a small set of regular expressions,
keywords and literals. It delivers tokens through the Tokenizer interface, which
is all the B++ parser depends on.

Identifiers may consist of dot-separated segments (`Editor.Api`). A dot which is
not immediately followed by a letter or underscore terminates a statement, and so
does a dot followed by a keyword (`a.end`). Consequently, an identifier following
a terminator has to be separated from it by whitespace.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/bpp"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.scanner")
}

// Token types. EOF, Ident and Int are identical to their text/scanner counterparts,
// one-character literals use their rune value.
const (
	EOF   bpp.TokType = -1
	Ident bpp.TokType = -2
	Int   bpp.TokType = -3
)

// Keywords.
const (
	KwWith bpp.TokType = iota + 1
	KwVar
	KwIf
	KwWhile
	KwBegin
	KwEnd
)

// Two-character operators.
const (
	LessEq bpp.TokType = iota + 256
	GreaterEq
	EqualEq
	NotEq
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() bpp.Token
	SetErrorHandler(func(error))
}

// TokenName returns a readable name for a token type.
func TokenName(t bpp.TokType) string {
	switch t {
	case EOF:
		return "<EOF>"
	case Ident:
		return "identifier"
	case Int:
		return "integer"
	case LessEq:
		return "'<='"
	case GreaterEq:
		return "'>='"
	case EqualEq:
		return "'=='"
	case NotEq:
		return "'!='"
	}
	if t > 0 && int(t) <= len(keywords) {
		return "'" + keywords[t-1] + "'"
	}
	if t > 0 && t < 256 {
		return fmt.Sprintf("'%c'", rune(t))
	}
	return fmt.Sprintf("<token %d>", t)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the B++ lexer.
type DefaultToken struct {
	kind   bpp.TokType
	lexeme string
	Val    interface{}
	span   bpp.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ bpp.TokType, lexeme string, span bpp.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() bpp.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() bpp.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%s %q @%v", TokenName(t.kind), t.lexeme, t.span)
}
