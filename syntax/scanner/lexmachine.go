package scanner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/bpp"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// The keyword tokens, in the order of their token types.
var keywords = []string{"with", "var", "if", "while", "begin", "end"}

// The tokens representing literal one-char lexemes.
var literals = []string{".", ",", ":", "(", ")", "=", "+", "-", "*", "/", "%", "<", ">"}

// Operators consisting of two characters.
var operators = map[string]bpp.TokType{
	"<=": LessEq,
	">=": GreaterEq,
	"==": EqualEq,
	"!=": NotEq,
}

const identPattern = `([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('(', '.', …), a list of keywords ("if", "while", …) and a
// map for translating token strings to their values. Keywords and literals are
// added before the patterns of init, thus keywords win over identifiers of
// equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]bpp.TokType) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// Input which does not form a token is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() bpp.Token {
	if lms.scanner == nil {
		return MakeDefaultToken(EOF, "", bpp.Span{lms.end, lms.end})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", bpp.Span{lms.end, lms.end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	start := uint64(token.TC)
	lms.end = start + uint64(len(token.Lexeme))
	t := MakeDefaultToken(bpp.TokType(token.Type), string(token.Lexeme), bpp.Span{start, lms.end})
	t.Val = token.Value
	return t
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id bpp.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}

// --- The B++ lexer ---------------------------------------------------------

var tokenIds map[string]bpp.TokType // A map from the token names to their token types

var lexer *LMAdapter
var lexerErr error
var initOnce sync.Once // monitors one-time initialization

func initTokens() {
	tokenIds = make(map[string]bpp.TokType)
	tokenIds["ID"] = Ident
	tokenIds["INT"] = Int
	for i, kw := range keywords {
		tokenIds[kw] = bpp.TokType(i + 1)
	}
	for _, lit := range literals {
		tokenIds[lit] = bpp.TokType(lit[0])
	}
	for op, id := range operators {
		tokenIds[op] = id
	}
}

// Lexer returns the (shared) lexmachine adapter for B++. The DFA is compiled once.
func Lexer() (*LMAdapter, error) {
	initOnce.Do(func() {
		initTokens()
		ops := make([]string, 0, len(operators))
		for op := range operators {
			ops = append(ops, op)
		}
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`//[^\n]*\n?`), Skip) // skip comments
			lexer.Add([]byte(identPattern+`(\.`+identPattern+`)*`), identifier)
			lexer.Add([]byte(`[0-9]+`), MakeToken("INT", tokenIds["INT"]))
			lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
		}
		lexer, lexerErr = NewLMAdapter(init, append(ops, literals...), keywords, tokenIds)
	})
	return lexer, lexerErr
}

// identifier is the action for (dotted) identifiers. A dot segment which is a
// keyword ends the identifier in front of its dot, and scanning resumes there.
// Thus `a.end` is scanned as identifier, terminator and keyword.
func identifier(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	segments := strings.Split(string(m.Bytes), ".")
	cut := 0
	for i, seg := range segments {
		if isKeyword(seg) {
			if i == 0 && len(segments) > 1 {
				return rewind(s, m, len(seg), tokenIds[seg]), nil
			}
			if i > 0 {
				return rewind(s, m, cut, Ident), nil
			}
		}
		if i > 0 {
			cut++
		}
		cut += len(seg)
	}
	return s.Token(int(Ident), string(m.Bytes), m), nil
}

// rewind shortens a match to its first n bytes and lets the scanner continue
// right after them.
func rewind(s *lexmachine.Scanner, m *machines.Match, n int, id bpp.TokType) *lexmachine.Token {
	short := *m
	short.Bytes = m.Bytes[:n]
	short.EndLine = m.StartLine
	short.EndColumn = m.StartColumn + n - 1
	s.TC = m.TC + n
	tracer().Debugf("identifier %q cut to %q", m.Bytes, short.Bytes)
	return s.Token(int(id), string(short.Bytes), &short)
}

func isKeyword(seg string) bool {
	for _, kw := range keywords {
		if seg == kw {
			return true
		}
	}
	return false
}

// Tokenize creates a tokenizer for B++ source text.
func Tokenize(input string) (*LMScanner, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, fmt.Errorf("cannot create B++ lexer: %w", err)
	}
	return lm.Scanner(input)
}
