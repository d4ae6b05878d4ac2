package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/bpp"
	"github.com/npillmayer/bpp/syntax/scanner"
)

// Error is a syntax error. Scanning errors are reported as syntax errors, too.
type Error struct {
	Name string   // name of the input, e.g. a file name
	Line int      // 1-based line of the offending token
	Col  int      // 1-based column of the offending token
	Span bpp.Span // position of the offending token
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Col, e.Msg)
}

// Parse parses B++ source text and returns the AST of the program.
// name is used for error messages only. Parsing stops at the first error.
func Parse(name, source string) (*Program, error) {
	scan, err := scanner.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{name: name, source: source, scan: scan}
	scan.SetErrorHandler(p.scanError)
	p.advance()
	prog, err := p.program()
	if p.scanErr != nil { // illegal input takes precedence over follow-up errors
		err = p.scanErr
	}
	if err != nil {
		tracer().Infof("parse error: %v", err)
		return nil, err
	}
	tracer().Debugf("parsed %s: %d requires, %d statements", name, len(prog.Requires), len(prog.Stmts))
	return prog, nil
}

// parser is a recursive descent parser with one token lookahead.
type parser struct {
	name    string
	source  string
	scan    scanner.Tokenizer
	tok     bpp.Token // lookahead
	prev    bpp.Token // most recently consumed token
	scanErr *Error    // first scanner error
}

func (p *parser) scanError(e error) {
	tracer().Errorf("scanner error: %v", e)
	if p.scanErr == nil {
		var at uint64
		if p.prev != nil {
			at = p.prev.Span().To()
		}
		p.scanErr = p.errorAt(bpp.Span{at, at + 1}, "illegal input: %v", e)
	}
}

func (p *parser) advance() {
	p.prev = p.tok
	p.tok = p.scan.NextToken()
}

func (p *parser) at(t bpp.TokType) bool {
	return p.tok.TokType() == t
}

// accept consumes the lookahead if it is of type t.
func (p *parser) accept(t bpp.TokType) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type t or fails.
func (p *parser) expect(t bpp.TokType, context string) (bpp.Token, error) {
	if !p.at(t) {
		return nil, p.unexpected(fmt.Sprintf("%s in %s", scanner.TokenName(t), context))
	}
	tok := p.tok
	p.advance()
	return tok, nil
}

func (p *parser) unexpected(wanted string) error {
	found := scanner.TokenName(p.tok.TokType())
	if p.at(scanner.Ident) || p.at(scanner.Int) {
		found = fmt.Sprintf("%s %q", found, p.tok.Lexeme())
	}
	return p.errorAt(p.tok.Span(), "expected %s, found %s", wanted, found)
}

func (p *parser) errorAt(span bpp.Span, format string, args ...interface{}) *Error {
	line, col := position(p.source, span.From())
	return &Error{
		Name: p.name,
		Line: line,
		Col:  col,
		Span: span,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// position computes line and column of a byte offset.
func position(source string, offset uint64) (int, int) {
	if offset > uint64(len(source)) {
		offset = uint64(len(source))
	}
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	col := int(offset) - strings.LastIndexByte(before, '\n')
	return line, col
}

// --- Program structure -----------------------------------------------------

// program := (require ".")* statement*
func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for p.at(scanner.KwWith) {
		req, err := p.require()
		if err != nil {
			return nil, err
		}
		prog.Requires = append(prog.Requires, req)
		prog.Extent = prog.Extent.Extend(req.Extent)
	}
	for !p.at(scanner.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		prog.Extent = prog.Extent.Extend(stmt.Span())
	}
	return prog, nil
}

// require := "with" IDENTIFIER+ "."
func (p *parser) require() (*Require, error) {
	start := p.tok.Span()
	p.advance()
	req := &Require{}
	for p.at(scanner.Ident) {
		req.Path = append(req.Path, strings.Split(p.tok.Lexeme(), ".")...)
		p.advance()
	}
	if len(req.Path) == 0 {
		return nil, p.unexpected("namespace identifier after 'with'")
	}
	end, err := p.expect('.', "'with' clause")
	if err != nil {
		return nil, err
	}
	req.Extent = start.Extend(end.Span())
	return req, nil
}

// statement := vardecl | assign | hostcall | ifstmt | whilestmt
func (p *parser) statement() (Stmt, error) {
	switch p.tok.TokType() {
	case scanner.KwVar:
		return p.varDecl()
	case scanner.KwIf:
		return p.ifStmt()
	case scanner.KwWhile:
		return p.whileStmt()
	case scanner.KwWith:
		return nil, p.errorAt(p.tok.Span(), "'with' clauses must precede all statements")
	case scanner.Ident:
		ident := p.tok
		p.advance()
		switch {
		case p.at('='):
			return p.assign(ident)
		case p.at(':'):
			return p.hostCall(ident)
		}
		return nil, p.unexpected("'=' or ':' after identifier")
	}
	return nil, p.unexpected("statement")
}

// vardecl := "var" IDENTIFIER "=" expr "."
func (p *parser) varDecl() (Stmt, error) {
	start := p.tok.Span()
	p.advance()
	name, err := p.expect(scanner.Ident, "variable declaration")
	if err != nil {
		return nil, err
	}
	if _, err = p.expect('=', "variable declaration"); err != nil {
		return nil, err
	}
	init, err := p.additive()
	if err != nil {
		return nil, err
	}
	end, err := p.expect('.', "variable declaration")
	if err != nil {
		return nil, err
	}
	return &VarDecl{
		Name:   name.Lexeme(),
		Init:   init,
		Extent: start.Extend(end.Span()),
	}, nil
}

// assign := IDENTIFIER "=" expr "."
func (p *parser) assign(ident bpp.Token) (Stmt, error) {
	p.advance() // '='
	val, err := p.additive()
	if err != nil {
		return nil, err
	}
	end, err := p.expect('.', "assignment")
	if err != nil {
		return nil, err
	}
	return &Assign{
		Name:   ident.Lexeme(),
		Value:  val,
		Extent: ident.Span().Extend(end.Span()),
	}, nil
}

// hostcall := IDENTIFIER (":" IDENTIFIER)+ "(" expr ("," expr)* ")" "."
//
// An empty argument list is accepted as well.
func (p *parser) hostCall(base bpp.Token) (Stmt, error) {
	call := &HostCall{Base: base.Lexeme()}
	for p.accept(':') {
		member, err := p.expect(scanner.Ident, "host call")
		if err != nil {
			return nil, err
		}
		call.Members = append(call.Members, member.Lexeme())
	}
	if _, err := p.expect('(', "host call"); err != nil {
		return nil, err
	}
	if !p.at(')') {
		for {
			arg, err := p.additive()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.accept(',') {
				break
			}
		}
	}
	if _, err := p.expect(')', "host call"); err != nil {
		return nil, err
	}
	end, err := p.expect('.', "host call")
	if err != nil {
		return nil, err
	}
	call.Extent = base.Span().Extend(end.Span())
	return call, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	start := p.tok.Span()
	p.advance()
	cond, body, end, err := p.block("if")
	if err != nil {
		return nil, err
	}
	return &If{Cond: cond, Body: body, Extent: start.Extend(end)}, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	start := p.tok.Span()
	p.advance()
	cond, body, end, err := p.block("while")
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body, Extent: start.Extend(end)}, nil
}

// block parses `relexpr "begin" statement* "end"`.
func (p *parser) block(kw string) (*Equality, []Stmt, bpp.Span, error) {
	cond, err := p.equality()
	if err != nil {
		return nil, nil, bpp.Span{}, err
	}
	if _, err = p.expect(scanner.KwBegin, "'"+kw+"' statement"); err != nil {
		return nil, nil, bpp.Span{}, err
	}
	var body []Stmt
	for !p.at(scanner.KwEnd) {
		if p.at(scanner.EOF) {
			return nil, nil, bpp.Span{}, p.unexpected("'end' of '" + kw + "' block")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, nil, bpp.Span{}, err
		}
		body = append(body, stmt)
	}
	end := p.tok.Span()
	p.advance()
	return cond, body, end, nil
}

// --- Expressions -----------------------------------------------------------

// additive := multiplicative (("+"|"-") multiplicative)*
func (p *parser) additive() (*Additive, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	expr := &Additive{Left: left, Extent: left.Extent}
	for p.at('+') || p.at('-') {
		op := Add
		if p.at('-') {
			op = Sub
		}
		p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		expr.Tail = append(expr.Tail, AddTail{Op: op, Right: right})
		expr.Extent = expr.Extent.Extend(right.Extent)
	}
	return expr, nil
}

// multiplicative := unary (("*"|"/"|"%") unary)*
func (p *parser) multiplicative() (*Multiplicative, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	expr := &Multiplicative{Left: left, Extent: left.Span()}
	for {
		var op ArithOp
		switch p.tok.TokType() {
		case '*':
			op = Mul
		case '/':
			op = Div
		case '%':
			op = Mod
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr.Tail = append(expr.Tail, MulTail{Op: op, Right: right})
		expr.Extent = expr.Extent.Extend(right.Span())
	}
}

// unary := "(" expr ")" | INTEGER_LITERAL | IDENTIFIER
func (p *parser) unary() (Unary, error) {
	tok := p.tok
	switch tok.TokType() {
	case '(':
		p.advance()
		inner, err := p.additive()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(')', "parenthesized expression")
		if err != nil {
			return nil, err
		}
		return &Paren{Inner: inner, Extent: tok.Span().Extend(end.Span())}, nil
	case scanner.Int:
		n, err := strconv.ParseInt(tok.Lexeme(), 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, p.errorAt(tok.Span(), "integer literal %s out of range", tok.Lexeme())
			}
			return nil, p.errorAt(tok.Span(), "malformed integer literal %s", tok.Lexeme())
		}
		p.advance()
		return &IntLit{Value: n, Extent: tok.Span()}, nil
	case scanner.Ident:
		p.advance()
		return &VarRef{Name: tok.Lexeme(), Extent: tok.Span()}, nil
	}
	return nil, p.unexpected("'(', integer or identifier")
}

// equality := greater (("=="|"!=") greater)?
func (p *parser) equality() (*Equality, error) {
	left, err := p.greater()
	if err != nil {
		return nil, err
	}
	expr := &Equality{Left: left, Extent: left.Extent}
	switch p.tok.TokType() {
	case scanner.EqualEq:
		expr.Op = Equal
	case scanner.NotEq:
		expr.Op = NotEqual
	default:
		return expr, nil
	}
	p.advance()
	if expr.Right, err = p.greater(); err != nil {
		return nil, err
	}
	expr.Extent = expr.Extent.Extend(expr.Right.Extent)
	return expr, nil
}

// greater := less ((">"|">=") less)?
func (p *parser) greater() (*GreaterExpr, error) {
	left, err := p.less()
	if err != nil {
		return nil, err
	}
	expr := &GreaterExpr{Left: left, Extent: left.Extent}
	switch p.tok.TokType() {
	case '>':
		expr.Op = Greater
	case scanner.GreaterEq:
		expr.Op = GreaterEq
	default:
		return expr, nil
	}
	p.advance()
	if expr.Right, err = p.less(); err != nil {
		return nil, err
	}
	expr.Extent = expr.Extent.Extend(expr.Right.Extent)
	return expr, nil
}

// less := unary (("<"|"<=") unary)?
func (p *parser) less() (*LessExpr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	expr := &LessExpr{Left: left, Extent: left.Span()}
	switch p.tok.TokType() {
	case '<':
		expr.Op = Less
	case scanner.LessEq:
		expr.Op = LessEq
	default:
		return expr, nil
	}
	p.advance()
	if expr.Right, err = p.unary(); err != nil {
		return nil, err
	}
	expr.Extent = expr.Extent.Extend(expr.Right.Span())
	return expr, nil
}
