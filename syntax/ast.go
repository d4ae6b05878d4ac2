/*
Package syntax defines the abstract syntax tree of B++ and a parser creating it.

The AST is a closed set of node types. Statements implement the sealed interface
Stmt, unary terms the sealed interface Unary; the evaluator dispatches with
exhaustive type switches over them. Arithmetic and relational expressions keep
the tier structure of the grammar:

    program      := (require ".")* statement*
    require      := "with" IDENTIFIER+
    statement    := vardecl | assign | hostcall | ifstmt | whilestmt
    vardecl      := "var" IDENTIFIER "=" expr "."
    assign       := IDENTIFIER "=" expr "."
    ifstmt       := "if" relexpr "begin" statement* "end"
    whilestmt    := "while" relexpr "begin" statement* "end"
    hostcall     := IDENTIFIER (":" IDENTIFIER)+ "(" expr ("," expr)* ")" "."
    expr         := additive
    additive     := multiplicative (("+"|"-") multiplicative)*
    multiplicative := unary (("*"|"/"|"%") unary)*
    unary        := "(" expr ")" | INTEGER_LITERAL | IDENTIFIER
    relexpr      := equality
    equality     := greater (("=="|"!=") greater)?
    greater      := less ((">"|">=") less)?
    less         := unary (("<"|"<=") unary)?

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/bpp"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.syntax")
}

// Node is implemented by all AST nodes.
type Node interface {
	Span() bpp.Span   // input range covered by the node
	Label() string    // short description for tree displays
	Children() []Node // sub-nodes, left to right
}

// Stmt is a statement node: one of *VarDecl, *Assign, *HostCall, *If, *While.
type Stmt interface {
	Node
	stmtNode()
}

// Unary is a unary term: one of *Paren, *IntLit, *VarRef.
type Unary interface {
	Node
	unaryNode()
}

// --- Program ---------------------------------------------------------------

// Program is the root of an AST.
type Program struct {
	Requires []*Require
	Stmts    []Stmt
	Extent   bpp.Span
}

func (p *Program) Span() bpp.Span { return p.Extent }
func (p *Program) Label() string  { return "program" }
func (p *Program) Children() []Node {
	ch := make([]Node, 0, len(p.Requires)+len(p.Stmts))
	for _, r := range p.Requires {
		ch = append(ch, r)
	}
	for _, s := range p.Stmts {
		ch = append(ch, s)
	}
	return ch
}

// Require is a `with` clause naming a namespace prefix.
type Require struct {
	Path   []string // identifier segments
	Extent bpp.Span
}

// Prefix returns the namespace prefix, i.e. the path joined with '.'.
func (r *Require) Prefix() string {
	return strings.Join(r.Path, ".")
}

func (r *Require) Span() bpp.Span   { return r.Extent }
func (r *Require) Label() string    { return "with " + r.Prefix() }
func (r *Require) Children() []Node { return nil }

// --- Statements ------------------------------------------------------------

// VarDecl is `var name = expr.`
type VarDecl struct {
	Name   string
	Init   *Additive
	Extent bpp.Span
}

// Assign is `name = expr.`
type Assign struct {
	Name   string
	Value  *Additive
	Extent bpp.Span
}

// HostCall is `Base:member:…:member(args).` Members are walked left to right.
type HostCall struct {
	Base    string
	Members []string
	Args    []*Additive
	Extent  bpp.Span
}

// If is `if cond begin … end`.
type If struct {
	Cond   *Equality
	Body   []Stmt
	Extent bpp.Span
}

// While is `while cond begin … end`.
type While struct {
	Cond   *Equality
	Body   []Stmt
	Extent bpp.Span
}

func (*VarDecl) stmtNode()  {}
func (*Assign) stmtNode()   {}
func (*HostCall) stmtNode() {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}

func (s *VarDecl) Span() bpp.Span    { return s.Extent }
func (s *Assign) Span() bpp.Span     { return s.Extent }
func (s *HostCall) Span() bpp.Span   { return s.Extent }
func (s *If) Span() bpp.Span         { return s.Extent }
func (s *While) Span() bpp.Span      { return s.Extent }
func (s *VarDecl) Label() string     { return "var " + s.Name }
func (s *Assign) Label() string      { return s.Name + " =" }
func (s *If) Label() string          { return "if" }
func (s *While) Label() string       { return "while" }
func (s *VarDecl) Children() []Node  { return []Node{s.Init} }
func (s *Assign) Children() []Node   { return []Node{s.Value} }
func (s *If) Children() []Node       { return blockChildren(s.Cond, s.Body) }
func (s *While) Children() []Node    { return blockChildren(s.Cond, s.Body) }
func (s *HostCall) Label() string {
	return s.Base + ":" + strings.Join(s.Members, ":") + "(…)"
}
func (s *HostCall) Children() []Node {
	ch := make([]Node, len(s.Args))
	for i, a := range s.Args {
		ch[i] = a
	}
	return ch
}

func blockChildren(cond Node, body []Stmt) []Node {
	ch := []Node{cond}
	for _, s := range body {
		ch = append(ch, s)
	}
	return ch
}

// --- Arithmetic ------------------------------------------------------------

// ArithOp is an arithmetic operator.
type ArithOp int

// Arithmetic operators.
const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

var arithOpNames = [...]string{"+", "-", "*", "/", "%"}

func (op ArithOp) String() string {
	return arithOpNames[op]
}

// AddTail is an operator/operand pair of an additive expression.
type AddTail struct {
	Op    ArithOp
	Right *Multiplicative
}

// MulTail is an operator/operand pair of a multiplicative expression.
type MulTail struct {
	Op    ArithOp
	Right Unary
}

// Additive is `multiplicative (("+"|"-") multiplicative)*`.
type Additive struct {
	Left   *Multiplicative
	Tail   []AddTail
	Extent bpp.Span
}

// Multiplicative is `unary (("*"|"/"|"%") unary)*`.
type Multiplicative struct {
	Left   Unary
	Tail   []MulTail
	Extent bpp.Span
}

func (e *Additive) Span() bpp.Span       { return e.Extent }
func (e *Multiplicative) Span() bpp.Span { return e.Extent }
func (e *Additive) Label() string        { return tailLabel("additive", len(e.Tail), e.opAt) }
func (e *Multiplicative) Label() string  { return tailLabel("multiplicative", len(e.Tail), e.opAt) }
func (e *Additive) opAt(i int) ArithOp   { return e.Tail[i].Op }
func (e *Multiplicative) opAt(i int) ArithOp {
	return e.Tail[i].Op
}
func (e *Additive) Children() []Node {
	ch := []Node{e.Left}
	for _, t := range e.Tail {
		ch = append(ch, t.Right)
	}
	return ch
}
func (e *Multiplicative) Children() []Node {
	ch := []Node{e.Left}
	for _, t := range e.Tail {
		ch = append(ch, t.Right)
	}
	return ch
}

func tailLabel(name string, n int, op func(int) ArithOp) string {
	if n == 0 {
		return name
	}
	ops := make([]string, n)
	for i := range ops {
		ops[i] = op(i).String()
	}
	return name + " " + strings.Join(ops, " ")
}

// --- Unary terms -----------------------------------------------------------

// Paren is a parenthesized arithmetic expression.
type Paren struct {
	Inner  *Additive
	Extent bpp.Span
}

// IntLit is an integer literal.
type IntLit struct {
	Value  int64
	Extent bpp.Span
}

// VarRef is a reference to a variable.
type VarRef struct {
	Name   string
	Extent bpp.Span
}

func (*Paren) unaryNode()  {}
func (*IntLit) unaryNode() {}
func (*VarRef) unaryNode() {}

func (u *Paren) Span() bpp.Span    { return u.Extent }
func (u *IntLit) Span() bpp.Span   { return u.Extent }
func (u *VarRef) Span() bpp.Span   { return u.Extent }
func (u *Paren) Label() string     { return "( )" }
func (u *IntLit) Label() string    { return strconv.FormatInt(u.Value, 10) }
func (u *VarRef) Label() string    { return "$" + u.Name }
func (u *Paren) Children() []Node  { return []Node{u.Inner} }
func (u *IntLit) Children() []Node { return nil }
func (u *VarRef) Children() []Node { return nil }

// --- Relational expressions ------------------------------------------------

// RelOp is a relational or equality operator. NoRelOp marks a tier without
// an operator.
type RelOp int

// Relational operators.
const (
	NoRelOp RelOp = iota
	Less
	LessEq
	Greater
	GreaterEq
	Equal
	NotEqual
)

var relOpNames = [...]string{"", "<", "<=", ">", ">=", "==", "!="}

func (op RelOp) String() string {
	return relOpNames[op]
}

// Equality is `greater (("=="|"!=") greater)?`. Right is nil if Op is NoRelOp.
type Equality struct {
	Left   *GreaterExpr
	Op     RelOp
	Right  *GreaterExpr
	Extent bpp.Span
}

// GreaterExpr is `less ((">"|">=") less)?`. Right is nil if Op is NoRelOp.
type GreaterExpr struct {
	Left   *LessExpr
	Op     RelOp
	Right  *LessExpr
	Extent bpp.Span
}

// LessExpr is `unary (("<"|"<=") unary)?`. Right is nil if Op is NoRelOp.
type LessExpr struct {
	Left   Unary
	Op     RelOp
	Right  Unary
	Extent bpp.Span
}

func (e *Equality) Span() bpp.Span    { return e.Extent }
func (e *GreaterExpr) Span() bpp.Span { return e.Extent }
func (e *LessExpr) Span() bpp.Span    { return e.Extent }
func (e *Equality) Label() string     { return relLabel("equality", e.Op) }
func (e *GreaterExpr) Label() string  { return relLabel("greater", e.Op) }
func (e *LessExpr) Label() string     { return relLabel("less", e.Op) }
func (e *Equality) Children() []Node {
	if e.Right == nil {
		return []Node{e.Left}
	}
	return []Node{e.Left, e.Right}
}
func (e *GreaterExpr) Children() []Node {
	if e.Right == nil {
		return []Node{e.Left}
	}
	return []Node{e.Left, e.Right}
}
func (e *LessExpr) Children() []Node {
	if e.Right == nil {
		return []Node{e.Left}
	}
	return []Node{e.Left, e.Right}
}

func relLabel(name string, op RelOp) string {
	if op == NoRelOp {
		return name
	}
	return name + " " + op.String()
}

// ---------------------------------------------------------------------------

// Walk traverses an AST depth-first, calling f for every node with its depth.
// If f returns false, the children of the node are skipped.
func Walk(n Node, f func(Node, int) bool) {
	walk(n, 0, f)
}

func walk(n Node, depth int, f func(Node, int) bool) {
	if n == nil || !f(n, depth) {
		return
	}
	for _, ch := range n.Children() {
		walk(ch, depth+1, f)
	}
}

// Dump returns an indented multi-line representation of an AST.
func Dump(n Node) string {
	var b strings.Builder
	Walk(n, func(node Node, depth int) bool {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", depth), node.Label())
		return true
	})
	return b.String()
}
