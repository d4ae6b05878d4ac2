package interp

import (
	"fmt"

	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/runtime"
	"github.com/npillmayer/bpp/syntax"
)

// --- Statements ------------------------------------------------------------

// execute executes a single statement within scope sc.
func (ctx *Context) execute(stmt syntax.Stmt, sc runtime.Scope) error {
	tracer().Debugf("exec %s in %v", stmt.Label(), sc)
	var err error
	switch s := stmt.(type) {
	case *syntax.VarDecl:
		err = ctx.varDecl(s, sc)
	case *syntax.Assign:
		err = ctx.assign(s, sc)
	case *syntax.HostCall:
		err = ctx.hostCall(s, sc)
	case *syntax.If:
		err = ctx.ifStmt(s, sc)
	case *syntax.While:
		err = ctx.whileStmt(s, sc)
	default:
		panic(fmt.Sprintf("unknown statement type %T", stmt))
	}
	if err == nil && ctx.onStep != nil {
		ctx.onStep(stmt, sc)
	}
	return err
}

func (ctx *Context) executeAll(stmts []syntax.Stmt, sc runtime.Scope) error {
	for _, stmt := range stmts {
		if err := ctx.execute(stmt, sc); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) varDecl(s *syntax.VarDecl, sc runtime.Scope) error {
	val, err := ctx.additive(s.Init, sc)
	if err != nil {
		return err
	}
	sc.Declare(s.Name, val)
	return nil
}

// assign replaces the value of a visible variable. Assignment to an undeclared
// variable does nothing, not even evaluate its right hand side.
func (ctx *Context) assign(s *syntax.Assign, sc runtime.Scope) error {
	if !sc.Exists(s.Name) {
		ctx.bridge.Report(&host.Miss{Kind: host.UndeclaredAssign, Name: s.Name})
		return nil
	}
	val, err := ctx.additive(s.Value, sc)
	if err != nil {
		return err
	}
	sc.Assign(s.Name, val)
	return nil
}

func (ctx *Context) ifStmt(s *syntax.If, sc runtime.Scope) error {
	cond, err := ctx.equality(s.Cond, sc)
	if err != nil {
		return err
	}
	if !cond.truth() {
		return nil
	}
	child := ctx.enterScope("if")
	defer ctx.exitScope(child)
	return ctx.executeAll(s.Body, child)
}

// whileStmt executes a loop. The body's scope is created once and shared by all
// iterations; the condition is evaluated in the enclosing scope.
func (ctx *Context) whileStmt(s *syntax.While, sc runtime.Scope) error {
	child := ctx.enterScope("while")
	defer ctx.exitScope(child)
	for {
		cond, err := ctx.equality(s.Cond, sc)
		if err != nil {
			return err
		}
		if !cond.truth() {
			return nil
		}
		if err = ctx.executeAll(s.Body, child); err != nil {
			return err
		}
	}
}

// --- Arithmetic ------------------------------------------------------------

// additive evaluates the left operand and applies the first operator, if any.
func (ctx *Context) additive(e *syntax.Additive, sc runtime.Scope) (runtime.ScriptValue, error) {
	left, err := ctx.multiplicative(e.Left, sc)
	if err != nil || len(e.Tail) == 0 {
		return left, err
	}
	if len(e.Tail) > 1 {
		tracer().Debugf("additive expression at %v: ignoring %d trailing operation(s)", e.Span(), len(e.Tail)-1)
	}
	right, err := ctx.multiplicative(e.Tail[0].Right, sc)
	if err != nil {
		return right, err
	}
	return arith(e.Tail[0].Op, left, right, e.Tail[0].Right)
}

// multiplicative evaluates the left operand and applies the first operator, if any.
func (ctx *Context) multiplicative(e *syntax.Multiplicative, sc runtime.Scope) (runtime.ScriptValue, error) {
	left, err := ctx.unary(e.Left, sc)
	if err != nil || len(e.Tail) == 0 {
		return left, err
	}
	if len(e.Tail) > 1 {
		tracer().Debugf("multiplicative expression at %v: ignoring %d trailing operation(s)", e.Span(), len(e.Tail)-1)
	}
	right, err := ctx.unary(e.Tail[0].Right, sc)
	if err != nil {
		return right, err
	}
	return arith(e.Tail[0].Op, left, right, e.Tail[0].Right)
}

func arith(op syntax.ArithOp, l, r runtime.ScriptValue, rnode syntax.Node) (runtime.ScriptValue, error) {
	a, b := l.Raw(), r.Raw()
	switch op {
	case syntax.Add:
		return runtime.Integer(a + b), nil
	case syntax.Sub:
		return runtime.Integer(a - b), nil
	case syntax.Mul:
		return runtime.Integer(a * b), nil
	case syntax.Div, syntax.Mod:
		if b == 0 {
			return runtime.ScriptValue{}, &ArithmeticError{Op: op, Span: rnode.Span()}
		}
		if op == syntax.Div {
			return runtime.Integer(a / b), nil
		}
		return runtime.Integer(a % b), nil
	}
	panic(fmt.Sprintf("unknown arithmetic operator %d", op))
}

func (ctx *Context) unary(u syntax.Unary, sc runtime.Scope) (runtime.ScriptValue, error) {
	switch t := u.(type) {
	case *syntax.Paren:
		return ctx.additive(t.Inner, sc)
	case *syntax.IntLit:
		return runtime.Integer(t.Value), nil
	case *syntax.VarRef:
		v, _, found := sc.Lookup(t.Name)
		if !found {
			return runtime.ScriptValue{}, &LookupError{Name: t.Name, Span: t.Span()}
		}
		return v.Value(), nil
	}
	panic(fmt.Sprintf("unknown unary term %T", u))
}

// --- Relational expressions ------------------------------------------------

// operand is the result of a relational expression: an integer, or a boolean
// if a comparison has been performed.
type operand struct {
	num    runtime.ScriptValue
	isBool bool
	b      bool
}

func integer(v runtime.ScriptValue) operand {
	return operand{num: v}
}

func boolean(b bool) operand {
	return operand{isBool: true, b: b}
}

func (o operand) isInt() bool {
	return !o.isBool && o.num.IsInteger()
}

// truth coerces a condition to a boolean. Only a boolean true is true;
// integers are never true.
func (o operand) truth() bool {
	return o.isBool && o.b
}

func (o operand) String() string {
	if o.isBool {
		return fmt.Sprintf("%v", o.b)
	}
	return o.num.String()
}

func (ctx *Context) equality(e *syntax.Equality, sc runtime.Scope) (operand, error) {
	left, err := ctx.greater(e.Left, sc)
	if err != nil || e.Op == syntax.NoRelOp || !left.isInt() {
		return left, err
	}
	right, err := ctx.greater(e.Right, sc)
	if err != nil || !right.isInt() {
		return left, err
	}
	return compare(e.Op, left.num, right.num), nil
}

func (ctx *Context) greater(e *syntax.GreaterExpr, sc runtime.Scope) (operand, error) {
	left, err := ctx.less(e.Left, sc)
	if err != nil || e.Op == syntax.NoRelOp || !left.isInt() {
		return left, err
	}
	right, err := ctx.less(e.Right, sc)
	if err != nil || !right.isInt() {
		return left, err
	}
	return compare(e.Op, left.num, right.num), nil
}

func (ctx *Context) less(e *syntax.LessExpr, sc runtime.Scope) (operand, error) {
	l, err := ctx.unary(e.Left, sc)
	if err != nil || e.Op == syntax.NoRelOp {
		return integer(l), err
	}
	r, err := ctx.unary(e.Right, sc)
	if err != nil {
		return integer(l), err
	}
	return compare(e.Op, l, r), nil
}

func compare(op syntax.RelOp, l, r runtime.ScriptValue) operand {
	a, b := l.Raw(), r.Raw()
	switch op {
	case syntax.Less:
		return boolean(a < b)
	case syntax.LessEq:
		return boolean(a <= b)
	case syntax.Greater:
		return boolean(a > b)
	case syntax.GreaterEq:
		return boolean(a >= b)
	case syntax.Equal:
		return boolean(a == b)
	case syntax.NotEqual:
		return boolean(a != b)
	}
	panic(fmt.Sprintf("unknown relational operator %d", op))
}
