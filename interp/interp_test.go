package interp

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/runtime"
	"github.com/npillmayer/bpp/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// run executes src in a fresh context with persistent globals, so tests may
// inspect top-level variables afterwards.
func run(t *testing.T, src string, opts ...Option) (*Context, error) {
	t.Helper()
	prog, err := syntax.Parse(t.Name(), src)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", src, err)
	}
	ctx := NewContext(nil, append(opts, WithPersistentGlobals())...)
	return ctx, ctx.Run(prog)
}

func global(t *testing.T, ctx *Context, name string) (int64, bool) {
	t.Helper()
	globals, ok := ctx.Globals()
	if !ok {
		t.Fatalf("no global scope present")
	}
	v := globals.Bindings().Resolve(name)
	if v == nil {
		return 0, false
	}
	return v.Value().Raw(), true
}

func mustGlobal(t *testing.T, ctx *Context, name string) int64 {
	t.Helper()
	n, ok := global(t, ctx, name)
	if !ok {
		t.Fatalf("expected global variable %s to exist", name)
	}
	return n
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	pairs := [][2]int64{{3, 4}, {0, 7}, {100, 3}, {7, 100}, {123456789, 987654321},
		{math.MaxInt64, 1}, {math.MaxInt64, 2}, {0, 0}}
	ops := []struct {
		sym string
		fn  func(a, b int64) int64
	}{
		{"+", func(a, b int64) int64 { return a + b }},
		{"-", func(a, b int64) int64 { return a - b }},
		{"*", func(a, b int64) int64 { return a * b }},
	}
	for _, p := range pairs {
		for _, op := range ops {
			src := fmt.Sprintf("var r = %d %s %d.", p[0], op.sym, p[1])
			ctx, err := run(t, src)
			if err != nil {
				t.Errorf("%s: unexpected error %v", src, err)
				continue
			}
			if r := mustGlobal(t, ctx, "r"); r != op.fn(p[0], p[1]) {
				t.Errorf("%s: expected %d, have %d", src, op.fn(p[0], p[1]), r)
			}
		}
	}
	for _, test := range []struct {
		src    string
		result int64
	}{
		{"var r = 17 / 5.", 3},
		{"var r = 17 % 5.", 2},
		{"var r = (2 + 3) * 4.", 20},
		{"var r = 1 + 2 * 3.", 7},
		{"var r = 2 * 3 + 4 * 5.", 26},
		{"var r = 0 - 7 .", -7},
		{"var a = 0 - 7. var r = a / 2.", -3},
		{"var a = 0 - 7. var r = a % 2.", -1},
	} {
		ctx, err := run(t, test.src)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.src, err)
			continue
		}
		if r := mustGlobal(t, ctx, "r"); r != test.result {
			t.Errorf("%s: expected %d, have %d", test.src, test.result, r)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	for _, test := range []struct {
		src string
		op  syntax.ArithOp
	}{
		{"var a = 1. var r = a / 0. var b = 2.", syntax.Div},
		{"var a = 1. var r = a % 0. var b = 2.", syntax.Mod},
		{"var a = 1. var z = 0. if a < 2 begin var r = 5 / z. end var b = 2.", syntax.Div},
	} {
		ctx, err := run(t, test.src)
		var aerr *ArithmeticError
		if !errors.As(err, &aerr) {
			t.Errorf("%s: expected arithmetic error, have %v", test.src, err)
			continue
		}
		if aerr.Op != test.op || !IsPropagated(err) {
			t.Errorf("%s: expected propagated %s by zero, have %v", test.src, test.op, err)
		}
		if _, found := global(t, ctx, "b"); found {
			t.Errorf("%s: expected run to stop at the failing statement", test.src)
		}
		if d := ctx.Runtime().ScopeTree.Depth(); d != 1 {
			t.Errorf("%s: expected block scopes to be discarded, depth is %d", test.src, d)
		}
	}
}

func TestFirstOperationOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	for _, test := range []struct {
		src    string
		result int64
	}{
		{"var r = 1 + 2 + 3.", 3},
		{"var r = 10 - 2 - 3.", 8},
		{"var r = 2 * 3 * 4.", 6},
		{"var r = 1 + 2 + 1 / 0.", 3},
		{"var r = 8 / 2 % 0.", 4},
		{"var r = 1 + 2 + undefined.", 3},
	} {
		ctx, err := run(t, test.src)
		if err != nil {
			t.Errorf("%s: expected trailing operations to be ignored, have error %v", test.src, err)
			continue
		}
		if r := mustGlobal(t, ctx, "r"); r != test.result {
			t.Errorf("%s: expected %d, have %d", test.src, test.result, r)
		}
	}
}

func TestUndefinedVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	_, err := run(t, "var r = y + 1.")
	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Name != "y" {
		t.Fatalf("expected lookup error for y, have %v", err)
	}
	if !IsPropagated(err) {
		t.Errorf("expected lookup error to be propagated")
	}
	_, err = run(t, "while y < 3 begin end")
	if !errors.As(err, &lerr) {
		t.Errorf("expected lookup error in loop condition, have %v", err)
	}
}

func TestScopeChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	ctx, err := run(t, `var x = 5. var seen = 0. var inner = 0.
	if 1 < 2 begin
		seen = x.
		var x = 7.
		inner = x.
	end`)
	if err != nil {
		t.Fatal(err)
	}
	if x := mustGlobal(t, ctx, "x"); x != 5 {
		t.Errorf("expected outer x to remain 5, have %d", x)
	}
	if seen := mustGlobal(t, ctx, "seen"); seen != 5 {
		t.Errorf("expected x to be visible from child scope as 5, have %d", seen)
	}
	if inner := mustGlobal(t, ctx, "inner"); inner != 7 {
		t.Errorf("expected shadowing x to be 7, have %d", inner)
	}
	//
	ctx, err = run(t, `var x = 5. var n = 0. var w = 0.
	while n < 1 begin
		w = x.
		var x = 9.
		n = n + 1.
	end`)
	if err != nil {
		t.Fatal(err)
	}
	if x, w := mustGlobal(t, ctx, "x"), mustGlobal(t, ctx, "w"); x != 5 || w != 5 {
		t.Errorf("expected x = 5 and w = 5 after loop, have x = %d, w = %d", x, w)
	}
}

func TestUndeclaredAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	var misses []*host.Miss
	ctx, err := run(t, "x = 5. y = 1 / 0. var z = 1.", WithMissHandler(func(m *host.Miss) {
		misses = append(misses, m)
	}))
	if err != nil {
		t.Fatalf("expected assignment to undeclared names to be ignored, have %v", err)
	}
	if _, found := global(t, ctx, "x"); found {
		t.Errorf("expected no binding for x")
	}
	if len(misses) != 2 || misses[0].Kind != host.UndeclaredAssign || misses[0].Name != "x" {
		t.Errorf("expected 2 undeclared-assignment misses, have %v", misses)
	}
	if z := mustGlobal(t, ctx, "z"); z != 1 {
		t.Errorf("expected run to continue after silent misses")
	}
}

func TestWhileScopeIsShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	var counters []*runtime.Variable
	var loopBindings, loopValue int
	step := func(stmt syntax.Stmt, sc runtime.Scope) {
		if d, ok := stmt.(*syntax.VarDecl); ok && d.Name == "k" {
			counters = append(counters, sc.Bindings().Resolve("k"))
		}
	}
	exit := func(sc runtime.Scope) {
		if sc.Name() == "while" {
			loopBindings = sc.Bindings().Size()
			loopValue = int(sc.Bindings().Resolve("k").Value().Raw())
		}
	}
	ctx, err := run(t, "var i = 0. while i < 5 begin var k = i. i = i + 1. end",
		WithStepHook(step), WithScopeExitHook(exit))
	if err != nil {
		t.Fatal(err)
	}
	if len(counters) != 5 {
		t.Fatalf("expected 5 iterations, have %d", len(counters))
	}
	for i, v := range counters {
		if v != counters[0] {
			t.Errorf("iteration %d: expected the same variable to be overwritten", i)
		}
	}
	if loopBindings != 1 || loopValue != 4 {
		t.Errorf("expected loop scope to hold one binding k = 4, have %d bindings, k = %d",
			loopBindings, loopValue)
	}
	if i := mustGlobal(t, ctx, "i"); i != 5 {
		t.Errorf("expected i = 5, have %d", i)
	}
}

func TestWhileConditionSeesOuterScope(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	// the body shadows x after the first iteration; the condition must still
	// read the outer x, otherwise the loop would never end
	ctx, err := run(t, "var x = 0. var c = 0. while x < 1 begin x = x + 1. var x = 0. c = c + 1. end")
	if err != nil {
		t.Fatal(err)
	}
	if c := mustGlobal(t, ctx, "c"); c != 1 {
		t.Errorf("expected loop body to run once, have c = %d", c)
	}
	if x := mustGlobal(t, ctx, "x"); x != 1 {
		t.Errorf("expected outer x = 1, have %d", x)
	}
}

func TestRelationalChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	for _, test := range []struct {
		cond string
		hit  bool
	}{
		{"1 < 2", true},
		{"2 < 1", false},
		{"1 <= 1", true},
		{"2 > 1", true},
		{"1 >= 2", false},
		{"3 == 3", true},
		{"3 != 3", false},
		{"x == 1", true},
		{"1 < 2 == 1", true},  // boolean passes equality tier unchanged
		{"1 < 2 == 5", true},  // not re-compared
		{"2 < 1 == 0", false}, // not re-compared
		{"1 > 2 < 3", false},  // integer 1 passes through, integers are not true
		{"5", false},
		{"x", false},
	} {
		src := fmt.Sprintf("var x = 1. var hit = 0. if %s begin hit = 1. end", test.cond)
		ctx, err := run(t, src)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.cond, err)
			continue
		}
		if hit := mustGlobal(t, ctx, "hit") == 1; hit != test.hit {
			t.Errorf("condition %s: expected %v, have %v", test.cond, test.hit, hit)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	var c *runtime.Variable
	var popped []string
	ctx := NewContext(nil, WithScopeExitHook(func(sc runtime.Scope) {
		popped = append(popped, sc.Name())
		if sc.Name() == "if" {
			c = sc.Bindings().Resolve("c")
		}
	}))
	err := RunSource(ctx, "e2e", "var a = 3. var b = 4. if a < b begin var c = a + b. end")
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || c.Value().Raw() != 7 {
		t.Errorf("expected c = 7 in the conditional's scope, have %v", c)
	}
	if len(popped) != 2 || popped[0] != "if" || popped[1] != "program" {
		t.Errorf("expected scopes [if program] to be discarded, have %v", popped)
	}
	if d := ctx.Runtime().ScopeTree.Depth(); d != 0 {
		t.Errorf("expected empty scope tree after run, depth is %d", d)
	}
}

func TestNoScopeWithoutStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	var pushed int
	ctx := NewContext(nil, WithScopeExitHook(func(runtime.Scope) { pushed++ }))
	if err := RunSource(ctx, "requires", "with Editor. with Editor.Api."); err != nil {
		t.Fatal(err)
	}
	if pushed != 0 {
		t.Errorf("expected no scope for a program without statements")
	}
	if n := ctx.Bridge().Namespaces().Size(); n != 2 {
		t.Errorf("expected 2 namespaces to be registered, have %d", n)
	}
}

func TestPersistentGlobals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.interp")
	defer teardown()
	//
	ctx := NewContext(nil, WithPersistentGlobals())
	for _, src := range []string{"var a = 1.", "a = a + 1.", "if a == 2 begin a = a * 10. end"} {
		if err := RunSource(ctx, "repl", src); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
	}
	if a := mustGlobal(t, ctx, "a"); a != 20 {
		t.Errorf("expected a = 20, have %d", a)
	}
	if d := ctx.Runtime().ScopeTree.Depth(); d != 1 {
		t.Errorf("expected only the global scope to survive, depth is %d", d)
	}
}
