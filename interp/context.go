package interp

import (
	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/runtime"
	"github.com/npillmayer/bpp/syntax"
)

// Context is the execution context of script runs. It holds everything a run
// may change: scopes, variables and registered namespaces.
// A context must not be used by more than one goroutine at a time.
type Context struct {
	rt          *runtime.Runtime
	bridge      *host.Bridge
	onMiss      func(*host.Miss)
	onScopeExit func(runtime.Scope)
	onStep      func(syntax.Stmt, runtime.Scope)
	persistent  bool
	globals     runtime.Scope
	last        interface{}
	hasLast     bool
}

// Option configures a context.
type Option func(*Context)

// WithMissHandler sets a function to be called for each silent miss.
func WithMissHandler(h func(*host.Miss)) Option {
	return func(ctx *Context) {
		ctx.onMiss = h
	}
}

// WithScopeExitHook sets a function to be called whenever a scope is about to
// be discarded, i.e. at the end of a block or of a program.
func WithScopeExitHook(h func(runtime.Scope)) Option {
	return func(ctx *Context) {
		ctx.onScopeExit = h
	}
}

// WithStepHook sets a function to be called after each executed statement,
// with the scope the statement has been executed in.
func WithStepHook(h func(syntax.Stmt, runtime.Scope)) Option {
	return func(ctx *Context) {
		ctx.onStep = h
	}
}

// WithPersistentGlobals keeps the top-level scope alive between runs, so that
// variables declared by one run are visible to later ones. This is what an
// interactive shell needs.
func WithPersistentGlobals() Option {
	return func(ctx *Context) {
		ctx.persistent = true
	}
}

// WithNamespaces registers namespace prefixes up front, as if every program
// started with a `with` clause for each of them.
func WithNamespaces(prefixes ...string) Option {
	return func(ctx *Context) {
		for _, p := range prefixes {
			ctx.bridge.RegisterNamespace(p)
		}
	}
}

// NewContext creates an execution context for scripts using capabilities of
// table. table may be shared between contexts.
func NewContext(table *host.Table, opts ...Option) *Context {
	ctx := &Context{
		rt:     runtime.NewRuntimeEnvironment(),
		bridge: host.NewBridge(table),
	}
	ctx.rt.UData = ctx
	ctx.bridge.SetMissHandler(ctx.miss)
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

func (ctx *Context) miss(m *host.Miss) {
	if ctx.onMiss != nil {
		ctx.onMiss(m)
	}
}

// Bridge returns the host bridge of the context.
func (ctx *Context) Bridge() *host.Bridge {
	return ctx.bridge
}

// Runtime returns the runtime environment of the context.
func (ctx *Context) Runtime() *runtime.Runtime {
	return ctx.rt
}

// Globals returns the top-level scope if globals are persistent and a program
// with statements has been run.
func (ctx *Context) Globals() (runtime.Scope, bool) {
	return ctx.globals, ctx.persistent && ctx.globals.IsValid()
}

// LastResult returns the result of the most recent successful host call.
func (ctx *Context) LastResult() (interface{}, bool) {
	return ctx.last, ctx.hasLast
}

// ClearResult forgets the result of the most recent host call.
func (ctx *Context) ClearResult() {
	ctx.last, ctx.hasLast = nil, false
}

// Run executes a program. It returns the first failure aborting the run, if any.
func (ctx *Context) Run(prog *syntax.Program) error {
	for _, req := range prog.Requires {
		ctx.require(req)
	}
	if len(prog.Stmts) == 0 {
		return nil
	}
	var sc runtime.Scope
	if ctx.persistent {
		if !ctx.globals.IsValid() {
			ctx.globals = ctx.rt.ScopeTree.PushNewScope("globals")
		}
		sc = ctx.globals
	} else {
		sc = ctx.enterScope("program")
		defer ctx.exitScope(sc)
	}
	for _, stmt := range prog.Stmts {
		if err := ctx.execute(stmt, sc); err != nil {
			tracer().Errorf("script aborted: %v", err)
			return err
		}
	}
	return nil
}

// RunSource parses and executes B++ source text. name is used for error
// messages only.
func RunSource(ctx *Context, name, source string) error {
	prog, err := syntax.Parse(name, source)
	if err != nil {
		return err
	}
	return ctx.Run(prog)
}

func (ctx *Context) enterScope(name string) runtime.Scope {
	return ctx.rt.ScopeTree.PushNewScope(name)
}

// exitScope discards the current scope, which has to be sc.
func (ctx *Context) exitScope(sc runtime.Scope) {
	if ctx.onScopeExit != nil {
		ctx.onScopeExit(sc)
	}
	if cur := ctx.rt.ScopeTree.Current(); cur.ID() != sc.ID() {
		panic("scope stack out of order")
	}
	ctx.rt.ScopeTree.PopScope()
}

func (ctx *Context) require(req *syntax.Require) {
	ctx.bridge.RegisterNamespace(req.Prefix())
}
