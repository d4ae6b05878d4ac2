package interp

import (
	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/runtime"
	"github.com/npillmayer/bpp/syntax"
)

// hostCall walks a host-call chain.
//
// The base identifier is resolved to a class. Members naming a field replace
// the current object by the field's value; a field holding a class switches
// member resolution to that class. The first member which is not a field is
// the method to invoke, with the current object as the first argument,
// followed by the evaluated arguments of the call. Members after the method
// are ignored.
//
// Everything not found at the host is a silent miss. Failures evaluating the
// arguments are propagated.
func (ctx *Context) hostCall(call *syntax.HostCall, sc runtime.Scope) error {
	class, ok := ctx.bridge.ResolveClass(call.Base)
	if !ok {
		return nil
	}
	var current interface{} = class
	for i, member := range call.Members {
		if ctx.bridge.FieldExists(class, member) {
			current, _ = ctx.bridge.ReadField(class, member)
			if c, isClass := current.(*host.Class); isClass {
				class = c
			}
			continue
		}
		if i < len(call.Members)-1 {
			tracer().Debugf("host call %s: ignoring members after %s", call.Label(), member)
		}
		args := make([]runtime.Argument, 1, len(call.Args)+1)
		args[0] = argument(current)
		for _, a := range call.Args {
			v, err := ctx.additive(a, sc)
			if err != nil {
				return err
			}
			args = append(args, v)
		}
		if result, ok := ctx.bridge.InvokeStaticMethod(class, member, args); ok {
			ctx.setResult(result)
		}
		return nil
	}
	ctx.setResult(current) // all members have been fields
	return nil
}

func (ctx *Context) setResult(r interface{}) {
	tracer().Debugf("host result: %v", r)
	ctx.last, ctx.hasLast = r, true
}

// argument wraps a host value for passing it back to the host. Integers
// become script values, everything else is an opaque object.
func argument(v interface{}) runtime.Argument {
	switch x := v.(type) {
	case runtime.ScriptValue:
		return x
	case int64:
		return runtime.Integer(x)
	case int:
		return runtime.Integer(int64(x))
	}
	return runtime.Object(v)
}
