package runtime

import (
	"fmt"
	"strconv"
)

// Type is a declared type tag of a value at the host boundary.
type Type int8

// Pre-defined types. Integer is the only type scripts can produce; Object
// tags opaque host objects threaded through host-call chains. AnyType is a
// wildcard for host method parameters.
const (
	Undefined Type = iota
	IntegerType
	ObjectType
	AnyType
)

func (t Type) String() string {
	switch t {
	case IntegerType:
		return "int"
	case ObjectType:
		return "object"
	case AnyType:
		return "any"
	}
	return "undefined"
}

// Accepts is a predicate: may an argument of type arg be passed to a parameter
// of type t?
func (t Type) Accepts(arg Type) bool {
	return t == AnyType || t == arg
}

// Argument is anything which may be passed to a host method: it has a declared
// type and unwraps to a raw Go value.
type Argument interface {
	DeclaredType() Type
	Unwrap() interface{}
}

// --- Script values ---------------------------------------------------------

// ScriptValue is the single runtime scalar of B++. Values are immutable;
// every operation creates a new one.
type ScriptValue struct {
	raw int64
	typ Type
}

var _ Argument = ScriptValue{}

// Integer creates a script value from an integer.
func Integer(n int64) ScriptValue {
	return ScriptValue{raw: n, typ: IntegerType}
}

// Raw returns the integer value.
func (v ScriptValue) Raw() int64 {
	return v.raw
}

// DeclaredType is part of interface Argument.
func (v ScriptValue) DeclaredType() Type {
	return v.typ
}

// Unwrap is part of interface Argument. It returns the raw int64.
func (v ScriptValue) Unwrap() interface{} {
	return v.raw
}

// IsInteger is a predicate: does v hold an integer? The zero ScriptValue does not.
func (v ScriptValue) IsInteger() bool {
	return v.typ == IntegerType
}

func (v ScriptValue) String() string {
	if v.typ != IntegerType {
		return "<undefined>"
	}
	return strconv.FormatInt(v.raw, 10)
}

// --- Host objects ----------------------------------------------------------

// HostObject wraps an opaque value handed out by the host, e.g. a field value
// read during a host-call chain.
type HostObject struct {
	obj interface{}
}

var _ Argument = HostObject{}

// Object wraps a host value.
func Object(obj interface{}) HostObject {
	return HostObject{obj: obj}
}

// DeclaredType is part of interface Argument.
func (o HostObject) DeclaredType() Type {
	return ObjectType
}

// Unwrap is part of interface Argument.
func (o HostObject) Unwrap() interface{} {
	return o.obj
}

func (o HostObject) String() string {
	return fmt.Sprintf("<object %v>", o.obj)
}
