/*
Package runtime implements the runtime environment of the B++ interpreter,
consisting of the value model, scopes and variables.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Values

B++ knows a single scalar, a 64-bit signed integer, wrapped as ScriptValue.
Values carry a declared type which the host-binding bridge uses to select
host method overloads.

Symbol Table and Scope Tree

Variables live in symbol tables attached to scopes. Scopes are kept in an
arena (ScopeTree) and refer to their parent by index. A scope is pushed when a
block is entered and popped when the block finishes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.runtime")
}

// Runtime is a type implementing a runtime environment for a script run.
type Runtime struct {
	ScopeTree *ScopeTree  // arena of active scopes
	UData     interface{} // extension point
}

// NewRuntimeEnvironment constructs a new runtime environment with an empty
// scope tree. No scope is pushed; the interpreter pushes the top-level scope
// when a program has statements to execute.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{
		ScopeTree: NewScopeTree(),
	}
	return rt
}
