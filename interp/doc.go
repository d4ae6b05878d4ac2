/*
Package interp implements the B++ evaluator, a tree-walking interpreter over
the AST of package syntax.

Every script run happens within a Context. A context owns the runtime
environment (scopes and variables) and a host bridge with its own registry of
namespaces, thus contexts are independent of each other. The capability table
of the host may be shared between contexts.

Evaluation proceeds in two steps: first all `with` clauses register their
namespace prefix, then, if the program has statements, a top-level scope is
created and the statements are executed in order. `if` and `while` bodies
execute in a child scope of the enclosing scope. A `while` loop creates its
child scope once, before the first iteration, and re-evaluates its condition
in the enclosing scope.

Failures

Two kinds of failures abort a script run: references to undefined variables
(*LookupError) and division or modulo by zero (*ArithmeticError). The run stops
at the first failure and Run returns it.

Everything going wrong at the host boundary, as well as assignments to
undeclared variables, is a silent miss (see package host). Misses never abort
a run; they may be observed with WithMissHandler.

Additive and multiplicative expressions apply their first operator only:

    var x = 1 + 2 + 3.    // x = 3

Operators following the first one are neither evaluated nor checked.
Relational operators compare integers only; if the left side of a comparison
is the boolean result of another comparison, it is passed through as is.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.interp'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.interp")
}
