/*
Package host implements the bridge between B++ scripts and the host application.

Scripts reach the outside world only through host calls like

    with Editor.
    Api:statusbar:show(42).

The host application describes what scripts may call with a capability Table,
built once at startup: a set of classes, identified by qualified names
(`Editor.Api`), each with public fields and public static methods. There is no
reflective access to arbitrary host code.

A Bridge resolves a short class name (`Api`) against an ordered registry of
namespace prefixes, checks for and reads fields, and selects and invokes method
overloads by name and by the declared types of the arguments.

Every failure inside the bridge is a silent miss: it is reported as a *Miss to
an optional handler and degrades to "nothing found", but never propagates as an
error to the script.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package host

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.host'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.host")
}
