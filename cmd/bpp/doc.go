/*
Command bpp runs B++ scripts against a small demo editor host.

Usage:

    bpp [flags] [script.bpp …]

Scripts given as arguments are run one after another, each in a fresh context.
Flags are:

    -e 'src'      run B++ source given on the command line
    -repl         start an interactive shell after running scripts
    -tree         display the syntax tree of every script before running it
    -with a,b     register namespace prefixes up front
    -caps         list the capabilities of the demo host
    -trace level  trace level [Debug|Info|Error]

Configuration is read from a NestedText file located by schuko, using
application tag "bpp". Recognized keys are `tracing.adapter`, `tracelevel.<key>`
and `with`.

The demo host exposes these classes:

    Editor.Api        fields statusbar, document, version; methods getInstance, beep
    Editor.Statusbar  method show(object, int)
    Editor.Document   methods insertNumber(object, int), lineCount(object)

Example:

    bpp -e 'with Editor. var n = 3. while 0 < n begin Api:beep(). n = n - 1. end'

Exit status is 1 if a script failed at run time and 2 for syntax or I/O errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bpp.cli'.
func tracer() tracing.Trace {
	return tracing.Select("bpp.cli")
}
