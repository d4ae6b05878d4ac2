/*
Package bpp is the root of the B++ scripting toolbox.

B++ is a small embedded scripting language an editor exposes to its users for
automating editor actions. Scripts declare integer variables, compute with them,
branch and loop, and call into capabilities the host application registers.
Package structure is as follows:

■ syntax: Package syntax defines the B++ abstract syntax tree and a parser
producing it. Sub-package scanner implements the lexer.

■ runtime: Package runtime provides the value model and the scope chain for
running scripts.

■ host: Package host implements the host-binding bridge: a table of named
capabilities (classes, fields, static methods) and the namespace resolution
scripts use to reach them.

■ interp: Package interp implements the tree-walking evaluator.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bpp
