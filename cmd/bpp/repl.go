package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/bpp/interp"
	"github.com/npillmayer/bpp/runtime"
	"github.com/pterm/pterm"
)

// Intp is our interactive interpreter object. Every input line is run as a
// complete program; variables declared at top level survive between lines.
type Intp struct {
	cli  *CLI
	ctx  *interp.Context
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates an input line, which is either a command starting with ':'
// or B++ source. It returns true if the user asked to quit.
func (intp *Intp) Eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		return intp.command(strings.Fields(line[1:]))
	}
	intp.ctx.ClearResult()
	if intp.cli.Run(intp.ctx, "repl", line) != exitOK {
		return false
	}
	if r, ok := intp.ctx.LastResult(); ok {
		pterm.Info.Println(fmt.Sprintf("%v", r))
	}
	return false
}

func (intp *Intp) command(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "quit", "q":
		return true
	case "vars":
		intp.showVars()
	case "with":
		for _, p := range args[1:] {
			intp.ctx.Bridge().RegisterNamespace(p)
		}
		pterm.Info.Println("namespaces: " + strings.Join(intp.ctx.Bridge().Namespaces().Prefixes(), ", "))
	case "tree":
		intp.cli.tree = !intp.cli.tree
		pterm.Info.Println(fmt.Sprintf("syntax trees %s", onOff(intp.cli.tree)))
	case "caps":
		listCapabilities(intp.cli.table)
	default:
		pterm.Error.Println("unknown command :" + args[0] + "; try :vars :with :tree :caps :quit")
	}
	return false
}

func (intp *Intp) showVars() {
	globals, ok := intp.ctx.Globals()
	if !ok {
		pterm.Info.Println("no variables")
		return
	}
	var vars []*runtime.Variable
	globals.Bindings().Each(func(_ string, v *runtime.Variable) {
		vars = append(vars, v)
	})
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name() < vars[j].Name() })
	for _, v := range vars {
		pterm.Info.Println(fmt.Sprintf("%s = %s", v.Name(), v.Value()))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
