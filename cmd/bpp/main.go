package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/interp"
	"github.com/npillmayer/bpp/syntax"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // a script failed at run time
	exitSyntax  = 2 // syntax or I/O error
	exitSetup   = 3
)

// tracers lists the trace keys of all packages of the interpreter.
var tracers = []string{"bpp.scanner", "bpp.syntax", "bpp.runtime", "bpp.host", "bpp.interp", "bpp.cli"}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	inline := flag.String("e", "", "B++ source to run")
	tree := flag.Bool("tree", false, "Display syntax trees")
	interactive := flag.Bool("repl", false, "Start an interactive shell")
	with := flag.String("with", "", "Comma-separated namespace prefixes to register up front")
	caps := flag.Bool("caps", false, "List the capabilities of the demo host")
	flag.Parse()
	//
	conf := initConfig(*tlevel)
	if err := initTracing(conf); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitSetup)
	}
	if *with == "" {
		*with = conf.GetString("with")
	}
	cli := &CLI{
		editor:     &Editor{Version: 1},
		namespaces: splitNamespaces(*with),
		tree:       *tree,
	}
	cli.table = cli.editor.Capabilities()
	if *caps {
		listCapabilities(cli.table)
	}
	status := exitOK
	for _, filename := range flag.Args() {
		status = worst(status, cli.RunFile(filename))
	}
	if *inline != "" {
		status = worst(status, cli.Run(cli.NewContext(), "-e", *inline))
	}
	if *interactive {
		repl, err := readline.New("bpp> ")
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(exitSetup)
		}
		pterm.Info.Println("Welcome to B++")
		tracer().Infof("Quit with <ctrl>D")
		intp := &Intp{cli: cli, repl: repl}
		intp.ctx = cli.NewContext(interp.WithPersistentGlobals())
		intp.REPL()
		repl.Close()
	} else if flag.NArg() == 0 && *inline == "" && !*caps {
		flag.Usage()
	}
	os.Exit(status)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initConfig loads configuration from the default locations and overrides
// trace levels with the level given on the command line, if any.
func initConfig(level string) *koanfadapter.KConf {
	conf := koanfadapter.New(nil, "bpp", []string{"nt"})
	conf.InitDefaults()
	if level != "" {
		conf.Set("tracelevel.root", level)
		for _, key := range tracers {
			conf.Set("tracelevel."+key, level)
		}
	}
	for _, key := range tracers {
		if !conf.IsSet("tracelevel." + key) {
			conf.Set("tracelevel."+key, "Error")
		}
	}
	return conf
}

// initTracing sets up trace2go as the tracing backend for all packages, with
// trace levels taken from the configuration.
func initTracing(conf *koanfadapter.KConf) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("unable to configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("trace level is %s", tracer().GetTraceLevel())
	return nil
}

func splitNamespaces(s string) []string {
	var ns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ns = append(ns, p)
		}
	}
	return ns
}

func listCapabilities(table *host.Table) {
	var ll pterm.LeveledList
	for _, name := range table.Classes() {
		class, _ := table.Lookup(name)
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: name})
		for _, f := range class.Fields() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "field " + f})
		}
		for _, m := range class.Methods() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "method " + m.Signature()})
		}
	}
	pterm.Println("capabilities")
	if err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render(); err != nil {
		tracer().Errorf("cannot render capabilities: %v", err)
	}
	pterm.Info.Println("fingerprint " + table.Fingerprint())
}

func worst(a, b int) int {
	if b > a {
		return b
	}
	return a
}

// --- Running scripts -------------------------------------------------------

// CLI holds what is shared between all script runs of a bpp invocation.
type CLI struct {
	editor     *Editor
	table      *host.Table
	namespaces []string
	tree       bool
}

// NewContext creates an execution context for the demo host. Silent misses
// are traced.
func (cli *CLI) NewContext(opts ...interp.Option) *interp.Context {
	opts = append([]interp.Option{interp.WithMissHandler(reportMiss)}, opts...)
	if len(cli.namespaces) > 0 {
		opts = append(opts, interp.WithNamespaces(cli.namespaces...))
	}
	return interp.NewContext(cli.table, opts...)
}

// RunFile runs a script file in a fresh context.
func (cli *CLI) RunFile(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitSyntax
	}
	return cli.Run(cli.NewContext(), filename, string(src))
}

// Run parses and runs B++ source within a context and returns an exit status.
func (cli *CLI) Run(ctx *interp.Context, name, src string) int {
	prog, err := syntax.Parse(name, src)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitSyntax
	}
	if cli.tree {
		showTree(name, prog)
	}
	if err = ctx.Run(prog); err != nil {
		pterm.Error.Println(fmt.Sprintf("%s: %v", name, err))
		if interp.IsPropagated(err) {
			return exitFailure
		}
		return exitSyntax
	}
	return exitOK
}

func reportMiss(m *host.Miss) {
	tracer().Infof("miss: %v", m)
}
