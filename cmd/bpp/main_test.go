package main

import (
	"strings"
	"testing"

	"github.com/npillmayer/bpp/interp"
	"github.com/npillmayer/bpp/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func quietCLI() *CLI {
	cli := &CLI{editor: &Editor{Version: 7, Quiet: true}}
	cli.table = cli.editor.Capabilities()
	return cli
}

func TestEditorScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.cli")
	defer teardown()
	//
	cli := quietCLI()
	src := `with Editor.
	var n = 3.
	while 0 < n begin
		Api:document:insertNumber(n).
		n = n - 1.
	end
	Api:statusbar:show(42).
	Api:beep(2).`
	if status := cli.Run(cli.NewContext(), "script", src); status != exitOK {
		t.Fatalf("expected script to succeed, have status %d", status)
	}
	ed := cli.editor
	if strings.Join(ed.Document, ",") != "3,2,1" {
		t.Errorf("expected document lines 3,2,1, have %v", ed.Document)
	}
	if ed.Status != "42" {
		t.Errorf("expected status bar to show 42, have %q", ed.Status)
	}
	if ed.Beeps != 2 {
		t.Errorf("expected 2 beeps, have %d", ed.Beeps)
	}
}

func TestExitStatus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.cli")
	defer teardown()
	//
	cli := quietCLI()
	for _, test := range []struct {
		src    string
		status int
	}{
		{"var x = 1.", exitOK},
		{"with Nowhere. Api:beep().", exitOK},
		{"with Editor. Api:beep(1000).", exitOK},
		{"var x = 1 / 0.", exitFailure},
		{"var x = y.", exitFailure},
		{"var x = .", exitSyntax},
	} {
		if status := cli.Run(cli.NewContext(), "status", test.src); status != test.status {
			t.Errorf("%q: expected exit status %d, have %d", test.src, test.status, status)
		}
	}
	if cli.editor.Beeps != 0 {
		t.Errorf("expected no beeps, have %d", cli.editor.Beeps)
	}
}

func TestNamespacesUpFront(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.cli")
	defer teardown()
	//
	cli := quietCLI()
	cli.namespaces = splitNamespaces(" Other , Editor,,")
	if len(cli.namespaces) != 2 {
		t.Fatalf("expected 2 namespaces, have %v", cli.namespaces)
	}
	ctx := cli.NewContext()
	if cli.Run(ctx, "ns", "Api:getInstance().") != exitOK {
		t.Fatalf("expected script to succeed")
	}
	if r, ok := ctx.LastResult(); !ok || r != cli.editor {
		t.Errorf("expected getInstance to return the editor, have %v", r)
	}
}

func TestReplKeepsVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.cli")
	defer teardown()
	//
	cli := quietCLI()
	intp := &Intp{cli: cli, ctx: cli.NewContext(interp.WithPersistentGlobals())}
	for _, line := range []string{"var a = 20.", ":with Editor", "a = a + 1.", "Api:statusbar:show(a)."} {
		if quit := intp.Eval(line); quit {
			t.Fatalf("unexpected quit after %q", line)
		}
	}
	if cli.editor.Status != "21" {
		t.Errorf("expected status bar to show 21, have %q", cli.editor.Status)
	}
	if !intp.Eval(":quit") {
		t.Errorf("expected :quit to end the session")
	}
}

func TestSyntaxTreeLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.cli")
	defer teardown()
	//
	prog, err := syntax.Parse("tree", "var a = 1. if a < 2 begin a = 3. end")
	if err != nil {
		t.Fatal(err)
	}
	ll := leveledNodes(prog)
	if len(ll) == 0 || ll[0].Level != 0 || ll[0].Text != "program" {
		t.Fatalf("expected tree to start with program at level 0, have %v", ll)
	}
	maxLevel := 0
	for _, item := range ll {
		if item.Level > maxLevel {
			maxLevel = item.Level
		}
	}
	if maxLevel < 4 {
		t.Errorf("expected nested levels for if statement, max level is %d", maxLevel)
	}
}
