package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/bpp/host"
	"github.com/npillmayer/bpp/runtime"
	"github.com/pterm/pterm"
)

// Editor is a stand-in for an editor application which lets scripts automate
// some of its functions.
type Editor struct {
	Version  int64
	Status   string
	Document []string
	Beeps    int
	Quiet    bool // suppress terminal output
}

// Capabilities builds the capability table scripts may use to talk to the editor.
func (ed *Editor) Capabilities() *host.Table {
	t := host.NewTable()
	bar := t.Class("Editor.Statusbar").
		Method("show", ed.show, runtime.ObjectType, runtime.IntegerType)
	doc := t.Class("Editor.Document").
		Method("insertNumber", ed.insertNumber, runtime.ObjectType, runtime.IntegerType).
		Method("lineCount", ed.lineCount, runtime.ObjectType)
	t.Class("Editor.Api").
		Field("statusbar", bar).
		Field("document", doc).
		Field("version", ed.Version).
		Method("getInstance", ed.getInstance, runtime.ObjectType).
		Method("beep", ed.beep, runtime.ObjectType).
		Method("beep", ed.beepTimes, runtime.ObjectType, runtime.IntegerType)
	return t
}

func (ed *Editor) getInstance(args []interface{}) (interface{}, error) {
	return ed, nil
}

func (ed *Editor) beep(args []interface{}) (interface{}, error) {
	ed.Beeps++
	ed.print("beep")
	return nil, nil
}

func (ed *Editor) beepTimes(args []interface{}) (interface{}, error) {
	n := args[1].(int64)
	if n < 0 || n > 100 {
		return nil, fmt.Errorf("cannot beep %d times", n)
	}
	for i := int64(0); i < n; i++ {
		ed.beep(args[:1])
	}
	return n, nil
}

func (ed *Editor) show(args []interface{}) (interface{}, error) {
	ed.Status = strconv.FormatInt(args[1].(int64), 10)
	ed.print("status bar: " + ed.Status)
	return ed.Status, nil
}

func (ed *Editor) insertNumber(args []interface{}) (interface{}, error) {
	line := strconv.FormatInt(args[1].(int64), 10)
	ed.Document = append(ed.Document, line)
	tracer().Debugf("document: inserted line %d: %s", len(ed.Document), line)
	return int64(len(ed.Document)), nil
}

func (ed *Editor) lineCount(args []interface{}) (interface{}, error) {
	return int64(len(ed.Document)), nil
}

func (ed *Editor) print(msg string) {
	if !ed.Quiet {
		pterm.Info.Println(msg)
	}
}

func (ed *Editor) String() string {
	return fmt.Sprintf("<editor v%d>", ed.Version)
}
