package main

import (
	"github.com/npillmayer/bpp/syntax"
	"github.com/pterm/pterm"
)

// showTree displays the syntax tree of a program on the terminal.
func showTree(name string, prog *syntax.Program) {
	pterm.Println(name)
	if err := pterm.DefaultTree.WithRoot(treeOf(prog)).Render(); err != nil {
		tracer().Errorf("cannot render tree: %v", err)
	}
}

func treeOf(n syntax.Node) pterm.TreeNode {
	ll := leveledNodes(n)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledNodes(n syntax.Node) pterm.LeveledList {
	var ll pterm.LeveledList
	syntax.Walk(n, func(node syntax.Node, depth int) bool {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  node.Label(),
		})
		return true
	})
	return ll
}
