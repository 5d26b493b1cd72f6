// Package treetest builds go-i3 node trees for tests.
package treetest

import "go.i3wm.org/i3/v4"

// Con returns a tiling container with the given children. Leaves get the
// splith layout i3 reports for windows.
func Con(id int64, children ...*i3.Node) *i3.Node {
	return &i3.Node{
		ID:     i3.NodeID(id),
		Type:   "con",
		Layout: "splith",
		Nodes:  children,
	}
}

// Split returns a split container using layout.
func Split(id int64, layout string, children ...*i3.Node) *i3.Node {
	n := Con(id, children...)
	n.Layout = i3.Layout(layout)
	return n
}

func Focused(n *i3.Node) *i3.Node {
	n.Focused = true
	return n
}

// Float wraps n in a floating_con the way i3 does for floating windows.
func Float(id int64, n *i3.Node) *i3.Node {
	return &i3.Node{
		ID:    i3.NodeID(id),
		Type:  "floating_con",
		Nodes: []*i3.Node{n},
	}
}

func Workspace(id int64, name string, children ...*i3.Node) *i3.Node {
	return &i3.Node{
		ID:     i3.NodeID(id),
		Name:   name,
		Type:   "workspace",
		Layout: "splith",
		Nodes:  children,
	}
}

// WithFloating attaches floating containers to a workspace.
func WithFloating(ws *i3.Node, floating ...*i3.Node) *i3.Node {
	ws.FloatingNodes = append(ws.FloatingNodes, floating...)
	return ws
}

func Output(id int64, name string, workspaces ...*i3.Node) *i3.Node {
	content := &i3.Node{
		ID:    i3.NodeID(id + 1),
		Name:  "content",
		Type:  "con",
		Nodes: workspaces,
	}
	return &i3.Node{
		ID:    i3.NodeID(id),
		Name:  name,
		Type:  "output",
		Nodes: []*i3.Node{content},
	}
}

func Root(outputs ...*i3.Node) *i3.Node {
	return &i3.Node{
		ID:    9000,
		Name:  "root",
		Type:  "root",
		Nodes: outputs,
	}
}
