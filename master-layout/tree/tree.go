// Package tree holds a flattened, read-only snapshot of the i3 layout tree.
//
// Containers reference their parent and workspace by id; nothing in a
// Snapshot owns anything else, so a snapshot can be walked in any direction
// without cycles.
package tree

import (
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"go.i3wm.org/i3/v4"
)

// ID is the i3 con_id of a container. i3 never hands out 0.
type ID int64

const NoID ID = 0

type Container struct {
	ID        ID
	Name      string
	Type      string
	Layout    types.LayoutType
	Focused   bool
	Floating  bool
	Output    string
	Parent    ID
	Workspace ID
	Children  []ID
}

// IsWindowCon reports whether the container is a regular "con" node.
func (c *Container) IsWindowCon() bool {
	return c != nil && c.Type == "con"
}

type Snapshot struct {
	root    ID
	focused ID
	nodes   map[ID]*Container
}

// FromI3 flattens the tree returned by i3.GetTree.
func FromI3(root *i3.Node) *Snapshot {
	s := &Snapshot{nodes: make(map[ID]*Container)}
	if root == nil {
		return s
	}
	s.root = ID(root.ID)
	s.add(root, NoID, NoID, "", false)
	return s
}

func (s *Snapshot) add(n *i3.Node, parent, workspace ID, output string, floating bool) {
	c := &Container{
		ID:        ID(n.ID),
		Name:      n.Name,
		Type:      string(n.Type),
		Layout:    types.LayoutType(n.Layout),
		Focused:   n.Focused,
		Floating:  floating,
		Parent:    parent,
		Workspace: workspace,
	}

	switch c.Type {
	case "output":
		output = n.Name
	case "workspace":
		workspace = c.ID
	}
	c.Output = output

	s.nodes[c.ID] = c
	if c.Focused {
		s.focused = c.ID
	}

	for _, child := range n.Nodes {
		c.Children = append(c.Children, ID(child.ID))
		s.add(child, c.ID, workspace, output, floating)
	}
	for _, child := range n.FloatingNodes {
		s.add(child, c.ID, workspace, output, true)
	}
}

func (s *Snapshot) Root() *Container {
	return s.Get(s.root)
}

// Get returns nil for ids that aren't part of the snapshot.
func (s *Snapshot) Get(id ID) *Container {
	if s == nil || id == NoID {
		return nil
	}
	return s.nodes[id]
}

// Focused returns the container i3 reports as focused, or nil.
func (s *Snapshot) Focused() *Container {
	return s.Get(s.focused)
}

// WorkspaceOf returns the workspace owning c. A workspace is not its own owner.
func (s *Snapshot) WorkspaceOf(c *Container) *Container {
	if c == nil {
		return nil
	}
	return s.Get(c.Workspace)
}

// Child returns the i-th tiling child of c. Negative indexes count from the end.
func (s *Snapshot) Child(c *Container, i int) *Container {
	if c == nil {
		return nil
	}
	if i < 0 {
		i += len(c.Children)
	}
	if i < 0 || i >= len(c.Children) {
		return nil
	}
	return s.Get(c.Children[i])
}

// DeepestLast follows the last child down until it reaches a container with
// at most one child. That container is the tail of the stack.
func (s *Snapshot) DeepestLast(c *Container) *Container {
	for c != nil && len(c.Children) > 1 {
		last := s.Child(c, -1)
		if last == nil {
			break
		}
		c = last
	}
	return c
}

// GroupingContainer returns the container holding the master and the stack:
// the sole child of ws when it has exactly one, otherwise ws itself.
func (s *Snapshot) GroupingContainer(ws *Container) *Container {
	if ws == nil {
		return nil
	}
	if len(ws.Children) == 1 {
		if only := s.Child(ws, 0); only != nil {
			return only
		}
	}
	return ws
}
