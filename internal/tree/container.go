// Package tree implements the container tree shared by monitors,
// workspaces, split groups, and windows, together with the generic
// mutation primitives that relink parent/child pointers and focus order.
//
// The variant set is closed: every node type embeds the unexported node
// struct, and the Container interface requires access to it, so no type
// outside this package can join the tree. Back-references held outside the
// tree (insertion targets, redraw entries, focus history) store container
// IDs, never pointers, and are re-validated against the tree at use time.
package tree

import (
	"github.com/google/uuid"

	"github.com/perch-wm/perch/internal/geometry"
)

// Kind identifies the concrete variant of a Container.
type Kind int

const (
	KindRoot Kind = iota
	KindMonitor
	KindWorkspace
	KindSplit
	KindTilingWindow
	KindNonTilingWindow
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindMonitor:
		return "monitor"
	case KindWorkspace:
		return "workspace"
	case KindSplit:
		return "split"
	case KindTilingWindow:
		return "tiling_window"
	case KindNonTilingWindow:
		return "non_tiling_window"
	default:
		return "unknown"
	}
}

// Container is the capability shared by every tree node: identity, kind,
// and position within the parent/child structure.
type Container interface {
	ID() uuid.UUID
	Kind() Kind
	Parent() Container
	Children() []Container
	Index() int

	// base exposes the embedded node to the mutation primitives and seals
	// the interface to this package.
	base() *node
}

// Positioned is implemented by containers that expose a concrete
// rectangle (monitors, workspaces, and windows).
type Positioned interface {
	Container
	Rect() geometry.Rect
}

// node carries the tree linkage shared by every container variant.
type node struct {
	id       uuid.UUID
	parent   Container
	children []Container

	// focusOrder holds children ordered from most to least recently
	// focused. It always contains exactly the elements of children.
	focusOrder []Container
}

func newNode() node {
	return node{id: uuid.New()}
}

func (n *node) ID() uuid.UUID { return n.id }

func (n *node) Parent() Container { return n.parent }

// Children returns the ordered child sequence. The slice is the node's
// own backing store; callers must not mutate it.
func (n *node) Children() []Container { return n.children }

// Index returns the node's position in its parent's child sequence, or -1
// for a detached node or the tree root.
func (n *node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.base().children {
		if c.ID() == n.id {
			return i
		}
	}
	return -1
}

func (n *node) base() *node { return n }

// ChildCount returns the number of direct children of c.
func ChildCount(c Container) int {
	return len(c.base().children)
}

// Ancestors returns the chain of ancestors of c, nearest first.
func Ancestors(c Container) []Container {
	var out []Container
	for p := c.Parent(); p != nil; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// IsDescendant reports whether c is a descendant of ancestor.
func IsDescendant(c, ancestor Container) bool {
	for p := c.Parent(); p != nil; p = p.Parent() {
		if p.ID() == ancestor.ID() {
			return true
		}
	}
	return false
}

// ParentWorkspace returns the workspace that owns c, or nil if c is not
// attached under one. A workspace is its own parent workspace.
func ParentWorkspace(c Container) *Workspace {
	for cur := c; cur != nil; cur = cur.Parent() {
		if ws, ok := cur.(*Workspace); ok {
			return ws
		}
	}
	return nil
}

// ParentMonitor returns the monitor that owns c, or nil if c is not
// attached under one.
func ParentMonitor(c Container) *Monitor {
	for cur := c; cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Monitor); ok {
			return m
		}
	}
	return nil
}

// Find locates the container with the given ID in the subtree rooted at c,
// or nil if no such container is attached there.
func Find(c Container, id uuid.UUID) Container {
	if c.ID() == id {
		return c
	}
	for _, child := range c.base().children {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Descendants returns all descendants of c in depth-first child order.
func Descendants(c Container) []Container {
	var out []Container
	for _, child := range c.base().children {
		out = append(out, child)
		out = append(out, Descendants(child)...)
	}
	return out
}
