package tree

import "github.com/perch-wm/perch/internal/geometry"

// Workspace is the root of one per-monitor window subtree. Its rectangle
// is the usable area windows are tiled into.
type Workspace struct {
	node

	Name string

	rect geometry.Rect
}

// NewWorkspace creates a detached workspace covering the given area.
func NewWorkspace(name string, rect geometry.Rect) *Workspace {
	return &Workspace{node: newNode(), Name: name, rect: rect}
}

func (w *Workspace) Kind() Kind { return KindWorkspace }

func (w *Workspace) Rect() geometry.Rect { return w.rect }

// SetRect updates the workspace's usable area, e.g. when its monitor is
// reconfigured.
func (w *Workspace) SetRect(rect geometry.Rect) { w.rect = rect }

// TilingDirection is the axis along which a split container lays out its
// children.
type TilingDirection int

const (
	DirectionHorizontal TilingDirection = iota
	DirectionVertical
)

// SplitContainer groups tiling windows (or nested splits) along one axis.
type SplitContainer struct {
	node

	Direction TilingDirection
}

// NewSplitContainer creates a detached, empty split group.
func NewSplitContainer(direction TilingDirection) *SplitContainer {
	return &SplitContainer{node: newNode(), Direction: direction}
}

func (s *SplitContainer) Kind() Kind { return KindSplit }
