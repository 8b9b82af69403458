package tree

import "github.com/perch-wm/perch/internal/geometry"

// Root is the single top of the container tree. Its children are monitors.
type Root struct {
	node
}

// NewRoot creates an empty tree root.
func NewRoot() *Root {
	return &Root{node: newNode()}
}

func (r *Root) Kind() Kind { return KindRoot }

// Monitor represents a physical display. Its children are workspaces.
type Monitor struct {
	node

	Name        string
	DisplayID   int
	ScaleFactor float64

	rect geometry.Rect
}

// NewMonitor creates a detached monitor with the given geometry. A scale
// factor of 0 is normalized to 1.
func NewMonitor(name string, displayID int, rect geometry.Rect, scaleFactor float64) *Monitor {
	if scaleFactor == 0 {
		scaleFactor = 1
	}
	return &Monitor{
		node:        newNode(),
		Name:        name,
		DisplayID:   displayID,
		ScaleFactor: scaleFactor,
		rect:        rect,
	}
}

func (m *Monitor) Kind() Kind { return KindMonitor }

func (m *Monitor) Rect() geometry.Rect { return m.rect }

// SetRect updates the monitor's bounds, e.g. after a RandR change.
func (m *Monitor) SetRect(rect geometry.Rect) { m.rect = rect }

// DisplayedWorkspace returns the workspace currently shown on the monitor:
// the most recently focused workspace child, or nil if the monitor has no
// workspaces.
func (m *Monitor) DisplayedWorkspace() *Workspace {
	for _, c := range m.focusOrder {
		if ws, ok := c.(*Workspace); ok {
			return ws
		}
	}
	return nil
}

// HasDpiDifference reports whether moving c onto this monitor would cross
// a scale-factor boundary, i.e. whether the monitor currently owning c has
// a different scale factor. Detached containers report no difference.
func (m *Monitor) HasDpiDifference(c Container) bool {
	current := ParentMonitor(c)
	if current == nil {
		return false
	}
	return current.ScaleFactor != m.ScaleFactor
}
