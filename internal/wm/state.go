// Package wm implements the window lifecycle engine: how a native window
// enters the container tree, how its placement state changes, and the
// redraw/focus/OS-sync bookkeeping every transition performs.
//
// All mutations run single-writer: the daemon dispatches one engine call
// at a time, and every call integrates its side effects into State before
// returning, so State is always observable in an effects-fully-applied
// form between dispatches.
package wm

import (
	"time"

	"github.com/google/uuid"

	"github.com/perch-wm/perch/internal/platform"
	"github.com/perch-wm/perch/internal/tree"
)

// State is the window manager's process state: the container tree plus the
// pending work the external redraw and OS-sync executors drain.
type State struct {
	Root *tree.Root

	// HasPendingFocusSync requests that the daemon re-assert OS focus on
	// the focused container after the current dispatch.
	HasPendingFocusSync bool

	// UnmanagedOrMinimizedAt is the instant a window was last unmanaged or
	// minimized, used to debounce OS focus-steal events. Zero when none.
	UnmanagedOrMinimizedAt time.Time

	pendingRedraw map[uuid.UUID]tree.Container
	events        []Event
}

// NewState creates process state around an empty tree root.
func NewState() *State {
	return &State{
		Root:          tree.NewRoot(),
		pendingRedraw: make(map[uuid.UUID]tree.Container),
	}
}

// FocusedContainer returns the end of the tree's focus path: the container
// that currently has (or should have) input focus. Nil only when the tree
// has no monitors.
func (s *State) FocusedContainer() tree.Container {
	focused := tree.FocusedDescendant(s.Root)
	if focused.ID() == s.Root.ID() {
		return nil
	}
	return focused
}

// AddContainerToRedraw schedules a container for the next redraw pass.
// Membership is deduplicated by container ID.
func (s *State) AddContainerToRedraw(c tree.Container) {
	s.pendingRedraw[c.ID()] = c
}

// PendingRedraw returns the containers currently scheduled for redraw.
// Order is unspecified.
func (s *State) PendingRedraw() []tree.Container {
	out := make([]tree.Container, 0, len(s.pendingRedraw))
	for _, c := range s.pendingRedraw {
		out = append(out, c)
	}
	return out
}

// ClearRedraw empties the redraw set. Called by the redraw executor after
// it has acted.
func (s *State) ClearRedraw() {
	s.pendingRedraw = make(map[uuid.UUID]tree.Container)
}

// RedrawSize returns the number of containers pending redraw.
func (s *State) RedrawSize() int {
	return len(s.pendingRedraw)
}

// Monitors returns the tree's monitors in child order.
func (s *State) Monitors() []*tree.Monitor {
	var out []*tree.Monitor
	for _, c := range s.Root.Children() {
		if m, ok := c.(*tree.Monitor); ok {
			out = append(out, m)
		}
	}
	return out
}

// Windows returns every window container in the tree.
func (s *State) Windows() []tree.WindowContainer {
	var out []tree.WindowContainer
	for _, c := range tree.Descendants(s.Root) {
		if w, ok := c.(tree.WindowContainer); ok {
			out = append(out, w)
		}
	}
	return out
}

// WindowByHandle finds the managed window for a native handle, or nil.
func (s *State) WindowByHandle(handle platform.WindowID) tree.WindowContainer {
	for _, w := range s.Windows() {
		if w.Native().Handle() == handle {
			return w
		}
	}
	return nil
}

// NearestMonitor returns the monitor whose bounds contain the native
// window's center, falling back to the monitor with the closest center.
// Nil only when the tree has no monitors.
func (s *State) NearestMonitor(native platform.NativeWindow) *tree.Monitor {
	monitors := s.Monitors()
	if len(monitors) == 0 {
		return nil
	}

	placement := native.Placement()
	cx, cy := placement.CenterX(), placement.CenterY()

	var nearest *tree.Monitor
	nearestDist := -1
	for _, m := range monitors {
		rect := m.Rect()
		if rect.Contains(cx, cy) {
			return m
		}
		dx := rect.CenterX() - cx
		dy := rect.CenterY() - cy
		dist := dx*dx + dy*dy
		if nearestDist < 0 || dist < nearestDist {
			nearest = m
			nearestDist = dist
		}
	}
	return nearest
}

// FocusTargetAfterRemoval picks the container that should receive focus
// once removed leaves the tree: the most recently focused window in the
// removed container's workspace outside the removed subtree, else the
// workspace itself. Nil when the removed container has no workspace.
func (s *State) FocusTargetAfterRemoval(removed tree.Container) tree.Container {
	workspace := tree.ParentWorkspace(removed)
	if workspace == nil {
		return nil
	}

	for _, c := range tree.DescendantFocusOrder(workspace) {
		if c.ID() == removed.ID() || tree.IsDescendant(c, removed) {
			continue
		}
		if w, ok := c.(tree.WindowContainer); ok {
			if w.State().Kind == tree.StateMinimized {
				continue
			}
			return w
		}
	}
	return workspace
}
