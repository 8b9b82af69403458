// Package platform defines the window-system contracts consumed by the
// window-management engine. The X11 implementation lives in internal/x11;
// tests substitute in-memory fakes.
package platform

import "github.com/perch-wm/perch/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// NativeWindow is a read-only snapshot of an OS window's queried
// attributes. Implementations must be side-effect-free and return
// consistent values for the duration of one engine dispatch.
type NativeWindow interface {
	Handle() WindowID
	Title() string
	Placement() geometry.Rect
	IsMinimized() bool
	IsFullscreen() bool
	IsResizable() bool
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID          int
	Name        string
	Bounds      geometry.Rect
	Usable      geometry.Rect
	ScaleFactor float64
}

// Backend abstracts the window-system operations the daemon performs when
// draining redraw and focus-sync obligations.
type Backend interface {
	Displays() ([]Display, error)
	MoveResize(id WindowID, bounds geometry.Rect) error
	Minimize(id WindowID) error
	Restore(id WindowID) error
	SetFullscreen(id WindowID, fullscreen bool) error
	Focus(id WindowID) error
}
