package tree

import (
	"github.com/google/uuid"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
)

// StateKind is the placement-state tag of a window.
type StateKind int

const (
	StateTiling StateKind = iota
	StateFloating
	StateMinimized
	StateFullscreen
)

// String returns a short lowercase name for the state.
func (k StateKind) String() string {
	switch k {
	case StateTiling:
		return "tiling"
	case StateFloating:
		return "floating"
	case StateMinimized:
		return "minimized"
	case StateFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// WindowState is a window's placement state. Floating and Fullscreen carry
// their state-default sub-config; equality is by tag only.
type WindowState struct {
	Kind       StateKind
	Floating   config.FloatingStateConfig
	Fullscreen config.FullscreenStateConfig
}

// TilingState returns the Tiling state.
func TilingState() WindowState {
	return WindowState{Kind: StateTiling}
}

// FloatingState returns a Floating state carrying the given defaults.
func FloatingState(cfg config.FloatingStateConfig) WindowState {
	return WindowState{Kind: StateFloating, Floating: cfg}
}

// MinimizedState returns the Minimized state.
func MinimizedState() WindowState {
	return WindowState{Kind: StateMinimized}
}

// FullscreenState returns a Fullscreen state carrying the given defaults.
func FullscreenState(cfg config.FullscreenStateConfig) WindowState {
	return WindowState{Kind: StateFullscreen, Fullscreen: cfg}
}

// Equal reports whether the two states have the same tag. State transitions
// must go through the lifecycle engine, never by comparing or mutating
// payloads directly.
func (s WindowState) Equal(other WindowState) bool {
	return s.Kind == other.Kind
}

// InsertionTarget remembers where a non-tiling window would rejoin the
// tiling layout: a parent container ID plus a child index. The parent is
// re-resolved against the tree at use time; a vanished parent invalidates
// the target.
type InsertionTarget struct {
	ParentID uuid.UUID
	Index    int
}

// WindowContainer is the capability shared by the two window variants.
type WindowContainer interface {
	Container
	Positioned

	Native() platform.NativeWindow
	State() WindowState
	FloatingPlacement() geometry.Rect
	SetFloatingPlacement(geometry.Rect)
	HasPendingDpiAdjustment() bool
	SetPendingDpiAdjustment(bool)
}

// TilingWindow participates in automatic tiling layout. It is always a
// child of a SplitContainer or Workspace.
type TilingWindow struct {
	node

	native            platform.NativeWindow
	floatingPlacement geometry.Rect
	innerGap          int
	pendingDpi        bool
	tilingRect        *geometry.Rect
}

// NewTilingWindow creates a detached tiling window.
func NewTilingWindow(native platform.NativeWindow, floatingPlacement geometry.Rect, innerGap int) *TilingWindow {
	return &TilingWindow{
		node:              newNode(),
		native:            native,
		floatingPlacement: floatingPlacement,
		innerGap:          innerGap,
	}
}

func (w *TilingWindow) Kind() Kind { return KindTilingWindow }

func (w *TilingWindow) Native() platform.NativeWindow { return w.native }

func (w *TilingWindow) State() WindowState { return TilingState() }

func (w *TilingWindow) InnerGap() int { return w.innerGap }

// Rect returns the window's last computed tiling rectangle. Layout rewrites
// it on every redraw; before the first redraw it falls back to the floating
// placement.
func (w *TilingWindow) Rect() geometry.Rect {
	if w.tilingRect != nil {
		return *w.tilingRect
	}
	return w.floatingPlacement
}

// SetTilingRect records the rectangle computed by the layout pass.
func (w *TilingWindow) SetTilingRect(r geometry.Rect) { w.tilingRect = &r }

func (w *TilingWindow) FloatingPlacement() geometry.Rect { return w.floatingPlacement }

func (w *TilingWindow) SetFloatingPlacement(r geometry.Rect) { w.floatingPlacement = r }

func (w *TilingWindow) HasPendingDpiAdjustment() bool { return w.pendingDpi }

func (w *TilingWindow) SetPendingDpiAdjustment(pending bool) { w.pendingDpi = pending }

// ToNonTiling converts the window to the non-tiling variant carrying the
// given state. Identity (ID) is preserved; the insertion target records
// where the window should rejoin tiling layout.
func (w *TilingWindow) ToNonTiling(state WindowState, target *InsertionTarget) *NonTilingWindow {
	return &NonTilingWindow{
		node:              node{id: w.id},
		native:            w.native,
		state:             state,
		insertionTarget:   target,
		floatingPlacement: w.floatingPlacement,
		prevTilingRect:    w.tilingRect,
		pendingDpi:        w.pendingDpi,
	}
}

// NonTilingWindow is a window in Floating, Minimized, or Fullscreen state.
// It keeps its tree slot as a bookkeeping parent, not a layout parent.
type NonTilingWindow struct {
	node

	native            platform.NativeWindow
	state             WindowState
	insertionTarget   *InsertionTarget
	floatingPlacement geometry.Rect
	prevTilingRect    *geometry.Rect
	pendingDpi        bool
}

// NewNonTilingWindow creates a detached non-tiling window.
func NewNonTilingWindow(native platform.NativeWindow, state WindowState, floatingPlacement geometry.Rect) *NonTilingWindow {
	return &NonTilingWindow{
		node:              newNode(),
		native:            native,
		state:             state,
		floatingPlacement: floatingPlacement,
	}
}

func (w *NonTilingWindow) Kind() Kind { return KindNonTilingWindow }

func (w *NonTilingWindow) Native() platform.NativeWindow { return w.native }

func (w *NonTilingWindow) State() WindowState { return w.state }

// SetState mutates the state tag in place. Only the lifecycle engine may
// call this, and only for transitions between two non-tiling states, which
// have no tree-structural side effects.
func (w *NonTilingWindow) SetState(state WindowState) { w.state = state }

// InsertionTarget returns the remembered tiling reinsertion point, or nil.
func (w *NonTilingWindow) InsertionTarget() *InsertionTarget { return w.insertionTarget }

func (w *NonTilingWindow) Rect() geometry.Rect { return w.floatingPlacement }

func (w *NonTilingWindow) FloatingPlacement() geometry.Rect { return w.floatingPlacement }

func (w *NonTilingWindow) SetFloatingPlacement(r geometry.Rect) { w.floatingPlacement = r }

func (w *NonTilingWindow) HasPendingDpiAdjustment() bool { return w.pendingDpi }

func (w *NonTilingWindow) SetPendingDpiAdjustment(pending bool) { w.pendingDpi = pending }

// ToTiling converts the window to the tiling variant, preserving identity.
// The remembered tiling size, if any, seeds the rect until the next layout
// pass.
func (w *NonTilingWindow) ToTiling(innerGap int) *TilingWindow {
	return &TilingWindow{
		node:              node{id: w.id},
		native:            w.native,
		floatingPlacement: w.floatingPlacement,
		innerGap:          innerGap,
		pendingDpi:        w.pendingDpi,
		tilingRect:        w.prevTilingRect,
	}
}

// IsTilingWindow reports whether c is the tiling window variant.
func IsTilingWindow(c Container) bool {
	_, ok := c.(*TilingWindow)
	return ok
}
