package wm

import (
	"fmt"
	"log/slog"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
	"github.com/perch-wm/perch/internal/tree"
)

// ManageWindow inserts a newly observed native window into the tree.
//
// When targetParent is nil, the window lands beside the focused container:
// as the first child if the focused container is a workspace, otherwise
// immediately after it under its parent. An explicit targetParent receives
// the window as its first child.
//
// Side effects (focus, event, sync flag, redraw scheduling) are committed
// only after the container is successfully attached; any earlier failure
// leaves the tree unmodified.
func ManageWindow(native platform.NativeWindow, targetParent tree.Container, state *State, cfg *config.Config) error {
	window, err := createWindow(native, targetParent, state, cfg)
	if err != nil {
		return err
	}

	// Focus the new window so downstream state evaluation treats it as
	// focused even before the OS focus event arrives.
	tree.SetFocusedDescendant(window, nil)

	slog.Info("new window managed",
		"handle", window.Native().Handle(),
		"title", window.Native().Title(),
		"state", window.State().Kind.String())
	state.Emit(Event{Type: EventWindowManaged, Container: window})

	// OS focus should move to the newly added window in case it is not
	// already focused.
	state.HasPendingFocusSync = true

	// Sibling containers need to re-flow when the window is tiling; a
	// non-tiling window only affects its own geometry.
	if window.State().Kind == tree.StateTiling {
		parent := window.Parent()
		if parent == nil {
			return fmt.Errorf("manage window %d: %w", native.Handle(), ErrNoParent)
		}
		state.AddContainerToRedraw(parent)
	} else {
		state.AddContainerToRedraw(window)
	}

	return nil
}

func createWindow(native platform.NativeWindow, targetParent tree.Container, state *State, cfg *config.Config) (tree.WindowContainer, error) {
	parent, targetIndex := targetParent, 0
	if parent == nil {
		var err error
		parent, targetIndex, err = insertionTarget(state)
		if err != nil {
			return nil, err
		}
	}

	targetWorkspace := tree.ParentWorkspace(parent)
	if targetWorkspace == nil {
		return nil, fmt.Errorf("manage window %d: %w", native.Handle(), ErrNoWorkspace)
	}

	nearestMonitor := state.NearestMonitor(native)
	if nearestMonitor == nil {
		return nil, fmt.Errorf("manage window %d: %w", native.Handle(), ErrNoMonitor)
	}
	nearestWorkspace := nearestMonitor.DisplayedWorkspace()
	if nearestWorkspace == nil {
		return nil, fmt.Errorf("manage window %d: monitor %q: %w", native.Handle(), nearestMonitor.Name, ErrNoWorkspace)
	}

	// Where the window should sit if floating is enabled. Kept at the
	// OS-reported position unless it spawned on a different workspace than
	// it is being inserted into, or centering is configured.
	var floatingPlacement geometry.Rect
	if nearestWorkspace.ID() == targetWorkspace.ID() && !cfg.WindowStateDefaults.Floating.Centered {
		floatingPlacement = native.Placement()
	} else {
		floatingPlacement = native.Placement().TranslateToCenter(targetWorkspace.Rect())
	}

	windowState := windowStateToCreate(native, cfg)

	var window tree.WindowContainer
	if windowState.Kind == tree.StateTiling {
		window = tree.NewTilingWindow(native, floatingPlacement, cfg.Gaps.InnerGap)
	} else {
		window = tree.NewNonTilingWindow(native, windowState, floatingPlacement)
	}

	if err := tree.Attach(window, parent, targetIndex); err != nil {
		return nil, fmt.Errorf("manage window %d: %w", native.Handle(), err)
	}

	// The OS might have spawned the window on a monitor with a different
	// scale factor than the one it was inserted into.
	if nearestMonitor.HasDpiDifference(window) {
		window.SetPendingDpiAdjustment(true)
	}

	return window, nil
}

// windowStateToCreate picks the initial state for a window from its native
// attributes. Precedence: minimized, then fullscreen, then non-resizable
// (floating). Maximized-but-resizable windows initialize as tiling.
func windowStateToCreate(native platform.NativeWindow, cfg *config.Config) tree.WindowState {
	if native.IsMinimized() {
		return tree.MinimizedState()
	}
	if native.IsFullscreen() {
		return tree.FullscreenState(cfg.WindowStateDefaults.Fullscreen)
	}
	if !native.IsResizable() {
		return tree.FloatingState(cfg.WindowStateDefaults.Floating)
	}
	return tree.TilingState()
}

func insertionTarget(state *State) (tree.Container, int, error) {
	focused := state.FocusedContainer()
	if focused == nil {
		return nil, 0, ErrNoFocusedContainer
	}

	if _, isWorkspace := focused.(*tree.Workspace); isWorkspace {
		return focused, 0, nil
	}

	parent := focused.Parent()
	if parent == nil {
		return nil, 0, ErrNoInsertionTarget
	}
	return parent, focused.Index() + 1, nil
}
