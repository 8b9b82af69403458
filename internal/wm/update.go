package wm

import (
	"fmt"
	"time"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/tree"
)

// UpdateWindowState transitions a managed window to the requested
// placement state. A request matching the window's current state tag is a
// no-op: zero tree mutations, nothing scheduled for redraw.
func UpdateWindowState(window tree.WindowContainer, windowState tree.WindowState, state *State, cfg *config.Config) error {
	if window.State().Equal(windowState) {
		return nil
	}

	var result tree.WindowContainer
	var err error
	if windowState.Kind == tree.StateTiling {
		result, err = setTiling(window, state, cfg)
	} else {
		result, err = setNonTiling(window, windowState, state)
	}
	if err != nil {
		return err
	}

	state.Emit(Event{Type: EventWindowStateChanged, Container: result, NewState: windowState})
	return nil
}

// setTiling converts a non-tiling window back into the tiling layout. The
// reinsertion point is the window's remembered insertion target when it is
// still valid, else beside the most recently focused tiling window in the
// workspace, else the workspace's first child.
func setTiling(window tree.WindowContainer, state *State, cfg *config.Config) (tree.WindowContainer, error) {
	nonTiling, ok := window.(*tree.NonTilingWindow)
	if !ok {
		return window, nil
	}

	workspace := tree.ParentWorkspace(nonTiling)
	if workspace == nil {
		return nil, fmt.Errorf("set tiling %d: %w", nonTiling.Native().Handle(), ErrNoWorkspace)
	}

	targetParent, targetIndex := tilingInsertionPoint(nonTiling, workspace, state)

	tilingWindow := nonTiling.ToTiling(cfg.Gaps.InnerGap)

	// Swap the variant in place first, then move to the reinsertion point.
	// Replace is a pure identity-preserving swap; the relocation is a
	// separate concern.
	parent := nonTiling.Parent()
	if parent == nil {
		return nil, fmt.Errorf("set tiling %d: %w", nonTiling.Native().Handle(), ErrNoParent)
	}
	if err := tree.Replace(tilingWindow, parent, nonTiling.Index()); err != nil {
		return nil, fmt.Errorf("set tiling %d: %w", nonTiling.Native().Handle(), err)
	}

	if err := tree.MoveWithinTree(tilingWindow, targetParent, targetIndex); err != nil {
		return nil, fmt.Errorf("set tiling %d: %w", tilingWindow.Native().Handle(), err)
	}

	state.AddContainerToRedraw(tilingWindow)
	return tilingWindow, nil
}

// tilingInsertionPoint resolves where a re-tiled window rejoins the
// layout. The focused-tiling-window fallback is scoped to the window's
// workspace subtree.
func tilingInsertionPoint(window *tree.NonTilingWindow, workspace *tree.Workspace, state *State) (tree.Container, int) {
	if target := window.InsertionTarget(); target != nil {
		if parent := tree.Find(state.Root, target.ParentID); parent != nil {
			return parent, target.Index
		}
	}

	for _, c := range tree.DescendantFocusOrder(workspace) {
		if !tree.IsTilingWindow(c) || c.ID() == window.ID() {
			continue
		}
		if parent := c.Parent(); parent != nil {
			return parent, c.Index() + 1
		}
	}

	return workspace, 0
}

// setNonTiling moves a window into a floating, minimized, or fullscreen
// state. For an already non-tiling window this is an in-place tag change;
// a tiling window is first moved out of its sibling group to the end of
// the workspace, then converted.
func setNonTiling(window tree.WindowContainer, windowState tree.WindowState, state *State) (tree.WindowContainer, error) {
	var result tree.WindowContainer

	switch w := window.(type) {
	case *tree.NonTilingWindow:
		w.SetState(windowState)
		state.AddContainerToRedraw(w)
		result = w

	case *tree.TilingWindow:
		workspace := tree.ParentWorkspace(w)
		if workspace == nil {
			return nil, fmt.Errorf("set %s %d: %w", windowState.Kind, w.Native().Handle(), ErrNoWorkspace)
		}

		// Remember where the window would rejoin the tiling layout.
		origParent := w.Parent()
		if origParent == nil {
			return nil, fmt.Errorf("set %s %d: %w", windowState.Kind, w.Native().Handle(), ErrNoParent)
		}
		insertionTarget := &tree.InsertionTarget{
			ParentID: origParent.ID(),
			Index:    w.Index(),
		}

		// Leave the tiling sibling group before converting so the replace
		// below does not leave a stale structural slot for the remaining
		// siblings to re-flow around.
		if err := tree.MoveWithinTree(w, workspace, tree.ChildCount(workspace)-1); err != nil {
			return nil, fmt.Errorf("set %s %d: %w", windowState.Kind, w.Native().Handle(), err)
		}

		nonTiling := w.ToNonTiling(windowState, insertionTarget)
		parent := w.Parent()
		if parent == nil {
			return nil, fmt.Errorf("set %s %d: %w", windowState.Kind, w.Native().Handle(), ErrNoParent)
		}
		if err := tree.Replace(nonTiling, parent, w.Index()); err != nil {
			return nil, fmt.Errorf("set %s %d: %w", windowState.Kind, w.Native().Handle(), err)
		}

		// The remaining tiling siblings re-flow around the vacated slot;
		// the parent redraw covers the converted window too.
		state.AddContainerToRedraw(origParent)
		result = nonTiling
	}

	if windowState.Kind == tree.StateMinimized {
		state.UnmanagedOrMinimizedAt = time.Now()
		state.HasPendingFocusSync = true

		if focusTarget := state.FocusTargetAfterRemoval(result); focusTarget != nil {
			tree.SetFocusedDescendant(focusTarget, nil)
		}
	}

	return result, nil
}
