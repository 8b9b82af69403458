package wm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/perch-wm/perch/internal/tree"
)

// UnmanageWindow removes a destroyed or withdrawn window from the tree.
// The focus target after removal becomes the focused descendant, and the
// old parent is scheduled for redraw so remaining siblings re-flow.
func UnmanageWindow(window tree.WindowContainer, state *State) error {
	parent := window.Parent()
	if parent == nil {
		return fmt.Errorf("unmanage window %d: %w", window.Native().Handle(), ErrNoParent)
	}

	focusTarget := state.FocusTargetAfterRemoval(window)

	tree.Detach(window)

	state.UnmanagedOrMinimizedAt = time.Now()
	state.HasPendingFocusSync = true

	if focusTarget != nil {
		tree.SetFocusedDescendant(focusTarget, nil)
	}

	slog.Info("window unmanaged", "handle", window.Native().Handle())
	state.Emit(Event{Type: EventWindowUnmanaged, Container: window})

	state.AddContainerToRedraw(parent)
	return nil
}
