package wm

import (
	"testing"
	"time"

	"github.com/perch-wm/perch/internal/tree"
)

func setState(t *testing.T, state *State, window tree.WindowContainer, windowState tree.WindowState) tree.WindowContainer {
	t.Helper()
	if err := UpdateWindowState(window, windowState, state, testConfig()); err != nil {
		t.Fatalf("update window state: %v", err)
	}
	result := state.WindowByHandle(window.Native().Handle())
	if result == nil {
		t.Fatalf("expected window %d in tree after transition", window.Native().Handle())
	}
	return result
}

func floatingState() tree.WindowState {
	return tree.FloatingState(testConfig().WindowStateDefaults.Floating)
}

func TestUpdateWindowState_SameStateIsNoOp(t *testing.T) {
	state, _, _ := newTestState(t)
	window := manage(t, state, testConfig(), newFakeNative(1))
	state.ClearRedraw()
	state.DrainEvents()

	if err := UpdateWindowState(window, tree.TilingState(), state, testConfig()); err != nil {
		t.Fatalf("no-op transition: %v", err)
	}
	if state.RedrawSize() != 0 {
		t.Fatalf("expected nothing scheduled for redraw on no-op")
	}
	if len(state.DrainEvents()) != 0 {
		t.Fatalf("expected no event on no-op")
	}
	if got := state.WindowByHandle(1); !tree.IsTilingWindow(got) {
		t.Fatalf("expected window unchanged")
	}
}

func TestUpdateWindowState_TilingToFloating(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	first := manage(t, state, cfg, newFakeNative(1))
	second := manage(t, state, cfg, newFakeNative(2))
	state.ClearRedraw()
	state.DrainEvents()

	result := setState(t, state, first, floatingState())

	if tree.IsTilingWindow(result) {
		t.Fatalf("expected non-tiling variant after transition")
	}
	if result.ID() != first.ID() {
		t.Fatalf("expected container identity preserved")
	}
	if result.State().Kind != tree.StateFloating {
		t.Fatalf("expected floating state, got %v", result.State().Kind)
	}

	// The converted window moves to the end of the workspace; the
	// remaining tiling sibling re-flows.
	if result.Index() != tree.ChildCount(ws)-1 {
		t.Fatalf("expected floating window at end of workspace, got index %d", result.Index())
	}
	if second.Index() != 0 {
		t.Fatalf("expected remaining tiling window shifted to index 0")
	}
	redraw := drainRedraw(state)
	if !redraw[ws.ID().String()] {
		t.Fatalf("expected vacated tiling parent scheduled for redraw")
	}
	if redraw[result.ID().String()] {
		t.Fatalf("expected the parent redraw to cover the window, not a self-schedule")
	}

	events := state.DrainEvents()
	if len(events) != 1 || events[0].Type != EventWindowStateChanged {
		t.Fatalf("expected window_state_changed event")
	}
	if events[0].NewState.Kind != tree.StateFloating {
		t.Fatalf("expected event to carry the new state")
	}
	if events[0].Container.ID() != result.ID() {
		t.Fatalf("expected event to carry the live container")
	}
}

func TestUpdateWindowState_RoundTripRestoresPosition(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	manage(t, state, cfg, newFakeNative(1))
	manage(t, state, cfg, newFakeNative(2))
	manage(t, state, cfg, newFakeNative(3))

	// Float the middle window, then re-tile it: it should return to its
	// remembered slot between the other two.
	middle := state.WindowByHandle(2)
	if middle.Index() != 1 {
		t.Fatalf("expected middle window at index 1 before transition, got %d", middle.Index())
	}

	floated := setState(t, state, middle, floatingState())
	retiled := setState(t, state, floated, tree.TilingState())

	if !tree.IsTilingWindow(retiled) {
		t.Fatalf("expected tiling variant after round-trip")
	}
	if retiled.Index() != 1 {
		t.Fatalf("expected round-trip to restore index 1, got %d", retiled.Index())
	}
	if retiled.ID() != middle.ID() {
		t.Fatalf("expected identity preserved across round-trip")
	}
}

func TestUpdateWindowState_RetileFallsBackToFocusedTilingWindow(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	native := newFakeNative(1)
	native.fixedSize = true
	floating := manage(t, state, cfg, native)

	anchor := manage(t, state, cfg, newFakeNative(2))
	tree.SetFocusedDescendant(anchor, nil)

	// A window that was never tiling has no insertion target; it lands
	// beside the most recently focused tiling window.
	retiled := setState(t, state, floating, tree.TilingState())

	if retiled.Parent().ID() != anchor.Parent().ID() {
		t.Fatalf("expected reinsertion beside focused tiling window")
	}
	if retiled.Index() != anchor.Index()+1 {
		t.Fatalf("expected index %d, got %d", anchor.Index()+1, retiled.Index())
	}
}

func TestUpdateWindowState_RetileIntoEmptyWorkspace(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	native := newFakeNative(1)
	native.fixedSize = true
	floating := manage(t, state, cfg, native)

	retiled := setState(t, state, floating, tree.TilingState())

	if retiled.Parent().ID() != ws.ID() || retiled.Index() != 0 {
		t.Fatalf("expected reinsertion as workspace's first child")
	}
}

func TestUpdateWindowState_NonTilingToNonTilingKeepsSlot(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	native := newFakeNative(1)
	native.fixedSize = true
	window := manage(t, state, cfg, native)
	state.ClearRedraw()
	state.DrainEvents()

	parentBefore := window.Parent().ID()
	indexBefore := window.Index()

	result := setState(t, state, window, tree.FullscreenState(cfg.WindowStateDefaults.Fullscreen))

	if result.State().Kind != tree.StateFullscreen {
		t.Fatalf("expected fullscreen state, got %v", result.State().Kind)
	}
	if result.Parent().ID() != parentBefore || result.Index() != indexBefore {
		t.Fatalf("expected tree slot unchanged for non-tiling transition")
	}
	if !drainRedraw(state)[result.ID().String()] {
		t.Fatalf("expected window itself scheduled for redraw")
	}
}

func TestUpdateWindowState_MinimizeShiftsFocus(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	first := manage(t, state, cfg, newFakeNative(1))
	second := manage(t, state, cfg, newFakeNative(2))
	tree.SetFocusedDescendant(second, nil)
	state.HasPendingFocusSync = false

	setState(t, state, second, tree.MinimizedState())

	if got := state.FocusedContainer(); got == nil || got.ID() != first.ID() {
		t.Fatalf("expected focus to move to remaining window")
	}
	if !state.HasPendingFocusSync {
		t.Fatalf("expected pending focus sync after minimize")
	}
	if state.UnmanagedOrMinimizedAt.IsZero() {
		t.Fatalf("expected minimize timestamp recorded")
	}
}

func TestUpdateWindowState_MinimizeFromFloatingAlsoShiftsFocus(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	first := manage(t, state, cfg, newFakeNative(1))

	native := newFakeNative(2)
	native.fixedSize = true
	floating := manage(t, state, cfg, native)
	tree.SetFocusedDescendant(floating, nil)
	state.HasPendingFocusSync = false
	state.UnmanagedOrMinimizedAt = time.Time{}

	// Minimizing applies its focus and debounce side effects even when the
	// window was already non-tiling.
	setState(t, state, floating, tree.MinimizedState())

	if got := state.FocusedContainer(); got == nil || got.ID() != first.ID() {
		t.Fatalf("expected focus to move off the minimized floating window")
	}
	if !state.HasPendingFocusSync || state.UnmanagedOrMinimizedAt.IsZero() {
		t.Fatalf("expected minimize side effects for a non-tiling window")
	}
}

func TestFocusTargetAfterRemoval_SkipsMinimizedWindows(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	parked := manage(t, state, cfg, newFakeNative(1))
	setState(t, state, parked, tree.MinimizedState())
	target := manage(t, state, cfg, newFakeNative(2))

	if got := state.FocusTargetAfterRemoval(target); got == nil || got.ID() != ws.ID() {
		t.Fatalf("expected workspace as focus target when only minimized windows remain")
	}
}

func TestUpdateWindowState_FullscreenFromTilingRemembersTarget(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	manage(t, state, cfg, newFakeNative(1))
	window := manage(t, state, cfg, newFakeNative(2))

	result := setState(t, state, window, tree.FullscreenState(cfg.WindowStateDefaults.Fullscreen))

	nonTiling, ok := result.(*tree.NonTilingWindow)
	if !ok {
		t.Fatalf("expected non-tiling variant")
	}
	target := nonTiling.InsertionTarget()
	if target == nil {
		t.Fatalf("expected insertion target remembered")
	}
	if target.Index != 1 {
		t.Fatalf("expected remembered index 1, got %d", target.Index)
	}
}
