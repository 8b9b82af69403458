package wm

import (
	"errors"
	"testing"

	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/tree"
)

func TestManageWindow_EmptyWorkspaceGetsFirstChild(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	window := manage(t, state, cfg, newFakeNative(1))

	if window.Parent().ID() != ws.ID() {
		t.Fatalf("expected window attached to focused workspace")
	}
	if window.Index() != 0 {
		t.Fatalf("expected index 0, got %d", window.Index())
	}
	if !tree.IsTilingWindow(window) {
		t.Fatalf("expected resizable window to initialize tiling, got %v", window.State().Kind)
	}
	if got := state.FocusedContainer(); got == nil || got.ID() != window.ID() {
		t.Fatalf("expected new window focused")
	}
	if !state.HasPendingFocusSync {
		t.Fatalf("expected pending focus sync after manage")
	}
}

func TestManageWindow_LandsAfterFocusedWindow(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	first := manage(t, state, cfg, newFakeNative(1))
	manage(t, state, cfg, newFakeNative(2))

	// Re-focus the first window, then manage a third: it lands at index 1,
	// directly after the focused sibling.
	tree.SetFocusedDescendant(first, nil)
	third := manage(t, state, cfg, newFakeNative(3))

	if third.Index() != 1 {
		t.Fatalf("expected insertion after focused window at index 1, got %d", third.Index())
	}
}

func TestManageWindow_ExplicitParentGetsFirstChild(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	manage(t, state, cfg, newFakeNative(1))

	split := tree.NewSplitContainer(tree.DirectionVertical)
	if err := tree.Attach(split, ws, 1); err != nil {
		t.Fatalf("attach split: %v", err)
	}

	native := newFakeNative(2)
	if err := ManageWindow(native, split, state, cfg); err != nil {
		t.Fatalf("manage: %v", err)
	}
	window := state.WindowByHandle(2)
	if window.Parent().ID() != split.ID() || window.Index() != 0 {
		t.Fatalf("expected window as first child of explicit parent")
	}
}

func TestManageWindow_StateClassification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fakeNative)
		want   tree.StateKind
	}{
		{"resizable", func(n *fakeNative) {}, tree.StateTiling},
		{"minimized", func(n *fakeNative) { n.minimized = true }, tree.StateMinimized},
		{"fullscreen", func(n *fakeNative) { n.fullscreen = true }, tree.StateFullscreen},
		{"fixed size", func(n *fakeNative) { n.fixedSize = true }, tree.StateFloating},
		{"minimized wins over fullscreen", func(n *fakeNative) {
			n.minimized = true
			n.fullscreen = true
		}, tree.StateMinimized},
		{"minimized wins over fixed size", func(n *fakeNative) {
			n.minimized = true
			n.fixedSize = true
		}, tree.StateMinimized},
		{"fullscreen wins over fixed size", func(n *fakeNative) {
			n.fullscreen = true
			n.fixedSize = true
		}, tree.StateFullscreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _, _ := newTestState(t)
			native := newFakeNative(1)
			tt.mutate(native)
			window := manage(t, state, testConfig(), native)
			if window.State().Kind != tt.want {
				t.Fatalf("expected state %v, got %v", tt.want, window.State().Kind)
			}
		})
	}
}

func TestManageWindow_RedrawTargets(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	tiling := manage(t, state, cfg, newFakeNative(1))
	redraw := drainRedraw(state)
	if !redraw[ws.ID().String()] {
		t.Fatalf("expected tiling window's parent scheduled for redraw")
	}
	if redraw[tiling.ID().String()] {
		t.Fatalf("expected tiling window itself not scheduled")
	}

	native := newFakeNative(2)
	native.fixedSize = true
	floating := manage(t, state, cfg, native)
	redraw = drainRedraw(state)
	if !redraw[floating.ID().String()] {
		t.Fatalf("expected non-tiling window itself scheduled for redraw")
	}
}

func TestManageWindow_FloatingPlacementKeptOnSameWorkspace(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	native := newFakeNative(1)
	native.placement = geometry.Rect{X: 50, Y: 60, Width: 500, Height: 300}
	window := manage(t, state, cfg, native)

	if got := window.FloatingPlacement(); got != native.placement {
		t.Fatalf("expected OS placement kept, got %+v", got)
	}
}

func TestManageWindow_FloatingPlacementCenteredWhenConfigured(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()
	cfg.WindowStateDefaults.Floating.Centered = true

	native := newFakeNative(1)
	native.placement = geometry.Rect{X: 50, Y: 60, Width: 500, Height: 300}
	window := manage(t, state, cfg, native)

	want := native.placement.TranslateToCenter(ws.Rect())
	if got := window.FloatingPlacement(); got != want {
		t.Fatalf("expected centered placement %+v, got %+v", want, got)
	}
}

func TestManageWindow_CenteredWhenSpawnedOnOtherMonitor(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	second := tree.NewMonitor("DP-2", 1, geometry.Rect{X: 1920, Width: 1920, Height: 1080}, 1)
	if err := tree.Attach(second, state.Root, 1); err != nil {
		t.Fatalf("attach monitor: %v", err)
	}
	ws2 := tree.NewWorkspace("2", geometry.Rect{X: 1920, Width: 1920, Height: 1080})
	if err := tree.Attach(ws2, second, 0); err != nil {
		t.Fatalf("attach workspace: %v", err)
	}

	// The window spawns on the second monitor but focus is on the first
	// workspace, so it is centered into the insertion workspace.
	native := newFakeNative(1)
	native.placement = geometry.Rect{X: 2200, Y: 300, Width: 500, Height: 300}
	window := manage(t, state, cfg, native)

	if window.Parent().ID() != ws.ID() {
		t.Fatalf("expected window inserted into focused workspace")
	}
	want := native.placement.TranslateToCenter(ws.Rect())
	if got := window.FloatingPlacement(); got != want {
		t.Fatalf("expected placement centered into target workspace, got %+v", got)
	}
}

func TestManageWindow_DpiAdjustmentFlagAcrossScaleFactors(t *testing.T) {
	state, _, _ := newTestState(t)
	cfg := testConfig()

	hidpi := tree.NewMonitor("DP-2", 1, geometry.Rect{X: 1920, Width: 2560, Height: 1440}, 2)
	if err := tree.Attach(hidpi, state.Root, 1); err != nil {
		t.Fatalf("attach monitor: %v", err)
	}
	ws2 := tree.NewWorkspace("2", geometry.Rect{X: 1920, Width: 2560, Height: 1440})
	if err := tree.Attach(ws2, hidpi, 0); err != nil {
		t.Fatalf("attach workspace: %v", err)
	}

	// Spawned on the hidpi monitor, inserted into the standard one.
	native := newFakeNative(1)
	native.placement = geometry.Rect{X: 2500, Y: 300, Width: 600, Height: 400}
	window := manage(t, state, cfg, native)

	if !window.HasPendingDpiAdjustment() {
		t.Fatalf("expected pending DPI adjustment across scale factors")
	}
}

func TestManageWindow_EmptyTreeFails(t *testing.T) {
	state := NewState()
	err := ManageWindow(newFakeNative(1), nil, state, testConfig())
	if !errors.Is(err, ErrNoFocusedContainer) {
		t.Fatalf("expected ErrNoFocusedContainer, got %v", err)
	}
	if len(tree.Descendants(state.Root)) != 0 {
		t.Fatalf("expected tree unmodified after failed manage")
	}
	if state.RedrawSize() != 0 || state.HasPendingFocusSync {
		t.Fatalf("expected no side effects after failed manage")
	}
}

func TestManageWindow_EmitsManagedEvent(t *testing.T) {
	state, _, _ := newTestState(t)
	window := manage(t, state, testConfig(), newFakeNative(1))

	events := state.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventWindowManaged || events[0].Container.ID() != window.ID() {
		t.Fatalf("expected window_managed event for new window")
	}
	if len(state.DrainEvents()) != 0 {
		t.Fatalf("expected drain to clear the queue")
	}
}

func TestUnmanageWindow_RefocusesAndRedrawsParent(t *testing.T) {
	state, _, ws := newTestState(t)
	cfg := testConfig()

	first := manage(t, state, cfg, newFakeNative(1))
	second := manage(t, state, cfg, newFakeNative(2))
	state.ClearRedraw()
	state.DrainEvents()

	if err := UnmanageWindow(second, state); err != nil {
		t.Fatalf("unmanage: %v", err)
	}

	if second.Parent() != nil {
		t.Fatalf("expected window detached")
	}
	if got := state.FocusedContainer(); got == nil || got.ID() != first.ID() {
		t.Fatalf("expected focus to fall back to remaining window")
	}
	if !state.HasPendingFocusSync {
		t.Fatalf("expected pending focus sync")
	}
	if state.UnmanagedOrMinimizedAt.IsZero() {
		t.Fatalf("expected unmanage timestamp recorded")
	}
	if !drainRedraw(state)[ws.ID().String()] {
		t.Fatalf("expected old parent scheduled for redraw")
	}

	events := state.DrainEvents()
	if len(events) != 1 || events[0].Type != EventWindowUnmanaged {
		t.Fatalf("expected window_unmanaged event")
	}
}

func TestUnmanageWindow_LastWindowFocusesWorkspace(t *testing.T) {
	state, _, ws := newTestState(t)
	window := manage(t, state, testConfig(), newFakeNative(1))

	if err := UnmanageWindow(window, state); err != nil {
		t.Fatalf("unmanage: %v", err)
	}
	if got := state.FocusedContainer(); got == nil || got.ID() != ws.ID() {
		t.Fatalf("expected empty workspace to take focus")
	}
}
