package wm

import (
	"testing"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
	"github.com/perch-wm/perch/internal/tree"
)

// fakeNative is a configurable platform.NativeWindow for engine tests.
type fakeNative struct {
	handle     platform.WindowID
	title      string
	placement  geometry.Rect
	minimized  bool
	fullscreen bool
	fixedSize  bool
}

func (f *fakeNative) Handle() platform.WindowID { return f.handle }
func (f *fakeNative) Title() string             { return f.title }
func (f *fakeNative) Placement() geometry.Rect  { return f.placement }
func (f *fakeNative) IsMinimized() bool         { return f.minimized }
func (f *fakeNative) IsFullscreen() bool        { return f.fullscreen }
func (f *fakeNative) IsResizable() bool         { return !f.fixedSize }

func newFakeNative(handle platform.WindowID) *fakeNative {
	return &fakeNative{
		handle:    handle,
		title:     "term",
		placement: geometry.Rect{X: 100, Y: 100, Width: 600, Height: 400},
	}
}

// newTestState builds a state with one monitor and one workspace covering
// a 1920x1080 display, with the workspace focused.
func newTestState(t *testing.T) (*State, *tree.Monitor, *tree.Workspace) {
	t.Helper()
	state := NewState()
	monitor := tree.NewMonitor("DP-1", 0, geometry.Rect{Width: 1920, Height: 1080}, 1)
	if err := tree.Attach(monitor, state.Root, 0); err != nil {
		t.Fatalf("attach monitor: %v", err)
	}
	ws := tree.NewWorkspace("1", geometry.Rect{Width: 1920, Height: 1080})
	if err := tree.Attach(ws, monitor, 0); err != nil {
		t.Fatalf("attach workspace: %v", err)
	}
	tree.SetFocusedDescendant(ws, nil)
	return state, monitor, ws
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	// Keep OS-reported positions unless a test opts into centering.
	cfg.WindowStateDefaults.Floating.Centered = false
	return cfg
}

func manage(t *testing.T, state *State, cfg *config.Config, native platform.NativeWindow) tree.WindowContainer {
	t.Helper()
	if err := ManageWindow(native, nil, state, cfg); err != nil {
		t.Fatalf("manage window %d: %v", native.Handle(), err)
	}
	window := state.WindowByHandle(native.Handle())
	if window == nil {
		t.Fatalf("expected window %d in tree after manage", native.Handle())
	}
	return window
}

func drainRedraw(state *State) map[string]bool {
	out := make(map[string]bool)
	for _, c := range state.PendingRedraw() {
		out[c.ID().String()] = true
	}
	state.ClearRedraw()
	return out
}
