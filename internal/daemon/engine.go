package daemon

import (
	"fmt"
	"time"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/ipc"
	"github.com/perch-wm/perch/internal/platform"
	"github.com/perch-wm/perch/internal/tree"
	"github.com/perch-wm/perch/internal/wm"
)

// Engine returns the IPC command surface. Every call is marshalled onto
// the dispatch loop, so IPC handlers never race with OS event handling.
func (d *Daemon) Engine() ipc.Engine {
	return &engineAPI{d: d}
}

type engineAPI struct {
	d *Daemon
}

// do runs fn on the dispatch goroutine and waits for its result.
func (e *engineAPI) do(fn func() error) error {
	req := dispatchRequest{fn: fn, reply: make(chan error, 1)}
	e.d.dispatch <- req
	return <-req.reply
}

func (e *engineAPI) Status() ipc.StatusData {
	var status ipc.StatusData
	// Read-only query; the closure cannot fail.
	_ = e.do(func() error {
		workspaces := 0
		for _, m := range e.d.state.Monitors() {
			for _, c := range m.Children() {
				if _, ok := c.(*tree.Workspace); ok {
					workspaces++
				}
			}
		}
		status = ipc.StatusData{
			MonitorCount:   len(e.d.state.Monitors()),
			WorkspaceCount: workspaces,
			WindowCount:    len(e.d.state.Windows()),
			UptimeSeconds:  int64(time.Since(e.d.started).Seconds()),
			DaemonRunning:  true,
		}
		return nil
	})
	return status
}

func (e *engineAPI) ListWindows() []ipc.WindowInfo {
	var out []ipc.WindowInfo
	// Read-only query; the closure cannot fail.
	_ = e.do(func() error {
		focused := e.d.state.FocusedContainer()
		for _, w := range e.d.state.Windows() {
			info := ipc.WindowInfo{
				Handle:  uint32(w.Native().Handle()),
				Title:   w.Native().Title(),
				State:   w.State().Kind.String(),
				Focused: focused != nil && focused.ID() == w.ID(),
			}
			rect := w.Rect()
			info.X, info.Y, info.Width, info.Height = rect.X, rect.Y, rect.Width, rect.Height
			if ws := tree.ParentWorkspace(w); ws != nil {
				info.Workspace = ws.Name
			}
			if m := tree.ParentMonitor(w); m != nil {
				info.Monitor = m.Name
			}
			out = append(out, info)
		}
		return nil
	})
	return out
}

func (e *engineAPI) SetWindowState(handle uint32, stateName string) error {
	return e.do(func() error {
		window, err := e.resolveWindow(handle)
		if err != nil {
			return err
		}

		target, err := parseWindowState(stateName, e.d.cfg)
		if err != nil {
			return err
		}

		prev := window.State().Kind
		if err := wm.UpdateWindowState(window, target, e.d.state, e.d.cfg); err != nil {
			return err
		}
		if prev != target.Kind {
			e.d.restoreFromState(window, prev)
		}
		return nil
	})
}

func (e *engineAPI) FocusWindow(handle uint32) error {
	return e.do(func() error {
		window, err := e.resolveWindow(handle)
		if err != nil {
			return err
		}
		tree.SetFocusedDescendant(window, nil)
		e.d.state.HasPendingFocusSync = true
		e.d.state.Emit(wm.Event{Type: wm.EventFocusChanged, Container: window})
		return nil
	})
}

func (e *engineAPI) Reload() error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	select {
	case e.d.reload <- cfg:
	default:
	}
	return nil
}

// resolveWindow finds the managed window for a handle; handle 0 targets
// the focused window.
func (e *engineAPI) resolveWindow(handle uint32) (tree.WindowContainer, error) {
	if handle == 0 {
		focused := e.d.state.FocusedContainer()
		if focused == nil {
			return nil, fmt.Errorf("no focused window")
		}
		if w, ok := focused.(tree.WindowContainer); ok {
			return w, nil
		}
		return nil, fmt.Errorf("focused container is not a window")
	}

	window := e.d.state.WindowByHandle(platform.WindowID(handle))
	if window == nil {
		return nil, fmt.Errorf("no managed window with handle %d", handle)
	}
	return window, nil
}

func parseWindowState(name string, cfg *config.Config) (tree.WindowState, error) {
	switch name {
	case "tiling":
		return tree.TilingState(), nil
	case "floating":
		return tree.FloatingState(cfg.WindowStateDefaults.Floating), nil
	case "minimized":
		return tree.MinimizedState(), nil
	case "fullscreen":
		return tree.FullscreenState(cfg.WindowStateDefaults.Fullscreen), nil
	default:
		return tree.WindowState{}, fmt.Errorf("unknown window state %q (want tiling, floating, minimized, or fullscreen)", name)
	}
}
