// Package daemon runs the window manager: it serializes OS events and IPC
// commands into single-writer engine dispatches, and drains the engine's
// redraw and focus-sync obligations after each one.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
	"github.com/perch-wm/perch/internal/tree"
	"github.com/perch-wm/perch/internal/wm"
	"github.com/perch-wm/perch/internal/x11"
)

// Daemon owns the engine state and the dispatch loop. All tree mutations
// happen on the loop goroutine; IPC handlers submit closures to it.
type Daemon struct {
	conn    *x11.Connection
	backend platform.Backend
	cfg     *config.Config
	state   *wm.State
	logger  *slog.Logger
	started time.Time

	winEvents chan x11.WindowEvent
	dispatch  chan dispatchRequest
	reload    chan *config.Config
}

type dispatchRequest struct {
	fn    func() error
	reply chan error
}

// New creates a daemon around an established X11 connection.
func New(conn *x11.Connection, cfg *config.Config, logger *slog.Logger) *Daemon {
	return &Daemon{
		conn:      conn,
		backend:   conn,
		cfg:       cfg,
		state:     wm.NewState(),
		logger:    logger,
		started:   time.Now(),
		winEvents: make(chan x11.WindowEvent, 64),
		dispatch:  make(chan dispatchRequest),
		reload:    make(chan *config.Config, 1),
	}
}

// Run initializes the tree from the connected displays, adopts existing
// windows, and blocks dispatching events until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.initTree(); err != nil {
		return err
	}
	d.adoptExistingWindows()
	d.flush()

	if err := d.conn.SubscribeWindowEvents(d.winEvents); err != nil {
		return err
	}
	go d.conn.EventLoop()

	d.logger.Info("daemon started",
		"monitors", len(d.state.Monitors()),
		"windows", len(d.state.Windows()))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("daemon stopped")
			d.conn.StopEventLoop()
			return nil

		case ev := <-d.winEvents:
			d.handleWindowEvent(ev)
			d.flush()

		case req := <-d.dispatch:
			req.reply <- req.fn()
			d.flush()

		case cfg := <-d.reload:
			d.cfg = cfg
			d.logger.Info("configuration reloaded")
			// Re-tile everything under the new gap settings.
			for _, m := range d.state.Monitors() {
				if ws := m.DisplayedWorkspace(); ws != nil {
					d.state.AddContainerToRedraw(ws)
				}
			}
			d.flush()
		}
	}
}

// initTree creates one monitor container per display, each seeded with a
// workspace covering the display's usable area.
func (d *Daemon) initTree() error {
	displays, err := d.backend.Displays()
	if err != nil {
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}

	names := d.cfg.General.DefaultWorkspaceNames
	for i, display := range displays {
		monitor := tree.NewMonitor(display.Name, display.ID, display.Bounds, display.ScaleFactor)
		if err := tree.Attach(monitor, d.state.Root, i); err != nil {
			return err
		}

		name := fmt.Sprintf("%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		workspace := tree.NewWorkspace(name, display.Usable)
		if err := tree.Attach(workspace, monitor, 0); err != nil {
			return err
		}
	}

	// Focus the first monitor's workspace so the engine has a focus path.
	if monitors := d.state.Monitors(); len(monitors) > 0 {
		if ws := monitors[0].DisplayedWorkspace(); ws != nil {
			tree.SetFocusedDescendant(ws, nil)
		}
	}
	return nil
}

// adoptExistingWindows manages the top-level windows that already existed
// when the daemon started.
func (d *Daemon) adoptExistingWindows() {
	handles, err := d.conn.ListWindows()
	if err != nil {
		d.logger.Warn("failed to list existing windows", "error", err)
		return
	}

	for _, handle := range handles {
		if !d.conn.ShouldManage(handle) {
			continue
		}
		native, err := d.conn.QueryWindow(handle)
		if err != nil {
			d.logger.Warn("failed to query window", "handle", handle, "error", err)
			continue
		}
		if err := wm.ManageWindow(native, nil, d.state, d.cfg); err != nil {
			d.logger.Error("failed to manage existing window", "handle", handle, "error", err)
		}
	}
}

func (d *Daemon) handleWindowEvent(ev x11.WindowEvent) {
	switch ev.Type {
	case x11.WindowMapped:
		if d.state.WindowByHandle(ev.Window) != nil {
			return
		}
		if !d.conn.ShouldManage(ev.Window) {
			return
		}
		native, err := d.conn.QueryWindow(ev.Window)
		if err != nil {
			d.logger.Warn("failed to query mapped window", "handle", ev.Window, "error", err)
			return
		}
		if err := wm.ManageWindow(native, nil, d.state, d.cfg); err != nil {
			d.logger.Error("failed to manage window", "handle", ev.Window, "error", err)
		}

	case x11.WindowDestroyed:
		window := d.state.WindowByHandle(ev.Window)
		if window == nil {
			return
		}
		if err := wm.UnmanageWindow(window, d.state); err != nil {
			d.logger.Error("failed to unmanage window", "handle", ev.Window, "error", err)
		}

	case x11.WindowFocused:
		window := d.state.WindowByHandle(ev.Window)
		if window == nil {
			return
		}
		// Debounce focus-steal right after an unmanage/minimize; the OS
		// focuses whatever surfaces underneath before our sync runs.
		debounce := time.Duration(d.cfg.General.FocusSyncDebounceMs) * time.Millisecond
		if !d.state.UnmanagedOrMinimizedAt.IsZero() && time.Since(d.state.UnmanagedOrMinimizedAt) < debounce {
			return
		}
		tree.SetFocusedDescendant(window, nil)
		d.state.Emit(wm.Event{Type: wm.EventFocusChanged, Container: window})
	}
}

// flush drains the engine's accumulated obligations: redraw, OS focus
// sync, and queued events. Runs on the dispatch goroutine after every
// engine call, so the state is fully applied between dispatches.
func (d *Daemon) flush() {
	d.applyRedraw()

	if d.state.HasPendingFocusSync {
		d.syncFocus()
		d.state.HasPendingFocusSync = false
	}

	for _, ev := range d.state.DrainEvents() {
		d.logger.Debug("event", "type", string(ev.Type), "container", ev.Container.ID())
	}
}

func (d *Daemon) syncFocus() {
	focused := d.state.FocusedContainer()
	if focused == nil {
		return
	}
	window, ok := focused.(tree.WindowContainer)
	if !ok {
		return
	}
	if err := d.backend.Focus(window.Native().Handle()); err != nil {
		d.logger.Warn("failed to sync focus", "handle", window.Native().Handle(), "error", err)
	}
}

// workspaceRect returns the workspace area inset by the outer gap.
func (d *Daemon) workspaceRect(ws *tree.Workspace) geometry.Rect {
	gap := d.cfg.Gaps.OuterGap
	rect := ws.Rect()
	return geometry.Rect{
		X:      rect.X + gap,
		Y:      rect.Y + gap,
		Width:  rect.Width - 2*gap,
		Height: rect.Height - 2*gap,
	}
}

var _ platform.Backend = (*x11.Connection)(nil)
