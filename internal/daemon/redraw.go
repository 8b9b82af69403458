package daemon

import (
	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/tree"
)

// applyRedraw drains the redraw set and applies geometry to the OS. A
// scheduled non-tiling window repositions only itself; any structural
// container is collapsed to its owning workspace, and a dirty workspace
// covers its whole subtree: tiling geometry from the layout pass,
// non-tiling descendants positioned per their state. Each window is
// applied at most once per pass.
func (d *Daemon) applyRedraw() {
	pending := d.state.PendingRedraw()
	if len(pending) == 0 {
		return
	}
	d.state.ClearRedraw()

	workspaces := make(map[string]*tree.Workspace)
	nonTiling := make(map[string]*tree.NonTilingWindow)
	for _, c := range pending {
		if w, ok := c.(*tree.NonTilingWindow); ok {
			nonTiling[w.ID().String()] = w
			continue
		}

		// A container scheduled after detach has no workspace; its old
		// siblings were scheduled via the parent.
		if ws := tree.ParentWorkspace(c); ws != nil {
			workspaces[ws.ID().String()] = ws
		}
	}

	for _, ws := range workspaces {
		d.layoutWorkspace(ws)
		for _, c := range tree.Descendants(ws) {
			if w, ok := c.(*tree.NonTilingWindow); ok {
				nonTiling[w.ID().String()] = w
			}
		}
	}

	for _, w := range nonTiling {
		d.applyNonTiling(w)
	}
}

// layoutWorkspace recomputes tiling geometry for the workspace's tiling
// subtree and pushes it to the OS.
func (d *Daemon) layoutWorkspace(ws *tree.Workspace) {
	d.layoutChildren(ws, d.workspaceRect(ws), tree.DirectionHorizontal)
}

// layoutChildren splits rect equally among the container's tiling
// children along the given axis, with the inner gap between neighbors.
func (d *Daemon) layoutChildren(c tree.Container, rect geometry.Rect, direction tree.TilingDirection) {
	var tiling []tree.Container
	for _, child := range c.Children() {
		switch child.(type) {
		case *tree.TilingWindow, *tree.SplitContainer:
			tiling = append(tiling, child)
		}
	}
	if len(tiling) == 0 {
		return
	}

	gap := d.cfg.Gaps.InnerGap
	n := len(tiling)

	for i, child := range tiling {
		var cell geometry.Rect
		if direction == tree.DirectionHorizontal {
			cellWidth := (rect.Width - (n-1)*gap) / n
			cell = geometry.Rect{
				X:      rect.X + i*(cellWidth+gap),
				Y:      rect.Y,
				Width:  cellWidth,
				Height: rect.Height,
			}
		} else {
			cellHeight := (rect.Height - (n-1)*gap) / n
			cell = geometry.Rect{
				X:      rect.X,
				Y:      rect.Y + i*(cellHeight+gap),
				Width:  rect.Width,
				Height: cellHeight,
			}
		}

		switch child := child.(type) {
		case *tree.TilingWindow:
			child.SetTilingRect(cell)
			child.SetPendingDpiAdjustment(false)
			if err := d.backend.MoveResize(child.Native().Handle(), cell); err != nil {
				d.logger.Warn("failed to move window", "handle", child.Native().Handle(), "error", err)
			}
		case *tree.SplitContainer:
			d.layoutChildren(child, cell, child.Direction)
		}
	}
}

// applyNonTiling positions a floating, minimized, or fullscreen window.
func (d *Daemon) applyNonTiling(w *tree.NonTilingWindow) {
	handle := w.Native().Handle()

	switch w.State().Kind {
	case tree.StateFloating:
		w.SetPendingDpiAdjustment(false)
		if err := d.backend.MoveResize(handle, w.FloatingPlacement()); err != nil {
			d.logger.Warn("failed to place floating window", "handle", handle, "error", err)
		}

	case tree.StateMinimized:
		if err := d.backend.Minimize(handle); err != nil {
			d.logger.Warn("failed to minimize window", "handle", handle, "error", err)
		}

	case tree.StateFullscreen:
		if w.State().Fullscreen.Maximized {
			if monitor := tree.ParentMonitor(w); monitor != nil {
				if err := d.backend.MoveResize(handle, monitor.Rect()); err != nil {
					d.logger.Warn("failed to maximize window", "handle", handle, "error", err)
				}
				return
			}
		}
		if err := d.backend.SetFullscreen(handle, true); err != nil {
			d.logger.Warn("failed to fullscreen window", "handle", handle, "error", err)
		}
	}
}

// restoreFromState reverses OS-level state when a window leaves minimized
// or fullscreen, called before re-tiling it.
func (d *Daemon) restoreFromState(w tree.WindowContainer, prev tree.StateKind) {
	handle := w.Native().Handle()
	switch prev {
	case tree.StateMinimized:
		if err := d.backend.Restore(handle); err != nil {
			d.logger.Warn("failed to restore window", "handle", handle, "error", err)
		}
	case tree.StateFullscreen:
		if err := d.backend.SetFullscreen(handle, false); err != nil {
			d.logger.Warn("failed to unfullscreen window", "handle", handle, "error", err)
		}
	}
}
