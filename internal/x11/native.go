package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
)

// nativeWindow is a consistent snapshot of an X11 window's attributes,
// taken once per dispatch by QueryWindow. All accessors are side-effect
// free.
type nativeWindow struct {
	handle     platform.WindowID
	title      string
	placement  geometry.Rect
	minimized  bool
	fullscreen bool
	resizable  bool
}

func (w *nativeWindow) Handle() platform.WindowID { return w.handle }
func (w *nativeWindow) Title() string             { return w.title }
func (w *nativeWindow) Placement() geometry.Rect  { return w.placement }
func (w *nativeWindow) IsMinimized() bool         { return w.minimized }
func (w *nativeWindow) IsFullscreen() bool        { return w.fullscreen }
func (w *nativeWindow) IsResizable() bool         { return w.resizable }

// QueryWindow captures a snapshot of the window's placement and state
// flags. The snapshot stays valid for the duration of one engine dispatch.
func (c *Connection) QueryWindow(id platform.WindowID) (platform.NativeWindow, error) {
	win := xproto.Window(id)

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get geometry for window %d: %w", id, err)
	}

	// Window coordinates are relative to the parent; translate to root.
	coords, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to translate coordinates for window %d: %w", id, err)
	}

	title, _ := ewmh.WmNameGet(c.XUtil, win)

	minimized, fullscreen := false, false
	if states, err := ewmh.WmStateGet(c.XUtil, win); err == nil {
		for _, state := range states {
			switch state {
			case "_NET_WM_STATE_HIDDEN":
				minimized = true
			case "_NET_WM_STATE_FULLSCREEN":
				fullscreen = true
			}
		}
	}

	return &nativeWindow{
		handle:     id,
		title:      title,
		placement:  geometry.Rect{X: int(coords.DstX), Y: int(coords.DstY), Width: int(geom.Width), Height: int(geom.Height)},
		minimized:  minimized,
		fullscreen: fullscreen,
		resizable:  c.isResizable(win),
	}, nil
}

// isResizable inspects WM_NORMAL_HINTS: a window whose min and max sizes
// coincide cannot be resized. Windows without hints are resizable.
func (c *Connection) isResizable(win xproto.Window) bool {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, win)
	if err != nil {
		return true
	}

	const minAndMax = icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
	if hints.Flags&minAndMax != minAndMax {
		return true
	}
	return hints.MinWidth != hints.MaxWidth || hints.MinHeight != hints.MaxHeight
}

// ShouldManage reports whether a mapped window is a normal application
// window rather than a dock, desktop, splash, or notification surface.
func (c *Connection) ShouldManage(id platform.WindowID) bool {
	win := xproto.Window(id)

	if hints, err := icccm.WmHintsGet(c.XUtil, win); err == nil {
		if hints.Flags&icccm.HintInput != 0 && hints.Input == 0 {
			return false
		}
	}

	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP":
			return false
		}
	}
	return len(types) == 0
}
