package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
)

// MoveResize moves and resizes a window to the given root-relative bounds.
func (c *Connection) MoveResize(id platform.WindowID, bounds geometry.Rect) error {
	win := xproto.Window(id)

	// Use EWMH MoveResize for better WM interop, falling back to a direct
	// configure request.
	err := ewmh.MoveresizeWindow(c.XUtil, win, bounds.X, bounds.Y, bounds.Width, bounds.Height)
	if err != nil {
		xwindow.New(c.XUtil, win).MoveResize(bounds.X, bounds.Y, bounds.Width, bounds.Height)
	}
	return nil
}

// Minimize iconifies a window via a WM_CHANGE_STATE client message. We
// build the message manually; the xgbutil helper panics on this library
// version (uint vs int type assertion).
func (c *Connection) Minimize(id platform.WindowID) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_CHANGE_STATE: %w", err)
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// Restore maps an iconified window back onto the screen.
func (c *Connection) Restore(id platform.WindowID) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), xproto.Window(id)).Check()
}

// SetFullscreen adds or removes the EWMH fullscreen state on a window.
func (c *Connection) SetFullscreen(id platform.WindowID, fullscreen bool) error {
	action := 0 // _NET_WM_STATE_REMOVE
	if fullscreen {
		action = 1 // _NET_WM_STATE_ADD
	}
	return ewmh.WmStateReq(c.XUtil, xproto.Window(id), action, "_NET_WM_STATE_FULLSCREEN")
}

// Focus activates and raises a window using _NET_ACTIVE_WINDOW. The client
// message is built manually for the same reason as Minimize.
func (c *Connection) Focus(id platform.WindowID) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// ListWindows returns the EWMH client list: all top-level windows the
// running window manager knows about.
func (c *Connection) ListWindows() ([]platform.WindowID, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	out := make([]platform.WindowID, 0, len(clients))
	for _, win := range clients {
		out = append(out, platform.WindowID(win))
	}
	return out, nil
}
