package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/perch-wm/perch/internal/platform"
)

// WindowEventType identifies a window-level OS event.
type WindowEventType int

const (
	// WindowMapped fires when a new top-level window appears.
	WindowMapped WindowEventType = iota
	// WindowDestroyed fires when a window is destroyed.
	WindowDestroyed
	// WindowFocused fires when the OS moves input focus to a window.
	WindowFocused
)

// WindowEvent is a raw OS window event, forwarded to the daemon's dispatch
// queue in arrival order.
type WindowEvent struct {
	Type   WindowEventType
	Window platform.WindowID
}

// SubscribeWindowEvents registers for create/destroy/focus notifications
// on the root window and forwards them to the given channel. The channel
// is serviced by the daemon's single dispatch loop; events are never
// handled concurrently.
func (c *Connection) SubscribeWindowEvents(events chan<- WindowEvent) error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureNotify | xproto.EventMaskFocusChange},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to select root window events: %w", err)
	}

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if ev.OverrideRedirect {
			return
		}
		events <- WindowEvent{Type: WindowMapped, Window: platform.WindowID(ev.Window)}
	}).Connect(c.XUtil, c.Root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		events <- WindowEvent{Type: WindowDestroyed, Window: platform.WindowID(ev.Window)}
	}).Connect(c.XUtil, c.Root)

	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		events <- WindowEvent{Type: WindowFocused, Window: platform.WindowID(ev.Event)}
	}).Connect(c.XUtil, c.Root)

	return nil
}
