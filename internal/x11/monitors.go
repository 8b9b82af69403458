package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/perch-wm/perch/internal/geometry"
	"github.com/perch-wm/perch/internal/platform"
)

// baselineDPI is the DPI a scale factor of 1.0 corresponds to.
const baselineDPI = 96.0

// Displays retrieves all active monitors via XRandR, with their usable
// work area and an estimated scale factor from the output's physical size.
func (c *Connection) Displays() ([]platform.Display, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	workArea := c.currentWorkArea()

	var displays []platform.Display
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		scale := 1.0
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
			if outputInfo.MmWidth > 0 {
				dpi := float64(crtcInfo.Width) / (float64(outputInfo.MmWidth) / 25.4)
				scale = dpi / baselineDPI
			}
		}

		bounds := geometry.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}

		displays = append(displays, platform.Display{
			ID:          i,
			Name:        name,
			Bounds:      bounds,
			Usable:      intersectWorkArea(bounds, workArea),
			ScaleFactor: scale,
		})
	}

	if len(displays) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return displays, nil
}

// currentWorkArea returns the EWMH work area for the current desktop, or
// nil when the root window manager does not publish one.
func (c *Connection) currentWorkArea() *geometry.Rect {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return nil
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}

	wa := workArea[desktopIndex]
	return &geometry.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}
}

// intersectWorkArea clips monitor bounds to the published work area so
// panels and docks are excluded. Bounds are returned unchanged when the
// intersection is empty or no work area is known.
func intersectWorkArea(bounds geometry.Rect, workArea *geometry.Rect) geometry.Rect {
	if workArea == nil {
		return bounds
	}

	x1 := max(bounds.X, workArea.X)
	y1 := max(bounds.Y, workArea.Y)
	x2 := min(bounds.X+bounds.Width, workArea.X+workArea.Width)
	y2 := min(bounds.Y+bounds.Height, workArea.Y+workArea.Height)

	if x2 <= x1 || y2 <= y1 {
		return bounds
	}
	return geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
