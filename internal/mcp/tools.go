package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perch-wm/perch/internal/ipc"
)

type ListWindowsInput struct{}

type ListWindowsOutput struct {
	Windows []ipc.WindowInfo `json:"windows"`
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

type SetWindowStateInput struct {
	State  string `json:"state" jsonschema:"required,Target state: tiling, floating, minimized, or fullscreen"`
	Handle uint32 `json:"handle,omitempty" jsonschema:"Window handle from list_windows (default: the focused window)"`
}

type SetWindowStateOutput struct {
	Handle uint32 `json:"handle"`
	State  string `json:"state"`
}

func (s *Server) handleSetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowStateInput) (*mcpsdk.CallToolResult, SetWindowStateOutput, error) {
	if err := s.client.SetWindowState(args.Handle, args.State); err != nil {
		return nil, SetWindowStateOutput{}, fmt.Errorf("failed to set window state: %w", err)
	}
	return nil, SetWindowStateOutput{Handle: args.Handle, State: args.State}, nil
}

type FocusWindowInput struct {
	Handle uint32 `json:"handle" jsonschema:"required,Window handle from list_windows"`
}

type FocusWindowOutput struct {
	Handle uint32 `json:"handle"`
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, FocusWindowOutput, error) {
	if err := s.client.FocusWindow(args.Handle); err != nil {
		return nil, FocusWindowOutput{}, fmt.Errorf("failed to focus window: %w", err)
	}
	return nil, FocusWindowOutput{Handle: args.Handle}, nil
}
