// Package mcp exposes window management to MCP clients over stdio. Every
// tool proxies to the running daemon through the IPC client; the MCP
// process itself holds no window state.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perch-wm/perch/internal/ipc"
)

const (
	ServerName    = "perch"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window management.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server backed by the daemon's IPC socket.
func NewServer() (*Server, error) {
	client := ipc.NewClient()
	if _, err := client.GetStatus(); err != nil {
		return nil, fmt.Errorf("daemon not reachable: %w", err)
	}

	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all managed windows with their placement state (tiling/floating/minimized/fullscreen), geometry, workspace, monitor, and focus status.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_state",
		Description: "Transition a window to a placement state: tiling, floating, minimized, or fullscreen. Targets the focused window when no handle is given. Re-tiling a window returns it to its remembered position in the layout.",
	}, s.handleSetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Move input focus to a managed window by handle.",
	}, s.handleFocusWindow)
}
