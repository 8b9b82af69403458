package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandSetWindowState CommandType = "SET_WINDOW_STATE"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	MonitorCount   int   `json:"monitor_count"`
	WorkspaceCount int   `json:"workspace_count"`
	WindowCount    int   `json:"window_count"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
	DaemonRunning  bool  `json:"daemon_running"`
}

// WindowInfo describes one managed window
type WindowInfo struct {
	Handle    uint32 `json:"handle"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Workspace string `json:"workspace"`
	Monitor   string `json:"monitor"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Focused   bool   `json:"focused"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// SetWindowStatePayload represents the payload for SET_WINDOW_STATE.
// State is one of "tiling", "floating", "minimized", "fullscreen".
// Handle 0 targets the focused window.
type SetWindowStatePayload struct {
	Handle uint32 `json:"handle,omitempty"`
	State  string `json:"state"`
}

// FocusWindowPayload represents the payload for FOCUS_WINDOW
type FocusWindowPayload struct {
	Handle uint32 `json:"handle"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// unmarshalPayload decodes a command payload, requiring it to be present.
func unmarshalPayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
