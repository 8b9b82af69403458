package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/perch-wm/perch/internal/runtimepath"
)

// Engine is the command surface the daemon exposes to IPC clients. Every
// method marshals the call into the daemon's single dispatch loop; the
// IPC server never touches the container tree directly.
type Engine interface {
	Status() StatusData
	ListWindows() []WindowInfo
	SetWindowState(handle uint32, state string) error
	FocusWindow(handle uint32) error
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	engine       Engine
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(engine Engine) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		engine:     engine,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Expect JSON on a single line
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.sendResponse(conn, s.handleCommand(req))
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		if err := s.engine.Reload(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
		}
		resp, _ := NewOKResponse(nil)
		return resp

	case CommandGetStatus:
		resp, _ := NewOKResponse(s.engine.Status())
		return resp

	case CommandListWindows:
		resp, _ := NewOKResponse(WindowsData{Windows: s.engine.ListWindows()})
		return resp

	case CommandSetWindowState:
		var payload SetWindowStatePayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return NewErrorResponse(err.Error())
		}
		if err := s.engine.SetWindowState(payload.Handle, payload.State); err != nil {
			return NewErrorResponse(err.Error())
		}
		resp, _ := NewOKResponse(nil)
		return resp

	case CommandFocusWindow:
		var payload FocusWindowPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return NewErrorResponse(err.Error())
		}
		if err := s.engine.FocusWindow(payload.Handle); err != nil {
			return NewErrorResponse(err.Error())
		}
		resp, _ := NewOKResponse(nil)
		return resp

	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) sendResponse(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}
