package wm

import "github.com/perch-wm/perch/internal/tree"

// EventType identifies a window-manager event.
type EventType string

const (
	EventWindowManaged      EventType = "window_managed"
	EventWindowUnmanaged    EventType = "window_unmanaged"
	EventWindowStateChanged EventType = "window_state_changed"
	EventFocusChanged       EventType = "focus_changed"
)

// Event is an engine-emitted notification. Ordering between events is
// FIFO: DrainEvents returns them in emission order.
type Event struct {
	Type      EventType
	Container tree.Container
	// NewState is set for EventWindowStateChanged.
	NewState tree.WindowState
}

// Emit appends an event to the outbound queue. Fire-and-forget; the daemon
// drains the queue after each dispatch.
func (s *State) Emit(ev Event) {
	s.events = append(s.events, ev)
}

// DrainEvents returns and clears the queued events in emission order.
func (s *State) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}
