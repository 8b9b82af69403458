package wm

import "errors"

// Precondition failures on the tree or monitor context at call time. All
// are fatal for the current dispatch: the call aborts and no mutation
// beyond already-committed steps is performed. Retry policy, if any,
// belongs to the event dispatcher.
var (
	ErrNoFocusedContainer = errors.New("no focused container")
	ErrNoInsertionTarget  = errors.New("no insertion target")
	ErrNoParent           = errors.New("container has no parent")
	ErrNoWorkspace        = errors.New("container has no workspace")
	ErrNoMonitor          = errors.New("no monitor for window")
)
