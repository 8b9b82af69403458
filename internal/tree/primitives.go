package tree

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAlreadyAttached is returned when attaching a container that still has
// a parent.
var ErrAlreadyAttached = errors.New("container is already attached")

// ErrDetached is returned when an operation requires an attached container.
var ErrDetached = errors.New("container is detached")

// Attach inserts container as a child of parent at the given index,
// shifting subsequent siblings. The new child is appended at the end of
// the parent's focus order (least recently focused). An index past the end
// of the child sequence is clamped to an append.
func Attach(container, parent Container, index int) error {
	if container.Parent() != nil {
		return fmt.Errorf("attach %s: %w", container.Kind(), ErrAlreadyAttached)
	}

	p := parent.base()
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}

	p.children = append(p.children, nil)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = container

	p.focusOrder = append(p.focusOrder, container)
	container.base().parent = parent
	return nil
}

// Detach removes container from its parent's child sequence and focus
// order, leaving it parentless. Detaching an already detached container is
// a no-op.
func Detach(container Container) {
	parent := container.Parent()
	if parent == nil {
		return
	}

	p := parent.base()
	p.children = removeByID(p.children, container.ID())
	p.focusOrder = removeByID(p.focusOrder, container.ID())
	container.base().parent = nil
}

// MoveWithinTree relocates container to become a child of targetParent at
// targetIndex. The container keeps its focus-order recency relative to the
// target parent only if it was the most recently focused child of its old
// parent; otherwise it lands at the back of the target's focus order.
func MoveWithinTree(container, targetParent Container, targetIndex int) error {
	if container.Parent() == nil {
		return fmt.Errorf("move %s: %w", container.Kind(), ErrDetached)
	}

	wasFocused := false
	old := container.Parent().base()
	if len(old.focusOrder) > 0 && old.focusOrder[0].ID() == container.ID() {
		wasFocused = true
	}

	Detach(container)
	if err := Attach(container, targetParent, targetIndex); err != nil {
		return err
	}

	if wasFocused {
		promoteChild(targetParent, container)
	}
	return nil
}

// Replace swaps the child of parent at index with replacement, preserving
// both the child-sequence position and the focus-order position. The
// replaced container is left detached. Used for identity-preserving
// variant swaps; the replacement must itself be detached.
func Replace(replacement, parent Container, index int) error {
	p := parent.base()
	if index < 0 || index >= len(p.children) {
		return fmt.Errorf("replace: index %d out of range (%d children)", index, len(p.children))
	}
	if replacement.Parent() != nil {
		return fmt.Errorf("replace: %w", ErrAlreadyAttached)
	}

	old := p.children[index]
	p.children[index] = replacement
	for i, c := range p.focusOrder {
		if c.ID() == old.ID() {
			p.focusOrder[i] = replacement
			break
		}
	}

	old.base().parent = nil
	replacement.base().parent = parent
	return nil
}

func removeByID(containers []Container, id uuid.UUID) []Container {
	out := containers[:0]
	for _, c := range containers {
		if c.ID() != id {
			out = append(out, c)
		}
	}
	return out
}
