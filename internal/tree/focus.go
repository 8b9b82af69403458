package tree

// promoteChild moves child to the front of parent's focus order.
func promoteChild(parent, child Container) {
	p := parent.base()
	for i, c := range p.focusOrder {
		if c.ID() == child.ID() {
			copy(p.focusOrder[1:i+1], p.focusOrder[:i])
			p.focusOrder[0] = child
			return
		}
	}
}

// SetFocusedDescendant marks container as the focused descendant of every
// ancestor up to (and excluding) endAncestor, or all the way to the root
// when endAncestor is nil. This maintains the single-focus-path invariant:
// descending from the root by most recently focused child always reaches
// the focused container.
func SetFocusedDescendant(container Container, endAncestor Container) {
	cur := container
	for parent := cur.Parent(); parent != nil; parent = cur.Parent() {
		promoteChild(parent, cur)
		if endAncestor != nil && parent.ID() == endAncestor.ID() {
			return
		}
		cur = parent
	}
}

// FocusedDescendant descends from c by most recently focused child and
// returns the end of the focus path. For a childless container this is c
// itself.
func FocusedDescendant(c Container) Container {
	cur := c
	for {
		order := cur.base().focusOrder
		if len(order) == 0 {
			return cur
		}
		cur = order[0]
	}
}

// FocusOrderedChildren returns c's children from most to least recently
// focused. The returned slice is the node's own backing store; callers
// must not mutate it.
func FocusOrderedChildren(c Container) []Container {
	return c.base().focusOrder
}

// DescendantFocusOrder returns all descendants of c ordered by focus
// recency: for each child in focus order, the child followed by its own
// descendants in focus order.
func DescendantFocusOrder(c Container) []Container {
	var out []Container
	for _, child := range c.base().focusOrder {
		out = append(out, child)
		out = append(out, DescendantFocusOrder(child)...)
	}
	return out
}
