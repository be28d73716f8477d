package trainer

// EditCursor remembers which strength movement the builder form is editing,
// and follows that movement across removals and reorders.
type EditCursor struct {
	index int
}

// NewEditCursor returns a cursor with nothing selected
func NewEditCursor() EditCursor {
	return EditCursor{index: -1}
}

// Select starts editing the movement at index
func (c *EditCursor) Select(index int) {
	if index < 0 {
		index = -1
	}
	c.index = index
}

// Clear leaves edit mode
func (c *EditCursor) Clear() {
	c.index = -1
}

// Index returns the selected movement, if any
func (c EditCursor) Index() (int, bool) {
	return c.index, c.index >= 0
}

// AfterRemoval updates the cursor once the movement at removed has been deleted.
// Removing the edited movement clears the selection.
func (c *EditCursor) AfterRemoval(removed int) {
	if c.index < 0 {
		return
	}
	switch {
	case c.index == removed:
		c.Clear()
	case c.index > removed:
		c.index--
	}
}

// AfterMove updates the cursor once a movement moved from oldIndex to newIndex.
// planLen guards against a selection that no longer addresses a movement.
func (c *EditCursor) AfterMove(oldIndex, newIndex, planLen int) {
	if c.index < 0 {
		return
	}
	switch {
	case c.index == oldIndex:
		c.index = newIndex
	case oldIndex < c.index && newIndex >= c.index:
		c.index--
	case oldIndex > c.index && newIndex <= c.index:
		c.index++
	}
	if c.index >= planLen {
		c.Clear()
	}
}
