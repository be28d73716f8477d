package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditCursor_SelectAndClear(t *testing.T) {
	c := NewEditCursor()
	_, ok := c.Index()
	assert.False(t, ok)

	c.Select(2)
	index, ok := c.Index()
	assert.True(t, ok)
	assert.Equal(t, 2, index)

	c.Select(-4)
	_, ok = c.Index()
	assert.False(t, ok)

	c.Select(1)
	c.Clear()
	_, ok = c.Index()
	assert.False(t, ok)
}

func TestEditCursor_AfterRemoval(t *testing.T) {
	cases := []struct {
		name     string
		selected int
		removed  int
		want     int
	}{
		{"earlier row shifts up", 3, 1, 2},
		{"later row keeps index", 1, 3, 1},
		{"edited row clears", 2, 2, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewEditCursor()
			c.Select(tc.selected)
			c.AfterRemoval(tc.removed)
			index, _ := c.Index()
			assert.Equal(t, tc.want, index)
		})
	}
}

func TestEditCursor_AfterMove(t *testing.T) {
	cases := []struct {
		name          string
		selected      int
		from, to, len int
		want          int
	}{
		{"edited row moves with itself", 1, 1, 2, 4, 2},
		{"row moved from above past it", 2, 0, 3, 4, 1},
		{"row moved from below above it", 1, 3, 0, 4, 2},
		{"unrelated move", 0, 2, 3, 4, 0},
		{"stale selection clears", 5, 0, 1, 3, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewEditCursor()
			c.Select(tc.selected)
			c.AfterMove(tc.from, tc.to, tc.len)
			index, _ := c.Index()
			assert.Equal(t, tc.want, index)
		})
	}

	idle := NewEditCursor()
	idle.AfterMove(0, 1, 2)
	_, ok := idle.Index()
	assert.False(t, ok)
}
