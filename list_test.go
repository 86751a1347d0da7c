package urwid

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNavigation(t *testing.T) {
	selected := ""
	l := NewList().
		AddItem("first", func() { selected = "first" }).
		AddItem("second", func() { selected = "second" }).
		AddItem("third", nil)
	require.Equal(t, 3, l.ItemCount())

	canvas, err := l.Render(12, 3, true)
	require.NoError(t, err)
	assert.Equal(t, "< first >", canvas.Line(0))
	assert.Equal(t, 0, l.CurrentItem())

	handled, err := l.Keypress(12, 3, keyEvent(tcell.KeyDown))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, l.CurrentItem())

	handled, err = l.Keypress(12, 3, keyEvent(tcell.KeyEnter))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "second", selected)
}

func TestListItemManagement(t *testing.T) {
	l := NewList().AddItem("a", nil).AddItem("b", nil)

	l.InsertItem(1, "between", nil)
	assert.Equal(t, 3, l.ItemCount())

	l.RemoveItem(0)
	assert.Equal(t, 2, l.ItemCount())

	require.NoError(t, l.SetCurrentItem(1))
	_, err := l.CalculateVisible(10, 3, true)
	require.NoError(t, err)
	assert.Equal(t, 1, l.CurrentItem())

	assert.ErrorIs(t, l.SetCurrentItem(9), ErrInvalidPosition)
}

func TestListEmpty(t *testing.T) {
	l := NewList()
	assert.Equal(t, -1, l.CurrentItem())

	canvas, err := l.Render(10, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, canvas.Rows())
}
