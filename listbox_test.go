package urwid

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidget renders its name on every row at a fixed height.
type fixedWidget struct {
	name       string
	height     int
	selectable bool
}

func (w *fixedWidget) Rows(cols int, focus bool) int {
	return w.height
}

func (w *fixedWidget) Selectable() bool {
	return w.selectable
}

func (w *fixedWidget) Render(cols int, focus bool) *Canvas {
	canvas := NewCanvas(cols, w.height)
	for y := 0; y < w.height; y++ {
		canvas.WriteString(0, y, fmt.Sprintf("%s %d", w.name, y), tcell.StyleDefault)
	}
	return canvas
}

// lyingWidget declares one height but renders another.
type lyingWidget struct {
	declared int
	rendered int
}

func (w *lyingWidget) Rows(cols int, focus bool) int {
	return w.declared
}

func (w *lyingWidget) Selectable() bool {
	return true
}

func (w *lyingWidget) Render(cols int, focus bool) *Canvas {
	return NewCanvas(cols, w.rendered)
}

// loopWalker returns its own argument from Next and Prev.
type loopWalker struct {
	widget Widget
}

func (w *loopWalker) Focus() (Widget, Position) {
	return w.widget, 0
}

func (w *loopWalker) SetFocus(position Position) error {
	return nil
}

func (w *loopWalker) Next(position Position) (Widget, Position) {
	return w.widget, position
}

func (w *loopWalker) Prev(position Position) (Widget, Position) {
	return w.widget, position
}

// minimalWalker implements only the required walker methods.
type minimalWalker struct {
	widgets []Widget
	focus   int
}

func (w *minimalWalker) Focus() (Widget, Position) {
	if len(w.widgets) == 0 {
		return nil, nil
	}
	return w.widgets[w.focus], w.focus
}

func (w *minimalWalker) SetFocus(position Position) error {
	index, ok := position.(int)
	if !ok || index < 0 || index >= len(w.widgets) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, position)
	}
	w.focus = index
	return nil
}

func (w *minimalWalker) Next(position Position) (Widget, Position) {
	index := position.(int)
	if index+1 >= len(w.widgets) {
		return nil, nil
	}
	return w.widgets[index+1], index + 1
}

func (w *minimalWalker) Prev(position Position) (Widget, Position) {
	index := position.(int)
	if index == 0 {
		return nil, nil
	}
	return w.widgets[index-1], index - 1
}

// ringWalker steps over its widgets without ends so every walk comes back
// around. It exposes no position enumeration.
type ringWalker struct {
	widgets []Widget
	focus   int
}

func (w *ringWalker) Focus() (Widget, Position) {
	return w.widgets[w.focus], w.focus
}

func (w *ringWalker) SetFocus(position Position) error {
	w.focus = position.(int)
	return nil
}

func (w *ringWalker) Next(position Position) (Widget, Position) {
	index := (position.(int) + 1) % len(w.widgets)
	return w.widgets[index], index
}

func (w *ringWalker) Prev(position Position) (Widget, Position) {
	index := (position.(int) - 1 + len(w.widgets)) % len(w.widgets)
	return w.widgets[index], index
}

// declaredRingWalker additionally reports its wrapping.
type declaredRingWalker struct {
	ringWalker
}

func (w *declaredRingWalker) WrapsAround() bool {
	return true
}

func fixedItems(count, height int) []Widget {
	widgets := make([]Widget, count)
	for i := range widgets {
		widgets[i] = &fixedWidget{name: fmt.Sprintf("item%d", i), height: height, selectable: true}
	}
	return widgets
}

func keyEvent(key tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(key, 0, tcell.ModNone)
}

func TestCalculateVisiblePartition(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(5, 1)...))

	visible, err := l.CalculateVisible(10, 3, true)
	require.NoError(t, err)
	require.NotNil(t, visible)

	assert.Equal(t, 0, visible.Middle.Offset)
	assert.Equal(t, 0, visible.Middle.Position)
	assert.Equal(t, 1, visible.Middle.Rows)
	assert.Empty(t, visible.Top.Fill)
	assert.Equal(t, 0, visible.Top.Trim)
	require.Len(t, visible.Bottom.Fill, 2)
	assert.Equal(t, 1, visible.Bottom.Fill[0].Position)
	assert.Equal(t, 2, visible.Bottom.Fill[1].Position)
	assert.Equal(t, 0, visible.Bottom.Trim)
}

func TestCalculateVisibleEmpty(t *testing.T) {
	l := NewListBox(NewSimpleWalker())

	visible, err := l.CalculateVisible(10, 3, true)
	require.NoError(t, err)
	assert.Nil(t, visible)

	canvas, err := l.Render(10, 3, true)
	require.NoError(t, err)
	assert.Equal(t, 3, canvas.Rows())
	assert.Equal(t, 10, canvas.Cols())
	for y := 0; y < 3; y++ {
		assert.Equal(t, "", canvas.Line(y))
	}
}

func TestCalculateVisibleHeightConservation(t *testing.T) {
	heights := []int{2, 3, 1, 4, 2}
	widgets := make([]Widget, len(heights))
	for i, h := range heights {
		widgets[i] = &fixedWidget{name: fmt.Sprintf("item%d", i), height: h, selectable: true}
	}
	l := NewListBox(NewSimpleWalker(widgets...))
	require.NoError(t, l.SetFocus(2, NoDirection))

	visible, err := l.CalculateVisible(10, 6, true)
	require.NoError(t, err)
	require.NotNil(t, visible)

	total := visible.Middle.Rows
	for _, item := range visible.Top.Fill {
		total += item.Rows
	}
	for _, item := range visible.Bottom.Fill {
		total += item.Rows
	}
	assert.Equal(t, 6, total-visible.Top.Trim-visible.Bottom.Trim)
}

func TestCalculateVisibleIdempotent(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(8, 2)...))
	require.NoError(t, l.SetFocus(4, NoDirection))

	first, err := l.CalculateVisible(20, 5, true)
	require.NoError(t, err)
	second, err := l.CalculateVisible(20, 5, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderFillsViewportExactly(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(10, 1)...))

	canvas, err := l.Render(12, 5, true)
	require.NoError(t, err)
	require.Equal(t, 5, canvas.Rows())
	for y := 0; y < 5; y++ {
		assert.Equal(t, fmt.Sprintf("item%d 0", y), canvas.Line(y))
	}
}

func TestRenderPadsShortContent(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(2, 1)...))

	canvas, err := l.Render(12, 5, true)
	require.NoError(t, err)
	require.Equal(t, 5, canvas.Rows())
	assert.Equal(t, "item0 0", canvas.Line(0))
	assert.Equal(t, "item1 0", canvas.Line(1))
	assert.Equal(t, "", canvas.Line(2))
}

func TestRenderDetectsHeightMismatch(t *testing.T) {
	l := NewListBox(NewSimpleWalker(&lyingWidget{declared: 2, rendered: 1}))

	_, err := l.Render(10, 5, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutInconsistency)

	var layoutErr *LayoutError
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, 0, layoutErr.Position)
}

func TestSelfLoopingWalkerDetected(t *testing.T) {
	l := NewListBox(&loopWalker{widget: &fixedWidget{name: "x", height: 1, selectable: true}})

	_, err := l.CalculateVisible(10, 3, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutInconsistency)
}

func TestKeypressDownTerminatesAtEnd(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(4, 1)...))

	for i := 0; i < 3; i++ {
		handled, err := l.Keypress(10, 2, keyEvent(tcell.KeyDown))
		require.NoError(t, err)
		assert.True(t, handled, "press %d", i)
	}
	_, pos := l.Focus()
	assert.Equal(t, 3, pos)

	handled, err := l.Keypress(10, 2, keyEvent(tcell.KeyDown))
	require.NoError(t, err)
	assert.False(t, handled)
	_, pos = l.Focus()
	assert.Equal(t, 3, pos)
}

func TestKeypressUpTerminatesAtStart(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(4, 1)...))

	handled, err := l.Keypress(10, 2, keyEvent(tcell.KeyUp))
	require.NoError(t, err)
	assert.False(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 0, pos)
}

func TestKeypressSkipsUnselectable(t *testing.T) {
	widgets := []Widget{
		&fixedWidget{name: "a", height: 1, selectable: true},
		&fixedWidget{name: "b", height: 1, selectable: false},
		&fixedWidget{name: "c", height: 1, selectable: true},
	}
	l := NewListBox(NewSimpleWalker(widgets...))

	handled, err := l.Keypress(10, 3, keyEvent(tcell.KeyDown))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 2, pos)

	handled, err = l.Keypress(10, 3, keyEvent(tcell.KeyUp))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos = l.Focus()
	assert.Equal(t, 0, pos)
}

func TestZeroHeightWidgetsTraversedNotFilled(t *testing.T) {
	widgets := []Widget{
		&fixedWidget{name: "a", height: 1, selectable: true},
		NewDivider(""),
		&fixedWidget{name: "b", height: 1, selectable: true},
	}
	l := NewListBox(NewSimpleWalker(widgets...))

	visible, err := l.CalculateVisible(10, 3, true)
	require.NoError(t, err)
	require.NotNil(t, visible)
	require.Len(t, visible.Bottom.Fill, 1)
	assert.Equal(t, 2, visible.Bottom.Fill[0].Position)

	handled, err := l.Keypress(10, 3, keyEvent(tcell.KeyDown))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 2, pos)
}

func TestFirstSelectableFocusDeferred(t *testing.T) {
	widgets := []Widget{
		NewText("header"),
		NewDivider("-"),
		&fixedWidget{name: "a", height: 1, selectable: true},
		&fixedWidget{name: "b", height: 1, selectable: true},
	}
	l := NewListBox(NewSimpleWalker(widgets...))

	visible, err := l.CalculateVisible(10, 4, true)
	require.NoError(t, err)
	require.NotNil(t, visible)
	assert.Equal(t, 2, visible.Middle.Position)
	// The unselectable header stays visible above.
	assert.Equal(t, 2, visible.Middle.Offset)
}

func TestSetFocusKeepsOldFocusVisible(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(10, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	require.NoError(t, l.SetFocus(3, NoDirection))
	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	require.NotNil(t, visible)

	assert.Equal(t, 3, visible.Middle.Position)
	assert.Equal(t, 3, visible.Middle.Offset)
	positions := make([]Position, 0, len(visible.Top.Fill))
	for _, item := range visible.Top.Fill {
		positions = append(positions, item.Position)
	}
	assert.Contains(t, positions, 0)
}

func TestSetFocusDirectionalPlacement(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	// Far outside the view, arriving from above: lands at the bottom.
	require.NoError(t, l.SetFocus(20, Above))
	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 20, visible.Middle.Position)
	assert.Equal(t, 4, visible.Middle.Offset)

	// Arriving from below: lands at the top.
	require.NoError(t, l.SetFocus(5, Below))
	visible, err = l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 5, visible.Middle.Position)
	assert.Equal(t, 0, visible.Middle.Offset)
}

func TestSetFocusValign(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(20, 1)...))
	require.NoError(t, l.SetFocus(10, NoDirection))
	l.SetFocusValign(VAlignMiddle)

	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 10, visible.Middle.Position)
	assert.Equal(t, 2, visible.Middle.Offset)

	l.SetFocusValign(VAlignTop)
	visible, err = l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 0, visible.Middle.Offset)

	l.SetFocusValign(VAlignBottom)
	visible, err = l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 4, visible.Middle.Offset)
}

func TestPageDownAndBack(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))

	handled, err := l.Keypress(10, 5, keyEvent(tcell.KeyPgDn))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	posAfterDown := pos.(int)
	assert.Greater(t, posAfterDown, 3)
	assert.LessOrEqual(t, posAfterDown, 10)

	handled, err = l.Keypress(10, 5, keyEvent(tcell.KeyPgUp))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos = l.Focus()
	assert.Less(t, pos.(int), posAfterDown)
}

func TestPageUpAtTopShiftsOnly(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(3, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	handled, err := l.Keypress(10, 5, keyEvent(tcell.KeyPgUp))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 0, pos)
}

func TestHomeAndEndJump(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))

	handled, err := l.Keypress(10, 5, keyEvent(tcell.KeyEnd))
	require.NoError(t, err)
	assert.True(t, handled)
	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 29, visible.Middle.Position)
	assert.Equal(t, 4, visible.Middle.Offset)

	handled, err = l.Keypress(10, 5, keyEvent(tcell.KeyHome))
	require.NoError(t, err)
	assert.True(t, handled)
	visible, err = l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 0, visible.Middle.Position)
	assert.Equal(t, 0, visible.Middle.Offset)
}

func TestHomeAndEndUnhandledOnWrappingWalker(t *testing.T) {
	l := NewListBox(&ringWalker{widgets: fixedItems(3, 1)})

	handled, err := l.Keypress(10, 2, keyEvent(tcell.KeyHome))
	require.NoError(t, err)
	assert.False(t, handled)

	handled, err = l.Keypress(10, 2, keyEvent(tcell.KeyEnd))
	require.NoError(t, err)
	assert.False(t, handled)

	declared := NewListBox(&declaredRingWalker{ringWalker{widgets: fixedItems(3, 1)}})
	handled, err = declared.Keypress(10, 2, keyEvent(tcell.KeyHome))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestEndsVisible(t *testing.T) {
	small := NewListBox(NewSimpleWalker(fixedItems(3, 1)...))
	edges, err := small.EndsVisible(10, 5, true)
	require.NoError(t, err)
	assert.True(t, edges.Has(EdgeTop))
	assert.True(t, edges.Has(EdgeBottom))

	empty := NewListBox(NewSimpleWalker())
	edges, err = empty.EndsVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, EdgeTop|EdgeBottom, edges)

	large := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))
	edges, err = large.EndsVisible(10, 5, true)
	require.NoError(t, err)
	assert.True(t, edges.Has(EdgeTop))
	assert.False(t, edges.Has(EdgeBottom))

	require.NoError(t, large.SetFocus(29, NoDirection))
	large.SetFocusValign(VAlignBottom)
	edges, err = large.EndsVisible(10, 5, true)
	require.NoError(t, err)
	assert.False(t, edges.Has(EdgeTop))
	assert.True(t, edges.Has(EdgeBottom))
}

func TestScrollQueries(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))

	total, err := l.RowsMax(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	pos, err := l.ScrollPosition(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	require.NoError(t, l.SetFocus(10, NoDirection))
	l.SetFocusValign(VAlignTop)

	pos, err = l.ScrollPosition(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 10, pos)

	first, err := l.FirstVisiblePosition(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 10, first)

	amount, err := l.VisibleAmount(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 5, amount)

	assert.True(t, l.RequireRelativeScroll(5))
	assert.False(t, l.RequireRelativeScroll(20))

	fraction, err := l.VisibleFraction(10, 5, true)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/30.0, fraction, 0.001)
}

func TestScrollQueriesUnsupported(t *testing.T) {
	minimal := NewListBox(&minimalWalker{widgets: fixedItems(3, 1)})
	_, err := minimal.ScrollPosition(10, 5, true)
	assert.ErrorIs(t, err, ErrScrollUnsupported)

	wrapping := NewListBox(NewSimpleWalker(fixedItems(3, 1)...).SetWrapAround(true))
	_, err = wrapping.RowsMax(10, 5, true)
	assert.ErrorIs(t, err, ErrScrollUnsupported)
}

func TestShiftFocusValidation(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(10, 1)...))
	require.NoError(t, l.SetFocus(5, NoDirection))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	assert.ErrorIs(t, l.ShiftFocus(10, 5, 7), ErrInvalidOffset)
	assert.ErrorIs(t, l.ShiftFocus(10, 5, -3), ErrInvalidOffset)
	assert.NoError(t, l.ShiftFocus(10, 5, 2))

	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 5, visible.Middle.Position)
	assert.Equal(t, 2, visible.Middle.Offset)
}

func TestChangeFocusSnapsIntoView(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(30, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	// A selectable target placed past the bottom edge snaps back in.
	require.NoError(t, l.ChangeFocus(10, 5, 10, 9, Above, nil, SnapRowsDefault))
	visible, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 10, visible.Middle.Position)
	assert.Equal(t, 4, visible.Middle.Offset)
}

func TestCursorCarriedAcrossFocusChange(t *testing.T) {
	first := NewEdit("", "hello")
	second := NewEdit("", "world wide")
	l := NewListBox(NewSimpleWalker(first, second))
	_, err := l.CalculateVisible(20, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 5, first.CursorOffset())

	handled, err := l.Keypress(20, 2, keyEvent(tcell.KeyDown))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	require.Equal(t, 1, pos)
	// The sticky column carries the cursor to the same column.
	assert.Equal(t, 5, second.CursorOffset())

	handled, err = l.Keypress(20, 2, keyEvent(tcell.KeyUp))
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos = l.Focus()
	require.Equal(t, 0, pos)
	assert.Equal(t, 5, first.CursorOffset())
}

func TestRenderShowsFocusCursor(t *testing.T) {
	edit := NewEdit("> ", "ab")
	l := NewListBox(NewSimpleWalker(NewText("title"), edit))

	canvas, err := l.Render(10, 3, true)
	require.NoError(t, err)
	cursor, ok := canvas.Cursor()
	require.True(t, ok)
	assert.Equal(t, CursorCoords{X: 4, Y: 1}, cursor)

	// Without focus the cursor is not rendered.
	l.invalidate()
	canvas, err = l.Render(10, 3, false)
	require.NoError(t, err)
	_, ok = canvas.Cursor()
	assert.False(t, ok)
}

func TestKeypressForwardedToFocusWidget(t *testing.T) {
	edit := NewEdit("", "ab")
	l := NewListBox(NewSimpleWalker(edit))

	handled, err := l.Keypress(10, 3, tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "abx", edit.Text())
}

func TestMouseClickMovesFocus(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(10, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	event := tcell.NewEventMouse(0, 3, tcell.Button1, tcell.ModNone)
	handled, err := l.MouseEvent(10, 5, event, 0, 3, true)
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 3, pos)
}

func TestMouseWheelScrolls(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(10, 1)...))
	_, err := l.CalculateVisible(10, 5, true)
	require.NoError(t, err)

	event := tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)
	handled, err := l.MouseEvent(10, 5, event, 0, 0, true)
	require.NoError(t, err)
	assert.True(t, handled)
	_, pos := l.Focus()
	assert.Equal(t, 1, pos)
}

func TestBodyModificationInvalidatesRender(t *testing.T) {
	walker := NewSimpleWalker(fixedItems(3, 1)...)
	l := NewListBox(walker)

	canvas, err := l.Render(10, 3, true)
	require.NoError(t, err)
	assert.Equal(t, "item0 0", canvas.Line(0))

	walker.Set(0, &fixedWidget{name: "changed", height: 1, selectable: true})
	canvas, err = l.Render(10, 3, true)
	require.NoError(t, err)
	assert.Equal(t, "changed 0", canvas.Line(0))
}

func TestPositions(t *testing.T) {
	l := NewListBox(NewSimpleWalker(fixedItems(4, 1)...))

	positions, err := l.Positions(false)
	require.NoError(t, err)
	assert.Equal(t, []Position{0, 1, 2, 3}, positions)

	positions, err = l.Positions(true)
	require.NoError(t, err)
	assert.Equal(t, []Position{3, 2, 1, 0}, positions)

	minimal := NewListBox(&minimalWalker{widgets: fixedItems(3, 1), focus: 1})
	positions, err = minimal.Positions(false)
	require.NoError(t, err)
	assert.Equal(t, []Position{0, 1, 2}, positions)

	positions, err = minimal.Positions(true)
	require.NoError(t, err)
	assert.Equal(t, []Position{2, 1, 0}, positions)
}

func TestTallFocusWidgetInset(t *testing.T) {
	widgets := []Widget{
		&fixedWidget{name: "tall", height: 8, selectable: true},
		&fixedWidget{name: "next", height: 1, selectable: true},
	}
	l := NewListBox(NewSimpleWalker(widgets...))
	_, err := l.CalculateVisible(10, 4, true)
	require.NoError(t, err)

	// Hide the first three rows of the focus widget above the viewport.
	require.NoError(t, l.ShiftFocus(10, 4, -3))
	visible, err := l.CalculateVisible(10, 4, true)
	require.NoError(t, err)
	assert.Equal(t, -3, visible.Middle.Offset)
	assert.Equal(t, 3, visible.Top.Trim)

	canvas, err := l.Render(10, 4, true)
	require.NoError(t, err)
	require.Equal(t, 4, canvas.Rows())
	assert.Equal(t, "tall 3", canvas.Line(0))
}

func TestLayoutErrorMessage(t *testing.T) {
	err := layoutErrorf("node/3", "widget measured %d rows but rendered %d", 2, 1)
	assert.Equal(t, "layout inconsistency at position node/3: widget measured 2 rows but rendered 1", err.Error())
	assert.True(t, errors.Is(err, ErrLayoutInconsistency))
}
