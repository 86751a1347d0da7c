package urwid

import (
	"github.com/gdamore/tcell/v2"
)

// Button is a labeled, selectable one-row widget that triggers an action
// when activated.
type Button struct {
	label string

	// The button's style (when not in focus).
	style tcell.Style

	// The button's style (when in focus).
	focusStyle tcell.Style

	// If set to true, the button cannot be activated.
	disabled bool

	// An optional function which is called when the button is activated.
	selected func()
}

// NewButton returns a new button with the given label.
func NewButton(label string) *Button {
	return &Button{
		label:      label,
		style:      tcell.StyleDefault.Foreground(Styles.TextColor),
		focusStyle: tcell.StyleDefault.Foreground(Styles.FocusTextColor).Background(Styles.FocusBackground),
	}
}

// SetLabel sets the button text.
func (b *Button) SetLabel(label string) *Button {
	b.label = label
	return b
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// SetStyle sets the style of the button used when it is not in focus.
func (b *Button) SetStyle(style tcell.Style) *Button {
	b.style = style
	return b
}

// SetFocusStyle sets the style of the button used when it is in focus.
func (b *Button) SetFocusStyle(style tcell.Style) *Button {
	b.focusStyle = style
	return b
}

// SetDisabled sets whether or not the button is disabled. Disabled buttons
// cannot be activated or selected.
func (b *Button) SetDisabled(disabled bool) *Button {
	b.disabled = disabled
	return b
}

// SetSelectedFunc sets a handler which is called when the button is
// activated.
func (b *Button) SetSelectedFunc(handler func()) *Button {
	b.selected = handler
	return b
}

// Selectable implements Widget.
func (b *Button) Selectable() bool {
	return !b.disabled
}

// Rows implements Widget. A button always occupies one row.
func (b *Button) Rows(cols int, focus bool) int {
	return 1
}

// Render implements Widget.
func (b *Button) Render(cols int, focus bool) *Canvas {
	style := b.style
	if focus && !b.disabled {
		style = b.focusStyle
	}
	canvas := NewSolidCanvas(" ", style, cols, 1)
	bracketStyle := style.Foreground(Styles.ButtonBracketColor)
	canvas.WriteString(0, 0, "<", bracketStyle)
	canvas.WriteString(2, 0, b.label, style)
	if width := StringWidth(b.label); 3+width < cols {
		canvas.WriteString(3+width, 0, ">", bracketStyle)
	}
	if focus && !b.disabled {
		canvas.SetCursor(CursorCoords{X: 0, Y: 0})
	}
	return canvas
}

// CursorCoords implements CursorWidget. The cursor sits on the opening
// bracket.
func (b *Button) CursorCoords(cols int) (CursorCoords, bool) {
	if b.disabled {
		return CursorCoords{}, false
	}
	return CursorCoords{X: 0, Y: 0}, true
}

// MoveCursorTo implements CursorMover. The cursor cannot leave the bracket
// but any request for the button's single row is accepted.
func (b *Button) MoveCursorTo(cols, col, row int) bool {
	return row == 0
}

// Keypress implements KeyHandler, activating the button on Enter.
func (b *Button) Keypress(cols int, event *tcell.EventKey) bool {
	if b.disabled {
		return false
	}
	if event.Key() == tcell.KeyEnter {
		if b.selected != nil {
			b.selected()
		}
		return true
	}
	return false
}

// MouseEvent implements MouseTarget, activating the button on a left click.
func (b *Button) MouseEvent(cols int, event *tcell.EventMouse, col, row int, focus bool) bool {
	if b.disabled {
		return false
	}
	if event.Buttons()&tcell.Button1 != 0 {
		if b.selected != nil {
			b.selected()
		}
		return true
	}
	return false
}
