package urwid

import (
	"github.com/gdamore/tcell/v2"
)

// editLine is one display line of an Edit, as byte offsets into the
// combined caption and text. Line breaks are excluded from the range.
type editLine struct {
	start int
	end   int
}

// Edit is a selectable text editor with an optional caption. Lines wrap on
// grapheme cluster boundaries, so its height follows from its content and
// the viewport width. Cursor movement keys that would leave the widget are
// reported as unhandled so that an enclosing container can take over.
type Edit struct {
	caption string
	text    string

	// cursor is a byte offset into text, always on a cluster boundary.
	cursor int

	multiline bool

	style      tcell.Style
	focusStyle tcell.Style

	// Wrapped layout cache, keyed by the width it was computed for.
	cachedLines []editLine
	cachedCols  int
}

// NewEdit returns a new single-line editor with the given caption and
// initial text. The cursor starts at the end of the text.
func NewEdit(caption, text string) *Edit {
	return &Edit{
		caption:    caption,
		text:       text,
		cursor:     len(text),
		style:      tcell.StyleDefault.Foreground(Styles.TextColor),
		focusStyle: tcell.StyleDefault.Foreground(Styles.FocusTextColor).Background(Styles.FocusBackground),
	}
}

// SetMultiline sets whether Enter inserts a line break.
func (e *Edit) SetMultiline(multiline bool) *Edit {
	e.multiline = multiline
	return e
}

// SetText replaces the edited text and moves the cursor to its end.
func (e *Edit) SetText(text string) *Edit {
	e.text = text
	e.cursor = len(text)
	e.invalidate()
	return e
}

// Text returns the edited text.
func (e *Edit) Text() string {
	return e.text
}

// SetCaption replaces the caption shown before the text.
func (e *Edit) SetCaption(caption string) *Edit {
	e.caption = caption
	e.invalidate()
	return e
}

// SetStyle sets the style used when the editor is not in focus.
func (e *Edit) SetStyle(style tcell.Style) *Edit {
	e.style = style
	return e
}

// SetFocusStyle sets the style used when the editor is in focus.
func (e *Edit) SetFocusStyle(style tcell.Style) *Edit {
	e.focusStyle = style
	return e
}

// CursorOffset returns the cursor's byte offset into the text.
func (e *Edit) CursorOffset() int {
	return e.cursor
}

func (e *Edit) invalidate() {
	e.cachedLines, e.cachedCols = nil, 0
}

// layout wraps the caption and text into display lines of at most cols
// cells. There is always at least one line, and a trailing line break
// produces a trailing empty line for the cursor to sit on.
func (e *Edit) layout(cols int) []editLine {
	if e.cachedLines != nil && e.cachedCols == cols {
		return e.cachedLines
	}

	combined := e.caption + e.text
	var lines []editLine
	start, offset, lineWidth := 0, 0, 0
	var state *stepState
	str := combined
	for len(str) > 0 {
		_, str, state = step(str, state)
		cWidth := state.Width()

		if lineBreak, optional := state.LineBreak(); lineBreak && !optional {
			lines = append(lines, editLine{start, offset})
			offset += state.GrossLength()
			start = offset
			lineWidth = 0
			continue
		}

		if cols > 0 && lineWidth+cWidth > cols {
			lines = append(lines, editLine{start, offset})
			start = offset
			lineWidth = 0
		}

		offset += state.GrossLength()
		lineWidth += cWidth
	}
	lines = append(lines, editLine{start, offset})

	e.cachedLines, e.cachedCols = lines, cols
	return lines
}

// cursorXY maps the cursor offset to display coordinates. A cursor on a
// soft wrap boundary belongs to the start of the following line.
func (e *Edit) cursorXY(cols int) CursorCoords {
	lines := e.layout(cols)
	combined := e.caption + e.text
	offset := len(e.caption) + e.cursor
	for y, line := range lines {
		atEnd := offset == line.end &&
			(y == len(lines)-1 || lines[y+1].start != line.end)
		if offset < line.end || atEnd {
			x := StringWidth(combined[line.start:offset])
			if cols > 0 && x >= cols {
				x = cols - 1
			}
			return CursorCoords{X: x, Y: y}
		}
	}
	last := len(lines) - 1
	return CursorCoords{X: StringWidth(combined[lines[last].start:lines[last].end]), Y: last}
}

// Selectable implements Widget.
func (e *Edit) Selectable() bool {
	return true
}

// Rows implements Widget.
func (e *Edit) Rows(cols int, focus bool) int {
	return len(e.layout(cols))
}

// Render implements Widget.
func (e *Edit) Render(cols int, focus bool) *Canvas {
	style := e.style
	if focus {
		style = e.focusStyle
	}
	lines := e.layout(cols)
	combined := e.caption + e.text
	canvas := NewCanvas(cols, len(lines))
	for y, line := range lines {
		canvas.WriteString(0, y, combined[line.start:line.end], style)
	}
	if focus {
		canvas.SetCursor(e.cursorXY(cols))
	}
	return canvas
}

// CursorCoords implements CursorWidget.
func (e *Edit) CursorCoords(cols int) (CursorCoords, bool) {
	return e.cursorXY(cols), true
}

// MoveCursorTo implements CursorMover, placing the cursor as close to the
// given cell as the content allows. It fails only for rows outside the
// widget.
func (e *Edit) MoveCursorTo(cols, col, row int) bool {
	lines := e.layout(cols)
	if row < 0 || row >= len(lines) {
		return false
	}
	line := lines[row]
	combined := e.caption + e.text

	offset := line.start
	width := 0
	var state *stepState
	str := combined[line.start:line.end]
	for len(str) > 0 {
		_, str, state = step(str, state)
		if width+state.Width() > col {
			break
		}
		width += state.Width()
		offset += state.GrossLength()
	}
	// The caption is not editable.
	offset = max(offset, len(e.caption))
	e.cursor = offset - len(e.caption)
	return true
}

// insert places text at the cursor.
func (e *Edit) insert(text string) {
	e.text = e.text[:e.cursor] + text + e.text[e.cursor:]
	e.cursor += len(text)
	e.invalidate()
}

// clusterBefore returns the byte length of the grapheme cluster ending at
// the cursor.
func (e *Edit) clusterBefore() int {
	var state *stepState
	str := e.text[:e.cursor]
	length := 0
	for len(str) > 0 {
		_, str, state = step(str, state)
		length = state.GrossLength()
	}
	return length
}

// clusterAfter returns the byte length of the grapheme cluster starting at
// the cursor.
func (e *Edit) clusterAfter() int {
	if e.cursor >= len(e.text) {
		return 0
	}
	var state *stepState
	_, _, state = step(e.text[e.cursor:], state)
	return state.GrossLength()
}

// Keypress implements KeyHandler. Movement beyond the first or last display
// line, or past either end of the text, is left unhandled.
func (e *Edit) Keypress(cols int, event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyRune:
		e.insert(string(event.Rune()))
		return true

	case tcell.KeyEnter:
		if !e.multiline {
			return false
		}
		e.insert("\n")
		return true

	case tcell.KeyLeft:
		if e.cursor == 0 {
			return false
		}
		e.cursor -= e.clusterBefore()
		return true

	case tcell.KeyRight:
		if e.cursor >= len(e.text) {
			return false
		}
		e.cursor += e.clusterAfter()
		return true

	case tcell.KeyUp, tcell.KeyDown:
		coords := e.cursorXY(cols)
		row := coords.Y - 1
		if event.Key() == tcell.KeyDown {
			row = coords.Y + 1
		}
		if row < 0 || row >= len(e.layout(cols)) {
			return false
		}
		return e.MoveCursorTo(cols, coords.X, row)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor == 0 {
			return false
		}
		length := e.clusterBefore()
		e.text = e.text[:e.cursor-length] + e.text[e.cursor:]
		e.cursor -= length
		e.invalidate()
		return true

	case tcell.KeyDelete:
		length := e.clusterAfter()
		if length == 0 {
			return false
		}
		e.text = e.text[:e.cursor] + e.text[e.cursor+length:]
		e.invalidate()
		return true

	case tcell.KeyHome:
		coords := e.cursorXY(cols)
		line := e.layout(cols)[coords.Y]
		e.cursor = max(line.start, len(e.caption)) - len(e.caption)
		return true

	case tcell.KeyEnd:
		coords := e.cursorXY(cols)
		line := e.layout(cols)[coords.Y]
		e.cursor = max(line.end-len(e.caption), 0)
		return true
	}
	return false
}

// MouseEvent implements MouseTarget, moving the cursor to the clicked cell.
func (e *Edit) MouseEvent(cols int, event *tcell.EventMouse, col, row int, focus bool) bool {
	if event.Buttons()&tcell.Button1 == 0 {
		return false
	}
	return e.MoveCursorTo(cols, col, row)
}
