package urwid

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Text is a non-selectable widget displaying word-wrapped, aligned text.
// Its height follows from its content and the viewport width.
type Text struct {
	text      string
	alignment Alignment
	style     tcell.Style
	charWrap  bool

	// Wrapped layout cache, keyed by the width it was computed for.
	cachedLines []string
	cachedCols  int
}

// NewText returns a new text widget.
func NewText(text string) *Text {
	return &Text{
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.TextColor),
	}
}

// SetText replaces the displayed text.
func (t *Text) SetText(text string) *Text {
	t.text = text
	t.cachedLines, t.cachedCols = nil, 0
	return t
}

// Text returns the displayed text.
func (t *Text) Text() string {
	return t.text
}

// SetAlignment sets the horizontal alignment of each line.
func (t *Text) SetAlignment(alignment Alignment) *Text {
	t.alignment = alignment
	t.cachedLines, t.cachedCols = nil, 0
	return t
}

// SetStyle sets the text style.
func (t *Text) SetStyle(style tcell.Style) *Text {
	t.style = style
	return t
}

// SetCharWrap makes the widget break lines on grapheme cluster boundaries
// instead of word boundaries.
func (t *Text) SetCharWrap(charWrap bool) *Text {
	t.charWrap = charWrap
	t.cachedLines, t.cachedCols = nil, 0
	return t
}

func (t *Text) lines(cols int) []string {
	if t.cachedLines != nil && t.cachedCols == cols {
		return t.cachedLines
	}
	var lines []string
	if t.text != "" {
		if t.charWrap {
			lines = CharWrap(t.text, cols)
		} else {
			lines = WordWrap(t.text, cols)
		}
	}
	t.cachedLines, t.cachedCols = lines, cols
	return lines
}

// Selectable implements Widget.
func (t *Text) Selectable() bool {
	return false
}

// Rows implements Widget.
func (t *Text) Rows(cols int, focus bool) int {
	return len(t.lines(cols))
}

// Render implements Widget.
func (t *Text) Render(cols int, focus bool) *Canvas {
	lines := t.lines(cols)
	canvas := NewCanvas(cols, len(lines))
	for y, line := range lines {
		line = strings.TrimRight(line, "\n\r")
		canvas.WriteString(alignOffset(cols, StringWidth(line), t.alignment), y, line, t.style)
	}
	return canvas
}
