package urwid

import (
	"github.com/gdamore/tcell/v2"
)

// Divider is a non-selectable horizontal rule. With an empty fill string it
// occupies no rows at all, which is how spacer entries of zero height are
// made.
type Divider struct {
	fill  string
	style tcell.Style
}

// NewDivider returns a divider repeating the given fill string across the
// row. Pass "" for a zero-height divider.
func NewDivider(fill string) *Divider {
	return &Divider{
		fill:  fill,
		style: tcell.StyleDefault.Foreground(Styles.DividerColor),
	}
}

// SetStyle sets the fill style.
func (d *Divider) SetStyle(style tcell.Style) *Divider {
	d.style = style
	return d
}

// Selectable implements Widget.
func (d *Divider) Selectable() bool {
	return false
}

// Rows implements Widget.
func (d *Divider) Rows(cols int, focus bool) int {
	if d.fill == "" {
		return 0
	}
	return 1
}

// Render implements Widget.
func (d *Divider) Render(cols int, focus bool) *Canvas {
	if d.fill == "" {
		return NewCanvas(cols, 0)
	}
	return NewSolidCanvas(d.fill, d.style, cols, 1)
}
