package urwid

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cell is a single terminal cell. An empty content marks the continuation of
// a wide grapheme cluster stored in the cell to its left.
type cell struct {
	content string
	style   tcell.Style
}

// Canvas is a rectangular grid of styled grapheme cells produced by widget
// rendering, with an optional cursor position. Widgets render into a fresh
// canvas; the ListBox combines, trims and pads them into a single surface.
type Canvas struct {
	lines     [][]cell
	cols      int
	cursor    CursorCoords
	hasCursor bool
}

// NewCanvas returns a blank canvas of the given size.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c := &Canvas{cols: cols}
	for i := 0; i < rows; i++ {
		c.lines = append(c.lines, blankLine(cols, tcell.StyleDefault))
	}
	return c
}

// NewSolidCanvas returns a canvas of the given size with every cell filled
// with the given cluster and style.
func NewSolidCanvas(fill string, style tcell.Style, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	if fill == "" || fill == " " && style == tcell.StyleDefault {
		return c
	}
	for y := range c.lines {
		for x := range c.lines[y] {
			c.lines[y][x] = cell{content: fill, style: style}
		}
	}
	return c
}

func blankLine(cols int, style tcell.Style) []cell {
	line := make([]cell, cols)
	for i := range line {
		line[i] = cell{content: " ", style: style}
	}
	return line
}

// Rows returns the canvas height in rows.
func (c *Canvas) Rows() int {
	return len(c.lines)
}

// Cols returns the canvas width in cells.
func (c *Canvas) Cols() int {
	return c.cols
}

// SetCursor places the cursor at the given cell.
func (c *Canvas) SetCursor(coords CursorCoords) {
	c.cursor = coords
	c.hasCursor = true
}

// ClearCursor removes the cursor.
func (c *Canvas) ClearCursor() {
	c.hasCursor = false
}

// Cursor returns the cursor position if one is set.
func (c *Canvas) Cursor() (CursorCoords, bool) {
	return c.cursor, c.hasCursor
}

// WriteString writes text at (x, y) with the given style, clipping at the
// canvas bounds. The text must not contain newlines.
func (c *Canvas) WriteString(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= len(c.lines) {
		return
	}
	line := c.lines[y]
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		width := runewidth.StringWidth(cluster)
		if width <= 0 {
			continue
		}
		if x >= c.cols {
			return
		}
		if x >= 0 && x+width <= c.cols {
			line[x] = cell{content: cluster, style: style}
			for i := 1; i < width; i++ {
				line[x+i] = cell{content: "", style: style}
			}
		}
		x += width
	}
}

// Line returns the text content of a row with trailing spaces trimmed.
// Intended for tests and diagnostics.
func (c *Canvas) Line(row int) string {
	if row < 0 || row >= len(c.lines) {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.lines[row] {
		b.WriteString(cl.content)
	}
	return strings.TrimRight(b.String(), " ")
}

// Trim removes the given number of rows from the top of the canvas. The
// cursor moves with the content and is dropped if it gets cut off.
func (c *Canvas) Trim(top int) {
	if top <= 0 {
		return
	}
	if top >= len(c.lines) {
		c.lines = nil
	} else {
		c.lines = c.lines[top:]
	}
	if c.hasCursor {
		c.cursor.Y -= top
		if c.cursor.Y < 0 {
			c.hasCursor = false
		}
	}
}

// TrimEnd removes the given number of rows from the bottom of the canvas.
func (c *Canvas) TrimEnd(bottom int) {
	if bottom <= 0 {
		return
	}
	if bottom >= len(c.lines) {
		c.lines = nil
	} else {
		c.lines = c.lines[:len(c.lines)-bottom]
	}
	if c.hasCursor && c.cursor.Y >= len(c.lines) {
		c.hasCursor = false
	}
}

// PadBottom appends blank rows to the bottom of the canvas.
func (c *Canvas) PadBottom(rows int) {
	for i := 0; i < rows; i++ {
		c.lines = append(c.lines, blankLine(c.cols, tcell.StyleDefault))
	}
}

// Draw blits the canvas onto a tcell screen at the given origin. The cursor,
// if set, is shown only when showCursor is true.
func (c *Canvas) Draw(screen tcell.Screen, x, y int, showCursor bool) {
	for row, line := range c.lines {
		for col, cl := range line {
			if cl.content == "" {
				continue
			}
			runes := []rune(cl.content)
			screen.SetContent(x+col, y+row, runes[0], runes[1:], cl.style)
		}
	}
	if showCursor && c.hasCursor {
		screen.ShowCursor(x+c.cursor.X, y+c.cursor.Y)
	}
}

// CombineCanvases stacks the given canvases vertically into one canvas. All
// parts must share the same width. The cursor of parts[focusIndex] is carried
// into the result; pass a negative focusIndex to drop all cursors.
func CombineCanvases(parts []*Canvas, focusIndex int) *Canvas {
	cols := 0
	for _, part := range parts {
		if part.Cols() > cols {
			cols = part.Cols()
		}
	}
	combined := &Canvas{cols: cols}
	for i, part := range parts {
		if i == focusIndex {
			if cursor, ok := part.Cursor(); ok {
				combined.cursor = CursorCoords{X: cursor.X, Y: cursor.Y + len(combined.lines)}
				combined.hasCursor = true
			}
		}
		combined.lines = append(combined.lines, part.lines...)
	}
	return combined
}
