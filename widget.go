package urwid

import "github.com/gdamore/tcell/v2"

// Widget is the capability contract for every displayable item. Widgets are
// flow widgets: they are given a number of columns and decide their own
// height.
//
// Widgets are responsible for reporting their own height so containers can
// lay out and scroll variable-height items. Render must produce a canvas of
// exactly Rows(cols, focus) rows; containers treat a mismatch as a fatal
// contract violation.
type Widget interface {
	// Rows returns the number of rows required to render the widget at
	// the given width.
	Rows(cols int, focus bool) int

	// Selectable reports whether the widget can take the keyboard focus.
	Selectable() bool

	// Render draws the widget into a new canvas of the given width.
	Render(cols int, focus bool) *Canvas
}

// CursorCoords is a cursor cell position relative to a widget or canvas
// origin.
type CursorCoords struct {
	X int
	Y int
}

// CursorWidget is implemented by widgets that display a cursor when focused.
type CursorWidget interface {
	// CursorCoords returns the cursor position at the given width, or
	// false if the widget currently shows no cursor.
	CursorCoords(cols int) (CursorCoords, bool)
}

// PrefColWidget is implemented by widgets that remember a preferred cursor
// column across vertical movement.
type PrefColWidget interface {
	// PrefCol returns the preferred cursor column at the given width, or
	// false if the widget has none.
	PrefCol(cols int) (int, bool)
}

// CursorMover is implemented by widgets whose cursor can be placed at a
// requested cell.
type CursorMover interface {
	// MoveCursorTo attempts to move the cursor to the given cell and
	// reports whether the move succeeded.
	MoveCursorTo(cols, col, row int) bool
}

// KeyHandler is implemented by widgets that consume key events. A focused
// selectable widget gets the event before its container; returning false
// passes the event back to the container's own key handling.
type KeyHandler interface {
	Keypress(cols int, event *tcell.EventKey) bool
}

// MouseTarget is implemented by widgets that consume mouse events. The row
// is relative to the widget's own top edge.
type MouseTarget interface {
	MouseEvent(cols int, event *tcell.EventMouse, col, row int, focus bool) bool
}
