package urwid

// VisibleMiddle describes the focus widget within a visibility partition.
// Offset is the row offset of the focus widget's top from the viewport top
// when non-negative, or the negated number of focus rows hidden above the
// viewport when negative.
type VisibleMiddle struct {
	Offset   int
	Widget   Widget
	Position Position
	Rows     int
	Cursor   *CursorCoords
}

// FillItem is one non-focus widget visible above or below the focus.
type FillItem struct {
	Widget   Widget
	Position Position
	Rows     int
}

// VisibleTopBottom is one half of a visibility partition: the number of rows
// trimmed off the outermost widget plus the fill list ordered from nearest
// to the focus to farthest.
type VisibleTopBottom struct {
	Trim int
	Fill []FillItem
}

// VisibleInfo is the exact partition of the body into the widgets above the
// focus, the focus itself, and the widgets below, for one viewport size. It
// is recomputed on every layout-dependent query and never persisted.
type VisibleInfo struct {
	Middle VisibleMiddle
	Top    VisibleTopBottom
	Bottom VisibleTopBottom
}
