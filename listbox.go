package urwid

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
)

// FocusDirection tells a focus change where the old focus was relative to
// the new one, so the cursor can enter the new widget from the right edge.
type FocusDirection uint8

const (
	NoDirection FocusDirection = iota
	Above
	Below
)

// VAlign is a vertical alignment request for the focus widget.
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
	VAlignRelative
)

// CursorTarget requests a cursor placement in a newly focused widget: a
// column alone, or a column and row.
type CursorTarget struct {
	Col    int
	Row    int
	HasRow bool
}

// SnapRowsDefault selects the default snap budget (one row less than the
// viewport height) in ChangeFocus.
const SnapRowsDefault = math.MinInt

// Edges is a set of viewport edges, reported by EndsVisible.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
)

// Has reports whether every edge in the argument is in the set.
func (e Edges) Has(edge Edges) bool {
	return e&edge == edge
}

type pendingFocusKind uint8

const (
	pendingNone pendingFocusKind = iota
	pendingFirstSelectable
	pendingRestore
)

// pendingFocus is a deferred focus change, resolved by the first operation
// that learns the viewport size.
type pendingFocus struct {
	kind       pendingFocusKind
	comingFrom FocusDirection
	position   Position
}

type pendingValign struct {
	valign  VAlign
	percent int
}

// ListBox scrolls a vertically stacked list of widgets supplied by a
// ListWalker, keeping one widget in focus and deciding exactly which widgets
// are visible at which offsets for any viewport size.
//
// A ListBox owns its walker: walkers must not be shared between containers.
type ListBox struct {
	body ListWalker

	// offsetRows is the number of rows between the top of the viewport
	// and the top of the focus widget, used only while the focus top is
	// at or below the viewport top.
	offsetRows int

	// insetNum/insetDen describe the fraction of the focus widget's
	// height hidden above the viewport top, used only while offsetRows
	// is zero. offsetRows is authoritative when nonzero.
	insetNum int
	insetDen int

	// prefCol is the sticky cursor column used when moving vertically
	// through widgets without a cursor; negative means leftmost.
	prefCol int

	pending pendingFocus
	valign  *pendingValign

	commands CommandMap

	cached      *Canvas
	cachedCols  int
	cachedRows  int
	cachedFocus bool

	rowsMaxCached int
	rowsMaxCols   int
}

// NewListBox returns a list box over the given walker. The initial focus is
// deferred: the first operation that knows the viewport size moves the focus
// to the first selectable widget below the walker's focus.
func NewListBox(body ListWalker) *ListBox {
	l := &ListBox{
		insetDen: 1,
		prefCol:  -1,
		pending:  pendingFocus{kind: pendingFirstSelectable},
		commands: DefaultCommandMap(),
	}
	l.SetBody(body)
	return l
}

// Body returns the list walker.
func (l *ListBox) Body() ListWalker {
	return l.body
}

// SetBody replaces the list walker, moving the change notification
// subscription from the old to the new one.
func (l *ListBox) SetBody(body ListWalker) *ListBox {
	if notifier, ok := l.body.(ModifiedNotifier); ok {
		notifier.SetModifiedFunc(nil)
	}
	l.body = body
	if notifier, ok := l.body.(ModifiedNotifier); ok {
		notifier.SetModifiedFunc(l.invalidate)
	}
	l.invalidate()
	return l
}

// SetCommandMap replaces the key bindings used by Keypress.
func (l *ListBox) SetCommandMap(commands CommandMap) *ListBox {
	l.commands = commands
	return l
}

func (l *ListBox) invalidate() {
	l.cached = nil
	l.rowsMaxCached = 0
}

// Focus returns the widget in focus and its position, or (nil, nil) when
// the list box is empty.
func (l *ListBox) Focus() (Widget, Position) {
	return l.body.Focus()
}

// SetFocus moves the focus to the given position and tries to keep the old
// focus widget in view on the next layout pass. Pass Above or Below as
// comingFrom if the old position is known to be above or below the new one.
func (l *ListBox) SetFocus(position Position, comingFrom FocusDirection) error {
	focusWidget, focusPos := l.body.Focus()
	if focusWidget == nil {
		return fmt.Errorf("%w: cannot set focus, list box is empty", ErrInvalidPosition)
	}
	if err := l.body.SetFocus(position); err != nil {
		return err
	}
	l.pending = pendingFocus{kind: pendingRestore, comingFrom: comingFrom, position: focusPos}
	return nil
}

// SetFocusValign requests that the focus widget be aligned at the top,
// middle or bottom of the viewport on the next layout pass.
func (l *ListBox) SetFocusValign(valign VAlign) {
	percent := 0
	switch valign {
	case VAlignMiddle:
		percent = 50
	case VAlignBottom:
		percent = 100
	}
	l.valign = &pendingValign{valign: valign, percent: percent}
}

// SetFocusValignRelative requests that the focus widget be placed at the
// given relative position, 0 being the top of the viewport and 100 the
// bottom.
func (l *ListBox) SetFocusValignRelative(percent int) {
	percent = min(max(percent, 0), 100)
	l.valign = &pendingValign{valign: VAlignRelative, percent: percent}
}

// focusOffsetInset resolves the stored viewport state into concrete row
// counts for the current focus widget.
func (l *ListBox) focusOffsetInset(cols int) (offsetRows, insetRows int, err error) {
	focusWidget, focusPos := l.body.Focus()
	focusRows := focusWidget.Rows(cols, true)
	offsetRows = l.offsetRows
	if offsetRows == 0 {
		if l.insetNum < 0 || l.insetDen <= 0 || l.insetNum >= l.insetDen {
			return 0, 0, layoutErrorf(focusPos, "invalid inset fraction %d/%d", l.insetNum, l.insetDen)
		}
		insetRows = focusRows * l.insetNum / l.insetDen
		if insetRows != 0 && insetRows >= focusRows {
			return 0, 0, layoutErrorf(focusPos, "inset %d rows not below focus height %d", insetRows, focusRows)
		}
	}
	return offsetRows, insetRows, nil
}

// CalculateVisible partitions the body into the widgets above the focus,
// the focus itself, and the widgets below, for the given viewport size. It
// returns (nil, nil) when the list box is empty. Pass true for focus to keep
// the focus widget's cursor inside the viewport.
func (l *ListBox) CalculateVisible(cols, rows int, focus bool) (*VisibleInfo, error) {
	// A deferred focus or alignment request must resolve before any
	// heights are measured; resolution depends on the final size.
	if l.pending.kind != pendingNone || l.valign != nil {
		if err := l.completePendingFocus(cols, rows, focus); err != nil {
			return nil, err
		}
	}

	focusWidget, focusPos := l.body.Focus()
	if focusWidget == nil {
		return nil, nil
	}

	offsetRows, insetRows, err := l.focusOffsetInset(cols)
	if err != nil {
		return nil, err
	}
	// Force at least one line of the focus to be visible.
	if rows > 0 && offsetRows >= rows {
		offsetRows = rows - 1
	}

	// Shift the offset minimally so the cursor stays inside the viewport.
	var cursor *CursorCoords
	if rows > 0 && focus && focusWidget.Selectable() {
		if cw, ok := focusWidget.(CursorWidget); ok {
			if coords, ok := cw.CursorCoords(cols); ok {
				cursor = &coords
			}
		}
	}
	if cursor != nil {
		effectiveY := cursor.Y + offsetRows - insetRows
		if effectiveY < 0 {
			insetRows = cursor.Y
		} else if effectiveY >= rows {
			offsetRows = rows - cursor.Y - 1
			if offsetRows < 0 {
				insetRows, offsetRows = -offsetRows, 0
			}
		}
	}

	trimTop := insetRows
	focusRows := focusWidget.Rows(cols, true)

	// Collect the widgets above the focus.
	pos := focusPos
	topPos := pos
	fillLines := offsetRows
	var fillAbove []FillItem
	for fillLines > 0 {
		prev, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			// Ran out of widgets above.
			offsetRows -= fillLines
			break
		}
		pos = prevPos
		topPos = pos

		prevRows := prev.Rows(cols, false)
		if prevRows > 0 {
			// Zero-height widgets are walked over but never filled in.
			fillAbove = append(fillAbove, FillItem{Widget: prev, Position: pos, Rows: prevRows})
		}
		if prevRows > fillLines {
			// Crosses the top edge.
			trimTop = prevRows - fillLines
			break
		}
		fillLines -= prevRows
	}

	trimBottom := max(focusRows+offsetRows-insetRows-rows, 0)

	// Collect the widgets below the focus.
	pos = focusPos
	fillLines = rows - focusRows - offsetRows + insetRows
	var fillBelow []FillItem
	for fillLines > 0 {
		next, nextPos, err := walkerNext(l.body, pos)
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		pos = nextPos

		nextRows := next.Rows(cols, false)
		if nextRows > 0 {
			fillBelow = append(fillBelow, FillItem{Widget: next, Position: pos, Rows: nextRows})
		}
		if nextRows > fillLines {
			// Crosses the bottom edge.
			trimBottom = nextRows - fillLines
			fillLines -= nextRows
			break
		}
		fillLines -= nextRows
	}

	// The bottom ran out of content: consume residual top trim and pull
	// additional widgets into the top fill instead of leaving a gap.
	fillLines = max(fillLines, 0)
	if fillLines > 0 && trimTop > 0 {
		if fillLines <= trimTop {
			trimTop -= fillLines
			offsetRows += fillLines
			fillLines = 0
		} else {
			fillLines -= trimTop
			offsetRows += trimTop
			trimTop = 0
		}
	}
	pos = topPos
	for fillLines > 0 {
		prev, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			break
		}
		pos = prevPos

		prevRows := prev.Rows(cols, false)
		if prevRows > 0 {
			fillAbove = append(fillAbove, FillItem{Widget: prev, Position: pos, Rows: prevRows})
		}
		if prevRows > fillLines {
			trimTop = prevRows - fillLines
			offsetRows += fillLines
			break
		}
		fillLines -= prevRows
		offsetRows += prevRows
	}

	return &VisibleInfo{
		Middle: VisibleMiddle{
			Offset:   offsetRows - insetRows,
			Widget:   focusWidget,
			Position: focusPos,
			Rows:     focusRows,
			Cursor:   cursor,
		},
		Top:    VisibleTopBottom{Trim: trimTop, Fill: fillAbove},
		Bottom: VisibleTopBottom{Trim: trimBottom, Fill: fillBelow},
	}, nil
}

// Render composes the visible widgets into a single canvas of exactly the
// viewport size, validating that every widget renders the height it
// measured. Rendered canvases are cached until the body or viewport state
// changes.
func (l *ListBox) Render(cols, rows int, focus bool) (*Canvas, error) {
	if l.cached != nil && l.cachedCols == cols && l.cachedRows == rows && l.cachedFocus == focus {
		return l.cached, nil
	}

	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return nil, err
	}
	if visible == nil {
		blank := NewSolidCanvas(" ", tcell.StyleDefault, cols, rows)
		l.cached, l.cachedCols, l.cachedRows, l.cachedFocus = blank, cols, rows, focus
		return blank, nil
	}
	middle, top, bottom := visible.Middle, visible.Top, visible.Bottom

	var parts []*Canvas
	var positions []Position
	renderedRows := 0

	// The top fill is ordered nearest-to-focus first; render top-down.
	for i := len(top.Fill) - 1; i >= 0; i-- {
		item := top.Fill[i]
		canvas := item.Widget.Render(cols, false)
		if canvas.Rows() != item.Rows {
			return nil, layoutErrorf(item.Position, "widget measured %d rows but rendered %d", item.Rows, canvas.Rows())
		}
		renderedRows += item.Rows
		parts = append(parts, canvas)
		positions = append(positions, item.Position)
	}

	focusCanvas := middle.Widget.Render(cols, focus)
	if focusCanvas.Rows() != middle.Rows {
		return nil, layoutErrorf(middle.Position, "focus widget measured %d rows but rendered %d", middle.Rows, focusCanvas.Rows())
	}
	if middle.Cursor != nil {
		rendered, ok := focusCanvas.Cursor()
		if !ok || rendered != *middle.Cursor {
			return nil, layoutErrorf(middle.Position, "focus widget measured cursor %v but rendered %v, %v", *middle.Cursor, rendered, ok)
		}
	}
	focusIndex := len(parts)
	renderedRows += middle.Rows
	parts = append(parts, focusCanvas)
	positions = append(positions, middle.Position)

	for _, item := range bottom.Fill {
		canvas := item.Widget.Render(cols, false)
		if canvas.Rows() != item.Rows {
			return nil, layoutErrorf(item.Position, "widget measured %d rows but rendered %d", item.Rows, canvas.Rows())
		}
		renderedRows += item.Rows
		parts = append(parts, canvas)
		positions = append(positions, item.Position)
	}

	combined := CombineCanvases(parts, focusIndex)
	if top.Trim > 0 {
		combined.Trim(top.Trim)
		renderedRows -= top.Trim
	}
	if bottom.Trim > 0 {
		combined.TrimEnd(bottom.Trim)
		renderedRows -= bottom.Trim
	}

	if renderedRows > rows {
		return nil, layoutErrorf(middle.Position, "contents too long: %d rows in a viewport of %d", renderedRows, rows)
	}
	if renderedRows < rows {
		if bottom.Trim != 0 {
			return nil, layoutErrorf(middle.Position, "contents too short with %d rows of bottom trim", bottom.Trim)
		}

		// Probe that everything below really is zero-height before
		// padding; an unaccounted non-zero-height widget means a
		// measurement lied somewhere.
		bottomPos := middle.Position
		if n := len(bottom.Fill); n > 0 {
			bottomPos = bottom.Fill[n-1].Position
		}
		rendered := make(map[Position]struct{}, len(positions))
		for _, position := range positions {
			rendered[position] = struct{}{}
		}
		widget, pos, err := walkerNext(l.body, bottomPos)
		for err == nil && widget != nil {
			if _, ok := rendered[pos]; ok {
				break
			}
			if wRows := widget.Rows(cols, false); wRows > 0 {
				return nil, layoutErrorf(pos, "contents too short: unrendered widget with %d rows", wRows)
			}
			widget, pos, err = walkerNext(l.body, pos)
		}
		if err != nil {
			return nil, err
		}
		combined.PadBottom(rows - renderedRows)
	}

	l.cached, l.cachedCols, l.cachedRows, l.cachedFocus = combined, cols, rows, focus
	return combined, nil
}

// CursorCoords returns the cursor position within the viewport, if the
// focus widget shows one and it is inside the viewport.
func (l *ListBox) CursorCoords(cols, rows int) (CursorCoords, bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil || visible == nil || visible.Middle.Cursor == nil {
		return CursorCoords{}, false, err
	}
	coords := *visible.Middle.Cursor
	coords.Y += visible.Middle.Offset
	if coords.Y < 0 || coords.Y >= rows {
		return CursorCoords{}, false, nil
	}
	return coords, true, nil
}

// completePendingFocus resolves a deferred focus or alignment request now
// that the viewport size is known.
func (l *ListBox) completePendingFocus(cols, rows int, focus bool) error {
	l.invalidate()
	switch {
	case l.pending.kind == pendingFirstSelectable:
		l.pending = pendingFocus{}
		l.valign = nil
		return l.focusFirstSelectable(cols, rows, focus)
	case l.valign != nil:
		request := *l.valign
		l.pending = pendingFocus{}
		l.valign = nil
		return l.completeValign(cols, rows, focus, request)
	case l.pending.kind == pendingRestore:
		pending := l.pending
		l.pending = pendingFocus{}
		return l.restoreFocus(cols, rows, focus, pending)
	}
	return nil
}

// focusFirstSelectable moves the focus to the first visible selectable
// widget below the current, unselectable, focus. It does nothing when the
// focus is already selectable.
func (l *ListBox) focusFirstSelectable(cols, rows int, focus bool) error {
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil || visible == nil {
		return err
	}
	if visible.Middle.Widget.Selectable() {
		return nil
	}

	fillBelow := visible.Bottom.Fill
	if visible.Bottom.Trim > 0 && len(fillBelow) > 0 {
		fillBelow = fillBelow[:len(fillBelow)-1]
	}
	newRowOffset := visible.Middle.Offset + visible.Middle.Rows
	for _, item := range fillBelow {
		if item.Widget.Selectable() {
			if err := l.body.SetFocus(item.Position); err != nil {
				return err
			}
			return l.ShiftFocus(cols, rows, newRowOffset)
		}
		newRowOffset += item.Rows
	}
	return nil
}

func (l *ListBox) completeValign(cols, rows int, focus bool, request pendingValign) error {
	focusWidget, _ := l.body.Focus()
	if focusWidget == nil {
		return nil
	}
	focusRows := focusWidget.Rows(cols, focus)
	top := (rows - focusRows) * request.percent / 100
	top = max(top, 0)
	if rows > 0 && top >= rows {
		top = rows - 1
	}
	return l.ShiftFocus(cols, rows, top)
}

// restoreFocus finishes SetFocus: if the old focus is still among the
// visible widgets the new focus keeps the current view; otherwise the new
// focus is placed against the edge it was approached from, or centered.
func (l *ListBox) restoreFocus(cols, rows int, focus bool, pending pendingFocus) error {
	_, position := l.body.Focus()
	if pending.position == position {
		return nil
	}

	// Restore the old focus temporarily to measure the current view.
	if err := l.body.SetFocus(pending.position); err != nil {
		return err
	}
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return err
	}
	if visible == nil {
		return nil
	}

	offset := visible.Middle.Offset
	for _, item := range visible.Top.Fill {
		offset -= item.Rows
		if item.Position == position {
			return l.ChangeFocus(cols, rows, item.Position, offset, Below, nil, SnapRowsDefault)
		}
	}
	offset = visible.Middle.Offset + visible.Middle.Rows
	for _, item := range visible.Bottom.Fill {
		if item.Position == position {
			return l.ChangeFocus(cols, rows, item.Position, offset, Above, nil, SnapRowsDefault)
		}
		offset += item.Rows
	}

	// Not among the visible widgets: place by arrival direction.
	if err := l.body.SetFocus(position); err != nil {
		return err
	}
	widget, _ := l.body.Focus()
	widgetRows := widget.Rows(cols, focus)
	var offsetInset int
	switch pending.comingFrom {
	case Below:
		offsetInset = 0
	case Above:
		offsetInset = rows - widgetRows
	default:
		offsetInset = (rows - widgetRows) / 2
	}
	return l.ShiftFocus(cols, rows, offsetInset)
}

// ShiftFocus moves the vertical placement of the current focus widget. A
// non-negative offsetInset is the number of rows between the viewport top
// and the focus top; a negative one is the number of focus rows hidden
// above the viewport top.
func (l *ListBox) ShiftFocus(cols, rows, offsetInset int) error {
	if offsetInset >= 0 {
		if offsetInset >= rows {
			return fmt.Errorf("%w: offset %d in a viewport of %d rows", ErrInvalidOffset, offsetInset, rows)
		}
		l.offsetRows = offsetInset
		l.insetNum, l.insetDen = 0, 1
	} else {
		target, _ := l.body.Focus()
		targetRows := target.Rows(cols, true)
		if offsetInset+targetRows <= 0 {
			return fmt.Errorf("%w: inset %d with only %d rows in the focus widget", ErrInvalidOffset, offsetInset, targetRows)
		}
		l.offsetRows = 0
		l.insetNum, l.insetDen = -offsetInset, targetRows
	}
	l.invalidate()
	return nil
}

// UpdatePrefColFromFocus refreshes the sticky cursor column from the focus
// widget.
func (l *ListBox) UpdatePrefColFromFocus(cols int) {
	widget, _ := l.body.Focus()
	if widget == nil {
		return
	}
	if pw, ok := widget.(PrefColWidget); ok {
		if col, ok := pw.PrefCol(cols); ok {
			l.prefCol = col
			return
		}
	}
	if cw, ok := widget.(CursorWidget); ok {
		if coords, ok := cw.CursorCoords(cols); ok {
			l.prefCol = coords.X
		}
	}
}

// ChangeFocus is the single mutating primitive behind all navigation: it
// moves the focus to position, places it at offsetInset, snaps a selectable
// target back into the viewport within snapRows extra rows when arriving
// from a known direction, and finally tries to place the cursor. Rows are
// attempted outward from the arrival edge until the widget accepts the
// cursor. Pass SnapRowsDefault for the default snap budget.
func (l *ListBox) ChangeFocus(cols, rows int, position Position, offsetInset int, comingFrom FocusDirection, cursor *CursorTarget, snapRows int) error {
	// The sticky column must reflect the widget we are leaving.
	if cursor != nil {
		l.prefCol = cursor.Col
	} else {
		l.UpdatePrefColFromFocus(cols)
	}

	l.invalidate()
	if err := l.body.SetFocus(position); err != nil {
		return err
	}
	target, _ := l.body.Focus()
	targetRows := target.Rows(cols, true)
	if snapRows == SnapRowsDefault {
		snapRows = rows - 1
	}

	// Snap a selectable target that would land outside the viewport.
	alignTop := 0
	alignBottom := rows - targetRows

	if comingFrom == Above && target.Selectable() && offsetInset > alignBottom {
		switch {
		case snapRows >= offsetInset-alignBottom:
			offsetInset = alignBottom
		case snapRows >= offsetInset-alignTop:
			offsetInset = alignTop
		default:
			offsetInset -= snapRows
		}
	}
	if comingFrom == Below && target.Selectable() && offsetInset < alignTop {
		switch {
		case snapRows >= alignTop-offsetInset:
			offsetInset = alignTop
		case snapRows >= alignBottom-offsetInset:
			offsetInset = alignBottom
		default:
			offsetInset += snapRows
		}
	}

	if offsetInset >= 0 {
		l.offsetRows = offsetInset
		l.insetNum, l.insetDen = 0, 1
	} else {
		if offsetInset+targetRows <= 0 {
			return fmt.Errorf("%w: inset %d with only %d rows in the target", ErrInvalidOffset, offsetInset, targetRows)
		}
		l.offsetRows = 0
		l.insetNum, l.insetDen = -offsetInset, targetRows
	}

	if cursor == nil {
		if comingFrom == NoDirection {
			// Cursor placement needs either a row or a direction.
			return nil
		}
		col := l.prefCol
		if col < 0 {
			col = 0
		}
		cursor = &CursorTarget{Col: col}
	}

	mover, ok := target.(CursorMover)
	if !ok {
		return nil
	}

	var attemptRows []int
	if !cursor.HasRow {
		// Only the column is known: start from the arrival edge and
		// move inward.
		switch comingFrom {
		case Above:
			for row := 0; row < targetRows; row++ {
				attemptRows = append(attemptRows, row)
			}
		case Below:
			for row := targetRows; row >= 0; row-- {
				attemptRows = append(attemptRows, row)
			}
		default:
			return fmt.Errorf("%w: cursor row unspecified and no arrival direction", ErrInvalidOffset)
		}
	} else {
		if cursor.Row < 0 || cursor.Row >= targetRows {
			return fmt.Errorf("%w: cursor row %d outside target of %d rows", ErrInvalidOffset, cursor.Row, targetRows)
		}
		// Start from the preferred row and back off toward the
		// arrival edge.
		switch comingFrom {
		case Above:
			for row := cursor.Row; row >= 0; row-- {
				attemptRows = append(attemptRows, row)
			}
		case Below:
			for row := cursor.Row; row < targetRows; row++ {
				attemptRows = append(attemptRows, row)
			}
		default:
			attemptRows = []int{cursor.Row}
		}
	}

	for _, row := range attemptRows {
		if mover.MoveCursorTo(cols, cursor.Col, row) {
			break
		}
	}
	return nil
}

// MakeCursorVisible shifts the focus widget so that its cursor is inside
// the viewport.
func (l *ListBox) MakeCursorVisible(cols, rows int) error {
	focusWidget, _ := l.body.Focus()
	if focusWidget == nil || !focusWidget.Selectable() {
		return nil
	}
	cw, ok := focusWidget.(CursorWidget)
	if !ok {
		return nil
	}
	coords, ok := cw.CursorCoords(cols)
	if !ok {
		return nil
	}
	offsetRows, insetRows, err := l.focusOffsetInset(cols)
	if err != nil {
		return err
	}
	if coords.Y < insetRows {
		return l.ShiftFocus(cols, rows, -coords.Y)
	}
	if offsetRows-insetRows+coords.Y >= rows {
		return l.ShiftFocus(cols, rows, rows-coords.Y-1)
	}
	return nil
}

// Keypress moves the selection through the list, scrolling when necessary.
// The event goes to the focus widget first; unconsumed events are matched
// against the command map. It returns false when the event was not handled
// and should bubble to outer key routing, which is the normal outcome of
// scrolling off either end of the list.
func (l *ListBox) Keypress(cols, rows int, event *tcell.EventKey) (bool, error) {
	if l.pending.kind != pendingNone || l.valign != nil {
		if err := l.completePendingFocus(cols, rows, true); err != nil {
			return false, err
		}
	}

	focusWidget, _ := l.body.Focus()
	if focusWidget == nil {
		return false, nil
	}

	if focusWidget.Selectable() {
		if handler, ok := focusWidget.(KeyHandler); ok && handler.Keypress(cols, event) {
			l.invalidate()
			if err := l.MakeCursorVisible(cols, rows); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	switch l.commands.Lookup(event) {
	case CommandUp:
		return l.keypressUp(cols, rows)
	case CommandDown:
		return l.keypressDown(cols, rows)
	case CommandPageUp:
		return l.keypressPageUp(cols, rows)
	case CommandPageDown:
		return l.keypressPageDown(cols, rows)
	case CommandTop:
		return l.keypressEdge(cols, rows, false)
	case CommandBottom:
		return l.keypressEdge(cols, rows, true)
	}
	return false, nil
}

// keypressEdge jumps to the first or last position and aligns it with the
// matching viewport edge.
func (l *ListBox) keypressEdge(cols, rows int, last bool) (bool, error) {
	position, ok, err := l.edgePosition(last)
	if err != nil || !ok {
		return false, err
	}
	if err := l.SetFocus(position, NoDirection); err != nil {
		return false, err
	}
	if last {
		l.SetFocusValign(VAlignBottom)
	} else {
		l.SetFocusValign(VAlignTop)
	}
	return true, nil
}

func (l *ListBox) edgePosition(last bool) (Position, bool, error) {
	if pe, ok := l.body.(PositionsEnumerable); ok {
		positions := pe.Positions(last)
		if len(positions) == 0 {
			return nil, false, nil
		}
		return positions[0], true, nil
	}

	// A wrapping body has no first or last position to jump to.
	if wa, ok := l.body.(WrapAware); ok && wa.WrapsAround() {
		return nil, false, nil
	}

	focusWidget, pos := l.body.Focus()
	if focusWidget == nil {
		return nil, false, nil
	}
	step := walkerPrev
	if last {
		step = walkerNext
	}
	seen := map[Position]struct{}{pos: {}}
	for {
		widget, nextPos, err := step(l.body, pos)
		if err != nil {
			return nil, false, err
		}
		if widget == nil {
			return pos, true, nil
		}
		if _, ok := seen[nextPos]; ok {
			return nil, false, nil
		}
		seen[nextPos] = struct{}{}
		pos = nextPos
	}
}

func (l *ListBox) keypressUp(cols, rows int) (bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if visible == nil {
		return false, nil
	}
	middle, top := visible.Middle, visible.Top

	focusRowOffset := middle.Offset
	focusWidget := middle.Widget
	cursor := middle.Cursor
	rowOffset := focusRowOffset

	// Look for a selectable widget among the visible ones above.
	pos := middle.Position
	var widget Widget
	widgetRows := 0
	for _, item := range top.Fill {
		widget, pos, widgetRows = item.Widget, item.Position, item.Rows
		rowOffset -= item.Rows
		if item.Rows > 0 && widget.Selectable() {
			return true, l.ChangeFocus(cols, rows, pos, rowOffset, Below, nil, SnapRowsDefault)
		}
	}

	// At this point we must scroll.
	rowOffset++
	l.invalidate()

	for rowOffset > 0 {
		var prevPos Position
		widget, prevPos, err = walkerPrev(l.body, pos)
		if err != nil {
			return false, err
		}
		if widget == nil {
			// Cannot scroll any further; let the key bubble.
			return false, nil
		}
		pos = prevPos
		widgetRows = widget.Rows(cols, true)
		rowOffset -= widgetRows
		if widgetRows > 0 && widget.Selectable() {
			return true, l.ChangeFocus(cols, rows, pos, rowOffset, Below, nil, SnapRowsDefault)
		}
	}

	if !focusWidget.Selectable() || focusRowOffset+1 >= rows {
		// Take the topmost widget when the focus is unselectable or
		// has scrolled out of view.
		if widget == nil {
			return true, l.ShiftFocus(cols, rows, rowOffset)
		}
		return true, l.ChangeFocus(cols, rows, pos, rowOffset, Below, nil, SnapRowsDefault)
	}

	if cursor != nil && cursor.Y+focusRowOffset+1 >= rows {
		// The cursor would pin the view in place; choose another
		// focus instead.
		if widget == nil {
			var prevPos Position
			widget, prevPos, err = walkerPrev(l.body, pos)
			if err != nil {
				return false, err
			}
			if widget == nil {
				return true, nil
			}
			pos = prevPos
			widgetRows = widget.Rows(cols, true)
			rowOffset -= widgetRows
		}
		if -rowOffset >= widgetRows {
			// Must scroll further than one line.
			rowOffset = -(widgetRows - 1)
		}
		return true, l.ChangeFocus(cols, rows, pos, rowOffset, Below, nil, SnapRowsDefault)
	}

	// If all else fails, just shift the current focus.
	return true, l.ShiftFocus(cols, rows, focusRowOffset+1)
}

func (l *ListBox) keypressDown(cols, rows int) (bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if visible == nil {
		return false, nil
	}
	middle, bottom := visible.Middle, visible.Bottom

	focusRowOffset := middle.Offset
	focusRows := middle.Rows
	focusWidget := middle.Widget
	cursor := middle.Cursor

	rowOffset := focusRowOffset + focusRows
	widgetRows := focusRows

	// Look for a selectable widget among the visible ones below.
	pos := middle.Position
	var widget Widget
	for _, item := range bottom.Fill {
		widget, pos, widgetRows = item.Widget, item.Position, item.Rows
		if item.Rows > 0 && widget.Selectable() {
			return true, l.ChangeFocus(cols, rows, pos, rowOffset, Above, nil, SnapRowsDefault)
		}
		rowOffset += item.Rows
	}

	// At this point we must scroll.
	rowOffset--
	l.invalidate()

	for rowOffset < rows {
		var nextPos Position
		widget, nextPos, err = walkerNext(l.body, pos)
		if err != nil {
			return false, err
		}
		if widget == nil {
			// Cannot scroll any further; let the key bubble.
			return false, nil
		}
		pos = nextPos
		widgetRows = widget.Rows(cols, false)
		if widgetRows > 0 && widget.Selectable() {
			return true, l.ChangeFocus(cols, rows, pos, rowOffset, Above, nil, SnapRowsDefault)
		}
		rowOffset += widgetRows
	}

	if !focusWidget.Selectable() || focusRowOffset+focusRows-1 <= 0 {
		// Take the bottommost widget when the focus is unselectable
		// or has scrolled out of view.
		if widget == nil {
			return true, l.ShiftFocus(cols, rows, rowOffset-widgetRows)
		}
		return true, l.ChangeFocus(cols, rows, pos, rowOffset-widgetRows, Above, nil, SnapRowsDefault)
	}

	if cursor != nil && cursor.Y+focusRowOffset-1 < 0 {
		// The cursor would pin the view in place; choose another
		// focus instead.
		if widget == nil {
			var nextPos Position
			widget, nextPos, err = walkerNext(l.body, pos)
			if err != nil {
				return false, err
			}
			if widget == nil {
				return true, nil
			}
			pos = nextPos
		} else {
			rowOffset -= widgetRows
		}
		if rowOffset >= rows {
			// Must scroll further than one line.
			rowOffset = rows - 1
		}
		return true, l.ChangeFocus(cols, rows, pos, rowOffset, Above, nil, SnapRowsDefault)
	}

	// If all else fails, just shift the current focus.
	return true, l.ShiftFocus(cols, rows, focusRowOffset-1)
}

// pageCandidate is one potential focus target considered by the paging
// handlers, at the row offset its naive placement would give it.
type pageCandidate struct {
	rowOffset int
	widget    Widget
	position  Position
	rows      int
}

func (l *ListBox) keypressPageUp(cols, rows int) (bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if visible == nil {
		return false, nil
	}
	middle, top := visible.Middle, visible.Top

	rowOffset := middle.Offset
	focusWidget, focusPos, focusRows, cursor := middle.Widget, middle.Position, middle.Rows, middle.Cursor

	topmostVisible := rowOffset

	// The scroll anchor: the viewport edge for an unselectable focus, the
	// cursor row when one exists, else the focus top edge when visible.
	var scrollFromRow int
	switch {
	case !focusWidget.Selectable():
		scrollFromRow = topmostVisible
	case cursor != nil:
		scrollFromRow = -cursor.Y
	case rowOffset >= 0:
		scrollFromRow = 0
	default:
		scrollFromRow = topmostVisible
	}

	// The slack between the anchor move and the naive one-page move is
	// the budget for snapping to a new focus.
	snapRows := topmostVisible - scrollFromRow
	rowOffset = scrollFromRow + rows

	// Gather candidate widgets, starting with the current focus.
	candidates := []pageCandidate{{rowOffset, focusWidget, focusPos, focusRows}}
	pos := focusPos
	for _, item := range top.Fill {
		rowOffset -= item.Rows
		pos = item.Position
		candidates = append(candidates, pageCandidate{rowOffset, item.Widget, item.Position, item.Rows})
	}
	// Add the newly visible ones, including those within the snap budget.
	snapRegionStart := len(candidates)
	for rowOffset > -snapRows {
		widget, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return false, err
		}
		if widget == nil {
			break
		}
		pos = prevPos
		wRows := widget.Rows(cols, false)
		rowOffset -= wRows
		if rowOffset > 0 {
			snapRegionStart++
		}
		candidates = append(candidates, pageCandidate{rowOffset, widget, pos, wRows})
	}

	// Couldn't fill the top: slide every offset up.
	if last := candidates[len(candidates)-1]; last.rowOffset > 0 {
		adjust := -last.rowOffset
		for i := range candidates {
			candidates[i].rowOffset += adjust
		}
	}

	// Drop the old focus if it ends up past the bottom edge.
	shiftRowOffset := candidates[0].rowOffset
	if candidates[0].rowOffset >= rows {
		candidates = candidates[1:]
		snapRegionStart--
	}

	l.UpdatePrefColFromFocus(cols)
	prefCol := l.prefCol
	if prefCol < 0 {
		prefCol = 0
	}

	// Search the snap region first, then the rest outward from it.
	searchOrder := make([]int, 0, len(candidates))
	for i := snapRegionStart; i < len(candidates); i++ {
		searchOrder = append(searchOrder, i)
	}
	for i := snapRegionStart - 1; i >= 0; i-- {
		searchOrder = append(searchOrder, i)
	}

	badChoices := make(map[int]bool)
	cutOffSelectableChosen := false
	for _, i := range searchOrder {
		candidate := candidates[i]
		if !candidate.widget.Selectable() || candidate.rows == 0 {
			continue
		}

		prefRow := max(0, -candidate.rowOffset)

		if candidate.rows+candidate.rowOffset <= 0 {
			// Completely within the snap region: snap to its last
			// row and shrink the remaining budget accordingly.
			err = l.ChangeFocus(cols, rows, candidate.position, -(candidate.rows - 1), Below,
				&CursorTarget{Col: prefCol, Row: candidate.rows - 1, HasRow: true},
				snapRows-(-candidate.rowOffset-(candidate.rows-1)))
		} else {
			err = l.ChangeFocus(cols, rows, candidate.position, candidate.rowOffset, Below,
				&CursorTarget{Col: prefCol, Row: prefRow, HasRow: true}, snapRows)
		}
		if err != nil {
			return false, err
		}

		// Find out where that actually puts us.
		check, err := l.CalculateVisible(cols, rows, true)
		if err != nil {
			return false, err
		}
		if check == nil {
			return true, nil
		}
		actual := check.Middle.Offset

		// Discard the choice if a fixed cursor reduced the scroll
		// amount (absolute last resort).
		if actual > candidate.rowOffset+snapRows || actual < candidate.rowOffset {
			badChoices[i] = true
			continue
		}
		// Also discard if clipped off the top edge (second last
		// resort).
		if actual < 0 {
			badChoices[i] = true
			cutOffSelectableChosen = true
			continue
		}
		return true, nil
	}

	// Anything selectable beats what follows.
	if cutOffSelectableChosen {
		return true, nil
	}

	// Still nothing: take the topmost widget, selectable or not.
	order := make([]int, 0, 2*len(searchOrder))
	for _, i := range searchOrder {
		if !badChoices[i] {
			order = append(order, i)
		}
	}
	order = append(order, searchOrder...)
	for _, i := range order {
		candidate := candidates[i]
		if candidate.position == focusPos || candidate.rows == 0 {
			continue
		}
		offset, snap := candidate.rowOffset, snapRows
		if candidate.rows+offset <= 0 {
			snap -= -offset - (candidate.rows - 1)
			offset = -(candidate.rows - 1)
		}
		return true, l.ChangeFocus(cols, rows, candidate.position, offset, Below, nil, snap)
	}

	// No choices at all: just shift the current focus.
	if err := l.ShiftFocus(cols, rows, min(rows-1, shiftRowOffset)); err != nil {
		return false, err
	}

	// Pathological case: with very few widgets the shift may fall short
	// of a full page. Pull in one more widget at the extreme edge.
	check, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if check == nil || check.Middle.Offset >= shiftRowOffset {
		return true, nil
	}
	if len(candidates) == 0 {
		return true, nil
	}
	lastPos := candidates[len(candidates)-1].position
	widget, prevPos, err := walkerPrev(l.body, lastPos)
	if err != nil {
		return false, err
	}
	if widget == nil {
		// No dice, we're stuck here.
		return true, nil
	}
	wRows := widget.Rows(cols, true)
	if wRows == 0 {
		return true, l.ChangeFocus(cols, rows, prevPos, 0, Below, nil, 0)
	}
	return true, l.ChangeFocus(cols, rows, prevPos, -(wRows - 1), Below,
		&CursorTarget{Col: prefCol, Row: wRows - 1, HasRow: true}, 0)
}

func (l *ListBox) keypressPageDown(cols, rows int) (bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if visible == nil {
		return false, nil
	}
	middle, bottom := visible.Middle, visible.Bottom

	rowOffset := middle.Offset
	focusWidget, focusPos, focusRows, cursor := middle.Widget, middle.Position, middle.Rows, middle.Cursor

	bottomEdge := rows - rowOffset

	// The scroll anchor, mirrored from page up: the bottom edge for an
	// unselectable focus, the row below the cursor when one exists, else
	// the focus bottom edge when visible.
	var scrollFromRow int
	switch {
	case !focusWidget.Selectable():
		scrollFromRow = bottomEdge
	case cursor != nil:
		scrollFromRow = cursor.Y + 1
	case bottomEdge >= focusRows:
		scrollFromRow = focusRows
	default:
		scrollFromRow = bottomEdge
	}

	snapRows := bottomEdge - scrollFromRow
	rowOffset = -scrollFromRow

	// Gather candidate widgets, starting with the current focus.
	candidates := []pageCandidate{{rowOffset, focusWidget, focusPos, focusRows}}
	pos := focusPos
	rowOffset += focusRows
	for _, item := range bottom.Fill {
		candidates = append(candidates, pageCandidate{rowOffset, item.Widget, item.Position, item.Rows})
		pos = item.Position
		rowOffset += item.Rows
	}
	// Add the newly visible ones, including those within the snap budget.
	snapRegionStart := len(candidates)
	for rowOffset < rows+snapRows {
		widget, nextPos, err := walkerNext(l.body, pos)
		if err != nil {
			return false, err
		}
		if widget == nil {
			break
		}
		pos = nextPos
		wRows := widget.Rows(cols, false)
		candidates = append(candidates, pageCandidate{rowOffset, widget, pos, wRows})
		rowOffset += wRows
		if rowOffset < rows {
			snapRegionStart++
		}
	}

	// Couldn't fill the bottom: slide every offset down.
	if last := candidates[len(candidates)-1]; last.rowOffset+last.rows < rows {
		adjust := rows - (last.rowOffset + last.rows)
		for i := range candidates {
			candidates[i].rowOffset += adjust
		}
	}

	// Drop the old focus if it ends up past the top edge.
	shiftRowOffset := candidates[0].rowOffset
	if first := candidates[0]; first.rowOffset+first.rows <= 0 {
		candidates = candidates[1:]
		snapRegionStart--
	}

	l.UpdatePrefColFromFocus(cols)
	prefCol := l.prefCol
	if prefCol < 0 {
		prefCol = 0
	}

	// Search the snap region first, then the rest outward from it.
	searchOrder := make([]int, 0, len(candidates))
	for i := snapRegionStart; i < len(candidates); i++ {
		searchOrder = append(searchOrder, i)
	}
	for i := snapRegionStart - 1; i >= 0; i-- {
		searchOrder = append(searchOrder, i)
	}

	badChoices := make(map[int]bool)
	cutOffSelectableChosen := false
	for _, i := range searchOrder {
		candidate := candidates[i]
		if !candidate.widget.Selectable() || candidate.rows == 0 {
			continue
		}

		prefRow := min(rows-candidate.rowOffset-1, candidate.rows-1)

		if candidate.rowOffset >= rows {
			// Completely within the snap region: snap to its first
			// row and shrink the remaining budget accordingly.
			err = l.ChangeFocus(cols, rows, candidate.position, rows-1, Above,
				&CursorTarget{Col: prefCol, Row: 0, HasRow: true},
				snapRows+rows-candidate.rowOffset-1)
		} else {
			err = l.ChangeFocus(cols, rows, candidate.position, candidate.rowOffset, Above,
				&CursorTarget{Col: prefCol, Row: prefRow, HasRow: true}, snapRows)
		}
		if err != nil {
			return false, err
		}

		// Find out where that actually puts us.
		check, err := l.CalculateVisible(cols, rows, true)
		if err != nil {
			return false, err
		}
		if check == nil {
			return true, nil
		}
		actual := check.Middle.Offset

		// Discard the choice if a fixed cursor reduced the scroll
		// amount (absolute last resort).
		if actual < candidate.rowOffset-snapRows || actual > candidate.rowOffset {
			badChoices[i] = true
			continue
		}
		// Also discard if clipped off the bottom edge (second last
		// resort).
		if actual+candidate.rows > rows {
			badChoices[i] = true
			cutOffSelectableChosen = true
			continue
		}
		return true, nil
	}

	// Anything selectable beats what follows.
	if cutOffSelectableChosen {
		return true, nil
	}

	// Still nothing: take the bottommost widget, selectable or not.
	order := make([]int, 0, 2*len(searchOrder))
	for _, i := range searchOrder {
		if !badChoices[i] {
			order = append(order, i)
		}
	}
	order = append(order, searchOrder...)
	for _, i := range order {
		candidate := candidates[i]
		if candidate.position == focusPos || candidate.rows == 0 {
			continue
		}
		offset, snap := candidate.rowOffset, snapRows
		if offset >= rows {
			snap = offset - (rows - 1)
			offset = rows - 1
		}
		return true, l.ChangeFocus(cols, rows, candidate.position, offset, Above, nil, snap)
	}

	// No choices at all: just shift the current focus.
	if err := l.ShiftFocus(cols, rows, max(1-focusRows, shiftRowOffset)); err != nil {
		return false, err
	}

	// Pathological case: with very few widgets the shift may fall short
	// of a full page. Pull in one more widget at the extreme edge.
	check, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if check == nil || check.Middle.Offset <= shiftRowOffset {
		return true, nil
	}
	if len(candidates) == 0 {
		return true, nil
	}
	lastPos := candidates[len(candidates)-1].position
	widget, nextPos, err := walkerNext(l.body, lastPos)
	if err != nil {
		return false, err
	}
	if widget == nil {
		// No dice, we're stuck here.
		return true, nil
	}
	if widget.Rows(cols, true) == 0 {
		return true, l.ChangeFocus(cols, rows, nextPos, rows-1, Above, nil, 0)
	}
	return true, l.ChangeFocus(cols, rows, nextPos, rows-1, Above,
		&CursorTarget{Col: prefCol, Row: 0, HasRow: true}, 0)
}

// MouseEvent routes a mouse event at viewport cell (col, row) to the widget
// under it. A left button press on a selectable widget moves the focus; the
// wheel scrolls by one line.
func (l *ListBox) MouseEvent(cols, rows int, event *tcell.EventMouse, col, row int, focus bool) (bool, error) {
	visible, err := l.CalculateVisible(cols, rows, true)
	if err != nil {
		return false, err
	}
	if visible == nil {
		return false, nil
	}

	entries := make([]FillItem, 0, len(visible.Top.Fill)+1+len(visible.Bottom.Fill))
	for i := len(visible.Top.Fill) - 1; i >= 0; i-- {
		entries = append(entries, visible.Top.Fill[i])
	}
	entries = append(entries, FillItem{
		Widget:   visible.Middle.Widget,
		Position: visible.Middle.Position,
		Rows:     visible.Middle.Rows,
	})
	entries = append(entries, visible.Bottom.Fill...)

	widgetRow := -visible.Top.Trim
	var target FillItem
	found := false
	for _, entry := range entries {
		if widgetRow+entry.Rows > row {
			target = entry
			found = true
			break
		}
		widgetRow += entry.Rows
	}
	if !found {
		return false, nil
	}

	buttons := event.Buttons()
	if buttons&tcell.Button1 != 0 && target.Widget.Selectable() {
		if err := l.ChangeFocus(cols, rows, target.Position, widgetRow, NoDirection, nil, SnapRowsDefault); err != nil {
			return false, err
		}
	}

	if mt, ok := target.Widget.(MouseTarget); ok {
		targetFocus := focus && target.Position == visible.Middle.Position
		if mt.MouseEvent(cols, event, col, row-widgetRow, targetFocus) {
			l.invalidate()
			return true, nil
		}
	}

	if buttons&tcell.WheelUp != 0 {
		return l.keypressUp(cols, rows)
	}
	if buttons&tcell.WheelDown != 0 {
		return l.keypressDown(cols, rows)
	}
	return buttons&tcell.Button1 != 0 && target.Widget.Selectable(), nil
}

// EndsVisible reports which ends of the list are currently visible. An
// empty list box has both ends visible.
func (l *ListBox) EndsVisible(cols, rows int, focus bool) (Edges, error) {
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return 0, err
	}
	if visible == nil {
		return EdgeTop | EdgeBottom, nil
	}

	var result Edges
	if visible.Bottom.Trim == 0 {
		rowOffset := visible.Middle.Offset + visible.Middle.Rows
		pos := visible.Middle.Position
		for _, item := range visible.Bottom.Fill {
			rowOffset += item.Rows
			pos = item.Position
		}
		if rowOffset < rows {
			result |= EdgeBottom
		} else {
			widget, _, err := walkerNext(l.body, pos)
			if err != nil {
				return 0, err
			}
			if widget == nil {
				result |= EdgeBottom
			}
		}
	}

	if visible.Top.Trim == 0 {
		pos := visible.Middle.Position
		if n := len(visible.Top.Fill); n > 0 {
			pos = visible.Top.Fill[n-1].Position
		}
		widget, _, err := walkerPrev(l.body, pos)
		if err != nil {
			return 0, err
		}
		if widget == nil {
			result |= EdgeTop
		}
	}

	return result, nil
}

// Positions returns every position of the body in order, last to first when
// reverse is set. Without a PositionsEnumerable body it walks outward from
// the focus in both directions and stitches the results into sequence order.
func (l *ListBox) Positions(reverse bool) ([]Position, error) {
	if pe, ok := l.body.(PositionsEnumerable); ok {
		return pe.Positions(reverse), nil
	}

	focusWidget, focusPos := l.body.Focus()
	if focusWidget == nil {
		return nil, nil
	}

	seen := map[Position]struct{}{focusPos: {}}
	var down, up []Position
	pos := focusPos
	for {
		widget, nextPos, err := walkerNext(l.body, pos)
		if err != nil {
			return nil, err
		}
		if widget == nil {
			break
		}
		if _, ok := seen[nextPos]; ok {
			break
		}
		seen[nextPos] = struct{}{}
		down = append(down, nextPos)
		pos = nextPos
	}
	pos = focusPos
	for {
		widget, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return nil, err
		}
		if widget == nil {
			break
		}
		if _, ok := seen[prevPos]; ok {
			break
		}
		seen[prevPos] = struct{}{}
		up = append(up, prevPos)
		pos = prevPos
	}

	result := make([]Position, 0, len(up)+len(down)+1)
	if reverse {
		for i := len(down) - 1; i >= 0; i-- {
			result = append(result, down[i])
		}
		result = append(result, focusPos)
		result = append(result, up...)
	} else {
		for i := len(up) - 1; i >= 0; i-- {
			result = append(result, up[i])
		}
		result = append(result, focusPos)
		result = append(result, down...)
	}
	return result, nil
}
