package urwid

import "fmt"

// lenHint returns the body's exact or estimated item count.
func (l *ListBox) lenHint() (int, bool) {
	if sized, ok := l.body.(Sized); ok {
		return sized.Len(), true
	}
	if est, ok := l.body.(LengthEstimable); ok {
		return est.LenHint(), true
	}
	return 0, false
}

// checkSupportScrolling verifies that the body allows absolute scroll
// queries: it must know its length, and it must not wrap around.
func (l *ListBox) checkSupportScrolling() error {
	if _, ok := l.lenHint(); !ok {
		return fmt.Errorf("%w: body cannot report its length", ErrScrollUnsupported)
	}
	if wrap, ok := l.body.(WrapAware); ok && wrap.WrapsAround() {
		return fmt.Errorf("%w: body wraps around, scroll position is undefined", ErrScrollUnsupported)
	}
	return nil
}

// ScrollPosition returns the number of content rows hidden above the
// viewport top.
func (l *ListBox) ScrollPosition(cols, rows int, focus bool) (int, error) {
	if err := l.checkSupportScrolling(); err != nil {
		return 0, err
	}
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return 0, err
	}
	if visible == nil {
		return 0, nil
	}

	startRow := visible.Top.Trim
	pos := visible.Middle.Position
	if n := len(visible.Top.Fill); n > 0 {
		pos = visible.Top.Fill[n-1].Position
	}
	for {
		widget, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return 0, err
		}
		if widget == nil {
			return startRow, nil
		}
		pos = prevPos
		startRow += widget.Rows(cols, false)
	}
}

// RowsMax returns the total height of the whole list in rows. The result
// is cached per width until the body changes.
func (l *ListBox) RowsMax(cols, rows int, focus bool) (int, error) {
	if err := l.checkSupportScrolling(); err != nil {
		return 0, err
	}
	if l.rowsMaxCached != 0 && l.rowsMaxCols == cols {
		return l.rowsMaxCached, nil
	}

	total := 0
	focusWidget, focusPos := l.body.Focus()
	if focusWidget != nil {
		total = focusWidget.Rows(cols, focus)
		pos := focusPos
		for {
			widget, prevPos, err := walkerPrev(l.body, pos)
			if err != nil {
				return 0, err
			}
			if widget == nil {
				break
			}
			pos = prevPos
			total += widget.Rows(cols, false)
		}
		pos = focusPos
		for {
			widget, nextPos, err := walkerNext(l.body, pos)
			if err != nil {
				return 0, err
			}
			if widget == nil {
				break
			}
			pos = nextPos
			total += widget.Rows(cols, false)
		}
	}
	l.rowsMaxCached, l.rowsMaxCols = total, cols
	return total, nil
}

// VisibleAmount returns the number of widgets at least partially inside the
// viewport. It is never less than one, so relative scroll consumers can
// divide by it.
func (l *ListBox) VisibleAmount(cols, rows int, focus bool) (int, error) {
	if err := l.checkSupportScrolling(); err != nil {
		return 0, err
	}
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return 0, err
	}
	if visible == nil {
		return 1, nil
	}
	return 1 + len(visible.Top.Fill) + len(visible.Bottom.Fill), nil
}

// FirstVisiblePosition returns the number of widgets above the first
// visible one.
func (l *ListBox) FirstVisiblePosition(cols, rows int, focus bool) (int, error) {
	if err := l.checkSupportScrolling(); err != nil {
		return 0, err
	}
	visible, err := l.CalculateVisible(cols, rows, focus)
	if err != nil {
		return 0, err
	}
	if visible == nil {
		return 0, nil
	}

	pos := visible.Middle.Position
	if n := len(visible.Top.Fill); n > 0 {
		pos = visible.Top.Fill[n-1].Position
	}
	above := 0
	for {
		widget, prevPos, err := walkerPrev(l.body, pos)
		if err != nil {
			return 0, err
		}
		if widget == nil {
			return above, nil
		}
		pos = prevPos
		above++
	}
}

// RequireRelativeScroll reports whether the list is so much larger than the
// viewport that scroll consumers should work in item counts rather than
// rows.
func (l *ListBox) RequireRelativeScroll(rows int) bool {
	hint, ok := l.lenHint()
	return ok && rows*3 < hint
}

// VisibleFraction returns the fraction of the list inside the viewport, in
// (0, 1]. For very long lists it is computed from item counts, otherwise
// from rows.
func (l *ListBox) VisibleFraction(cols, rows int, focus bool) (float64, error) {
	if err := l.checkSupportScrolling(); err != nil {
		return 0, err
	}

	var fraction float64
	if l.RequireRelativeScroll(rows) {
		amount, err := l.VisibleAmount(cols, rows, focus)
		if err != nil {
			return 0, err
		}
		hint, _ := l.lenHint()
		fraction = float64(amount) / float64(max(hint, 1))
	} else {
		total, err := l.RowsMax(cols, rows, focus)
		if err != nil {
			return 0, err
		}
		if total <= rows {
			return 1, nil
		}
		fraction = float64(rows) / float64(total)
	}
	return min(max(fraction, 0), 1), nil
}
