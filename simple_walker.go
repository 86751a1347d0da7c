package urwid

import "fmt"

// SimpleWalker is a slice-backed ListWalker with int positions. Mutations
// through its methods keep the focus on the same widget where possible and
// notify the registered observer.
type SimpleWalker struct {
	widgets    []Widget
	focus      int
	wrapAround bool
	modified   func()
}

// NewSimpleWalker returns a walker over the given widgets with the focus on
// the first one.
func NewSimpleWalker(widgets ...Widget) *SimpleWalker {
	return &SimpleWalker{widgets: widgets}
}

// SetWrapAround toggles jumping to the other end of the list when stepping
// past the first or last widget. Wrap-around walkers do not support scroll
// position queries.
func (w *SimpleWalker) SetWrapAround(wrap bool) *SimpleWalker {
	w.wrapAround = wrap
	return w
}

// Focus returns the widget in focus and its position.
func (w *SimpleWalker) Focus() (Widget, Position) {
	if w.focus < 0 || w.focus >= len(w.widgets) {
		return nil, nil
	}
	return w.widgets[w.focus], w.focus
}

// SetFocus moves the focus to the given int position.
func (w *SimpleWalker) SetFocus(position Position) error {
	index, ok := position.(int)
	if !ok || index < 0 || index >= len(w.widgets) {
		return fmt.Errorf("%w: no widget at %v", ErrInvalidPosition, position)
	}
	w.focus = index
	w.notify()
	return nil
}

// Next returns the widget after the given position.
func (w *SimpleWalker) Next(position Position) (Widget, Position) {
	index, ok := position.(int)
	if !ok || index < 0 || index >= len(w.widgets) {
		return nil, nil
	}
	if index == len(w.widgets)-1 {
		if w.wrapAround && len(w.widgets) > 0 {
			return w.widgets[0], 0
		}
		return nil, nil
	}
	return w.widgets[index+1], index + 1
}

// Prev returns the widget before the given position.
func (w *SimpleWalker) Prev(position Position) (Widget, Position) {
	index, ok := position.(int)
	if !ok || index < 0 || index >= len(w.widgets) {
		return nil, nil
	}
	if index == 0 {
		if w.wrapAround && len(w.widgets) > 0 {
			last := len(w.widgets) - 1
			return w.widgets[last], last
		}
		return nil, nil
	}
	return w.widgets[index-1], index - 1
}

// Len returns the number of widgets.
func (w *SimpleWalker) Len() int {
	return len(w.widgets)
}

// Positions returns all positions in order, or in reverse order.
func (w *SimpleWalker) Positions(reverse bool) []Position {
	positions := make([]Position, len(w.widgets))
	for i := range positions {
		if reverse {
			positions[i] = len(w.widgets) - 1 - i
		} else {
			positions[i] = i
		}
	}
	return positions
}

// WrapsAround reports whether stepping past the ends wraps.
func (w *SimpleWalker) WrapsAround() bool {
	return w.wrapAround
}

// SetModifiedFunc registers the single observer notified after every
// mutation. Pass nil to unregister.
func (w *SimpleWalker) SetModifiedFunc(handler func()) {
	w.modified = handler
}

func (w *SimpleWalker) notify() {
	if w.focus >= len(w.widgets) {
		w.focus = max(0, len(w.widgets)-1)
	}
	if w.modified != nil {
		w.modified()
	}
}

// At returns the widget at the given index, or nil when out of range.
func (w *SimpleWalker) At(index int) Widget {
	if index < 0 || index >= len(w.widgets) {
		return nil
	}
	return w.widgets[index]
}

// Append adds a widget at the end of the list.
func (w *SimpleWalker) Append(widget Widget) {
	w.widgets = append(w.widgets, widget)
	w.notify()
}

// Insert adds a widget at the given index. The focus stays on the widget it
// was on.
func (w *SimpleWalker) Insert(index int, widget Widget) {
	if index < 0 {
		index = 0
	}
	if index > len(w.widgets) {
		index = len(w.widgets)
	}
	w.widgets = append(w.widgets, nil)
	copy(w.widgets[index+1:], w.widgets[index:])
	w.widgets[index] = widget
	if index <= w.focus && len(w.widgets) > 1 {
		w.focus++
	}
	w.notify()
}

// Remove deletes the widget at the given index. The focus stays on the
// widget it was on, or moves to the nearest remaining one.
func (w *SimpleWalker) Remove(index int) {
	if index < 0 || index >= len(w.widgets) {
		return
	}
	w.widgets = append(w.widgets[:index], w.widgets[index+1:]...)
	if index < w.focus {
		w.focus--
	}
	w.notify()
}

// Set replaces the widget at the given index.
func (w *SimpleWalker) Set(index int, widget Widget) {
	if index < 0 || index >= len(w.widgets) {
		return
	}
	w.widgets[index] = widget
	w.notify()
}
