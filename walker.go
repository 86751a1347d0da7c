package urwid

// Position is an opaque key addressing one item of a ListWalker. Positions
// are not necessarily integers; tree walkers may use hierarchical keys.
// Position values must be comparable with == so the ListBox can recognize a
// position among the visible items.
type Position = any

// ListWalker provides ordered, key-addressed access to a sequence of
// widgets with a current focus. It is the body of a ListBox.
//
// Next and Prev must be consistent inverses where defined. Returning the
// starting position from Next or Prev is a contract violation which the
// ListBox detects and reports rather than looping on.
type ListWalker interface {
	// Focus returns the widget in focus and its position, or (nil, nil)
	// when the walker is empty.
	Focus() (Widget, Position)

	// SetFocus moves the focus to the given position. It fails with an
	// error wrapping ErrInvalidPosition if the position is absent.
	SetFocus(position Position) error

	// Next returns the widget after the given position, or (nil, nil) at
	// the end.
	Next(position Position) (Widget, Position)

	// Prev returns the widget before the given position, or (nil, nil)
	// at the start.
	Prev(position Position) (Widget, Position)
}

// Sized is an optional ListWalker capability reporting an exact length.
type Sized interface {
	Len() int
}

// LengthEstimable is an optional ListWalker capability reporting a cheap
// length estimate. It marks a body as finite when exact counting would be
// expensive, such as lazily loaded sequences.
type LengthEstimable interface {
	LenHint() int
}

// PositionsEnumerable is an optional ListWalker capability enumerating all
// positions in order.
type PositionsEnumerable interface {
	Positions(reverse bool) []Position
}

// WrapAware is an optional ListWalker capability reporting whether the
// walker wraps around at the ends. Scroll position queries are undefined on
// wrap-around bodies and are refused.
type WrapAware interface {
	WrapsAround() bool
}

// ModifiedNotifier is an optional ListWalker capability for change
// notification. The ListBox registers its invalidation callback on body
// assignment and unregisters it (passing nil) on replacement. A walker
// supports a single observer; walkers must not be shared between
// containers.
type ModifiedNotifier interface {
	SetModifiedFunc(handler func())
}

// walkerNext steps forward with an unconditional self-reference check.
// Silent infinite loops are the primary risk in this subsystem, so a walker
// returning the starting position again is reported as fatal rather than
// treated as the end of the sequence.
func walkerNext(body ListWalker, position Position) (Widget, Position, error) {
	widget, next := body.Next(position)
	if widget != nil && next == position {
		return nil, nil, layoutErrorf(position, "walker Next returned its own argument")
	}
	return widget, next, nil
}

// walkerPrev steps backward with the same self-reference check as
// walkerNext.
func walkerPrev(body ListWalker, position Position) (Widget, Position, error) {
	widget, prev := body.Prev(position)
	if widget != nil && prev == position {
		return nil, nil, layoutErrorf(position, "walker Prev returned its own argument")
	}
	return widget, prev, nil
}
