package urwid

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (possibly wrapped) by ListBox and ListWalker
// operations. Use errors.Is to test for them.
var (
	// ErrInvalidPosition indicates a position that is not present in the
	// list walker.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidOffset indicates a focus offset or inset outside the
	// bounds representable for the current viewport and focus widget.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrLayoutInconsistency indicates that a widget or list walker
	// violated its declared contract, for example by rendering a
	// different number of rows than it measured.
	ErrLayoutInconsistency = errors.New("layout inconsistency")

	// ErrScrollUnsupported indicates that the configured list walker
	// lacks the capabilities required for scroll position queries.
	ErrScrollUnsupported = errors.New("scrolling unsupported")
)

// LayoutError reports a contract violation by a widget or list walker,
// including the offending position and a description of the expected and
// actual values. It unwraps to ErrLayoutInconsistency.
type LayoutError struct {
	Position Position
	Detail   string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout inconsistency at position %v: %s", e.Position, e.Detail)
}

func (e *LayoutError) Unwrap() error {
	return ErrLayoutInconsistency
}

func layoutErrorf(position Position, format string, args ...any) *LayoutError {
	return &LayoutError{Position: position, Detail: fmt.Sprintf(format, args...)}
}
