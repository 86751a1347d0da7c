package urwid

import (
	"github.com/gdamore/tcell/v2"
)

// Theme defines the colors used when widgets are initialized.
type Theme struct {
	TextColor          tcell.Color // Regular text.
	FocusTextColor     tcell.Color // Text of the widget in focus.
	FocusBackground    tcell.Color // Background of the widget in focus.
	ButtonBracketColor tcell.Color // The brackets around button labels.
	DividerColor       tcell.Color // Divider fill characters.
	ScrollBarColor     tcell.Color // Scroll bar track and thumb.
}

// Styles defines the default theme: white on the terminal default
// background, with the focused widget inverted.
var Styles = Theme{
	TextColor:          tcell.ColorWhite,
	FocusTextColor:     tcell.ColorBlack,
	FocusBackground:    tcell.ColorWhite,
	ButtonBracketColor: tcell.ColorYellow,
	DividerColor:       tcell.ColorGray,
	ScrollBarColor:     tcell.ColorWhite,
}
