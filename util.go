package urwid

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// alignOffset returns the column at which a line of the given width starts
// inside a viewport of the given number of columns.
func alignOffset(cols, width int, alignment Alignment) int {
	if width >= cols {
		return 0
	}
	switch alignment {
	case AlignmentCenter:
		return (cols - width) / 2
	case AlignmentRight:
		return cols - width
	}
	return 0
}
