package urwid

// List is a convenience menu: a ListBox over a SimpleWalker of buttons,
// with index-based item management.
type List struct {
	*ListBox
	walker *SimpleWalker
}

// NewList returns an empty list.
func NewList() *List {
	walker := NewSimpleWalker()
	return &List{
		ListBox: NewListBox(walker),
		walker:  walker,
	}
}

// AddItem appends an item with the given label. The handler, if any, is
// called when the item is activated.
func (l *List) AddItem(label string, selected func()) *List {
	l.walker.Append(NewButton(label).SetSelectedFunc(selected))
	return l
}

// InsertItem adds an item at the given index.
func (l *List) InsertItem(index int, label string, selected func()) *List {
	l.walker.Insert(index, NewButton(label).SetSelectedFunc(selected))
	return l
}

// RemoveItem deletes the item at the given index.
func (l *List) RemoveItem(index int) *List {
	l.walker.Remove(index)
	return l
}

// ItemCount returns the number of items.
func (l *List) ItemCount() int {
	return l.walker.Len()
}

// CurrentItem returns the index of the item in focus, or -1 when the list
// is empty.
func (l *List) CurrentItem() int {
	_, pos := l.walker.Focus()
	if pos == nil {
		return -1
	}
	return pos.(int)
}

// SetCurrentItem moves the focus to the item at the given index.
func (l *List) SetCurrentItem(index int) error {
	return l.SetFocus(index, NoDirection)
}
