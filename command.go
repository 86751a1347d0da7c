package urwid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wardi/urwid/keybind"
)

// Command is a navigation action resolved from a key event.
type Command uint8

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandPageUp
	CommandPageDown
	CommandTop
	CommandBottom
)

// CommandMap maps navigation commands to the key chords that trigger them.
type CommandMap map[Command]keybind.Keybind

// DefaultCommandMap returns the default bindings: arrow and paging keys plus
// the usual vi movements.
func DefaultCommandMap() CommandMap {
	return CommandMap{
		CommandUp:       keybind.New("up", "k"),
		CommandDown:     keybind.New("down", "j"),
		CommandPageUp:   keybind.New("pgup", "ctrl+b"),
		CommandPageDown: keybind.New("pgdn", "ctrl+f"),
		CommandTop:      keybind.New("home", "g"),
		CommandBottom:   keybind.New("end", "G"),
	}
}

// Lookup returns the command bound to the event, or CommandNone.
func (m CommandMap) Lookup(event *tcell.EventKey) Command {
	for command, binding := range m {
		if keybind.Matches(event, binding) {
			return command
		}
	}
	return CommandNone
}
