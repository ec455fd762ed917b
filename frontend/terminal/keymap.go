package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Command is what a key press asks the game to do.
type Command struct {
	Quit      bool
	Reset     bool
	Slot      int32
	Direction string
}

// Translate maps a key event to a command. Arrow keys steer player 1,
// W/A/S/D steer player 2. Esc, Ctrl-C and q quit; r resets the map.
func Translate(ev *tcell.EventKey) (Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Quit: true}, true
	case tcell.KeyUp:
		return Command{Slot: 1, Direction: "up"}, true
	case tcell.KeyDown:
		return Command{Slot: 1, Direction: "down"}, true
	case tcell.KeyLeft:
		return Command{Slot: 1, Direction: "left"}, true
	case tcell.KeyRight:
		return Command{Slot: 1, Direction: "right"}, true
	case tcell.KeyRune:
	default:
		return Command{}, false
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'q':
		return Command{Quit: true}, true
	case 'r':
		return Command{Reset: true}, true
	case 'w':
		return Command{Slot: 2, Direction: "up"}, true
	case 's':
		return Command{Slot: 2, Direction: "down"}, true
	case 'a':
		return Command{Slot: 2, Direction: "left"}, true
	case 'd':
		return Command{Slot: 2, Direction: "right"}, true
	}
	return Command{}, false
}
