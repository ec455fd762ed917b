package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/wild-wild-trader/game/service"
)

// Cell is one character on screen.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGround  = tcell.StyleDefault.Background(tcell.ColorSaddleBrown)
	stylePlayer1 = styleGround.Foreground(tcell.ColorLime).Bold(true)
	stylePlayer2 = styleGround.Foreground(tcell.ColorAqua).Bold(true)
	styleBandit  = styleGround.Foreground(tcell.ColorRed).Bold(true)
	styleRock    = styleGround.Foreground(tcell.ColorGray)
	styleWater   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
)

// glyphStyle returns the style a board glyph is drawn with.
func glyphStyle(r rune) tcell.Style {
	switch r {
	case '1':
		return stylePlayer1
	case '2':
		return stylePlayer2
	case 'B':
		return styleBandit
	case '#':
		return styleRock
	case '~':
		return styleWater
	}
	if r >= '3' && r <= '9' {
		return stylePlayer1
	}
	return styleGround
}

// BoardCells turns board rows into a framed grid of styled cells.
func BoardCells(view *service.BoardView) [][]Cell {
	width := view.Width + 2
	cells := make([][]Cell, 0, view.Height+2)

	frame := func(left, fill, right rune) []Cell {
		row := make([]Cell, width)
		for i := range row {
			row[i] = Cell{Rune: fill, Style: styleBorder}
		}
		row[0].Rune, row[width-1].Rune = left, right
		return row
	}

	cells = append(cells, frame('┌', '─', '┐'))
	for _, line := range view.Rows {
		row := []Cell{{Rune: '│', Style: styleBorder}}
		for _, r := range line {
			row = append(row, Cell{Rune: r, Style: glyphStyle(r)})
		}
		row = append(row, Cell{Rune: '│', Style: styleBorder})
		cells = append(cells, row)
	}
	cells = append(cells, frame('└', '─', '┘'))
	return cells
}

// StatusLine summarizes turn, players and enemies.
func StatusLine(turn int, view *service.BoardView) string {
	return fmt.Sprintf("turn %d | %s", turn, Roster(view))
}

// Roster lists every player slot and the bandits left.
func Roster(view *service.BoardView) string {
	var parts []string
	for _, p := range view.Players {
		if p.Alive {
			parts = append(parts, fmt.Sprintf("P%d %ghp", p.Slot, p.HitPoints))
		} else {
			parts = append(parts, fmt.Sprintf("P%d down", p.Slot))
		}
	}
	parts = append(parts, fmt.Sprintf("bandits %d", view.EnemiesLeft))
	return strings.Join(parts, " | ")
}

// Outcome returns the end-of-game banner, or "" while the game is open.
func Outcome(view *service.BoardView) string {
	var alive []int32
	for _, p := range view.Players {
		if p.Alive {
			alive = append(alive, p.Slot)
		}
	}
	switch {
	case len(alive) == 0:
		return "Everybody is down. Press r to play again."
	case len(view.Players) > 1 && len(alive) == 1:
		return fmt.Sprintf("Player %d wins! Press r to play again.", alive[0])
	case len(view.Players) == 1 && view.EnemiesLeft == 0:
		return "Territory cleared! Press r to play again."
	}
	return ""
}

const helpLine = "arrows: player 1 | w/a/s/d: player 2 | r: reset | q/esc: quit"
