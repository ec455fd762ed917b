// Package textmap converts between worlds and their character-grid form.
//
// A map is a rectangular grid of single-byte glyphs, one row per line:
//
//	' '  empty cell
//	'1'  player slot 1 ('2' for slot 2, up to '9')
//	'B'  bandit (enemy)
//	'#'  mountain (obstacle)
//	'~'  water (hole)
//
// The first row's width and the number of rows define the world bounds.
package textmap

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wricardo/wild-wild-trader/game/engine"
)

// Glyphs understood by Load and produced by Print.
const (
	EmptyGlyph    = ' '
	BanditGlyph   = engine.BanditGlyph
	MountainGlyph = engine.MountainGlyph
	WaterGlyph    = engine.WaterGlyph
)

var (
	ErrEmptyGrid  = errors.New("map has no cells")
	ErrRaggedGrid = errors.New("map rows have different widths")
)

// UnknownGlyphError reports a character that has no entity mapping.
type UnknownGlyphError struct {
	Glyph    rune
	Row, Col int
}

func (e *UnknownGlyphError) Error() string {
	return fmt.Sprintf("unknown glyph %q at row %d, column %d", e.Glyph, e.Row, e.Col)
}

// Options controls the hit points given to loaded actors.
type Options struct {
	PlayerHitPoints float32
	EnemyHitPoints  float32
}

// DefaultOptions returns the stock hit points.
func DefaultOptions() Options {
	return Options{
		PlayerHitPoints: engine.DefaultPlayerHitPoints,
		EnemyHitPoints:  engine.DefaultEnemyHitPoints,
	}
}

// Load parses text with DefaultOptions.
func Load(text string) (*engine.World, error) {
	return LoadWith(text, DefaultOptions())
}

// LoadWith parses text into a new world. Entities are registered row by row,
// left to right, so ids follow reading order. A controller is registered for
// every player, ordered by slot.
func LoadWith(text string, opts Options) (*engine.World, error) {
	if opts.PlayerHitPoints <= 0 {
		opts.PlayerHitPoints = engine.DefaultPlayerHitPoints
	}
	if opts.EnemyHitPoints <= 0 {
		opts.EnemyHitPoints = engine.DefaultEnemyHitPoints
	}

	rows := Rows(text)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, i, len(row), width)
		}
	}

	world := engine.CreateWorld(engine.NewCoordinate(float32(width-1), float32(len(rows)-1)))

	type slotted struct {
		slot int32
		id   engine.EntityID
	}
	var players []slotted

	for y, row := range rows {
		for x, glyph := range row {
			coord := engine.NewCoordinate(float32(x), float32(y))
			entity, ok, err := entityFor(glyph, coord, opts)
			if err != nil {
				return nil, &UnknownGlyphError{Glyph: glyph, Row: y, Col: x}
			}
			if !ok {
				continue
			}
			registered := world.Register(entity)
			if registered.Type.Kind == engine.KindPlayer {
				players = append(players, slotted{slot: registered.Type.Slot, id: registered.ID})
			}
		}
	}

	slices.SortStableFunc(players, func(a, b slotted) int {
		return int(a.slot - b.slot)
	})
	for _, p := range players {
		world.RegisterPlayer(engine.NewPlayerController(p.id))
	}

	return world, nil
}

// Print renders world as text. A cell shows the entity OnCoord returns for
// it, so when several entities share a cell the lowest id is drawn.
func Print(world *engine.World) string {
	return strings.Join(PrintRows(world), "\n")
}

// PrintRows renders world one string per row.
func PrintRows(world *engine.World) []string {
	width, height := world.Width(), world.Height()
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(EmptyGlyph), width))
	}

	// Entities come back in ascending id order; the first one drawn on a
	// cell wins, which matches OnCoord.
	drawn := make(map[[2]int]bool)
	for _, entity := range world.Entities() {
		x, y := entity.Coord.Cell()
		if x < 0 || y < 0 || x >= width || y >= height || drawn[[2]int{x, y}] {
			continue
		}
		drawn[[2]int{x, y}] = true
		grid[y][x] = entity.Type.Symbol()
	}

	rows := make([]string, height)
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}

// Rows splits text into rows of glyphs. Windows line endings are accepted.
func Rows(text string) [][]rune {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
	}
	return rows
}

// IsGlyph reports whether Load accepts r.
func IsGlyph(r rune) bool {
	_, _, err := entityFor(r, engine.Coordinate{}, DefaultOptions())
	return err == nil
}

func entityFor(glyph rune, coord engine.Coordinate, opts Options) (engine.Entity, bool, error) {
	switch {
	case glyph == EmptyGlyph:
		return engine.Entity{}, false, nil
	case glyph >= '1' && glyph <= '9':
		return engine.NewPlayer(glyph-'0', coord, opts.PlayerHitPoints), true, nil
	case glyph == BanditGlyph:
		return engine.NewBandit(coord, opts.EnemyHitPoints), true, nil
	case glyph == MountainGlyph:
		return engine.NewMountain(coord), true, nil
	case glyph == WaterGlyph:
		return engine.NewWater(coord), true, nil
	}
	return engine.Entity{}, false, fmt.Errorf("unknown glyph %q", glyph)
}
