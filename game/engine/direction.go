package engine

import (
	"fmt"
	"strings"
)

// Direction is a unit step on the grid.
type Direction struct {
	DX float32 `json:"dx"`
	DY float32 `json:"dy"`
}

// The four directions a controller can issue.
var (
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
)

// Directions lists the four directions in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection converts "up", "down", "left" or "right" (any case) into a
// Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Direction{}, fmt.Errorf("unknown direction %q", s)
}

// IsZero reports whether the direction does not move at all.
func (d Direction) IsZero() bool {
	return approxEqual(d.DX, 0) && approxEqual(d.DY, 0)
}

// Equal compares two directions with CoordinateEpsilon tolerance.
func (d Direction) Equal(other Direction) bool {
	return approxEqual(d.DX, other.DX) && approxEqual(d.DY, other.DY)
}

func (d Direction) String() string {
	switch {
	case d.Equal(Up):
		return "up"
	case d.Equal(Down):
		return "down"
	case d.Equal(Left):
		return "left"
	case d.Equal(Right):
		return "right"
	case d.IsZero():
		return "none"
	}
	return fmt.Sprintf("(%g,%g)", d.DX, d.DY)
}
