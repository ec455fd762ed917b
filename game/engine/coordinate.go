package engine

import (
	"fmt"
	"math"
)

// CoordinateEpsilon is the tolerance used for every coordinate comparison.
// Positions are produced by repeated float additions, so exact equality
// is never used.
const CoordinateEpsilon float32 = 1e-4

// Coordinate is a position on the map. Coordinates are values: every
// operation returns a fresh Coordinate and never modifies the receiver.
type Coordinate struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// NewCoordinate returns a Coordinate at (x, y).
func NewCoordinate(x, y float32) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Translate returns the coordinate shifted by (dx, dy).
func (c Coordinate) Translate(dx, dy float32) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// Add returns the coordinate one step away in the given direction.
func (c Coordinate) Add(d Direction) Coordinate {
	return c.Translate(d.DX, d.DY)
}

// Equal reports whether both axes are within CoordinateEpsilon.
func (c Coordinate) Equal(other Coordinate) bool {
	return approxEqual(c.X, other.X) && approxEqual(c.Y, other.Y)
}

// IsAtX reports whether the coordinate lies on column x.
func (c Coordinate) IsAtX(x float32) bool {
	return approxEqual(c.X, x)
}

// IsAtY reports whether the coordinate lies on row y.
func (c Coordinate) IsAtY(y float32) bool {
	return approxEqual(c.Y, y)
}

// IsWithin reports whether the coordinate lies inside the inclusive
// bounding box [left, right] on both axes.
func (c Coordinate) IsWithin(left, right Coordinate) bool {
	return c.X >= left.X-CoordinateEpsilon && c.X <= right.X+CoordinateEpsilon &&
		c.Y >= left.Y-CoordinateEpsilon && c.Y <= right.Y+CoordinateEpsilon
}

// IsAdjacent reports whether other is within one cell on both axes
// (Chebyshev distance below 2). A coordinate is adjacent to itself.
func (c Coordinate) IsAdjacent(other Coordinate) bool {
	dx := abs32(c.X - other.X)
	dy := abs32(c.Y - other.Y)
	return dx < 2-CoordinateEpsilon && dy < 2-CoordinateEpsilon
}

// Cell returns the coordinate rounded to the nearest integer grid cell.
func (c Coordinate) Cell() (int, int) {
	return int(math.Round(float64(c.X))), int(math.Round(float64(c.Y)))
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g,%g)", c.X, c.Y)
}

func approxEqual(a, b float32) bool {
	return abs32(a-b) <= CoordinateEpsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
