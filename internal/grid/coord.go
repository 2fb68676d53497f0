// Package grid provides tile coordinate math shared by the pathfinder
// and the combat system.
package grid

import "fmt"

// Coord is a discrete tile position. Coords compare by value.
type Coord struct {
	X, Y int
}

// String returns the coordinate formatted as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the coordinate offset by dx, dy.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Chebyshev returns max(|dx|,|dy|), the tile distance where diagonal
// neighbors are 1 step away.
func Chebyshev(a, b Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent reports whether two tiles touch, diagonals included.
func IsAdjacent(a, b Coord) bool {
	return Chebyshev(a, b) == 1
}

// Midpoint returns the tile halfway between a and b, rounding toward a.
func Midpoint(a, b Coord) Coord {
	return Coord{X: a.X + (b.X-a.X)/2, Y: a.Y + (b.Y-a.Y)/2}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
