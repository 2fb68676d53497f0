package world

import "github.com/Aunggrid/wildmarch/internal/grid"

// Region is a rectangular clearing carved into the map.
type Region struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the region
}

// Center returns the center coordinates of the region.
func (r Region) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CenterTile returns the center of the region as a tile coordinate.
func (r Region) CenterTile() grid.Coord {
	x, y := r.Center()
	return grid.Coord{X: x, Y: y}
}

// Contains returns true if the given point is inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this region overlaps with another.
func (r Region) Intersects(other Region) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
