package grid

// Map is the tile collaborator consumed by the pathfinder and the combat
// orchestrator. Implementations own tile dimensions, walkability and
// per-tile movement cost; the combat core never mutates the map.
type Map interface {
	// InBounds reports whether the tile exists on the map.
	InBounds(c Coord) bool
	// Walkable reports whether the tile can be stood on.
	Walkable(c Coord) bool
	// MoveCost returns the movement-cost multiplier for entering the
	// tile. A plain floor tile costs 1.0.
	MoveCost(c Coord) float64
}
