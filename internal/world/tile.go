// Package world provides map generation and tile queries.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileRock represents an impassable rock face.
	TileRock Tile = '#'
	// TileGrass represents open, cheap ground.
	TileGrass Tile = '.'
	// TileBrush represents thick undergrowth that slows movement.
	TileBrush Tile = '"'
	// TileWater represents shallow water, walkable but slow.
	TileWater Tile = '~'
)

// Walkable returns true if the tile can be stood on.
func (t Tile) Walkable() bool {
	return t != TileRock
}

// Cost returns the movement-cost multiplier for entering the tile.
func (t Tile) Cost() float64 {
	switch t {
	case TileBrush:
		return 1.5
	case TileWater:
		return 2.0
	default:
		return 1.0
	}
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
