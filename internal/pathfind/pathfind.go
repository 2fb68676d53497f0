// Package pathfind provides A* search and adjacency queries over an
// 8-directional tile grid.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/Aunggrid/wildmarch/internal/grid"
)

const diagonalCost = math.Sqrt2

// neighborOffsets covers the four cardinal and four diagonal moves.
var neighborOffsets = [8][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// Obstruction reports whether a tile is blocked by something other than
// the map itself, such as a structure or another actor. Injected so the
// finder never reaches into ambient game state.
type Obstruction func(grid.Coord) bool

// Finder performs shortest-path searches over a grid.Map.
type Finder struct {
	obstructed Obstruction
}

// NewFinder creates a finder. obstructed may be nil, meaning only map
// walkability limits movement.
func NewFinder(obstructed Obstruction) *Finder {
	return &Finder{obstructed: obstructed}
}

// walkable combines map walkability with the injected obstruction.
func (f *Finder) walkable(g grid.Map, c grid.Coord) bool {
	if !g.InBounds(c) || !g.Walkable(c) {
		return false
	}
	if f.obstructed != nil && f.obstructed(c) {
		return false
	}
	return true
}

// canStep reports whether a single move from to its neighbor is legal.
// Diagonal moves require both orthogonal neighbors to be walkable so a
// path can never cut through a blocked corner.
func (f *Finder) canStep(g grid.Map, from, to grid.Coord) bool {
	if !f.walkable(g, to) {
		return false
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx != 0 && dy != 0 {
		if !f.walkable(g, grid.Coord{X: from.X + dx, Y: from.Y}) {
			return false
		}
		if !f.walkable(g, grid.Coord{X: from.X, Y: from.Y + dy}) {
			return false
		}
	}
	return true
}

// FindPath returns the cheapest path from start to end, excluding the
// start tile itself. It returns nil when the destination is out of
// bounds, not walkable, or unreachable; callers must treat nil as
// "destination unreachable", never as an error.
func (f *Finder) FindPath(g grid.Map, start, end grid.Coord) []grid.Coord {
	if !f.walkable(g, end) {
		return nil
	}
	if start == end {
		return []grid.Coord{}
	}

	open := &openSet{}
	heap.Init(open)

	gScore := map[grid.Coord]float64{start: 0}
	cameFrom := map[grid.Coord]grid.Coord{}
	closed := map[grid.Coord]bool{}

	open.push(&node{pos: start, f: octile(start, end)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.pos == end {
			return reconstruct(cameFrom, start, end)
		}
		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		for _, off := range neighborOffsets {
			next := current.pos.Add(off[0], off[1])
			if closed[next] || !f.canStep(g, current.pos, next) {
				continue
			}

			stepCost := 1.0
			if off[0] != 0 && off[1] != 0 {
				stepCost = diagonalCost
			}
			stepCost *= g.MoveCost(next)

			tentative := gScore[current.pos] + stepCost
			if known, ok := gScore[next]; ok && tentative >= known {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.pos
			open.push(&node{pos: next, f: tentative + octile(next, end)})
		}
	}

	return nil
}

// PathCost sums the step costs of a path returned by FindPath when
// walked from start. Used for movement previews.
func (f *Finder) PathCost(g grid.Map, start grid.Coord, path []grid.Coord) float64 {
	total := 0.0
	prev := start
	for _, c := range path {
		step := 1.0
		if c.X != prev.X && c.Y != prev.Y {
			step = diagonalCost
		}
		total += step * g.MoveCost(c)
		prev = c
	}
	return total
}

// AdjacentTiles returns the walkable neighbors of center, filtered by
// the same corner-cutting rule as FindPath. When includeCenter is true
// and the center itself is walkable, it is part of the result. Used for
// combat-range enumeration.
func (f *Finder) AdjacentTiles(g grid.Map, center grid.Coord, includeCenter bool) []grid.Coord {
	tiles := make([]grid.Coord, 0, 9)
	if includeCenter && f.walkable(g, center) {
		tiles = append(tiles, center)
	}
	for _, off := range neighborOffsets {
		next := center.Add(off[0], off[1])
		if f.canStep(g, center, next) {
			tiles = append(tiles, next)
		}
	}
	return tiles
}

// CanStep reports whether a single-tile move is legal: the target must be
// adjacent, walkable, and diagonal moves must not cut a corner.
func (f *Finder) CanStep(g grid.Map, from, to grid.Coord) bool {
	if !grid.IsAdjacent(from, to) {
		return false
	}
	return f.canStep(g, from, to)
}

// octile is the admissible, consistent heuristic for 8-directional
// movement: diagonal steps for the shared span, cardinal for the rest.
func octile(a, b grid.Coord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if dx < dy {
		dx, dy = dy, dx
	}
	return (dx - dy) + diagonalCost*dy
}

func reconstruct(cameFrom map[grid.Coord]grid.Coord, start, end grid.Coord) []grid.Coord {
	var path []grid.Coord
	for c := end; c != start; c = cameFrom[c] {
		path = append(path, c)
	}
	// Reverse into start-to-end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
