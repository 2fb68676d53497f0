package pathfind

import (
	"math"
	"strings"
	"testing"

	"github.com/Aunggrid/wildmarch/internal/grid"
)

// testMap builds a grid.Map from an ASCII sketch: '#' blocks, '.' is
// open at cost 1, '~' is open at cost 2.
type testMap struct {
	rows []string
}

func newTestMap(sketch string) *testMap {
	return &testMap{rows: strings.Split(strings.TrimSpace(sketch), "\n")}
}

func (m *testMap) InBounds(c grid.Coord) bool {
	return c.Y >= 0 && c.Y < len(m.rows) && c.X >= 0 && c.X < len(m.rows[c.Y])
}

func (m *testMap) Walkable(c grid.Coord) bool {
	return m.InBounds(c) && m.rows[c.Y][c.X] != '#'
}

func (m *testMap) MoveCost(c grid.Coord) float64 {
	if m.rows[c.Y][c.X] == '~' {
		return 2.0
	}
	return 1.0
}

func TestFindPathOpenGridDiagonal(t *testing.T) {
	m := newTestMap(`
.....
.....
.....
.....
.....`)
	f := NewFinder(nil)
	path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 4, Y: 4})
	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4 (pure diagonal)", len(path))
	}
	if path[len(path)-1] != (grid.Coord{X: 4, Y: 4}) {
		t.Errorf("path ends at %v, want (4,4)", path[len(path)-1])
	}

	cost := f.PathCost(m, grid.Coord{X: 0, Y: 0}, path)
	want := 4 * math.Sqrt2
	if math.Abs(cost-want) > 1e-9 {
		t.Errorf("PathCost = %f, want %f", cost, want)
	}
}

func TestFindPathStepsAreAdjacent(t *testing.T) {
	m := newTestMap(`
.......
.##.##.
.#...#.
.#.#.#.
.......`)
	f := NewFinder(nil)
	start := grid.Coord{X: 0, Y: 0}
	path := f.FindPath(m, start, grid.Coord{X: 6, Y: 4})
	if path == nil {
		t.Fatal("FindPath returned nil for a reachable goal")
	}
	prev := start
	for i, c := range path {
		if !grid.IsAdjacent(prev, c) {
			t.Errorf("step %d: %v -> %v is not a single move", i, prev, c)
		}
		if !m.Walkable(c) {
			t.Errorf("step %d: %v is not walkable", i, c)
		}
		prev = c
	}
}

func TestFindPathExcludesStart(t *testing.T) {
	m := newTestMap(`
...
...`)
	f := NewFinder(nil)
	path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 0})
	for _, c := range path {
		if c == (grid.Coord{X: 0, Y: 0}) {
			t.Error("path contains the start tile")
		}
	}
	if same := f.FindPath(m, grid.Coord{X: 1, Y: 1}, grid.Coord{X: 1, Y: 1}); same == nil || len(same) != 0 {
		t.Errorf("path to self = %v, want empty non-nil path", same)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	m := newTestMap(`
..#..
..#..
..#..`)
	f := NewFinder(nil)
	if path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 4, Y: 0}); path != nil {
		t.Errorf("FindPath across a wall = %v, want nil", path)
	}
	if path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 1}); path != nil {
		t.Errorf("FindPath to a blocked tile = %v, want nil", path)
	}
	if path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 9, Y: 9}); path != nil {
		t.Errorf("FindPath out of bounds = %v, want nil", path)
	}
}

func TestNoCornerCutting(t *testing.T) {
	// Moving diagonally from (0,0) to (1,1) must be refused when either
	// orthogonal neighbor is blocked.
	m := newTestMap(`
.#
..`)
	f := NewFinder(nil)
	if f.CanStep(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 1, Y: 1}) {
		t.Error("CanStep allowed a diagonal move past a blocked corner")
	}

	path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 1, Y: 1})
	if len(path) != 2 {
		t.Errorf("path length = %d, want 2 (around the corner)", len(path))
	}
}

func TestFindPathPrefersCheapTerrain(t *testing.T) {
	// The straight row is swamp; the row below is clear, so dipping
	// down and back up is cheaper than wading straight across.
	m := newTestMap(`
.~~~.
.....`)
	f := NewFinder(nil)
	path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 4, Y: 0})
	for _, c := range path {
		if c.Y == 0 && c.X >= 1 && c.X <= 3 {
			t.Errorf("path crosses swamp tile %v despite cheaper detour", c)
		}
	}
}

func TestCanStepRejectsNonAdjacent(t *testing.T) {
	m := newTestMap(`
.....
.....`)
	f := NewFinder(nil)
	if f.CanStep(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 0}) {
		t.Error("CanStep allowed a two-tile move")
	}
	if f.CanStep(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 0, Y: 0}) {
		t.Error("CanStep allowed a zero move")
	}
}

func TestAdjacentTiles(t *testing.T) {
	m := newTestMap(`
...
.#.
...`)
	f := NewFinder(nil)

	got := f.AdjacentTiles(m, grid.Coord{X: 0, Y: 0}, false)
	// (1,1) is blocked, so only (1,0) and (0,1) remain.
	if len(got) != 2 {
		t.Errorf("AdjacentTiles at corner = %v, want 2 tiles", got)
	}

	withCenter := f.AdjacentTiles(m, grid.Coord{X: 0, Y: 0}, true)
	if len(withCenter) != 3 {
		t.Errorf("AdjacentTiles with center = %v, want 3 tiles", withCenter)
	}
}

func TestObstructionBlocksPath(t *testing.T) {
	m := newTestMap(`
...
...
...`)
	blocked := grid.Coord{X: 1, Y: 1}
	f := NewFinder(func(c grid.Coord) bool { return c == blocked })

	path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 2})
	for _, c := range path {
		if c == blocked {
			t.Errorf("path crosses obstructed tile %v", c)
		}
	}
	if path := f.FindPath(m, grid.Coord{X: 0, Y: 0}, blocked); path != nil {
		t.Errorf("FindPath to obstructed tile = %v, want nil", path)
	}
}
