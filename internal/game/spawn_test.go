package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/world"
)

func TestSpawnEnemies(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	tm := world.NewTileMap(world.DefaultWidth, world.DefaultHeight, rng)
	tm.Generate(context.Background())

	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		t.Fatal(err)
	}

	actors := spawnEnemies(tm, registry, rng)
	if len(tm.Regions) > 1 && len(actors) == 0 {
		t.Fatal("no enemies spawned on a multi-region map")
	}

	start := tm.Regions[0].CenterTile()
	seen := map[grid.Coord]bool{}
	for _, a := range actors {
		pos := a.Tile()
		if !tm.Walkable(pos) {
			t.Errorf("%s spawned on unwalkable tile %v", a.Name(), pos)
		}
		if pos == start {
			t.Errorf("%s spawned on the player's starting tile", a.Name())
		}
		if seen[pos] {
			t.Errorf("two enemies share tile %v", pos)
		}
		seen[pos] = true
	}
}
