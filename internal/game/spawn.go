package game

import (
	"math/rand"

	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/world"
)

const enemiesPerRegion = 2

// spawnEnemies populates every region except the starting one with
// weighted-random enemies from the registry.
func spawnEnemies(tm *world.TileMap, registry *gamedata.EnemyRegistry, rng *rand.Rand) []entity.Actor {
	var actors []entity.Actor
	taken := map[grid.Coord]bool{tm.Regions[0].CenterTile(): true}

	for i := 1; i < len(tm.Regions); i++ {
		for n := 0; n < enemiesPerRegion; n++ {
			def := registry.SpawnRandom(rng)
			if def == nil {
				continue
			}
			pos := tm.RandomPointInRegion(i)
			if taken[pos] || !tm.Walkable(pos) {
				continue
			}
			taken[pos] = true
			actors = append(actors, entity.NewEnemy(def, pos))
		}
	}
	return actors
}
