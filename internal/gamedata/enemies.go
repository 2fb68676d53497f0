package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// EnemyDef defines an enemy archetype loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "boar")
	Name        string `json:"name"`        // Display name (e.g., "Wild Boar")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#00FF00")
	HP          int    `json:"hp"`          // Base hit points
	Speed       int    `json:"speed"`       // Drives initiative and movement
	MaxAP       int    `json:"maxAp"`       // Action points per turn
	MaxMP       int    `json:"maxMp"`       // Movement points per turn
	AttackDmg   int    `json:"attackDmg"`   // Base weapon damage
	AttackCost  int    `json:"attackCost"`  // AP cost of one attack
	WeaponRange int    `json:"weaponRange"` // Attack range in tiles (Chebyshev)
	Hostility   string `json:"hostility"`   // "aggressive", "provoked" or "passive"
	AggroRange  int    `json:"aggroRange"`  // Tiles within which the enemy starts chasing
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
