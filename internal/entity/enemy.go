package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// AIState is the enemy's exploration-mode behavior state.
type AIState int

const (
	// StateIdle enemies stay where they are.
	StateIdle AIState = iota
	// StateChasing enemies pursue the player.
	StateChasing
)

// String returns a human-readable state name.
func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChasing:
		return "chasing"
	default:
		return "unknown"
	}
}

// turnActionLimit bounds the per-turn action loop so a wedged enemy can
// never stall the round.
const turnActionLimit = 32

// Enemy is a hostile or passive creature built from a data-driven
// archetype definition.
type Enemy struct {
	id  string
	def *gamedata.EnemyDef

	X, Y float64 // world position in fractional tile units

	hp        int
	hostility Hostility
	state     AIState

	ap, mp int

	inZone  bool
	effects []status.Instance

	// moveAccum accumulates speed-scaled time toward the next
	// exploration-mode step.
	moveAccum float64
}

// NewEnemy creates an enemy from its archetype definition at a tile.
func NewEnemy(def *gamedata.EnemyDef, tile grid.Coord) *Enemy {
	return &Enemy{
		id:        uuid.NewString(),
		def:       def,
		X:         float64(tile.X),
		Y:         float64(tile.Y),
		hp:        def.HP,
		hostility: parseHostility(def.Hostility),
	}
}

func parseHostility(s string) Hostility {
	switch s {
	case "aggressive":
		return HostilityAggressive
	case "provoked":
		return HostilityProvoked
	default:
		return HostilityPassive
	}
}

// Def returns the archetype definition.
func (e *Enemy) Def() *gamedata.EnemyDef { return e.def }

// ID returns the enemy's stable identifier.
func (e *Enemy) ID() string { return e.id }

// Name returns the archetype display name.
func (e *Enemy) Name() string { return e.def.Name }

// IsPlayer reports false.
func (e *Enemy) IsPlayer() bool { return false }

// Glyph returns the render rune for this enemy.
func (e *Enemy) Glyph() rune { return e.def.GlyphRune() }

// Color returns the render color for this enemy.
func (e *Enemy) Color() tcell.Color { return e.def.TCellColor() }

// Tile returns the nearest grid tile to the enemy's world position.
func (e *Enemy) Tile() grid.Coord {
	return grid.Coord{X: int(math.Round(e.X)), Y: int(math.Round(e.Y))}
}

// SetTile moves the enemy to the given tile.
func (e *Enemy) SetTile(c grid.Coord) {
	e.X = float64(c.X)
	e.Y = float64(c.Y)
}

// SnapToGrid aligns the world position with the nearest tile.
func (e *Enemy) SnapToGrid() { e.SetTile(e.Tile()) }

// HP returns current hit points.
func (e *Enemy) HP() int { return e.hp }

// MaxHP returns the archetype's hit points.
func (e *Enemy) MaxHP() int { return e.def.HP }

// IsAlive reports whether the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.hp > 0 }

// Speed returns the speed stat.
func (e *Enemy) Speed() int { return e.def.Speed }

// TakeDamage reduces HP and returns the actual damage taken. Damaging a
// passive creature provokes it.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.hp {
		actual = e.hp
	}
	e.hp -= actual
	if actual > 0 {
		e.Provoke()
	}
	return actual
}

// Heal restores HP and returns the actual amount healed.
func (e *Enemy) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if e.hp+actual > e.def.HP {
		actual = e.def.HP - e.hp
	}
	e.hp += actual
	return actual
}

// ActionPoints returns current AP.
func (e *Enemy) ActionPoints() int { return e.ap }

// SetActionPoints sets AP, clamped to [0, max].
func (e *Enemy) SetActionPoints(v int) { e.ap = clamp(v, e.def.MaxAP) }

// MaxActionPoints returns the per-turn AP grant.
func (e *Enemy) MaxActionPoints() int { return e.def.MaxAP }

// MovementPoints returns current MP.
func (e *Enemy) MovementPoints() int { return e.mp }

// SetMovementPoints sets MP, clamped to [0, max].
func (e *Enemy) SetMovementPoints(v int) { e.mp = clamp(v, e.def.MaxMP) }

// MaxMovementPoints returns the per-turn MP grant.
func (e *Enemy) MaxMovementPoints() int { return e.def.MaxMP }

// AttackDamage returns the archetype's weapon damage.
func (e *Enemy) AttackDamage() int { return e.def.AttackDmg }

// AttackCost returns the AP cost of one attack.
func (e *Enemy) AttackCost() int { return e.def.AttackCost }

// WeaponRange returns the attack range in tiles.
func (e *Enemy) WeaponRange() int { return e.def.WeaponRange }

// CanAttack reports whether the enemy can attack at all.
func (e *Enemy) CanAttack() bool { return e.def.AttackDmg > 0 }

// Hostility returns the enemy's current disposition.
func (e *Enemy) Hostility() Hostility { return e.hostility }

// Provoke promotes a passive creature to provoked.
func (e *Enemy) Provoke() {
	if e.hostility == HostilityPassive {
		e.hostility = HostilityProvoked
	}
}

// State returns the exploration AI state.
func (e *Enemy) State() AIState { return e.state }

// SetState sets the exploration AI state.
func (e *Enemy) SetState(s AIState) { e.state = s }

// InCombatZone reports zone membership.
func (e *Enemy) InCombatZone() bool { return e.inZone }

// SetInCombatZone sets zone membership.
func (e *Enemy) SetInCombatZone(v bool) { e.inZone = v }

// Effects returns the active status-effect list.
func (e *Enemy) Effects() *[]status.Instance { return &e.effects }

// UpdateExploration advances the enemy's free-roam behavior: aggressive
// enemies start chasing once the player is inside their aggro range, and
// chasing enemies step toward the player at a speed-scaled rate.
func (e *Enemy) UpdateExploration(deltaTime float64, g grid.Map, tc *TurnContext) {
	if !e.IsAlive() {
		return
	}
	dist := grid.Chebyshev(e.Tile(), tc.Player.Tile())

	if e.state == StateIdle {
		if e.hostility == HostilityAggressive && e.def.AggroRange > 0 && dist <= e.def.AggroRange {
			e.state = StateChasing
		}
		return
	}

	// Chasing: one tile per accumulated speed unit. Speed 50 walks two
	// tiles per second.
	e.moveAccum += deltaTime * float64(e.def.Speed) / 25.0
	for e.moveAccum >= 1 && dist > 1 {
		e.moveAccum--
		path := tc.Finder.FindPath(g, e.Tile(), tc.Player.Tile())
		if len(path) == 0 {
			break
		}
		if occupiedByOther(tc.Actors, e, path[0]) {
			break
		}
		e.SetTile(path[0])
		dist = grid.Chebyshev(e.Tile(), tc.Player.Tile())
	}
}

// TakeTurn runs the enemy's combat turn and returns true when the turn
// is complete. The orchestrator supplies the grid, the player, all
// actors and the zone center; decisions are the enemy's own.
func (e *Enemy) TakeTurn(tc *TurnContext) bool {
	e.SetActionPoints(e.def.MaxAP)
	e.SetMovementPoints(e.def.MaxMP)

	for i := 0; i < turnActionLimit; i++ {
		if !e.IsAlive() || !tc.Player.IsAlive() {
			break
		}

		dist := grid.Chebyshev(e.Tile(), tc.Player.Tile())

		// Attack whenever the player is in range and AP allows.
		if e.CanAttack() && dist <= e.WeaponRange() && e.ap >= e.AttackCost() {
			tc.Attack(e, tc.Player)
			e.ap -= e.AttackCost()
			continue
		}

		// Otherwise close the distance. 1 AP converts to 1 MP once
		// movement points run out.
		if e.mp == 0 && e.ap > 0 {
			e.ap--
			e.mp++
		}
		if e.mp == 0 {
			break
		}
		path := tc.Finder.FindPath(tc.Grid, e.Tile(), tc.Player.Tile())
		if len(path) == 0 || occupiedByOther(tc.Actors, e, path[0]) {
			break
		}
		e.SetTile(path[0])
		e.mp--
	}

	return true
}

// occupiedByOther reports whether a living actor other than self stands
// on the tile.
func occupiedByOther(actors []Actor, self Actor, c grid.Coord) bool {
	for _, a := range actors {
		if a.ID() != self.ID() && a.IsAlive() && a.Tile() == c {
			return true
		}
	}
	return false
}

var _ Actor = (*Enemy)(nil)
