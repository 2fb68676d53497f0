// Package entity provides the actors that participate in exploration
// and combat: the player and enemies.
package entity

import (
	"math/rand"

	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/pathfind"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// Hostility describes an actor's disposition toward the player.
type Hostility int

const (
	// HostilityPassive actors never fight unless provoked.
	HostilityPassive Hostility = iota
	// HostilityProvoked actors fight because they were attacked.
	HostilityProvoked
	// HostilityAggressive actors attack on sight.
	HostilityAggressive
)

// String returns a human-readable hostility name.
func (h Hostility) String() string {
	switch h {
	case HostilityPassive:
		return "passive"
	case HostilityProvoked:
		return "provoked"
	case HostilityAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// Actor is the abstraction the combat core borrows for the duration of
// an encounter. Actors are owned by the surrounding session; the combat
// core never outlives them. Identity checks are by ID, never by pointer.
type Actor interface {
	ID() string
	Name() string
	IsPlayer() bool

	// Position. Actors track a world position in fractional tile units;
	// Tile rounds to the nearest grid tile and SnapToGrid aligns the
	// world position with it.
	Tile() grid.Coord
	SetTile(grid.Coord)
	SnapToGrid()

	// Stats.
	HP() int
	MaxHP() int
	TakeDamage(amount int) int
	Heal(amount int) int
	IsAlive() bool
	Speed() int

	// Turn economy.
	ActionPoints() int
	SetActionPoints(int)
	MaxActionPoints() int
	MovementPoints() int
	SetMovementPoints(int)
	MaxMovementPoints() int

	// Combat capability.
	AttackDamage() int
	AttackCost() int
	WeaponRange() int
	CanAttack() bool

	// Disposition and zone membership.
	Hostility() Hostility
	Provoke()
	InCombatZone() bool
	SetInCombatZone(bool)

	// Effects returns the actor's active status-effect list for the
	// status engine to mutate.
	Effects() *[]status.Instance
}

// TurnContext carries everything an enemy needs to take its combat
// turn. The orchestrator supplies context and consumes the completion
// signal; it never dictates enemy decisions.
type TurnContext struct {
	Grid       grid.Map
	Finder     *pathfind.Finder
	Player     Actor
	Actors     []Actor
	ZoneCenter grid.Coord
	Rand       *rand.Rand

	// Attack resolves an attack through the orchestrator's combat
	// rules (hit roll, multipliers, notifications).
	Attack func(attacker, target Actor) bool
}

// clamp bounds v to [0, max].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
