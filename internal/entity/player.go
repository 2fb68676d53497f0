package entity

import (
	"math"

	"github.com/google/uuid"

	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// Weapon describes the player's equipped weapon for range and cost
// checks. MeleeAPCost is the cheaper off-hand strike available to a
// ranged-equipped actor.
type Weapon struct {
	Damage      int
	Range       int
	APCost      int
	MeleeDamage int
	MeleeAPCost int
	Ammo        int // -1 means the weapon needs no ammo
}

// Player is the player-controlled actor.
type Player struct {
	id   string
	name string

	// World position in fractional tile units.
	X, Y float64

	// Path is the pending exploration path the player is walking.
	Path []grid.Coord

	hp, maxHP int
	speed     int

	ap, maxAP int
	mp, maxMP int

	Weapon Weapon

	inZone  bool
	effects []status.Instance
}

// NewPlayer creates the player at the given tile.
func NewPlayer(name string, tile grid.Coord) *Player {
	return &Player{
		id:    uuid.NewString(),
		name:  name,
		X:     float64(tile.X),
		Y:     float64(tile.Y),
		hp:    40,
		maxHP: 40,
		speed: 50,
		maxAP: 6,
		maxMP: 5,
		Weapon: Weapon{
			Damage:      6,
			Range:       5,
			APCost:      3,
			MeleeDamage: 3,
			MeleeAPCost: 1,
			Ammo:        -1,
		},
	}
}

// ID returns the player's stable identifier.
func (p *Player) ID() string { return p.id }

// Name returns the player's display name.
func (p *Player) Name() string { return p.name }

// IsPlayer reports true.
func (p *Player) IsPlayer() bool { return true }

// Tile returns the nearest grid tile to the player's world position.
func (p *Player) Tile() grid.Coord {
	return grid.Coord{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// SetTile moves the player to the given tile.
func (p *Player) SetTile(c grid.Coord) {
	p.X = float64(c.X)
	p.Y = float64(c.Y)
}

// SnapToGrid aligns the world position with the nearest tile.
func (p *Player) SnapToGrid() { p.SetTile(p.Tile()) }

// ClearPath drops the pending exploration path.
func (p *Player) ClearPath() { p.Path = nil }

// HP returns current hit points.
func (p *Player) HP() int { return p.hp }

// MaxHP returns maximum hit points.
func (p *Player) MaxHP() int { return p.maxHP }

// IsAlive reports whether the player has HP remaining.
func (p *Player) IsAlive() bool { return p.hp > 0 }

// Speed returns the speed stat.
func (p *Player) Speed() int { return p.speed }

// TakeDamage reduces HP and returns the actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.hp {
		actual = p.hp
	}
	p.hp -= actual
	return actual
}

// Heal restores HP and returns the actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.hp+actual > p.maxHP {
		actual = p.maxHP - p.hp
	}
	p.hp += actual
	return actual
}

// ActionPoints returns current AP.
func (p *Player) ActionPoints() int { return p.ap }

// SetActionPoints sets AP, clamped to [0, max].
func (p *Player) SetActionPoints(v int) { p.ap = clamp(v, p.maxAP*2) }

// MaxActionPoints returns the per-turn AP grant.
func (p *Player) MaxActionPoints() int { return p.maxAP }

// MovementPoints returns current MP.
func (p *Player) MovementPoints() int { return p.mp }

// SetMovementPoints sets MP, clamped to [0, max].
func (p *Player) SetMovementPoints(v int) { p.mp = clamp(v, p.maxMP*2) }

// MaxMovementPoints returns the per-turn MP grant.
func (p *Player) MaxMovementPoints() int { return p.maxMP }

// AttackDamage returns the equipped weapon's damage.
func (p *Player) AttackDamage() int { return p.Weapon.Damage }

// AttackCost returns the AP cost of a weapon attack.
func (p *Player) AttackCost() int { return p.Weapon.APCost }

// WeaponRange returns the weapon's range in tiles.
func (p *Player) WeaponRange() int { return p.Weapon.Range }

// CanAttack reports whether the weapon has ammo remaining.
func (p *Player) CanAttack() bool {
	return p.Weapon.Ammo != 0
}

// SpendAmmo consumes one round if the weapon uses ammo.
func (p *Player) SpendAmmo() {
	if p.Weapon.Ammo > 0 {
		p.Weapon.Ammo--
	}
}

// Hostility returns passive; the player never counts as a hostile
// participant for end-condition checks.
func (p *Player) Hostility() Hostility { return HostilityPassive }

// Provoke is a no-op for the player.
func (p *Player) Provoke() {}

// InCombatZone reports zone membership.
func (p *Player) InCombatZone() bool { return p.inZone }

// SetInCombatZone sets zone membership.
func (p *Player) SetInCombatZone(v bool) { p.inZone = v }

// Effects returns the active status-effect list.
func (p *Player) Effects() *[]status.Instance { return &p.effects }

var _ Actor = (*Player)(nil)
