package combat

import (
	"context"
	"fmt"
	"math"

	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// Player action methods. All of them return false on illegal input with
// no state mutation; none of them raise errors.

// PlayerMove steps the player onto an adjacent tile. The move costs one
// movement point; once MP is exhausted, one action point auto-converts
// to one movement point so movement can continue.
func (o *Orchestrator) PlayerMove(target grid.Coord, g grid.Map) bool {
	if o.phase != PhasePlayerTurn {
		return false
	}
	if !o.finder.CanStep(g, o.player.Tile(), target) {
		return false
	}
	if o.actorAt(target) != nil {
		return false
	}

	if o.player.MovementPoints() == 0 {
		if o.player.ActionPoints() == 0 {
			return false
		}
		o.player.SetActionPoints(o.player.ActionPoints() - 1)
		o.player.SetMovementPoints(1)
	}

	o.player.SetMovementPoints(o.player.MovementPoints() - 1)
	o.player.SetTile(target)
	return true
}

// PlayerAttack fires the player's equipped weapon at the target.
func (o *Orchestrator) PlayerAttack(target entity.Actor, g grid.Map) bool {
	return o.playerStrike(target, o.player.Weapon.Range, o.player.Weapon.APCost, o.player.Weapon.Damage, true)
}

// PlayerMeleeAttack is the cheaper off-hand strike of a ranged-equipped
// actor: adjacent targets only, reduced AP cost, no ammo spent.
func (o *Orchestrator) PlayerMeleeAttack(target entity.Actor, g grid.Map) bool {
	return o.playerStrike(target, 1, o.player.Weapon.MeleeAPCost, o.player.Weapon.MeleeDamage, false)
}

func (o *Orchestrator) playerStrike(target entity.Actor, reach, apCost, damage int, usesAmmo bool) bool {
	if o.phase != PhasePlayerTurn {
		return false
	}
	if target == nil || !target.IsAlive() {
		return false
	}
	if grid.Chebyshev(o.player.Tile(), target.Tile()) > reach {
		return false
	}
	if usesAmmo && !o.player.CanAttack() {
		return false
	}
	if o.player.ActionPoints() < apCost {
		return false
	}

	o.player.SetActionPoints(o.player.ActionPoints() - apCost)
	if usesAmmo {
		o.player.SpendAmmo()
	}
	o.strike(o.player, target, damage)
	return true
}

// resolveAttack is the attack resolver handed to enemy turns.
func (o *Orchestrator) resolveAttack(attacker, target entity.Actor) bool {
	if target == nil || !target.IsAlive() || !attacker.CanAttack() {
		return false
	}
	return o.strike(attacker, target, attacker.AttackDamage())
}

// strike rolls to hit and applies damage. Returns true on a hit.
func (o *Orchestrator) strike(attacker, target entity.Actor, damage int) bool {
	hitChance := baseHitChance * o.engine.AccuracyMultiplier(*attacker.Effects())
	if o.rng.Float64() > hitChance {
		o.events.Miss(attacker, target)
		return false
	}

	dmg := int(math.Round(float64(damage) * o.engine.DamageMultiplier(*attacker.Effects())))
	if dmg < 1 {
		dmg = 1
	}
	taken := target.TakeDamage(dmg)
	o.events.Damage(attacker, target, taken)

	if !target.IsAlive() {
		o.events.ActorDied(target, target.Tile())
	}
	return true
}

// ApplyStatus routes an effect application through the status engine
// and reports every applied instance, chain results included.
func (o *Orchestrator) ApplyStatus(target entity.Actor, t status.EffectType, duration float64, timing status.Timing, sourceID string) {
	applied := o.engine.Apply(target.Effects(), t, duration, timing, sourceID)
	for _, inst := range applied {
		o.events.StatusApplied(target, inst.Type)
	}
}

// PlayerEndTurn ends the player's turn voluntarily. Unused action
// points are reserved up to the configured cap and granted again next
// turn.
func (o *Orchestrator) PlayerEndTurn(ctx context.Context) bool {
	if o.phase != PhasePlayerTurn {
		return false
	}
	o.endPlayerTurn(ctx)
	return true
}

// endPlayerTurn finishes the player's turn. Reservation happens on both
// voluntary and forced ends; with both currencies at zero there is
// nothing to carry.
func (o *Orchestrator) endPlayerTurn(ctx context.Context) {
	reserve := o.player.ActionPoints()
	if reserve > o.cfg.Economy.MaxReservedAP {
		reserve = o.cfg.Economy.MaxReservedAP
	}
	o.reservedAP = reserve
	o.player.SetActionPoints(0)
	o.player.SetMovementPoints(0)
	o.nextTurn(ctx)
}

// ConvertAPtoMP trades action points for movement points one-for-one.
// Bounded only by available AP; the reservation cap applies solely to
// carried-over AP.
func (o *Orchestrator) ConvertAPtoMP(amount int) bool {
	if o.phase != PhasePlayerTurn {
		return false
	}
	if amount <= 0 || o.player.ActionPoints() < amount {
		return false
	}
	o.player.SetActionPoints(o.player.ActionPoints() - amount)
	o.player.SetMovementPoints(o.player.MovementPoints() + amount)
	return true
}

// EnableEscape arms the player's escape ability; source names the item
// or skill responsible.
func (o *Orchestrator) EnableEscape(source string) {
	o.escapeReady = true
	o.events.Log(fmt.Sprintf("escape ready (%s)", source))
}

// EnterStealth hides the player; source names the item or skill
// responsible.
func (o *Orchestrator) EnterStealth(source string) {
	o.stealthed = true
	o.events.Log(fmt.Sprintf("hidden (%s)", source))
}

// TryEscape force-ends combat when the player is hidden, or holds an
// escape ability while pressed against the zone edge.
func (o *Orchestrator) TryEscape(ctx context.Context) bool {
	if !o.InCombat() {
		return false
	}
	if !o.stealthed && !(o.escapeReady && o.zone.NearEdge(o.player.Tile())) {
		return false
	}
	o.enterCombatEnd(ctx, OutcomeEscaped)
	return true
}

// actorAt returns the living actor standing on the tile, or nil.
func (o *Orchestrator) actorAt(c grid.Coord) entity.Actor {
	if o.player.IsAlive() && o.player.Tile() == c {
		return o.player
	}
	for _, a := range o.actors {
		if a.IsAlive() && a.Tile() == c {
			return a
		}
	}
	return nil
}

// NearestEnemy returns the closest living hostile-or-provoked zone
// member, or nil.
func (o *Orchestrator) NearestEnemy() entity.Actor {
	var nearest entity.Actor
	best := math.MaxInt
	for _, a := range o.actors {
		if !a.IsAlive() || !a.InCombatZone() || a.Hostility() == entity.HostilityPassive {
			continue
		}
		if d := grid.Chebyshev(o.player.Tile(), a.Tile()); d < best {
			best = d
			nearest = a
		}
	}
	return nearest
}

// EnemiesInRange returns the living hostile-or-provoked zone members
// within the given Chebyshev range of the player.
func (o *Orchestrator) EnemiesInRange(reach int) []entity.Actor {
	var out []entity.Actor
	for _, a := range o.actors {
		if !a.IsAlive() || !a.InCombatZone() || a.Hostility() == entity.HostilityPassive {
			continue
		}
		if grid.Chebyshev(o.player.Tile(), a.Tile()) <= reach {
			out = append(out, a)
		}
	}
	return out
}
