package combat

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/pathfind"
	"github.com/Aunggrid/wildmarch/internal/status"
	"github.com/Aunggrid/wildmarch/internal/telemetry"
)

// baseHitChance is the chance to hit before accuracy modifiers.
const baseHitChance = 0.8

// Orchestrator owns the combat phase machine, the combat zone, the turn
// order and the action economy. It borrows actor references from the
// surrounding session for the duration of combat and never outlives
// them. Everything runs on the caller's single logical thread; the only
// entry points are Update and the player action methods.
type Orchestrator struct {
	cfg config.CombatConfig

	phase   Phase
	zone    *Zone
	order   TurnOrder
	outcome Outcome

	player *entity.Player
	actors []entity.Actor // session-owned non-player actors

	finder *pathfind.Finder
	engine *status.Engine
	rng    *rand.Rand
	events Events

	reservedAP   int
	stealthed    bool
	escapeReady  bool
	instigatorID string

	rounds int
}

// New creates an orchestrator in the exploration phase. events may be
// nil, meaning notifications are dropped.
func New(cfg config.CombatConfig, player *entity.Player, actors []entity.Actor, finder *pathfind.Finder, engine *status.Engine, rng *rand.Rand, events Events) *Orchestrator {
	if events == nil {
		events = NopEvents{}
	}
	return &Orchestrator{
		cfg:    cfg,
		phase:  PhaseExploration,
		zone:   NewZone(cfg.Zone),
		player: player,
		actors: actors,
		finder: finder,
		engine: engine,
		rng:    rng,
		events: events,
	}
}

// SetActors refreshes the borrowed actor list after the session spawns
// or removes actors. Not expected mid-combat.
func (o *Orchestrator) SetActors(actors []entity.Actor) { o.actors = actors }

// Phase returns the current combat phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// InCombat reports whether a combat encounter is active.
func (o *Orchestrator) InCombat() bool {
	return o.phase != PhaseExploration
}

// LastOutcome returns how the most recent encounter ended.
func (o *Orchestrator) LastOutcome() Outcome { return o.outcome }

// Zone returns the combat zone for read-only queries.
func (o *Orchestrator) Zone() *Zone { return o.zone }

// ZoneRadius returns the current zone radius in tiles.
func (o *Orchestrator) ZoneRadius() int { return o.zone.Radius }

// EscapeAttempts returns how many edge expansions the player triggered.
func (o *Orchestrator) EscapeAttempts() int { return o.zone.Expansions }

// PlayerAP returns the player's current action points.
func (o *Orchestrator) PlayerAP() int { return o.player.ActionPoints() }

// PlayerMP returns the player's current movement points.
func (o *Orchestrator) PlayerMP() int { return o.player.MovementPoints() }

// ReservedAP returns the AP carried toward the player's next turn.
func (o *Orchestrator) ReservedAP() int { return o.reservedAP }

// TurnOrder returns the participants in turn sequence.
func (o *Orchestrator) TurnOrder() []entity.Actor { return o.order.Actors() }

// Update is the single step-driven entry point, invoked once per
// simulation tick. All phase transitions, zone checks and turn
// advancement happen synchronously inside this call.
func (o *Orchestrator) Update(ctx context.Context, deltaTime float64, g grid.Map) {
	switch o.phase {
	case PhaseExploration:
		o.updateExploration(ctx, deltaTime, g)
	case PhasePlayerTurn:
		o.updatePlayerTurn(ctx, deltaTime, g)
	case PhaseEnemyTurn:
		o.updateEnemyTurn(ctx, g)
	case PhaseCombatEnd:
		o.phase = PhaseExploration
	}
}

// updateExploration decays real-time effects and watches for combat
// triggers: a chasing hostile actor within trigger range begins combat
// as the instigator.
func (o *Orchestrator) updateExploration(ctx context.Context, deltaTime float64, g grid.Map) {
	o.engine.UpdateRealTime(o.player.Effects(), deltaTime)
	for _, a := range o.actors {
		o.engine.UpdateRealTime(a.Effects(), deltaTime)
	}

	for _, a := range o.actors {
		e, ok := a.(*entity.Enemy)
		if !ok || !e.IsAlive() || e.Hostility() == entity.HostilityPassive {
			continue
		}
		if e.State() != entity.StateChasing {
			continue
		}
		if grid.Chebyshev(e.Tile(), o.player.Tile()) <= o.cfg.TriggerRange {
			o.StartCombat(ctx, e)
			return
		}
	}
}

// StartCombat begins an encounter with the given instigator, which may
// be nil. If the gathered participants contain no hostile or provoked
// actor, combat is aborted and the phase stays at exploration.
func (o *Orchestrator) StartCombat(ctx context.Context, instigator entity.Actor) {
	if o.InCombat() {
		return
	}

	center := o.player.Tile()
	o.instigatorID = ""
	if instigator != nil {
		center = grid.Midpoint(o.player.Tile(), instigator.Tile())
		o.instigatorID = instigator.ID()
	}

	o.zone.Reset(center)
	o.stealthed = false
	o.escapeReady = false
	o.reservedAP = 0
	o.rounds = 0
	o.outcome = OutcomeNone

	o.player.ClearPath()
	o.player.SnapToGrid()
	o.player.SetInCombatZone(true)

	anyHostile := false
	for _, a := range o.actors {
		if !a.IsAlive() {
			continue
		}
		if !o.zone.Contains(a.Tile()) && a.ID() != o.instigatorID {
			continue
		}
		a.SnapToGrid()
		a.SetInCombatZone(true)
		if a.Hostility() != entity.HostilityPassive {
			anyHostile = true
		}
	}

	// Purely passive wildlife never pulls the player into combat.
	if !anyHostile {
		o.clearMembership()
		return
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.Int("participants", len(o.participants())),
		attribute.Int("zone.radius", o.zone.Radius),
	)
	span.End()

	o.events.CombatStarted(instigator)
	o.rollInitiative()
	o.phase = PhaseCombatStart
	// CombatStart is transient: advance to the first turn at once.
	o.activateTurn(ctx)
}

// participants returns the player plus every in-zone actor.
func (o *Orchestrator) participants() []entity.Actor {
	ps := []entity.Actor{o.player}
	for _, a := range o.actors {
		if a.InCombatZone() {
			ps = append(ps, a)
		}
	}
	return ps
}

// rollInitiative builds the turn order: initiative is speed/10 plus a
// d20, sorted descending. The player is placed first before the stable
// sort so ties resolve in the player's favor.
func (o *Orchestrator) rollInitiative() {
	ps := o.participants()
	rolls := make(map[string]int, len(ps))
	for _, a := range ps {
		rolls[a.ID()] = a.Speed()/10 + o.rng.Intn(20) + 1
	}
	sort.SliceStable(ps, func(i, j int) bool {
		return rolls[ps[i].ID()] > rolls[ps[j].ID()]
	})

	o.order.Clear()
	for _, a := range ps {
		o.order.Append(a)
	}
}

// activateTurn performs the turn-boundary evaluation: cleanup, end
// conditions, cursor wrap, and activation of the current actor.
func (o *Orchestrator) activateTurn(ctx context.Context) {
	removed := o.order.Cleanup(func(a entity.Actor) bool {
		return a.IsAlive() && a.InCombatZone()
	})
	for _, a := range removed {
		a.SetInCombatZone(false)
	}

	if o.checkEndConditions(ctx) {
		return
	}
	if o.order.Len() == 0 {
		o.enterCombatEnd(ctx, OutcomeVictory)
		return
	}

	o.recruitReinforcements()

	current := o.order.Current()
	o.events.TurnStarted(current)
	o.rounds++

	// Periodic effect damage and healing land at the start of the
	// actor's turn, then turn-based durations tick down.
	o.applyPeriodic(current)
	o.engine.UpdateTurnBased(current.Effects())

	if !current.IsAlive() {
		o.nextTurn(ctx)
		return
	}

	if current.IsPlayer() {
		o.phase = PhasePlayerTurn
		o.player.SetActionPoints(o.player.MaxActionPoints() + o.reservedAP)
		o.reservedAP = 0
		o.player.SetMovementPoints(o.player.MaxMovementPoints())

		if o.engine.IsStunned(*o.player.Effects()) {
			o.player.SetActionPoints(0)
			o.player.SetMovementPoints(0)
			o.events.Log(fmt.Sprintf("%s is stunned and loses the turn", o.player.Name()))
			o.nextTurn(ctx)
		}
		return
	}

	o.phase = PhaseEnemyTurn
}

// nextTurn advances the cursor and evaluates the next turn.
func (o *Orchestrator) nextTurn(ctx context.Context) {
	o.order.Advance()
	o.activateTurn(ctx)
}

// applyPeriodic applies the effect list's periodic damage and healing
// to the actor.
func (o *Orchestrator) applyPeriodic(a entity.Actor) {
	if dmg := int(math.Round(o.engine.PeriodicDamage(*a.Effects()))); dmg > 0 {
		taken := a.TakeDamage(dmg)
		if taken > 0 {
			o.events.Damage(nil, a, taken)
		}
		if !a.IsAlive() {
			o.events.ActorDied(a, a.Tile())
		}
	}
	if heal := int(math.Round(o.engine.PeriodicHeal(*a.Effects()))); heal > 0 {
		if healed := a.Heal(heal); healed > 0 {
			o.events.Heal(a, healed)
		}
	}
}

// updatePlayerTurn runs the per-tick work of the player's turn: cooldown
// ticking, edge-triggered zone expansion, and auto-end once both
// currencies are spent.
func (o *Orchestrator) updatePlayerTurn(ctx context.Context, deltaTime float64, g grid.Map) {
	o.zone.Tick(deltaTime)

	// Hidden players and players holding an escape ability do not
	// stretch the zone; they are leaving, not fleeing deeper.
	if !o.stealthed && !o.escapeReady {
		if o.zone.TryExpand(o.player.Tile()) {
			o.events.ZoneExpanded(o.zone.Radius)
			o.pullInNewMembers()
		}
	}

	if o.player.ActionPoints() == 0 && o.player.MovementPoints() == 0 {
		o.endPlayerTurn(ctx)
	}
}

// pullInNewMembers adds every living non-member now inside the expanded
// radius. They are appended to the turn order without re-rolling
// initiative and act on their first upcoming turn.
func (o *Orchestrator) pullInNewMembers() {
	for _, a := range o.actors {
		if !a.IsAlive() || a.InCombatZone() {
			continue
		}
		if !o.zone.Contains(a.Tile()) {
			continue
		}
		o.joinCombat(a)
	}
}

// recruitReinforcements pulls in any living non-member that is inside
// the zone, close to the player, or already chasing.
func (o *Orchestrator) recruitReinforcements() {
	for _, a := range o.actors {
		if !a.IsAlive() || a.InCombatZone() {
			continue
		}
		join := o.zone.Contains(a.Tile()) ||
			grid.Chebyshev(a.Tile(), o.player.Tile()) <= o.cfg.ReinforceRange
		if !join {
			if e, ok := a.(*entity.Enemy); ok && e.State() == entity.StateChasing {
				join = true
			}
		}
		if join {
			o.joinCombat(a)
		}
	}
}

// joinCombat snaps an actor to the grid, marks it a zone member and
// appends it to the turn order.
func (o *Orchestrator) joinCombat(a entity.Actor) {
	a.SnapToGrid()
	a.SetInCombatZone(true)
	if o.order.Append(a) {
		o.events.Log(fmt.Sprintf("%s joins the fight", a.Name()))
	}
}

// updateEnemyTurn executes the acting enemy's turn. One enemy acts per
// tick so renderers can pace the round.
func (o *Orchestrator) updateEnemyTurn(ctx context.Context, g grid.Map) {
	current := o.order.Current()
	if current == nil || current.IsPlayer() {
		o.activateTurn(ctx)
		return
	}

	enemy, ok := current.(*entity.Enemy)
	if !ok {
		o.nextTurn(ctx)
		return
	}

	// Flee check before the turn: an enemy far past the boundary has
	// left combat.
	if o.checkFled(enemy) {
		o.activateTurn(ctx)
		return
	}

	if o.engine.IsStunned(*enemy.Effects()) {
		o.events.Log(fmt.Sprintf("%s is stunned and loses the turn", enemy.Name()))
	} else {
		tc := &entity.TurnContext{
			Grid:       g,
			Finder:     o.finder,
			Player:     o.player,
			Actors:     o.combatActors(),
			ZoneCenter: o.zone.Center,
			Rand:       o.rng,
			Attack:     o.resolveAttack,
		}
		if !enemy.TakeTurn(tc) {
			// Turn not complete yet; resume on the next tick.
			return
		}
	}

	// Flee check after the turn as well.
	o.checkFled(enemy)

	o.nextTurn(ctx)
}

// combatActors returns the player plus all current zone members.
func (o *Orchestrator) combatActors() []entity.Actor {
	return o.participants()
}

// checkFled removes an enemy whose distance from the zone center
// exceeds the radius plus the flee buffer.
func (o *Orchestrator) checkFled(a entity.Actor) bool {
	if !a.InCombatZone() {
		return true
	}
	if o.zone.Distance(a.Tile()) <= o.zone.Radius+o.cfg.Zone.FleeBuffer {
		return false
	}
	o.order.Remove(a.ID())
	a.SetInCombatZone(false)
	a.SetActionPoints(0)
	o.events.Log(fmt.Sprintf("%s flees the battle", a.Name()))
	return true
}

// checkEndConditions ends combat on player death or when no living,
// in-zone, hostile-or-provoked actor remains. Returns true when combat
// ended.
func (o *Orchestrator) checkEndConditions(ctx context.Context) bool {
	if !o.player.IsAlive() {
		o.enterCombatEnd(ctx, OutcomeDefeat)
		return true
	}
	for _, a := range o.actors {
		if a.IsAlive() && a.InCombatZone() && a.Hostility() != entity.HostilityPassive {
			return false
		}
	}
	o.enterCombatEnd(ctx, OutcomeVictory)
	return true
}

// enterCombatEnd tears the encounter down: membership flags cleared,
// action points reset, turn order emptied. The phase rests at
// PhaseCombatEnd for one tick, then returns to exploration.
func (o *Orchestrator) enterCombatEnd(ctx context.Context, outcome Outcome) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", o.rounds),
		attribute.Int("escape_attempts", o.zone.Expansions),
	)
	span.End()

	o.outcome = outcome
	o.clearMembership()
	o.order.Clear()
	o.reservedAP = 0
	o.stealthed = false
	o.escapeReady = false
	o.phase = PhaseCombatEnd
	o.events.CombatEnded(outcome)
}

// clearMembership clears zone flags and resets action points for every
// participant.
func (o *Orchestrator) clearMembership() {
	o.player.SetInCombatZone(false)
	o.player.SetActionPoints(0)
	for _, a := range o.actors {
		if a.InCombatZone() {
			a.SetInCombatZone(false)
			a.SetActionPoints(0)
		}
	}
}

// ForceCombatEnd abandons the encounter immediately.
func (o *Orchestrator) ForceCombatEnd(ctx context.Context) {
	if !o.InCombat() {
		return
	}
	o.enterCombatEnd(ctx, OutcomeAborted)
}
