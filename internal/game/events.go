package game

import (
	"fmt"

	"github.com/Aunggrid/wildmarch/internal/combat"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/status"
	"github.com/Aunggrid/wildmarch/internal/ui"
)

// logEvents routes combat notifications into the on-screen event log.
type logEvents struct {
	combat.NopEvents
	renderer *ui.Renderer
}

func (e *logEvents) CombatStarted(instigator entity.Actor) {
	if instigator != nil {
		e.renderer.PushLog(fmt.Sprintf("Combat! %s attacks.", instigator.Name()))
		return
	}
	e.renderer.PushLog("Combat!")
}

func (e *logEvents) CombatEnded(outcome combat.Outcome) {
	e.renderer.PushLog("Combat over: " + outcome.String())
}

func (e *logEvents) TurnStarted(actor entity.Actor) {
	if actor.IsPlayer() {
		e.renderer.PushLog("Your turn.")
	}
}

func (e *logEvents) ZoneExpanded(radius int) {
	e.renderer.PushLog(fmt.Sprintf("The battle spreads (radius %d).", radius))
}

func (e *logEvents) Log(msg string) {
	e.renderer.PushLog(msg)
}

func (e *logEvents) Damage(attacker, target entity.Actor, amount int) {
	if attacker == nil {
		e.renderer.PushLog(fmt.Sprintf("%s suffers %d damage.", target.Name(), amount))
		return
	}
	e.renderer.PushLog(fmt.Sprintf("%s hits %s for %d.", attacker.Name(), target.Name(), amount))
}

func (e *logEvents) Miss(attacker, target entity.Actor) {
	e.renderer.PushLog(fmt.Sprintf("%s misses %s.", attacker.Name(), target.Name()))
}

func (e *logEvents) Heal(target entity.Actor, amount int) {
	e.renderer.PushLog(fmt.Sprintf("%s recovers %d HP.", target.Name(), amount))
}

func (e *logEvents) StatusApplied(target entity.Actor, effect status.EffectType) {
	e.renderer.PushLog(fmt.Sprintf("%s is %s.", target.Name(), string(effect)))
}

func (e *logEvents) ActorDied(actor entity.Actor, at grid.Coord) {
	e.renderer.PushLog(fmt.Sprintf("%s dies at %s.", actor.Name(), at))
}

var _ combat.Events = (*logEvents)(nil)
