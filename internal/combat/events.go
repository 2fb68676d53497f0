package combat

import (
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// Events is the notification sink for the combat core. The core emits
// but never persists these; rendering, UI and loot systems subscribe.
// Implementations embed NopEvents to pick only the events they need.
type Events interface {
	CombatStarted(instigator entity.Actor)
	CombatEnded(outcome Outcome)
	TurnStarted(actor entity.Actor)
	ZoneExpanded(radius int)
	Log(msg string)
	Damage(attacker, target entity.Actor, amount int)
	Miss(attacker, target entity.Actor)
	Heal(target entity.Actor, amount int)
	StatusApplied(target entity.Actor, effect status.EffectType)
	ActorDied(actor entity.Actor, at grid.Coord)
}

// NopEvents is an Events implementation that ignores everything.
type NopEvents struct{}

func (NopEvents) CombatStarted(entity.Actor)                      {}
func (NopEvents) CombatEnded(Outcome)                             {}
func (NopEvents) TurnStarted(entity.Actor)                        {}
func (NopEvents) ZoneExpanded(int)                                {}
func (NopEvents) Log(string)                                      {}
func (NopEvents) Damage(entity.Actor, entity.Actor, int)          {}
func (NopEvents) Miss(entity.Actor, entity.Actor)                 {}
func (NopEvents) Heal(entity.Actor, int)                          {}
func (NopEvents) StatusApplied(entity.Actor, status.EffectType)   {}
func (NopEvents) ActorDied(entity.Actor, grid.Coord)              {}

var _ Events = NopEvents{}
