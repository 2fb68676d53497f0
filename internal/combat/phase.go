// Package combat provides the tactical combat core: the phase state
// machine, the dynamic combat zone, turn order and initiative, and the
// action-point economy.
package combat

// Phase represents the current phase of the combat state machine.
type Phase int

const (
	// PhaseExploration - free movement, no active combat.
	PhaseExploration Phase = iota
	// PhaseCombatStart - transient setup phase, advances immediately.
	PhaseCombatStart
	// PhasePlayerTurn - waiting for player actions.
	PhasePlayerTurn
	// PhaseEnemyTurn - an enemy is taking its turn.
	PhaseEnemyTurn
	// PhaseCombatEnd - transient teardown phase, advances immediately.
	PhaseCombatEnd
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseExploration:
		return "exploration"
	case PhaseCombatStart:
		return "combat_start"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseCombatEnd:
		return "combat_end"
	default:
		return "unknown"
	}
}

// Outcome is how a combat encounter ended.
type Outcome int

const (
	// OutcomeNone - combat has not ended.
	OutcomeNone Outcome = iota
	// OutcomeVictory - no living hostile participants remain.
	OutcomeVictory
	// OutcomeDefeat - the player died.
	OutcomeDefeat
	// OutcomeEscaped - the player escaped the zone.
	OutcomeEscaped
	// OutcomeAborted - combat was force-ended.
	OutcomeAborted
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
