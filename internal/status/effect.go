// Package status provides the status-effect engine: definitions,
// stacking and decay rules, and chain reactions between effects. It
// operates purely on effect lists passed to it and knows nothing about
// combat orchestration.
package status

// EffectType identifies a kind of status effect, e.g. "wet" or "burning".
type EffectType string

// StatusNone marks the absence of an effect.
const StatusNone EffectType = ""

// Timing controls how an instance's duration decays.
type Timing int

const (
	// TimingRealTime decays by elapsed seconds each update.
	TimingRealTime Timing = iota
	// TimingTurnBased decays by one per combat turn.
	TimingTurnBased
)

// String returns a human-readable timing name.
func (t Timing) String() string {
	switch t {
	case TimingRealTime:
		return "real_time"
	case TimingTurnBased:
		return "turn_based"
	default:
		return "unknown"
	}
}

// Stacking defines what happens when an effect is reapplied while a
// matching instance is already active.
type Stacking int

const (
	// StackRefresh extends the duration to the max of old and new.
	StackRefresh Stacking = iota
	// StackIntensity adds a stack up to MaxStacks, raising intensity
	// and refreshing duration.
	StackIntensity
	// StackDuration adds the new duration onto the remaining one.
	StackDuration
	// NoStack ignores a repeat application while one is active.
	NoStack
)

// String returns a human-readable stacking name.
func (s Stacking) String() string {
	switch s {
	case StackRefresh:
		return "refresh"
	case StackIntensity:
		return "stack_intensity"
	case StackDuration:
		return "stack_duration"
	case NoStack:
		return "no_stack"
	default:
		return "unknown"
	}
}

// Category groups effects for aggregate queries.
type Category int

const (
	// CategoryNeutral effects carry no inherent polarity.
	CategoryNeutral Category = iota
	// CategoryBuff effects help the bearer.
	CategoryBuff
	// CategoryDebuff effects hinder the bearer.
	CategoryDebuff
	// CategoryStun effects prevent the bearer from acting.
	CategoryStun
)

// Definition is the static per-type data for an effect.
type Definition struct {
	Type         EffectType
	Name         string
	Category     Category
	Stacking     Stacking
	MaxStacks    int
	SpeedMult    float64 // multiplier on actor speed, 1.0 = unchanged
	DamageMult   float64 // multiplier on damage output, 1.0 = unchanged
	AccuracyMult float64 // multiplier on hit chance, 1.0 = unchanged
	PeriodicDmg  float64 // damage applied per tick, scaled by intensity and stacks
	PeriodicHeal float64 // healing applied per tick
}

// defaultDefinition covers unknown effect types: neutral, refresh on
// reapply, no modifiers. Unknown types never fail.
func defaultDefinition(t EffectType) Definition {
	return Definition{
		Type:         t,
		Name:         string(t),
		Category:     CategoryNeutral,
		Stacking:     StackRefresh,
		MaxStacks:    1,
		SpeedMult:    1,
		DamageMult:   1,
		AccuracyMult: 1,
	}
}

// Instance is an active effect on an actor's effect list.
type Instance struct {
	Type      EffectType
	SourceID  string  // who applied it
	Remaining float64 // seconds or turns left depending on Timing
	Stacks    int
	Intensity float64 // scales multipliers and periodic magnitudes
	Permanent bool    // never decays
	Timing    Timing
}

// ChainRule describes a combination reaction: when Trigger is applied to
// a list that already contains Existing, Result is created instead of or
// in addition to the default stacking.
type ChainRule struct {
	Existing       EffectType
	Trigger        EffectType
	Result         EffectType
	ResultDuration float64
	ConsumeExisting bool // remove the existing effect
	ConsumeTrigger  bool // suppress the incoming effect entirely
}
