package gamedata

import (
	"errors"

	"github.com/Aunggrid/wildmarch/internal/status"
)

// StatusEffectDef defines a status-effect type loaded from JSON.
type StatusEffectDef struct {
	ID           string  `json:"id"`           // Unique identifier (e.g., "burning")
	Name         string  `json:"name"`         // Display name (e.g., "Burning")
	Category     string  `json:"category"`     // "neutral", "buff", "debuff" or "stun"
	Stacking     string  `json:"stacking"`     // "refresh", "stack_intensity", "stack_duration" or "no_stack"
	MaxStacks    int     `json:"maxStacks"`    // Cap for intensity stacking
	SpeedMult    float64 `json:"speedMult"`    // Speed multiplier (1.0 = unchanged)
	DamageMult   float64 `json:"damageMult"`   // Damage-output multiplier
	AccuracyMult float64 `json:"accuracyMult"` // Hit-chance multiplier
	PeriodicDmg  float64 `json:"periodicDmg"`  // Damage per tick
	PeriodicHeal float64 `json:"periodicHeal"` // Healing per tick
}

// ToDefinition converts the JSON form into the engine's definition type.
// Zero multipliers are treated as "unchanged" so sparse JSON stays terse.
func (d *StatusEffectDef) ToDefinition() status.Definition {
	def := status.Definition{
		Type:         status.EffectType(d.ID),
		Name:         d.Name,
		Category:     parseCategory(d.Category),
		Stacking:     parseStacking(d.Stacking),
		MaxStacks:    d.MaxStacks,
		SpeedMult:    orOne(d.SpeedMult),
		DamageMult:   orOne(d.DamageMult),
		AccuracyMult: orOne(d.AccuracyMult),
		PeriodicDmg:  d.PeriodicDmg,
		PeriodicHeal: d.PeriodicHeal,
	}
	if def.MaxStacks < 1 {
		def.MaxStacks = 1
	}
	return def
}

func parseCategory(s string) status.Category {
	switch s {
	case "buff":
		return status.CategoryBuff
	case "debuff":
		return status.CategoryDebuff
	case "stun":
		return status.CategoryStun
	default:
		return status.CategoryNeutral
	}
}

func parseStacking(s string) status.Stacking {
	switch s {
	case "stack_intensity":
		return status.StackIntensity
	case "stack_duration":
		return status.StackDuration
	case "no_stack":
		return status.NoStack
	default:
		return status.StackRefresh
	}
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ChainRuleDef defines a combination rule loaded from JSON.
type ChainRuleDef struct {
	Existing        string  `json:"existing"`        // Effect already on the target
	Trigger         string  `json:"trigger"`         // Incoming effect
	Result          string  `json:"result"`          // Effect created by the reaction
	ResultDuration  float64 `json:"resultDuration"`  // Duration of the result, in turns
	ConsumeExisting bool    `json:"consumeExisting"` // Remove the existing effect
	ConsumeTrigger  bool    `json:"consumeTrigger"`  // Suppress the incoming effect
}

// ToRule converts the JSON form into the engine's chain-rule type.
func (d *ChainRuleDef) ToRule() status.ChainRule {
	return status.ChainRule{
		Existing:        status.EffectType(d.Existing),
		Trigger:         status.EffectType(d.Trigger),
		Result:          status.EffectType(d.Result),
		ResultDuration:  d.ResultDuration,
		ConsumeExisting: d.ConsumeExisting,
		ConsumeTrigger:  d.ConsumeTrigger,
	}
}

// EffectsFile represents the structure of effects.json.
type EffectsFile struct {
	Effects []StatusEffectDef `json:"effects"`
}

// ChainsFile represents the structure of chains.json.
type ChainsFile struct {
	Chains []ChainRuleDef `json:"chains"`
}

// LoadStatusEffects loads effect definitions from the embedded effects.json file.
func LoadStatusEffects() ([]StatusEffectDef, error) {
	file, err := Load[EffectsFile]("effects.json")
	if err != nil {
		return nil, err
	}
	return file.Effects, nil
}

// LoadChainRules loads chain rules from the embedded chains.json file.
func LoadChainRules() ([]ChainRuleDef, error) {
	file, err := Load[ChainsFile]("chains.json")
	if err != nil {
		return nil, err
	}
	return file.Chains, nil
}

// LoadStatusEngine builds a status engine from the embedded effect and
// chain data.
func LoadStatusEngine() (*status.Engine, error) {
	effectDefs, err := LoadStatusEffects()
	if err != nil {
		return nil, err
	}
	if len(effectDefs) == 0 {
		return nil, errors.New("no effects loaded from effects.json")
	}
	chainDefs, err := LoadChainRules()
	if err != nil {
		return nil, err
	}

	defs := make([]status.Definition, len(effectDefs))
	for i := range effectDefs {
		defs[i] = effectDefs[i].ToDefinition()
	}
	chains := make([]status.ChainRule, len(chainDefs))
	for i := range chainDefs {
		chains[i] = chainDefs[i].ToRule()
	}
	return status.NewEngine(defs, chains), nil
}

// MustLoadStatusEngine builds a status engine, panicking on error.
func MustLoadStatusEngine() *status.Engine {
	engine, err := LoadStatusEngine()
	if err != nil {
		panic(err)
	}
	return engine
}
