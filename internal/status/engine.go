package status

// minSpeedMult is the floor for the aggregate speed multiplier so an
// actor can never be fully immobilized by stacking slows.
const minSpeedMult = 0.1

// Engine evaluates stacking, chain rules and decay for effect lists.
type Engine struct {
	defs   map[EffectType]Definition
	chains []ChainRule
}

// NewEngine creates an engine from effect definitions and chain rules.
func NewEngine(defs []Definition, chains []ChainRule) *Engine {
	e := &Engine{
		defs:   make(map[EffectType]Definition, len(defs)),
		chains: chains,
	}
	for _, d := range defs {
		e.defs[d.Type] = d
	}
	return e
}

// Definition returns the definition for a type. Unknown types resolve to
// a safe default rather than failing.
func (e *Engine) Definition(t EffectType) Definition {
	if d, ok := e.defs[t]; ok {
		return d
	}
	return defaultDefinition(t)
}

// HasEffect reports whether the list contains an active effect of the
// given type.
func HasEffect(list []Instance, t EffectType) bool {
	for i := range list {
		if list[i].Type == t {
			return true
		}
	}
	return false
}

// Apply applies an effect of the given type to the list, evaluating
// chain rules before default stacking. It returns the instances actually
// applied, which may be chain results rather than the incoming effect.
func (e *Engine) Apply(list *[]Instance, t EffectType, duration float64, timing Timing, sourceID string) []Instance {
	var applied []Instance
	suppressed := false

	for _, rule := range e.chains {
		if rule.Trigger != t || !HasEffect(*list, rule.Existing) {
			continue
		}
		if rule.ConsumeExisting {
			remove(list, rule.Existing)
		}
		if rule.ConsumeTrigger {
			suppressed = true
		}
		result := Instance{
			Type:      rule.Result,
			SourceID:  sourceID,
			Remaining: rule.ResultDuration,
			Stacks:    1,
			Intensity: 1,
			Timing:    timing,
		}
		*list = append(*list, result)
		applied = append(applied, result)
	}

	if suppressed {
		return applied
	}

	if inst := e.stack(list, t, duration, timing, sourceID); inst != nil {
		applied = append(applied, *inst)
	}
	return applied
}

// stack applies or merges the incoming effect per its definition's
// stacking behavior, returning the resulting instance, or nil when a
// NoStack repeat was ignored.
func (e *Engine) stack(list *[]Instance, t EffectType, duration float64, timing Timing, sourceID string) *Instance {
	def := e.Definition(t)

	for i := range *list {
		existing := &(*list)[i]
		if existing.Type != t {
			continue
		}
		switch def.Stacking {
		case StackRefresh:
			if duration > existing.Remaining {
				existing.Remaining = duration
			}
		case StackIntensity:
			if existing.Stacks < e.maxStacks(def) {
				existing.Stacks++
				existing.Intensity = float64(existing.Stacks)
			}
			if duration > existing.Remaining {
				existing.Remaining = duration
			}
		case StackDuration:
			existing.Remaining += duration
		case NoStack:
			return nil
		}
		return existing
	}

	inst := Instance{
		Type:      t,
		SourceID:  sourceID,
		Remaining: duration,
		Stacks:    1,
		Intensity: 1,
		Timing:    timing,
	}
	*list = append(*list, inst)
	return &(*list)[len(*list)-1]
}

func (e *Engine) maxStacks(def Definition) int {
	if def.MaxStacks < 1 {
		return 1
	}
	return def.MaxStacks
}

// Remove deletes every instance of the given type from the list.
func Remove(list *[]Instance, t EffectType) {
	remove(list, t)
}

func remove(list *[]Instance, t EffectType) {
	kept := (*list)[:0]
	for _, inst := range *list {
		if inst.Type != t {
			kept = append(kept, inst)
		}
	}
	*list = kept
}

// UpdateRealTime decrements non-permanent real-time effects by the
// elapsed seconds, removing expired instances. It returns the types that
// expired.
func (e *Engine) UpdateRealTime(list *[]Instance, deltaTime float64) []EffectType {
	return e.update(list, TimingRealTime, deltaTime)
}

// UpdateTurnBased decrements non-permanent turn-based effects by one
// turn, removing expired instances. It returns the types that expired.
func (e *Engine) UpdateTurnBased(list *[]Instance) []EffectType {
	return e.update(list, TimingTurnBased, 1)
}

func (e *Engine) update(list *[]Instance, timing Timing, amount float64) []EffectType {
	var expired []EffectType
	kept := (*list)[:0]
	for _, inst := range *list {
		if !inst.Permanent && inst.Timing == timing {
			inst.Remaining -= amount
			if inst.Remaining <= 0 {
				expired = append(expired, inst.Type)
				continue
			}
		}
		kept = append(kept, inst)
	}
	*list = kept
	return expired
}

// SpeedMultiplier returns the product of per-effect speed multipliers
// scaled by intensity, floored at 0.1.
func (e *Engine) SpeedMultiplier(list []Instance) float64 {
	mult := 1.0
	for _, inst := range list {
		def := e.Definition(inst.Type)
		if def.SpeedMult != 1 {
			mult *= scaled(def.SpeedMult, inst.Intensity)
		}
	}
	if mult < minSpeedMult {
		mult = minSpeedMult
	}
	return mult
}

// DamageMultiplier returns the product of per-effect damage-output
// multipliers scaled by intensity.
func (e *Engine) DamageMultiplier(list []Instance) float64 {
	mult := 1.0
	for _, inst := range list {
		def := e.Definition(inst.Type)
		if def.DamageMult != 1 {
			mult *= scaled(def.DamageMult, inst.Intensity)
		}
	}
	return mult
}

// AccuracyMultiplier returns the product of per-effect accuracy
// multipliers scaled by intensity.
func (e *Engine) AccuracyMultiplier(list []Instance) float64 {
	mult := 1.0
	for _, inst := range list {
		def := e.Definition(inst.Type)
		if def.AccuracyMult != 1 {
			mult *= scaled(def.AccuracyMult, inst.Intensity)
		}
	}
	return mult
}

// PeriodicDamage sums per-effect periodic damage, each scaled by
// intensity and stack count.
func (e *Engine) PeriodicDamage(list []Instance) float64 {
	total := 0.0
	for _, inst := range list {
		def := e.Definition(inst.Type)
		total += def.PeriodicDmg * inst.Intensity * float64(inst.Stacks)
	}
	return total
}

// PeriodicHeal sums per-effect periodic healing, each scaled by
// intensity and stack count.
func (e *Engine) PeriodicHeal(list []Instance) float64 {
	total := 0.0
	for _, inst := range list {
		def := e.Definition(inst.Type)
		total += def.PeriodicHeal * inst.Intensity * float64(inst.Stacks)
	}
	return total
}

// IsStunned reports whether any active effect belongs to the stun
// category.
func (e *Engine) IsStunned(list []Instance) bool {
	for _, inst := range list {
		if e.Definition(inst.Type).Category == CategoryStun {
			return true
		}
	}
	return false
}

// scaled interpolates a multiplier toward its full strength by
// intensity: intensity 1 yields the base multiplier, higher intensities
// push it further from 1.
func scaled(mult, intensity float64) float64 {
	if intensity <= 0 {
		intensity = 1
	}
	return 1 + (mult-1)*intensity
}
