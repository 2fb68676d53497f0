// Package config provides YAML-based tuning for the combat core.
package config

// Config is the top-level configuration.
type Config struct {
	Seed   int64        `yaml:"seed"` // 0 = random seed
	Combat CombatConfig `yaml:"combat"`
}

// CombatConfig tunes the combat orchestrator.
type CombatConfig struct {
	// TriggerRange is the Chebyshev distance at which a chasing hostile
	// actor starts combat.
	TriggerRange int `yaml:"trigger_range"`
	// ReinforceRange is the tighter range around the player inside
	// which non-member actors join an ongoing combat.
	ReinforceRange int `yaml:"reinforce_range"`

	Zone    ZoneConfig    `yaml:"zone"`
	Economy EconomyConfig `yaml:"economy"`
}

// ZoneConfig tunes combat-zone geometry and expansion.
type ZoneConfig struct {
	InitialRadius int     `yaml:"initial_radius"`
	MaxRadius     int     `yaml:"max_radius"`
	EdgeThreshold int     `yaml:"edge_threshold"`
	ExpandBy      int     `yaml:"expand_by"`
	MaxExpansions int     `yaml:"max_expansions"`
	CooldownSecs  float64 `yaml:"cooldown_seconds"`
	// FleeBuffer is the distance past the radius at which an enemy has
	// fled combat.
	FleeBuffer int `yaml:"flee_buffer"`
}

// EconomyConfig tunes the action-point economy.
type EconomyConfig struct {
	// MaxReservedAP caps the unused AP the player may carry into the
	// next turn.
	MaxReservedAP int `yaml:"max_reserved_ap"`
}
