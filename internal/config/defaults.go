package config

import _ "embed"

//go:embed default.yaml
var defaultYAML []byte

// Default returns the hardcoded fallback configuration, used when the
// embedded default cannot be parsed.
func Default() Config {
	return Config{
		Combat: CombatConfig{
			TriggerRange:   5,
			ReinforceRange: 4,
			Zone: ZoneConfig{
				InitialRadius: 12,
				MaxRadius:     20,
				EdgeThreshold: 3,
				ExpandBy:      2,
				MaxExpansions: 3,
				CooldownSecs:  5,
				FleeBuffer:    4,
			},
			Economy: EconomyConfig{
				MaxReservedAP: 3,
			},
		},
	}
}
