package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	data := []byte(`
seed: 99
combat:
  trigger_range: 7
  reinforce_range: 2
  zone:
    initial_radius: 10
    max_radius: 16
    edge_threshold: 2
    expand_by: 3
    max_expansions: 1
    cooldown_seconds: 8
    flee_buffer: 5
  economy:
    max_reserved_ap: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Seed)
	}
	if cfg.Combat.TriggerRange != 7 {
		t.Errorf("TriggerRange = %d, want 7", cfg.Combat.TriggerRange)
	}
	if cfg.Combat.Zone.InitialRadius != 10 || cfg.Combat.Zone.MaxExpansions != 1 {
		t.Errorf("zone = %+v, not loaded from file", cfg.Combat.Zone)
	}
	if cfg.Combat.Economy.MaxReservedAP != 2 {
		t.Errorf("MaxReservedAP = %d, want 2", cfg.Combat.Economy.MaxReservedAP)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing explicit path should fail")
	}
}

func TestLoadBadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	if err := os.WriteFile(path, []byte("combat: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML should fail")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var embedded Config
	if err := yaml.Unmarshal(defaultYAML, &embedded); err != nil {
		t.Fatalf("embedded default.yaml does not parse: %v", err)
	}
	if embedded != Default() {
		t.Errorf("embedded default = %+v, hardcoded fallback = %+v; keep them in sync", embedded, Default())
	}
}
