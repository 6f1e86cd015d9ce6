package config

import "fmt"

// ParsePreset validates a preset name. The empty string selects the
// configured default.
func (c PlatformerConfig) ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		name = string(c.Difficulty.Default)
	}
	p := DifficultyPreset(name)
	if _, ok := c.Difficulty.Presets[p]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", name)
	}
	return p, nil
}

// Scaling returns the multipliers of a preset. Unknown presets and zero
// multipliers scale by 1.
func (c PlatformerConfig) Scaling(preset DifficultyPreset) PresetScaling {
	s := c.Difficulty.Presets[preset]
	if s.TimeLimit <= 0 {
		s.TimeLimit = 1
	}
	if s.Damage <= 0 {
		s.Damage = 1
	}
	if s.Regen <= 0 {
		s.Regen = 1
	}
	return s
}
