package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded default configuration.
// It matches defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:      1800,
			MaxFallSpeed: 900,
			RunSpeed:     180,
			Accel:        1500,
			Friction:     1800,
			AirControl:   0.6,
			JumpSpeed:    600,
			SwingGravity: -9,
			SwingPump:    4,
			SwingDamping: 0.55,
		},
		Player: PlayerConfig{
			Width:        30,
			Height:       40,
			Health:       100,
			Stamina:      100,
			StaminaRegen: 10,
			HitGrace:     1,
			AttachRadius: 70,
		},
		Combat: CombatConfig{
			EnemyDamage:  10,
			HazardDamage: 5,
			EnemySpeed:   60,
			StompBounce:  0.5,
			StompDamage:  1,
		},
		Abilities: map[string]AbilityConfig{
			"dash":   {Cost: 20, Duration: 0.25, Cooldown: 0.5, SpeedFactor: 2.5, Impulse: 300},
			"spin":   {Cost: 15, Duration: 0.3, Cooldown: 1},
			"shield": {Cost: 30, Duration: 2, Cooldown: 5},
			"freeze": {Cost: 40, Duration: 3, Cooldown: 10},
			"burst":  {Cost: 25, Duration: 1.5, Cooldown: 3, SpeedFactor: 1.5},
			"tuck":   {Cost: 10, Duration: 0.5, Cooldown: 1},
		},
		Scoring: ScoringConfig{
			Coin:      10,
			Defeat:    50,
			Evade:     5,
			Flawless:  100,
			PerSecond: 10,
			Combo:     25,
		},
		Difficulty: DifficultyConfig{
			Default: DifficultyNormal,
			Presets: map[DifficultyPreset]PresetScaling{
				DifficultyEasy:   {TimeLimit: 1.5, Damage: 0.5, Regen: 1.5},
				DifficultyNormal: {TimeLimit: 1, Damage: 1, Regen: 1},
				DifficultyHard:   {TimeLimit: 0.75, Damage: 1.5, Regen: 0.75},
			},
		},
	}
}
