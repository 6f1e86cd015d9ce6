// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer variants.
package config

// PlatformerConfig contains all tunable configuration of a platformer variant.
type PlatformerConfig struct {
	Physics    PhysicsConfig            `yaml:"physics"`
	Player     PlayerConfig             `yaml:"player"`
	Combat     CombatConfig             `yaml:"combat"`
	Abilities  map[string]AbilityConfig `yaml:"abilities"`
	Loadout    []string                 `yaml:"loadout"` // empty keeps the variant's loadout
	Scoring    ScoringConfig            `yaml:"scoring"`
	Difficulty DifficultyConfig         `yaml:"difficulty"`
}

// PhysicsConfig defines integrator constants in pixels and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	RunSpeed     float64 `yaml:"run_speed"`
	Accel        float64 `yaml:"accel"`
	Friction     float64 `yaml:"friction"`
	AirControl   float64 `yaml:"air_control"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	SwingGravity float64 `yaml:"swing_gravity"`
	SwingPump    float64 `yaml:"swing_pump"`
	SwingDamping float64 `yaml:"swing_damping"`
}

// PlayerConfig defines the player body and resources.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Health       float64 `yaml:"health"`
	Stamina      float64 `yaml:"stamina"`
	StaminaRegen float64 `yaml:"stamina_regen"` // per second
	HitGrace     float64 `yaml:"hit_grace"`     // seconds of invulnerability after a hit
	AttachRadius float64 `yaml:"attach_radius"`
}

// CombatConfig defines enemy and hazard behavior.
type CombatConfig struct {
	EnemyDamage  float64 `yaml:"enemy_damage"`
	HazardDamage float64 `yaml:"hazard_damage"`
	EnemySpeed   float64 `yaml:"enemy_speed"`
	StompBounce  float64 `yaml:"stomp_bounce"`
	StompDamage  float64 `yaml:"stomp_damage"`
}

// AbilityConfig tunes one ability. Status flags are fixed per ability.
type AbilityConfig struct {
	Cost        float64 `yaml:"cost"`
	Duration    float64 `yaml:"duration"`
	Cooldown    float64 `yaml:"cooldown"`
	SpeedFactor float64 `yaml:"speed_factor"`
	Impulse     float64 `yaml:"impulse"`
}

// ScoringConfig defines the points table.
type ScoringConfig struct {
	Coin      int `yaml:"coin"`
	Defeat    int `yaml:"defeat"`
	Evade     int `yaml:"evade"`
	Flawless  int `yaml:"flawless"`
	PerSecond int `yaml:"per_second"`
	Combo     int `yaml:"combo"`
}

// DifficultyConfig holds the named presets.
type DifficultyConfig struct {
	Default DifficultyPreset                   `yaml:"default"`
	Presets map[DifficultyPreset]PresetScaling `yaml:"presets"`
}

// PresetScaling multiplies base values for one preset.
type PresetScaling struct {
	TimeLimit float64 `yaml:"time_limit"`
	Damage    float64 `yaml:"damage"`
	Regen     float64 `yaml:"regen"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the preset names in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}
