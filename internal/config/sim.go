package config

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/score"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// SimConfig builds the simulation config for a preset. loadout is used unless
// the file names its own.
func (c PlatformerConfig) SimConfig(preset DifficultyPreset, loadout []ability.Kind) (sim.Config, error) {
	scale := c.Scaling(preset)
	cfg := sim.DefaultConfig()

	cfg.Physics = physics.Params{
		Gravity:      c.Physics.Gravity,
		MaxFallSpeed: c.Physics.MaxFallSpeed,
		RunSpeed:     c.Physics.RunSpeed,
		Accel:        c.Physics.Accel,
		Friction:     c.Physics.Friction,
		AirControl:   c.Physics.AirControl,
		JumpSpeed:    c.Physics.JumpSpeed,
		SwingGravity: c.Physics.SwingGravity,
		SwingPump:    c.Physics.SwingPump,
		SwingDamping: c.Physics.SwingDamping,
	}

	cfg.Collision.HitGrace = c.Player.HitGrace
	cfg.Collision.AttachRadius = c.Player.AttachRadius
	cfg.Collision.EnemyDamage = c.Combat.EnemyDamage
	cfg.Collision.HazardDamage = c.Combat.HazardDamage
	cfg.Collision.StompBounce = c.Combat.StompBounce
	cfg.Collision.StompDamage = c.Combat.StompDamage
	cfg.Collision.CoinPoints = c.Scoring.Coin
	cfg.Collision.DamageScale = scale.Damage

	cfg.Level.PlayerSize.X = c.Player.Width
	cfg.Level.PlayerSize.Y = c.Player.Height
	cfg.Level.Player.Health = c.Player.Health
	cfg.Level.Player.MaxHealth = c.Player.Health
	cfg.Level.Player.Stamina = c.Player.Stamina
	cfg.Level.Player.MaxStamina = c.Player.Stamina
	cfg.Level.EnemySpeed = c.Combat.EnemySpeed
	cfg.Level.CoinPoints = c.Scoring.Coin

	defaults := ability.Defaults()
	for name, ac := range c.Abilities {
		k, err := ability.ParseKind(name)
		if err != nil {
			return sim.Config{}, fmt.Errorf("abilities: %w", err)
		}
		d := defaults[k]
		d.Cost = ac.Cost
		d.Duration = ac.Duration
		d.Cooldown = ac.Cooldown
		d.SpeedFactor = ac.SpeedFactor
		d.Impulse = ac.Impulse
		cfg.Abilities[k] = d
	}

	cfg.Loadout = loadout
	if len(c.Loadout) > 0 {
		cfg.Loadout = make([]ability.Kind, 0, len(c.Loadout))
		for _, name := range c.Loadout {
			k, err := ability.ParseKind(name)
			if err != nil {
				return sim.Config{}, fmt.Errorf("loadout: %w", err)
			}
			cfg.Loadout = append(cfg.Loadout, k)
		}
	}

	cfg.Regen = c.Player.StaminaRegen * scale.Regen
	cfg.TimeScale = scale.TimeLimit
	cfg.Points = score.Points{
		Pickup:       c.Scoring.Coin,
		Defeat:       c.Scoring.Defeat,
		Evade:        c.Scoring.Evade,
		Flawless:     c.Scoring.Flawless,
		PerSecond:    c.Scoring.PerSecond,
		ComboPerLink: c.Scoring.Combo,
	}
	return cfg, nil
}
