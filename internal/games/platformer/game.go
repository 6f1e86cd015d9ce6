// Package platformer implements the single-level platformer games of the
// arcade. Every variant shares one simulation core and differs only in its
// level, ability loadout and whether vines can be grabbed.
package platformer

import (
	"embed"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/script"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

//go:embed levels/*.json
var levelFS embed.FS

// Levels returns a loader over the built-in levels.
func Levels() *level.Loader {
	return level.NewLoader(levelFS, "levels")
}

// Variant describes one registered game.
type Variant struct {
	ID          string
	Title       string
	Description string
	Loadout     []ability.Kind
	Swing       bool
}

// Game runs one variant.
type Game struct {
	variant Variant
	config  core.RuntimeConfig
	log     *log.Logger
	world   *sim.World
}

// New creates a game for a variant. Reset must be called before Step.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	return g.variant.Description
}

// Variant returns the variant the game was created for.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset loads the tuning and the level and puts the game on its title screen.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.config = cfg
	g.log = cfg.Logger
	if g.log == nil {
		g.log = log.New(io.Discard)
	}

	tuning, err := config.Load(g.variant.ID, cfg.ConfigPath)
	if err != nil {
		return err
	}
	preset, err := tuning.ParsePreset(cfg.Difficulty)
	if err != nil {
		return err
	}
	simCfg, err := tuning.SimConfig(preset, g.variant.Loadout)
	if err != nil {
		return fmt.Errorf("config %s: %w", g.variant.ID, err)
	}
	simCfg.Swing = g.variant.Swing
	simCfg.OnWarning = func(err error) {
		g.log.Warn("level warning", "game", g.variant.ID, "error", err)
	}

	desc, err := g.descriptor()
	if err != nil {
		return err
	}
	if desc.ScoreScript != "" {
		prog, err := script.Compile(desc.ScoreScript)
		if err != nil {
			// The level stays playable without its bonus.
			g.log.Warn("score script disabled", "level", desc.Name, "error", err)
		} else {
			simCfg.Bonus = scriptBonus(prog)
		}
	}

	world, err := sim.NewWorld(desc, simCfg)
	if err != nil {
		return err
	}
	g.world = world
	g.log.Debug("level loaded", "game", g.variant.ID, "level", desc.Name, "difficulty", preset)
	return nil
}

// descriptor picks the level: a named level from LevelDir or the built-ins,
// defaulting to the level named after the variant.
func (g *Game) descriptor() (*level.Descriptor, error) {
	loader := Levels()
	if g.config.LevelDir != "" {
		loader = level.DirLoader(g.config.LevelDir)
	}
	name := g.config.Level
	if name == "" {
		name = g.variant.ID
	}
	return loader.LoadByName(name)
}

func scriptBonus(prog *script.Program) sim.BonusFunc {
	return func(in sim.BonusInput) (int, error) {
		return prog.Bonus(script.Vars{
			Score:     in.Stats.Score,
			TimeLeft:  in.TimeLeft,
			Health:    in.Health,
			MaxHealth: in.MaxHealth,
			Collected: in.Stats.Collected,
			Defeated:  in.Stats.Defeated,
			Evades:    in.Stats.Evades,
		})
	}
}

// Step advances the game by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}
	return g.world.Step(in, dt)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return g.world.State()
}

// World exposes the simulation for frontends that draw it themselves.
func (g *Game) World() *sim.World {
	return g.world
}

// Snapshot returns the simulation snapshot, used by determinism tests.
func (g *Game) Snapshot() sim.Snapshot {
	if g.world == nil {
		return sim.Snapshot{}
	}
	return g.world.Snapshot()
}
