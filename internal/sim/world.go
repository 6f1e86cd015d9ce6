// Package sim runs one level: it owns the game context and steps every
// system in a fixed order each tick.
package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/collision"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/score"
	"github.com/vovakirdan/tui-platformer/internal/state"
)

// BonusInput is what a completion bonus is computed from.
type BonusInput struct {
	Stats     score.Stats
	TimeLeft  float64
	Health    float64
	MaxHealth float64
}

// BonusFunc computes an extra completion bonus. An error counts as zero.
type BonusFunc func(in BonusInput) (int, error)

// Config tunes a World.
type Config struct {
	Physics   physics.Params
	Collision collision.Config
	Level     level.Options
	Abilities map[ability.Kind]ability.Def
	Loadout   []ability.Kind // bound to core.AbilitySlots in order
	Regen     float64        // stamina per second
	Points    score.Points
	Swing     bool    // pivots can be grabbed
	TimeScale float64 // multiplies the level time limit, 0 means 1

	Bonus     BonusFunc
	OnWarning func(err error) // non-fatal problems, e.g. a failing bonus script
}

// DefaultConfig returns a config with every ability available.
func DefaultConfig() Config {
	return Config{
		Physics:   physics.DefaultParams(),
		Collision: collision.DefaultConfig(),
		Level:     level.DefaultOptions(),
		Abilities: ability.Defaults(),
		Loadout:   []ability.Kind{ability.Dash, ability.Shield, ability.Tuck},
		Regen:     10,
		Points:    score.DefaultPoints(),
		Swing:     true,
		TimeScale: 1,
	}
}

// GameContext is all mutable state of one attempt at a level.
type GameContext struct {
	Store      *entity.Store
	Params     physics.Params
	Bounds     core.Box
	Goal       core.Box
	Player     entity.ID
	Keeper     *score.Keeper
	Machine    *state.Machine
	Level      string
	TimeLimit  float64 // seconds, 0 when untimed
	Elapsed    float64
	Remaining  float64 // seconds left, -1 when untimed
	Tick       uint64
	Events     []core.Event
	Destroyed  map[entity.Kind]int
	Bonus      int // completion bonus awarded on the winning tick
	Generation int // incremented on every reload
}

// World steps a level.
type World struct {
	cfg  Config
	desc *level.Descriptor

	ctx        *GameContext
	machine    *state.Machine
	integrator *physics.Integrator
	resolver   *collision.Resolver
	abilities  *ability.Scheduler

	prev core.InputFrame
	step []core.Event
}

// NewWorld loads a level. The world starts in the Menu state.
func NewWorld(desc *level.Descriptor, cfg Config) (*World, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil descriptor", level.ErrInvalid)
	}
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1
	}
	cfg.Collision.JumpSpeed = cfg.Physics.JumpSpeed

	w := &World{cfg: cfg, desc: desc, machine: state.New(), prev: core.NewInputFrame()}
	if err := w.load(); err != nil {
		return nil, err
	}
	w.machine.OnEnter(state.Menu, func(state.State, state.Event) { w.reload() })
	w.machine.OnEnter(state.Playing, func(from state.State, _ state.Event) {
		if from.Terminal() {
			w.reload()
		}
	})
	return w, nil
}

func (w *World) load() error {
	store := entity.NewStore()
	loaded, err := level.LoadWith(w.desc, store, w.cfg.Level)
	if err != nil {
		return err
	}

	ctx := &GameContext{
		Store:      store,
		Params:     w.cfg.Physics,
		Bounds:     loaded.Bounds,
		Goal:       loaded.Goal,
		Player:     loaded.Player,
		Keeper:     score.NewKeeper(w.cfg.Points, loaded.Objectives),
		Machine:    w.machine,
		Level:      loaded.Name,
		TimeLimit:  loaded.TimeLimit * w.cfg.TimeScale,
		Remaining:  -1,
		Destroyed:  make(map[entity.Kind]int),
		Generation: 1,
	}
	if w.ctx != nil {
		ctx.Generation = w.ctx.Generation + 1
	}
	if ctx.TimeLimit > 0 {
		ctx.Remaining = ctx.TimeLimit
	}
	store.OnDestroy(func(v entity.View) {
		ctx.Destroyed[v.Tag.Kind]++
	})

	w.ctx = ctx
	w.integrator = physics.NewIntegrator(w.cfg.Physics, loaded.Bounds)
	w.resolver = collision.NewResolver(store, w.cfg.Collision)
	w.abilities = ability.NewScheduler(w.cfg.Regen, w.cfg.Abilities)
	return nil
}

func (w *World) reload() {
	if err := w.load(); err != nil {
		w.warn(fmt.Errorf("reload level: %w", err))
	}
}

func (w *World) warn(err error) {
	if w.cfg.OnWarning != nil {
		w.cfg.OnWarning(err)
	}
}

// Context returns the current game context. It is replaced on reload.
func (w *World) Context() *GameContext {
	return w.ctx
}

// Descriptor returns the level being played.
func (w *World) Descriptor() *level.Descriptor {
	return w.desc
}

// Config returns the world's configuration.
func (w *World) Config() Config {
	return w.cfg
}

// Start moves the world from Menu to Playing.
func (w *World) Start() bool {
	return w.machine.Fire(state.Start)
}

// Step advances the world by dt seconds.
//
// While playing the order is: pause input, abilities, attach/detach and jump,
// patrols, integration with collision resolution, periodic hazard time,
// contacts, ability timers, objectives, win and lose checks, and finally the
// deferred removal of dead entities.
func (w *World) Step(in core.InputFrame, dt float64) core.StepResult {
	w.step = nil
	pressed := func(a core.Action) bool { return in.Has(a) && !w.prev.Has(a) }
	defer func() { w.prev = in.Clone() }()

	switch w.machine.Current() {
	case state.Menu:
		if pressed(core.ActionConfirm) || pressed(core.ActionJump) {
			w.machine.Fire(state.Start)
		}
		return w.result()
	case state.Paused:
		// Paused only ever returns to Playing; Back closes the pause too.
		if pressed(core.ActionPause) || pressed(core.ActionBack) {
			w.machine.Fire(state.Pause)
		}
		return w.result()
	case state.LevelComplete, state.GameOver:
		switch {
		case pressed(core.ActionRestart), pressed(core.ActionConfirm):
			w.machine.Fire(state.Restart)
		case pressed(core.ActionBack):
			w.machine.Fire(state.ToMenu)
		}
		return w.result()
	}

	if pressed(core.ActionPause) {
		w.machine.Fire(state.Pause)
		return w.result()
	}
	if dt <= 0 {
		return w.result()
	}

	ctx := w.ctx
	ctx.Tick++
	ctx.Elapsed += dt
	pb := ctx.Store.Body(ctx.Player)
	pl := ctx.Store.Player(ctx.Player)
	if pb == nil || pl == nil {
		return w.result()
	}

	for i, slot := range core.AbilitySlots {
		if i >= len(w.cfg.Loadout) || !pressed(slot) {
			continue
		}
		k := w.cfg.Loadout[i]
		if w.abilities.Activate(pl, pb, k) {
			def, _ := w.abilities.Def(k)
			w.emit(core.Event{Kind: core.EventAbility, Target: k.String(), Amount: def.Cost})
		}
	}

	w.swingAndJump(pressed, pb, pl)

	frozen := pl.Status.Has(entity.StatusFreezing)
	physics.Patrol(ctx.Store, dt, frozen)

	wasGrounded := pl.Motion == entity.Grounded
	ctl := physics.Control{Move: in.Horizontal(), Pump: pump(in)}
	w.integrator.Step(ctx.Store, ctx.Player, ctl, dt, w.resolver)
	w.resolver.UpdateCrumbles(ctx.Player, dt)
	if !wasGrounded && pl.Motion == entity.Grounded {
		w.emit(core.Event{Kind: core.EventLand, Amount: float64(pl.Swings)})
		pl.Swings = 0
	}

	w.resolver.SetTime(ctx.Elapsed)
	for _, ev := range w.resolver.Contacts(ctx.Player, frozen) {
		w.emit(ev)
	}

	w.abilities.Tick(pl, dt)

	for _, ev := range w.step {
		ctx.Keeper.Apply(ev)
	}
	ctx.Keeper.Visit(pb.Center())
	if ctx.TimeLimit > 0 {
		ctx.Remaining = max(0, ctx.TimeLimit-ctx.Elapsed)
	}

	w.checkEnd(pb, pl)

	ctx.Store.Flush()
	return w.result()
}

func (w *World) swingAndJump(pressed func(core.Action) bool, pb *entity.Body, pl *entity.Player) {
	ctx := w.ctx
	if pl.Motion == entity.Swinging {
		if ev, ok := w.resolver.CheckPivot(ctx.Player); ok {
			w.emit(ev)
			return
		}
		if pressed(core.ActionAttach) || pressed(core.ActionJump) {
			if ev, ok := w.resolver.Detach(ctx.Player); ok {
				w.emit(ev)
			}
		}
		return
	}
	if w.cfg.Swing && pressed(core.ActionAttach) {
		if ev, ok := w.resolver.Attach(ctx.Player); ok {
			w.emit(ev)
			return
		}
	}
	if pressed(core.ActionJump) && pl.Motion == entity.Grounded {
		pb.Vel.Y = -w.cfg.Physics.JumpSpeed
		pl.Motion = entity.Airborne
		pl.Ground = entity.ID{}
	}
}

func pump(in core.InputFrame) float64 {
	p := 0.0
	if in.Has(core.ActionUp) {
		p++
	}
	if in.Has(core.ActionDown) {
		p--
	}
	return p
}

// checkEnd applies the lose conditions first, then the win condition.
func (w *World) checkEnd(pb *entity.Body, pl *entity.Player) {
	ctx := w.ctx
	reason := state.ReasonNone
	switch {
	case pl.Health <= 0:
		reason = state.ReasonHealth
	case pl.FellOut:
		reason = state.ReasonFell
	case ctx.TimeLimit > 0 && ctx.Remaining <= 0:
		reason = state.ReasonTimeout
	}
	if reason != state.ReasonNone {
		if w.machine.FireLose(reason) {
			w.emit(core.Event{Kind: core.EventLose, Target: string(reason)})
		}
		return
	}

	if !ctx.Keeper.LevelComplete(pb.Box(), ctx.Goal) {
		return
	}
	bonus := ctx.Keeper.Finish(ctx.Remaining)
	if w.cfg.Bonus != nil {
		extra, err := w.cfg.Bonus(BonusInput{
			Stats:     ctx.Keeper.Stats(),
			TimeLeft:  ctx.Remaining,
			Health:    pl.Health,
			MaxHealth: pl.MaxHealth,
		})
		if err != nil {
			w.warn(err)
			extra = 0
		}
		ctx.Keeper.Add(extra)
		bonus += extra
	}
	ctx.Bonus = bonus
	if w.machine.Fire(state.Win) {
		w.emit(core.Event{Kind: core.EventWin, Amount: float64(bonus)})
	}
}

// emit stamps an event with the tick, time and player position.
func (w *World) emit(ev core.Event) {
	ctx := w.ctx
	ev.Tick = ctx.Tick
	ev.Time = ctx.Elapsed
	if pb := ctx.Store.Body(ctx.Player); pb != nil {
		c := pb.Center()
		ev.X, ev.Y = c.X, c.Y
	}
	w.step = append(w.step, ev)
	ctx.Events = append(ctx.Events, ev)
}

func (w *World) result() core.StepResult {
	return core.StepResult{State: w.State(), Events: w.step}
}

// State summarizes the world for the platform layer.
func (w *World) State() core.GameState {
	ctx := w.ctx
	cur := w.machine.Current()
	gs := core.GameState{
		Score:     ctx.Keeper.Score(),
		GameOver:  cur.Terminal(),
		Won:       cur == state.LevelComplete,
		Paused:    cur == state.Paused,
		Phase:     string(cur),
		Level:     ctx.Level,
		Elapsed:   ctx.Elapsed,
		Remaining: ctx.Remaining,
	}
	switch cur {
	case state.LevelComplete:
		gs.Outcome = "complete"
	case state.GameOver:
		gs.Outcome = string(w.machine.Reason())
	}
	return gs
}

// AbilityInfo describes one loadout slot for the HUD.
type AbilityInfo struct {
	Slot     core.Action
	Kind     ability.Kind
	Active   float64
	Cooldown float64
	Ready    bool
}

// Abilities reports the loadout state of the player.
func (w *World) Abilities() []AbilityInfo {
	pl := w.ctx.Store.Player(w.ctx.Player)
	if pl == nil {
		return nil
	}
	var out []AbilityInfo
	for i, k := range w.cfg.Loadout {
		if i >= len(core.AbilitySlots) || int(k) >= entity.MaxAbilities {
			break
		}
		t := pl.Timers[k]
		out = append(out, AbilityInfo{
			Slot:     core.AbilitySlots[i],
			Kind:     k,
			Active:   t.Active,
			Cooldown: t.Cooldown,
			Ready:    w.abilities.Ready(pl, k),
		})
	}
	return out
}
