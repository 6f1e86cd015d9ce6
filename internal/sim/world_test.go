package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/score"
	"github.com/vovakirdan/tui-platformer/internal/state"
)

const dt = 1.0 / 60

// flatLevel has the player resting on a floor at y=240.
func flatLevel() *level.Descriptor {
	return &level.Descriptor{
		Name:        "flat",
		Size:        level.Size{Width: 800, Height: 400},
		SpawnPoints: []level.Spawn{{X: 100, Y: 200, Type: "player"}},
		Platforms: []level.Platform{
			{Area: level.Area{X: 0, Y: 240, Width: 800, Height: 20}, Type: "ground"},
		},
	}
}

func newWorld(t *testing.T, d *level.Descriptor, cfg Config) *World {
	t.Helper()
	w, err := NewWorld(d, cfg)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	if !w.Start() {
		t.Fatal("Start() failed")
	}
	return w
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func (w *World) player() (*entity.Body, *entity.Player) {
	return w.ctx.Store.Body(w.ctx.Player), w.ctx.Store.Player(w.ctx.Player)
}

func TestNewWorldErrors(t *testing.T) {
	d := flatLevel()
	d.SpawnPoints = nil
	if _, err := NewWorld(d, DefaultConfig()); !errors.Is(err, level.ErrNoPlayerSpawn) {
		t.Errorf("NewWorld() = %v, expected ErrNoPlayerSpawn", err)
	}
	if _, err := NewWorld(nil, DefaultConfig()); !errors.Is(err, level.ErrInvalid) {
		t.Errorf("NewWorld(nil) = %v, expected ErrInvalid", err)
	}
}

func TestMenuStart(t *testing.T) {
	w, err := NewWorld(flatLevel(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	res := w.Step(idle(), dt)
	if res.State.Phase != string(state.Menu) || w.ctx.Tick != 0 {
		t.Fatalf("idle menu step: phase %q tick %d", res.State.Phase, w.ctx.Tick)
	}

	res = w.Step(core.Frame(core.ActionConfirm), dt)
	if res.State.Phase != string(state.Playing) {
		t.Errorf("Phase = %q after confirm, expected playing", res.State.Phase)
	}
}

func TestLandingEmitsEvent(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())

	res := w.Step(idle(), dt)
	pb, pl := w.player()
	if pl.Motion != entity.Grounded {
		t.Errorf("Motion = %v, expected grounded", pl.Motion)
	}
	if pb.Box().Bottom() != 240 || pb.Vel.Y != 0 {
		t.Errorf("bottom = %v, vy = %v", pb.Box().Bottom(), pb.Vel.Y)
	}
	if !hasEvent(res.Events, core.EventLand) {
		t.Errorf("events = %+v, expected a land event", res.Events)
	}
	ev := res.Events[0]
	if ev.Tick != 1 || ev.Time != dt || ev.X != pb.Center().X {
		t.Errorf("event not stamped: %+v", ev)
	}

	res = w.Step(idle(), dt)
	if hasEvent(res.Events, core.EventLand) {
		t.Error("standing still should not land again")
	}
}

func TestJump(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())
	w.Step(idle(), dt)

	w.Step(core.Frame(core.ActionJump), dt)
	pb, pl := w.player()
	if pl.Motion != entity.Airborne || pb.Vel.Y >= 0 {
		t.Errorf("after jump: motion %v vy %v", pl.Motion, pb.Vel.Y)
	}

	// Holding jump does not jump again on landing.
	held := core.Frame(core.ActionJump)
	for range 120 {
		w.Step(held, dt)
	}
	if pl.Motion != entity.Grounded {
		t.Errorf("Motion = %v after holding jump for 2s, expected grounded", pl.Motion)
	}
}

func TestRunRight(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())
	pb, _ := w.player()
	start := pb.Pos.X

	for range 30 {
		w.Step(core.Frame(core.ActionRight), dt)
	}
	if pb.Pos.X <= start || pb.Vel.X <= 0 {
		t.Errorf("x %v -> %v, vx %v", start, pb.Pos.X, pb.Vel.X)
	}
}

func TestPickupScoresAndIsRemoved(t *testing.T) {
	d := flatLevel()
	d.Powerups = []level.Powerup{{X: 115, Y: 220, Type: "coin"}}
	w := newWorld(t, d, DefaultConfig())

	res := w.Step(idle(), dt)
	if !hasEvent(res.Events, core.EventPickup) {
		t.Fatalf("events = %+v, expected a pickup", res.Events)
	}
	if res.State.Score != 10 {
		t.Errorf("Score = %d, expected 10", res.State.Score)
	}
	if n := w.ctx.Store.Count(entity.KindPickup); n != 0 {
		t.Errorf("Count(pickup) = %d after the tick, expected 0", n)
	}
	if w.ctx.Destroyed[entity.KindPickup] != 1 {
		t.Errorf("Destroyed = %v", w.ctx.Destroyed)
	}
}

// Objectives collect 3/3 and defeat 2/2 met inside the goal zone complete the
// level on that tick.
func TestObjectivesInGoalZoneWin(t *testing.T) {
	d := flatLevel()
	d.Objectives = []level.Objective{
		{Type: "collect", Count: 3},
		{Type: "defeat", Count: 2},
	}
	d.Goal = &level.Area{X: 80, Y: 180, Width: 80, Height: 60}
	w := newWorld(t, d, DefaultConfig())

	res := w.Step(idle(), dt)
	if res.State.Phase != string(state.Playing) {
		t.Fatalf("Phase = %q before objectives are met", res.State.Phase)
	}

	k := w.ctx.Keeper
	for range 3 {
		k.Apply(core.Event{Kind: core.EventPickup, Target: "coin", Amount: 10})
	}
	k.Apply(core.Event{Kind: core.EventDefeat, Target: "crab"})
	res = w.Step(idle(), dt)
	if res.State.Phase != string(state.Playing) {
		t.Fatalf("Phase = %q with defeat 1/2", res.State.Phase)
	}

	k.Apply(core.Event{Kind: core.EventDefeat, Target: "crab"})
	res = w.Step(idle(), dt)
	if res.State.Phase != string(state.LevelComplete) || !res.State.Won || res.State.Outcome != "complete" {
		t.Errorf("state = %+v, expected level complete", res.State)
	}
	if !hasEvent(res.Events, core.EventWin) {
		t.Errorf("events = %+v, expected a win event", res.Events)
	}
	// 30 coins + 100 defeats + 100 flawless.
	if res.State.Score != 230 {
		t.Errorf("Score = %d, expected 230", res.State.Score)
	}
}

func TestObjectivesOutsideGoalZone(t *testing.T) {
	d := flatLevel()
	d.Objectives = []level.Objective{{Type: "collect", Count: 1}}
	d.Goal = &level.Area{X: 700, Y: 180, Width: 80, Height: 60}
	w := newWorld(t, d, DefaultConfig())
	w.ctx.Keeper.Apply(core.Event{Kind: core.EventPickup})

	res := w.Step(idle(), dt)
	if res.State.GameOver {
		t.Errorf("state = %+v, the player is not in the goal zone", res.State)
	}
}

func TestLoseConditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *level.Descriptor)
		steps  int
		reason state.Reason
	}{
		{"health", func(d *level.Descriptor) {
			d.Hazards = []level.Hazard{{Area: level.Area{X: 100, Y: 200, Width: 40, Height: 40}, Damage: 500}}
		}, 2, state.ReasonHealth},
		{"timeout", func(d *level.Descriptor) { d.TimeLimit = 1 }, 70, state.ReasonTimeout},
		{"fell", func(d *level.Descriptor) { d.Platforms = nil }, 120, state.ReasonFell},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := flatLevel()
			tc.mutate(d)
			w := newWorld(t, d, DefaultConfig())

			var lost []core.Event
			for range tc.steps {
				res := w.Step(idle(), dt)
				for _, ev := range res.Events {
					if ev.Kind == core.EventLose {
						lost = append(lost, ev)
					}
				}
			}
			st := w.State()
			if st.Phase != string(state.GameOver) || st.Won {
				t.Fatalf("state = %+v, expected game over", st)
			}
			if st.Outcome != string(tc.reason) {
				t.Errorf("Outcome = %q, expected %q", st.Outcome, tc.reason)
			}
			if len(lost) != 1 || lost[0].Target != string(tc.reason) {
				t.Errorf("lose events = %+v, expected exactly one", lost)
			}
		})
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())
	w.Step(idle(), dt)

	res := w.Step(core.Frame(core.ActionPause), dt)
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	tick := w.ctx.Tick
	for range 10 {
		w.Step(core.Frame(core.ActionPause), dt)
		w.Step(core.Frame(core.ActionRight), dt)
		w.Step(core.Frame(core.ActionPause), dt)
		w.Step(core.Frame(core.ActionRight), dt)
	}
	if w.ctx.Tick <= tick {
		t.Error("toggling pause should have resumed the simulation")
	}

	w.Step(idle(), dt)
	w.Step(core.Frame(core.ActionPause), dt)
	if !w.State().Paused {
		t.Fatal("expected paused")
	}
	tick = w.ctx.Tick
	for range 10 {
		w.Step(core.Frame(core.ActionPause), dt)
	}
	if !w.State().Paused || w.ctx.Tick != tick {
		t.Errorf("held pause must not toggle: paused %v, tick %d -> %d", w.State().Paused, tick, w.ctx.Tick)
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	d := flatLevel()
	d.TimeLimit = 0.5
	d.Powerups = []level.Powerup{{X: 115, Y: 220, Type: "coin"}}
	w := newWorld(t, d, DefaultConfig())
	for range 40 {
		w.Step(idle(), dt)
	}
	if w.State().Outcome != string(state.ReasonTimeout) {
		t.Fatalf("state = %+v, expected timeout", w.State())
	}
	gen := w.ctx.Generation

	res := w.Step(core.Frame(core.ActionRestart), dt)
	if res.State.Phase != string(state.Playing) {
		t.Fatalf("Phase = %q after restart", res.State.Phase)
	}
	if w.ctx.Generation != gen+1 || w.ctx.Tick != 0 || res.State.Score != 0 {
		t.Errorf("not reloaded: generation %d tick %d score %d", w.ctx.Generation, w.ctx.Tick, res.State.Score)
	}
	if w.ctx.Store.Count(entity.KindPickup) != 1 {
		t.Error("the coin should be back after a restart")
	}
	if res.State.Remaining != 0.5 {
		t.Errorf("Remaining = %v, expected 0.5", res.State.Remaining)
	}
}

func TestBackFromPauseResumes(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())
	w.Step(core.Frame(core.ActionPause), dt)
	if !w.State().Paused {
		t.Fatal("expected paused")
	}
	res := w.Step(core.Frame(core.ActionBack), dt)
	if res.State.Phase != string(state.Playing) {
		t.Errorf("Phase = %q, expected playing; pause only returns to play", res.State.Phase)
	}
}

func TestBackToMenuFromGameOver(t *testing.T) {
	d := flatLevel()
	d.TimeLimit = 0.05
	w := newWorld(t, d, DefaultConfig())
	for range 10 {
		w.Step(idle(), dt)
	}
	if w.State().Phase != string(state.GameOver) {
		t.Fatalf("Phase = %q, expected game over", w.State().Phase)
	}
	res := w.Step(core.Frame(core.ActionBack), dt)
	if res.State.Phase != string(state.Menu) {
		t.Errorf("Phase = %q, expected menu", res.State.Phase)
	}
}

func TestAbilityActivation(t *testing.T) {
	w := newWorld(t, flatLevel(), DefaultConfig())
	w.Step(idle(), dt)

	res := w.Step(core.Frame(core.ActionPrimary), dt)
	if !hasEvent(res.Events, core.EventAbility) {
		t.Fatalf("events = %+v, expected an ability event", res.Events)
	}
	_, pl := w.player()
	if pl.Stamina >= 100 {
		t.Errorf("Stamina = %v, expected the dash cost to be paid", pl.Stamina)
	}
	if !pl.Status.Has(entity.StatusDashing) {
		t.Errorf("Status = %b, expected dashing", pl.Status)
	}

	infos := w.Abilities()
	if len(infos) != 3 || infos[0].Slot != core.ActionPrimary || infos[0].Ready {
		t.Errorf("Abilities() = %+v", infos)
	}
}

func TestAbilityWithoutStamina(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level.Player.Stamina = 10
	cfg.Regen = 0
	w := newWorld(t, flatLevel(), cfg)

	res := w.Step(core.Frame(core.ActionPrimary), dt)
	if hasEvent(res.Events, core.EventAbility) {
		t.Error("dash should not activate with stamina 10 < cost 20")
	}
	if _, pl := w.player(); pl.Stamina != 10 {
		t.Errorf("Stamina = %v, expected 10", pl.Stamina)
	}
}

func TestInvincibleHazardContact(t *testing.T) {
	d := flatLevel()
	d.Hazards = []level.Hazard{{Area: level.Area{X: 100, Y: 200, Width: 40, Height: 40}, Damage: 30}}
	cfg := DefaultConfig()
	cfg.Loadout = nil
	w := newWorld(t, d, cfg)
	_, pl := w.player()
	pl.Status |= entity.StatusInvincible

	evades := 0
	for range 10 {
		res := w.Step(idle(), dt)
		pl.Status |= entity.StatusInvincible
		for _, ev := range res.Events {
			if ev.Kind == core.EventEvade {
				evades++
			}
		}
	}
	if pl.Health != 100 {
		t.Errorf("Health = %v, expected untouched", pl.Health)
	}
	if evades != 1 {
		t.Errorf("evade events = %d while invincible, expected 1", evades)
	}
	if w.State().Score != 5 {
		t.Errorf("Score = %d, expected the evade bonus", w.State().Score)
	}
}

func TestShieldEvadesHazardOnce(t *testing.T) {
	d := flatLevel()
	d.Hazards = []level.Hazard{{Area: level.Area{X: 100, Y: 200, Width: 40, Height: 40}, Damage: 30}}
	w := newWorld(t, d, DefaultConfig())

	res := w.Step(core.Frame(core.ActionSecondary), dt)
	if !hasEvent(res.Events, core.EventAbility) {
		t.Fatalf("events = %+v, expected the shield to activate", res.Events)
	}
	_, pl := w.player()

	evades, ticks := 0, 1
	for _, ev := range res.Events {
		if ev.Kind == core.EventEvade {
			evades++
		}
	}
	for pl.Status.Has(entity.StatusShielded) && ticks < 600 {
		for _, ev := range w.Step(idle(), dt).Events {
			if ev.Kind == core.EventEvade {
				evades++
			}
		}
		ticks++
	}

	if ticks < 100 {
		t.Fatalf("shield lasted %d ticks, expected about 2s", ticks)
	}
	if evades != 1 {
		t.Errorf("evade events = %d over %d shielded ticks, expected 1", evades, ticks)
	}
	if w.State().Score != 5 {
		t.Errorf("Score = %d, expected a single evade bonus", w.State().Score)
	}
}

func TestSwingAttachDetach(t *testing.T) {
	d := flatLevel()
	d.Pivots = []level.Pivot{{X: 115, Y: 150, Length: 70}}
	w := newWorld(t, d, DefaultConfig())
	w.Step(idle(), dt)

	res := w.Step(core.Frame(core.ActionAttach), dt)
	if !hasEvent(res.Events, core.EventAttach) {
		t.Fatalf("events = %+v, expected attach", res.Events)
	}
	_, pl := w.player()
	if pl.Motion != entity.Swinging {
		t.Fatalf("Motion = %v, expected swinging", pl.Motion)
	}

	res = w.Step(core.Frame(core.ActionJump), dt)
	if !hasEvent(res.Events, core.EventDetach) || pl.Motion == entity.Swinging {
		t.Errorf("events = %+v, motion %v, expected a detach", res.Events, pl.Motion)
	}
}

func TestSwingDisabled(t *testing.T) {
	d := flatLevel()
	d.Pivots = []level.Pivot{{X: 115, Y: 150}}
	cfg := DefaultConfig()
	cfg.Swing = false
	w := newWorld(t, d, cfg)
	w.Step(idle(), dt)

	res := w.Step(core.Frame(core.ActionAttach), dt)
	if hasEvent(res.Events, core.EventAttach) {
		t.Error("attach must be ignored when swinging is disabled")
	}
}

func TestBonusFunc(t *testing.T) {
	d := flatLevel()
	d.Objectives = []level.Objective{{Type: "collect", Count: 1}}
	d.Powerups = []level.Powerup{{X: 115, Y: 220, Type: "coin"}}

	var warned []error
	tests := []struct {
		name  string
		bonus BonusFunc
		want  int
	}{
		{"none", nil, 10 + 100},
		{"scripted", func(in BonusInput) (int, error) { return in.Stats.Collected * 7, nil }, 10 + 100 + 7},
		{"failing", func(BonusInput) (int, error) { return 99, errors.New("boom") }, 10 + 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Bonus = tc.bonus
			cfg.OnWarning = func(err error) { warned = append(warned, err) }
			w := newWorld(t, d, cfg)

			res := w.Step(idle(), dt)
			if !res.State.Won {
				t.Fatalf("state = %+v, expected a win", res.State)
			}
			if res.State.Score != tc.want {
				t.Errorf("Score = %d, expected %d", res.State.Score, tc.want)
			}
		})
	}
	if len(warned) != 1 {
		t.Errorf("warnings = %v, expected one from the failing bonus", warned)
	}
}

func TestFrozenEnemiesStopPatrolling(t *testing.T) {
	d := flatLevel()
	d.Enemies = []level.Enemy{{X: 400, Y: 210, Type: "crab", PatrolPath: [][2]float64{{400, 210}, {600, 210}}}}
	cfg := DefaultConfig()
	cfg.Loadout = nil
	w := newWorld(t, d, cfg)

	var enemy entity.ID
	for id := range w.ctx.Store.Query(entity.KindEnemy) {
		enemy = id
	}
	eb := w.ctx.Store.Body(enemy)

	w.Step(idle(), dt)
	moved := eb.Pos.X
	if moved <= 400 {
		t.Fatalf("enemy did not patrol: x = %v", moved)
	}

	_, pl := w.player()
	pl.Status |= entity.StatusFreezing
	w.Step(idle(), dt)
	if eb.Pos.X != moved {
		t.Errorf("frozen enemy moved from %v to %v", moved, eb.Pos.X)
	}
}

func TestDeterminism(t *testing.T) {
	d := flatLevel()
	d.Enemies = []level.Enemy{{X: 400, Y: 210, Type: "crab", PatrolPath: [][2]float64{{400, 210}, {600, 210}}}}
	d.Powerups = []level.Powerup{{X: 300, Y: 220, Type: "coin"}, {X: 500, Y: 150, Type: "coin"}}
	d.Pivots = []level.Pivot{{X: 250, Y: 120, Length: 80}}

	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%40 < 25:
			inputs[i].Set(core.ActionRight)
		case i%40 < 30:
			inputs[i].Set(core.ActionJump)
		default:
			inputs[i].Set(core.ActionLeft)
		}
		if i%70 == 10 {
			inputs[i].Set(core.ActionPrimary)
		}
		if i%90 == 50 {
			inputs[i].Set(core.ActionAttach)
		}
	}

	run := func() Snapshot {
		w := newWorld(t, d, DefaultConfig())
		for _, in := range inputs {
			w.Step(in, dt)
		}
		return w.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick == 0 {
		t.Error("simulation did not advance")
	}
}

func TestScoreObjectivesExposed(t *testing.T) {
	d := flatLevel()
	d.Objectives = []level.Objective{{Type: "reach", Location: &level.Point{X: 115, Y: 220}}}
	d.Goal = &level.Area{X: 700, Y: 180, Width: 80, Height: 60}
	w := newWorld(t, d, DefaultConfig())

	w.Step(idle(), dt)
	objs := w.ctx.Keeper.Objectives()
	if len(objs) != 1 || objs[0].Kind != score.Reach || !objs[0].Met() {
		t.Errorf("Objectives() = %+v, expected the reach objective met at spawn", objs)
	}
}
