// Package ability schedules resource-gated, timed player abilities.
//
// Every ability has a stamina cost, a duration during which it sets player
// status flags, and a cooldown counted from the moment of activation.
// Activation never queues and never reports an error: it either happens in
// full or leaves the player untouched.
package ability

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Kind identifies an ability.
type Kind int

const (
	Dash   Kind = iota // short burst of speed, dodges contact damage
	Spin               // juke; dodges damage and knocks out enemies on contact
	Shield             // temporary invincibility
	Freeze             // hut-call; stops every patrolling enemy
	Burst              // sideline burst; sustained speed boost
	Tuck               // shell tuck; invincible
	numKinds
)

var kindNames = [...]string{
	Dash:   "dash",
	Spin:   "spin",
	Shield: "shield",
	Freeze: "freeze",
	Burst:  "burst",
	Tuck:   "tuck",
}

// String returns the lowercase ability name.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind converts an ability name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", name)
}

// Def is the static description of an ability.
type Def struct {
	Kind        Kind
	Cost        float64       // stamina required and consumed
	Duration    float64       // seconds the effect stays active
	Cooldown    float64       // seconds from activation until it can be used again
	Flags       entity.Status // set while active
	SpeedFactor float64       // horizontal speed multiplier while active, 0 = none
	Impulse     float64       // horizontal speed added in the facing direction on activation
}

// Defaults returns the stock definitions, converted from the 60 FPS frame
// counts of the original prototypes.
func Defaults() map[Kind]Def {
	return map[Kind]Def{
		Dash:   {Kind: Dash, Cost: 20, Duration: 0.25, Cooldown: 0.5, Flags: entity.StatusDashing | entity.StatusInvincible, SpeedFactor: 2.5, Impulse: 300},
		Spin:   {Kind: Spin, Cost: 15, Duration: 0.3, Cooldown: 1, Flags: entity.StatusSpinning | entity.StatusInvincible},
		Shield: {Kind: Shield, Cost: 30, Duration: 2, Cooldown: 5, Flags: entity.StatusShielded | entity.StatusInvincible},
		Freeze: {Kind: Freeze, Cost: 40, Duration: 3, Cooldown: 10, Flags: entity.StatusFreezing},
		Burst:  {Kind: Burst, Cost: 25, Duration: 1.5, Cooldown: 3, Flags: entity.StatusBursting, SpeedFactor: 1.5},
		Tuck:   {Kind: Tuck, Cost: 10, Duration: 0.5, Cooldown: 1, Flags: entity.StatusTucked | entity.StatusInvincible},
	}
}

// Scheduler activates abilities and runs their timers.
type Scheduler struct {
	defs  map[Kind]Def
	regen float64
}

// NewScheduler creates a scheduler with the given stamina regeneration per
// second. Defs not listed are unknown and cannot be activated.
func NewScheduler(regen float64, defs map[Kind]Def) *Scheduler {
	own := make(map[Kind]Def, len(defs))
	for k, d := range defs {
		d.Kind = k
		own[k] = d
	}
	return &Scheduler{defs: own, regen: regen}
}

// Def returns the definition of an ability.
func (s *Scheduler) Def(k Kind) (Def, bool) {
	d, ok := s.defs[k]
	return d, ok
}

// Ready reports whether the ability could be activated right now.
func (s *Scheduler) Ready(pl *entity.Player, k Kind) bool {
	d, ok := s.defs[k]
	if !ok || k < 0 || int(k) >= entity.MaxAbilities {
		return false
	}
	t := pl.Timers[k]
	return t.Active <= 0 && t.Cooldown <= 0 && pl.Stamina >= d.Cost
}

// Activate starts an ability. It is a silent no-op returning false when the
// ability is unknown, still active, cooling down or unaffordable.
// body may be nil; when given, the ability's impulse is applied to it.
func (s *Scheduler) Activate(pl *entity.Player, body *entity.Body, k Kind) bool {
	if !s.Ready(pl, k) {
		return false
	}
	d := s.defs[k]
	pl.Stamina -= d.Cost
	pl.Timers[k] = entity.AbilityTimer{Active: d.Duration, Cooldown: d.Cooldown}
	if body != nil && d.Impulse != 0 {
		facing := pl.Facing
		if facing == 0 {
			facing = 1
		}
		body.Vel.X += facing * d.Impulse
	}
	s.apply(pl)
	return true
}

// Tick runs all timers down by dt, clears the effects of expired abilities
// and regenerates stamina up to the maximum.
func (s *Scheduler) Tick(pl *entity.Player, dt float64) {
	for k := range pl.Timers {
		t := &pl.Timers[k]
		t.Active = math.Max(0, t.Active-dt)
		t.Cooldown = math.Max(0, t.Cooldown-dt)
	}
	pl.Invulnerable = math.Max(0, pl.Invulnerable-dt)
	pl.BoostTime = math.Max(0, pl.BoostTime-dt)
	pl.Stamina = math.Min(pl.MaxStamina, pl.Stamina+s.regen*dt)
	s.apply(pl)
}

// apply derives the status flags and speed factor from the active timers.
func (s *Scheduler) apply(pl *entity.Player) {
	var status entity.Status
	speed := 1.0
	for k, d := range s.defs {
		if k < 0 || int(k) >= entity.MaxAbilities || pl.Timers[k].Active <= 0 {
			continue
		}
		status |= d.Flags
		if d.SpeedFactor > 0 {
			speed *= d.SpeedFactor
		}
	}
	pl.Status = status
	pl.SpeedFactor = speed
}
