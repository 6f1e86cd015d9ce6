package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Control is the player's movement intent for one step.
type Control struct {
	Move float64 // -1 left, 0 none, 1 right
	Pump float64 // -1 down, 0 none, 1 up; only used while swinging
}

// Mover applies a displacement to an entity. The collision resolver
// implements it to stop bodies at solid edges.
type Mover interface {
	Move(id entity.ID, delta r2.Vec)
}

// Integrator advances non-kinematic entities under gravity and input.
type Integrator struct {
	Params Params
	Bounds core.Box
}

// NewIntegrator creates an integrator for a level of the given bounds.
func NewIntegrator(p Params, bounds core.Box) *Integrator {
	return &Integrator{Params: p, Bounds: bounds}
}

// Step integrates one tick. Kinematic entities are left to their own systems.
// A nil mover translates bodies without collision.
func (ig *Integrator) Step(s *entity.Store, player entity.ID, ctl Control, dt float64, mv Mover) {
	s.ForEach(func(v entity.View) bool {
		if s.Kinematic(v.ID) {
			return true
		}
		pl := s.Player(v.ID)
		if pl != nil && pl.Motion == entity.Swinging {
			ig.swing(v.Body, pl, ctl.Pump, dt)
			return true
		}

		v.Body.Vel.Y = math.Min(v.Body.Vel.Y+ig.Params.Gravity*dt, ig.Params.MaxFallSpeed)
		if pl != nil && v.ID == player {
			ig.steer(v.Body, pl, ctl.Move, dt)
		}

		delta := r2.Scale(dt, v.Body.Vel)
		if mv != nil {
			mv.Move(v.ID, delta)
		} else {
			v.Body.Pos = r2.Add(v.Body.Pos, delta)
		}
		return true
	})
	ig.Clamp(s)
}

// steer moves the player's horizontal velocity toward the input target.
func (ig *Integrator) steer(b *entity.Body, pl *entity.Player, dir, dt float64) {
	p := ig.Params
	if dir != 0 {
		pl.Facing = core.Sign(dir)
	}
	target := dir * p.RunSpeed * pl.Speed()
	rate := p.Friction
	if dir != 0 {
		rate = p.Accel
	}
	if pl.Motion != entity.Grounded {
		rate *= p.AirControl
	}
	// Dashes and bounces may push speed past the run target; without input
	// that excess decays through friction like any other velocity.
	b.Vel.X = core.Approach(b.Vel.X, target, rate*dt)
}

// swing advances the polar motion of a player hanging from a pivot.
// Angle 0 hangs straight below the anchor; Y grows downward.
func (ig *Integrator) swing(b *entity.Body, pl *entity.Player, pump, dt float64) {
	p := ig.Params
	sw := &pl.Swing

	sw.AngVel += math.Sin(sw.Angle) * p.SwingGravity * dt
	if pump != 0 {
		dir := core.Sign(sw.AngVel)
		if dir == 0 {
			dir = pl.Facing
		}
		sw.AngVel += pump * dir * p.SwingPump * math.Abs(math.Cos(sw.Angle)) * dt
	}
	if p.SwingDamping > 0 {
		sw.AngVel *= math.Pow(p.SwingDamping, dt)
	}
	sw.Angle += sw.AngVel * dt

	center := r2.Add(sw.Anchor, r2.Scale(sw.Radius, r2.Vec{X: math.Sin(sw.Angle), Y: math.Cos(sw.Angle)}))
	b.Pos = r2.Sub(center, r2.Scale(0.5, b.Size))
	b.Vel = Tangential(*sw)
}

// Tangential returns the linear velocity of a swinging body, the time
// derivative of anchor + r*(sin a, cos a).
func Tangential(sw entity.Swing) r2.Vec {
	return r2.Vec{
		X: sw.Radius * sw.AngVel * math.Cos(sw.Angle),
		Y: -sw.Radius * sw.AngVel * math.Sin(sw.Angle),
	}
}

// Clamp keeps every entity inside the level bounds. A player pinned to the
// bottom edge while falling has dropped through the floor and is flagged.
func (ig *Integrator) Clamp(s *entity.Store) {
	s.ForEach(func(v entity.View) bool {
		before := v.Body.Box()
		after := before.ClampInto(ig.Bounds)
		if after == before {
			return true
		}
		if after.X != before.X {
			v.Body.Vel.X = 0
		}
		if after.Y != before.Y {
			if pl := s.Player(v.ID); pl != nil && before.Y > after.Y && pl.Motion != entity.Swinging {
				pl.FellOut = true
			}
			v.Body.Vel.Y = 0
		}
		v.Body.Pos = after.Min()
		return true
	})
}
