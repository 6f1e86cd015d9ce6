package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// DefaultPatrolTolerance is how close a patroller must get to a waypoint
// before it turns toward the next one.
const DefaultPatrolTolerance = 0.5

// Patrol moves every patrolling entity toward its current waypoint, cycling
// to the next waypoint (wrapping to the first) once it arrives.
// Frozen patrols keep their position and report zero velocity.
func Patrol(s *entity.Store, dt float64, frozen bool) {
	s.ForEach(func(v entity.View) bool {
		p := s.Patrol(v.ID)
		if p == nil || len(p.Waypoints) == 0 {
			return true
		}
		if frozen {
			v.Body.Vel = r2.Vec{}
			return true
		}
		advance(v.Body, p, dt)
		return true
	})
}

func advance(b *entity.Body, p *entity.Patrol, dt float64) {
	tol := p.Tolerance
	if tol <= 0 {
		tol = DefaultPatrolTolerance
	}
	if r2.Norm(r2.Sub(p.Target(), b.Pos)) <= tol {
		p.Index = (p.Index + 1) % len(p.Waypoints)
	}

	to := r2.Sub(p.Target(), b.Pos)
	dist := r2.Norm(to)
	step := p.Speed * dt
	if dist == 0 || step <= 0 {
		b.Vel = r2.Vec{}
		return
	}
	if step >= dist {
		b.Pos = p.Target()
	} else {
		b.Pos = r2.Add(b.Pos, r2.Scale(step/dist, to))
	}
	b.Vel = r2.Scale(p.Speed/dist, to)

	if r2.Norm(r2.Sub(p.Target(), b.Pos)) <= tol {
		p.Index = (p.Index + 1) % len(p.Waypoints)
	}
}
