package collision

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Attach grabs the nearest pivot within the attach radius. The current
// velocity is projected onto the swing tangent so momentum carries over.
// Returns false if the player is already swinging or nothing is in reach.
func (r *Resolver) Attach(player entity.ID) (core.Event, bool) {
	pb := r.store.Body(player)
	pl := r.store.Player(player)
	if pb == nil || pl == nil || pl.Motion == entity.Swinging {
		return core.Event{}, false
	}

	center := pb.Center()
	var (
		best     entity.ID
		bestDist = math.Inf(1)
		anchor   r2.Vec
	)
	for id := range r.store.Query(entity.KindPivot) {
		pc := r.store.Body(id).Center()
		d := r2.Norm(r2.Sub(center, pc))
		if d <= r.cfg.AttachRadius && d < bestDist {
			best, bestDist, anchor = id, d, pc
		}
	}
	if best.IsZero() {
		return core.Event{}, false
	}

	radius := bestDist
	if pv := r.store.Pivot(best); pv != nil && pv.Length > 0 {
		radius = pv.Length
	}
	radius = math.Max(radius, 1)

	off := r2.Sub(center, anchor)
	angle := math.Atan2(off.X, off.Y)
	tangent := r2.Vec{X: math.Cos(angle), Y: -math.Sin(angle)}

	pl.Swing = entity.Swing{
		Pivot:  best,
		Anchor: anchor,
		Angle:  angle,
		AngVel: r2.Dot(pb.Vel, tangent) / radius,
		Radius: radius,
	}
	pl.Motion = entity.Swinging
	pl.Ground = entity.ID{}
	pl.Swings++
	return core.Event{Kind: core.EventAttach, Target: r.store.Tag(best).Type, Amount: float64(pl.Swings)}, true
}

// Detach releases the pivot, converting the angular velocity into the
// tangential linear velocity at this instant.
func (r *Resolver) Detach(player entity.ID) (core.Event, bool) {
	pb := r.store.Body(player)
	pl := r.store.Player(player)
	if pb == nil || pl == nil || pl.Motion != entity.Swinging {
		return core.Event{}, false
	}
	pb.Vel = physics.Tangential(pl.Swing)
	pl.Motion = entity.Airborne
	pl.Swing = entity.Swing{}
	return core.Event{Kind: core.EventDetach, Amount: float64(pl.Swings)}, true
}

// CheckPivot detaches a swinging player whose pivot no longer exists.
func (r *Resolver) CheckPivot(player entity.ID) (core.Event, bool) {
	pl := r.store.Player(player)
	if pl == nil || pl.Motion != entity.Swinging || r.store.Alive(pl.Swing.Pivot) {
		return core.Event{}, false
	}
	return r.Detach(player)
}
