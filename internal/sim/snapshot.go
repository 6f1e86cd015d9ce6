package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Snapshot captures the simulation state for determinism testing and replay checks.
type Snapshot struct {
	Tick      uint64
	Phase     string
	Score     int
	PlayerX   float64
	PlayerY   float64
	PlayerVX  float64
	PlayerVY  float64
	Health    float64
	Stamina   float64
	Motion    entity.Motion
	Status    entity.Status
	Entities  int
	Enemies   int
	Pickups   int
	Remaining float64

	// EntityData is X, Y of every live entity in insertion order.
	EntityData []float64
}

// Snapshot returns the current state snapshot.
func (w *World) Snapshot() Snapshot {
	ctx := w.ctx
	snap := Snapshot{
		Tick:      ctx.Tick,
		Phase:     string(w.machine.Current()),
		Score:     ctx.Keeper.Score(),
		Entities:  ctx.Store.Len(),
		Enemies:   ctx.Store.Count(entity.KindEnemy),
		Pickups:   ctx.Store.Count(entity.KindPickup),
		Remaining: ctx.Remaining,
	}
	if pb := ctx.Store.Body(ctx.Player); pb != nil {
		snap.PlayerX, snap.PlayerY = pb.Pos.X, pb.Pos.Y
		snap.PlayerVX, snap.PlayerVY = pb.Vel.X, pb.Vel.Y
	}
	if pl := ctx.Store.Player(ctx.Player); pl != nil {
		snap.Health = pl.Health
		snap.Stamina = pl.Stamina
		snap.Motion = pl.Motion
		snap.Status = pl.Status
	}
	ctx.Store.ForEach(func(v entity.View) bool {
		snap.EntityData = append(snap.EntityData, v.Body.Pos.X, v.Body.Pos.Y)
		return true
	})
	return snap
}

// Hash computes a hash of the snapshot for quick comparison.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.Phase {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.PlayerVX)
	h = h*31 + math.Float64bits(snap.PlayerVY)
	h = h*31 + math.Float64bits(snap.Health)
	h = h*31 + math.Float64bits(snap.Stamina)
	h = h*31 + uint64(snap.Motion)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Status)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Entities) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Enemies)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pickups)  //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Remaining)

	for _, v := range snap.EntityData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
