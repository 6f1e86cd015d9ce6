// Package collision resolves bodies against solid geometry and turns overlaps
// with hazards, enemies and pickups into gameplay side effects.
//
// Movement is resolved one axis at a time: the X displacement is applied and
// clamped against every solid, then the Y displacement. This keeps bodies from
// snagging on platform corners; the price is that a very fast diagonal move
// can clip a corner, which is accepted.
package collision

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Config holds the resolver's tuning constants.
type Config struct {
	GroundTolerance float64 // px below the feet that still counts as support
	AttachRadius    float64 // max distance from a pivot to grab it, px
	ContactWindow   float64 // min seconds between two events for the same contact
	HitGrace        float64 // invulnerability after taking damage, seconds
	JumpSpeed       float64 // used to size the stomp bounce, px/s
	StompBounce     float64 // fraction of JumpSpeed applied after a stomp
	StompDamage     float64 // damage dealt to an enemy by a stomp or spin
	EnemyDamage     float64 // fallback damage of an enemy without a Damage component
	HazardDamage    float64 // fallback damage of a hazard without a Damage component
	CoinPoints      int     // fallback points of a pickup without an Effect
	DamageScale     float64 // multiplies all contact damage dealt to the player, 0 means 1
}

// DefaultConfig returns the constants used by the original prototypes.
func DefaultConfig() Config {
	return Config{
		GroundTolerance: 1,
		AttachRadius:    70,
		ContactWindow:   0.5,
		HitGrace:        1,
		JumpSpeed:       600,
		StompBounce:     0.5,
		StompDamage:     1,
		EnemyDamage:     10,
		HazardDamage:    5,
		CoinPoints:      10,
		DamageScale:     1,
	}
}

// Resolver performs collision resolution for one level.
type Resolver struct {
	store *entity.Store
	cfg   Config

	now      float64
	lastSeen map[uint64]float64 // contact key -> time of the last event
	evaded   map[uint64]bool    // contacts already evaded during the current invincibility
}

// NewResolver creates a resolver over the given store.
func NewResolver(s *entity.Store, cfg Config) *Resolver {
	return &Resolver{
		store:    s,
		cfg:      cfg,
		lastSeen: make(map[uint64]float64),
		evaded:   make(map[uint64]bool),
	}
}

// Config returns the resolver's constants.
func (r *Resolver) Config() Config {
	return r.cfg
}

// SetTime tells the resolver the current simulated time, used for contact
// windows and periodic hazards.
func (r *Resolver) SetTime(now float64) {
	r.now = now
}

// skin absorbs float rounding so a body resting exactly on an edge is not
// treated as penetrating it.
const skin = 1e-6

func penetrates(a, b core.Box) bool {
	return a.Inflate(-skin).Intersects(b)
}

type solidBox struct {
	id     entity.ID
	box    core.Box
	bounce float64
}

// solids collects every solid that currently blocks movement, except self.
func (r *Resolver) solids(self entity.ID) []solidBox {
	var out []solidBox
	r.store.ForEach(func(v entity.View) bool {
		if v.ID == self {
			return true
		}
		sol := r.store.Solid(v.ID)
		if sol == nil {
			return true
		}
		if c := r.store.Crumble(v.ID); c != nil && c.Collapsed {
			return true
		}
		out = append(out, solidBox{id: v.ID, box: v.Body.Box(), bounce: sol.Bounce})
		return true
	})
	return out
}

// Move displaces a body by delta, X axis first, stopping at solid edges and
// zeroing the velocity on the blocked axis. For the player it also drives the
// Grounded/Airborne transitions.
func (r *Resolver) Move(id entity.ID, delta r2.Vec) {
	b := r.store.Body(id)
	if b == nil {
		return
	}
	solids := r.solids(id)

	b.Pos.X += delta.X
	for _, s := range solids {
		if !penetrates(b.Box(), s.box) {
			continue
		}
		if delta.X > 0 {
			b.Pos.X = s.box.X - b.Size.X
		} else if delta.X < 0 {
			b.Pos.X = s.box.Right()
		}
		b.Vel.X = 0
	}

	var landed *solidBox
	b.Pos.Y += delta.Y
	for i, s := range solids {
		if !penetrates(b.Box(), s.box) {
			continue
		}
		if delta.Y > 0 {
			b.Pos.Y = s.box.Y - b.Size.Y
			landed = &solids[i]
		} else if delta.Y < 0 {
			b.Pos.Y = s.box.Bottom()
		}
		b.Vel.Y = 0
	}

	pl := r.store.Player(id)
	if pl == nil || pl.Motion == entity.Swinging {
		return
	}
	switch {
	case landed != nil && landed.bounce > 0:
		b.Vel.Y = -landed.bounce
		pl.Motion = entity.Airborne
		pl.Ground = entity.ID{}
	case landed != nil:
		pl.Motion = entity.Grounded
		pl.Ground = landed.id
	default:
		g, ok := r.support(b.Box(), solids)
		// Staying grounded needs only support; becoming grounded also needs a
		// downward velocity.
		if ok && (pl.Motion == entity.Grounded && b.Vel.Y >= 0 || b.Vel.Y > 0) {
			pl.Motion = entity.Grounded
			pl.Ground = g
		} else {
			pl.Motion = entity.Airborne
			pl.Ground = entity.ID{}
		}
	}
}

// support finds a solid whose top edge lies within the ground tolerance of
// the box's bottom edge and overlaps it horizontally.
func (r *Resolver) support(box core.Box, solids []solidBox) (entity.ID, bool) {
	for _, s := range solids {
		if box.X >= s.box.Right() || s.box.X >= box.Right() {
			continue
		}
		gap := s.box.Y - box.Bottom()
		if gap >= -r.cfg.GroundTolerance && gap <= r.cfg.GroundTolerance {
			return s.id, true
		}
	}
	return entity.ID{}, false
}

// Resolve pushes a body out of any solid it overlaps along the axis of least
// penetration. A body that overlaps nothing is left untouched, so calling
// Resolve again without moving is a no-op.
func (r *Resolver) Resolve(id entity.ID) {
	b := r.store.Body(id)
	if b == nil {
		return
	}
	for _, s := range r.solids(id) {
		box := b.Box()
		if !penetrates(box, s.box) {
			continue
		}
		left := box.Right() - s.box.X
		right := s.box.Right() - box.X
		up := box.Bottom() - s.box.Y
		down := s.box.Bottom() - box.Y

		minX := math.Min(left, right)
		minY := math.Min(up, down)
		if minX < minY {
			if left < right {
				b.Pos.X -= left
			} else {
				b.Pos.X += right
			}
			b.Vel.X = 0
			continue
		}
		if up < down {
			b.Pos.Y -= up
			if pl := r.store.Player(id); pl != nil && pl.Motion != entity.Swinging {
				pl.Motion = entity.Grounded
				pl.Ground = s.id
			}
		} else {
			b.Pos.Y += down
		}
		b.Vel.Y = 0
	}
}

// UpdateCrumbles advances crumbling platforms: standing on one for its stand
// time collapses it, and it returns after its respawn delay unless something
// occupies its space.
func (r *Resolver) UpdateCrumbles(player entity.ID, dt float64) {
	pl := r.store.Player(player)
	pb := r.store.Body(player)
	r.store.ForEach(func(v entity.View) bool {
		c := r.store.Crumble(v.ID)
		if c == nil {
			return true
		}
		if c.Collapsed {
			c.DownFor += dt
			if c.DownFor >= c.RespawnAfter && (pb == nil || !pb.Box().Intersects(v.Body.Box())) {
				c.Collapsed = false
				c.DownFor = 0
				c.Stood = 0
			}
			return true
		}
		if pl != nil && pl.Motion == entity.Grounded && pl.Ground == v.ID {
			c.Stood += dt
			if c.Stood >= c.StandTime {
				c.Collapsed = true
				c.DownFor = 0
				pl.Motion = entity.Airborne
				pl.Ground = entity.ID{}
			}
		}
		return true
	})
}
