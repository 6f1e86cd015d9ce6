package level

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/collision"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/score"
)

// Options are the defaults for everything a descriptor leaves out.
type Options struct {
	Player      entity.Player
	PlayerSize  r2.Vec
	EnemySize   r2.Vec
	PickupSize  r2.Vec
	PivotSize   r2.Vec
	EnemySpeed  float64 // patrol speed, px/s
	HazardDuty  float64 // used when a periodic hazard gives no duty
	StandTime   float64 // crumbling platforms
	RespawnTime float64 // crumbling platforms
	BounceSpeed float64 // bouncy platforms, px/s
	SpeedBoost  float64 // speed pickup factor
	BoostTime   float64 // speed pickup duration, seconds
	HealAmount  float64 // health pickup
	Stamina     float64 // stamina pickup
	CoinPoints  int
}

// DefaultOptions returns the stock sizes and tuning.
func DefaultOptions() Options {
	return Options{
		Player: entity.Player{
			Health:     100,
			MaxHealth:  100,
			Stamina:    100,
			MaxStamina: 100,
			Facing:     1,
		},
		PlayerSize:  r2.Vec{X: 30, Y: 40},
		EnemySize:   r2.Vec{X: 30, Y: 30},
		PickupSize:  r2.Vec{X: 20, Y: 20},
		PivotSize:   r2.Vec{X: 10, Y: 10},
		EnemySpeed:  60,
		HazardDuty:  0.5,
		StandTime:   0.5,
		RespawnTime: 3,
		BounceSpeed: 900,
		SpeedBoost:  1.5,
		BoostTime:   5,
		HealAmount:  25,
		Stamina:     30,
		CoinPoints:  10,
	}
}

// Loaded is the result of loading a descriptor into a store.
type Loaded struct {
	Name       string
	Player     entity.ID
	Bounds     core.Box
	Goal       core.Box // zero when the level has no goal zone
	Objectives []score.Objective
	TimeLimit  float64 // seconds, 0 when untimed
	Script     string
}

// Load populates the store from a descriptor using DefaultOptions.
func Load(d *Descriptor, s *entity.Store) (*Loaded, error) {
	return LoadWith(d, s, DefaultOptions())
}

// LoadWith populates the store from a descriptor.
// The descriptor is validated first; nothing is added when it is invalid.
func LoadWith(d *Descriptor, s *entity.Store, opts Options) (*Loaded, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	bounds := core.NewBox(0, 0, d.Size.Width, d.Size.Height)

	for _, p := range d.Platforms {
		spec := entity.Spec{
			Kind:      entity.KindObstacle,
			Type:      p.Type,
			Pos:       r2.Vec{X: p.X, Y: p.Y},
			Size:      r2.Vec{X: p.Width, Y: p.Height},
			Kinematic: true,
			Solid:     &entity.Solid{},
		}
		switch platformKind(p.Type) {
		case "crumbling":
			spec.Crumble = &entity.Crumble{StandTime: opts.StandTime, RespawnAfter: opts.RespawnTime}
		case "bouncy":
			spec.Solid.Bounce = opts.BounceSpeed
		}
		s.Add(spec)
	}

	for _, h := range d.Hazards {
		spec := entity.Spec{
			Kind:      entity.KindHazard,
			Type:      h.Type,
			Pos:       r2.Vec{X: h.X, Y: h.Y},
			Size:      r2.Vec{X: h.Width, Y: h.Height},
			Kinematic: true,
		}
		if h.Damage > 0 {
			spec.Damage = &entity.Damage{Amount: h.Damage}
		}
		if h.Period > 0 {
			duty := h.Duty
			if duty == 0 {
				duty = opts.HazardDuty
			}
			spec.Periodic = &entity.Periodic{Period: h.Period, Duty: duty}
		}
		s.Add(spec)
	}

	for _, p := range d.Pivots {
		s.Add(entity.Spec{
			Kind:      entity.KindPivot,
			Type:      p.Type,
			Pos:       centered(p.X, p.Y, opts.PivotSize),
			Size:      opts.PivotSize,
			Kinematic: true,
			Pivot:     &entity.Pivot{Length: p.Length},
		})
	}

	for _, p := range d.Pickups() {
		s.Add(entity.Spec{
			Kind:      entity.KindPickup,
			Type:      p.Type,
			Pos:       centered(p.X, p.Y, opts.PickupSize),
			Size:      opts.PickupSize,
			Kinematic: true,
			Effect:    pickupEffect(p, opts),
		})
	}

	for _, e := range d.Enemies {
		size := opts.EnemySize
		if e.Width > 0 && e.Height > 0 {
			size = r2.Vec{X: e.Width, Y: e.Height}
		}
		spec := entity.Spec{
			Kind:      entity.KindEnemy,
			Type:      e.Type,
			Pos:       r2.Vec{X: e.X, Y: e.Y},
			Size:      size,
			Kinematic: true,
		}
		if len(e.PatrolPath) >= 2 {
			speed := e.Speed
			if speed <= 0 {
				speed = opts.EnemySpeed
			}
			wps := make([]r2.Vec, len(e.PatrolPath))
			for i, p := range e.PatrolPath {
				wps[i] = r2.Vec{X: p[0], Y: p[1]}
			}
			spec.Patrol = &entity.Patrol{Waypoints: wps, Speed: speed, Tolerance: physics.DefaultPatrolTolerance}
		}
		if e.Health > 0 {
			spec.Health = &entity.Health{HP: e.Health, Max: e.Health}
		}
		if e.Damage > 0 {
			spec.Damage = &entity.Damage{Amount: e.Damage}
		}
		s.Add(spec)
	}

	spawn, _ := d.PlayerSpawn()
	pl := opts.Player
	pos := core.BoxAt(r2.Vec{X: spawn.X, Y: spawn.Y}, opts.PlayerSize).ClampInto(bounds).Min()
	player := s.Add(entity.Spec{
		Kind:   entity.KindPlayer,
		Type:   "player",
		Pos:    pos,
		Size:   opts.PlayerSize,
		Player: &pl,
	})

	out := &Loaded{
		Name:       d.Name,
		Player:     player,
		Bounds:     bounds,
		Objectives: objectives(d),
		TimeLimit:  d.TimeLimit,
		Script:     d.ScoreScript,
	}
	if d.Goal != nil {
		out.Goal = core.NewBox(d.Goal.X, d.Goal.Y, d.Goal.Width, d.Goal.Height)
	}
	return out, nil
}

func centered(x, y float64, size r2.Vec) r2.Vec {
	return r2.Vec{X: x - size.X/2, Y: y - size.Y/2}
}

// platformKind maps platform subtypes onto the behaviors the resolver knows.
func platformKind(typ string) string {
	switch {
	case strings.Contains(typ, "crumbl"):
		return "crumbling"
	case strings.Contains(typ, "bounc"), strings.Contains(typ, "spring"), strings.Contains(typ, "mushroom"):
		return "bouncy"
	}
	return "solid"
}

func pickupEffect(p Powerup, opts Options) *entity.Effect {
	eff := &entity.Effect{Amount: p.Amount, Points: p.Points, Duration: p.Duration}
	if eff.Points == 0 {
		eff.Points = opts.CoinPoints
	}
	kind := collision.ClassifyPickup(p.Type)
	if eff.Amount == 0 {
		switch kind {
		case collision.PickupHealth:
			eff.Amount = opts.HealAmount
		case collision.PickupStamina:
			eff.Amount = opts.Stamina
		case collision.PickupSpeed:
			eff.Amount = opts.SpeedBoost
		}
	}
	if eff.Duration == 0 && kind == collision.PickupSpeed {
		eff.Duration = opts.BoostTime
	}
	return eff
}

// objectives converts descriptor objectives. Plural targets naming a type
// present in the level ("coins" for "coin") are singularized; targets naming
// no type at all ("enemies") match any.
func objectives(d *Descriptor) []score.Objective {
	types := make(map[string]bool)
	for _, p := range d.Pickups() {
		types[p.Type] = true
	}
	for _, e := range d.Enemies {
		types[e.Type] = true
	}

	out := make([]score.Objective, 0, len(d.Objectives))
	for _, o := range d.Objectives {
		kind, _ := score.ParseObjectiveKind(o.Type)
		obj := score.Objective{Kind: kind, Required: o.Count, Radius: o.Radius}
		if obj.Required == 0 {
			obj.Required = 1
		}
		switch {
		case types[o.Target]:
			obj.Target = o.Target
		case types[strings.TrimSuffix(o.Target, "s")]:
			obj.Target = strings.TrimSuffix(o.Target, "s")
		case kind == score.Reach:
			obj.Target = o.Target
		}
		if o.Location != nil {
			obj.Location = r2.Vec{X: o.Location.X, Y: o.Location.Y}
		}
		out = append(out, obj)
	}
	return out
}
