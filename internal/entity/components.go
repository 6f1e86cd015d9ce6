package entity

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Body is the physical extent and motion of an entity. Pos is the top-left corner.
type Body struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Size r2.Vec
}

// Box returns the body's bounding box.
func (b *Body) Box() core.Box {
	return core.BoxAt(b.Pos, b.Size)
}

// Center returns the center of the body.
func (b *Body) Center() r2.Vec {
	return r2.Add(b.Pos, r2.Scale(0.5, b.Size))
}

// Tag identifies an entity. Seq is the insertion order and never reused.
type Tag struct {
	Kind  Kind
	Type  string // level subtype, e.g. "coin", "sloth", "thorn_bush"
	Seq   uint64
	Alive bool
}

// Kinematic marks entities whose position is driven by explicit logic
// (patrols, static geometry) rather than by physics integration.
type Kinematic struct{}

// Solid makes an entity block movement. Bounce > 0 launches a body landing on
// it upward with that speed instead of stopping it.
type Solid struct {
	Bounce float64
}

// Crumble makes a solid collapse after something stands on it for StandTime
// seconds, and come back RespawnAfter seconds later.
type Crumble struct {
	StandTime    float64
	RespawnAfter float64
	Stood        float64
	DownFor      float64
	Collapsed    bool
}

// Patrol moves a kinematic entity through a closed loop of waypoints.
type Patrol struct {
	Waypoints []r2.Vec
	Index     int // waypoint currently being approached
	Speed     float64
	Tolerance float64
}

// Target returns the waypoint currently being approached.
func (p *Patrol) Target() r2.Vec {
	return p.Waypoints[p.Index]
}

// Health is the hit points of a damageable non-player entity.
type Health struct {
	HP  float64
	Max float64
}

// Damage is the harm an entity deals on contact.
type Damage struct {
	Amount float64
}

// Periodic switches a hazard on for the first Duty fraction of every Period seconds.
type Periodic struct {
	Period float64
	Duty   float64
	Offset float64
}

// Effect is the payload of a pickup.
type Effect struct {
	Amount   float64 // health, stamina or speed factor depending on the pickup type
	Points   int
	Duration float64
}

// Pivot is a swing anchor. The entity's body center is the pivot point.
type Pivot struct {
	Length float64 // preferred rope length; 0 keeps the distance at attach time
}

// AbilityTimer tracks one ability's remaining active time and cooldown in seconds.
type AbilityTimer struct {
	Active   float64
	Cooldown float64
}

// MaxAbilities bounds the per-player ability timer table.
const MaxAbilities = 8

// Swing is the polar state of a player hanging from a pivot.
type Swing struct {
	Pivot  ID
	Anchor r2.Vec // pivot point captured at attach time
	Angle  float64
	AngVel float64
	Radius float64
}

// Player is the per-player state: resources, locomotion and ability timers.
type Player struct {
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64

	Motion Motion
	Ground ID // solid currently stood on, zero while airborne
	Swing  Swing
	Facing float64 // -1 left, 1 right

	Status       Status
	Timers       [MaxAbilities]AbilityTimer
	SpeedFactor  float64 // multiplier from active abilities
	BoostFactor  float64 // multiplier from a speed pickup
	BoostTime    float64
	Invulnerable float64 // post-hit grace period in seconds

	FellOut   bool
	DamageHit bool // took damage at least once this attempt
	Swings    int  // consecutive attaches without touching the ground
}

// Invincible reports whether contact damage is currently suppressed.
func (p *Player) Invincible() bool {
	return p.Status.Has(StatusInvincible) || p.Invulnerable > 0
}

// Speed returns the combined horizontal speed multiplier.
func (p *Player) Speed() float64 {
	f := 1.0
	if p.SpeedFactor > 0 {
		f *= p.SpeedFactor
	}
	if p.BoostTime > 0 && p.BoostFactor > 0 {
		f *= p.BoostFactor
	}
	return f
}
