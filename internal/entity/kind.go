// Package entity owns every live game object of a level.
//
// Entities are stored in an ark ECS world: every entity carries a Body and a
// Tag, and behaviour-specific data lives in optional components (Patrol,
// Player, Solid...). Systems in other packages read and mutate those
// components through the Store; the Store itself only guarantees identity,
// stable iteration order and deferred removal.
package entity

// Kind is the broad category of an entity. Collision and scoring dispatch on it.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindObstacle
	KindPickup
	KindHazard
	KindPivot
	KindGoal
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	case KindPickup:
		return "pickup"
	case KindHazard:
		return "hazard"
	case KindPivot:
		return "pivot"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Motion is the player's locomotion state relative to the level geometry.
type Motion uint8

const (
	Airborne Motion = iota
	Grounded
	Swinging
)

// String returns the name of the motion state.
func (m Motion) String() string {
	switch m {
	case Grounded:
		return "grounded"
	case Swinging:
		return "swinging"
	default:
		return "airborne"
	}
}

// Status is a set of ability-driven player flags.
type Status uint16

const (
	StatusDashing Status = 1 << iota
	StatusSpinning
	StatusShielded
	StatusTucked
	StatusFreezing
	StatusBursting
	StatusInvincible
)

// Has reports whether all flags in f are set.
func (s Status) Has(f Status) bool {
	return s&f == f
}
