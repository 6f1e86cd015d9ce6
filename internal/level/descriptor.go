// Package level parses level descriptors and loads them into an entity store.
//
// A descriptor is a plain JSON record: level size, spawn points, platforms,
// hazards, swing pivots, pickups, enemies with patrol paths, objectives and a
// goal zone. Parse validates eagerly so that a malformed level fails at load
// time with a diagnostic instead of producing an undefined simulation.
package level

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/score"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid level")
	// ErrNoPlayerSpawn is returned when no spawn point has type "player".
	ErrNoPlayerSpawn = fmt.Errorf("%w: no player spawn point", ErrInvalid)
)

// Point is a position in level pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the level extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area is a rectangle with its top-left corner at X, Y.
type Area struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Spawn is a spawn point. Exactly one is used for the player.
type Spawn struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// Platform is a solid obstacle. Type "crumbling" and "bouncy" change its behavior.
type Platform struct {
	Area
	Type string `json:"type,omitempty"`
}

// Hazard damages the player on contact. With Period > 0 it is only active
// for the first Duty fraction of every period.
type Hazard struct {
	Area
	Type   string  `json:"type,omitempty"`
	Damage float64 `json:"damage,omitempty"`
	Period float64 `json:"period,omitempty"`
	Duty   float64 `json:"duty,omitempty"`
}

// Pivot is a vine or grapple point centered at X, Y.
type Pivot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// Powerup is a pickup centered at X, Y.
type Powerup struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount,omitempty"`
	Points   int     `json:"points,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Enemy is a contact-damage entity, optionally patrolling a closed path.
type Enemy struct {
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width,omitempty"`
	Height     float64      `json:"height,omitempty"`
	Type       string       `json:"type"`
	Speed      float64      `json:"speed,omitempty"`
	Health     float64      `json:"health,omitempty"`
	Damage     float64      `json:"damage,omitempty"`
	PatrolPath [][2]float64 `json:"patrol_path,omitempty"`
}

// Objective is a win-condition counter.
type Objective struct {
	Type     string  `json:"type"`
	Target   string  `json:"target,omitempty"`
	Count    int     `json:"count,omitempty"`
	Location *Point  `json:"location,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
}

// Descriptor is a complete level.
type Descriptor struct {
	Name         string      `json:"name"`
	LevelNumber  int         `json:"level_number"`
	Size         Size        `json:"size"`
	SpawnPoints  []Spawn     `json:"spawn_points"`
	Platforms    []Platform  `json:"platforms"`
	Hazards      []Hazard    `json:"hazards,omitempty"`
	Pivots       []Pivot     `json:"pivots,omitempty"`
	Powerups     []Powerup   `json:"powerups,omitempty"`
	Collectibles []Powerup   `json:"collectibles,omitempty"`
	Enemies      []Enemy     `json:"enemies,omitempty"`
	Objectives   []Objective `json:"objectives,omitempty"`
	Goal         *Area       `json:"goal,omitempty"`
	TimeLimit    float64     `json:"time_limit,omitempty"`
	Difficulty   string      `json:"difficulty,omitempty"`
	ScoreScript  string      `json:"score_script,omitempty"`
}

// Parse decodes and validates a descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Marshal encodes the descriptor as indented JSON.
func (d *Descriptor) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// PlayerSpawn returns the first spawn point of type "player".
func (d *Descriptor) PlayerSpawn() (Spawn, bool) {
	for _, s := range d.SpawnPoints {
		if s.Type == "player" {
			return s, true
		}
	}
	return Spawn{}, false
}

// Pickups returns powerups followed by collectibles.
func (d *Descriptor) Pickups() []Powerup {
	out := make([]Powerup, 0, len(d.Powerups)+len(d.Collectibles))
	out = append(out, d.Powerups...)
	return append(out, d.Collectibles...)
}

// Validate checks the descriptor and returns the first problem found.
func (d *Descriptor) Validate() error {
	if d.Size.Width <= 0 || d.Size.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v must be positive", ErrInvalid, d.Size.Width, d.Size.Height)
	}
	spawn, ok := d.PlayerSpawn()
	if !ok {
		return ErrNoPlayerSpawn
	}
	if spawn.X < 0 || spawn.Y < 0 || spawn.X >= d.Size.Width || spawn.Y >= d.Size.Height {
		return fmt.Errorf("%w: player spawn (%v,%v) outside the level", ErrInvalid, spawn.X, spawn.Y)
	}
	for i, p := range d.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: platforms[%d] has size %vx%v", ErrInvalid, i, p.Width, p.Height)
		}
	}
	for i, h := range d.Hazards {
		if h.Width <= 0 || h.Height <= 0 {
			return fmt.Errorf("%w: hazards[%d] has size %vx%v", ErrInvalid, i, h.Width, h.Height)
		}
		if h.Period < 0 || h.Duty < 0 || h.Duty > 1 {
			return fmt.Errorf("%w: hazards[%d] has period %v duty %v", ErrInvalid, i, h.Period, h.Duty)
		}
	}
	for i, e := range d.Enemies {
		if e.Width < 0 || e.Height < 0 {
			return fmt.Errorf("%w: enemies[%d] has size %vx%v", ErrInvalid, i, e.Width, e.Height)
		}
		if len(e.PatrolPath) == 1 {
			return fmt.Errorf("%w: enemies[%d] patrol path needs at least 2 points", ErrInvalid, i)
		}
	}
	for i, o := range d.Objectives {
		kind, err := score.ParseObjectiveKind(o.Type)
		if err != nil {
			return fmt.Errorf("%w: objectives[%d]: %v", ErrInvalid, i, err)
		}
		if o.Count < 0 {
			return fmt.Errorf("%w: objectives[%d] has negative count %d", ErrInvalid, i, o.Count)
		}
		if kind == score.Reach && o.Location == nil {
			return fmt.Errorf("%w: objectives[%d] reach needs a location", ErrInvalid, i)
		}
	}
	if d.Goal != nil && (d.Goal.Width <= 0 || d.Goal.Height <= 0) {
		return fmt.Errorf("%w: goal has size %vx%v", ErrInvalid, d.Goal.Width, d.Goal.Height)
	}
	if d.TimeLimit < 0 {
		return fmt.Errorf("%w: negative time limit %v", ErrInvalid, d.TimeLimit)
	}
	return nil
}
