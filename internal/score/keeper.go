// Package score tracks points and level objectives.
package score

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ObjectiveKind is what an objective counts.
type ObjectiveKind string

const (
	Collect ObjectiveKind = "collect"
	Defeat  ObjectiveKind = "defeat"
	Reach   ObjectiveKind = "reach"
)

// DefaultReachRadius is the distance from a reach location that counts as arrival.
const DefaultReachRadius = 50

// ParseObjectiveKind validates an objective type name.
func ParseObjectiveKind(s string) (ObjectiveKind, error) {
	switch k := ObjectiveKind(s); k {
	case Collect, Defeat, Reach:
		return k, nil
	}
	return "", fmt.Errorf("unknown objective type %q", s)
}

// Objective is a named win-condition counter.
type Objective struct {
	Kind     ObjectiveKind
	Target   string // pickup or enemy type; empty matches any
	Required int
	Current  int
	Location r2.Vec  // reach only
	Radius   float64 // reach only
}

// Met reports whether the objective is satisfied.
func (o Objective) Met() bool {
	return o.Current >= o.Required
}

// matches reports whether an event target counts toward the objective.
func (o Objective) matches(target string) bool {
	return o.Target == "" || o.Target == target
}

// String renders the objective for the HUD, e.g. "collect coin 2/3".
func (o Objective) String() string {
	target := o.Target
	if target == "" {
		target = "any"
	}
	return fmt.Sprintf("%s %s %d/%d", o.Kind, target, o.Current, o.Required)
}

// Points is the scoring table.
type Points struct {
	Pickup       int // fallback when a pickup event carries no points
	Defeat       int
	Evade        int
	Flawless     int // completing a level without taking damage
	PerSecond    int // per whole second left on the timer at completion
	ComboPerLink int // per swing beyond the first in one chain
}

// DefaultPoints returns the stock scoring table.
func DefaultPoints() Points {
	return Points{
		Pickup:       10,
		Defeat:       50,
		Evade:        5,
		Flawless:     100,
		PerSecond:    10,
		ComboPerLink: 25,
	}
}

// Stats are the counters exposed to level scripts and the HUD.
type Stats struct {
	Score     int
	Collected int
	Defeated  int
	Evades    int
	Hits      int
	BestCombo int
}

// Keeper accumulates points from events and updates objectives.
type Keeper struct {
	points     Points
	objectives []Objective
	stats      Stats
}

// NewKeeper creates a keeper for one attempt at a level.
// The objectives are copied.
func NewKeeper(points Points, objectives []Objective) *Keeper {
	own := make([]Objective, len(objectives))
	copy(own, objectives)
	for i := range own {
		if own[i].Kind == Reach && own[i].Radius <= 0 {
			own[i].Radius = DefaultReachRadius
		}
	}
	return &Keeper{points: points, objectives: own}
}

// Score returns the current score.
func (k *Keeper) Score() int {
	return k.stats.Score
}

// Stats returns a copy of the counters.
func (k *Keeper) Stats() Stats {
	return k.stats
}

// Objectives returns a copy of the objectives.
func (k *Keeper) Objectives() []Objective {
	out := make([]Objective, len(k.objectives))
	copy(out, k.objectives)
	return out
}

// Add adds points directly, e.g. a scripted bonus.
func (k *Keeper) Add(points int) {
	k.stats.Score += points
}

// Apply updates the score and objectives for one event.
func (k *Keeper) Apply(ev core.Event) {
	switch ev.Kind {
	case core.EventPickup:
		pts := int(ev.Amount)
		if pts == 0 {
			pts = k.points.Pickup
		}
		k.stats.Score += pts
		k.stats.Collected++
		k.count(Collect, ev.Target)
	case core.EventDefeat:
		k.stats.Score += k.points.Defeat
		k.stats.Defeated++
		k.count(Defeat, ev.Target)
	case core.EventEvade:
		k.stats.Score += k.points.Evade
		k.stats.Evades++
	case core.EventDamage:
		k.stats.Hits++
	case core.EventLand:
		chain := int(ev.Amount)
		if chain > 1 {
			k.stats.Score += (chain - 1) * k.points.ComboPerLink
		}
		k.stats.BestCombo = max(k.stats.BestCombo, chain)
	}
}

func (k *Keeper) count(kind ObjectiveKind, target string) {
	for i := range k.objectives {
		o := &k.objectives[i]
		if o.Kind == kind && o.matches(target) {
			o.Current++
		}
	}
}

// Visit marks reach objectives whose location is within radius of pos.
func (k *Keeper) Visit(pos r2.Vec) {
	for i := range k.objectives {
		o := &k.objectives[i]
		if o.Kind != Reach || o.Met() {
			continue
		}
		if r2.Norm(r2.Sub(pos, o.Location)) <= o.Radius {
			o.Current = o.Required
		}
	}
}

// ObjectivesMet reports whether every objective is satisfied. A level
// without objectives is met trivially.
func (k *Keeper) ObjectivesMet() bool {
	for _, o := range k.objectives {
		if !o.Met() {
			return false
		}
	}
	return true
}

// LevelComplete reports whether the objectives are met and the player
// overlaps the goal zone. Without a goal zone the objectives alone decide,
// and a level with neither never completes.
func (k *Keeper) LevelComplete(player, goal core.Box) bool {
	if !k.ObjectivesMet() {
		return false
	}
	if goal.W <= 0 || goal.H <= 0 {
		return len(k.objectives) > 0
	}
	return player.Intersects(goal)
}

// Finish awards the completion bonuses and returns their sum. timeLeft is
// ignored when negative (untimed level).
func (k *Keeper) Finish(timeLeft float64) int {
	bonus := 0
	if k.stats.Hits == 0 {
		bonus += k.points.Flawless
	}
	if timeLeft > 0 {
		bonus += int(math.Floor(timeLeft)) * k.points.PerSecond
	}
	k.stats.Score += bonus
	return bonus
}
