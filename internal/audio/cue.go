// Package audio plays short synthesized cues for gameplay events.
package audio

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Wave is the oscillator shape of a cue.
type Wave uint8

const (
	Sine Wave = iota
	Square
	Noise
)

// Cue is a single swept tone.
type Cue struct {
	Wave     Wave
	From, To float64 // start and end frequency in Hz
	Duration time.Duration
	Volume   float64 // 0..1
}

var cues = map[core.EventKind]Cue{
	core.EventPickup:  {Wave: Square, From: 880, To: 1320, Duration: 80 * time.Millisecond, Volume: 0.2},
	core.EventDamage:  {Wave: Noise, From: 140, To: 90, Duration: 200 * time.Millisecond, Volume: 0.3},
	core.EventEvade:   {Wave: Sine, From: 660, To: 990, Duration: 60 * time.Millisecond, Volume: 0.15},
	core.EventDefeat:  {Wave: Square, From: 220, To: 110, Duration: 150 * time.Millisecond, Volume: 0.25},
	core.EventLand:    {Wave: Sine, From: 523, To: 784, Duration: 120 * time.Millisecond, Volume: 0.2},
	core.EventAbility: {Wave: Sine, From: 520, To: 780, Duration: 100 * time.Millisecond, Volume: 0.2},
	core.EventAttach:  {Wave: Sine, From: 440, To: 470, Duration: 50 * time.Millisecond, Volume: 0.15},
	core.EventDetach:  {Wave: Sine, From: 470, To: 330, Duration: 50 * time.Millisecond, Volume: 0.15},
	core.EventWin:     {Wave: Square, From: 523, To: 1046, Duration: 600 * time.Millisecond, Volume: 0.25},
	core.EventLose:    {Wave: Square, From: 330, To: 110, Duration: 700 * time.Millisecond, Volume: 0.25},
}

// CueFor returns the cue of an event. Plain landings are silent; only a
// landing that ends a swing combo gets a cue.
func CueFor(ev core.Event) (Cue, bool) {
	if ev.Kind == core.EventLand && ev.Amount < 2 {
		return Cue{}, false
	}
	c, ok := cues[ev.Kind]
	return c, ok
}
