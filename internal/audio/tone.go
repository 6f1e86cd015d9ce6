package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ToneGenerator streams one cue: a frequency sweep under a linear decay.
type ToneGenerator struct {
	cue   Cue
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
	seed  uint32
}

// NewToneGenerator creates a generator for a cue.
func NewToneGenerator(sr beep.SampleRate, cue Cue) *ToneGenerator {
	return &ToneGenerator{cue: cue, sr: sr, total: max(1, sr.N(cue.Duration)), seed: 0x9e3779b9}
}

// Stream fills samples until the cue ends.
func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.cue.From + (g.cue.To-g.cue.From)*progress
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		v := g.sample()
		amp := g.cue.Volume * (1 - progress)
		samples[i][0] = v * amp
		samples[i][1] = v * amp
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) sample() float64 {
	switch g.cue.Wave {
	case Square:
		if g.phase < 0.5 {
			return 1
		}
		return -1
	case Noise:
		// xorshift keeps the noise reproducible
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		return 0.5*noise + 0.5*math.Sin(2*math.Pi*g.phase)
	default:
		return math.Sin(2 * math.Pi * g.phase)
	}
}

// Err implements beep.Streamer.
func (g *ToneGenerator) Err() error {
	return nil
}
