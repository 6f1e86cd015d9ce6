// Package runner holds the frontend-independent part of playing a game:
// counting attempts, handing events to the sound and telemetry sinks and
// saving each finished attempt once.
package runner

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/state"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// Options are the sinks of a runner. Every field may be nil.
type Options struct {
	Store     *storage.Store
	Sound     *audio.Manager
	Telemetry *telemetry.Recorder
	Logger    *log.Logger
}

// Runner steps a game and does the bookkeeping around it.
type Runner struct {
	game    registry.Game
	opts    Options
	log     *log.Logger
	state   core.GameState
	attempt int
	saved   bool
}

// New creates a runner. The game must be Reset before stepping.
func New(game registry.Game, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{game: game, opts: opts, log: logger}
}

// Game returns the game being run.
func (r *Runner) Game() registry.Game {
	return r.game
}

// Reset reloads the game. On failure the previous level keeps running.
func (r *Runner) Reset(cfg core.RuntimeConfig) error {
	if err := r.game.Reset(cfg); err != nil {
		return err
	}
	r.state = r.game.State()
	r.saved = false
	return nil
}

// Step advances the game by dt seconds.
func (r *Runner) Step(in core.InputFrame, dt float64) core.StepResult {
	prev := r.state
	result := r.game.Step(in, dt)
	r.state = result.State

	if started(prev, r.state) {
		r.attempt++
		r.saved = false
	}
	r.publish(result.Events)

	if r.state.GameOver && !r.saved {
		r.save()
		r.saved = true
	}
	return result
}

// State returns the state after the last step or reset.
func (r *Runner) State() core.GameState {
	return r.state
}

// Attempt returns how many attempts have started.
func (r *Runner) Attempt() int {
	return r.attempt
}

// started reports whether a new attempt began between two states.
func started(prev, cur core.GameState) bool {
	playing := string(state.Playing)
	return cur.Phase == playing && prev.Phase != playing && prev.Phase != string(state.Paused)
}

func (r *Runner) publish(events []core.Event) {
	if len(events) == 0 {
		return
	}
	if r.opts.Sound != nil {
		r.opts.Sound.Play(events)
	}
	if r.opts.Telemetry != nil {
		err := r.opts.Telemetry.Record(r.game.ID(), r.state.Level, r.attempt, events, r.state.Score)
		if err != nil {
			r.log.Error("telemetry disabled", "error", err)
			r.opts.Telemetry = nil
		}
	}
}

func (r *Runner) save() {
	if r.opts.Store == nil {
		return
	}
	id, err := r.opts.Store.SaveScore(storage.Result{
		GameID:  r.game.ID(),
		Level:   r.state.Level,
		Score:   r.state.Score,
		Outcome: r.state.Outcome,
		Elapsed: r.state.Elapsed,
	})
	if err != nil {
		r.log.Error("could not save score", "game", r.game.ID(), "error", err)
		return
	}
	r.log.Debug("score saved", "id", id, "score", r.state.Score, "outcome", r.state.Outcome)
}
