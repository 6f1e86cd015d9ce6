package core

import "github.com/charmbracelet/log"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Difficulty string // Difficulty preset name ("" means the game's default)
	LevelDir   string // Directory of level files overriding the built-in ones
	Level      string // Level name or file to play ("" means the game's own level)
	ConfigPath string // Custom tuning file ("" searches the default locations)

	// Logger receives non-fatal warnings such as a failing level script.
	// nil discards them.
	Logger *log.Logger
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	GameOver  bool   // Whether the attempt has ended (lost or won)
	Won       bool   // Whether the attempt ended with the level complete
	Paused    bool   // Whether the game is paused
	Phase     string // Name of the current top-level state
	Level     string // Name of the loaded level
	Outcome   string // Why the attempt ended ("complete", "health", "timeout", "fell")
	Elapsed   float64
	Remaining float64 // Seconds left on the level timer, negative when untimed
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies a gameplay event surfaced to the platform layer.
type EventKind string

const (
	EventPickup  EventKind = "pickup"
	EventDamage  EventKind = "damage"
	EventEvade   EventKind = "evade"
	EventDefeat  EventKind = "defeat"
	EventLand    EventKind = "land"
	EventAbility EventKind = "ability"
	EventAttach  EventKind = "attach"
	EventDetach  EventKind = "detach"
	EventWin     EventKind = "win"
	EventLose    EventKind = "lose"
)

// Event is a single gameplay occurrence during a tick.
// The platform uses events for sound cues and telemetry; games never depend on
// anyone consuming them.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Time   float64 // Simulated seconds since level start
	Target string  // Subtype of the other party (pickup type, enemy type, ability name)
	Amount float64 // Points, damage or stamina depending on Kind
	X, Y   float64 // Player position when the event fired
}
