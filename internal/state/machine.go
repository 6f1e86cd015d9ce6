// Package state implements the top-level game state machine.
package state

// State is a top-level game state.
type State string

const (
	Menu          State = "menu"
	Playing       State = "playing"
	Paused        State = "paused"
	LevelComplete State = "level_complete"
	GameOver      State = "game_over"
)

// Terminal reports whether the state ends an attempt.
func (s State) Terminal() bool {
	return s == LevelComplete || s == GameOver
}

// Event is a trigger for a state transition.
type Event string

const (
	Start   Event = "start"   // Menu -> Playing
	Pause   Event = "pause"   // Playing <-> Paused
	Win     Event = "win"     // Playing -> LevelComplete
	Lose    Event = "lose"    // Playing -> GameOver
	Restart Event = "restart" // LevelComplete/GameOver -> Playing
	ToMenu  Event = "menu"    // LevelComplete/GameOver -> Menu
)

// Reason explains why an attempt was lost.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonHealth  Reason = "health"
	ReasonTimeout Reason = "timeout"
	ReasonFell    Reason = "fell"
)

type edge struct {
	from State
	on   Event
}

var transitions = map[edge]State{
	{Menu, Start}:            Playing,
	{Playing, Pause}:         Paused,
	{Paused, Pause}:          Playing,
	{Playing, Win}:           LevelComplete,
	{Playing, Lose}:          GameOver,
	{LevelComplete, Restart}: Playing,
	{GameOver, Restart}:      Playing,
	{LevelComplete, ToMenu}:  Menu,
	{GameOver, ToMenu}:       Menu,
}

// EnterFunc runs after the machine enters a state.
type EnterFunc func(from State, on Event)

// Machine tracks the current state and runs enter hooks on transitions.
type Machine struct {
	current State
	reason  Reason
	hooks   map[State][]EnterFunc
}

// New creates a machine in the Menu state.
func New() *Machine {
	return &Machine{current: Menu, hooks: make(map[State][]EnterFunc)}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Reason returns why the last attempt was lost, or ReasonNone.
func (m *Machine) Reason() Reason {
	return m.reason
}

// OnEnter registers a hook run every time the machine enters s.
func (m *Machine) OnEnter(s State, fn EnterFunc) {
	m.hooks[s] = append(m.hooks[s], fn)
}

// Can reports whether ev is valid in the current state.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[edge{m.current, ev}]
	return ok
}

// Fire applies ev. Invalid events are ignored and return false.
func (m *Machine) Fire(ev Event) bool {
	return m.fire(ev, ReasonNone)
}

// FireLose moves Playing to GameOver, recording the reason.
func (m *Machine) FireLose(r Reason) bool {
	return m.fire(Lose, r)
}

func (m *Machine) fire(ev Event, r Reason) bool {
	next, ok := transitions[edge{m.current, ev}]
	if !ok {
		return false
	}
	from := m.current
	m.current = next
	switch next {
	case GameOver:
		m.reason = r
	case Playing:
		if from != Paused {
			m.reason = ReasonNone
		}
	}
	for _, fn := range m.hooks[next] {
		fn(from, ev)
	}
	return true
}
