package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left
	ActionRight          // D, Right arrow - run right
	ActionUp             // W, Up arrow - pump swing, menu up
	ActionDown           // S, Down arrow - pump swing, menu down
	ActionJump           // Space - jump, detach from a swing
	ActionAttach         // E, Shift - grab or release a pivot
	ActionPrimary        // J - primary ability
	ActionSecondary      // K - first secondary ability
	ActionTertiary       // L - second secondary ability
	ActionQuaternary     // ; - third secondary ability
	ActionConfirm        // Enter - start level, confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - reload the level after it ended
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionJump:       "Jump",
	ActionAttach:     "Attach",
	ActionPrimary:    "Primary",
	ActionSecondary:  "Secondary",
	ActionTertiary:   "Tertiary",
	ActionQuaternary: "Quaternary",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// AbilitySlots lists the ability actions in key order.
var AbilitySlots = []Action{ActionPrimary, ActionSecondary, ActionTertiary, ActionQuaternary}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered or held during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Frame builds an input frame with the given actions set.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Horizontal returns -1, 0 or 1 for the left/right intent of this frame.
func (f InputFrame) Horizontal() float64 {
	dir := 0.0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
