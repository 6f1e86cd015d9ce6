package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// HoldWindow is how long a movement key counts as held after its last press
// or auto-repeat. Terminals report no key-up events.
const HoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ":
		return core.ActionJump, false
	case "e":
		return core.ActionAttach, false
	case "j":
		return core.ActionPrimary, false
	case "k":
		return core.ActionSecondary, false
	case "l":
		return core.ActionTertiary, false
	case ";":
		return core.ActionQuaternary, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// Held reports whether an action is a continuous one that stays set while
// the key is down, as opposed to a press that fires once.
func Held(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		return true
	}
	return false
}

// InputLatch collects key presses between ticks. Presses fire on the next
// frame only; held actions stay set until HoldWindow passes without a repeat.
type InputLatch struct {
	window  time.Duration
	until   map[core.Action]time.Time
	pending core.InputFrame
}

// NewInputLatch creates a latch; a non-positive window uses HoldWindow.
func NewInputLatch(window time.Duration) *InputLatch {
	if window <= 0 {
		window = HoldWindow
	}
	return &InputLatch{
		window:  window,
		until:   make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// Press records an action at the given time.
func (l *InputLatch) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !Held(a) {
		l.pending.Set(a)
		return
	}
	// Opposite directions cancel so a quick reversal does not stall.
	switch a {
	case core.ActionLeft:
		delete(l.until, core.ActionRight)
	case core.ActionRight:
		delete(l.until, core.ActionLeft)
	}
	l.until[a] = now.Add(l.window)
}

// Frame returns the input for one tick and consumes the pending presses.
func (l *InputLatch) Frame(now time.Time) core.InputFrame {
	f := l.pending.Clone()
	l.pending.Clear()
	for a, t := range l.until {
		if now.Before(t) {
			f.Set(a)
		} else {
			delete(l.until, a)
		}
	}
	return f
}

// Reset forgets every press and held key.
func (l *InputLatch) Reset() {
	clear(l.until)
	l.pending.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionPrevDifficulty
	MenuActionNextDifficulty
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "a", "left", "h":
		return MenuActionPrevDifficulty
	case "d", "right", "l":
		return MenuActionNextDifficulty
	}

	return MenuActionNone
}
