package state

import "testing"

func TestTransitions(t *testing.T) {
	tests := []struct {
		name   string
		path   []Event
		want   State
		okLast bool
	}{
		{"start", []Event{Start}, Playing, true},
		{"pause", []Event{Start, Pause}, Paused, true},
		{"unpause", []Event{Start, Pause, Pause}, Playing, true},
		{"win", []Event{Start, Win}, LevelComplete, true},
		{"lose", []Event{Start, Lose}, GameOver, true},
		{"restart after loss", []Event{Start, Lose, Restart}, Playing, true},
		{"menu after win", []Event{Start, Win, ToMenu}, Menu, true},
		{"menu from pause ignored", []Event{Start, Pause, ToMenu}, Paused, false},
		{"pause from menu ignored", []Event{Pause}, Menu, false},
		{"win while paused ignored", []Event{Start, Pause, Win}, Paused, false},
		{"lose while paused ignored", []Event{Start, Pause, Lose}, Paused, false},
		{"restart while playing ignored", []Event{Start, Restart}, Playing, false},
		{"pause after game over ignored", []Event{Start, Lose, Pause}, GameOver, false},
		{"start twice ignored", []Event{Start, Start}, Playing, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			var ok bool
			for _, ev := range tc.path {
				ok = m.Fire(ev)
			}
			if m.Current() != tc.want {
				t.Errorf("Current() = %v, expected %v", m.Current(), tc.want)
			}
			if ok != tc.okLast {
				t.Errorf("last Fire() = %v, expected %v", ok, tc.okLast)
			}
		})
	}
}

func TestLoseReason(t *testing.T) {
	m := New()
	m.Fire(Start)

	if !m.FireLose(ReasonTimeout) {
		t.Fatal("FireLose() from Playing should succeed")
	}
	if m.Reason() != ReasonTimeout {
		t.Errorf("Reason() = %q, expected timeout", m.Reason())
	}
	if m.FireLose(ReasonFell) {
		t.Error("FireLose() from GameOver should be ignored")
	}
	if m.Reason() != ReasonTimeout {
		t.Errorf("Reason() changed to %q on an ignored event", m.Reason())
	}

	m.Fire(Restart)
	if m.Reason() != ReasonNone {
		t.Errorf("Reason() = %q after restart, expected none", m.Reason())
	}
}

func TestEnterHooks(t *testing.T) {
	m := New()
	var entered []State
	var fromStates []State
	m.OnEnter(Playing, func(from State, _ Event) {
		entered = append(entered, Playing)
		fromStates = append(fromStates, from)
	})
	m.OnEnter(GameOver, func(State, Event) { entered = append(entered, GameOver) })

	m.Fire(Start)
	m.Fire(Pause)
	m.Fire(Pause)
	m.FireLose(ReasonHealth)
	m.Fire(Win)
	m.Fire(Restart)

	want := []State{Playing, Playing, GameOver, Playing}
	if len(entered) != len(want) {
		t.Fatalf("entered = %v, expected %v", entered, want)
	}
	for i := range want {
		if entered[i] != want[i] {
			t.Errorf("entered[%d] = %v, expected %v", i, entered[i], want[i])
		}
	}
	if fromStates[1] != Paused || fromStates[2] != GameOver {
		t.Errorf("from states = %v", fromStates)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []State{LevelComplete, GameOver} {
		if !s.Terminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
	for _, s := range []State{Menu, Playing, Paused} {
		if s.Terminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
}
