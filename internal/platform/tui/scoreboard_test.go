package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func scoreboardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sb
}

func TestScoreboardFilter(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// blitz sorts first among the registered games.
	runs := []storage.Result{
		{GameID: "blitz", Level: "Field", Score: 300, Outcome: "complete", Elapsed: 41},
		{GameID: "blitz", Level: "Field", Score: 120, Outcome: "fell", Elapsed: 12},
		{GameID: "blitz", Level: "Field", Score: 80, Outcome: "timeout", Elapsed: 90},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 40)
	tests := []struct {
		filter RunFilter
		want   int
		best   int
	}{
		{FilterAll, 3, 300},
		{FilterCleared, 1, 300},
		{FilterFailed, 2, 120},
		{FilterAll, 3, 300},
	}
	for i, tc := range tests {
		if i > 0 {
			m = scoreboardUpdate(t, m, runeKey('f'))
		}
		if m.Filter() != tc.filter {
			t.Fatalf("Filter() = %v, expected %v", m.Filter(), tc.filter)
		}
		if len(m.shown) != tc.want {
			t.Errorf("%v: shown = %d, expected %d", tc.filter, len(m.shown), tc.want)
		}
		e, ok := m.Selected()
		if !ok || e.Score != tc.best {
			t.Errorf("%v: Selected() = %v, %v, expected score %d", tc.filter, e.Score, ok, tc.best)
		}
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Touchdown Blitz", "runs 3", "cleared 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = scoreboardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.shown) != 0 {
		t.Errorf("next game shows %d runs, expected 0", len(m.shown))
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() should be empty for a game without runs")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("View() should show the empty message:\n%s", m.View())
	}
	m = scoreboardUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
}

func TestOutcomeText(t *testing.T) {
	tests := map[string]string{
		"complete": "level cleared",
		"timeout":  "ran out of time",
		"fell":     "fell off the map",
		"":         "-",
		"other":    "other",
	}
	for in, want := range tests {
		if got := outcomeText(in); got != want {
			t.Errorf("outcomeText(%q) = %q, expected %q", in, got, want)
		}
	}
}
