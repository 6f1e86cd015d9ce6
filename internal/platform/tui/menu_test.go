package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm
}

func TestMenuDifficulty(t *testing.T) {
	tests := []struct {
		name  string
		start string
		keys  []tea.KeyMsg
		want  string
	}{
		{"default", "", nil, "normal"},
		{"keeps flag", "hard", nil, "hard"},
		{"right", "", []tea.KeyMsg{{Type: tea.KeyRight}}, "hard"},
		{"wraps right", "hard", []tea.KeyMsg{{Type: tea.KeyRight}}, "easy"},
		{"wraps left", "easy", []tea.KeyMsg{{Type: tea.KeyLeft}}, "hard"},
		{"unknown flag", "brutal", nil, "normal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			cfg.Difficulty = tc.start
			m := NewMenuModel(nil, cfg)
			for _, k := range tc.keys {
				m = menuUpdate(t, m, k)
			}
			if got := m.Config().Difficulty; got != tc.want {
				t.Errorf("Difficulty = %q, expected %q", got, tc.want)
			}
			if !strings.Contains(m.View(), "< "+tc.want+" >") {
				t.Errorf("View() does not show difficulty %q", tc.want)
			}
		})
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore(storage.Result{GameID: "blitz", Level: "Field", Score: 4321, Outcome: "complete"}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	view := m.View()
	if !strings.Contains(view, "4321") {
		t.Errorf("View() missing best score:\n%s", view)
	}
	if !strings.Contains(view, "cleared 1 times") {
		t.Errorf("View() missing cleared count:\n%s", view)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if sel.GameID != m.items[1].GameID {
		t.Errorf("Selected() = %q, expected %q", sel.GameID, m.items[1].GameID)
	}
}
