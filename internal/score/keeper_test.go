package score

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestApplyPoints(t *testing.T) {
	tests := []struct {
		name   string
		events []core.Event
		want   int
	}{
		{"coin with points", []core.Event{{Kind: core.EventPickup, Target: "coin", Amount: 10}}, 10},
		{"pickup without points", []core.Event{{Kind: core.EventPickup, Target: "gem"}}, 10},
		{"custom pickup points", []core.Event{{Kind: core.EventPickup, Target: "pearl", Amount: 25}}, 25},
		{"defeat", []core.Event{{Kind: core.EventDefeat, Target: "crab"}}, 50},
		{"evade", []core.Event{{Kind: core.EventEvade}}, 5},
		{"damage scores nothing", []core.Event{{Kind: core.EventDamage, Amount: 10}}, 0},
		{"single swing landing", []core.Event{{Kind: core.EventLand, Amount: 1}}, 0},
		{"three swing chain", []core.Event{{Kind: core.EventLand, Amount: 3}}, 50},
		{"mixed", []core.Event{
			{Kind: core.EventPickup, Amount: 10},
			{Kind: core.EventPickup, Amount: 10},
			{Kind: core.EventDefeat},
			{Kind: core.EventEvade},
		}, 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := NewKeeper(DefaultPoints(), nil)
			for _, ev := range tc.events {
				k.Apply(ev)
			}
			if k.Score() != tc.want {
				t.Errorf("Score() = %d, expected %d", k.Score(), tc.want)
			}
		})
	}
}

func TestObjectivesCount(t *testing.T) {
	k := NewKeeper(DefaultPoints(), []Objective{
		{Kind: Collect, Target: "coin", Required: 2},
		{Kind: Defeat, Required: 1},
	})

	k.Apply(core.Event{Kind: core.EventPickup, Target: "gem"})
	k.Apply(core.Event{Kind: core.EventPickup, Target: "coin"})
	if k.ObjectivesMet() {
		t.Fatal("ObjectivesMet() = true after one matching coin")
	}
	k.Apply(core.Event{Kind: core.EventPickup, Target: "coin"})
	k.Apply(core.Event{Kind: core.EventDefeat, Target: "crab"})

	if !k.ObjectivesMet() {
		t.Errorf("ObjectivesMet() = false, objectives: %v", k.Objectives())
	}
	if got := k.Objectives()[0].String(); got != "collect coin 2/2" {
		t.Errorf("String() = %q, expected %q", got, "collect coin 2/2")
	}
}

func TestNoObjectivesMetTrivially(t *testing.T) {
	k := NewKeeper(DefaultPoints(), nil)
	if !k.ObjectivesMet() {
		t.Error("ObjectivesMet() = false for a level without objectives")
	}
}

func TestReachObjective(t *testing.T) {
	k := NewKeeper(DefaultPoints(), []Objective{
		{Kind: Reach, Target: "shrine", Required: 1, Location: r2.Vec{X: 500, Y: 100}},
	})
	if k.Objectives()[0].Radius != DefaultReachRadius {
		t.Errorf("Radius = %v, expected default %v", k.Objectives()[0].Radius, DefaultReachRadius)
	}

	k.Visit(r2.Vec{X: 400, Y: 100})
	if k.ObjectivesMet() {
		t.Error("Visit() 100px away should not satisfy a 50px reach")
	}
	k.Visit(r2.Vec{X: 530, Y: 140})
	if !k.ObjectivesMet() {
		t.Error("Visit() within radius should satisfy the reach objective")
	}
}

// Objectives collect 3/3 and defeat 2/2 met while overlapping the goal.
func TestLevelCompleteScenario(t *testing.T) {
	k := NewKeeper(DefaultPoints(), []Objective{
		{Kind: Collect, Required: 3},
		{Kind: Defeat, Required: 2},
	})
	goal := core.NewBox(700, 400, 50, 80)
	inGoal := core.NewBox(710, 420, 20, 30)
	outside := core.NewBox(100, 420, 20, 30)

	for range 3 {
		k.Apply(core.Event{Kind: core.EventPickup, Target: "coin", Amount: 10})
	}
	k.Apply(core.Event{Kind: core.EventDefeat, Target: "crab"})
	if k.LevelComplete(inGoal, goal) {
		t.Fatal("LevelComplete() = true with defeat 1/2")
	}

	k.Apply(core.Event{Kind: core.EventDefeat, Target: "crab"})
	if k.LevelComplete(outside, goal) {
		t.Error("LevelComplete() = true outside the goal zone")
	}
	if !k.LevelComplete(inGoal, goal) {
		t.Error("LevelComplete() = false with objectives met inside the goal zone")
	}
}

func TestLevelCompleteWithoutGoal(t *testing.T) {
	k := NewKeeper(DefaultPoints(), []Objective{{Kind: Collect, Required: 1}})
	player := core.NewBox(0, 0, 10, 10)

	if k.LevelComplete(player, core.Box{}) {
		t.Error("LevelComplete() = true before objectives are met")
	}
	k.Apply(core.Event{Kind: core.EventPickup})
	if !k.LevelComplete(player, core.Box{}) {
		t.Error("LevelComplete() = false with objectives met and no goal zone")
	}

	empty := NewKeeper(DefaultPoints(), nil)
	if empty.LevelComplete(player, core.Box{}) {
		t.Error("LevelComplete() = true for a level without objectives or goal")
	}
}

func TestFinishBonuses(t *testing.T) {
	tests := []struct {
		name     string
		hits     int
		timeLeft float64
		want     int
	}{
		{"flawless with time", 0, 12.7, 100 + 120},
		{"flawless untimed", 0, -1, 100},
		{"hit with time", 1, 3, 30},
		{"hit out of time", 2, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := NewKeeper(DefaultPoints(), nil)
			for range tc.hits {
				k.Apply(core.Event{Kind: core.EventDamage, Amount: 5})
			}
			got := k.Finish(tc.timeLeft)
			if got != tc.want {
				t.Errorf("Finish(%v) = %d, expected %d", tc.timeLeft, got, tc.want)
			}
			if k.Score() != tc.want {
				t.Errorf("Score() = %d, expected %d", k.Score(), tc.want)
			}
		})
	}
}

func TestObjectivesAreCopied(t *testing.T) {
	in := []Objective{{Kind: Collect, Required: 1}}
	k := NewKeeper(DefaultPoints(), in)
	k.Apply(core.Event{Kind: core.EventPickup})

	if in[0].Current != 0 {
		t.Error("NewKeeper() must not alias the caller's objectives")
	}
	out := k.Objectives()
	out[0].Current = 0
	if !k.ObjectivesMet() {
		t.Error("Objectives() must return a copy")
	}
}

func TestParseObjectiveKind(t *testing.T) {
	for _, s := range []string{"collect", "defeat", "reach"} {
		if _, err := ParseObjectiveKind(s); err != nil {
			t.Errorf("ParseObjectiveKind(%q) error: %v", s, err)
		}
	}
	if _, err := ParseObjectiveKind("survive"); err == nil {
		t.Error("ParseObjectiveKind(survive) should fail")
	}
}
