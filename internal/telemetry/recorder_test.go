package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "session.csv")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder() error: %v", err)
	}

	first := []core.Event{
		{Kind: core.EventPickup, Tick: 10, Time: 10.0 / 60, Target: "banana", Amount: 10, X: 250, Y: 400},
		{Kind: core.EventLand, Tick: 10, Amount: 2},
	}
	if err := r.Record("vinebound", "Vinebound Odyssey", 1, first, 35); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := r.Record("vinebound", "Vinebound Odyssey", 1, nil, 35); err != nil {
		t.Fatalf("Record(nil) error: %v", err)
	}
	if err := r.Record("vinebound", "Vinebound Odyssey", 2, []core.Event{{Kind: core.EventLose, Target: "fell"}}, 0); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if r.Rows() != 3 {
		t.Errorf("Rows() = %d, expected 3", r.Rows())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "game,level"); n != 1 {
		t.Errorf("header written %d times, expected once", n)
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("UnmarshalBytes() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, expected 3", len(rows))
	}
	if rows[0].Target != "banana" || rows[0].Score != 35 || rows[0].X != 250 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[2].Attempt != 2 || rows[2].Kind != "lose" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestRecorderAppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.csv")
	for attempt := 1; attempt <= 2; attempt++ {
		r, err := NewRecorder(path)
		if err != nil {
			t.Fatalf("NewRecorder() error: %v", err)
		}
		ev := []core.Event{{Kind: core.EventWin, Tick: uint64(attempt)}}
		if err := r.Record("shellshock", "Shellshock Bay", attempt, ev, 100*attempt); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("Close() error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "game,level"); n != 1 {
		t.Errorf("header written %d times, expected once", n)
	}
	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("UnmarshalBytes() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, expected 2", len(rows))
	}
	if rows[0].Score != 100 || rows[1].Score != 200 || rows[1].Attempt != 2 {
		t.Errorf("rows = %+v, expected both sessions in order", rows)
	}
}

func TestNilRecorder(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil || r != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v, expected nil, nil", r, err)
	}
	if err := r.Record("g", "l", 1, []core.Event{{Kind: core.EventWin}}, 0); err != nil {
		t.Errorf("nil Record() error: %v", err)
	}
	if r.Rows() != 0 || r.Close() != nil {
		t.Error("nil recorder should report nothing")
	}
}
