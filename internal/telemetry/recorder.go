// Package telemetry exports gameplay events as CSV for offline tuning.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Row is one gameplay event of a session.
type Row struct {
	Game    string  `csv:"game"`
	Level   string  `csv:"level"`
	Attempt int     `csv:"attempt"`
	Tick    uint64  `csv:"tick"`
	Time    float64 `csv:"time"`
	Kind    string  `csv:"kind"`
	Target  string  `csv:"target"`
	Amount  float64 `csv:"amount"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Score   int     `csv:"score"`
}

// Recorder appends rows to a CSV file. A nil *Recorder discards everything.
type Recorder struct {
	mu            sync.Mutex
	file          *os.File
	headerWritten bool
	rows          int
}

// NewRecorder opens the output file for appending, creating it if needed.
// The header is only written to an empty file so sessions accumulate in one
// table. Returns nil if path is empty (telemetry disabled).
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //#nosec G304 -- user-provided output path
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Recorder{file: f, headerWritten: info.Size() > 0}, nil
}

// Record writes the events of one tick. score is the score after the tick.
func (r *Recorder) Record(game, level string, attempt int, events []core.Event, score int) error {
	if r == nil || len(events) == 0 {
		return nil
	}
	records := make([]Row, 0, len(events))
	for _, ev := range events {
		records = append(records, Row{
			Game:    game,
			Level:   level,
			Attempt: attempt,
			Tick:    ev.Tick,
			Time:    ev.Time,
			Kind:    string(ev.Kind),
			Target:  ev.Target,
			Amount:  ev.Amount,
			X:       ev.X,
			Y:       ev.Y,
			Score:   score,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.rows += len(records)
	return nil
}

// Rows returns the number of rows written so far.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// Close flushes and closes the file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
