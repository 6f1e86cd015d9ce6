// Package script runs the tengo programs levels use to compute a completion bonus.
//
// A program sees the globals score, time_left, health, max_health, collected,
// defeated and evades, and assigns an integer to bonus:
//
//	bonus = time_left > 60 ? 200 : 0
//	if defeated == 0 { bonus += 500 }
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// RunTimeout bounds a single run so a looping script cannot stall the game.
const RunTimeout = 100 * time.Millisecond

// Vars are the inputs of a bonus program.
type Vars struct {
	Score     int
	TimeLeft  float64
	Health    float64
	MaxHealth float64
	Collected int
	Defeated  int
	Evades    int
}

// Program is a compiled bonus script.
type Program struct {
	compiled *tengo.Compiled
}

// Compile compiles a bonus script. Only the deterministic stdlib modules
// (math, text, enum) can be imported.
func Compile(src string) (*Program, error) {
	s := tengo.NewScript([]byte(src))
	for name, v := range (Vars{}).globals() {
		if err := s.Add(name, v); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	if err := s.Add("bonus", 0); err != nil {
		return nil, fmt.Errorf("declare bonus: %w", err)
	}
	s.SetImports(stdlib.GetModuleMap("math", "text", "enum"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile score script: %w", err)
	}
	return &Program{compiled: compiled}, nil
}

// Bonus runs the program on a fresh copy of its globals and returns bonus.
func (p *Program) Bonus(v Vars) (int, error) {
	c := p.compiled.Clone()
	for name, val := range v.globals() {
		if err := c.Set(name, val); err != nil {
			return 0, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := c.Set("bonus", 0); err != nil {
		return 0, fmt.Errorf("set bonus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), RunTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("run score script: %w", err)
	}

	out := c.Get("bonus")
	switch out.ValueType() {
	case "int", "float":
		return out.Int(), nil
	default:
		return 0, fmt.Errorf("score script: bonus is %s, expected a number", out.ValueType())
	}
}

func (v Vars) globals() map[string]any {
	return map[string]any{
		"score":      v.Score,
		"time_left":  v.TimeLeft,
		"health":     v.Health,
		"max_health": v.MaxHealth,
		"collected":  v.Collected,
		"defeated":   v.Defeated,
		"evades":     v.Evades,
	}
}

// Eval compiles and runs src once.
func Eval(src string, v Vars) (int, error) {
	p, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return p.Bonus(v)
}
