package soak

import (
	"fmt"

	"tasksoak/config"
	"tasksoak/selector"
)

// Scenario is one soak profile: how a round is seeded, which draws a step
// makes, and which invariants the checker enforces.
type Scenario struct {
	Name string
	// SeedCount tasks are inserted (and verified) before the act loop.
	SeedCount int
	// ToggleDraw enables the independent complete-or-reactivate draw each
	// step makes on top of its insert-or-delete draw.
	ToggleDraw bool
	// CheckOrdering enables the priority-grouping assertion after every
	// step and the stable-read check at round end.
	CheckOrdering bool
}

// ScenarioByName resolves one of the built-in scenarios.
func ScenarioByName(name string) (Scenario, error) {
	switch name {
	case "priority-order":
		return Scenario{Name: name, SeedCount: 10, CheckOrdering: true}, nil
	case "completion-tracking":
		return Scenario{Name: name, ToggleDraw: true}, nil
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}

// weights translates configured action weights into the selector's two
// draws, zeroing the toggle draw for scenarios that do not use it.
func (s Scenario) weights(a config.Actions) selector.Weights {
	w := selector.Weights{Insert: a.Insert, Delete: a.Delete}
	if s.ToggleDraw {
		w.Complete = a.Complete
		w.Reactivate = a.Reactivate
	}
	return w
}
