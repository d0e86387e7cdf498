// Package selector chooses the next mutation(s) to apply, weighted by a
// configured probability distribution and constrained by what the model
// currently allows. An infeasible draw is resolved here, never surfaced as
// a wasted step: every returned plan performs at least one mutation.
package selector

import (
	"tasksoak/randgen"
)

// Action is one of the four mutations the harness performs.
type Action int

const (
	Insert Action = iota
	Delete
	Complete
	Reactivate
)

func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Complete:
		return "complete"
	case Reactivate:
		return "reactivate"
	}
	return "unknown"
}

// Weights configures the two independent draws a step makes: insert vs
// delete for the primary mutation, complete vs reactivate for the optional
// toggle. Weights need not sum to 1; zeroing both toggle weights disables
// the toggle draw entirely.
type Weights struct {
	Insert     float64
	Delete     float64
	Complete   float64
	Reactivate float64
}

// Op is a single mutation. ID is meaningful for every action but Insert,
// where the model assigns the id at synthesis time.
type Op struct {
	Action Action
	ID     int
}

// Plan is the full set of mutations one effective step performs: a primary
// insert-or-delete, optionally followed by a complete-or-reactivate toggle.
type Plan struct {
	Ops []Op
}

// State is the view of the model the selector consults for feasibility.
type State interface {
	Len() int
	IDs() []int
	ActiveIDs() []int
	CompletedIDs() []int
}

// Selector draws step plans.
type Selector struct {
	w   Weights
	gen *randgen.Generator
}

// New returns a Selector drawing from gen with the given weights.
func New(w Weights, gen *randgen.Generator) *Selector {
	return &Selector{w: w, gen: gen}
}

// Next draws the next plan. The primary draw falls back to Insert when
// Delete is drawn against an empty model, so a returned plan always mutates;
// ok is false only when both primary weights are zero.
func (s *Selector) Next(st State) (Plan, bool) {
	var plan Plan

	primaryTotal := s.w.Insert + s.w.Delete
	if primaryTotal <= 0 {
		return Plan{}, false
	}
	drawDelete := s.gen.Float64()*primaryTotal >= s.w.Insert
	if drawDelete && st.Len() == 0 {
		if s.w.Insert <= 0 {
			return Plan{}, false
		}
		drawDelete = false
	}
	deleted := -1
	if drawDelete {
		ids := st.IDs()
		deleted = ids[s.gen.Intn(len(ids))]
		plan.Ops = append(plan.Ops, Op{Action: Delete, ID: deleted})
	} else {
		plan.Ops = append(plan.Ops, Op{Action: Insert})
	}

	if op, ok := s.toggle(st, deleted); ok {
		plan.Ops = append(plan.Ops, op)
	}
	return plan, true
}

// toggle draws the complete-or-reactivate effect. The id the primary delete
// claimed is excluded so the plan's ops stay valid when applied in order.
// An infeasible draw falls back to the other direction; when neither is
// feasible the toggle is skipped and the step proceeds on its primary
// mutation alone.
func (s *Selector) toggle(st State, deleted int) (Op, bool) {
	total := s.w.Complete + s.w.Reactivate
	if total <= 0 {
		return Op{}, false
	}
	active := without(st.ActiveIDs(), deleted)
	completed := without(st.CompletedIDs(), deleted)
	wantComplete := s.gen.Float64()*total < s.w.Complete
	if wantComplete && len(active) == 0 {
		wantComplete = false
	}
	if !wantComplete && len(completed) == 0 {
		if len(active) == 0 {
			return Op{}, false
		}
		wantComplete = true
	}
	if wantComplete {
		return Op{Action: Complete, ID: active[s.gen.Intn(len(active))]}, true
	}
	return Op{Action: Reactivate, ID: completed[s.gen.Intn(len(completed))]}, true
}

func without(ids []int, drop int) []int {
	if drop < 0 {
		return ids
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
