package selector

import (
	"testing"

	"pgregory.net/rapid"

	"tasksoak/oracle"
	"tasksoak/randgen"
)

func emptyModel() *oracle.Model { return oracle.New(randgen.New(1)) }

func populated(n int, completed int) *oracle.Model {
	m := oracle.New(randgen.New(1))
	for i := 0; i < n; i++ {
		m.Insert(m.Synthesize())
	}
	for i, id := range m.IDs() {
		if i >= completed {
			break
		}
		if err := m.SetCompleted(id, true); err != nil {
			panic(err)
		}
	}
	return m
}

func TestDeleteNeverDrawnAgainstEmptyModel(t *testing.T) {
	s := New(Weights{Insert: 0.1, Delete: 0.9}, randgen.New(7))
	m := emptyModel()
	for i := 0; i < 500; i++ {
		plan, ok := s.Next(m)
		if !ok {
			t.Fatal("insert weight set, plan must be feasible")
		}
		if plan.Ops[0].Action != Insert {
			t.Fatalf("drew %v against empty model", plan.Ops[0].Action)
		}
	}
}

func TestNoFeasibleActionReported(t *testing.T) {
	s := New(Weights{Delete: 1}, randgen.New(7))
	if _, ok := s.Next(emptyModel()); ok {
		t.Fatal("delete-only weights against empty model must be infeasible")
	}
}

func TestInsertOnlyWeightsNeverDelete(t *testing.T) {
	s := New(Weights{Insert: 1}, randgen.New(3))
	m := populated(5, 0)
	for i := 0; i < 200; i++ {
		plan, _ := s.Next(m)
		if plan.Ops[0].Action != Insert {
			t.Fatalf("insert-only weights drew %v", plan.Ops[0].Action)
		}
	}
}

func TestToggleDisabledWhenWeightsZero(t *testing.T) {
	s := New(Weights{Insert: 0.6, Delete: 0.4}, randgen.New(3))
	m := populated(5, 2)
	for i := 0; i < 200; i++ {
		plan, _ := s.Next(m)
		if len(plan.Ops) != 1 {
			t.Fatalf("toggle drawn with zero toggle weights: %+v", plan.Ops)
		}
	}
}

func TestToggleFallsBackWhenInfeasible(t *testing.T) {
	// only completed tasks exist, complete is infeasible, must reactivate
	s := New(Weights{Insert: 1, Complete: 1}, randgen.New(3))
	m := populated(3, 3)
	plan, _ := s.Next(m)
	if len(plan.Ops) != 2 || plan.Ops[1].Action != Reactivate {
		t.Fatalf("want reactivate fallback, got %+v", plan.Ops)
	}
}

func TestToggleSkippedOnEmptyModel(t *testing.T) {
	s := New(Weights{Insert: 1, Complete: 0.75, Reactivate: 0.25}, randgen.New(3))
	plan, ok := s.Next(emptyModel())
	if !ok || len(plan.Ops) != 1 || plan.Ops[0].Action != Insert {
		t.Fatalf("empty model must yield bare insert, got %+v ok=%v", plan.Ops, ok)
	}
}

// Every plan targets ids the model tracks and respects eligibility: deletes
// pick live ids, completes pick active ids, reactivates pick completed ids.
func TestPlansAlwaysTargetEligibleTasks(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		gen := randgen.New(seed)
		m := oracle.New(gen)
		s := New(Weights{Insert: 0.6, Delete: 0.4, Complete: 0.75, Reactivate: 0.25}, gen)
		steps := rapid.IntRange(1, 150).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			plan, ok := s.Next(m)
			if !ok {
				rt.Fatal("plan must always be feasible with insert weight set")
			}
			for _, op := range plan.Ops {
				switch op.Action {
				case Insert:
					m.Insert(m.Synthesize())
				case Delete:
					if !contains(m.IDs(), op.ID) {
						rt.Fatalf("delete targets untracked id %d", op.ID)
					}
					if _, err := m.Delete(op.ID); err != nil {
						rt.Fatalf("delete: %v", err)
					}
				case Complete:
					if !contains(m.ActiveIDs(), op.ID) {
						rt.Fatalf("complete targets non-active id %d", op.ID)
					}
					if err := m.SetCompleted(op.ID, true); err != nil {
						rt.Fatalf("complete: %v", err)
					}
				case Reactivate:
					if !contains(m.CompletedIDs(), op.ID) {
						rt.Fatalf("reactivate targets non-completed id %d", op.ID)
					}
					if err := m.SetCompleted(op.ID, false); err != nil {
						rt.Fatalf("reactivate: %v", err)
					}
				}
			}
		}
	})
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
