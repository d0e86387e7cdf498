// Package checker verifies the oracle's predictions against the live task
// resource after every effective step.
package checker

import (
	"context"
	"fmt"

	"tasksoak/domain"
	"tasksoak/oracle"
)

// Lister fetches the authoritative task collection.
type Lister interface {
	ListAll(ctx context.Context) ([]domain.Task, error)
}

// Checker compares fetched server state against the model. It accumulates
// the action history since the last successful check so a violation report
// names the exact prefix of mutations that produced it.
type Checker struct {
	client        Lister
	model         *oracle.Model
	checkOrdering bool

	history []string
}

// New returns a Checker. checkOrdering enables the priority-grouping
// assertion, which only the ordering scenario requires.
func New(client Lister, model *oracle.Model, checkOrdering bool) *Checker {
	return &Checker{client: client, model: model, checkOrdering: checkOrdering}
}

// Record appends an executed action to the pending history.
func (c *Checker) Record(action string) {
	c.history = append(c.history, action)
}

// Verify fetches the server state and asserts, in order: total live count,
// completed/active split, and (when enabled) priority-grouped ordering.
// A mismatch returns a ConsistencyViolation; the history clears only on a
// fully successful check.
func (c *Checker) Verify(ctx context.Context) error {
	tasks, err := c.client.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(tasks) != c.model.Len() {
		return c.violation("total live task count", c.model.Len(), len(tasks))
	}
	if want := c.model.InsertedTotal() - c.model.DeletedTotal(); len(tasks) != want {
		return c.violation("inserted minus deleted", want, len(tasks))
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	active := len(tasks) - completed
	if completed != c.model.CompletedCount() {
		return c.violation("completed count", c.model.CompletedCount(), completed)
	}
	if active != c.model.ActiveCount() {
		return c.violation("active count", c.model.ActiveCount(), active)
	}

	if c.checkOrdering {
		for i := 1; i < len(tasks); i++ {
			prev, cur := tasks[i-1], tasks[i]
			if cur.Priority.Rank() < prev.Priority.Rank() {
				return c.violation(
					"priority grouping",
					fmt.Sprintf("rank(%s) <= rank(%s)", prev.Priority, cur.Priority),
					fmt.Sprintf("task %d (%s) before task %d (%s)", prev.ID, prev.Priority, cur.ID, cur.Priority),
				)
			}
		}
	}

	c.history = nil
	return nil
}

// VerifyStableReads fetches the collection twice without mutating in between
// and asserts both reads report tasks in the identical order.
func (c *Checker) VerifyStableReads(ctx context.Context) error {
	first, err := c.client.ListAll(ctx)
	if err != nil {
		return err
	}
	second, err := c.client.ListAll(ctx)
	if err != nil {
		return err
	}
	if !sameIDOrder(first, second) {
		return c.violation("stable read order", idSequence(first), idSequence(second))
	}
	return nil
}

func (c *Checker) violation(property string, expected, actual any) error {
	history := make([]string, len(c.history))
	copy(history, c.history)
	return &domain.ConsistencyViolation{
		Property: property,
		Expected: expected,
		Actual:   actual,
		History:  history,
	}
}

func sameIDOrder(a, b []domain.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func idSequence(tasks []domain.Task) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
