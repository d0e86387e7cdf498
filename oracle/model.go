// Package oracle keeps an in-memory mirror of the expected server state.
// The model is the source of truth for "expected"; the live server response
// is the "actual" checked against it after every effective step.
package oracle

import (
	"sort"

	"tasksoak/domain"
	"tasksoak/randgen"
)

// Model mirrors the task resource: an ordered sequence of tasks plus the
// counters the invariants are phrased in. Single mutator, no locking.
type Model struct {
	tasks  []domain.Task
	nextID int

	insertedTotal  int
	deletedTotal   int
	completedCount int
	activeCount    int

	gen *randgen.Generator
}

// New returns an empty model drawing synthesized field values from gen.
func New(gen *randgen.Generator) *Model {
	return &Model{nextID: 1, gen: gen}
}

// Synthesize builds a new task with a locally-unique id. The counter is
// monotonic and never reused after deletes, so ids cannot collide with an
// auto-increment backend.
func (m *Model) Synthesize() domain.Task {
	t := domain.Task{
		ID:          m.nextID,
		Title:       m.gen.String(1, 20),
		Description: m.gen.String(0, 50),
		Priority:    m.gen.Priority(),
		Completed:   false,
		DueDate:     m.gen.Date(),
	}
	m.nextID++
	return t
}

// Insert appends t and bumps the insert and active counters.
func (m *Model) Insert(t domain.Task) {
	m.tasks = append(m.tasks, t)
	m.insertedTotal++
	if t.Completed {
		m.completedCount++
	} else {
		m.activeCount++
	}
}

// Delete removes and returns the task with the given id.
func (m *Model) Delete(id int) (domain.Task, error) {
	for i, t := range m.tasks {
		if t.ID != id {
			continue
		}
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
		m.deletedTotal++
		if t.Completed {
			m.completedCount--
		} else {
			m.activeCount--
		}
		return t, nil
	}
	return domain.Task{}, &domain.NotFoundError{ID: id}
}

// SetCompleted sets the completed flag on the task with the given id,
// adjusting the completed/active split when the value actually changes.
func (m *Model) SetCompleted(id int, value bool) error {
	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		if m.tasks[i].Completed == value {
			return nil
		}
		m.tasks[i].Completed = value
		if value {
			m.completedCount++
			m.activeCount--
		} else {
			m.completedCount--
			m.activeCount++
		}
		return nil
	}
	return &domain.NotFoundError{ID: id}
}

// Reset drops all tasks and zeroes the counters. The id counter keeps
// climbing across resets.
func (m *Model) Reset() {
	m.tasks = nil
	m.insertedTotal = 0
	m.deletedTotal = 0
	m.completedCount = 0
	m.activeCount = 0
}

// Len returns the live task count.
func (m *Model) Len() int { return len(m.tasks) }

// InsertedTotal returns the cumulative insert count since the last reset.
func (m *Model) InsertedTotal() int { return m.insertedTotal }

// DeletedTotal returns the cumulative delete count since the last reset.
func (m *Model) DeletedTotal() int { return m.deletedTotal }

// CompletedCount returns the number of live completed tasks.
func (m *Model) CompletedCount() int { return m.completedCount }

// ActiveCount returns the number of live active tasks.
func (m *Model) ActiveCount() int { return m.activeCount }

// Tasks returns a copy of the live tasks in insertion order.
func (m *Model) Tasks() []domain.Task {
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// OrderedView returns the live tasks stably sorted by priority rank, the
// order the server is expected to report them in.
func (m *Model) OrderedView() []domain.Task {
	out := m.Tasks()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// IDs returns the ids of all live tasks.
func (m *Model) IDs() []int {
	out := make([]int, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.ID)
	}
	return out
}

// ActiveIDs returns the ids of live tasks with completed == false.
func (m *Model) ActiveIDs() []int {
	out := make([]int, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.Completed {
			out = append(out, t.ID)
		}
	}
	return out
}

// CompletedIDs returns the ids of live tasks with completed == true.
func (m *Model) CompletedIDs() []int {
	out := make([]int, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.Completed {
			out = append(out, t.ID)
		}
	}
	return out
}
