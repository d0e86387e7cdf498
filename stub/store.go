package stub

import (
	"sync"

	"tasksoak/domain"
)

// Faults switches deliberate misbehavior on, used by the harness's own
// tests to prove the checker catches a defective backend.
type Faults struct {
	// DropCompletedUpdates acknowledges PUTs without applying them.
	DropCompletedUpdates bool
}

// Store keeps tasks in memory, grouped by priority rank with insertion
// order preserved within a group — the ordering contract the harness
// expects of the real backend.
type Store struct {
	mu    sync.Mutex
	tasks []domain.Task

	Faults Faults
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// List returns the tasks in their grouped order.
func (s *Store) List() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Insert places t after the last task of equal-or-higher rank. Returns
// false when the id is already live.
func (s *Store) Insert(t domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tasks {
		if existing.ID == t.ID {
			return false
		}
	}
	pos := len(s.tasks)
	for i, existing := range s.tasks {
		if existing.Priority.Rank() > t.Priority.Rank() {
			pos = i
			break
		}
	}
	s.tasks = append(s.tasks, domain.Task{})
	copy(s.tasks[pos+1:], s.tasks[pos:])
	s.tasks[pos] = t
	return true
}

// SetCompleted updates the completed flag; false when id is absent.
func (s *Store) SetCompleted(id int, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = completed
			return true
		}
	}
	return false
}

// Remove deletes the task with the given id; false when absent.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
