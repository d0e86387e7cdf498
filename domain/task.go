package domain

// Priority labels a task. Labels are fixed; Rank gives the order the server
// groups them in.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every valid priority label.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the grouping rank: high=1, medium=2, low=3. Unknown labels
// rank after every valid one so ordering checks flag them.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Valid reports whether p is one of the fixed labels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task mirrors one record in the task resource. IDs are assigned by the
// harness before creation, never by the server.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	DueDate     string   `json:"dueDate"`
}
