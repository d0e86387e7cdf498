package domain

import (
	"fmt"
	"strings"
)

// TransportError indicates the task resource could not be reached at all
// (connection, DNS, timeout). Always fatal to a run.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatusError indicates the task resource answered with a non-2xx
// status. Fatal by default; delete-of-absent may be tolerated by config.
type UnexpectedStatusError struct {
	Op     string
	URL    string
	Status int
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Op, e.URL, e.Status, e.Body)
}

// NotFoundError indicates the oracle was asked to mutate an id it does not
// track. This is a harness defect, not a backend one, and must never surface
// when the selector only targets ids known to the model.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not tracked by the model", e.ID)
}

// ConsistencyViolation is a detected divergence between the oracle's
// prediction and the observed server state. It carries the action history
// since the last successful check so a report pinpoints the offending prefix.
type ConsistencyViolation struct {
	Property string
	Expected any
	Actual   any
	History  []string
}

func (e *ConsistencyViolation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "consistency violation on %q: expected %v, got %v", e.Property, e.Expected, e.Actual)
	if len(e.History) > 0 {
		fmt.Fprintf(&b, " (actions since last pass: %s)", strings.Join(e.History, "; "))
	}
	return b.String()
}
