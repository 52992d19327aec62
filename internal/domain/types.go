// Package domain contains core business types for Due Helper.
package domain

import "time"

// DefaultColor is applied when a category has no color of its own,
// notably when upgrading legacy snapshots that stored bare names.
const DefaultColor = "#85a5ff"

// UrgencyWindow is how close a due date has to be before a task
// counts as urgent.
const UrgencyWindow = 24 * time.Hour

// Category tags tasks with a user-chosen name and color. The name is
// the unique key (case-sensitive); the color is a hex string used only
// for display.
type Category struct {
	Name  string `json:"catName"`
	Color string `json:"color"`
}

// Subtask is a single checklist entry owned by a task.
type Subtask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Task represents one due item. Category is a name+color snapshot, not
// a live reference; renaming a category cascades through the store.
type Task struct {
	ID            string     `json:"id"`
	Category      Category   `json:"category"`
	Description   string     `json:"description"`
	AvailableDate *time.Time `json:"availableDate"`
	DueDate       time.Time  `json:"dueDate"`
	Completed     bool       `json:"completed"`
	Subtasks      []Subtask  `json:"subtaskList,omitempty"`
}

// TaskDraft is the input shape for creating or replacing a task.
// The store assigns IDs and snapshots the category color.
type TaskDraft struct {
	Category      Category
	Description   string
	AvailableDate *time.Time
	DueDate       time.Time
	Completed     bool
	Subtasks      []Subtask
}

// Available reports whether the task can be worked on: it has no
// available date, or that date has passed.
func (t *Task) Available(now time.Time) bool {
	return t.AvailableDate == nil || !t.AvailableDate.After(now)
}

// Urgent reports whether the task is available and due within the
// urgency window.
func (t *Task) Urgent(now time.Time) bool {
	return t.Available(now) && t.DueDate.Sub(now) <= UrgencyWindow
}

// SetCompleted sets the task's completion flag and fans it out to
// every subtask, keeping the derived relationship consistent.
func (t *Task) SetCompleted(done bool) {
	t.Completed = done
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = done
	}
}

// RecomputeCompletion rederives the task's completion flag from its
// subtasks: true iff all are completed. Tasks without subtasks keep
// their own flag.
func (t *Task) RecomputeCompletion() {
	if len(t.Subtasks) == 0 {
		return
	}
	done := true
	for _, sub := range t.Subtasks {
		if !sub.Completed {
			done = false
			break
		}
	}
	t.Completed = done
}
