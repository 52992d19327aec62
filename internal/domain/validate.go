package domain

import (
	"strings"
	"time"
)

// ValidateDraft checks a task draft against the rules every create and
// replace must pass. Rules run in a fixed order and the first failure
// wins, so the user sees exactly one warning per attempt.
func ValidateDraft(d TaskDraft, now time.Time) error {
	if d.Category.Name == "" {
		return &ValidationError{Reason: "no category chosen for this task"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Reason: "task description can't be empty"}
	}
	if d.DueDate.IsZero() {
		return &ValidationError{Reason: "a due date is required"}
	}
	if d.AvailableDate != nil && d.AvailableDate.After(d.DueDate) {
		return &ValidationError{Reason: "invalid dates, available date can't be later than due date"}
	}
	// A task (or any of its subtasks) can't be completed while it is
	// still waiting on its available date.
	if d.AvailableDate != nil && d.AvailableDate.After(now) && draftCompleted(d) {
		return &ValidationError{Reason: "a task can't be completed before it becomes available"}
	}
	return nil
}

func draftCompleted(d TaskDraft) bool {
	if d.Completed {
		return true
	}
	for _, sub := range d.Subtasks {
		if sub.Completed {
			return true
		}
	}
	return false
}
