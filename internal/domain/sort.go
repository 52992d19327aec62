package domain

import (
	"sort"
	"time"
)

// SortForDisplay orders tasks the way the task list renders them. It
// runs three stable passes: ascending due date, then available before
// unavailable, then incomplete before complete. Each later pass keeps
// ties from the earlier one, so completion ends up the dominant key,
// availability second, due date last.
func SortForDisplay(tasks []Task, now time.Time) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	// Make a copy to avoid modifying the input slice
	result := make([]Task, len(tasks))
	copy(result, tasks)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Available(now) && !result[j].Available(now)
	})

	sort.SliceStable(result, func(i, j int) bool {
		return !result[i].Completed && result[j].Completed
	})

	return result
}
