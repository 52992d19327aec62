package domain

import "time"

// View selects which slice of the task list is shown
type View int

const (
	ViewAll View = iota
	ViewUrgent
	ViewCurrent
	ViewFuture
	ViewCategory
)

func (v View) String() string {
	return [...]string{"all tasks", "urgent", "currently available", "future", "category"}[v]
}

// Selection is a sidebar choice: one of the fixed views, or a single
// category.
type Selection struct {
	View     View
	Category Category
}

// Title returns the heading shown above the task list.
func (s Selection) Title() string {
	if s.View == ViewCategory {
		return s.Category.Name
	}
	return s.View.String()
}

// Apply filters tasks according to the selection. The result shares no
// backing array with the input.
func (s Selection) Apply(tasks []Task, now time.Time) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if s.matches(t, now) {
			result = append(result, t)
		}
	}
	return result
}

func (s Selection) matches(t Task, now time.Time) bool {
	switch s.View {
	case ViewUrgent:
		return t.Urgent(now) && !t.Completed
	case ViewCurrent:
		return t.Available(now)
	case ViewFuture:
		return !t.Available(now)
	case ViewCategory:
		return t.Category.Name == s.Category.Name
	default:
		return true
	}
}

// CategoryGroup is one bucket of the grouped task view.
type CategoryGroup struct {
	Category Category
	Tasks    []Task
}

// GroupByCategory buckets tasks per category in category order,
// skipping categories that have no tasks.
func GroupByCategory(categories []Category, tasks []Task) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		var bucket []Task
		for _, t := range tasks {
			if t.Category.Name == cat.Name {
				bucket = append(bucket, t)
			}
		}
		if len(bucket) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Tasks: bucket})
		}
	}
	return groups
}
