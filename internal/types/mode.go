// Package types contains shared types used across the application.
package types

// Mode represents the current interaction mode of the interface
type Mode int

const (
	ModeNormal Mode = iota
	ModeNewCategory
	ModeEditCategory
	ModeNewTask
	ModeEditTask
	ModeConfirmDelete
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeNewCategory:
		return "NEW CATEGORY"
	case ModeEditCategory:
		return "EDIT CATEGORY"
	case ModeNewTask:
		return "NEW TASK"
	case ModeEditTask:
		return "EDIT TASK"
	case ModeConfirmDelete:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}
