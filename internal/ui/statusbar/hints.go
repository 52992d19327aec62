package statusbar

import "github.com/duehelper/due-helper/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "j/k: tasks  h/l: views  Space: check  a: add  c: category  g: group  d: delete  q: quit"
	case types.ModeNewCategory, types.ModeEditCategory:
		return "Tab: next field  Enter: save  Esc: cancel"
	case types.ModeNewTask, types.ModeEditTask:
		return "Tab: next field  Enter: save  Esc: cancel"
	case types.ModeConfirmDelete:
		return "y: confirm  n/Esc: cancel"
	default:
		return ""
	}
}
