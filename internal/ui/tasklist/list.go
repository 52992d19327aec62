package tasklist

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/duehelper/due-helper/internal/domain"
	"github.com/duehelper/due-helper/internal/ui/styles"
)

// ListView renders tasks as rows, optionally grouped by category. The
// cursor indexes into the flat task order regardless of grouping.
type ListView struct {
	tasks      []domain.Task
	categories []domain.Category
	grouped    bool
	cursor     int
	now        time.Time
	styles     *styles.Styles
	width      int
}

// NewListView creates a new ListView for the given display-ordered
// tasks.
func NewListView(tasks []domain.Task, now time.Time, width int) *ListView {
	return &ListView{
		tasks:  tasks,
		now:    now,
		styles: styles.New(),
		width:  width,
	}
}

// SetCursor sets the cursor position, clamped to the task range.
func (lv *ListView) SetCursor(index int) {
	if index < 0 {
		lv.cursor = 0
	} else if index >= len(lv.tasks) {
		lv.cursor = max(0, len(lv.tasks)-1)
	} else {
		lv.cursor = index
	}
}

// SetGrouped toggles category group headers. Groups follow the given
// category order; categories absent from it fall back to first-seen
// order.
func (lv *ListView) SetGrouped(grouped bool, categories []domain.Category) {
	lv.grouped = grouped
	lv.categories = categories
}

// Render renders the full list
func (lv *ListView) Render() string {
	if len(lv.tasks) == 0 {
		return lv.styles.Row.Render("No tasks to display")
	}

	var b strings.Builder

	if lv.grouped {
		lv.renderGrouped(&b)
	} else {
		lv.renderFlat(&b)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (lv *ListView) renderFlat(b *strings.Builder) {
	for i, task := range lv.tasks {
		b.WriteString(lv.renderTask(i, task))
		b.WriteString("\n")
	}
}

// renderGrouped emits a header per category followed by its tasks.
func (lv *ListView) renderGrouped(b *strings.Builder) {
	index := indexByID(lv.tasks)

	cats := lv.categories
	if len(cats) == 0 {
		cats = categoriesInOrder(lv.tasks)
	}

	for _, group := range domain.GroupByCategory(cats, lv.tasks) {
		dot := lv.styles.CategoryDot(group.Category.Color).Render("●")
		header := lv.styles.GroupHeader.Render(group.Category.Name)
		b.WriteString(dot + " " + header + "\n")

		for _, task := range group.Tasks {
			b.WriteString(lv.renderTask(index[task.ID], task))
			b.WriteString("\n")
		}
	}
}

// renderTask renders one task row plus its subtask rows.
func (lv *ListView) renderTask(index int, task domain.Task) string {
	isActive := index == lv.cursor

	rowStyle := lv.styles.Row
	if isActive {
		rowStyle = lv.styles.RowActive
	}

	var cells []string
	cells = append(cells, lv.renderCursorCell(isActive))
	cells = append(cells, lv.renderCheckbox(task.Completed))
	cells = append(cells, lv.renderDescription(task, rowStyle))
	cells = append(cells, lv.styles.CategoryTag(task.Category.Color).Render(task.Category.Name))
	cells = append(cells, lv.renderDueCell(task))

	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	subs := lv.renderSubtasks(task)
	if subs == "" {
		return row
	}
	return row + "\n" + subs
}

func (lv *ListView) renderCursorCell(isActive bool) string {
	if isActive {
		return lv.styles.RowActive.Render("▶ ")
	}
	return "  "
}

func (lv *ListView) renderCheckbox(done bool) string {
	if done {
		return lv.styles.CheckboxDone.Render("[x] ")
	}
	return lv.styles.Checkbox.Render("[ ] ")
}

func (lv *ListView) renderDescription(task domain.Task, rowStyle lipgloss.Style) string {
	// Cursor (2) + checkbox (4) + category tag (~14) + due cell (~22)
	descWidth := max(10, lv.width-42)
	text := truncateString(task.Description, descWidth)

	if task.Completed {
		return lv.styles.RowCompleted.Width(descWidth).Render(text)
	}
	return rowStyle.Width(descWidth).Render(text)
}

// renderDueCell shows the due instant and the task's standing relative
// to now: overdue, due soon, or not yet available.
func (lv *ListView) renderDueCell(task domain.Task) string {
	due := task.DueDate.Format(" Jan 2 15:04")

	switch {
	case task.Completed:
		return lv.styles.FutureTag.Render(due)
	case !task.Available(lv.now):
		return lv.styles.FutureTag.Render(due + " (not yet)")
	case task.DueDate.Before(lv.now):
		return lv.styles.UrgentTag.Render(due + " overdue")
	case task.Urgent(lv.now):
		return lv.styles.UrgentTag.Render(due + " due soon")
	default:
		return lv.styles.DueTag.Render(due)
	}
}

func (lv *ListView) renderSubtasks(task domain.Task) string {
	if len(task.Subtasks) == 0 {
		return ""
	}

	var lines []string
	for _, sub := range task.Subtasks {
		box := "[ ]"
		if sub.Completed {
			box = "[x]"
		}
		line := lv.styles.SubtaskRow.Render("      " + box + " " + sub.Description)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func indexByID(tasks []domain.Task) map[string]int {
	m := make(map[string]int, len(tasks))
	for i, t := range tasks {
		m[t.ID] = i
	}
	return m
}

// categoriesInOrder returns each distinct category once, in first-seen
// order.
func categoriesInOrder(tasks []domain.Task) []domain.Category {
	var cats []domain.Category
	seen := make(map[string]bool)
	for _, t := range tasks {
		if !seen[t.Category.Name] {
			seen[t.Category.Name] = true
			cats = append(cats, t.Category)
		}
	}
	return cats
}

// truncateString truncates a string to fit within the given width
// If truncated, adds "..." at the end
func truncateString(s string, width int) string {
	if width <= 3 {
		return strings.Repeat(".", min(width, 3))
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	return string(runes[:width-3]) + "..."
}
