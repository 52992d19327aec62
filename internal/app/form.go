package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/duehelper/due-helper/internal/domain"
)

// Date layouts accepted in form fields. A bare date means end of that
// day for due dates and start of day for available dates.
const (
	layoutDateTime = "2006-01-02 15:04"
	layoutDate     = "2006-01-02"
)

// form is a small vertical stack of labelled text inputs with one
// focused field at a time.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newForm(title string, fields ...formField) *form {
	f := &form{title: title}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.SetValue(field.value)
		in.CharLimit = 200
		in.Width = 40
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

type formField struct {
	label       string
	placeholder string
	value       string
}

// Update routes a key to the focused input and handles focus cycling.
func (f *form) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.inputs))
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = index
	f.inputs[f.focus].Focus()
}

func (f *form) value(index int) string {
	return strings.TrimSpace(f.inputs[index].Value())
}

// Category form field order.
const (
	catFieldName = iota
	catFieldColor
)

func newCategoryForm(title, name, color string) *form {
	return newForm(title,
		formField{label: "Name", value: name},
		formField{label: "Color", placeholder: domain.DefaultColor, value: color},
	)
}

// Task form field order.
const (
	taskFieldDescription = iota
	taskFieldCategory
	taskFieldDue
	taskFieldAvailable
	taskFieldSubtasks
)

func newTaskForm(title string, task *domain.Task) *form {
	var desc, cat, due, avail, subs string
	if task != nil {
		desc = task.Description
		cat = task.Category.Name
		due = task.DueDate.Format(layoutDateTime)
		if task.AvailableDate != nil {
			avail = task.AvailableDate.Format(layoutDateTime)
		}
		var parts []string
		for _, s := range task.Subtasks {
			parts = append(parts, s.Description)
		}
		subs = strings.Join(parts, "; ")
	}

	return newForm(title,
		formField{label: "Description", value: desc},
		formField{label: "Category", value: cat},
		formField{label: "Due", placeholder: layoutDateTime, value: due},
		formField{label: "Available", placeholder: "optional", value: avail},
		formField{label: "Subtasks", placeholder: "a; b; c", value: subs},
	)
}

// taskDraft assembles a TaskDraft from the form fields. prior carries
// the task being edited so unchanged subtasks keep their identity and
// completion state; nil for a new task.
func (f *form) taskDraft(prior *domain.Task) (domain.TaskDraft, error) {
	draft := domain.TaskDraft{
		Category:    domain.Category{Name: f.value(taskFieldCategory)},
		Description: f.value(taskFieldDescription),
	}
	if prior != nil {
		draft.Completed = prior.Completed
	}

	if v := f.value(taskFieldDue); v != "" {
		due, err := parseFormTime(v, "23:59")
		if err != nil {
			return domain.TaskDraft{}, err
		}
		draft.DueDate = due
	}
	if v := f.value(taskFieldAvailable); v != "" {
		avail, err := parseFormTime(v, "00:00")
		if err != nil {
			return domain.TaskDraft{}, err
		}
		draft.AvailableDate = &avail
	}

	for _, part := range strings.Split(f.value(taskFieldSubtasks), ";") {
		desc := strings.TrimSpace(part)
		if desc == "" {
			continue
		}
		sub := domain.Subtask{Description: desc}
		if prior != nil {
			for _, old := range prior.Subtasks {
				if old.Description == desc {
					sub = old
					break
				}
			}
		}
		draft.Subtasks = append(draft.Subtasks, sub)
	}

	return draft, nil
}

// parseFormTime parses a date-time or bare date; a bare date gets the
// given clock time appended.
func parseFormTime(v, bareDateClock string) (time.Time, error) {
	if t, err := time.ParseInLocation(layoutDateTime, v, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layoutDateTime, v+" "+bareDateClock, time.Local)
}
