package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/duehelper/due-helper/internal/types"
	"github.com/duehelper/due-helper/internal/ui/sidebar"
	"github.com/duehelper/due-helper/internal/ui/statusbar"
	"github.com/duehelper/due-helper/internal/ui/tasklist"
	"github.com/duehelper/due-helper/internal/ui/toast"
)

const sidebarWidth = 26

// View renders the full terminal frame.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	mainView := m.renderMain()

	sb := statusbar.New(m.mode, m.width, m.styles)
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	if m.form != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderForm())
	}
	if m.mode == types.ModeConfirmDelete {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderConfirm())
	}

	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		if toastView := toastRenderer.Render(m.toasts, m.width); toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// renderMain composes the sidebar and the task list side by side.
func (m Model) renderMain() string {
	now := time.Now()

	sb := sidebar.New(m.sidebarItems(), sidebarWidth)
	sb.SetCursor(m.sidebarCursor)

	listWidth := m.width - sidebarWidth - 2
	lv := tasklist.NewListView(m.visibleTasks(), now, listWidth)
	lv.SetGrouped(m.grouped, m.store.Categories())
	if m.focus == FocusTasks {
		lv.SetCursor(m.taskCursor)
	} else {
		lv.SetCursor(-1)
	}

	title := m.styles.ListHeader.Render(m.currentSelection().Title())
	list := lipgloss.JoinVertical(lipgloss.Left, title, lv.Render())

	return lipgloss.JoinHorizontal(lipgloss.Top, sb.Render(), " ", list)
}

// renderForm draws the active input form in a bordered overlay.
func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render(m.form.title))
	b.WriteString("\n")

	for i, in := range m.form.inputs {
		b.WriteString(m.styles.InputLabel.Render(m.form.labels[i] + ": "))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.form.errMsg != "" {
		b.WriteString(m.styles.InputError.Render(m.form.errMsg))
		b.WriteString("\n")
	}

	body := m.styles.Overlay.Render(strings.TrimSuffix(b.String(), "\n"))
	return lipgloss.Place(m.width, lipgloss.Height(body), lipgloss.Center, lipgloss.Top, body)
}

// renderConfirm draws the delete confirmation prompt.
func (m Model) renderConfirm() string {
	prompt := m.styles.OverlayTitle.Render("Delete " + m.pendingDelete.label + "?")
	hint := m.styles.StatusHint.Render("y: confirm  n: cancel")
	body := m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, prompt, hint))
	return lipgloss.Place(m.width, lipgloss.Height(body), lipgloss.Center, lipgloss.Top, body)
}
