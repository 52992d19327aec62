// Package app contains the main application model and TEA implementation.
package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/duehelper/due-helper/internal/config"
	"github.com/duehelper/due-helper/internal/domain"
	"github.com/duehelper/due-helper/internal/refresh"
	"github.com/duehelper/due-helper/internal/store"
	"github.com/duehelper/due-helper/internal/types"
	"github.com/duehelper/due-helper/internal/ui/sidebar"
	"github.com/duehelper/due-helper/internal/ui/styles"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal        = types.ModeNormal
	ModeNewCategory   = types.ModeNewCategory
	ModeEditCategory  = types.ModeEditCategory
	ModeNewTask       = types.ModeNewTask
	ModeEditTask      = types.ModeEditTask
	ModeConfirmDelete = types.ModeConfirmDelete
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Focus identifies which pane receives list navigation.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusTasks
)

// deleteTarget is what a pending confirmation will remove.
type deleteTarget struct {
	taskID   string
	category string
	label    string
}

// Model is the main application state
type Model struct {
	// Core data
	store *store.Store

	// Selection state
	mode          Mode
	focus         Focus
	sidebarCursor int
	taskCursor    int
	grouped       bool

	// Active form (category or task modes)
	form      *form
	editingID string

	// Pending delete confirmation
	pendingDelete deleteTarget

	// Toasts
	toasts []Toast

	// Auto refresh: the timer fires when the next task crosses an
	// availability or urgency boundary.
	timer     *refresh.Timer
	refreshCh chan time.Time

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config *config.Config

	// Logger
	logger *zap.Logger
}

// New creates a new application model over an opened store.
func New(st *store.Store, cfg *config.Config, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		store:     st,
		mode:      ModeNormal,
		focus:     FocusTasks,
		grouped:   cfg.Display.GroupByDefault,
		toasts:    []Toast{},
		timer:     refresh.NewTimer(),
		refreshCh: make(chan time.Time, 1),
		styles:    styles.New(),
		config:    cfg,
		logger:    logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	m.scheduleRefresh()
	return tea.Batch(
		m.waitForRefresh(),
		tickEvery(time.Second),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		// A task crossed a time boundary; views recompute on render.
		m.logger.Debug("time boundary refresh")
		m.scheduleRefresh()
		return m, m.waitForRefresh()

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)
	}

	return m, nil
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.timer.Stop()
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	if msg.String() == "esc" && m.mode != ModeNormal {
		m.mode = ModeNormal
		m.form = nil
		m.editingID = ""
		m.pendingDelete = deleteTarget{}
		return m, nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeNewCategory, ModeEditCategory:
		return m.handleCategoryForm(msg)
	case ModeNewTask, ModeEditTask:
		return m.handleTaskForm(msg)
	case ModeConfirmDelete:
		return m.handleConfirmMode(msg)
	default:
		return m, nil
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.timer.Stop()
		return m, tea.Quit

	// Vertical navigation
	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	// Pane switching
	case "h", "left":
		m.focus = FocusSidebar
		return m, nil

	case "l", "right":
		m.focus = FocusTasks
		return m, nil

	case "g": // Toggle category grouping
		m.grouped = !m.grouped
		return m, nil

	case " ": // Check / uncheck current task
		return m.checkCurrentTask()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.checkSubtaskByIndex(int(msg.String()[0] - '1'))

	case "a": // Add task
		m.mode = ModeNewTask
		m.form = newTaskForm("New Task", nil)
		if sel := m.currentSelection(); sel.View == domain.ViewCategory {
			m.form.inputs[taskFieldCategory].SetValue(sel.Category.Name)
		}
		return m, nil

	case "enter": // Edit task under cursor
		if task := m.currentTask(); task != nil {
			m.mode = ModeEditTask
			m.editingID = task.ID
			m.form = newTaskForm("Edit Task", task)
		}
		return m, nil

	case "c": // Add category
		m.mode = ModeNewCategory
		m.form = newCategoryForm("New Category", "", "")
		return m, nil

	case "r": // Rename / recolor selected category
		if sel := m.currentSelection(); sel.View == domain.ViewCategory {
			m.mode = ModeEditCategory
			m.editingID = sel.Category.Name
			m.form = newCategoryForm("Edit Category", sel.Category.Name, sel.Category.Color)
		}
		return m, nil

	case "d": // Delete task under cursor
		if task := m.currentTask(); task != nil {
			m.mode = ModeConfirmDelete
			m.pendingDelete = deleteTarget{taskID: task.ID, label: task.Description}
		}
		return m, nil

	case "D": // Delete selected category and its tasks
		if sel := m.currentSelection(); sel.View == domain.ViewCategory {
			m.mode = ModeConfirmDelete
			m.pendingDelete = deleteTarget{
				category: sel.Category.Name,
				label:    sel.Category.Name + " and all its tasks",
			}
		}
		return m, nil

	// Reorder the selected category
	case "K":
		return m.moveCategory(-1)
	case "J":
		return m.moveCategory(1)
	}

	return m, nil
}

func (m Model) handleCategoryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		cmd := m.form.Update(msg)
		return m, cmd
	}

	name := m.form.value(catFieldName)
	color := m.form.value(catFieldColor)

	var err error
	if m.mode == ModeEditCategory {
		err = m.store.ReplaceCategory(m.editingID, name, color)
	} else {
		err = m.store.AddCategory(name, color)
	}
	if err != nil {
		m.form.errMsg = err.Error()
		m.warnOrError(err)
		return m, nil
	}

	m.closeForm()
	m.addToast(types.NewToast(ToastSuccess, "Category saved"))
	return m, m.rearm()
}

func (m Model) handleTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		cmd := m.form.Update(msg)
		return m, cmd
	}

	var prior *domain.Task
	if m.mode == ModeEditTask {
		prior = m.taskByID(m.editingID)
	}
	draft, err := m.form.taskDraft(prior)
	if err != nil {
		m.form.errMsg = "invalid date, use " + layoutDateTime
		return m, nil
	}

	if m.mode == ModeEditTask {
		err = m.store.ReplaceTask(m.editingID, draft)
	} else {
		err = m.store.AddTask(draft)
	}
	if err != nil {
		m.form.errMsg = err.Error()
		m.warnOrError(err)
		return m, nil
	}

	m.closeForm()
	m.addToast(types.NewToast(ToastSuccess, "Task saved"))
	return m, m.rearm()
}

func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := m.pendingDelete
		m.pendingDelete = deleteTarget{}
		m.mode = ModeNormal

		var err error
		if target.taskID != "" {
			err = m.store.DeleteTask(target.taskID)
		} else if target.category != "" {
			err = m.store.DeleteCategory(target.category)
			m.sidebarCursor = 0
		}
		if err != nil {
			m.warnOrError(err)
			return m, nil
		}
		m.clampCursors()
		m.addToast(types.NewToast(ToastInfo, "Deleted "+target.label))
		return m, m.rearm()

	case "n", "N":
		m.pendingDelete = deleteTarget{}
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

// checkCurrentTask toggles completion of the task under the cursor.
func (m Model) checkCurrentTask() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	if err := m.store.CheckTask(task.ID); err != nil {
		m.warnOrError(err)
		return m, nil
	}
	return m, m.rearm()
}

// checkSubtaskByIndex toggles the n-th subtask of the current task.
func (m Model) checkSubtaskByIndex(index int) (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil || index >= len(task.Subtasks) {
		return m, nil
	}
	if err := m.store.CheckSubtask(task.ID, task.Subtasks[index].ID); err != nil {
		m.warnOrError(err)
		return m, nil
	}
	return m, m.rearm()
}

// moveCategory shifts the selected category by delta positions.
func (m Model) moveCategory(delta int) (tea.Model, tea.Cmd) {
	sel := m.currentSelection()
	if sel.View != domain.ViewCategory {
		return m, nil
	}

	cats := m.store.Categories()
	from := -1
	for i, cat := range cats {
		if cat.Name == sel.Category.Name {
			from = i
			break
		}
	}
	if from == -1 {
		return m, nil
	}
	if err := m.store.MoveCategory(from, from+delta); err != nil {
		if !errors.Is(err, domain.ErrIndexRange) {
			m.warnOrError(err)
		}
		return m, nil
	}
	m.sidebarCursor += delta
	return m, nil
}

func (m *Model) closeForm() {
	m.mode = ModeNormal
	m.form = nil
	m.editingID = ""
}

// moveCursor moves whichever pane has focus.
func (m *Model) moveCursor(delta int) {
	if m.focus == FocusSidebar {
		m.sidebarCursor += delta
		items := m.sidebarItems()
		if m.sidebarCursor < 0 {
			m.sidebarCursor = 0
		}
		if m.sidebarCursor >= len(items) {
			m.sidebarCursor = len(items) - 1
		}
		m.taskCursor = 0
		return
	}

	m.taskCursor += delta
	m.clampCursors()
}

func (m *Model) clampCursors() {
	visible := m.visibleTasks()
	if m.taskCursor >= len(visible) {
		m.taskCursor = len(visible) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
	items := m.sidebarItems()
	if m.sidebarCursor >= len(items) {
		m.sidebarCursor = len(items) - 1
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
}

// sidebarItems builds the current sidebar entries.
func (m Model) sidebarItems() []sidebar.Item {
	return sidebar.BuildItems(m.store.Categories(), m.store.Tasks(), time.Now())
}

// currentSelection returns the selection under the sidebar cursor.
func (m Model) currentSelection() domain.Selection {
	items := m.sidebarItems()
	if m.sidebarCursor < 0 || m.sidebarCursor >= len(items) {
		return domain.Selection{View: domain.ViewAll}
	}
	return items[m.sidebarCursor].Selection
}

// visibleTasks returns the selection's tasks in display order.
func (m Model) visibleTasks() []domain.Task {
	now := time.Now()
	tasks := m.currentSelection().Apply(m.store.Tasks(), now)
	return domain.SortForDisplay(tasks, now)
}

// currentTask returns the task under the cursor, or nil.
func (m Model) currentTask() *domain.Task {
	visible := m.visibleTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(visible) {
		return nil
	}
	return &visible[m.taskCursor]
}

func (m Model) taskByID(id string) *domain.Task {
	for _, task := range m.store.Tasks() {
		if task.ID == id {
			return &task
		}
	}
	return nil
}

// warnOrError surfaces a store error as a toast at the right level.
func (m *Model) warnOrError(err error) {
	level := ToastError
	if domain.IsWarning(err) {
		level = ToastWarning
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		level = ToastWarning
	}
	m.addToast(types.NewToast(level, err.Error()))
}

func (m *Model) addToast(toast Toast) {
	m.toasts = append(m.toasts, toast)
}

func (m *Model) expireToasts() {
	m.toasts = types.PruneToasts(m.toasts, time.Now())
}

// scheduleRefresh arms the timer for the next availability or urgency
// boundary across all tasks.
func (m Model) scheduleRefresh() {
	next := domain.NextRefresh(m.store.Tasks(), time.Now())
	if next.IsZero() {
		m.timer.Stop()
		return
	}
	ch := m.refreshCh
	m.timer.RunAt(next, func() {
		select {
		case ch <- time.Now():
		default:
		}
	})
}

// rearm reschedules the boundary timer after a mutation.
func (m Model) rearm() tea.Cmd {
	m.scheduleRefresh()
	return nil
}

type refreshMsg time.Time
type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForRefresh blocks on the timer channel and converts fires into
// messages.
func (m Model) waitForRefresh() tea.Cmd {
	ch := m.refreshCh
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return refreshMsg(t)
	}
}
