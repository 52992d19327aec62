// Package cli implements the non-interactive commands: everything the
// interface can do, scriptable from a shell.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/duehelper/due-helper/internal/config"
	"github.com/duehelper/due-helper/internal/domain"
	"github.com/duehelper/due-helper/internal/logger"
	"github.com/duehelper/due-helper/internal/store"
)

// Dependencies holds everything CLI commands need
type Dependencies struct {
	Config *config.Config
	Store  *store.Store
	Logger *zap.Logger

	backendCloser io.Closer
}

// NewDependencies loads config, sets up logging and opens the
// configured storage backend.
func NewDependencies(console, debug bool) (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.DataDir, debug, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var backend store.Backend
	var closer io.Closer
	switch cfg.Storage.Backend {
	case "bolt":
		b, err := store.OpenBolt(cfg.DataFilePath())
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		backend, closer = b, b
	default:
		backend = store.NewFileBackend(cfg.DataFilePath())
	}

	st, err := store.Open(backend, store.Options{Logger: log})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Dependencies{
		Config:        cfg,
		Store:         st,
		Logger:        log,
		backendCloser: closer,
	}, nil
}

// Close flushes the logger and releases the storage backend.
func (d *Dependencies) Close() {
	_ = d.Logger.Sync()
	if d.backendCloser != nil {
		_ = d.backendCloser.Close()
	}
}

// AddCategoryCommand creates a category.
func AddCategoryCommand(deps *Dependencies, name, color string) error {
	if err := deps.Store.AddCategory(name, color); err != nil {
		return err
	}
	fmt.Printf("Added category %s\n", name)
	return nil
}

// RenameCategoryCommand renames a category, optionally recoloring it.
func RenameCategoryCommand(deps *Dependencies, oldName, newName, color string) error {
	var err error
	if color == "" {
		err = deps.Store.RenameCategory(oldName, newName)
	} else {
		err = deps.Store.ReplaceCategory(oldName, newName, color)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Renamed %s to %s\n", oldName, newName)
	return nil
}

// DeleteCategoryCommand removes a category and its tasks.
func DeleteCategoryCommand(deps *Dependencies, name string) error {
	if err := deps.Store.DeleteCategory(name); err != nil {
		return err
	}
	fmt.Printf("Deleted category %s\n", name)
	return nil
}

// MoveCategoryCommand repositions a category in the sidebar order.
// Positions are 1-based on the command line.
func MoveCategoryCommand(deps *Dependencies, from, to int) error {
	return deps.Store.MoveCategory(from-1, to-1)
}

// ListCategoriesCommand prints the category table.
func ListCategoriesCommand(deps *Dependencies, out io.Writer) error {
	cats := deps.Store.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(out, "No categories")
		return nil
	}

	tasks := deps.Store.Tasks()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tCOLOR\tOPEN TASKS")
	for i, cat := range cats {
		open := 0
		for _, task := range tasks {
			if task.Category.Name == cat.Name && !task.Completed {
				open++
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, cat.Name, cat.Color, open)
	}
	return w.Flush()
}

// TaskOptions carries the task command flags.
type TaskOptions struct {
	Category  string
	Due       string
	Available string
	Subtasks  []string
}

// AddTaskCommand creates a task from command-line flags.
func AddTaskCommand(deps *Dependencies, description string, opts TaskOptions) error {
	draft := domain.TaskDraft{
		Category:    domain.Category{Name: opts.Category},
		Description: description,
	}

	if opts.Due != "" {
		due, err := parseCLITime(opts.Due, "23:59")
		if err != nil {
			return fmt.Errorf("invalid due date %q, use YYYY-MM-DD [HH:MM]", opts.Due)
		}
		draft.DueDate = due
	}
	if opts.Available != "" {
		avail, err := parseCLITime(opts.Available, "00:00")
		if err != nil {
			return fmt.Errorf("invalid available date %q, use YYYY-MM-DD [HH:MM]", opts.Available)
		}
		draft.AvailableDate = &avail
	}
	for _, s := range opts.Subtasks {
		if s = strings.TrimSpace(s); s != "" {
			draft.Subtasks = append(draft.Subtasks, domain.Subtask{Description: s})
		}
	}

	if err := deps.Store.AddTask(draft); err != nil {
		return err
	}
	fmt.Printf("Added task %q\n", description)
	return nil
}

// ListTasksCommand prints tasks for a view: all, urgent, current,
// future, or a category name.
func ListTasksCommand(deps *Dependencies, out io.Writer, view string) error {
	now := time.Now()
	sel, err := resolveSelection(deps, view)
	if err != nil {
		return err
	}

	tasks := domain.SortForDisplay(sel.Apply(deps.Store.Tasks(), now), now)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDESCRIPTION\tCATEGORY\tDUE\tNOTES")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(task.ID),
			checkMark(task.Completed),
			task.Description,
			task.Category.Name,
			task.DueDate.Format("2006-01-02 15:04"),
			taskNotes(task, now),
		)
		for _, sub := range task.Subtasks {
			fmt.Fprintf(w, "%s\t%s\t  - %s\t\t\t\n", shortID(sub.ID), checkMark(sub.Completed), sub.Description)
		}
	}
	return w.Flush()
}

// CheckTaskCommand toggles a task's completion by ID prefix or exact
// description.
func CheckTaskCommand(deps *Dependencies, ref string) error {
	task, err := findTask(deps, ref)
	if err != nil {
		return err
	}
	return deps.Store.CheckTask(task.ID)
}

// CheckSubtaskCommand toggles one subtask by ID prefix or description.
func CheckSubtaskCommand(deps *Dependencies, taskRef, subRef string) error {
	task, err := findTask(deps, taskRef)
	if err != nil {
		return err
	}
	for _, sub := range task.Subtasks {
		if strings.HasPrefix(sub.ID, subRef) || sub.Description == subRef {
			return deps.Store.CheckSubtask(task.ID, sub.ID)
		}
	}
	return fmt.Errorf("no subtask matching %q", subRef)
}

// DeleteTaskCommand removes a task by ID prefix or description.
func DeleteTaskCommand(deps *Dependencies, ref string) error {
	task, err := findTask(deps, ref)
	if err != nil {
		return err
	}
	if err := deps.Store.DeleteTask(task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", task.Description)
	return nil
}

// PathCommand prints where data and settings live.
func PathCommand(deps *Dependencies, out io.Writer) {
	fmt.Fprintf(out, "data:     %s\n", deps.Config.DataFilePath())
	fmt.Fprintf(out, "settings: %s\n", config.SettingsPath(deps.Config.DataDir))
	fmt.Fprintf(out, "logs:     %s\n", deps.Config.LogDir())
}

func resolveSelection(deps *Dependencies, view string) (domain.Selection, error) {
	switch strings.ToLower(view) {
	case "", "all":
		return domain.Selection{View: domain.ViewAll}, nil
	case "urgent":
		return domain.Selection{View: domain.ViewUrgent}, nil
	case "current":
		return domain.Selection{View: domain.ViewCurrent}, nil
	case "future":
		return domain.Selection{View: domain.ViewFuture}, nil
	}
	for _, cat := range deps.Store.Categories() {
		if cat.Name == view {
			return domain.Selection{View: domain.ViewCategory, Category: cat}, nil
		}
	}
	return domain.Selection{}, fmt.Errorf("unknown view or category %q", view)
}

// findTask resolves a user-supplied reference: an ID prefix first,
// then an exact description match.
func findTask(deps *Dependencies, ref string) (*domain.Task, error) {
	tasks := deps.Store.Tasks()

	var matches []domain.Task
	for _, task := range tasks {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}
	if len(matches) == 0 {
		for _, task := range tasks {
			if task.Description == ref {
				matches = append(matches, task)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no task matching %q", ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q is ambiguous, matches %d tasks", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func checkMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// taskNotes summarizes the task's standing relative to now.
func taskNotes(task domain.Task, now time.Time) string {
	switch {
	case task.Completed:
		return ""
	case !task.Available(now):
		return "not yet available"
	case task.DueDate.Before(now):
		return "overdue"
	case task.Urgent(now):
		return "due soon"
	default:
		return ""
	}
}

func parseCLITime(v, bareDateClock string) (time.Time, error) {
	const layout = "2006-01-02 15:04"
	if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layout, v+" "+bareDateClock, time.Local)
}
