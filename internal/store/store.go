package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duehelper/due-helper/internal/domain"
)

// Store is the sole owner of category and task state. Every mutation
// runs under the lock, enforces the data invariants, and ends with a
// flush of the full snapshot through the backend. Flush failures are
// logged and never roll back the in-memory change; the next successful
// flush heals the gap.
type Store struct {
	mu         sync.Mutex
	backend    Backend
	logger     *zap.Logger
	categories []domain.Category
	tasks      []domain.Task

	// Overridable in tests for deterministic IDs and clocks.
	newID func() string
	now   func() time.Time
}

// Options configures Open.
type Options struct {
	Logger *zap.Logger
}

// Open loads the persisted snapshot through the backend, upgrading
// legacy formats, or starts empty when no snapshot exists yet.
func Open(backend Backend, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		backend: backend,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
	}

	data, ok, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		logger.Info("no snapshot found, starting empty")
		return s, nil
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	s.categories = snap.Categories
	s.tasks = snap.Tasks
	return s, nil
}

// Categories returns the ordered category list as a copy.
func (s *Store) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// HasCategory reports whether a category with the given name exists.
func (s *Store) HasCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfCategory(name) != -1
}

// AddCategory appends a new category.
func (s *Store) AddCategory(name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return &domain.ValidationError{Reason: "category name can't be empty"}
	}
	if s.indexOfCategory(name) != -1 {
		return &domain.StoreError{Op: "addCategory", Key: name, Err: domain.ErrDuplicateCategory}
	}
	if color == "" {
		color = domain.DefaultColor
	}
	s.categories = append(s.categories, domain.Category{Name: name, Color: color})
	s.persist("addCategory")
	return nil
}

// RenameCategory changes a category's name, keeping its color, and
// cascades the new name to every referencing task.
func (s *Store) RenameCategory(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfCategory(oldName)
	if idx == -1 {
		return &domain.StoreError{Op: "renameCategory", Key: oldName, Err: domain.ErrNotFound}
	}
	return s.replaceCategoryLocked("renameCategory", idx, newName, s.categories[idx].Color)
}

// ReplaceCategory changes a category's name and color, cascading both
// to every referencing task.
func (s *Store) ReplaceCategory(oldName, newName, newColor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfCategory(oldName)
	if idx == -1 {
		return &domain.StoreError{Op: "replaceCategory", Key: oldName, Err: domain.ErrNotFound}
	}
	return s.replaceCategoryLocked("replaceCategory", idx, newName, newColor)
}

func (s *Store) replaceCategoryLocked(op string, idx int, newName, newColor string) error {
	oldName := s.categories[idx].Name
	if newName != oldName && s.indexOfCategory(newName) != -1 {
		return &domain.StoreError{Op: op, Key: newName, Err: domain.ErrDuplicateCategory}
	}
	if newName == "" {
		return &domain.ValidationError{Reason: "category name can't be empty"}
	}
	if newColor == "" {
		newColor = domain.DefaultColor
	}

	s.categories[idx] = domain.Category{Name: newName, Color: newColor}
	for i := range s.tasks {
		if s.tasks[i].Category.Name == oldName {
			s.tasks[i].Category = domain.Category{Name: newName, Color: newColor}
		}
	}
	s.persist(op)
	return nil
}

// MoveCategory repositions one category with a single-element shift:
// everything between the two indices moves one slot toward the hole.
// Out-of-range indices are rejected.
func (s *Store) MoveCategory(oldIndex, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.categories)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return &domain.StoreError{
			Op:  "moveCategory",
			Key: fmt.Sprintf("%d->%d", oldIndex, newIndex),
			Err: domain.ErrIndexRange,
		}
	}
	if oldIndex == newIndex {
		return nil
	}

	moved := s.categories[oldIndex]
	if oldIndex < newIndex {
		copy(s.categories[oldIndex:], s.categories[oldIndex+1:newIndex+1])
	} else {
		copy(s.categories[newIndex+1:], s.categories[newIndex:oldIndex])
	}
	s.categories[newIndex] = moved
	s.persist("moveCategory")
	return nil
}

// DeleteCategory removes a category and every task referencing it.
func (s *Store) DeleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfCategory(name)
	if idx == -1 {
		return &domain.StoreError{Op: "deleteCategory", Key: name, Err: domain.ErrNotFound}
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Category.Name != name {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persist("deleteCategory")
	return nil
}

// Tasks returns the task list as a copy, in insertion order. Display
// ordering is the caller's concern (domain.SortForDisplay).
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	for i := range out {
		out[i].Subtasks = append([]domain.Subtask(nil), out[i].Subtasks...)
	}
	return out
}

// AddTask validates the draft and appends a new task with a fresh ID.
// The category must exist; its current color is snapshotted into the
// task regardless of what the draft carried.
func (s *Store) AddTask(draft domain.TaskDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.buildTask("addTask", draft)
	if err != nil {
		return err
	}
	task.ID = s.newID()
	s.tasks = append(s.tasks, task)
	s.persist("addTask")
	return nil
}

// ReplaceTask validates the draft and replaces the whole record for
// the given ID.
func (s *Store) ReplaceTask(id string, draft domain.TaskDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTask(id)
	if idx == -1 {
		return &domain.StoreError{Op: "replaceTask", Key: id, Err: domain.ErrNotFound}
	}
	task, err := s.buildTask("replaceTask", draft)
	if err != nil {
		return err
	}
	task.ID = id
	s.tasks[idx] = task
	s.persist("replaceTask")
	return nil
}

func (s *Store) buildTask(op string, draft domain.TaskDraft) (domain.Task, error) {
	if err := domain.ValidateDraft(draft, s.now()); err != nil {
		return domain.Task{}, err
	}
	catIdx := s.indexOfCategory(draft.Category.Name)
	if catIdx == -1 {
		return domain.Task{}, &domain.StoreError{Op: op, Key: draft.Category.Name, Err: domain.ErrUnknownCategory}
	}

	subtasks := make([]domain.Subtask, len(draft.Subtasks))
	copy(subtasks, draft.Subtasks)
	for i := range subtasks {
		if subtasks[i].ID == "" {
			subtasks[i].ID = s.newID()
		}
	}

	task := domain.Task{
		Category:      s.categories[catIdx],
		Description:   draft.Description,
		AvailableDate: draft.AvailableDate,
		DueDate:       draft.DueDate,
		Completed:     draft.Completed,
		Subtasks:      subtasks,
	}
	task.RecomputeCompletion()
	return task, nil
}

// CheckTask flips a task's completion and fans the new state out to
// every subtask. Completing a task that is not yet available is
// rejected.
func (s *Store) CheckTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTask(id)
	if idx == -1 {
		return &domain.StoreError{Op: "checkTask", Key: id, Err: domain.ErrNotFound}
	}
	task := &s.tasks[idx]
	if !task.Completed && !task.Available(s.now()) {
		return &domain.ValidationError{Reason: "a task can't be completed before it becomes available"}
	}
	task.SetCompleted(!task.Completed)
	s.persist("checkTask")
	return nil
}

// CheckSubtask flips one subtask's completion and rederives the parent
// task's flag from all subtasks.
func (s *Store) CheckSubtask(taskID, subtaskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTask(taskID)
	if idx == -1 {
		return &domain.StoreError{Op: "checkSubtask", Key: taskID, Err: domain.ErrNotFound}
	}
	task := &s.tasks[idx]

	subIdx := -1
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			subIdx = i
			break
		}
	}
	if subIdx == -1 {
		return &domain.StoreError{Op: "checkSubtask", Key: subtaskID, Err: domain.ErrNotFound}
	}

	sub := &task.Subtasks[subIdx]
	if !sub.Completed && !task.Available(s.now()) {
		return &domain.ValidationError{Reason: "a task can't be completed before it becomes available"}
	}
	sub.Completed = !sub.Completed
	task.RecomputeCompletion()
	s.persist("checkSubtask")
	return nil
}

// DeleteTask removes a task by ID.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTask(id)
	if idx == -1 {
		return &domain.StoreError{Op: "deleteTask", Key: id, Err: domain.ErrNotFound}
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persist("deleteTask")
	return nil
}

func (s *Store) indexOfCategory(name string) int {
	for i, cat := range s.categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) indexOfTask(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist flushes the full snapshot through the backend. Failures are
// logged only; in-memory state is already committed and stays that
// way, leaving durable storage stale until the next successful flush.
func (s *Store) persist(op string) {
	snap := &Snapshot{Categories: s.categories, Tasks: s.tasks}
	if snap.Categories == nil {
		snap.Categories = []domain.Category{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		s.logger.Error("encode snapshot", zap.String("op", op), zap.Error(err))
		return
	}
	if err := s.backend.Save(data); err != nil {
		s.logger.Error("persist snapshot", zap.String("op", op), zap.Error(err))
	}
}
