package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/duehelper/due-helper/internal/domain"
)

var testNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

// newTestStore opens a store over a memory backend with a fixed clock
// and sequential IDs.
func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	s, err := Open(backend, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	s.now = func() time.Time { return testNow }
	return s, backend
}

func draft(cat, desc string, due time.Time) domain.TaskDraft {
	return domain.TaskDraft{
		Category:    domain.Category{Name: cat},
		Description: desc,
		DueDate:     due,
	}
}

func TestStore_AddCategory_RejectsDuplicate(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddCategory("Work", "#ff0000"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	err := s.AddCategory("Work", "#00ff00")
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("second AddCategory() error = %v, want ErrDuplicateCategory", err)
	}

	cats := s.Categories()
	if len(cats) != 1 {
		t.Fatalf("got %d categories, want 1", len(cats))
	}
	if cats[0].Color != "#ff0000" {
		t.Errorf("color = %s, want the first call's #ff0000", cats[0].Color)
	}
}

func TestStore_AddCategory_CaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddCategory("work", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCategory("Work", "#ff0000"); err != nil {
		t.Fatalf("names differing in case must both be allowed, got %v", err)
	}
}

func TestStore_RenameCategory_CascadesToTasks(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddCategory("Home", "#00ff00")
	if err := s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(draft("Home", "buy milk", testNow.Add(48*time.Hour))); err != nil {
		t.Fatal(err)
	}

	if err := s.RenameCategory("Work", "Office"); err != nil {
		t.Fatalf("RenameCategory() error = %v", err)
	}

	for _, task := range s.Tasks() {
		if task.Category.Name == "Work" {
			t.Error("a task still references the old name")
		}
	}
	var renamed domain.Task
	for _, task := range s.Tasks() {
		if task.Description == "write report" {
			renamed = task
		}
	}
	if renamed.Category.Name != "Office" {
		t.Errorf("task category = %s, want Office", renamed.Category.Name)
	}
	if renamed.Category.Color != "#ff0000" {
		t.Errorf("rename must keep the color, got %s", renamed.Category.Color)
	}
}

func TestStore_RenameCategory_RejectsDuplicateTarget(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddCategory("Home", "#00ff00")

	err := s.RenameCategory("Work", "Home")
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("RenameCategory() error = %v, want ErrDuplicateCategory", err)
	}
}

func TestStore_RenameCategory_UnknownSource(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.RenameCategory("Nope", "Work")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("RenameCategory() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReplaceCategory_PropagatesColor(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour)))

	if err := s.ReplaceCategory("Work", "Office", "#0000ff"); err != nil {
		t.Fatalf("ReplaceCategory() error = %v", err)
	}

	task := s.Tasks()[0]
	if task.Category.Name != "Office" || task.Category.Color != "#0000ff" {
		t.Errorf("task category = %+v, want {Office #0000ff}", task.Category)
	}
}

func TestStore_MoveCategory(t *testing.T) {
	tests := []struct {
		name     string
		oldIndex int
		newIndex int
		want     []string
		wantErr  bool
	}{
		{"forward shift", 0, 2, []string{"B", "C", "A"}, false},
		{"backward shift", 2, 0, []string{"C", "A", "B"}, false},
		{"same slot", 1, 1, []string{"A", "B", "C"}, false},
		{"old out of range", 3, 0, []string{"A", "B", "C"}, true},
		{"negative new", 0, -1, []string{"A", "B", "C"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			s.AddCategory("A", "")
			s.AddCategory("B", "")
			s.AddCategory("C", "")

			err := s.MoveCategory(tt.oldIndex, tt.newIndex)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrIndexRange) {
					t.Fatalf("MoveCategory() error = %v, want ErrIndexRange", err)
				}
			} else if err != nil {
				t.Fatalf("MoveCategory() error = %v", err)
			}

			cats := s.Categories()
			for i, name := range tt.want {
				if cats[i].Name != name {
					t.Errorf("categories[%d] = %s, want %s", i, cats[i].Name, name)
				}
			}
		})
	}
}

func TestStore_DeleteCategory_CascadesAndIsIdempotentlyNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddCategory("Home", "#00ff00")
	s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour)))
	s.AddTask(draft("Home", "buy milk", testNow.Add(48*time.Hour)))

	if err := s.DeleteCategory("Work"); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}

	if s.HasCategory("Work") {
		t.Error("Work still present after delete")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "buy milk" {
		t.Errorf("tasks after cascade = %v, want only buy milk", tasks)
	}

	// Second delete reports not-found; state is unchanged.
	err := s.DeleteCategory("Work")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("repeat DeleteCategory() error = %v, want ErrNotFound", err)
	}
	if len(s.Tasks()) != 1 || len(s.Categories()) != 1 {
		t.Error("repeat delete must not alter state")
	}
}

func TestStore_AddTask_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")

	future := testNow.Add(72 * time.Hour)
	due := testNow.Add(48 * time.Hour)

	t.Run("available after due rejected", func(t *testing.T) {
		d := draft("Work", "bad dates", due)
		d.AvailableDate = &future
		err := s.AddTask(d)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("AddTask() error = %v, want ValidationError", err)
		}
		if len(s.Tasks()) != 0 {
			t.Error("rejected task must not be appended")
		}
	})

	t.Run("completed before available rejected", func(t *testing.T) {
		avail := testNow.Add(24 * time.Hour)
		d := draft("Work", "too eager", due)
		d.AvailableDate = &avail
		d.Completed = true
		err := s.AddTask(d)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("AddTask() error = %v, want ValidationError", err)
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		err := s.AddTask(draft("Nope", "homeless", due))
		if !errors.Is(err, domain.ErrUnknownCategory) {
			t.Fatalf("AddTask() error = %v, want ErrUnknownCategory", err)
		}
	})
}

func TestStore_AddTask_SnapshotsCategoryColor(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")

	d := draft("Work", "write report", testNow.Add(48*time.Hour))
	d.Category.Color = "#123456" // stale color from the caller
	if err := s.AddTask(d); err != nil {
		t.Fatal(err)
	}

	if got := s.Tasks()[0].Category.Color; got != "#ff0000" {
		t.Errorf("task color = %s, want the stored category's #ff0000", got)
	}
}

func TestStore_ReplaceTask(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour)))
	id := s.Tasks()[0].ID

	newDue := testNow.Add(96 * time.Hour)
	if err := s.ReplaceTask(id, draft("Work", "rewrite report", newDue)); err != nil {
		t.Fatalf("ReplaceTask() error = %v", err)
	}

	task := s.Tasks()[0]
	if task.ID != id {
		t.Errorf("ID changed on replace: %s", task.ID)
	}
	if task.Description != "rewrite report" || !task.DueDate.Equal(newDue) {
		t.Errorf("record not replaced: %+v", task)
	}

	err := s.ReplaceTask("missing", draft("Work", "x", newDue))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ReplaceTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_CheckTask_CascadesToSubtasks(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	d := draft("Work", "write report", testNow.Add(48*time.Hour))
	d.Subtasks = []domain.Subtask{
		{Description: "outline"},
		{Description: "draft"},
	}
	s.AddTask(d)
	id := s.Tasks()[0].ID

	if err := s.CheckTask(id); err != nil {
		t.Fatalf("CheckTask() error = %v", err)
	}
	task := s.Tasks()[0]
	if !task.Completed || !task.Subtasks[0].Completed || !task.Subtasks[1].Completed {
		t.Error("checking the task must complete every subtask")
	}

	if err := s.CheckTask(id); err != nil {
		t.Fatalf("second CheckTask() error = %v", err)
	}
	task = s.Tasks()[0]
	if task.Completed || task.Subtasks[0].Completed || task.Subtasks[1].Completed {
		t.Error("unchecking the task must clear every subtask")
	}
}

func TestStore_CheckTask_RejectsUnavailable(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	avail := testNow.Add(24 * time.Hour)
	d := draft("Work", "not yet", testNow.Add(48*time.Hour))
	d.AvailableDate = &avail
	s.AddTask(d)
	id := s.Tasks()[0].ID

	err := s.CheckTask(id)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CheckTask() error = %v, want ValidationError", err)
	}
	if s.Tasks()[0].Completed {
		t.Error("task must stay incomplete")
	}
}

func TestStore_CheckSubtask_DerivesParent(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	d := draft("Work", "write report", testNow.Add(48*time.Hour))
	d.Subtasks = []domain.Subtask{
		{Description: "outline", Completed: true},
		{Description: "draft"},
	}
	s.AddTask(d)
	task := s.Tasks()[0]
	last := task.Subtasks[1].ID

	// Completing the last open subtask flips the parent.
	if err := s.CheckSubtask(task.ID, last); err != nil {
		t.Fatalf("CheckSubtask() error = %v", err)
	}
	if !s.Tasks()[0].Completed {
		t.Error("parent must derive completed when all subtasks are done")
	}

	// Reopening any subtask flips the parent back.
	if err := s.CheckSubtask(task.ID, last); err != nil {
		t.Fatalf("CheckSubtask() error = %v", err)
	}
	if s.Tasks()[0].Completed {
		t.Error("parent must derive incomplete when a subtask reopens")
	}
}

func TestStore_CheckSubtask_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	d := draft("Work", "write report", testNow.Add(48*time.Hour))
	d.Subtasks = []domain.Subtask{{Description: "outline"}}
	s.AddTask(d)
	id := s.Tasks()[0].ID

	if err := s.CheckSubtask("missing", "s"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown task: error = %v, want ErrNotFound", err)
	}
	if err := s.CheckSubtask(id, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown subtask: error = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteTask(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour)))
	id := s.Tasks()[0].ID

	if err := s.DeleteTask(id); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Error("task list not empty after delete")
	}
	if err := s.DeleteTask(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("repeat delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	s, backend := newTestStore(t)
	s.AddCategory("Work", "#ff0000")

	data, ok, err := backend.Load()
	if err != nil || !ok {
		t.Fatalf("backend has no snapshot after mutation (ok=%v err=%v)", ok, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Work" {
		t.Errorf("persisted snapshot = %+v", snap)
	}
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	backend := &failingBackend{}
	s, err := Open(backend, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.AddCategory("Work", "#ff0000"); err != nil {
		t.Fatalf("AddCategory() must not surface persist failures, got %v", err)
	}
	if !s.HasCategory("Work") {
		t.Error("in-memory mutation must survive a failed flush")
	}
}

type failingBackend struct{}

func (f *failingBackend) Load() ([]byte, bool, error) { return nil, false, nil }
func (f *failingBackend) Save([]byte) error           { return errors.New("disk full") }

func TestStore_RoundTrip(t *testing.T) {
	s, backend := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddCategory("Home", "#00ff00")
	avail := testNow.Add(-24 * time.Hour)
	d := draft("Work", "write report", testNow.Add(48*time.Hour))
	d.AvailableDate = &avail
	d.Subtasks = []domain.Subtask{{Description: "outline", Completed: true}, {Description: "draft"}}
	s.AddTask(d)

	reloaded, err := Open(backend, Options{})
	if err != nil {
		t.Fatalf("reload Open() error = %v", err)
	}

	wantCats := s.Categories()
	gotCats := reloaded.Categories()
	if len(gotCats) != len(wantCats) {
		t.Fatalf("got %d categories, want %d", len(gotCats), len(wantCats))
	}
	for i := range wantCats {
		if gotCats[i] != wantCats[i] {
			t.Errorf("categories[%d] = %+v, want %+v", i, gotCats[i], wantCats[i])
		}
	}

	wantTasks := s.Tasks()
	gotTasks := reloaded.Tasks()
	if len(gotTasks) != len(wantTasks) {
		t.Fatalf("got %d tasks, want %d", len(gotTasks), len(wantTasks))
	}
	for i := range wantTasks {
		w, g := wantTasks[i], gotTasks[i]
		if g.ID != w.ID || g.Description != w.Description || g.Completed != w.Completed ||
			!g.DueDate.Equal(w.DueDate) || g.Category != w.Category {
			t.Errorf("tasks[%d] = %+v, want %+v", i, g, w)
		}
		if (g.AvailableDate == nil) != (w.AvailableDate == nil) ||
			(g.AvailableDate != nil && !g.AvailableDate.Equal(*w.AvailableDate)) {
			t.Errorf("tasks[%d] available date mismatch", i)
		}
		if len(g.Subtasks) != len(w.Subtasks) {
			t.Fatalf("tasks[%d] subtask count mismatch", i)
		}
		for j := range w.Subtasks {
			if g.Subtasks[j] != w.Subtasks[j] {
				t.Errorf("tasks[%d].subtasks[%d] = %+v, want %+v", i, j, g.Subtasks[j], w.Subtasks[j])
			}
		}
	}
}

func TestStore_ReadsAreIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCategory("Work", "#ff0000")
	s.AddTask(draft("Work", "write report", testNow.Add(48*time.Hour)))

	first := s.Tasks()
	second := s.Tasks()
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Error("repeated Tasks() calls must return equal snapshots")
	}

	// Mutating the returned slice must not leak into the store.
	first[0].Description = "tampered"
	if s.Tasks()[0].Description == "tampered" {
		t.Error("Tasks() must return a copy")
	}
}

func TestStore_Scenario(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddCategory("Work", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if err := s.AddTask(draft("Work", "write report", due)); err != nil {
		t.Fatal(err)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "write report" || tasks[0].Category.Name != "Work" {
		t.Fatalf("tasks = %+v", tasks)
	}

	if err := s.DeleteCategory("Work"); err != nil {
		t.Fatal(err)
	}
	if len(s.Tasks()) != 0 {
		t.Error("deleting the category must remove its tasks")
	}
}
