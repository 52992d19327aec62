package sidebar

import (
	"strings"
	"testing"
	"time"

	"github.com/duehelper/due-helper/internal/domain"
)

var now = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

func fixtures() ([]domain.Category, []domain.Task) {
	cats := []domain.Category{
		{Name: "Work", Color: "#ff0000"},
		{Name: "Home", Color: "#00ff00"},
	}
	avail := now.Add(24 * time.Hour)
	tasks := []domain.Task{
		{ID: "t1", Category: cats[0], Description: "soon", DueDate: now.Add(time.Hour)},
		{ID: "t2", Category: cats[0], Description: "later", DueDate: now.Add(72 * time.Hour)},
		{ID: "t3", Category: cats[1], Description: "future", DueDate: now.Add(72 * time.Hour), AvailableDate: &avail},
		{ID: "t4", Category: cats[1], Description: "done", DueDate: now.Add(time.Hour), Completed: true},
	}
	return cats, tasks
}

func TestBuildItems_OrderAndCounts(t *testing.T) {
	cats, tasks := fixtures()

	items := BuildItems(cats, tasks, now)

	wantViews := []domain.View{
		domain.ViewAll, domain.ViewUrgent, domain.ViewCurrent, domain.ViewFuture,
		domain.ViewCategory, domain.ViewCategory,
	}
	if len(items) != len(wantViews) {
		t.Fatalf("got %d items, want %d", len(items), len(wantViews))
	}
	for i, want := range wantViews {
		if items[i].Selection.View != want {
			t.Errorf("items[%d].View = %v, want %v", i, items[i].Selection.View, want)
		}
	}

	counts := map[string]int{}
	for _, item := range items {
		counts[item.Selection.Title()] = item.Count
	}
	// t4 is completed and never counted.
	if counts[domain.Selection{View: domain.ViewAll}.Title()] != 3 {
		t.Errorf("all count = %d, want 3", counts[domain.Selection{View: domain.ViewAll}.Title()])
	}
	if counts[domain.Selection{View: domain.ViewUrgent}.Title()] != 1 {
		t.Errorf("urgent count = %d, want 1", counts[domain.Selection{View: domain.ViewUrgent}.Title()])
	}
	if counts[domain.Selection{View: domain.ViewFuture}.Title()] != 1 {
		t.Errorf("future count = %d, want 1", counts[domain.Selection{View: domain.ViewFuture}.Title()])
	}
}

func TestSidebar_Render(t *testing.T) {
	cats, tasks := fixtures()
	sb := New(BuildItems(cats, tasks, now), 24)

	result := sb.Render()
	for _, want := range []string{"Views", "Categories", "Work", "Home"} {
		if !strings.Contains(result, want) {
			t.Errorf("render missing %q:\n%s", want, result)
		}
	}
}

func TestSidebar_SetCursor_Clamps(t *testing.T) {
	cats, tasks := fixtures()
	sb := New(BuildItems(cats, tasks, now), 24)

	sb.SetCursor(-1)
	if sb.cursor != 0 {
		t.Errorf("cursor = %d, want 0", sb.cursor)
	}
	sb.SetCursor(100)
	if sb.cursor != len(sb.items)-1 {
		t.Errorf("cursor = %d, want last item", sb.cursor)
	}
}
