package sidebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/duehelper/due-helper/internal/domain"
	"github.com/duehelper/due-helper/internal/ui/styles"
)

// Item is one selectable sidebar entry with its open-task count.
type Item struct {
	Selection domain.Selection
	Count     int
}

// Sidebar renders the view list: the built-in time filters followed by
// every category.
type Sidebar struct {
	items  []Item
	cursor int
	styles *styles.Styles
	width  int
}

// New creates a Sidebar over the given items.
func New(items []Item, width int) *Sidebar {
	return &Sidebar{
		items:  items,
		styles: styles.New(),
		width:  width,
	}
}

// BuildItems assembles the sidebar entries: All, Urgent, Current and
// Future, then one entry per category in stored order. Counts cover
// incomplete tasks only.
func BuildItems(categories []domain.Category, tasks []domain.Task, now time.Time) []Item {
	selections := []domain.Selection{
		{View: domain.ViewAll},
		{View: domain.ViewUrgent},
		{View: domain.ViewCurrent},
		{View: domain.ViewFuture},
	}
	for _, cat := range categories {
		selections = append(selections, domain.Selection{View: domain.ViewCategory, Category: cat})
	}

	items := make([]Item, 0, len(selections))
	for _, sel := range selections {
		count := 0
		for _, task := range sel.Apply(tasks, now) {
			if !task.Completed {
				count++
			}
		}
		items = append(items, Item{Selection: sel, Count: count})
	}
	return items
}

// SetCursor sets the active item, clamped to range.
func (s *Sidebar) SetCursor(index int) {
	if index < 0 {
		s.cursor = 0
	} else if index >= len(s.items) {
		s.cursor = max(0, len(s.items)-1)
	} else {
		s.cursor = index
	}
}

// Items returns the sidebar entries in display order.
func (s *Sidebar) Items() []Item {
	return s.items
}

// Render renders the sidebar column.
func (s *Sidebar) Render() string {
	var b strings.Builder

	b.WriteString(s.styles.SidebarHeader.Render("Views"))
	b.WriteString("\n")

	for i, item := range s.items {
		if item.Selection.View == domain.ViewCategory && !s.hasCategoryAbove(i) {
			b.WriteString(s.styles.SidebarHeader.Render("Categories"))
			b.WriteString("\n")
		}
		b.WriteString(s.renderItem(i, item))
		b.WriteString("\n")
	}

	return s.styles.Sidebar.Width(s.width).Render(strings.TrimSuffix(b.String(), "\n"))
}

// hasCategoryAbove reports whether an earlier item already started the
// category section.
func (s *Sidebar) hasCategoryAbove(index int) bool {
	for i := 0; i < index; i++ {
		if s.items[i].Selection.View == domain.ViewCategory {
			return true
		}
	}
	return false
}

func (s *Sidebar) renderItem(index int, item Item) string {
	style := s.styles.SidebarItem
	marker := "  "
	if index == s.cursor {
		style = s.styles.SidebarItemActive
		marker = "▶ "
	}

	label := item.Selection.Title()
	if item.Selection.View == domain.ViewCategory {
		dot := s.styles.CategoryDot(item.Selection.Category.Color).Render("●")
		label = dot + " " + item.Selection.Category.Name
	}

	return marker + style.Render(fmt.Sprintf("%s (%d)", label, item.Count))
}
