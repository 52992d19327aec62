package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all the UI styles
type Styles struct {
	// Sidebar
	Sidebar           lipgloss.Style
	SidebarHeader     lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style

	// Task list
	ListHeader   lipgloss.Style
	GroupHeader  lipgloss.Style
	Row          lipgloss.Style
	RowActive    lipgloss.Style
	RowCompleted lipgloss.Style
	SubtaskRow   lipgloss.Style
	Separator    lipgloss.Style

	// Task decorations
	Checkbox     lipgloss.Style
	CheckboxDone lipgloss.Style
	DueTag       lipgloss.Style
	UrgentTag    lipgloss.Style
	FutureTag    lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	InputLabel   lipgloss.Style
	InputError   lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		SidebarHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			MarginBottom(1),

		SidebarItem: lipgloss.NewStyle().
			Foreground(Text),

		SidebarItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		ListHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		GroupHeader: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			MarginTop(1),

		Row: lipgloss.NewStyle().
			Foreground(Text),

		RowActive: lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0),

		RowCompleted: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		SubtaskRow: lipgloss.NewStyle().
			Foreground(Subtext1),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Checkbox: lipgloss.NewStyle().
			Foreground(Overlay1),

		CheckboxDone: lipgloss.NewStyle().
			Foreground(Green),

		DueTag: lipgloss.NewStyle().
			Foreground(Subtext0),

		UrgentTag: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		FutureTag: lipgloss.NewStyle().
			Foreground(Overlay0),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		InputLabel: lipgloss.NewStyle().
			Foreground(Subtext0),

		InputError: lipgloss.NewStyle().
			Foreground(Red),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// CategoryTag returns the badge style for a category's display color.
// An empty or malformed color still renders; lipgloss falls back to
// the terminal default.
func (s *Styles) CategoryTag(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Base).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Bold(true)
}

// CategoryDot returns the sidebar marker style for a category color.
func (s *Styles) CategoryDot(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
