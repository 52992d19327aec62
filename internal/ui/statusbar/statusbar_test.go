package statusbar

import (
	"strings"
	"testing"

	"github.com/duehelper/due-helper/internal/types"
	"github.com/duehelper/due-helper/internal/ui/styles"
)

func TestStatusBar_RenderNormalMode(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNormal, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Expected status bar to contain 'NORMAL', got: %s", result)
	}
	if !strings.Contains(result, "j/k: tasks") {
		t.Errorf("Expected status bar to contain task navigation hints, got: %s", result)
	}
	if !strings.Contains(result, "Space: check") {
		t.Errorf("Expected status bar to contain check hint, got: %s", result)
	}
}

func TestStatusBar_RenderConfirmMode(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeConfirmDelete, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "CONFIRM") {
		t.Errorf("Expected status bar to contain 'CONFIRM', got: %s", result)
	}
	if !strings.Contains(result, "y: confirm") {
		t.Errorf("Expected status bar to contain confirm hint, got: %s", result)
	}
}

func TestStatusBar_RenderTaskFormMode(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNewTask, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "NEW TASK") {
		t.Errorf("Expected status bar to contain 'NEW TASK', got: %s", result)
	}
	if !strings.Contains(result, "Tab: next field") {
		t.Errorf("Expected status bar to contain field hint, got: %s", result)
	}
}

func TestStatusBar_FillsWidth(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNormal, 100, style)

	if sb.Render() == "" {
		t.Error("Expected non-empty status bar")
	}
}

func TestGetHints_AllModes(t *testing.T) {
	tests := []struct {
		mode     types.Mode
		contains string
	}{
		{types.ModeNormal, "Space: check"},
		{types.ModeNewCategory, "Enter: save"},
		{types.ModeEditCategory, "Enter: save"},
		{types.ModeNewTask, "Tab: next field"},
		{types.ModeEditTask, "Tab: next field"},
		{types.ModeConfirmDelete, "y: confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			result := GetHints(tt.mode)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("GetHints(%v) = %q, want it to contain %q", tt.mode, result, tt.contains)
			}
		})
	}
}
