package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New()

	assert.NotNil(t, s)
	assert.True(t, s.StatusMode.GetBold(), "mode badge should be bold")
	assert.True(t, s.RowCompleted.GetStrikethrough(), "completed rows should strike through")
}

func TestCategoryTag(t *testing.T) {
	s := New()

	rendered := s.CategoryTag("#ff0000").Render("Work")
	assert.Contains(t, rendered, "Work")

	// Unknown colors still produce output
	rendered = s.CategoryTag("").Render("Misc")
	assert.Contains(t, rendered, "Misc")
}
